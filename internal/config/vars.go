package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	ConfigFileName       string = "raito-oracle.toml"
	DefaultBaseDirectory string = "~/.raito-oracle"
)

// DefaultPageLimit is applied when a blocks listing omits the limit parameter.
const DefaultPageLimit = 20

type backend int

const (
	BackendUnknown backend = iota
	// BackendSQLite serves from the persistent sqlite store.
	BackendSQLite
	// BackendSnapshot serves from an immutable in-memory snapshot built at startup.
	BackendSnapshot
)

var (
	LogLevel     = "info"
	LogsPath     = ""
	LogToConsole = true
)

var (
	BaseDirectory = ""
	DataPath      = ""
	DBFilePath    = ""
	DatasetPath   = ""
	ProofsDir     = ""

	HTTPHost = "127.0.0.1:8080"
)

var (
	StoreBackend = BackendSQLite

	// SeedOnStart loads the dataset into the sqlite store before serving.
	SeedOnStart = true

	// AttachMockProofs attaches placeholder proof provenance for artifacts found at
	// the conventional path. Fixture convenience, not meant for real datasets.
	AttachMockProofs = false
)

// one has to call SetDirectories otherwise the derived paths will be empty
func SetDirectories() {
	BaseDirectory = resolvePath(BaseDirectory)

	DataPath = filepath.Join(BaseDirectory, "data")
	LogsPath = filepath.Join(BaseDirectory, "logs")

	DBFilePath = filepath.Join(DataPath, "raito.db")
	if DatasetPath == "" {
		DatasetPath = filepath.Join(DataPath, "blocks.json")
	}
	if ProofsDir == "" {
		ProofsDir = filepath.Join(DataPath, "proofs")
	}
}

func BackendToString(b backend) string {
	switch b {
	case BackendSQLite:
		return "sqlite"
	case BackendSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
