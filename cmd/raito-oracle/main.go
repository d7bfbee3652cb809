package main

import (
	"context"
	"errors"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/setavenger/raito-oracle/internal/config"
	"github.com/setavenger/raito-oracle/internal/dataset"
	"github.com/setavenger/raito-oracle/internal/logging"
	"github.com/setavenger/raito-oracle/internal/metrics"
	"github.com/setavenger/raito-oracle/internal/proofs"
	"github.com/setavenger/raito-oracle/internal/server"
	"github.com/setavenger/raito-oracle/internal/store"
	"github.com/setavenger/raito-oracle/internal/store/dbsqlite"
	"github.com/setavenger/raito-oracle/internal/store/snapshot"
	"github.com/setavenger/raito-oracle/internal/types"
)

var (
	Version = "0.0.0"

	// Global flags
	datadir    string
	configFile string
)

func init() {
	rootCmd.PersistentFlags().StringVar(
		&datadir,
		"datadir",
		config.DefaultBaseDirectory,
		"Set the base directory for raito oracle. Default directory is ~/.raito-oracle",
	)
	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"Path to config file (default: datadir/raito-oracle.toml)",
	)

	rootCmd.AddCommand(seedCmd)
}

var rootCmd = &cobra.Command{
	Use:     "raito-oracle",
	Short:   "Read-only block and proof artifact API",
	Long:    `Raito oracle serves block summaries, full block detail, transaction and header membership, and externally stored proof artifacts over HTTP.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.BaseDirectory = datadir
		config.SetDirectories()

		err := os.MkdirAll(config.DataPath, 0750)
		if err != nil && !errors.Is(err, os.ErrExist) {
			logging.L.Fatal().Err(err).Msg("error creating data directory")
		}

		logging.L.Info().Msgf("base directory %s", config.BaseDirectory)

		// load after loggers are instantiated
		if configFile == "" {
			configFile = path.Join(config.BaseDirectory, config.ConfigFileName)
		}
		config.LoadConfigs(configFile)

		if config.LogsPath != "" {
			if err := logging.SetLogOutput(config.LogsPath, "raito-oracle.log", config.LogToConsole); err != nil {
				logging.L.Warn().Err(err).Msg("Failed to initialize file logging")
			}
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the sqlite store from the block dataset and exit",
	Run: func(cmd *cobra.Command, args []string) {
		runSeed()
	},
}

func runServe() {
	defer logging.Close()

	st, inserter := openStore()

	if config.StoreBackend == config.BackendSQLite && config.SeedOnStart {
		seedStore(inserter)
	}

	locator := proofs.NewLocator(st, config.ProofsDir)
	api := server.NewApiHandler(st, locator)

	if err := server.RunServer(api); err != nil {
		logging.L.Fatal().Err(err).Msg("could not run server")
	}
}

func runSeed() {
	defer logging.Close()

	if config.StoreBackend != config.BackendSQLite {
		logging.L.Fatal().Msg("seeding requires the sqlite backend")
	}

	db, err := dbsqlite.Open(config.DBFilePath, metrics.NewStore())
	if err != nil {
		logging.L.Fatal().Err(err).Msg("error opening sqlite store")
	}
	defer db.Close()

	seedStore(db)
}

func openStore() (store.Store, *dbsqlite.Store) {
	switch config.StoreBackend {
	case config.BackendSQLite:
		db, err := dbsqlite.Open(config.DBFilePath, metrics.NewStore())
		if err != nil {
			logging.L.Fatal().Err(err).Msg("error opening sqlite store")
		}
		return db, db
	case config.BackendSnapshot:
		records := loadDataset()
		snap, err := snapshot.New(records)
		if err != nil {
			logging.L.Fatal().Err(err).Msg("error building snapshot store")
		}
		logging.L.Info().Msgf("snapshot store built with %d blocks", len(records))
		return snap, nil
	default:
		logging.L.Fatal().Msg("backend undefined")
		return nil, nil
	}
}

func seedStore(db *dbsqlite.Store) {
	records := loadDataset()

	if err := db.Seed(context.Background(), records); err != nil {
		logging.L.Fatal().Err(err).Msg("error seeding store")
	}
	logging.L.Info().Msgf("seeded %d blocks", len(records))
}

func loadDataset() []types.BlockRecord {
	records, err := dataset.Load(config.DatasetPath)
	if err != nil {
		logging.L.Fatal().Err(err).Msg("error loading dataset")
	}
	if config.AttachMockProofs {
		dataset.AttachPlaceholderProofs(records, config.ProofsDir)
	}
	return records
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
