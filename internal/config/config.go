package config

import (
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/setavenger/raito-oracle/internal/logging"
)

func LoadConfigs(pathToConfig string) {
	// Set the file name of the configurations file
	viper.SetConfigFile(pathToConfig)

	// Handle errors reading the config file
	if err := viper.ReadInConfig(); err != nil {
		logging.L.Warn().Err(err).Msg("No config file detected")
	}

	/* set defaults */
	viper.SetDefault("http_host", HTTPHost)
	viper.SetDefault("backend", "sqlite")
	viper.SetDefault("dataset_path", "")
	viper.SetDefault("proofs_dir", "")
	viper.SetDefault("seed_on_start", true)
	viper.SetDefault("attach_mock_proofs", false)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_to_console", true)

	// Bind viper keys to environment variables (optional, for backup)
	viper.AutomaticEnv()
	viper.BindEnv("http_host", "HTTP_HOST")
	viper.BindEnv("backend", "BACKEND")
	viper.BindEnv("dataset_path", "DATASET_PATH")
	viper.BindEnv("proofs_dir", "PROOFS_DIR")
	viper.BindEnv("seed_on_start", "SEED_ON_START")
	viper.BindEnv("attach_mock_proofs", "ATTACH_MOCK_PROOFS")
	viper.BindEnv("log_level", "LOG_LEVEL")

	/* read and set config variables */
	HTTPHost = viper.GetString("http_host")
	LogLevel = viper.GetString("log_level")
	LogToConsole = viper.GetBool("log_to_console")

	SeedOnStart = viper.GetBool("seed_on_start")
	AttachMockProofs = viper.GetBool("attach_mock_proofs")

	if p := viper.GetString("dataset_path"); p != "" {
		DatasetPath = resolvePath(p)
	}
	if p := viper.GetString("proofs_dir"); p != "" {
		ProofsDir = resolvePath(p)
	}

	backendInput := viper.GetString("backend")

	switch backendInput {
	case "sqlite":
		StoreBackend = BackendSQLite
	case "snapshot":
		StoreBackend = BackendSnapshot
	default:
		logging.L.Fatal().Msgf("backend undefined: %s", backendInput)
		return
	}

	switch LogLevel {
	case "trace":
		logging.SetLogLevel(zerolog.TraceLevel)
	case "info":
		logging.SetLogLevel(zerolog.InfoLevel)
	case "debug":
		logging.SetLogLevel(zerolog.DebugLevel)
	case "warn":
		logging.SetLogLevel(zerolog.WarnLevel)
	case "error":
		logging.SetLogLevel(zerolog.ErrorLevel)
	}

	logging.L.Info().Msgf("backend: %s", BackendToString(StoreBackend))
	logging.L.Info().Msgf("seed_on_start: %t", SeedOnStart)
	logging.L.Info().Msgf("dataset: %s", DatasetPath)
	logging.L.Info().Msgf("proofs dir: %s", ProofsDir)
}
