package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./locallibrary.db"

	// DefaultEnvFile is loaded before reading the environment, when present
	DefaultEnvFile = ".env"
)
