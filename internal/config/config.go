package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Debug    DebugConfig    `yaml:"debug"`
	Database DatabaseConfig `yaml:"database"`
	Stream   StreamConfig   `yaml:"stream"`
	Indexer  IndexerConfig  `yaml:"indexer"`
}

type LoggingConfig struct {
	Level string `yaml:"level" envconfig:"LOGGING_LEVEL"`
}

type DebugConfig struct {
	ListenAddress string `yaml:"address" envconfig:"DEBUG_ADDRESS"`
	ListenPort    uint   `yaml:"port" envconfig:"DEBUG_PORT"`
}

// DatabaseConfig holds the Postgres connection settings for the
// relational aggregate store.
type DatabaseConfig struct {
	ConnectionString   string `yaml:"connectionString" envconfig:"DATABASE_CONNECTION_STRING"`
	ConnectionPoolSize int    `yaml:"connectionPoolSize" envconfig:"DATABASE_CONNECTION_POOL_SIZE"`
}

// StreamConfig holds the transaction-stream client settings.
type StreamConfig struct {
	Endpoint        string `yaml:"endpoint" envconfig:"STREAM_ENDPOINT"`
	AuthToken       string `yaml:"authToken" envconfig:"STREAM_AUTH_TOKEN"`
	StartingVersion uint64 `yaml:"startingVersion" envconfig:"STREAM_STARTING_VERSION"`
}

type IndexerConfig struct {
	StatusReportIntervalSeconds uint `yaml:"statusReportIntervalSeconds" envconfig:"STATUS_REPORT_INTERVAL_SECONDS"`
}

// Singleton config instance with default values
var globalConfig = &Config{
	Logging: LoggingConfig{
		Level: "info",
	},
	Debug: DebugConfig{
		ListenAddress: "localhost",
		ListenPort:    0,
	},
	Database: DatabaseConfig{
		ConnectionPoolSize: 150,
	},
	Stream: StreamConfig{
		StartingVersion: 0,
	},
	Indexer: IndexerConfig{
		StatusReportIntervalSeconds: 10,
	},
}

func Load(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %s", err)
		}
		err = yaml.Unmarshal(buf, globalConfig)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %s", err)
		}
	}
	// Load config values from environment variables
	// We use "dummy" as the app name here to (mostly) prevent picking up env
	// vars that we hadn't explicitly specified in annotations above
	err := envconfig.Process("dummy", globalConfig)
	if err != nil {
		return nil, fmt.Errorf("error processing environment: %s", err)
	}
	if globalConfig.Database.ConnectionString == "" {
		return nil, fmt.Errorf("database connection string is required")
	}
	if globalConfig.Database.ConnectionPoolSize <= 0 {
		globalConfig.Database.ConnectionPoolSize = 150
	}
	return globalConfig, nil
}

// GetConfig returns the global config instance.
func GetConfig() *Config {
	return globalConfig
}
