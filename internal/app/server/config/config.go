package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"
)

const (
	envPath = ".env"

	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Env    string
	DB     DB
	Server Server
	Purge  Purge
	Logger Logger
}

type DB struct {
	Driver      string
	DatabaseURI string
	SQLitePath  string
	Migrations  string
}

type Server struct {
	RunAddress string
}

type Purge struct {
	// Interval between background sweeps; zero disables the in-process scheduler.
	Interval  time.Duration
	BatchSize int
}

type Logger struct {
	// LogLevel overrides the environment's default level when set.
	LogLevel string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":8080")
	v.SetDefault("db_driver", DriverPostgres)
	v.SetDefault("sqlite_path", "otsshare.db")
	v.SetDefault("migrations_path", "migrations")
	v.SetDefault("purge_interval", "1m")
	v.SetDefault("purge_batch_size", 500)
}

// MustLoad reads the .env file if there is one, then the process
// environment, and exits on an invalid configuration.
func MustLoad() *Config {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("load %s: %v", envPath, err)
		}
	}

	cfg, err := Load(viper.New())
	if err != nil {
		log.Fatalln(err)
	}
	return cfg
}

// Load builds the configuration from v with AutomaticEnv enabled.
func Load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Env: v.GetString("app_env"),
		DB: DB{
			Driver:      v.GetString("db_driver"),
			DatabaseURI: v.GetString("database_uri"),
			SQLitePath:  v.GetString("sqlite_path"),
			Migrations:  v.GetString("migrations_path"),
		},
		Server: Server{RunAddress: v.GetString("run_address")},
		Purge: Purge{
			Interval:  v.GetDuration("purge_interval"),
			BatchSize: v.GetInt("purge_batch_size"),
		},
		Logger: Logger{LogLevel: v.GetString("log_level")},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverPostgres:
		if c.DB.DatabaseURI == "" {
			return fmt.Errorf("%w: DATABASE_URI is required for the postgres driver", ErrInvalidConfig)
		}
	case DriverSQLite:
		if c.DB.SQLitePath == "" {
			return fmt.Errorf("%w: SQLITE_PATH is required for the sqlite driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown DB_DRIVER %q", ErrInvalidConfig, c.DB.Driver)
	}

	if c.Purge.Interval < 0 {
		return fmt.Errorf("%w: PURGE_INTERVAL must not be negative", ErrInvalidConfig)
	}
	if c.Purge.BatchSize <= 0 {
		return fmt.Errorf("%w: PURGE_BATCH_SIZE must be positive", ErrInvalidConfig)
	}
	if c.Logger.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(c.Logger.LogLevel)); err != nil {
			return fmt.Errorf("%w: LOG_LEVEL: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}
