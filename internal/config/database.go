package config

import (
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
)

type DatabaseConfig struct {
	Driver   string          `yaml:"driver"`
	SQLite   *SQLiteConfig   `yaml:"sqlite"`
	Postgres *PostgresConfig `yaml:"postgres"`
	MongoDB  *MongoDBConfig  `yaml:"mongodb"`
}

type SQLiteConfig struct {
	Path        string        `yaml:"path"`
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

type PostgresConfig struct {
	URL             string        `yaml:"url"`
	MaxConns        int           `yaml:"max_conns"`
	MinConns        int           `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
}

type MongoDBConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	MaxPoolSize    int           `yaml:"max_pool_size"`
	MinPoolSize    int           `yaml:"min_pool_size"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	SocketTimeout  time.Duration `yaml:"socket_timeout"`
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Driver: getEnv("DB_DRIVER", DriverSQLite),
		SQLite: &SQLiteConfig{
			Path:        getEnv("SQLITE_PATH", "./ambulance.db"),
			BusyTimeout: getEnvAsDuration("SQLITE_BUSY_TIMEOUT", 5*time.Second),
		},
		Postgres: &PostgresConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DATABASE_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DATABASE_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DATABASE_MAX_CONN_LIFETIME", time.Hour),
			ConnectTimeout:  getEnvAsDuration("DATABASE_CONNECT_TIMEOUT", 10*time.Second),
		},
		MongoDB: &MongoDBConfig{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "ambulance_tracking"),
			MaxPoolSize:    getEnvAsInt("MONGODB_MAX_POOL_SIZE", 100),
			MinPoolSize:    getEnvAsInt("MONGODB_MIN_POOL_SIZE", 5),
			ConnectTimeout: getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
			SocketTimeout:  getEnvAsDuration("MONGODB_SOCKET_TIMEOUT", 30*time.Second),
		},
	}
}
