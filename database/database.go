package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	configpkg "github.com/fyb-funds/fund-service/config"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DatabaseType represents the type of database to use
type DatabaseType string

const (
	DatabaseTypeSQLite   DatabaseType = "sqlite"
	DatabaseTypePostgres DatabaseType = "postgres"
	DatabaseTypeMongo    DatabaseType = "mongo"
)

// Config holds database connection configuration
type Config struct {
	// Database type (sqlite, postgres or mongo)
	Type DatabaseType

	// SQLite configuration
	DatabasePath string // Path to SQLite database file

	// PostgreSQL configuration
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string

	// MongoDB configuration
	MongoURI      string
	MongoDatabase string

	// Connection pool settings (SQL backends)
	MaxOpenConns    int           // Maximum number of open connections
	MaxIdleConns    int           // Maximum number of idle connections
	ConnMaxLifetime time.Duration // Maximum amount of time a connection may be reused
	ConnMaxIdleTime time.Duration // Maximum amount of time a connection may be idle before being closed
}

// NewDatabaseConfig creates a new database configuration from environment variables.
// Configuration priority:
//  1. If DB_TYPE=postgres → PostgreSQL (DB_HOST, DB_PASSWORD, etc. required)
//  2. If DB_TYPE=mongo → MongoDB (MONGO_URI, MONGO_DB)
//  3. If DB_TYPE=sqlite OR DB_PATH is set → File-based SQLite (default: ./data/fund.db)
//     Note: Unknown DB_TYPE values also default to file-based SQLite
//  4. If no database configuration at all → In-memory SQLite (:memory:)
func NewDatabaseConfig() *Config {
	dbTypeStr := strings.ToLower(configpkg.GetEnvOrDefault("DB_TYPE", ""))
	var dbType DatabaseType

	dbTypeSet := os.Getenv("DB_TYPE") != ""
	dbPathSet := os.Getenv("DB_PATH") != ""

	hasSQLiteConfig := dbPathSet || (dbTypeSet && dbTypeStr != "postgres" && dbTypeStr != "postgresql" && dbTypeStr != "mongo" && dbTypeStr != "mongodb")

	switch dbTypeStr {
	case "postgres", "postgresql":
		dbType = DatabaseTypePostgres
	case "mongo", "mongodb":
		dbType = DatabaseTypeMongo
	case "sqlite", "":
		dbType = DatabaseTypeSQLite
	default:
		slog.Warn("Unknown DB_TYPE, defaulting to sqlite", "db_type", dbTypeStr)
		dbType = DatabaseTypeSQLite
	}

	config := &Config{
		Type: dbType,
	}

	switch dbType {
	case DatabaseTypeSQLite:
		// SQLite serializes writes through a single connection to avoid
		// "database is locked" errors under concurrent mutations.
		config.MaxOpenConns = parseIntOrDefault("DB_MAX_OPEN_CONNS", 1)
		config.MaxIdleConns = parseIntOrDefault("DB_MAX_IDLE_CONNS", 1)

		if !hasSQLiteConfig {
			config.DatabasePath = ":memory:"
			slog.Info("No database configuration found, using in-memory SQLite")
		} else {
			config.DatabasePath = configpkg.GetEnvOrDefault("DB_PATH", "./data/fund.db")
		}

		if config.DatabasePath != ":memory:" {
			dbDir := filepath.Dir(config.DatabasePath)
			if err := os.MkdirAll(dbDir, 0o755); err != nil {
				slog.Warn("Failed to create database directory", "path", dbDir, "error", err)
			}
		}

		slog.Info("Database configuration (SQLite)",
			"database_path", config.DatabasePath,
			"max_open_conns", config.MaxOpenConns,
			"max_idle_conns", config.MaxIdleConns,
		)

	case DatabaseTypePostgres:
		config.Host = configpkg.GetEnvOrDefault("DB_HOST", "localhost")
		config.Port = configpkg.GetEnvOrDefault("DB_PORT", "5432")
		config.Username = configpkg.GetEnvOrDefault("DB_USERNAME", "postgres")
		config.Password = configpkg.GetEnvOrDefault("DB_PASSWORD", "")
		config.Database = configpkg.GetEnvOrDefault("DB_NAME", "fund_db")
		config.SSLMode = configpkg.GetEnvOrDefault("DB_SSLMODE", "disable")

		config.MaxOpenConns = parseIntOrDefault("DB_MAX_OPEN_CONNS", 25)
		config.MaxIdleConns = parseIntOrDefault("DB_MAX_IDLE_CONNS", 5)

		slog.Info("Database configuration (PostgreSQL)",
			"host", config.Host,
			"port", config.Port,
			"database", config.Database,
			"username", config.Username,
			"sslmode", config.SSLMode,
			"max_open_conns", config.MaxOpenConns,
			"max_idle_conns", config.MaxIdleConns,
		)

	case DatabaseTypeMongo:
		config.MongoURI = configpkg.GetEnvOrDefault("MONGO_URI", "mongodb://localhost:27017")
		config.MongoDatabase = configpkg.GetEnvOrDefault("MONGO_DB", "fund_db")

		slog.Info("Database configuration (MongoDB)",
			"database", config.MongoDatabase,
		)
	}

	config.ConnMaxLifetime = parseDurationOrDefault("DB_CONN_MAX_LIFETIME", time.Hour)
	config.ConnMaxIdleTime = parseDurationOrDefault("DB_CONN_MAX_IDLE_TIME", 15*time.Minute)

	return config
}

// NewStore connects to the configured backend and returns the matching Store
// implementation. Lifecycle is owned by the caller; main closes the store on
// shutdown.
func NewStore(ctx context.Context, config *Config) (Store, error) {
	if config.Type == DatabaseTypeMongo {
		client, err := ConnectMongo(ctx, config)
		if err != nil {
			return nil, err
		}
		return NewMongoStore(client, config.MongoDatabase), nil
	}

	gormDB, err := ConnectGormDB(config)
	if err != nil {
		return nil, err
	}
	return NewGormStore(gormDB)
}

// ConnectGormDB establishes a GORM connection to the database (SQLite or PostgreSQL)
func ConnectGormDB(config *Config) (*gorm.DB, error) {
	var gormDB *gorm.DB
	var err error

	if config.Type == DatabaseTypeSQLite {
		slog.Info("Attempting GORM SQLite database connection", "path", config.DatabasePath)

		gormDB, err = gorm.Open(sqlite.Open(config.DatabasePath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open GORM SQLite database connection: %w", err)
		}
	} else {
		// Use net/url to properly encode credentials (handles special characters in passwords)
		dsnURL := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(config.Username, config.Password),
			Host:   fmt.Sprintf("%s:%s", config.Host, config.Port),
			Path:   config.Database,
		}
		query := dsnURL.Query()
		query.Set("sslmode", config.SSLMode)
		dsnURL.RawQuery = query.Encode()

		gormDB, err = gorm.Open(postgres.Open(dsnURL.String()), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open GORM PostgreSQL database connection: %w", err)
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return gormDB, nil
}

// ConnectMongo establishes a MongoDB client connection and verifies it with a ping.
func ConnectMongo(ctx context.Context, config *Config) (*mongo.Client, error) {
	slog.Info("Attempting MongoDB connection")

	client, err := mongo.Connect(ctx, mongooptions.Client().ApplyURI(config.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

// parseIntOrDefault parses an integer environment variable with a fallback default
func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
		slog.Warn("Invalid integer environment variable, using default", "key", key, "value", os.Getenv(key), "default", defaultValue)
	}
	return defaultValue
}

// parseDurationOrDefault parses a duration environment variable with a fallback default
func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
		slog.Warn("Invalid duration environment variable, using default", "key", key, "value", os.Getenv(key), "default", defaultValue)
	}
	return defaultValue
}
