// Package config loads the application configuration from the environment,
// with command line flags as overrides.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Default listen port for the RPC surface.
const DefaultPort = 9090

// Config holds the application configuration
type Config struct {
	Host       string
	Port       int
	LogLevel   string
	LogFormat  string
	Env        string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Cache and pool sizing.
	CacheSize  int
	DBMaxConns int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Host:       getEnv("HOST", ""),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "text"),
		Env:        getEnv("ENVIRONMENT", "dev"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "gamedb"),
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cfg.CacheSize, err = getEnvInt("CACHE_SIZE", 1024)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxConns, err = getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// BindFlags registers command line overrides for the common settings.
// flag.Parse must run before the config is used.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Host, "host", c.Host, "listen host")
	fs.IntVar(&c.Port, "port", c.Port, "listen port")
	fs.StringVar(&c.DBHost, "db-host", c.DBHost, "database host")
	fs.StringVar(&c.DBPort, "db-port", c.DBPort, "database port")
	fs.StringVar(&c.DBUser, "db-user", c.DBUser, "database user")
	fs.StringVar(&c.DBPassword, "db-password", c.DBPassword, "database password")
	fs.StringVar(&c.DBName, "database", c.DBName, "database name")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return parsed, nil
}

// ListenAddr returns the host:port the server binds.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
