// Package config reads the configuration of the wallet from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/envelope-zero/wallet/pkg/persistence"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/text/currency"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

var storageBackends = []string{StorageMemory, StorageFile, StorageSQLite}

type Config struct {
	// HTTP server
	GinMode   string
	LogFormat string
	APIURL    string
	Port      string

	// Persistence
	StorageBackend string
	DataDir        string
	SQLitePath     string

	// Change notifications
	AMQPURL      string
	AMQPExchange string

	// Display
	Currency string
}

// Load reads the configuration from the environment. Variables in the
// files are added to the environment first, without overriding variables
// that are already set. Files that do not exist are skipped.
func Load(files ...string) (*Config, error) {
	for _, file := range files {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not read %s: %w", file, err)
		}
	}

	dataDir := getEnv("DATA_DIR", "data")

	return &Config{
		GinMode:   getEnv("GIN_MODE", gin.ReleaseMode),
		LogFormat: os.Getenv("LOG_FORMAT"),
		APIURL:    getEnv("API_URL", "http://localhost:8080"),
		Port:      getEnv("PORT", "8080"),

		StorageBackend: getEnv("STORAGE_BACKEND", StorageSQLite),
		DataDir:        dataDir,
		SQLitePath:     getEnv("SQLITE_PATH", filepath.Join(dataDir, "wallet.db")),

		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "wallet"),

		Currency: strings.ToUpper(getEnv("CURRENCY", "USD")),
	}, nil
}

// Validate checks the configuration and returns all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid API URL '%s': must be an absolute URL", c.APIURL))
	}

	if !slices.Contains([]string{gin.DebugMode, gin.ReleaseMode, gin.TestMode}, c.GinMode) {
		problems = append(problems, fmt.Sprintf("invalid gin mode '%s'", c.GinMode))
	}

	if !slices.Contains(storageBackends, c.StorageBackend) {
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be one of %v", c.StorageBackend, storageBackends))
	}

	if c.StorageBackend == StorageFile && c.DataDir == "" {
		problems = append(problems, "data directory cannot be empty when using the file backend")
	}

	if c.StorageBackend == StorageSQLite && c.SQLitePath == "" {
		problems = append(problems, "SQLite database path cannot be empty when using the sqlite backend")
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", u.Scheme))
		}

		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if _, err := currency.ParseISO(c.Currency); err != nil {
		problems = append(problems, fmt.Sprintf("invalid currency '%s': must be an ISO 4217 code", c.Currency))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

// URL returns the parsed API URL. Only valid after Validate succeeded.
func (c *Config) URL() *url.URL {
	u, _ := url.Parse(c.APIURL)
	return u
}

// Unit returns the currency amounts are displayed in.
func (c *Config) Unit() currency.Unit {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.USD
	}

	return unit
}

// ConfigureLogging sets the gin mode and the global logger.
//
// The log format defaults to human readable for debug mode and JSON
// otherwise.
func (c *Config) ConfigureLogging(out io.Writer) {
	gin.SetMode(c.GinMode)

	output := out
	if (c.LogFormat == "" && gin.IsDebugging()) || c.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: out}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

// OpenStorage creates the persistence adapter for the configured backend.
// The returned function releases it.
func (c *Config) OpenStorage() (persistence.Adapter, func() error, error) {
	noop := func() error { return nil }

	switch c.StorageBackend {
	case StorageMemory:
		log.Warn().Msg("using in-memory storage, all data is lost on exit")
		return persistence.NewMemory(), noop, nil

	case StorageFile:
		f, err := persistence.NewFile(c.DataDir)
		if err != nil {
			return nil, noop, err
		}
		return f, noop, nil

	case StorageSQLite:
		if dir := filepath.Dir(c.SQLitePath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, noop, fmt.Errorf("could not create directory for the database: %w", err)
			}
		}

		s, err := persistence.NewSQLite(c.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown storage backend '%s'", c.StorageBackend)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
