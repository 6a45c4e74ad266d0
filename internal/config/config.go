package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig holds PostgreSQL settings for the recent files store.
// Postgres is optional; with no host the store falls back to a local file.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	ApplicationName    string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// Enabled reports whether a Postgres host was configured.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// MinIOConfig holds settings for reading s3:// URIs from MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether an endpoint was configured.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// StorageConfig holds local directories used for staging and history.
type StorageConfig struct {
	// CacheDir is the preferred base for materialized files.
	CacheDir string
	// DocumentDir is used when CacheDir is empty.
	DocumentDir string
	// StateDir holds the key-value files used when Postgres is off.
	StateDir string
}

// ViewerConfig holds the external viewer policy.
type ViewerConfig struct {
	// SuppressChooser hides the OS "open with" dialog when opening files.
	SuppressChooser bool
	// OpenCommand overrides the platform command used to open files.
	OpenCommand     []string
	// ChooserCommand overrides the command used when the chooser is shown.
	ChooserCommand  []string
	// PickCommand overrides the file dialog used by "fileview open" without
	// an argument. It must print the chosen path on stdout.
	PickCommand     []string
	// Timeout bounds every launcher invocation.
	Timeout         time.Duration
}

// CacheConfig holds settings of the materialization cache.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string
	Port      string
	LogLevel  slog.Level
	LogFormat string // "json" (default) or "text"
	Database  DatabaseConfig
	MinIO     MinIOConfig
	Storage   StorageConfig
	Viewer    ViewerConfig
	Cache     CacheConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	cacheBase, _ := os.UserCacheDir()
	configBase, _ := os.UserConfigDir()
	homeDir, _ := os.UserHomeDir()

	return &AppConfig{
		AppHost:   getEnv("APP_HOST", "localhost:8080"),
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			ApplicationName:    getEnv("DB_APPLICATION_NAME", "fileview"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 4),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Storage: StorageConfig{
			CacheDir:    getEnv("FILEVIEW_CACHE_DIR", joinIfSet(cacheBase, "fileview")),
			DocumentDir: getEnv("FILEVIEW_DOCUMENT_DIR", joinIfSet(homeDir, "Documents")),
			StateDir:    getEnv("FILEVIEW_STATE_DIR", joinIfSet(configBase, "fileview")),
		},
		Viewer: ViewerConfig{
			SuppressChooser: getEnvBool("VIEWER_SUPPRESS_CHOOSER", true),
			OpenCommand:     getEnvList("VIEWER_OPEN_COMMAND"),
			ChooserCommand:  getEnvList("VIEWER_CHOOSER_COMMAND"),
			PickCommand:     getEnvList("VIEWER_PICK_COMMAND"),
			Timeout:         getEnvDuration("VIEWER_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			Size: getEnvInt("MATERIALIZE_CACHE_SIZE", 64),
			TTL:  getEnvDuration("MATERIALIZE_CACHE_TTL", 10*time.Minute),
		},
	}
}

// SetupLogger builds the process logger writing to w and installs it as the slog default.
func SetupLogger(cfg *AppConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func joinIfSet(base string, elem ...string) string {
	if base == "" {
		return ""
	}
	return filepath.Join(append([]string{base}, elem...)...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func getEnvLevel(key string, def slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			return lvl
		}
	}
	return def
}

// getEnvList splits a whitespace separated command line.
func getEnvList(key string) []string {
	return strings.Fields(os.Getenv(key))
}
