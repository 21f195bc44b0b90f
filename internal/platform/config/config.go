package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Sequence backends accepted in SEQUENCE_BACKEND.
const (
	SequenceBackendPostgres = "postgres"
	SequenceBackendRedis    = "redis"
)

// StorageConfig configures the S3-compatible attachment store.
type StorageConfig struct {
	Endpoint      string `mapstructure:"STORAGE_ENDPOINT"`
	Bucket        string `mapstructure:"STORAGE_BUCKET"`
	Region        string `mapstructure:"STORAGE_REGION"`
	AccessKey     string `mapstructure:"STORAGE_ACCESS_KEY"`
	SecretKey     string `mapstructure:"STORAGE_SECRET_KEY"`
	UsePathStyle  bool   `mapstructure:"STORAGE_USE_PATH_STYLE"`
	PublicBaseURL string `mapstructure:"STORAGE_PUBLIC_BASE_URL"` // defaults to <endpoint>/<bucket>
}

// Enabled reports whether enough is configured to talk to the store.
func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	JWTSecret          string
	JWTIssuer          string
	RedisAddr          string
	SequenceBackend    string
	RateLimit          string // ulule limiter format, e.g. "100-M"
	CORSAllowedOrigins []string
	MigrationsPath     string
	ShutdownTimeout    time.Duration
	Storage            StorageConfig
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("SEQUENCE_BACKEND", SequenceBackendPostgres)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("STORAGE_ENDPOINT", "")
	viper.SetDefault("STORAGE_BUCKET", "")
	viper.SetDefault("STORAGE_REGION", "us-east-1")
	viper.SetDefault("STORAGE_ACCESS_KEY", "")
	viper.SetDefault("STORAGE_SECRET_KEY", "")
	viper.SetDefault("STORAGE_USE_PATH_STYLE", true)
	viper.SetDefault("STORAGE_PUBLIC_BASE_URL", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.SequenceBackend = strings.ToLower(viper.GetString("SEQUENCE_BACKEND"))
	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	switch cfg.SequenceBackend {
	case SequenceBackendRedis:
		if cfg.RedisAddr == "" {
			log.Println("Warning: SEQUENCE_BACKEND=redis but REDIS_ADDR not set. Falling back to postgres.")
			cfg.SequenceBackend = SequenceBackendPostgres
		}
	case SequenceBackendPostgres:
	default:
		log.Printf("Warning: Unknown SEQUENCE_BACKEND ('%s'). Defaulting to %s.\n", cfg.SequenceBackend, SequenceBackendPostgres)
		cfg.SequenceBackend = SequenceBackendPostgres
	}

	shutdownStr := viper.GetString("SHUTDOWN_TIMEOUT")
	shutdownTimeout, err := time.ParseDuration(shutdownStr)
	if err != nil {
		shutdownTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for SHUTDOWN_TIMEOUT ('%s'). Defaulting to %s.\n", shutdownStr, shutdownTimeout)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	if len(cfg.CORSAllowedOrigins) == 0 {
		log.Println("Warning: CORS_ALLOWED_ORIGINS is empty. Defaulting to http://localhost:3000.")
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
	}
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.ShutdownTimeout = shutdownTimeout
	cfg.Storage = StorageConfig{
		Endpoint:      viper.GetString("STORAGE_ENDPOINT"),
		Bucket:        viper.GetString("STORAGE_BUCKET"),
		Region:        viper.GetString("STORAGE_REGION"),
		AccessKey:     viper.GetString("STORAGE_ACCESS_KEY"),
		SecretKey:     viper.GetString("STORAGE_SECRET_KEY"),
		UsePathStyle:  viper.GetBool("STORAGE_USE_PATH_STYLE"),
		PublicBaseURL: viper.GetString("STORAGE_PUBLIC_BASE_URL"),
	}
	if !cfg.Storage.Enabled() {
		log.Println("Warning: STORAGE_BUCKET not set. Attachment uploads are disabled.")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
