package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	SQLitePath  string

	JWTSecret      []byte
	RefreshSecret  []byte
	AccessTokenTTL time.Duration

	SessionBackend string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	AllowedOrigins string
	LogLevel       string
	KafkaBrokers   []string

	S3 S3Config
}

// S3Config locates the object store for read documents. Region can be empty
// for MinIO.
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Enabled reports whether every setting needed to reach the bucket is present.
func (s S3Config) Enabled() bool {
	return s.Endpoint != "" && s.Bucket != "" && s.AccessKey != "" && s.SecretKey != ""
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := Config{
		Port: EnvDefault("PORT", "8080"),

		DBDriver:    strings.ToLower(EnvDefault("DB_DRIVER", "postgres")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      os.Getenv("DB_HOST"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBPort:      EnvDefault("DB_PORT", "5432"),
		DBSSLMode:   EnvDefault("DB_SSLMODE", "disable"),
		SQLitePath:  EnvDefault("SQLITE_PATH", "readgroup.db"),

		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		RefreshSecret:  []byte(os.Getenv("REFRESH_TOKEN_SECRET")),
		AccessTokenTTL: EnvDurationDefault("ACCESS_TOKEN_TTL", 15*time.Minute),

		SessionBackend: strings.ToLower(EnvDefault("SESSION_BACKEND", "memory")),
		RedisAddr:      EnvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        EnvIntDefault("REDIS_DB", 0),

		AllowedOrigins: EnvDefault("ALLOWED_ORIGINS", "*"),
		LogLevel:       EnvDefault("LOG_LEVEL", "info"),
		KafkaBrokers:   CSV(os.Getenv("KAFKA_BROKERS")),

		S3: S3Config{
			Endpoint:  EnvDefault("S3_ENDPOINT", ""),
			Region:    EnvDefault("S3_REGION", ""),
			Bucket:    EnvDefault("S3_BUCKET", ""),
			AccessKey: EnvDefault("S3_ACCESS_KEY", ""),
			SecretKey: EnvDefault("S3_SECRET_KEY", ""),
		},
	}

	if useSSL := EnvDefault("S3_USE_SSL", ""); useSSL != "" {
		b, err := strconv.ParseBool(useSSL)
		if err != nil {
			return Config{}, fmt.Errorf("invalid S3_USE_SSL: %w", err)
		}
		cfg.S3.UseSSL = b
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.JWTSecret) == 0 {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.RefreshSecret) == 0 {
		return errors.New("REFRESH_TOKEN_SECRET is required")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.SessionBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported SESSION_BACKEND %q", c.SessionBackend)
	}
	return nil
}

// PostgresDSN prefers DATABASE_URL and falls back to the discrete DB_* keys.
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
