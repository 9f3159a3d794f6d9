package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	App      AppConfig
	Locale   LocaleConfig
	Store    StoreConfig
	Firebase FirebaseConfig
	Blob     BlobConfig
	Redis    RedisConfig
	Sync     SyncConfig
	Auth     AuthConfig
	Contact  ContactConfig
}

type ServerConfig struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

type AppConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"cml25-backend"`
}

type LocaleConfig struct {
	Locales []string `env:"LOCALES" envSeparator:"," envDefault:"de,en"`
	Default string   `env:"DEFAULT_LOCALE" envDefault:"de"`
}

// StoreConfig selects the document store backing projects, users and contacts.
type StoreConfig struct {
	Driver string `env:"STORE_DRIVER" envDefault:"memory"`
	DSN    string `env:"DB_DSN"`
}

type FirebaseConfig struct {
	CredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
	ProjectID       string `env:"FIREBASE_PROJECT_ID"`
	StorageBucket   string `env:"FIREBASE_STORAGE_BUCKET"`
}

type BlobConfig struct {
	Driver string `env:"BLOB_DRIVER" envDefault:"firebase"`
	S3     S3Config
}

type S3Config struct {
	Endpoint  string `env:"S3_ENDPOINT"`
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	PublicURL string `env:"S3_PUBLIC_URL"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

type SyncConfig struct {
	GitHubToken  string        `env:"GITHUB_TOKEN"`
	GitHubAPIURL string        `env:"GITHUB_API_URL" envDefault:"https://api.github.com"`
	LLMAPIKey    string        `env:"LLM_API_KEY"`
	LLMBaseURL   string        `env:"LLM_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	LLMModel     string        `env:"LLM_MODEL" envDefault:"google/gemini-3-flash-preview"`
	LLMRate      float64       `env:"LLM_RATE_PER_SEC" envDefault:"5"`
	Schedule     string        `env:"SYNC_SCHEDULE" envDefault:"0 0 3 * * *"`
	HTTPTimeout  time.Duration `env:"SYNC_HTTP_TIMEOUT" envDefault:"60s"`
}

type AuthConfig struct {
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`
	// Disabled skips token verification. Development only.
	Disabled bool `env:"AUTH_DISABLED" envDefault:"false"`
}

type ContactConfig struct {
	RatePerMinute int `env:"CONTACT_RATE_PER_MIN" envDefault:"5"`
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) normalize() {
	c.Auth.AdminEmails = normalizeList(c.Auth.AdminEmails)
	c.Locale.Locales = normalizeList(c.Locale.Locales)
	c.Locale.Default = strings.ToLower(strings.TrimSpace(c.Locale.Default))
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	c.Blob.Driver = strings.ToLower(strings.TrimSpace(c.Blob.Driver))
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Locale.Locales) == 0 {
		return fmt.Errorf("LOCALES is required")
	}
	found := false
	for _, l := range c.Locale.Locales {
		if l == c.Locale.Default {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("DEFAULT_LOCALE %q is not one of LOCALES", c.Locale.Default)
	}

	switch c.Store.Driver {
	case "memory":
	case "firestore":
		if c.Firebase.CredentialsPath == "" && c.Firebase.ProjectID == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH or FIREBASE_PROJECT_ID is required for firestore")
		}
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("DB_DSN is required for postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.Blob.Driver {
	case "none", "firebase":
	case "s3":
		if c.Blob.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for s3")
		}
	default:
		return fmt.Errorf("unknown BLOB_DRIVER %q", c.Blob.Driver)
	}

	return nil
}

// IsAdminEmail reports whether email is on the ADMIN_EMAILS allow-list.
func (c AuthConfig) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, e := range c.AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
