package utils

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

type Config struct {
	HTTPAddr string `env:"VAULT_HTTP_ADDR" envDefault:":8080"`
	TCPAddr  string `env:"VAULT_TCP_ADDR" envDefault:":7070"`
	LogLevel string `env:"VAULT_LOG_LEVEL" envDefault:"info"`

	// DatasetPath replaces the embedded character list when set.
	DatasetPath string `env:"VAULT_DATASET_PATH"`

	OverrideBackend string `env:"VAULT_OVERRIDE_BACKEND" envDefault:"file"`
	OverridesPath   string `env:"VAULT_OVERRIDES_PATH" envDefault:"data/overrides.json"`
	WatchOverrides  bool   `env:"VAULT_WATCH_OVERRIDES" envDefault:"false"`
	DBPath          string `env:"VAULT_DB_PATH"`

	UploadDir     string `env:"VAULT_UPLOAD_DIR" envDefault:"data/uploads"`
	UploadBaseURL string `env:"VAULT_UPLOAD_BASE_URL" envDefault:"/uploads"`
	BlobEndpoint  string `env:"VAULT_BLOB_ENDPOINT"`
	BlobToken     string `env:"VAULT_BLOB_TOKEN"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type AdminConfig struct {
	// Password is compared for equality. An empty password with no hash
	// rejects every admin request.
	Password     string `env:"ADMIN_PASSWORD"`
	PasswordHash string `env:"VAULT_ADMIN_PASSWORD_HASH"`
	// JWTSecret left empty disables bearer tokens; the password still works.
	JWTSecret   string        `env:"VAULT_JWT_SECRET"`
	JWTIssuer   string        `env:"VAULT_JWT_ISSUER" envDefault:"slayervault"`
	JWTDuration time.Duration `env:"VAULT_JWT_TTL" envDefault:"12h"`
}

func LoadAdminConfig() (AdminConfig, error) {
	var cfg AdminConfig
	if err := ParseEnv(&cfg); err != nil {
		return AdminConfig{}, err
	}
	return cfg, nil
}

type GrpcConfig struct {
	Addr string `env:"VAULT_GRPC_ADDR" envDefault:":9090"`
}

func LoadGrpcConfig() (GrpcConfig, error) {
	var cfg GrpcConfig
	if err := ParseEnv(&cfg); err != nil {
		return GrpcConfig{}, err
	}
	return cfg, nil
}
