// Package config loads service configuration from defaults, an
// optional YAML file, and environment variable overrides, in that
// order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// defaultMaxBodyBytes caps an upload request body at 500 MiB.
	defaultMaxBodyBytes = 500 * 1024 * 1024

	defaultPublicURLTemplate = "https://gxzsxowfeztwrtidfdru.storage.supabase.co/storage/v1/object/public/{bucket}/{filename}"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "60s" or "15m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("config: duration must be a string like \"60s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Identity IdentityConfig `yaml:"identity"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes      int64    `yaml:"max_body_bytes"`
}

// StorageConfig controls the S3-compatible storage gateway client.
type StorageConfig struct {
	Endpoint           string   `yaml:"endpoint"`
	Region             string   `yaml:"region"`
	AccessKeyID        string   `yaml:"access_key_id"`
	SecretAccessKey    string   `yaml:"secret_access_key"`
	ForcePathStyle     bool     `yaml:"force_path_style"`
	ConnectTimeout     Duration `yaml:"connect_timeout"`
	OperationTimeout   Duration `yaml:"operation_timeout"`
	InsecureSkipVerify bool     `yaml:"insecure_skip_verify"`
	PublicURLTemplate  string   `yaml:"public_url_template"`
}

// DatabaseConfig controls the Postgres connection.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// IdentityConfig controls the identity provider client.
type IdentityConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load builds the configuration. Defaults are applied first, then the
// YAML file at path (if it exists), then environment variables.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration(10 * time.Second),
			ShutdownTimeout:   Duration(30 * time.Second),
			MaxBodyBytes:      defaultMaxBodyBytes,
		},
		Storage: StorageConfig{
			Region:            "us-east-1",
			ForcePathStyle:    true,
			ConnectTimeout:    Duration(60 * time.Second),
			OperationTimeout:  Duration(900 * time.Second),
			PublicURLTemplate: defaultPublicURLTemplate,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Addr = envOrDefault("DYNOCOLLECT_ADDR", cfg.Server.Addr)
	cfg.Server.MaxBodyBytes = envInt64("DYNOCOLLECT_MAX_BODY_BYTES", cfg.Server.MaxBodyBytes)

	cfg.Storage.Endpoint = envOrDefault("DYNOCOLLECT_STORAGE_ENDPOINT", cfg.Storage.Endpoint)
	cfg.Storage.Region = envOrDefault("DYNOCOLLECT_STORAGE_REGION", cfg.Storage.Region)
	cfg.Storage.AccessKeyID = envOrDefault("DYNOCOLLECT_STORAGE_ACCESS_KEY_ID", cfg.Storage.AccessKeyID)
	cfg.Storage.SecretAccessKey = envOrDefault("DYNOCOLLECT_STORAGE_SECRET_ACCESS_KEY", cfg.Storage.SecretAccessKey)
	cfg.Storage.InsecureSkipVerify = envBool("DYNOCOLLECT_STORAGE_INSECURE_SKIP_VERIFY", cfg.Storage.InsecureSkipVerify)
	cfg.Storage.PublicURLTemplate = envOrDefault("DYNOCOLLECT_STORAGE_PUBLIC_URL_TEMPLATE", cfg.Storage.PublicURLTemplate)

	cfg.Database.DSN = envOrDefault("DYNOCOLLECT_DATABASE_DSN", cfg.Database.DSN)

	cfg.Identity.BaseURL = envOrDefault("DYNOCOLLECT_IDENTITY_BASE_URL", cfg.Identity.BaseURL)
	cfg.Identity.APIKey = envOrDefault("DYNOCOLLECT_IDENTITY_API_KEY", cfg.Identity.APIKey)

	cfg.Logging.Level = envOrDefault("DYNOCOLLECT_LOG_LEVEL", cfg.Logging.Level)
}

func (c *Config) validate() error {
	if c.Storage.Endpoint == "" {
		return fmt.Errorf("config: storage.endpoint is required")
	}
	if c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "" {
		return fmt.Errorf("config: storage credentials are required")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("config: database.dsn is required")
	}
	if c.Identity.BaseURL == "" {
		return fmt.Errorf("config: identity.base_url is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: server.max_body_bytes must be positive")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
