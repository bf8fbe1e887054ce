package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, mysql, sqlite
		DSN    string `yaml:"url"`
	} `yaml:"database"`

	Storage struct {
		Type            string `yaml:"type"`             // local, s3, cloudflare_r2, gcs, memory; empty keeps uploads as blobs
		BasePath        string `yaml:"base_path"`        // For local storage
		BaseURL         string `yaml:"base_url"`         // Public URL base
		Bucket          string `yaml:"bucket"`           // For S3/R2/GCS
		Region          string `yaml:"region"`           // For S3
		AccessKey       string `yaml:"access_key"`       // For S3/R2
		SecretKey       string `yaml:"secret_key"`       // For S3/R2
		Endpoint        string `yaml:"endpoint"`         // For R2, custom S3 or GCS emulator
		UseSSL          bool   `yaml:"use_ssl"`          // For S3/R2
		PublicRead      bool   `yaml:"public_read"`      // Make files public
		CredentialsFile string `yaml:"credentials_file"` // For GCS
	} `yaml:"storage"`

	Upload struct {
		MaxSize     int64  `yaml:"max_size"`     // Max file size in bytes
		DefaultMime string `yaml:"default_mime"` // Used when neither header nor extension tell
	} `yaml:"upload"`

	Admin struct {
		Token string `yaml:"token"`
	} `yaml:"admin"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	Migration struct {
		PromoteBatchSize int           `yaml:"promote_batch_size"`
		DemoteBatchSize  int           `yaml:"demote_batch_size"`
		VerifyTimeout    time.Duration `yaml:"verify_timeout"`
	} `yaml:"migration"`
}

var AppConfig *Config

// LoadConfig loads the global AppConfig and exits on failure
func LoadConfig() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// GetConfig returns AppConfig, loading it on first use
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

// Load reads an optional YAML file, overlays .env and environment variables and
// fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			log.Printf("config file %s not found, using environment only", path)
		default:
			return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Server.Env, "SERVER_ENV")

	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_URL")

	setString(&cfg.Storage.Type, "STORAGE_TYPE")
	setString(&cfg.Storage.BasePath, "STORAGE_BASE_PATH")
	setString(&cfg.Storage.BaseURL, "STORAGE_BASE_URL")
	setString(&cfg.Storage.Bucket, "STORAGE_BUCKET")
	setString(&cfg.Storage.Region, "STORAGE_REGION")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&cfg.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&cfg.Storage.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")

	setString(&cfg.Admin.Token, "ADMIN_TOKEN")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if cfg.Upload.DefaultMime == "" {
		cfg.Upload.DefaultMime = "image/jpeg"
	}
	if cfg.Migration.PromoteBatchSize == 0 {
		cfg.Migration.PromoteBatchSize = 50
	}
	if cfg.Migration.DemoteBatchSize == 0 {
		cfg.Migration.DemoteBatchSize = 500
	}
	if cfg.Migration.VerifyTimeout == 0 {
		cfg.Migration.VerifyTimeout = 5 * time.Second
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
