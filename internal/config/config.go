package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Backup  BackupConfig
	Storage StorageConfig
	Catalog CatalogConfig
	Server  ServerConfig
	Logger  LoggerConfig
}

type BackupConfig struct {
	SourceDir string
	WorkDir   string
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

type CatalogConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (c CatalogConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level  string
	Format string
	Dir    string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("BACKUP_SOURCE_DIR", "Qwen3-14b-finetuned-merged")
	v.SetDefault("BACKUP_WORK_DIR", ".")
	v.SetDefault("STORAGE_ENDPOINT", "localhost:9000")
	v.SetDefault("STORAGE_ACCESS_KEY", "")
	v.SetDefault("STORAGE_SECRET_KEY", "")
	v.SetDefault("STORAGE_BUCKET", "backup")
	v.SetDefault("STORAGE_PREFIX", "")
	v.SetDefault("STORAGE_USE_SSL", false)
	v.SetDefault("CATALOG_ENABLED", false)
	v.SetDefault("CATALOG_HOST", "localhost")
	v.SetDefault("CATALOG_PORT", 5432)
	v.SetDefault("CATALOG_USER", "postgres")
	v.SetDefault("CATALOG_PASSWORD", "")
	v.SetDefault("CATALOG_DATABASE", "model_backup")
	v.SetDefault("CATALOG_SSLMODE", "disable")
	v.SetDefault("CATALOG_MAX_OPEN_CONNS", 4)
	v.SetDefault("CATALOG_MAX_IDLE_CONNS", 1)
	v.SetDefault("CATALOG_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "text")
	v.SetDefault("LOGGER_DIR", "")

	// Env
	v.AutomaticEnv()

	lifetime, err := time.ParseDuration(v.GetString("CATALOG_CONN_MAX_LIFETIME"))
	if err != nil {
		lifetime = 30 * time.Minute
	}

	cfg := &Config{
		Backup: BackupConfig{
			SourceDir: v.GetString("BACKUP_SOURCE_DIR"),
			WorkDir:   v.GetString("BACKUP_WORK_DIR"),
		},
		Storage: StorageConfig{
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Prefix:    v.GetString("STORAGE_PREFIX"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
		},
		Catalog: CatalogConfig{
			Enabled:         v.GetBool("CATALOG_ENABLED"),
			Host:            v.GetString("CATALOG_HOST"),
			Port:            v.GetInt("CATALOG_PORT"),
			User:            v.GetString("CATALOG_USER"),
			Password:        v.GetString("CATALOG_PASSWORD"),
			Database:        v.GetString("CATALOG_DATABASE"),
			SSLMode:         v.GetString("CATALOG_SSLMODE"),
			MaxOpenConns:    v.GetInt("CATALOG_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("CATALOG_MAX_IDLE_CONNS"),
			ConnMaxLifetime: lifetime,
		},
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
			Dir:    v.GetString("LOGGER_DIR"),
		},
	}

	return cfg, nil
}
