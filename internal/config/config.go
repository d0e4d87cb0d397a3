// Package config loads application settings from configs/config.yml with
// environment overrides (HOUSE_RENTAL_DB_PATH, HOUSE_RENTAL_JWT_SECRET, ...).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "HOUSE_RENTAL"

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type Config struct {
	Port   string       `mapstructure:"port"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Upload UploadConfig `mapstructure:"upload"`
	CORS   CORSConfig   `mapstructure:"cors"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"` // empty disables the rotating file sink
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

type DBConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	MongoURI string `mapstructure:"mongo_uri"`
	MongoDB  string `mapstructure:"mongo_db"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type UploadConfig struct {
	Dir            string `mapstructure:"dir"`
	MaxFiles       int    `mapstructure:"max_files"`
	MaxHousePhotos int    `mapstructure:"max_house_photos"`
	MaxFileBytes   int64  `mapstructure:"max_file_bytes"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"` // empty allows any origin
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", "app.db")
	v.SetDefault("db.mongo_uri", "")
	v.SetDefault("db.mongo_db", "house_rental")
	// keys need a default so that env-only values survive Unmarshal
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", time.Hour)
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_files", 1)
	v.SetDefault("upload.max_house_photos", 5)
	v.SetDefault("upload.max_file_bytes", 5<<20)
	v.SetDefault("cors.allowed_origins", []string{})
}

// Load reads <dir>/config.yml (a missing file is not an error) and applies
// environment overrides on top of the defaults.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverSQLite:
	case DriverMongo:
		if c.DB.MongoURI == "" {
			return errors.New("db.mongo_uri is required for the mongo driver")
		}
	default:
		return fmt.Errorf("unknown db.driver %q", c.DB.Driver)
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("jwt.secret must be set")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("jwt.ttl must be positive")
	}
	if c.Upload.MaxFiles < 1 {
		return errors.New("upload.max_files must be at least 1")
	}
	if c.Upload.MaxHousePhotos < 1 {
		return errors.New("upload.max_house_photos must be at least 1")
	}
	return nil
}
