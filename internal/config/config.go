package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	TokenSecret   string `yaml:"tokenSecret"`
	TokenTTLHours int    `yaml:"tokenTTLHours"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var Default = Config{
	Server:   ServerConfig{Address: ":8080"},
	Database: DatabaseConfig{Path: "db.sqlite"},
	Auth:     AuthConfig{TokenTTLHours: 24},
	Log:      LogConfig{Level: "info", Format: "json"},
}

// Load reads the config file at path, writing the defaults there first if it
// does not exist yet. A .env file and the environment override the file, the
// token secret in particular is expected to come from the environment.
func Load(path string) (*Config, error) {
	godotenv.Load()

	cfg := Default

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("TOKEN_SECRET"); v != "" {
		cfg.Auth.TokenSecret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if cfg.Auth.TokenSecret == "" {
		return nil, errors.New("TOKEN_SECRET is not set")
	}
	if cfg.Auth.TokenTTLHours <= 0 {
		cfg.Auth.TokenTTLHours = Default.Auth.TokenTTLHours
	}

	return &cfg, nil
}
