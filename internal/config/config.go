// Package config loads checkedit settings from defaults, an optional YAML
// file, a .env file and CHECKEDIT_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Store struct {
	Driver    string `yaml:"driver" validate:"oneof=file sqlite mysql redis"`
	Path      string `yaml:"path" validate:"required_if=Driver file"`
	DSN       string `yaml:"dsn" validate:"required_if=Driver sqlite,required_if=Driver mysql"`
	RedisAddr string `yaml:"redis_addr" validate:"required_if=Driver redis"`
}

type Log struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

type Server struct {
	Addr     string `yaml:"addr" validate:"required"`
	APIToken string `yaml:"api_token"`
}

type Config struct {
	Locale          string `yaml:"locale" validate:"required"`
	DefaultTemplate string `yaml:"default_template" validate:"required"`
	TemplatesDir    string `yaml:"templates_dir"`
	FontPath        string `yaml:"font_path"`
	MaxBatch        int    `yaml:"max_batch" validate:"gte=1"`
	Store           Store  `yaml:"store"`
	Log             Log    `yaml:"log"`
	Server          Server `yaml:"server"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Locale:          "zh-TW",
		DefaultTemplate: "hk",
		MaxBatch:        50,
		Store: Store{
			Driver: "file",
			Path:   "checkedit-templates.json",
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// Load reads the YAML file at path, when not empty, and any .env file in
// the working directory.
func Load(path string) (Config, error) {
	return LoadFrom(path, ".env")
}

// LoadFrom is Load with explicit .env files. Missing .env files are
// ignored; variables already in the environment win over them.
func LoadFrom(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", file, err)
		}
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Locale, "CHECKEDIT_LOCALE")
	setString(&cfg.DefaultTemplate, "CHECKEDIT_DEFAULT_TEMPLATE")
	setString(&cfg.TemplatesDir, "CHECKEDIT_TEMPLATES_DIR")
	setString(&cfg.FontPath, "CHECKEDIT_FONT_PATH")
	setString(&cfg.Store.Driver, "CHECKEDIT_STORE")
	setString(&cfg.Store.Path, "CHECKEDIT_STORE_PATH")
	setString(&cfg.Store.DSN, "CHECKEDIT_DSN")
	setString(&cfg.Store.RedisAddr, "CHECKEDIT_REDIS_ADDR")
	setString(&cfg.Log.Level, "CHECKEDIT_LOG_LEVEL")
	setString(&cfg.Log.Format, "CHECKEDIT_LOG_FORMAT")
	setString(&cfg.Server.Addr, "CHECKEDIT_ADDR")
	setString(&cfg.Server.APIToken, "CHECKEDIT_API_TOKEN")

	if v := strings.TrimSpace(os.Getenv("CHECKEDIT_MAX_BATCH")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: CHECKEDIT_MAX_BATCH: %w", err)
		}
		cfg.MaxBatch = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
