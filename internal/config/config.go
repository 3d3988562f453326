// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Repository RepositoryConfig `mapstructure:"repository"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	SecretKey       string        `mapstructure:"secret_key"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	RateLimit       int           `mapstructure:"rate_limit"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Path           string        `mapstructure:"path"`
	URL            string        `mapstructure:"url"`
	MaxConnections int           `mapstructure:"max_connections"`
	MinConnections int           `mapstructure:"min_connections"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

type RepositoryConfig struct {
	Type string `mapstructure:"type"` // "sqlite", "postgres" или "inmemory"
}

const DefaultSecretKey = "sample_secret_key"

// Options задаёт, откуда читать файлы конфигурации. Пустые пути пропускаются.
type Options struct {
	ConfigFile string
	EnvFile    string
}

func DefaultOptions() Options {
	return Options{
		ConfigFile: "config.yml",
		EnvFile:    ".env",
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.secret_key", DefaultSecretKey)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.rate_limit", 100)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.path", "instance/site.db")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 2)
	v.SetDefault("database.idle_timeout", 5*time.Minute)

	v.SetDefault("logging.development", true)
	v.SetDefault("repository.type", "sqlite")
}

// короткие имена переменных окружения, которые понимал прежний деплой
func bindLegacyEnv(v *viper.Viper) error {
	legacy := map[string]string{
		"server.port":       "PORT",
		"server.secret_key": "SECRET_KEY",
		"database.url":      "DATABASE_URL",
	}
	for key, env := range legacy {
		if err := v.BindEnv(key, env, "TRACKER_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_"))); err != nil {
			return fmt.Errorf("привязка %s: %w", env, err)
		}
	}
	return nil
}

func Load() (*Config, error) {
	return LoadWithOptions(DefaultOptions())
}

func LoadWithOptions(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := mergeFile(v, opts.ConfigFile, "yaml"); err != nil {
		return nil, err
	}
	// .env читается как ещё один слой конфигурации, окружение процесса не меняется
	if err := mergeEnvFile(v, opts.EnvFile); err != nil {
		return nil, err
	}

	v.SetEnvPrefix("TRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func mergeFile(v *viper.Viper, path, format string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType(format)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("ошибка чтения %s: %w", path, err)
	}
	return nil
}

func mergeEnvFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	dotenv := viper.New()
	dotenv.SetConfigFile(path)
	dotenv.SetConfigType("env")
	if err := dotenv.ReadInConfig(); err != nil {
		return fmt.Errorf("ошибка чтения %s: %w", path, err)
	}

	known := map[string]string{
		"port":         "server.port",
		"secret_key":   "server.secret_key",
		"database_url": "database.url",
	}
	layer := map[string]any{}
	for _, key := range dotenv.AllKeys() {
		target, ok := known[key]
		if !ok {
			target = strings.Replace(strings.TrimPrefix(key, "tracker_"), "_", ".", 1)
		}
		section, name, nested := strings.Cut(target, ".")
		if !nested {
			layer[section] = dotenv.Get(key)
			continue
		}
		inner, _ := layer[section].(map[string]any)
		if inner == nil {
			inner = map[string]any{}
			layer[section] = inner
		}
		inner[name] = dotenv.Get(key)
	}
	// слой конфигурации, а не Set: переменные окружения должны оставаться приоритетнее
	return v.MergeConfigMap(layer)
}

func (c *Config) Validate() error {
	switch c.Repository.Type {
	case "sqlite", "inmemory":
	case "postgres":
		if c.Database.URL == "" {
			return errors.New("для repository.type=postgres нужен database.url")
		}
	default:
		return fmt.Errorf("неизвестный тип репозитория %q", c.Repository.Type)
	}
	if c.Server.Port == "" {
		return errors.New("не задан server.port")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func (c *Config) SecretKeyIsDefault() bool {
	return c.Server.SecretKey == DefaultSecretKey
}
