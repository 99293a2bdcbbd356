package config

import (
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
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
		Timezone string `yaml:"timezone"` // для разбивки дат в форме редактирования
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, mysql, sqlite
		DSN    string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	Broadcast struct {
		SiteContextID   uint `yaml:"site_context_id"`
		PollMinSeconds  int  `yaml:"poll_min_seconds"`
		PollMaxSeconds  int  `yaml:"poll_max_seconds"`
		ContextCacheTTL int  `yaml:"context_cache_ttl"` // секунды
		StatsInterval   int  `yaml:"stats_interval"`    // секунды, 0 - по умолчанию
	} `yaml:"broadcast"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig загружает конфиг из YAML, либо из переменных окружения,
// если задан DATABASE_URL (режим контейнера / тестов).
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load возвращает конфиг без установки глобального AppConfig
func Load() (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	var cfg Config

	if os.Getenv("DATABASE_URL") == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		if err := loadFile(configPath, &cfg); err != nil {
			return nil, err
		}
	} else {
		loadEnv(&cfg)
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) {
	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	cfg.Database.Driver = os.Getenv("DATABASE_DRIVER")
	cfg.Server.Host = os.Getenv("SERVER_HOST")
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.LogLevel = os.Getenv("LOG_LEVEL")
	cfg.Server.Timezone = os.Getenv("SERVER_TIMEZONE")
	cfg.Server.Port = getEnvInt("SERVER_PORT", 0)
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = getEnvInt("JWT_TTL", 0)
	cfg.Broadcast.PollMinSeconds = getEnvInt("BROADCAST_POLL_MIN", 0)
	cfg.Broadcast.PollMaxSeconds = getEnvInt("BROADCAST_POLL_MAX", 0)
	cfg.Broadcast.ContextCacheTTL = getEnvInt("BROADCAST_CONTEXT_CACHE_TTL", 0)
	cfg.Broadcast.StatsInterval = getEnvInt("BROADCAST_STATS_INTERVAL", 0)
	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.Timezone == "" {
		cfg.Server.Timezone = "UTC"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.Broadcast.SiteContextID == 0 {
		cfg.Broadcast.SiteContextID = 1
	}
	if cfg.Broadcast.PollMinSeconds == 0 {
		cfg.Broadcast.PollMinSeconds = 60
	}
	if cfg.Broadcast.PollMaxSeconds == 0 {
		cfg.Broadcast.PollMaxSeconds = 120
	}
	if cfg.Broadcast.ContextCacheTTL == 0 {
		cfg.Broadcast.ContextCacheTTL = 300
	}
	if cfg.Broadcast.StatsInterval == 0 {
		cfg.Broadcast.StatsInterval = 60
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database url is required")
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if c.Broadcast.PollMinSeconds < 1 {
		return fmt.Errorf("poll_min_seconds must be at least 1")
	}
	if c.Broadcast.StatsInterval < 1 {
		return fmt.Errorf("stats_interval must be at least 1")
	}
	if c.Broadcast.ContextCacheTTL < 1 {
		return fmt.Errorf("context_cache_ttl must be at least 1")
	}
	if c.Broadcast.PollMinSeconds > c.Broadcast.PollMaxSeconds {
		return fmt.Errorf("poll_min_seconds must not exceed poll_max_seconds")
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Server.Timezone, err)
	}
	return nil
}

// Location возвращает часовой пояс сервера (UTC при ошибке)
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// JWTTTL возвращает время жизни токена
func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWT.TTL) * time.Minute
}

// ContextCacheTTL возвращает TTL кэша цепочек контекстов
func (c *Config) ContextCacheTTL() time.Duration {
	return time.Duration(c.Broadcast.ContextCacheTTL) * time.Second
}

// StatsInterval возвращает период пересчета статистики активных рассылок
func (c *Config) StatsInterval() time.Duration {
	return time.Duration(c.Broadcast.StatsInterval) * time.Second
}

func getEnvInt(key string, def int) int {
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
