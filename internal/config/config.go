package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Directory DirectoryConfig `toml:"directory"`
	Notifier  NotifierConfig  `toml:"notifier"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к Postgres
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig настройки Redis для кеша доступности
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	// AvailabilityTTL время жизни кеша доступных слотов в секундах
	AvailabilityTTL int `toml:"availability_ttl"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DirectoryConfig настройки клиента справочника бизнесов
type DirectoryConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// NotifierConfig настройки клиента сервиса уведомлений
type NotifierConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load читает конфигурацию из TOML файла и заполняет дефолты
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaults возвращает конфигурацию с явными значениями по умолчанию.
// Нулевые значения из файла НЕ перетираются дефолтами только там,
// где ноль не имеет смысла (порты, TTL).
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr:            "localhost:6379",
			AvailabilityTTL: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "booking-engine",
		},
		Directory: DirectoryConfig{
			Timeout: 5,
		},
		Notifier: NotifierConfig{
			Timeout: 5,
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if c.Redis.AvailabilityTTL <= 0 {
		return fmt.Errorf("config: redis.availability_ttl must be positive")
	}
	if c.Directory.URL == "" {
		return fmt.Errorf("config: directory.url is required")
	}
	return nil
}
