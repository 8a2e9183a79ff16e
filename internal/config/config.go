package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

const (
	DefaultPath = "config.toml"

	envConfigPath = "CONFIG_PATH"
	envDBPassword = "DB_PASSWORD"
	envJWTSecret  = "JWT_SECRET"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Auth          AuthConfig          `toml:"auth"`
	InviteService InviteServiceConfig `toml:"invite_service"`
	Slots         SlotsConfig         `toml:"slots"`
	Commission    CommissionConfig    `toml:"commission"`
	AutoSettle    AutoSettleConfig    `toml:"autosettle"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	TxRetries       int    `toml:"tx_retries"`        // повторы сериализуемых транзакций
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// InviteServiceConfig адрес сервиса приглашений (таймаут в секундах)
type InviteServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// SlotsConfig рабочее окно, по которому считаются слоты
type SlotsConfig struct {
	OpenTime           string `toml:"open_time"`
	CloseTime          string `toml:"close_time"`
	GranularityMinutes int    `toml:"granularity_minutes"`
	MinNoticeMinutes   int    `toml:"min_notice_minutes"`
	Timezone           string `toml:"timezone"`
}

// WorkingWindow собирает domain.WorkingWindow из настроек
func (c SlotsConfig) WorkingWindow() (domain.WorkingWindow, error) {
	open, err := types.NewTimeStringFromString(c.OpenTime)
	if err != nil {
		return domain.WorkingWindow{}, fmt.Errorf("slots.open_time: %w", err)
	}
	closing, err := types.NewTimeStringFromString(c.CloseTime)
	if err != nil {
		return domain.WorkingWindow{}, fmt.Errorf("slots.close_time: %w", err)
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return domain.WorkingWindow{}, fmt.Errorf("slots.timezone: %w", err)
	}

	return domain.WorkingWindow{
		OpenTime:           open,
		CloseTime:          closing,
		GranularityMinutes: c.GranularityMinutes,
		MinNoticeMinutes:   c.MinNoticeMinutes,
		Location:           loc,
	}, nil
}

// CommissionConfig проценты барбера по умолчанию (строки, чтобы не терять точность)
type CommissionConfig struct {
	DefaultPercent string `toml:"default_percent"`
	ProductPercent string `toml:"product_percent"`
}

func (c CommissionConfig) Default() (decimal.Decimal, error) {
	return parsePercent("commission.default_percent", c.DefaultPercent)
}

func (c CommissionConfig) Product() (decimal.Decimal, error) {
	return parsePercent("commission.product_percent", c.ProductPercent)
}

// AutoSettleConfig фоновый расчет выплат по закрытым периодам
type AutoSettleConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // cron выражение из 5 полей
}

// Load читает TOML файл, затем .env и переменные окружения
// Путь из CONFIG_PATH приоритетнее переданного
func Load(path string) (*Config, error) {
	if envPath := os.Getenv(envConfigPath); envPath != "" {
		path = envPath
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	// .env опционален
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	applyEnv(cfg)

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envDBPassword); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv(envJWTSecret); v != "" {
		cfg.Auth.JWTSecret = v
	}
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 10)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	setDefault(&c.Database.TxRetries, 3)
	setDefaultString(&c.Database.SSLMode, "disable")

	setDefaultString(&c.Logs.Level, "info")

	setDefaultString(&c.Metrics.ServiceName, "barber_service")
	setDefaultString(&c.Metrics.Path, "/metrics")

	setDefault(&c.InviteService.Timeout, 5)

	setDefaultString(&c.Slots.OpenTime, domain.DefaultOpenTime)
	setDefaultString(&c.Slots.CloseTime, domain.DefaultCloseTime)
	setDefault(&c.Slots.GranularityMinutes, domain.DefaultGranularityMinutes)
	setDefaultString(&c.Slots.Timezone, "UTC")

	setDefaultString(&c.Commission.DefaultPercent, fmt.Sprint(domain.DefaultCommissionPercent))
	setDefaultString(&c.Commission.ProductPercent, fmt.Sprint(domain.DefaultProductCommissionPercent))

	setDefaultString(&c.AutoSettle.Schedule, "0 3 * * *")
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort)
	}
	if strings.TrimSpace(c.Database.Host) == "" || strings.TrimSpace(c.Database.DBName) == "" {
		return errors.New("database.host and database.dbname are required")
	}
	if c.Database.TxRetries < 0 {
		return errors.New("database.tx_retries must not be negative")
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwt_secret is required (or JWT_SECRET)")
	}
	if strings.TrimSpace(c.InviteService.URL) == "" {
		return errors.New("invite_service.url is required")
	}

	window, err := c.Slots.WorkingWindow()
	if err != nil {
		return err
	}
	open, _ := window.OpenTime.Minutes()
	closing, _ := window.CloseTime.Minutes()
	if closing <= open {
		return fmt.Errorf("slots.close_time %s must be after open_time %s", c.Slots.CloseTime, c.Slots.OpenTime)
	}
	if c.Slots.GranularityMinutes <= 0 || c.Slots.MinNoticeMinutes < 0 {
		return errors.New("slots.granularity_minutes must be positive and min_notice_minutes not negative")
	}

	if _, err := c.Commission.Default(); err != nil {
		return err
	}
	if _, err := c.Commission.Product(); err != nil {
		return err
	}

	if c.AutoSettle.Enabled {
		if _, err := cron.ParseStandard(c.AutoSettle.Schedule); err != nil {
			return fmt.Errorf("autosettle.schedule: %w", err)
		}
	}
	return nil
}

func parsePercent(field, raw string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}
	if err := domain.ValidatePercentage(p); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}
	return p, nil
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setDefaultString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
