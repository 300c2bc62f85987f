package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	FeatureStoreStatic = "static"
	FeatureStoreRedis  = "redis"
)

// Переменные окружения, переопределяющие значения из файла
const (
	EnvDBPassword    = "SALON_DB_PASSWORD"
	EnvRedisPassword = "SALON_REDIS_PASSWORD"
	EnvHTTPPort      = "SALON_HTTP_PORT"
)

// ErrInvalidConfig некорректная конфигурация
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Storage   StorageConfig   `toml:"storage"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Salon     SalonConfig     `toml:"salon"`
	Features  FeaturesConfig  `toml:"features"`
	Redis     RedisConfig     `toml:"redis"`
	Kafka     KafkaConfig     `toml:"kafka"`
	Catalog   CatalogConfig   `toml:"catalog"`
	CORS      CORSConfig      `toml:"cors"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type StorageConfig struct {
	Driver string `toml:"driver"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SalonConfig параметры обслуживаемого ресурса
type SalonConfig struct {
	ResourceID         string `toml:"resource_id"`
	Name               string `toml:"name"`
	ContactPhone       string `toml:"contact_phone"`
	Timezone           string `toml:"timezone"`
	SlotStepMinutes    int    `toml:"slot_step_minutes"` // Используются только при первом запуске
	TotalSeats         int    `toml:"total_seats"`
	DefaultPhoneRegion string `toml:"default_phone_region"`
	StrictTransitions  bool   `toml:"strict_transitions"`
}

// ScheduleSeed конфигурация расписания, которую получает салон без сохранённой конфигурации
func (s SalonConfig) ScheduleSeed() *domain.ScheduleConfig {
	cfg := domain.NewDefaultScheduleConfig(s.ResourceID)
	cfg.ResourceName = s.Name
	cfg.ContactPhone = s.ContactPhone
	cfg.Timezone = s.Timezone
	cfg.SlotStepMinutes = s.SlotStepMinutes
	cfg.TotalSeats = s.TotalSeats
	return cfg
}

type FeaturesConfig struct {
	Store                 string `toml:"store"`
	BookingEnabledDefault bool   `toml:"booking_enabled_default"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type KafkaConfig struct {
	Enabled      bool     `toml:"enabled"`
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout int      `toml:"write_timeout"`
}

// CatalogConfig при пустом URL используется статический каталог из Services/Staff
type CatalogConfig struct {
	URL      string           `toml:"url"`
	Timeout  int              `toml:"timeout"`
	Services []CatalogService `toml:"services"`
	Staff    []CatalogStaff   `toml:"staff"`
}

type CatalogService struct {
	ID              string  `toml:"id"`
	Name            string  `toml:"name"`
	DurationMinutes int     `toml:"duration_minutes"`
	Price           float64 `toml:"price"`
	Active          bool    `toml:"active"`
}

type CatalogStaff struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// RateLimitConfig лимит запросов к публичным маршрутам на один IP
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Load читает конфигурацию из toml-файла. Перед этим подгружается .env (если есть),
// затем переменные окружения переопределяют секреты и порт
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

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
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "salon-booking"},
		Salon: SalonConfig{
			Timezone:           domain.DefaultTimezone,
			SlotStepMinutes:    domain.DefaultSlotStepMinutes,
			TotalSeats:         domain.DefaultTotalSeats,
			DefaultPhoneRegion: "IN",
		},
		Features: FeaturesConfig{
			Store:                 FeatureStoreStatic,
			BookingEnabledDefault: true,
		},
		Kafka:   KafkaConfig{Topic: "salon.booking.notifications", WriteTimeout: 5},
		Catalog: CatalogConfig{Timeout: 5},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             20,
		},
	}
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvDBPassword); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv(EnvRedisPassword); ok {
		c.Redis.Password = v
	}
	if v, ok := os.LookupEnv(EnvHTTPPort); ok {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a port", ErrInvalidConfig, EnvHTTPPort, v)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port %d out of range", c.Server.HTTPPort))
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			errs = append(errs, errors.New("database.host and database.dbname are required for postgres storage"))
		}
	case StorageDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver))
	}

	if strings.TrimSpace(c.Salon.ResourceID) == "" {
		errs = append(errs, errors.New("salon.resource_id is required"))
	}
	if _, err := time.LoadLocation(c.Salon.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("salon.timezone %q: %v", c.Salon.Timezone, err))
	}
	if c.Salon.SlotStepMinutes < domain.MinSlotStepMinutes || c.Salon.SlotStepMinutes > domain.MaxSlotStepMinutes {
		errs = append(errs, fmt.Errorf("salon.slot_step_minutes %d out of range", c.Salon.SlotStepMinutes))
	}
	if c.Salon.TotalSeats < domain.MinTotalSeats || c.Salon.TotalSeats > domain.MaxTotalSeats {
		errs = append(errs, fmt.Errorf("salon.total_seats %d out of range", c.Salon.TotalSeats))
	}

	switch c.Features.Store {
	case FeatureStoreStatic:
	case FeatureStoreRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("redis.addr is required for redis feature store"))
		}
	default:
		errs = append(errs, fmt.Errorf("features.store %q is not supported", c.Features.Store))
	}

	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		errs = append(errs, errors.New("kafka.brokers and kafka.topic are required when kafka is enabled"))
	}

	for _, s := range c.Catalog.Services {
		if s.ID == "" || s.DurationMinutes <= 0 {
			errs = append(errs, fmt.Errorf("catalog service %q must have an id and positive duration", s.ID))
		}
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("rate_limit.requests_per_second and rate_limit.burst must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// CatalogServices услуги статического каталога в доменном виде
func (c CatalogConfig) CatalogServices() []domain.Service {
	result := make([]domain.Service, 0, len(c.Services))
	for _, s := range c.Services {
		result = append(result, domain.Service{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
			Active:          s.Active,
		})
	}
	return result
}

// CatalogStaff сотрудники статического каталога в доменном виде
func (c CatalogConfig) CatalogStaff() []domain.Staff {
	result := make([]domain.Staff, 0, len(c.Staff))
	for _, s := range c.Staff {
		result = append(result, domain.Staff{ID: s.ID, Name: s.Name})
	}
	return result
}
