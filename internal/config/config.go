package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/staylodge/service-reservation/internal/common/config"
	reservationDomain "github.com/staylodge/service-reservation/internal/domain/reservation"
)

// Lock backends.
const (
	LockBackendMemory = "memory"
	LockBackendRedis  = "redis"
)

// BookingConfig tunes the reservation engine.
type BookingConfig struct {
	Blocking         reservationDomain.BlockingPolicy
	FolioMaxAttempts int
	LockBackend      string
	LockTTL          time.Duration
}

// ServiceConfig holds all configuration for the reservation service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	MigrationsDir string
	DBConfig      config.DatabaseConfig
	JWTConfig     config.JWTConfig
	KafkaConfig   config.KafkaConfig
	RedisConfig   config.RedisConfig
	CORSConfig    config.CORSConfig
	Booking       BookingConfig
}

// Load reads configuration from environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("RESERVATION")
	if err != nil {
		return nil, err
	}

	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("FOLIO_MAX_ATTEMPTS", 3)
	v.SetDefault("LOCK_BACKEND", LockBackendMemory)
	v.SetDefault("LOCK_TTL", "10s")

	blocking, err := reservationDomain.ParseBlockingPolicy(v.GetString("BLOCKING_STATUSES"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESERVATION_BLOCKING_STATUSES: %w", err)
	}

	lockBackend := strings.ToLower(v.GetString("LOCK_BACKEND"))
	if lockBackend != LockBackendMemory && lockBackend != LockBackendRedis {
		return nil, fmt.Errorf("invalid RESERVATION_LOCK_BACKEND %q", lockBackend)
	}

	return &ServiceConfig{
		Port:          config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:        config.GetAppEnv(v),
		MigrationsDir: v.GetString("MIGRATIONS_DIR"),
		DBConfig:      config.LoadDatabaseConfig(v, "DB_NAME"),
		JWTConfig:     config.LoadJWTConfig(v),
		KafkaConfig:   config.LoadKafkaConfig(v),
		RedisConfig:   config.LoadRedisConfig(v),
		CORSConfig:    config.LoadCORSConfig(v),
		Booking: BookingConfig{
			Blocking:         blocking,
			FolioMaxAttempts: v.GetInt("FOLIO_MAX_ATTEMPTS"),
			LockBackend:      lockBackend,
			LockTTL:          v.GetDuration("LOCK_TTL"),
		},
	}, nil
}
