package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	Notifier   NotifierConfig
	Assignment AssignmentConfig
}

type AppConfig struct {
	Port          string
	Env           string
	LogLevel      string
	SeedProviders bool
}

type DBConfig struct {
	Driver      string
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SQLitePath  string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NotifierConfig selects where committed booking events are fanned out.
// Kind is one of "redis", "amqp" or "none".
type NotifierConfig struct {
	Kind         string
	RedisChannel string
	AMQPURL      string
	AMQPExchange string
}

// AssignmentConfig drives the provider assignment retry schedule.
// Retry n waits BaseDelay * n.
type AssignmentConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	NotifierRedis = "redis"
	NotifierAMQP  = "amqp"
	NotifierNone  = "none"
)

// DefaultAssignmentConfig returns 3 retries with a 1s base delay
func DefaultAssignmentConfig() AssignmentConfig {
	return AssignmentConfig{
		MaxRetries: 3,
		BaseDelay:  time.Second,
	}
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// .env is optional; the environment alone is enough
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultAssignmentConfig()

	v.SetDefault("APP_PORT", "3001")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SEED_PROVIDERS", true)

	v.SetDefault("DB_DRIVER", DBDriverSQLite)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SQLITE_PATH", "bookings.db")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("NOTIFIER", NotifierNone)
	v.SetDefault("REDIS_EVENTS_CHANNEL", "booking:events")
	v.SetDefault("AMQP_EXCHANGE", "booking.events")

	v.SetDefault("ASSIGNMENT_MAX_RETRIES", def.MaxRetries)
	v.SetDefault("ASSIGNMENT_RETRY_BASE_DELAY", def.BaseDelay.String())
}

func fromViper(v *viper.Viper) *Config {
	def := DefaultAssignmentConfig()

	baseDelay, err := time.ParseDuration(v.GetString("ASSIGNMENT_RETRY_BASE_DELAY"))
	if err != nil || baseDelay < 0 {
		baseDelay = def.BaseDelay
	}

	maxRetries := v.GetInt("ASSIGNMENT_MAX_RETRIES")
	if maxRetries < 0 {
		maxRetries = def.MaxRetries
	}

	return &Config{
		App: AppConfig{
			Port:          v.GetString("APP_PORT"),
			Env:           v.GetString("APP_ENV"),
			LogLevel:      v.GetString("LOG_LEVEL"),
			SeedProviders: v.GetBool("SEED_PROVIDERS"),
		},
		DB: DBConfig{
			Driver:      v.GetString("DB_DRIVER"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			SQLitePath:  v.GetString("DB_SQLITE_PATH"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Notifier: NotifierConfig{
			Kind:         v.GetString("NOTIFIER"),
			RedisChannel: v.GetString("REDIS_EVENTS_CHANNEL"),
			AMQPURL:      v.GetString("AMQP_URL"),
			AMQPExchange: v.GetString("AMQP_EXCHANGE"),
		},
		Assignment: AssignmentConfig{
			MaxRetries: maxRetries,
			BaseDelay:  baseDelay,
		},
	}
}
