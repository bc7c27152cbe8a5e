package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Jobs     JobsConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	ConnString   string
	Name         string
	Transactions bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

type JobsConfig struct {
	AnnouncementSchedule string
	TaskPollTimeout      time.Duration
}

type AppConfig struct {
	Environment string
	LogLevel    string
}

func Load() (*Config, error) {
	// .env is optional, the environment wins in production
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	sign, err := GetSecret("SIGN")
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			ConnString:   getEnv("MONGODB_CONNSTRING", ""),
			Name:         getEnv("MONGODB_DATABASE", "conference-service"),
			Transactions: getEnvAsBool("MONGODB_TRANSACTIONS", true),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			SigningKey: sign,
			TokenTTL:   time.Duration(getEnvAsInt("TOKEN_TTL_HOURS", 8)) * time.Hour,
		},
		Jobs: JobsConfig{
			AnnouncementSchedule: getEnv("ANNOUNCEMENT_SCHEDULE", "0 0 * * * *"),
			TaskPollTimeout:      time.Duration(getEnvAsInt("TASK_POLL_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Database.ConnString == "" {
		return fmt.Errorf("MONGODB_CONNSTRING is required")
	}
	if c.Auth.SigningKey == "" {
		return fmt.Errorf("SIGN is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL_HOURS must be positive")
	}
	if c.Jobs.TaskPollTimeout <= 0 {
		return fmt.Errorf("TASK_POLL_TIMEOUT_SECONDS must be positive")
	}

	return nil
}

func GetSecret(key string) (string, error) {
	val, exist := os.LookupEnv(key)
	if exist {
		return val, nil
	}
	return "", fmt.Errorf("no env variable with key %v", key)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}
