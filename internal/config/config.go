// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gurkanbulca/taskmanager/internal/database"
	"github.com/gurkanbulca/taskmanager/internal/middleware"
	"github.com/gurkanbulca/taskmanager/pkg/auth"
)

const defaultJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Security SecurityConfig
}

type ServerConfig struct {
	GRPCPort         string
	HTTPPort         string
	Environment      string
	AutoMigrate      bool
	EnableReflection bool
	TrustProxy       bool
	ShutdownTimeout  time.Duration
}

type DatabaseConfig struct {
	Driver       string
	URL          string
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type JWTConfig struct {
	Secret              string
	Algorithm           string
	AccessTokenDuration time.Duration
	Issuer              string
}

type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	UserCacheTTL time.Duration
}

type SecurityConfig struct {
	BcryptCost        int
	MinPasswordLength int
	MaxTitleLength    int
	MaxDescLength     int
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			GRPCPort:         getEnv("GRPC_PORT", "50051"),
			HTTPPort:         getEnv("HTTP_PORT", "8080"),
			Environment:      getEnv("ENVIRONMENT", "development"),
			AutoMigrate:      getEnvAsBool("AUTO_MIGRATE", true),
			EnableReflection: getEnvAsBool("GRPC_REFLECTION", false),
			TrustProxy:       getEnvAsBool("TRUST_PROXY", false),
			ShutdownTimeout:  getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", database.DriverPostgres),
			URL:          getEnv("DATABASE_URL", ""),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			DBName:       getEnv("DB_NAME", "taskmanager"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		},
		JWT: JWTConfig{
			Secret:              getEnv("SECRET_KEY", getEnv("JWT_SECRET", defaultJWTSecret)),
			Algorithm:           getEnv("ALGORITHM", auth.DefaultAlgorithm),
			AccessTokenDuration: getEnvAsMinutesOrDuration("ACCESS_TOKEN_EXPIRE_MINUTES", "JWT_ACCESS_TOKEN_DURATION", auth.DefaultTokenDuration),
			Issuer:              getEnv("JWT_ISSUER", auth.DefaultIssuer),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", ""),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			UserCacheTTL: getEnvAsDuration("USER_CACHE_TTL", 5*time.Minute),
		},
		Security: SecurityConfig{
			BcryptCost:        getEnvAsInt("BCRYPT_COST", 12),
			MinPasswordLength: getEnvAsInt("MIN_PASSWORD_LENGTH", auth.DefaultMinPasswordLength),
			MaxTitleLength:    getEnvAsInt("MAX_TITLE_LENGTH", 200),
			MaxDescLength:     getEnvAsInt("MAX_DESCRIPTION_LENGTH", 1000),
		},
	}, nil
}

// ValidateConfig rejects configurations the server must not start with.
func (c *Config) ValidateConfig() error {
	var errs []error

	switch c.Database.Driver {
	case database.DriverPostgres, database.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}
	if c.Database.Driver == database.DriverSQLite && c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required for sqlite3"))
	}

	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("SECRET_KEY must not be empty"))
	}
	if c.IsProduction() && c.JWT.Secret == defaultJWTSecret {
		errs = append(errs, errors.New("SECRET_KEY must be changed in production"))
	}
	if c.JWT.AccessTokenDuration <= 0 {
		errs = append(errs, errors.New("token lifetime must be positive"))
	}
	switch strings.ToUpper(c.JWT.Algorithm) {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("unsupported ALGORITHM %q", c.JWT.Algorithm))
	}

	if c.Security.MinPasswordLength < 1 || c.Security.MinPasswordLength > auth.DefaultMaxPasswordLength {
		errs = append(errs, fmt.Errorf("MIN_PASSWORD_LENGTH must be within 1..%d", auth.DefaultMaxPasswordLength))
	}
	if c.Redis.Addr != "" && c.Redis.UserCacheTTL <= 0 {
		errs = append(errs, errors.New("USER_CACHE_TTL must be positive when REDIS_ADDR is set"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ToTokenConfig returns the signing configuration for the token manager.
func (c *Config) ToTokenConfig() auth.TokenConfig {
	return auth.TokenConfig{
		Secret:              c.JWT.Secret,
		Algorithm:           c.JWT.Algorithm,
		AccessTokenDuration: c.JWT.AccessTokenDuration,
		Issuer:              c.JWT.Issuer,
	}
}

// ToDatabaseConfig returns the connection settings for database.Open.
func (c *Config) ToDatabaseConfig() database.Config {
	return database.Config{
		Driver:       c.Database.Driver,
		URL:          c.Database.URL,
		Host:         c.Database.Host,
		Port:         c.Database.Port,
		User:         c.Database.User,
		Password:     c.Database.Password,
		DBName:       c.Database.DBName,
		SSLMode:      c.Database.SSLMode,
		MaxOpenConns: c.Database.MaxOpenConns,
		MaxIdleConns: c.Database.MaxIdleConns,
	}
}

// ToValidationConfig returns the request validation limits.
func (c *Config) ToValidationConfig() *middleware.ValidationConfig {
	vc := middleware.DefaultValidationConfig()
	vc.MinPasswordLength = c.Security.MinPasswordLength
	vc.MaxTitleLength = c.Security.MaxTitleLength
	vc.MaxDescriptionLength = c.Security.MaxDescLength
	return vc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	// Try parsing as duration string (e.g., "15m", "24h")
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}

	return defaultValue
}

// getEnvAsMinutesOrDuration prefers a whole number of minutes under
// minutesKey and falls back to a duration string under durationKey.
func getEnvAsMinutesOrDuration(minutesKey, durationKey string, defaultValue time.Duration) time.Duration {
	if minutes, err := strconv.Atoi(os.Getenv(minutesKey)); err == nil {
		return time.Duration(minutes) * time.Minute
	}
	return getEnvAsDuration(durationKey, defaultValue)
}
