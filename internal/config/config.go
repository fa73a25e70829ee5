package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	DB    DBConfig
	Redis RedisConfig
	Query QueryConfig
}

type AppConfig struct {
	Name     string
	Env      string // development, production
	LogLevel string
}

type HTTPConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RateLimit       float64 // requests per second per client IP on writes
	RateBurst       int
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxRetries  int
	AutoMigrate bool
}

// DSN renders the key/value connection string understood by pgx.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type RedisConfig struct {
	// Addr is optional. Without it form submissions are not deduplicated.
	Addr           string
	MaxRetries     int
	IdempotencyTTL time.Duration
}

type QueryConfig struct {
	EmployeePageSize  int
	TimesheetPageSize int
}

// env names kept compatible with existing deployments.
var envBindings = map[string]string{
	"app.env":                   "APP_ENV",
	"app.log_level":             "LOG_LEVEL",
	"http.port":                 "PORT",
	"db.host":                   "DB_HOST",
	"db.port":                   "DB_PORT",
	"db.user":                   "DB_USER",
	"db.password":               "DB_PASSWORD",
	"db.name":                   "DB_NAME",
	"db.sslmode":                "DB_SSLMODE",
	"db.auto_migrate":           "DB_AUTO_MIGRATE",
	"redis.addr":                "REDIS_ADDR",
	"redis.idempotency_ttl":     "IDEMPOTENCY_TTL",
	"query.employee_page_size":  "EMPLOYEE_PAGE_SIZE",
	"query.timesheet_page_size": "TIMESHEET_PAGE_SIZE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "employee-management-system")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("http.port", "3000")
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 5*time.Second)
	v.SetDefault("http.rate_limit", 5.0)
	v.SetDefault("http.rate_burst", 10)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "employees")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_retries", 5)
	v.SetDefault("db.auto_migrate", true)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.max_retries", 5)
	v.SetDefault("redis.idempotency_ttl", 10*time.Minute)

	v.SetDefault("query.employee_page_size", 4)
	v.SetDefault("query.timesheet_page_size", 10)
}

// Load reads defaults, then an optional YAML file (CONFIG_FILE, or
// config.yaml in the working directory), then environment variables.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name:     v.GetString("app.name"),
			Env:      v.GetString("app.env"),
			LogLevel: v.GetString("app.log_level"),
		},
		HTTP: HTTPConfig{
			Port:            v.GetString("http.port"),
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			IdleTimeout:     v.GetDuration("http.idle_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
			RateLimit:       v.GetFloat64("http.rate_limit"),
			RateBurst:       v.GetInt("http.rate_burst"),
		},
		DB: DBConfig{
			Host:        v.GetString("db.host"),
			Port:        v.GetString("db.port"),
			User:        v.GetString("db.user"),
			Password:    v.GetString("db.password"),
			Name:        v.GetString("db.name"),
			SSLMode:     v.GetString("db.sslmode"),
			MaxRetries:  v.GetInt("db.max_retries"),
			AutoMigrate: v.GetBool("db.auto_migrate"),
		},
		Redis: RedisConfig{
			Addr:           v.GetString("redis.addr"),
			MaxRetries:     v.GetInt("redis.max_retries"),
			IdempotencyTTL: v.GetDuration("redis.idempotency_ttl"),
		},
		Query: QueryConfig{
			EmployeePageSize:  v.GetInt("query.employee_page_size"),
			TimesheetPageSize: v.GetInt("query.timesheet_page_size"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Port == "" {
		errs = append(errs, errors.New("http.port is required"))
	}
	if c.DB.Host == "" || c.DB.Name == "" {
		errs = append(errs, errors.New("db.host and db.name are required"))
	}
	if c.DB.MaxRetries < 1 {
		errs = append(errs, errors.New("db.max_retries must be at least 1"))
	}
	if c.Query.EmployeePageSize < 1 || c.Query.TimesheetPageSize < 1 {
		errs = append(errs, errors.New("query page sizes must be at least 1"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
