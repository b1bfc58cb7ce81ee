package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Session  SessionConfig  `mapstructure:"session"`
	NATS     NATSConfig     `mapstructure:"nats"`
}

type ServerConfig struct {
	Port         string   `mapstructure:"port"`
	ReadTimeout  int      `mapstructure:"read_timeout_seconds"`
	WriteTimeout int      `mapstructure:"write_timeout_seconds"`
	IdleTimeout  int      `mapstructure:"idle_timeout_seconds"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time_seconds"`
}

// AdminConfig holds the single admin account. The password is stored as a
// bcrypt hash, never in plain text. All three values must come from the
// environment; there are no baked-in defaults.
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
	SecretCode   string `mapstructure:"secret_code"`
}

type SessionConfig struct {
	Secret   string `mapstructure:"secret"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

var ErrMissingSecrets = errors.New("admin credentials and session secret must be configured")

func Load() (*Config, error) {
	// Get environment from ENV, default to "local"
	env := os.Getenv("ENV")
	if env == "" {
		env = "local"
	}

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/configs")   // Kubernetes mount
	viper.AddConfigPath("./configs")  // IDE from root
	viper.AddConfigPath("../configs") // IDE from cmd/

	// Config file is optional - secrets always come from ENV anyway
	if err := viper.ReadInConfig(); err != nil {
		fmt.Printf("No config file found (will use ENV variables): %v\n", err)
	}

	// Environment variables take precedence over config file values
	viper.AutomaticEnv()

	viper.BindEnv("database.user", "DB_USER")
	viper.BindEnv("database.password", "DB_PASSWORD")
	viper.BindEnv("admin.username", "ADMIN_USERNAME")
	viper.BindEnv("admin.password_hash", "ADMIN_PASSWORD_HASH")
	viper.BindEnv("admin.secret_code", "ADMIN_SECRET_CODE")
	viper.BindEnv("session.secret", "SESSION_SECRET")
	viper.BindEnv("nats.url", "NATS_URL")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Env = env

	if config.Admin.Username == "" || config.Admin.PasswordHash == "" || config.Session.Secret == "" {
		return nil, ErrMissingSecrets
	}

	if config.Session.TTLHours == 0 {
		config.Session.TTLHours = 24
	}
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	return &config, nil
}
