package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Session SessionConfig
	Share   ShareConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Env   string // "production" enables JSON output
	Level string // "debug" or "info"
}

// SessionConfig controls the assessment session runtime.
type SessionConfig struct {
	// TickerEnabled drives countdown ticks from a wall-clock ticker.
	// Tests disable it and call Tick explicitly.
	TickerEnabled bool
	// ResumeTTLSlack is added to a session's remaining time when the
	// in-progress state is written to the cache for resume.
	ResumeTTLSlack time.Duration
	// SnapshotCacheTTL bounds how long a public quiz snapshot stays cached.
	SnapshotCacheTTL time.Duration
}

// ShareConfig configures public share-link tokens.
type ShareConfig struct {
	// Secret signs share tokens (HS256). Required.
	Secret string
}

// LoadConfig reads config.yaml and applies APP_-prefixed env overrides.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs") // tests run from package directories

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No file is fine as long as env vars cover the required values.
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
		Session: SessionConfig{
			TickerEnabled:    viper.GetBool("session.ticker_enabled"),
			ResumeTTLSlack:   viper.GetDuration("session.resume_ttl_slack") * time.Second,
			SnapshotCacheTTL: viper.GetDuration("session.snapshot_cache_ttl") * time.Second,
		},
		Share: ShareConfig{
			Secret: viper.GetString("share.secret"),
		},
	}

	if cfg.Share.Secret == "" {
		return nil, fmt.Errorf("share.secret must be set (APP_SHARE_SECRET)")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("session.ticker_enabled", true)
	viper.SetDefault("session.resume_ttl_slack", 300)
	viper.SetDefault("session.snapshot_cache_ttl", 600)
}

// GetDSN builds the godror connect string for the main database connection.
func (c *Config) GetDSN() string {
	connectString := fmt.Sprintf("%s:%d/%s", c.DB.Host, c.DB.Port, c.DB.DBName)
	return fmt.Sprintf("user=%q password=%q connectString=%q", c.DB.User, c.DB.Password, connectString)
}

// GetMigrateDSN builds the go-ora URL used by the migration runner.
func (c *Config) GetMigrateDSN() string {
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.DBName)
}
