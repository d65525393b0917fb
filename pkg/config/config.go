package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	WebSocket  WebSocketConfig  `mapstructure:"websocket"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	AdminPort   int    `mapstructure:"admin_port"`
	APIPort     int    `mapstructure:"api_port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	Host        string `mapstructure:"host"`
	SecretKey   string `mapstructure:"secret_key"`
	// MaxBodySize bounds request bodies after content decoding.
	MaxBodySize int `mapstructure:"max_body_size"`
}

type MetricsConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	EnableLatency    bool `mapstructure:"enable_latency"`
	EnableRiskScore  bool `mapstructure:"enable_risk_score"`
	EnableViolations bool `mapstructure:"enable_violations"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

// KafkaConfig is kept as a raw map and decoded by the audit log sink.
type KafkaConfig map[string]interface{}

type ModerationConfig struct {
	RulesFile          string        `mapstructure:"rules_file"`
	WatchRulesFile     bool          `mapstructure:"watch_rules_file"`
	RulesWatchDebounce time.Duration `mapstructure:"rules_watch_debounce"`
	DefaultLanguages   []string      `mapstructure:"default_languages"`
	LogWorkers         int           `mapstructure:"log_workers"`
	LogQueueSize       int           `mapstructure:"log_queue_size"`
	LogWriteTimeout    time.Duration `mapstructure:"log_write_timeout"`
	BreakerMaxFailures uint32        `mapstructure:"breaker_max_failures"`
	BreakerTimeout     time.Duration `mapstructure:"breaker_timeout"`
	DeliveryTTL        time.Duration `mapstructure:"delivery_ttl"`
}

// WebSocketConfig bounds the chat checking websocket.
type WebSocketConfig struct {
	MaxConnections int           `mapstructure:"max_connections"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
	PingPeriod     time.Duration `mapstructure:"ping_period"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
}

// RateLimitConfig sets sliding windows for the public checking surfaces.
// A zero limit disables that scope.
type RateLimitConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	APILimit   int           `mapstructure:"api_limit"`
	APIWindow  time.Duration `mapstructure:"api_window"`
	ChatLimit  int           `mapstructure:"chat_limit"`
	ChatWindow time.Duration `mapstructure:"chat_window"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}
	setDefaultValues(&globalConfig)
	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues(cfg *Config) {
	if cfg.Server.APIPort == 0 {
		cfg.Server.APIPort = 8080
	}
	if cfg.Server.AdminPort == 0 {
		cfg.Server.AdminPort = 8081
	}
	if cfg.Server.MetricsPort == 0 {
		cfg.Server.MetricsPort = 9090
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = 1 << 20
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	m := &cfg.Moderation
	if m.LogWorkers == 0 {
		m.LogWorkers = 4
	}
	if m.LogQueueSize == 0 {
		m.LogQueueSize = 1000
	}
	if m.LogWriteTimeout == 0 {
		m.LogWriteTimeout = 3 * time.Second
	}
	if m.BreakerMaxFailures == 0 {
		m.BreakerMaxFailures = 5
	}
	if m.BreakerTimeout == 0 {
		m.BreakerTimeout = 30 * time.Second
	}
	if m.DeliveryTTL == 0 {
		m.DeliveryTTL = 24 * time.Hour
	}
	if m.RulesWatchDebounce == 0 {
		m.RulesWatchDebounce = 500 * time.Millisecond
	}
	ws := &cfg.WebSocket
	if ws.MaxConnections == 0 {
		ws.MaxConnections = 1000
	}
	if ws.MaxMessageSize == 0 {
		ws.MaxMessageSize = 8 * 1024
	}
	if ws.PongWait == 0 {
		ws.PongWait = 60 * time.Second
	}
	if ws.PingPeriod == 0 || ws.PingPeriod >= ws.PongWait {
		ws.PingPeriod = ws.PongWait * 9 / 10
	}
	rl := &cfg.RateLimit
	if rl.APIWindow == 0 {
		rl.APIWindow = time.Minute
	}
	if rl.ChatWindow == 0 {
		rl.ChatWindow = 10 * time.Second
	}
}

func GetConfig() *Config {
	return &globalConfig
}
