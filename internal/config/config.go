package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is the top-level configuration loaded from defaults/file/env.
type Config struct {
	Redis   RedisConfig   `json:"redis"`
	Discord DiscordConfig `json:"discord"`
	Streams StreamsConfig `json:"streams"`
	HTTP    HTTPConfig    `json:"http"`
	Log     LogConfig     `json:"log"`
}

// RedisConfig carries stream-store connection parameters.
type RedisConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// Addr returns the host:port dial address.
func (r RedisConfig) Addr() string { return net.JoinHostPort(r.Host, r.Port) }

// DiscordConfig carries chat-platform credentials.
type DiscordConfig struct {
	Token string `json:"token"`
}

// StreamsConfig names the request/result streams and tunes the consumer.
type StreamsConfig struct {
	Requests       string `json:"requests"`
	Results        string `json:"results"`
	ReadBlockMs    int    `json:"readBlockMs"`
	ReadCount      int    `json:"readCount"`
	RetryBackoffMs int    `json:"retryBackoffMs"`
}

// ReadBlock returns the blocking-read window.
func (s StreamsConfig) ReadBlock() time.Duration {
	return time.Duration(s.ReadBlockMs) * time.Millisecond
}

// RetryBackoff returns the delay applied after a transient read failure.
func (s StreamsConfig) RetryBackoff() time.Duration {
	return time.Duration(s.RetryBackoffMs) * time.Millisecond
}

// HTTPConfig configures the health endpoint listener.
type HTTPConfig struct {
	Addr string `json:"addr"`
}

// LogConfig configures process logging.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Redis: RedisConfig{
			Host: "127.0.0.1",
			Port: "6379",
		},
		Streams: StreamsConfig{
			Requests:       "discord:requests",
			Results:        "discord:results",
			ReadBlockMs:    5000,
			ReadCount:      10,
			RetryBackoffMs: 5000,
		},
		HTTP: HTTPConfig{Addr: ":8080"},
		Log:  LogConfig{Level: "info", Format: "text"},
	}
}

// Load assembles configuration: defaults, then the optional JSON file at
// path, then environment variables. A .env file in the working directory
// is loaded first so local development matches deployment env wiring.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	FromEnv(&cfg)
	return cfg, cfg.Validate()
}

// Validate checks settings that have no usable zero value.
func (c Config) Validate() error {
	if c.Streams.Requests == "" || c.Streams.Results == "" {
		return errors.New("stream names must not be empty")
	}
	if c.Streams.ReadCount <= 0 {
		return errors.New("readCount must be positive")
	}
	if c.Streams.ReadBlockMs < 0 || c.Streams.RetryBackoffMs < 0 {
		return errors.New("read block and retry backoff must not be negative")
	}
	return nil
}
