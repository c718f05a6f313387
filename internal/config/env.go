package config

import (
	"os"
	"strconv"
)

// FromEnv overlays environment variables onto cfg. Variable names match
// the deployment surface of the original bot (REDIS_*, DISCORD_TOKEN,
// STREAM_*), with HTTP_ADDR and LOG_* for the supporting services.
func FromEnv(cfg *Config) {
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		cfg.Redis.Port = v
	}
	if v := os.Getenv("REDIS_USERNAME"); v != "" {
		cfg.Redis.Username = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}
	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		cfg.Discord.Token = v
	}
	if v := os.Getenv("STREAM_REQUESTS"); v != "" {
		cfg.Streams.Requests = v
	}
	if v := os.Getenv("STREAM_RESULTS"); v != "" {
		cfg.Streams.Results = v
	}
	if v := os.Getenv("STREAM_READ_BLOCK_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Streams.ReadBlockMs = n
		}
	}
	if v := os.Getenv("STREAM_READ_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Streams.ReadCount = n
		}
	}
	if v := os.Getenv("STREAM_RETRY_BACKOFF_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Streams.RetryBackoffMs = n
		}
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}
