package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates every configuration section of the service.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Realtime RealtimeConfig
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig describes the optional Postgres task store.
type DatabaseConfig struct {
	URL string
}

// Enabled reports whether a database URL was provided.
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// RedisConfig describes the optional cross-instance event relay.
type RedisConfig struct {
	Addr    string
	Channel string
}

// Enabled reports whether a Redis address was provided.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// RealtimeConfig tunes the session layer.
type RealtimeConfig struct {
	SendBuffer int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	sendBuffer, err := parseOptionalIntEnv("WS_SEND_BUFFER")
	if err != nil {
		return nil, err
	}
	realtime := RealtimeConfig{SendBuffer: 64}
	if sendBuffer != nil {
		if *sendBuffer < 1 {
			return nil, fmt.Errorf("invalid WS_SEND_BUFFER value: %d", *sendBuffer)
		}
		realtime.SendBuffer = *sendBuffer
	}

	return &Config{
		Server:   server,
		Database: DatabaseConfig{URL: strings.TrimSpace(os.Getenv("DATABASE_URL"))},
		Redis: RedisConfig{
			Addr:    strings.TrimSpace(os.Getenv("REDIS_ADDR")),
			Channel: getEnvOrDefault("REDIS_CHANNEL", "taskpulse:events"),
		},
		Realtime: realtime,
	}, nil
}

// loadServerConfig resolves the listen address.
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
