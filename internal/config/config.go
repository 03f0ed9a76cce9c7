package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "CONFIG_FILE"

// Config defines chargefleet service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port"`
	} `yaml:"http"`
	Data struct {
		Dir string `yaml:"dir"`
	} `yaml:"data"`
	WS struct {
		PingSeconds         int `yaml:"pingSeconds"`
		WriteTimeoutSeconds int `yaml:"writeTimeoutSeconds"`
	} `yaml:"ws"`
	Pagination struct {
		PageSize int `yaml:"pageSize"`
	} `yaml:"pagination"`
	Inject struct {
		DefaultCount int   `yaml:"defaultCount"`
		Seed         int64 `yaml:"seed"`
	} `yaml:"inject"`
}

// Load reads the optional YAML file named by CONFIG_FILE, then applies
// CHARGEFLEET_* environment overrides on top.
func Load() (*Config, error) {
	cfg := &Config{}

	if path := os.Getenv(configPathEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: decode yaml: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Data.Dir) == "" {
		return nil, errors.New("config: data dir required")
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	envString("CHARGEFLEET_HTTP_PORT", &c.HTTP.Port)
	envString("CHARGEFLEET_DATA_DIR", &c.Data.Dir)

	for _, override := range []struct {
		key string
		dst *int
	}{
		{"CHARGEFLEET_WS_PING_SECONDS", &c.WS.PingSeconds},
		{"CHARGEFLEET_WS_WRITE_TIMEOUT", &c.WS.WriteTimeoutSeconds},
		{"CHARGEFLEET_PAGE_SIZE", &c.Pagination.PageSize},
		{"CHARGEFLEET_INJECT_COUNT", &c.Inject.DefaultCount},
	} {
		if err := envInt(override.key, override.dst); err != nil {
			return err
		}
	}

	if raw, ok := os.LookupEnv("CHARGEFLEET_INJECT_SEED"); ok {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("config: parse CHARGEFLEET_INJECT_SEED: %w", err)
		}
		c.Inject.Seed = seed
	}
	return nil
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", key, err)
	}
	*dst = v
	return nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// PingInterval returns websocket keepalive interval.
func (c *Config) PingInterval() time.Duration {
	if c.WS.PingSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.WS.PingSeconds) * time.Second
}

// WriteTimeout returns websocket write deadline.
func (c *Config) WriteTimeout() time.Duration {
	if c.WS.WriteTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.WS.WriteTimeoutSeconds) * time.Second
}

// PageSize returns the connector list page size.
func (c *Config) PageSize() int {
	if c.Pagination.PageSize <= 0 {
		return 10
	}
	return c.Pagination.PageSize
}

// InjectCount returns how many synthetic rows to add per request by default.
func (c *Config) InjectCount() int {
	if c.Inject.DefaultCount <= 0 {
		return 50
	}
	return c.Inject.DefaultCount
}
