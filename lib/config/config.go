// Package config loads the gosai YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaults
const (
	DefaultConfigFile    = "/etc/gosai/syncd.yaml"
	DefaultAsicdbAddr    = "tcp:127.0.0.1:6650"
	DefaultLogFile       = "/var/log/gosai.log"
	DefaultLogLevel      = "info"
	DefaultDriverName    = "VS"
	DefaultMetricsListen = ":9108"
)

// Config is the syncd configuration file
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Asicdb  AsicdbConfig  `yaml:"asicdb"`
	Driver  DriverConfig  `yaml:"driver"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig log file and level
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// AsicdbConfig ovsdb server of the ASIC DB
type AsicdbConfig struct {
	Addr string `yaml:"addr"`
}

// DriverConfig sai driver
type DriverConfig struct {
	Name         string         `yaml:"name"`
	WarmbootFile string         `yaml:"warmboot_file"`
	RestartWarm  bool           `yaml:"restart_warm"`
	Capacity     CapacityConfig `yaml:"capacity"`
}

// CapacityConfig per switch table sizes, zero keeps the driver default
type CapacityConfig struct {
	FEC          int `yaml:"fec"`
	NextHop      int `yaml:"next_hop"`
	NextHopGroup int `yaml:"next_hop_group"`
}

// MetricsConfig prometheus endpoint, empty disables it
type MetricsConfig struct {
	ListenAddress string `yaml:"listen_address"`
}

// Default returns the configuration used without a file
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.Metrics.ListenAddress = DefaultMetricsListen
	return cfg
}

// Load read, default and validate path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse YAML data
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.File == "" {
		c.Log.File = DefaultLogFile
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Asicdb.Addr == "" {
		c.Asicdb.Addr = DefaultAsicdbAddr
	}
	if c.Driver.Name == "" {
		c.Driver.Name = DefaultDriverName
	}
}

// Validate config values
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	if c.Driver.Capacity.FEC < 0 || c.Driver.Capacity.NextHop < 0 || c.Driver.Capacity.NextHopGroup < 0 {
		return fmt.Errorf("driver.capacity: negative table size")
	}
	if c.Driver.RestartWarm && c.Driver.WarmbootFile == "" {
		return fmt.Errorf("driver.restart_warm requires driver.warmboot_file")
	}
	return nil
}
