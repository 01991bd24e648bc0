package config

import (
	"fmt"
	"os"
	"time"

	"github.com/tanq16/woofget/internal/utils"
	"gopkg.in/yaml.v3"
)

// Config holds the settings a run can take from a YAML file. Command-line
// flags are applied on top by the caller.
type Config struct {
	API       string            `yaml:"api"`
	OutputDir string            `yaml:"output_dir"`
	Timeout   time.Duration     `yaml:"timeout"`
	KATimeout time.Duration     `yaml:"keep_alive_timeout"`
	UserAgent string            `yaml:"user_agent"`
	Headers   map[string]string `yaml:"headers"`
	Proxy     string            `yaml:"proxy"`
	StrictTLS bool              `yaml:"strict_tls"`
	Debug     bool              `yaml:"debug"`
}

func Default() Config {
	return Config{
		API:       utils.DefaultAPIURL,
		OutputDir: ".",
		Timeout:   time.Minute,
		KATimeout: 90 * time.Second,
		UserAgent: utils.ToolUserAgent,
		Headers:   map[string]string{},
	}
}

// Load reads path and overlays its values on the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config file: %w", err)
	}
	if cfg.Headers == nil {
		cfg.Headers = map[string]string{}
	}
	return cfg, nil
}

func (c Config) HTTPClientConfig() utils.HTTPClientConfig {
	return utils.HTTPClientConfig{
		Timeout:   c.Timeout,
		KATimeout: c.KATimeout,
		ProxyURL:  c.Proxy,
		UserAgent: c.UserAgent,
		Headers:   c.Headers,
	}
}
