/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config carries the entity manager's configuration surface: document
// store connection parameters and the named cache and persister strategy
// lists entities resolve against.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// HostConfig holds document store connection parameters.
type HostConfig struct {
	// Addresses lists "host:port" endpoints. A single element may carry
	// several endpoints separated by commas.
	Addresses []string `yaml:"addresses"`

	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	AuthSource string `yaml:"authSource"`
	Database   string `yaml:"database"`
}

// Endpoints returns the flattened, trimmed endpoint list.
func (h HostConfig) Endpoints() []string {
	var out []string
	for _, addr := range h.Addresses {
		for _, part := range strings.Split(addr, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Config is the root configuration document.
type Config struct {
	Host       HostConfig          `yaml:"database"`
	Caches     []CacheStrategy     `yaml:"caches"`
	Persisters []PersisterStrategy `yaml:"persisters"`
}

// Load reads a YAML configuration file and applies credential overrides from
// the environment. An optional .env file next to the process is honored, the
// same way the integration tooling loads its credentials.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Missing .env is fine; explicit environment still applies.
	_ = godotenv.Load()
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays credential environment variables over the file values so
// secrets can stay out of checked-in configuration.
func (c *Config) applyEnv() {
	if v := os.Getenv("ENTITYMANAGER_DB_USER"); v != "" {
		c.Host.User = v
	}
	if v := os.Getenv("ENTITYMANAGER_DB_PASSWORD"); v != "" {
		c.Host.Password = v
	}
	if v := os.Getenv("ENTITYMANAGER_DB_ADDRESSES"); v != "" {
		c.Host.Addresses = strings.Split(v, ",")
	}
	if v := os.Getenv("ENTITYMANAGER_DB_NAME"); v != "" {
		c.Host.Database = v
	}
}
