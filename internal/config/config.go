// Package config loads server configuration: built-in defaults, then an
// optional YAML file, then SHOPGRAPH_-prefixed environment variables, each
// layer overriding the previous one.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SHOPGRAPH_"

type Config struct {
	Server ServerConfig `koanf:"server"`
	Auth   AuthConfig   `koanf:"auth"`
	Otel   OtelConfig   `koanf:"otel"`
}

type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	Pretty       bool          `koanf:"pretty"`
	Timeout      time.Duration `koanf:"timeout"`
	MaxBodyBytes int64         `koanf:"maxbody"`
}

type AuthConfig struct {
	// Secret enables the HS256 JWT verifier; empty means static dev tokens.
	Secret   string        `koanf:"secret"`
	Issuer   string        `koanf:"issuer"`
	TokenTTL time.Duration `koanf:"ttl"`
}

type OtelConfig struct {
	Endpoint string `koanf:"endpoint"`
	Service  string `koanf:"service"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			Timeout:      10 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Auth: AuthConfig{
			Issuer:   "shopgraph",
			TokenTTL: 24 * time.Hour,
		},
		Otel: OtelConfig{
			Service: "shopgraph",
		},
	}
}

// Load reads path (optional, "" skips the file layer) and the environment
// on top of the defaults. SHOPGRAPH_SERVER_ADDR maps to server.addr; keys
// are single words so the underscore-to-dot env mapping stays unambiguous.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	cfg := Default()
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return cfg, fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
