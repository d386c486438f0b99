package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type clientConfig struct {
	ID     string `yaml:"id"`
	Secret string `yaml:"secret"`
}

type config struct {
	Listen       string         `yaml:"listen"`
	Prefix       string         `yaml:"prefix"`
	UserProperty string         `yaml:"user_property"`
	LogLevel     string         `yaml:"log_level"`
	OIDCIssuer   string         `yaml:"oidc_issuer"`
	OIDCClientID string         `yaml:"oidc_client_id"`
	ExpiresIn    int            `yaml:"expires_in"`
	Refresh      bool           `yaml:"issue_refresh_tokens"`
	Clients      []clientConfig `yaml:"clients"`
}

func defaultConfig() config {
	return config{
		Listen:    ":8080",
		Prefix:    "/oauth2",
		LogLevel:  "INFO",
		ExpiresIn: 3600,
	}
}

func parseConfig(b []byte) (config, error) {
	cfg := defaultConfig()
	err := yaml.Unmarshal(b, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.LogLevel = strings.ToUpper(cfg.LogLevel)
	if cfg.OIDCIssuer == "" {
		return config{}, fmt.Errorf("oidc_issuer must be set")
	}
	if cfg.OIDCClientID == "" {
		return config{}, fmt.Errorf("oidc_client_id must be set")
	}
	if len(cfg.Clients) < 1 {
		return config{}, fmt.Errorf("at least one client must be configured")
	}
	for i, client := range cfg.Clients {
		if client.ID == "" || client.Secret == "" {
			return config{}, fmt.Errorf("client %d needs an id and a secret", i)
		}
	}
	return cfg, nil
}

func loadConfig(path string) (config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("error reading config %q: %w", path, err)
	}
	return parseConfig(b)
}
