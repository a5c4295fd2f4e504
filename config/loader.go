package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LoadAppConfig reads and validates the application configuration from the
// given path, falling back to config.yml in the working directory.
func LoadAppConfig(path string) (AppConfig, error) {
	paths := []string{path, "config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	var cfg AppConfig
	if err != nil {
		// No explicit path and no config.yml: run on defaults.
		if path == "" && os.IsNotExist(err) {
			applyDefaults(&cfg)
			return cfg, nil
		}
		return AppConfig{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.EventBus.Backend == "" {
		cfg.EventBus.Backend = "memory"
	}
	if cfg.EventBus.ConsumerGroup == "" {
		cfg.EventBus.ConsumerGroup = "railbook"
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "file"
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = "."
	}
}
