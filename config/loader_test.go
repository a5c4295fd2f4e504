package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
eventbus:
  backend: kafka
  kafka:
    brokers:
      - "broker-1:9092"
      - "broker-2:9092"
storage:
  backend: postgres
  dsn: "host=db user=railbook dbname=railbook"
bootstrap:
  importFile: seed.txt
`)
	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.EventBus.Backend != "kafka" || len(cfg.EventBus.Kafka.Brokers) != 2 {
		t.Errorf("event bus config = %+v", cfg.EventBus)
	}
	if cfg.Storage.Backend != "postgres" {
		t.Errorf("storage backend = %q", cfg.Storage.Backend)
	}
	if cfg.Bootstrap.ImportFile != "seed.txt" {
		t.Errorf("import file = %q", cfg.Bootstrap.ImportFile)
	}
}

func TestLoadAppConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "server: {}\n")
	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.EventBus.Backend != "memory" {
		t.Errorf("default backend = %q, want memory", cfg.EventBus.Backend)
	}
	if cfg.EventBus.ConsumerGroup != "railbook" {
		t.Errorf("default consumer group = %q", cfg.EventBus.ConsumerGroup)
	}
	if cfg.Storage.Backend != "file" || cfg.Storage.Dir != "." {
		t.Errorf("default storage = %+v", cfg.Storage)
	}
}

func TestLoadAppConfigRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `
eventbus:
  backend: carrier-pigeon
`)
	if _, err := LoadAppConfig(path); err == nil {
		t.Error("unknown backend accepted")
	}
}

func TestLoadAppConfigMissingExplicitPath(t *testing.T) {
	if _, err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("missing explicit config accepted")
	}
}
