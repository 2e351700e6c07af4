package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "HTTP_READ_TIMEOUT", "LOG_LEVEL", "DEMO_USER_ID", "CORS_ALLOWED_ORIGINS", "KAFKA_BROKERS", "KAFKA_TOPIC"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadServerConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("addr = %s", cfg.Addr())
	}
	if cfg.DemoUserID != "user-1" {
		t.Errorf("demo user = %s", cfg.DemoUserID)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v", cfg.ReadTimeout)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Errorf("kafka brokers = %v", cfg.KafkaBrokers)
	}
	if cfg.KafkaTopic != "booking-events" {
		t.Errorf("kafka topic = %s", cfg.KafkaTopic)
	}
}

func TestLoadServerConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092 ,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")

	cfg, err := LoadServerConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.LogLevel != "debug" {
		t.Errorf("port=%s level=%s", cfg.Port, cfg.LogLevel)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "b:9092" {
		t.Errorf("brokers = %v", cfg.KafkaBrokers)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("origins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadServerConfigCollectsErrors(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "soon")
	t.Setenv("HTTP_WRITE_TIMEOUT", "later")

	_, err := LoadServerConfig()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not mention %s", err, key)
		}
	}
}
