package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"rideshare-backend/internal/models"
)

// ServerConfig holds everything the API process reads from the environment.
// Defaults let the binary run locally with no setup.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	LogLevel string

	DemoUserID         string
	CORSAllowedOrigins []string

	KafkaBrokers []string
	KafkaTopic   string

	FirebaseCredentialsBase64 string
	FirebaseCredentialsFile   string
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:               "8080",
		ReadTimeout:        5 * time.Second,
		WriteTimeout:       10 * time.Second,
		IdleTimeout:        120 * time.Second,
		ShutdownTimeout:    15 * time.Second,
		LogLevel:           "info",
		DemoUserID:         models.DemoUserID,
		CORSAllowedOrigins: []string{"*"},
		KafkaTopic:         "booking-events",
	}
}

// LoadServerConfig reads the environment. All parse errors are reported
// together.
func LoadServerConfig() (ServerConfig, error) {
	cfg := defaultServerConfig()
	var errs []error

	setStringFromEnv(&cfg.Port, "PORT")
	setDurationFromEnv(&cfg.ReadTimeout, "HTTP_READ_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.WriteTimeout, "HTTP_WRITE_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.IdleTimeout, "HTTP_IDLE_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.ShutdownTimeout, "HTTP_SHUTDOWN_TIMEOUT", &errs)

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	setStringFromEnv(&cfg.DemoUserID, "DEMO_USER_ID")
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = splitAndTrim(origins)
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}
	setStringFromEnv(&cfg.KafkaTopic, "KAFKA_TOPIC")

	cfg.FirebaseCredentialsBase64 = strings.TrimSpace(os.Getenv("FIREBASE_CREDENTIALS_BASE64"))
	cfg.FirebaseCredentialsFile = strings.TrimSpace(os.Getenv("FIREBASE_CREDENTIALS_FILE"))

	if len(cfg.CORSAllowedOrigins) == 0 {
		errs = append(errs, fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin"))
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be > 0"))
	}

	return cfg, errors.Join(errs...)
}

// Addr is the listen address for http.Server.
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}

func setDurationFromEnv(target *time.Duration, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = d
	}
}

func setStringFromEnv(target *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}

func splitAndTrim(v string) []string {
	raw := strings.Split(v, ",")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
