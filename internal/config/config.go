// Package config loads process-wide settings once at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendDynamoDB  = "dynamodb"
	BackendFirestore = "firestore"
)

// Config is built once in main and handed to each component.
type Config struct {
	Port         string
	LogLevel     string
	AllowOrigins []string

	Store       StoreConfig
	Attachments AttachmentConfig
	Auth        AuthConfig
}

// StoreConfig selects and addresses the todo table.
type StoreConfig struct {
	Backend   string
	Table     string
	ProjectID string
}

// AttachmentConfig addresses the attachment bucket.
type AttachmentConfig struct {
	Bucket        string
	PublicBaseURL string
	URLExpiration time.Duration
}

// AuthConfig carries the PEM certificate used to verify access tokens.
type AuthConfig struct {
	Certificate string
}

// Load reads the configuration from the environment. Every problem found
// is reported in the returned error.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getenv("PORT", "8080"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		AllowOrigins: splitList(getenv("CORS_ALLOW_ORIGINS", "*")),
		Store: StoreConfig{
			Backend:   strings.ToLower(getenv("STORE_BACKEND", BackendDynamoDB)),
			Table:     os.Getenv("TODOS_TABLE"),
			ProjectID: os.Getenv("GOOGLE_CLOUD_PROJECT"),
		},
		Attachments: AttachmentConfig{
			Bucket:        os.Getenv("ATTACHMENT_S3_BUCKET"),
			PublicBaseURL: os.Getenv("ATTACHMENT_BASE_URL"),
		},
		Auth: AuthConfig{
			Certificate: tenantCertificate,
		},
	}

	var errs []error

	switch cfg.Store.Backend {
	case BackendDynamoDB:
	case BackendFirestore:
		if cfg.Store.ProjectID == "" {
			errs = append(errs, errors.New("GOOGLE_CLOUD_PROJECT environment variable is required for the firestore backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Store.Backend))
	}
	if cfg.Store.Table == "" {
		errs = append(errs, errors.New("TODOS_TABLE environment variable is required"))
	}

	if cfg.Attachments.Bucket == "" {
		errs = append(errs, errors.New("ATTACHMENT_S3_BUCKET environment variable is required"))
	}
	if cfg.Attachments.PublicBaseURL == "" && cfg.Attachments.Bucket != "" {
		cfg.Attachments.PublicBaseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", cfg.Attachments.Bucket)
	}
	cfg.Attachments.PublicBaseURL = strings.TrimRight(cfg.Attachments.PublicBaseURL, "/")

	expiration, err := strconv.Atoi(getenv("SIGNED_URL_EXPIRATION", "300"))
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("invalid SIGNED_URL_EXPIRATION: %w", err))
	case expiration <= 0:
		errs = append(errs, fmt.Errorf("SIGNED_URL_EXPIRATION must be positive, got %d", expiration))
	default:
		cfg.Attachments.URLExpiration = time.Duration(expiration) * time.Second
	}

	if pem := os.Getenv("AUTH_CERTIFICATE"); pem != "" {
		cfg.Auth.Certificate = pem
	} else if path := os.Getenv("AUTH_CERTIFICATE_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("read AUTH_CERTIFICATE_FILE: %w", err))
		} else {
			cfg.Auth.Certificate = string(b)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
