package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	originalEnv := make(map[string]string)
	envVars := []string{
		"SERVER_PORT",
		"BASE_URL",
		"DB_HOST",
		"DB_PORT",
		"DB_USER",
		"DB_PASSWORD",
		"DB_NAME",
		"DB_SSL_MODE",
		"DB_MAX_CONNS",
		"DB_MIN_CONNS",
		"JWT_SECRET",
		"JWT_TTL",
		"MAIL_WORKER_POOL_SIZE",
		"HOME_PAGE_SIZE",
		"CLOUDINARY_FOLDER",
	}

	for _, env := range envVars {
		originalEnv[env] = os.Getenv(env)
	}

	defer func() {
		for env, val := range originalEnv {
			if val == "" {
				os.Unsetenv(env)
			} else {
				os.Setenv(env, val)
			}
		}
	}()

	for _, env := range envVars {
		os.Unsetenv(env)
	}

	t.Run("default values", func(t *testing.T) {
		os.Setenv("JWT_SECRET", "test-secret")
		defer os.Unsetenv("JWT_SECRET")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.ServerPort != "8080" {
			t.Errorf("ServerPort = %v, want 8080", cfg.ServerPort)
		}
		if cfg.BaseURL != "http://localhost:8080" {
			t.Errorf("BaseURL = %v, want http://localhost:8080", cfg.BaseURL)
		}
		if cfg.DBHost != "localhost" {
			t.Errorf("DBHost = %v, want localhost", cfg.DBHost)
		}
		if cfg.DBPort != 5432 {
			t.Errorf("DBPort = %v, want 5432", cfg.DBPort)
		}
		if cfg.DBName != "kaherecode" {
			t.Errorf("DBName = %v, want kaherecode", cfg.DBName)
		}
		if cfg.DBSSLMode != "disable" {
			t.Errorf("DBSSLMode = %v, want disable", cfg.DBSSLMode)
		}
		if cfg.DBMaxConns != 25 {
			t.Errorf("DBMaxConns = %v, want 25", cfg.DBMaxConns)
		}
		if cfg.JWTTTL != 24*time.Hour {
			t.Errorf("JWTTTL = %v, want 24h", cfg.JWTTTL)
		}
		if cfg.MailWorkerPoolSize != 2 {
			t.Errorf("MailWorkerPoolSize = %v, want 2", cfg.MailWorkerPoolSize)
		}
		if cfg.HomePageSize != 10 {
			t.Errorf("HomePageSize = %v, want 10", cfg.HomePageSize)
		}
		if cfg.CloudinaryFolder != "kaherecode/tutorials/" {
			t.Errorf("CloudinaryFolder = %v, want kaherecode/tutorials/", cfg.CloudinaryFolder)
		}
	})

	t.Run("custom values from environment", func(t *testing.T) {
		os.Setenv("SERVER_PORT", "9090")
		os.Setenv("DB_HOST", "db.internal")
		os.Setenv("DB_PORT", "5433")
		os.Setenv("JWT_SECRET", "super-secret")
		os.Setenv("JWT_TTL", "1h")
		os.Setenv("HOME_PAGE_SIZE", "25")
		defer func() {
			for _, env := range envVars {
				os.Unsetenv(env)
			}
		}()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.ServerPort != "9090" {
			t.Errorf("ServerPort = %v, want 9090", cfg.ServerPort)
		}
		if cfg.DBHost != "db.internal" {
			t.Errorf("DBHost = %v, want db.internal", cfg.DBHost)
		}
		if cfg.DBPort != 5433 {
			t.Errorf("DBPort = %v, want 5433", cfg.DBPort)
		}
		if cfg.JWTSecret != "super-secret" {
			t.Errorf("JWTSecret = %v, want super-secret", cfg.JWTSecret)
		}
		if cfg.JWTTTL != time.Hour {
			t.Errorf("JWTTTL = %v, want 1h", cfg.JWTTTL)
		}
		if cfg.HomePageSize != 25 {
			t.Errorf("HomePageSize = %v, want 25", cfg.HomePageSize)
		}
	})

	t.Run("missing JWT secret fails validation", func(t *testing.T) {
		if _, err := Load(); err == nil {
			t.Error("Load() expected error when JWT_SECRET is unset")
		}
	})

	t.Run("invalid int falls back to default", func(t *testing.T) {
		os.Setenv("JWT_SECRET", "test-secret")
		os.Setenv("HOME_PAGE_SIZE", "not-a-number")
		defer func() {
			os.Unsetenv("JWT_SECRET")
			os.Unsetenv("HOME_PAGE_SIZE")
		}()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.HomePageSize != 10 {
			t.Errorf("HomePageSize = %v, want fallback 10", cfg.HomePageSize)
		}
	})
}
