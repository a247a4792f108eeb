package config

import (
	"os"
	"testing"
)

func TestLoadParsesEnvironment(t *testing.T) {
	vars := map[string]string{
		"PORT":                "9090",
		"APP_ENV":             "production",
		"DB_PATH":             "/data/test.db",
		"FIREBASE_PROJECT_ID": "lifeledger-test",
	}
	for key, value := range vars {
		original := os.Getenv(key)
		os.Setenv(key, value)
		defer os.Setenv(key, original)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.DBPath != "/data/test.db" {
		t.Errorf("Expected DB path /data/test.db, got %s", cfg.DBPath)
	}
	if cfg.FirebaseProjectID != "lifeledger-test" {
		t.Errorf("Expected project id lifeledger-test, got %s", cfg.FirebaseProjectID)
	}
	if !cfg.IsProduction() {
		t.Error("APP_ENV=production should report IsProduction")
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "STATIC_DIR"} {
		original := os.Getenv(key)
		os.Unsetenv(key)
		defer os.Setenv(key, original)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.AppEnv != "development" {
		t.Errorf("Expected default env development, got %s", cfg.AppEnv)
	}
	if cfg.StaticDir != "./dist" {
		t.Errorf("Expected default static dir ./dist, got %s", cfg.StaticDir)
	}
	if cfg.IsProduction() {
		t.Error("Default environment should not be production")
	}
}
