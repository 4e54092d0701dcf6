package inits

import (
	"os"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_CONN", "postgres://localhost:5432/cocleanup")
	t.Setenv("REDIS_CONN", "redis://localhost:6379/0")
	t.Setenv("AUTH_SIGNATURE_KEY", "test-key")
}

func TestConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Config()
	if err != nil {
		t.Fatalf("Config error: %v", err)
	}

	if cfg.System.IsProd {
		t.Error("IsProd should default to false")
	}
	if cfg.System.Listen != ":1323" {
		t.Errorf("Listen = %q, want %q", cfg.System.Listen, ":1323")
	}
	if cfg.Security.AuthSignatureKey != "test-key" {
		t.Errorf("AuthSignatureKey = %q, want %q", cfg.Security.AuthSignatureKey, "test-key")
	}
}

func TestConfig_ProdMode(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MODE", "production")
	t.Setenv("LISTEN", ":8080")

	cfg, err := Config()
	if err != nil {
		t.Fatalf("Config error: %v", err)
	}

	if !cfg.System.IsProd {
		t.Error("IsProd should be true for MODE=production")
	}
	if cfg.System.Listen != ":8080" {
		t.Errorf("Listen = %q, want %q", cfg.System.Listen, ":8080")
	}
}

func TestConfig_MissingRequired(t *testing.T) {
	for _, key := range []string{"DB_CONN", "REDIS_CONN", "AUTH_SIGNATURE_KEY"} {
		t.Run(key, func(t *testing.T) {
			setRequiredEnv(t)
			// t.Setenv registered the restore; drop the key for this test
			os.Unsetenv(key)

			if _, err := Config(); err == nil {
				t.Fatalf("expected error when %s is unset", key)
			}
		})
	}
}
