package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestLoadConfigFileDefaults(t *testing.T) {
	path := writeEnv(t, "JWT_SECRET=0123456789abcdef0123\n")

	config, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}

	if config.App.Port != "8080" {
		t.Errorf("Port = %q, want 8080", config.App.Port)
	}
	if config.App.StorageDriver != StorageDriverPostgres {
		t.Errorf("StorageDriver = %q", config.App.StorageDriver)
	}
	if config.JWT.ExpiryHours != 24 {
		t.Errorf("ExpiryHours = %d, want 24", config.JWT.ExpiryHours)
	}
	if config.JWT.Issuer != config.App.Name {
		t.Errorf("Issuer = %q, want app name %q", config.JWT.Issuer, config.App.Name)
	}
	if config.App.ShutdownTimeout != 10 {
		t.Errorf("ShutdownTimeout = %d, want 10", config.App.ShutdownTimeout)
	}
	if len(config.App.AllowedOrigins) != 1 || config.App.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v", config.App.AllowedOrigins)
	}
}

func TestLoadConfigFileEnvOverrides(t *testing.T) {
	path := writeEnv(t, "JWT_SECRET=0123456789abcdef0123\nPORT=9000\n")
	t.Setenv("PORT", "9100")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("ADMIN_EMAIL", " Admin@Example.com ")
	t.Setenv("ADMIN_PASSWORD", "adminpass")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	config, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}

	if config.App.Port != "9100" {
		t.Errorf("Port = %q, want env override 9100", config.App.Port)
	}
	if config.App.StorageDriver != StorageDriverMemory {
		t.Errorf("StorageDriver = %q, want memory", config.App.StorageDriver)
	}
	if config.Admin.Email != "admin@example.com" {
		t.Errorf("Admin.Email = %q", config.Admin.Email)
	}
	if len(config.App.AllowedOrigins) != 2 || config.App.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("AllowedOrigins = %v", config.App.AllowedOrigins)
	}
}

func TestLoadConfigFileMissingFileUsesEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")

	config, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if config.JWT.Secret != "0123456789abcdef0123" {
		t.Fatalf("Secret = %q", config.JWT.Secret)
	}
}

func TestLoadConfigFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing secret", "PORT=8080\n", "Secret"},
		{"short secret", "JWT_SECRET=short\n", "Secret"},
		{"bad driver", "JWT_SECRET=0123456789abcdef0123\nSTORAGE_DRIVER=mongo\n", "StorageDriver"},
		{"admin without password", "JWT_SECRET=0123456789abcdef0123\nADMIN_EMAIL=admin@example.com\n", "Password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFile(writeEnv(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %s", err, tt.want)
			}
		})
	}
}
