package config

import "testing"

func TestNewConfigRequiresDBConn(t *testing.T) {
	t.Setenv("DB_CONN", "")
	t.Setenv("JWT_SECRET", "secret")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error when DB_CONN is unset")
	}
}

func TestNewConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("DB_CONN", "host=localhost dbname=connect")
	t.Setenv("JWT_SECRET", "")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset")
	}
}

func TestNewConfigDefaultsAndOrigins(t *testing.T) {
	t.Setenv("DB_CONN", "host=localhost dbname=connect")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com ,")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.GithubAPIURL != "https://api.github.com" {
		t.Errorf("GithubAPIURL = %q", cfg.GithubAPIURL)
	}
	want := []string{"https://app.example.com", "https://staging.example.com"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.AllowedOrigins[i] != want[i] {
			t.Errorf("AllowedOrigins[%d] = %q, want %q", i, cfg.AllowedOrigins[i], want[i])
		}
	}
}
