package config

import (
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Listen != ":8080" {
		t.Errorf("unexpected listen default: %q", cfg.Listen)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("unexpected base_url default: %q", cfg.BaseURL)
	}
	if cfg.Storage.SQLite == nil || cfg.Storage.SQLite.Path == "" {
		t.Fatalf("sqlite storage default did not bind: %+v", cfg.Storage)
	}
}

func TestLoadConfig_BindsEmailDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Email.Host != "host.docker.internal" {
		t.Errorf("email.host default did not bind: got %q", cfg.Email.Host)
	}
	if cfg.Email.Port != 25 {
		t.Errorf("email.port default did not bind: got %d", cfg.Email.Port)
	}
	if cfg.Email.From != "noreply@example.com" {
		t.Errorf("email.from default did not bind: got %q", cfg.Email.From)
	}
	if cfg.Email.TLS {
		t.Error("email.tls default did not bind: got true")
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("HR_EMAIL", "hr@example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.HREmail != "hr@example.com" {
		t.Errorf("environment override did not bind: got %q", cfg.HREmail)
	}
}

func TestResolveSQLitePath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"", ""},
		{":memory:", ":memory:"},
		{"/var/lib/visitors.db", "/var/lib/visitors.db"},
		{"data/visitors.db", getConfigPath() + "/data/visitors.db"},
	}

	for _, tc := range cases {
		if got := resolveSQLitePath(tc.path); got != tc.want {
			t.Errorf("resolveSQLitePath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
