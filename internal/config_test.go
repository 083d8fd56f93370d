package internal

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(filepath.Join(dir, "config.yaml"), dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Window.Start != (ClockTime{Hour: 18, Minute: 40}) {
		t.Errorf("default window start = %v, want 18:40", cfg.Window.Start)
	}
	if cfg.Pace.Min.Std() != 2*time.Second || cfg.Pace.Max.Std() != 8*time.Second {
		t.Errorf("default pace = [%s, %s], want [2s, 8s]", cfg.Pace.Min.Std(), cfg.Pace.Max.Std())
	}
	if cfg.WhatsApp.URL != "https://web.whatsapp.com" {
		t.Errorf("default whatsapp url = %s", cfg.WhatsApp.URL)
	}
	if cfg.WhatsApp.SelfChat != "Me" {
		t.Errorf("default self chat = %s, want Me", cfg.WhatsApp.SelfChat)
	}
	if cfg.Paths.Ledger != filepath.Join(dir, "state.json") {
		t.Errorf("default ledger path = %s", cfg.Paths.Ledger)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeTestFile(t, path, `
window:
  start: "07:30"
  end: "08:15"
pace:
  min: 1s
  max: 3s
`)

	cfg, err := LoadConfig(path, dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Window.Start != (ClockTime{Hour: 7, Minute: 30}) {
		t.Errorf("window start = %v, want 07:30", cfg.Window.Start)
	}
	if cfg.Pace.Max.Std() != 3*time.Second {
		t.Errorf("pace max = %s, want 3s", cfg.Pace.Max.Std())
	}
	// Unset sections keep their defaults
	if cfg.WhatsApp.URL != "https://web.whatsapp.com" {
		t.Errorf("whatsapp url = %s, want default", cfg.WhatsApp.URL)
	}
	if cfg.Calendar.DaysAhead != 1 {
		t.Errorf("days ahead = %d, want default 1", cfg.Calendar.DaysAhead)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeTestFile(t, path, "window: [not: a: mapping")

	if _, err := LoadConfig(path, dir); err == nil {
		t.Error("LoadConfig() error = nil for invalid YAML, want ConfigError")
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "pace max below min",
			content: `
pace:
  min: 5s
  max: 2s
`,
		},
		{
			name: "negative days ahead",
			content: `
calendar:
  days_ahead: -1
`,
		},
		{
			name: "empty self chat",
			content: `
whatsapp:
  self_chat: ""
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			writeTestFile(t, path, tt.content)

			if _, err := LoadConfig(path, dir); err == nil {
				t.Error("LoadConfig() error = nil, want validation error")
			}
		})
	}
}

func TestDuration_Unmarshal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeTestFile(t, path, `
whatsapp:
  handshake_timeout: 2m
  op_timeout: 1500ms
`)

	cfg, err := LoadConfig(path, dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.WhatsApp.HandshakeTimeout.Std() != 2*time.Minute {
		t.Errorf("handshake timeout = %s, want 2m", cfg.WhatsApp.HandshakeTimeout.Std())
	}
	if cfg.WhatsApp.OpTimeout.Std() != 1500*time.Millisecond {
		t.Errorf("op timeout = %s, want 1.5s", cfg.WhatsApp.OpTimeout.Std())
	}
}
