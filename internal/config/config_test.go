package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout.Duration() != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.Server.ShutdownTimeout.Duration())
	}
	if cfg.Display.Brightness != 0.5 {
		t.Errorf("Brightness = %g, want 0.5", cfg.Display.Brightness)
	}
	if cfg.Display.AutoOff.Duration() != 10*time.Second {
		t.Errorf("AutoOff = %v, want 10s", cfg.Display.AutoOff.Duration())
	}
	if cfg.History.Size != 10 {
		t.Errorf("History.Size = %d, want 10", cfg.History.Size)
	}
	if cfg.Log.GetLevel() != "info" {
		t.Errorf("log level = %q, want info", cfg.Log.GetLevel())
	}
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 8080
  shutdown_timeout: 2s
cors:
  allowed_origins: ["https://lights-ui.vercel.app"]
display:
  spi_port: "/dev/spidev0.0"
  brightness: 0.8
  rotation: 180
  auto_off: 30s
history:
  size: 5
log:
  level: debug
  json: true
`))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Server.Addr() != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
	if len(cfg.CORS.AllowedOrigins) != 1 {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Display.SPIPort != "/dev/spidev0.0" {
		t.Errorf("SPIPort = %q", cfg.Display.SPIPort)
	}
	if cfg.Display.Rotation != 180 {
		t.Errorf("Rotation = %d", cfg.Display.Rotation)
	}
	if cfg.Display.AutoOff.Duration() != 30*time.Second {
		t.Errorf("AutoOff = %v", cfg.Display.AutoOff.Duration())
	}
	if cfg.History.Size != 5 {
		t.Errorf("History.Size = %d", cfg.History.Size)
	}
	if !cfg.Log.UseJSON || cfg.Log.GetLevel() != "debug" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoadEnvExpansion(t *testing.T) {
	t.Setenv("UNICORND_PORT", "9000")
	cfg, err := Load(writeConfig(t, `
server:
  port: ${UNICORND_PORT}
  host: ${UNICORND_HOST:192.168.1.10}
`))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000 from env", cfg.Server.Port)
	}
	if cfg.Server.Host != "192.168.1.10" {
		t.Errorf("Host = %q, want fallback default", cfg.Server.Host)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad_rotation", "display:\n  rotation: 45\n"},
		{"brightness_too_high", "display:\n  brightness: 1.5\n"},
		{"bad_duration", "server:\n  shutdown_timeout: fast\n"},
		{"bad_yaml", "server: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("Load() = %v, want IsNotExist", err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 5000 || cfg.Display.Brightness != 0.5 {
		t.Errorf("Default() = %+v", cfg)
	}
}
