package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/dmflow/internal/trigger"
)

// isolate points XDG_CONFIG_HOME and the working directory at a temp dir and
// clears every DMFLOW_ variable.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range envKeys {
		t.Setenv("DMFLOW_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), "")
		_ = os.Unsetenv("DMFLOW_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	tests := []struct {
		name      string
		xdgConfig string
		want      string
	}{
		{
			name:      "with XDG_CONFIG_HOME set",
			xdgConfig: "/custom/config",
			want:      "/custom/config/dmflow/dmflow.yml",
		},
		{
			name:      "without XDG_CONFIG_HOME",
			xdgConfig: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)

			got := GlobalPath()
			if tt.xdgConfig != "" {
				if got != tt.want {
					t.Errorf("GlobalPath() = %v, want %v", got, tt.want)
				}
				return
			}
			if !filepath.IsAbs(got) {
				t.Errorf("GlobalPath() should return absolute path, got %v", got)
			}
			if !strings.HasSuffix(got, filepath.Join(".config", "dmflow", "dmflow.yml")) {
				t.Errorf("GlobalPath() should end with .config/dmflow/dmflow.yml, got %v", got)
			}
		})
	}
}

func TestProjectPath(t *testing.T) {
	if got := ProjectPath(); got != "dmflow.yml" {
		t.Errorf("ProjectPath() = %v, want dmflow.yml", got)
	}
}

func TestExists(t *testing.T) {
	isolate(t)

	if Exists() {
		t.Fatal("Exists() = true, want false when no config files exist")
	}

	if err := os.WriteFile(ProjectPath(), []byte("theme: catppuccin\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when project config exists")
	}
	_ = os.Remove(ProjectPath())

	if err := WriteGlobal(Default()); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when global config exists")
	}
}

func TestWriteGlobal(t *testing.T) {
	isolate(t)

	cfg := &Config{
		LogLevel:    "debug",
		LogFile:     "/tmp/dmflow.log",
		DefaultMode: "keyword",
		Theme:       "catppuccin",
		Preview:     Preview{Personalize: true, Author: "tester"},
		Serve:       Serve{Addr: "127.0.0.1:9000"},
	}

	if err := WriteGlobal(cfg); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	data, err := os.ReadFile(GlobalPath())
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	content := string(data)
	for _, field := range []string{
		"log_level: debug",
		"log_file: /tmp/dmflow.log",
		"default_mode: keyword",
		"theme: catppuccin",
		"personalize: true",
		"author: tester",
		"addr: 127.0.0.1:9000",
	} {
		if !strings.Contains(content, field) {
			t.Errorf("Config file missing expected field: %s\nContent:\n%s", field, content)
		}
	}
}

func TestWriteProject(t *testing.T) {
	isolate(t)

	if err := WriteProject(Default()); err != nil {
		t.Fatalf("WriteProject() error = %v", err)
	}

	data, err := os.ReadFile(ProjectPath())
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	if !strings.Contains(string(data), "default_mode: exact") {
		t.Errorf("project config missing default_mode:\n%s", data)
	}
}

func TestLoad_NoConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	if cfg.LogLevel != want.LogLevel {
		t.Errorf("Load() default LogLevel = %v, want %v", cfg.LogLevel, want.LogLevel)
	}
	if cfg.Mode() != trigger.ModeExact {
		t.Errorf("Load() default Mode = %v, want exact", cfg.Mode())
	}
	if cfg.Preview.Personalize {
		t.Error("Load() default Preview.Personalize = true, want false")
	}
	if cfg.Serve.Addr != want.Serve.Addr {
		t.Errorf("Load() default Serve.Addr = %v, want %v", cfg.Serve.Addr, want.Serve.Addr)
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	global := Default()
	global.DefaultMode = "keyword"
	global.LogLevel = "warn"
	global.Serve.Addr = "global:1"
	if err := WriteGlobal(global); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	project := []byte("default_mode: contains\npreview:\n  personalize: true\n")
	if err := os.WriteFile(ProjectPath(), project, 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}

	t.Setenv("DMFLOW_SERVE_ADDR", "env:2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn from global config", cfg.LogLevel)
	}
	if cfg.Mode() != trigger.ModeContains {
		t.Errorf("Mode = %v, want contains from project config", cfg.Mode())
	}
	if !cfg.Preview.Personalize {
		t.Error("Preview.Personalize = false, want true from project config")
	}
	if cfg.Serve.Addr != "env:2" {
		t.Errorf("Serve.Addr = %v, want env:2 from environment", cfg.Serve.Addr)
	}
}

func TestLoad_InvalidMode(t *testing.T) {
	isolate(t)
	t.Setenv("DMFLOW_DEFAULT_MODE", "regex")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for invalid default_mode")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		wantErr bool
	}{
		{"exact", "exact", false},
		{"keyword uppercase", "KEYWORD", false},
		{"contains", "contains", false},
		{"unknown", "fuzzy", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.DefaultMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
