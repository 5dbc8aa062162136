package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"qrcmigrate/internal/config"
)

func TestLoadDefaultsWhenNoConfigExists(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "qrcmigrate", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.Descriptor.Prefix != "/" {
		t.Fatalf("unexpected prefix %q", cfg.Descriptor.Prefix)
	}
	if cfg.Descriptor.FileTag != "file" {
		t.Fatalf("unexpected file tag %q", cfg.Descriptor.FileTag)
	}
	if cfg.Descriptor.EntryIndent != "\n"+strings.Repeat(" ", 8) {
		t.Fatalf("unexpected entry indent %q", cfg.Descriptor.EntryIndent)
	}
	if cfg.Descriptor.ClosingIndent != "\n"+strings.Repeat(" ", 4) {
		t.Fatalf("unexpected closing indent %q", cfg.Descriptor.ClosingIndent)
	}
	if !cfg.Write.Atomic || !cfg.Write.Lock {
		t.Fatalf("expected atomic locked writes by default: %+v", cfg.Write)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	projectDir := t.TempDir()
	t.Chdir(projectDir)

	content := "[descriptor]\nprefix = \"/db\"\n"
	if err := os.WriteFile(filepath.Join(projectDir, "qrcmigrate.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected project config to be found")
	}
	if filepath.Base(resolved) != "qrcmigrate.toml" {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Descriptor.Prefix != "/db" {
		t.Fatalf("expected prefix from project config, got %q", cfg.Descriptor.Prefix)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "qrcmigrate.toml")

	type payload struct {
		Descriptor struct {
			FileTag     string `toml:"file_tag"`
			EntryIndent string `toml:"entry_indent"`
		} `toml:"descriptor"`
		Write struct {
			Atomic bool `toml:"atomic"`
		} `toml:"write"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Descriptor.FileTag = " entry "
	custom.Descriptor.EntryIndent = "\n\t\t"
	custom.Write.Atomic = false
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "Debug"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Descriptor.FileTag != "entry" {
		t.Fatalf("expected trimmed file tag, got %q", cfg.Descriptor.FileTag)
	}
	if cfg.Descriptor.EntryIndent != "\n\t\t" {
		t.Fatalf("unexpected entry indent %q", cfg.Descriptor.EntryIndent)
	}
	if cfg.Descriptor.Prefix != "/" {
		t.Fatalf("expected default prefix to survive, got %q", cfg.Descriptor.Prefix)
	}
	if cfg.Write.Atomic {
		t.Fatal("expected atomic writes disabled")
	}
	if !cfg.Write.Lock {
		t.Fatal("expected lock default to survive partial config")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
}

func TestLoadMissingCustomPathUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing config")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Descriptor.Prefix != "/" {
		t.Fatalf("unexpected prefix %q", cfg.Descriptor.Prefix)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "bad tag", content: "[descriptor]\nfile_tag = \"two words\"\n", want: "descriptor.file_tag"},
		{name: "tag with markup", content: "[descriptor]\nfile_tag = \"a><b\"\n", want: "descriptor.file_tag"},
		{name: "entry indent text", content: "[descriptor]\nentry_indent = \"\\n  x\"\n", want: "descriptor.entry_indent"},
		{name: "closing indent text", content: "[descriptor]\nclosing_indent = \"--\"\n", want: "descriptor.closing_indent"},
		{name: "log format", content: "[logging]\nformat = \"xml\"\n", want: "logging.format"},
		{name: "log level", content: "[logging]\nlevel = \"loud\"\n", want: "logging.level"},
		{name: "unknown key", content: "[write]\nfsync = true\n", want: "parse config"},
		{name: "syntax", content: "[descriptor\n", want: "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "qrcmigrate.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if *cfg != config.Default() {
		t.Fatalf("sample config differs from defaults: %+v", *cfg)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Descriptor.Prefix = "/sql"

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	loaded, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != cfg {
		t.Fatalf("round trip mismatch: %+v", *loaded)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := config.ExpandPath("~/configs/qrcmigrate.toml")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if want := filepath.Join(home, "configs", "qrcmigrate.toml"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
