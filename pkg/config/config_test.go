package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/precice/config-format/pkg/errors"
	"github.com/precice/config-format/pkg/format"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultMatchesFormatDefaults(t *testing.T) {
	if got := Default().Options(); got != format.DefaultOptions() {
		t.Errorf("Default().Options() = %+v, want %+v", got, format.DefaultOptions())
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default() should be valid: %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, `
[format]
max_width = 80

[cache]
redis_url = "redis://localhost:6379/0"
ttl = "24h"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}

	opts := cfg.Options()
	if opts.MaxWidth != 80 {
		t.Errorf("MaxWidth = %d, want 80", opts.MaxWidth)
	}
	if opts.Indent != "  " || opts.MaxGroupLevel != 1 || opts.GroupSeparator != ":" {
		t.Errorf("unset keys should keep defaults: %+v", opts)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache.enabled should default to true")
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("RedisURL = %q", cfg.Cache.RedisURL)
	}
	if cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("TTL = %s, want 24h", cfg.Cache.TTL)
	}
}

func TestLoadTabs(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[format]\nindent = 1\nuse_tabs = true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Options().Indent != "\t" {
		t.Errorf("Indent = %q, want tab", cfg.Options().Indent)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[format\nmax_width = 1"},
		{"unknown key", "[format]\nmax_widht = 80\n"},
		{"unknown table", "[output]\ncolor = true\n"},
		{"negative width", "[format]\nmax_width = -1\n"},
		{"negative indent", "[format]\nindent = -2\n"},
		{"empty separator", "[format]\ngroup_separator = \"\"\n"},
		{"wrong type", "[format]\nmax_width = \"wide\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tt.content)

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !errs.Is(err, errs.ErrCodeInvalidConfig) {
				t.Errorf("error code = %q, want %q", errs.GetCode(err), errs.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, FileName)
	writeFile(t, path, "[format]\n")
	nested := filepath.Join(root, "tutorials", "perpendicular-flap", "fluid")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find() = %q, %v, %v", got, ok, err)
	}
	want, _ := filepath.EvalSymlinks(path)
	if resolved, _ := filepath.EvalSymlinks(got); resolved != want {
		t.Errorf("Find() = %q, want %q", got, path)
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	// t.TempDir is below the system temp dir, which has no config file.
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if cfg.Path != "" && !strings.HasSuffix(cfg.Path, FileName) {
		t.Errorf("unexpected Path %q", cfg.Path)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Format.MaxWidth = 120
	cfg.Cache.Prefix = "tutorials:"

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if strings.Contains(buf.String(), "Path") {
		t.Errorf("Path should not be encoded:\n%s", buf.String())
	}

	var back Config
	if _, err := toml.Decode(buf.String(), &back); err != nil {
		t.Fatalf("decode encoded config: %v\n%s", err, buf.String())
	}
	if back.Format != cfg.Format || back.Cache.Prefix != cfg.Cache.Prefix || back.Cache.TTL != cfg.Cache.TTL {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", back, cfg)
	}
}
