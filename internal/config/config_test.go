package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	kerrors "github.com/Ortofta/kaoto/pkg/errors"
	"github.com/Ortofta/kaoto/pkg/icons"
	"github.com/Ortofta/kaoto/pkg/links"
)

func TestLoadFile(t *testing.T) {
	cfg, err := Load("testdata/config.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != 12*time.Hour {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}

	view := cfg.ViewConfig()
	def := links.DefaultViewConfig()
	if view.RowHeight != 30 || view.PanelGap != 200 {
		t.Errorf("view = %+v", view)
	}
	if view.Indent != def.Indent || view.PanelWidth != def.PanelWidth {
		t.Errorf("unset view fields should keep defaults, got %+v", view)
	}

	res := cfg.IconResolver()
	if got := res.Resolve("log", icons.EIP); got != "eip/log-custom" {
		t.Errorf("override icon = %q", got)
	}
	if got := res.Resolve("timer", icons.Component); got != "component/timer" {
		t.Errorf("default icon = %q", got)
	}
}

func TestLoadDefaultLocation(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
	if cfg.Cache.Backend != BackendFile || cfg.Server.Addr != ":8080" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.IconResolver() != icons.Default {
		t.Error("no overrides should use the default resolver")
	}
}

func TestLoadDefaultLocationPresent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, "kaoto")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Path()
	if err != nil || !strings.HasPrefix(p, home) {
		t.Fatalf("Path() = %q, %v", p, err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != BackendNone {
		t.Errorf("backend = %q", cfg.Cache.Backend)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !kerrors.Is(err, kerrors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"Syntax", "[log\nlevel = 1", "decode config"},
		{"UnknownKey", "[cache]\nbakend = \"file\"", "bakend"},
		{"Backend", "[cache]\nbackend = \"s3\"", "Backend"},
		{"RedisWithoutAddr", "[cache]\nbackend = \"redis\"", "RedisAddr"},
		{"RedisBadAddr", "[cache]\nbackend = \"redis\"\nredis_addr = \"localhost\"", "host:port"},
		{"Level", "[log]\nlevel = \"loud\"", "Level"},
		{"NegativeView", "[view]\nindent = -4", "Indent"},
		{"BadTTL", "[cache]\nttl = \"soon\"", "decode config"},
		{"EmptyAddr", "[server]\naddr = \"\"", "Addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !kerrors.Is(err, kerrors.ErrCodeInvalidConfig) {
				t.Errorf("code = %s, want INVALID_CONFIG", kerrors.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("90m")); err != nil {
		t.Fatal(err)
	}
	if d.Duration != 90*time.Minute {
		t.Errorf("d = %v", d.Duration)
	}
	out, _ := d.MarshalText()
	if string(out) != "1h30m0s" {
		t.Errorf("MarshalText = %q", out)
	}
	if err := d.UnmarshalText([]byte("-1h")); err == nil {
		t.Error("negative duration should fail")
	}
}
