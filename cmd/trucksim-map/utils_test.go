package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseUID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{in: "42", want: 42, ok: true},
		{in: "0x2a", want: 42, ok: true},
		{in: " 0X00000000000000FF ", want: 255, ok: true},
		{in: "zz", ok: false},
		{in: "-1", ok: false},
	}

	for _, tt := range tests {
		got, err := parseUID(tt.in)
		if (err == nil) != tt.ok {
			t.Fatalf("parseUID(%q) err=%v want ok=%v", tt.in, err, tt.ok)
		}
		if tt.ok && got != tt.want {
			t.Fatalf("parseUID(%q)=%d want %d", tt.in, got, tt.want)
		}
	}
}

func TestEncodeOutput(t *testing.T) {
	t.Parallel()

	v := catalogReport{RoadLooks: 2, Prefabs: 1}

	y, err := encodeOutput(v, "yaml")
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(string(y), "road_looks: 2") {
		t.Fatalf("yaml=%s", y)
	}

	j, err := encodeOutput(v, "json")
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(string(j), `"prefabs": 1`) {
		t.Fatalf("json=%s", j)
	}

	if _, err := encodeOutput(v, "xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}

func TestSettingsPrecedence(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("map_dir: /from/config\nworkers: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := MapOptions{Config: path}.settings("")
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if cfg.MapDir != "/from/config" || cfg.Workers != 3 || !cfg.Defer {
		t.Fatalf("cfg=%+v", cfg)
	}

	cfg, err = MapOptions{Config: path, Workers: 8, NoDefer: true, Verbose: true}.settings("/from/args")
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if cfg.MapDir != "/from/args" || cfg.Workers != 8 || cfg.Defer || cfg.Log.Level != "debug" {
		t.Fatalf("cfg=%+v", cfg)
	}

	if _, err := (MapOptions{}).settings(""); err == nil {
		t.Fatalf("expected error without a map directory")
	}
}
