package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetDataDirWithExplicitEnv(t *testing.T) {
	tmpDir := t.TempDir()
	customDir := filepath.Join(tmpDir, "custom")

	t.Setenv("CARDCOL_DIR", customDir)
	t.Setenv("XDG_DATA_HOME", "")

	got := GetDataDir()
	if got != customDir {
		t.Fatalf("expected %q, got %q", customDir, got)
	}
}

func TestGetDataDirFallsBackToXDG(t *testing.T) {
	tmpDir := t.TempDir()
	xdgDir := filepath.Join(tmpDir, "xdg")

	t.Setenv("CARDCOL_DIR", "")
	t.Setenv("XDG_DATA_HOME", xdgDir)

	got := GetDataDir()
	want := filepath.Join(xdgDir, "cardcol")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestGetDBAndExportsPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("CARDCOL_DIR", tmpDir)

	if got, want := GetDBPath(), filepath.Join(tmpDir, "cards.db"); got != want {
		t.Fatalf("GetDBPath expected %q, got %q", want, got)
	}

	if got, want := GetExportsDir(), filepath.Join(tmpDir, "exports"); got != want {
		t.Fatalf("GetExportsDir expected %q, got %q", want, got)
	}
}

func TestEncodeSeriesName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Legend of Blue Eyes White Dragon", "legend-of-blue-eyes-white-dragon"},
		{"  Rage/of.the_Abyss ", "rage-of-the-abyss"},
		{"***", "unnamed"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got := EncodeSeriesName(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			if strings.ContainsAny(got, "/._ ") {
				t.Fatalf("encoded name %q still contains separators", got)
			}
		})
	}
}

func TestLoadServerDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("CARDCOL_DIR", tmpDir)
	t.Setenv("CARDCOL_DB", "")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer returned error: %v", err)
	}
	if cfg.Addr() != "localhost:3000" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
	if cfg.DBPath != filepath.Join(tmpDir, "cards.db") {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
}

func TestLoadClient(t *testing.T) {
	t.Setenv("CARDCOL_API_URL", "http://cards.local:8080/api/v1/")
	t.Setenv("CARDCOL_API_TIMEOUT", "2s")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient returned error: %v", err)
	}
	if cfg.APIURL != "http://cards.local:8080/api/v1" {
		t.Fatalf("expected trailing slash to be trimmed, got %q", cfg.APIURL)
	}
	if cfg.Timeout != 2*time.Second {
		t.Fatalf("expected 2s timeout, got %s", cfg.Timeout)
	}

	t.Setenv("CARDCOL_API_TIMEOUT", "0s")
	if _, err := LoadClient(); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}
