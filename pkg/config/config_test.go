package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.csv", "minDeltaZ (mm/m)\n20\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if math.Abs(cfg.MinSlopeAngleSin-0.02) > 1e-12 {
		t.Errorf("MinSlopeAngleSin = %g, want 0.02", cfg.MinSlopeAngleSin)
	}
}

func TestLoadRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero", "h\n0\n"},
		{"negative", "h\n-5\n"},
		{"too large", "h\n100.5\n"},
		{"not a number", "h\nsteep\n"},
		{"no rows", "h\n"},
		{"two rows", "h\n20\n30\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, "config.csv", tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadParametersDefaults(t *testing.T) {
	p, err := LoadParameters(filepath.Join(t.TempDir(), "params.yaml"))
	if err != nil {
		t.Fatalf("missing file should yield defaults, got error: %v", err)
	}
	if p != DefaultParameters() {
		t.Errorf("parameters = %+v, want defaults", p)
	}
}

func TestLoadParametersOverride(t *testing.T) {
	path := writeFile(t, "params.yaml",
		"minSourceDistanceToSeparate: 200\nmaxNodeWidthToSeparate: 120\n")
	p, err := LoadParameters(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.MinSourceDistanceToSeparate != 200 || p.MaxNodeWidthToSeparate != 120 {
		t.Errorf("parameters = %+v", p)
	}
}

func TestLoadParametersRejectsNonPositive(t *testing.T) {
	path := writeFile(t, "params.yaml", "maxNodeWidthToSeparate: -1\n")
	if _, err := LoadParameters(path); err == nil {
		t.Error("expected an error for a non-positive parameter")
	}
}
