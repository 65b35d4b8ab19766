package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"drainroute/pkg/view"
)

func writeInputs(t *testing.T, decisions string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"config.csv":            "minDeltaZ (mm/m)\n20\n",
		"externalDiameters.csv": "diameter;externalDiameter\n50;60\n110;110\n",
		"materials.csv": "type;id;name;d1;d2;d3;angle;L1;L2;L3;L4;crossType;reductionAlignment;cost\n" +
			"pipe;1;PVC 50;50;;;;;;;;;;0.1\n" +
			"pipe;2;PVC 110;110;;;;;;;;;;0.2\n",
		"location.csv": "left;right;bottom;top\n0;1000;0;1000\n",
		"connections.csv": "kind;name;x;y;z;diameter;slopeSin\n" +
			"source;bath;100;500;0;50;\n" +
			"stack;riser;900;500;0;110;\n",
		"decisions.csv": decisions,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRunPipeline(t *testing.T) {
	input := writeInputs(t, "decision;alternative\n1;2\n")
	output := filepath.Join(t.TempDir(), "out")
	sink := &view.Memory{}

	if err := run(input, output, sink); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	plan, err := os.ReadFile(filepath.Join(output, "pipeTrack2D.txt"))
	if err != nil {
		t.Fatalf("plan file missing: %v", err)
	}
	want := "1 0\n100 500 900 500 50\n"
	if string(plan) != want {
		t.Errorf("plan = %q, want %q", plan, want)
	}

	svg, err := os.ReadFile(filepath.Join(output, "pipeTrack2D.svg"))
	if err != nil {
		t.Fatalf("svg file missing: %v", err)
	}
	if !strings.Contains(string(svg), "<line") {
		t.Error("svg plan has no line elements")
	}
}

func TestRunExplainsDecisionsByDefault(t *testing.T) {
	input := writeInputs(t, "decision;alternative\n")
	output := filepath.Join(t.TempDir(), "out")
	sink := &view.Memory{}

	if err := run(input, output, sink); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(output, "pipeTrack2D.txt")); !os.IsNotExist(err) {
		t.Error("the default decision should only describe the mechanism, not route")
	}
	joined := strings.Join(sink.Infos, "\n")
	if !strings.Contains(joined, "decisions.csv") {
		t.Error("the description should point the user at decisions.csv")
	}
}

func TestRunMissingInputFails(t *testing.T) {
	input := t.TempDir()
	err := os.WriteFile(filepath.Join(input, "decisions.csv"),
		[]byte("decision;alternative\n1;2\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if err := run(input, t.TempDir(), &view.Memory{}); err == nil {
		t.Fatal("expected an error for missing input sheets")
	}
}
