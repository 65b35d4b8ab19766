package connections

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"drainroute/pkg/fault"
	"drainroute/pkg/geom"
)

func load(t *testing.T, content string) (*Set, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "connections.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return Load(path)
}

const header = "kind;name;x;y;z;diameter;slopeSin\n"

func TestLoad(t *testing.T) {
	set, err := load(t, header+
		"source;bath;100;500;0;50;\n"+
		"Source;washer;500;100;0;50;0.03\n"+
		"stack;riser;900;500;0;110;\n")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(set.Sources) != 2 {
		t.Fatalf("got %d sources", len(set.Sources))
	}
	bath := set.Sources[0]
	if bath.Name != "bath" || !geom.Eq(bath.Point, geom.V(100, 500, 0)) ||
		bath.Diameter != 50 || bath.SlopeSin != 0 {
		t.Errorf("bath = %+v", bath)
	}
	if set.Sources[1].SlopeSin != 0.03 {
		t.Errorf("washer slope = %g, want 0.03", set.Sources[1].SlopeSin)
	}
	if set.Destination.Name != "riser" || set.Destination.Diameter != 110 {
		t.Errorf("destination = %+v", set.Destination)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			"no stack",
			header + "source;bath;0;0;0;50;\n",
			"no stack",
		},
		{
			"no sources",
			header + "stack;riser;0;0;0;110;\n",
			"no water sources",
		},
		{
			"two stacks",
			header + "source;bath;0;0;0;50;\nstack;r1;0;0;0;110;\nstack;r2;1;1;0;110;\n",
			"more than one stack",
		},
		{
			"stack with slope",
			header + "source;bath;0;0;0;50;\nstack;riser;0;0;0;110;0.02\n",
			"no slope override",
		},
		{
			"slope out of range",
			header + "source;bath;0;0;0;50;1.5\nstack;riser;0;0;0;110;\n",
			"slope sine",
		},
		{
			"unknown kind",
			header + "drain;bath;0;0;0;50;\n",
			"unknown connection kind",
		},
		{
			"zero diameter",
			header + "source;bath;0;0;0;0;\n",
			"diameter",
		},
		{
			"empty name",
			header + "source;;0;0;0;50;\n",
			"name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.content)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadErrorKinds(t *testing.T) {
	_, err := load(t, header+"source;bath;0;0;0;50;\n")
	kind, ok := fault.KindOf(err)
	if !ok || kind != fault.Validation {
		t.Errorf("missing stack should be a validation fault, got %v", err)
	}
}
