package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSheet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sheet.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestForEachSkipsHeaderAndBlankLines(t *testing.T) {
	path := writeSheet(t, "a;b\n1;2\n\n;\n3;4\n")
	var lines []int
	var firsts []string
	err := ForEach(path, func(r *Row) error {
		lines = append(lines, r.Line())
		firsts = append(firsts, r.TakeString())
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach returned error: %v", err)
	}
	if len(firsts) != 2 || firsts[0] != "1" || firsts[1] != "3" {
		t.Errorf("data rows = %v, want [1 3]", firsts)
	}
	if len(lines) != 2 || lines[0] != 2 {
		t.Errorf("line numbers = %v, want the first data row on line 2", lines)
	}
}

func TestTakePastEndYieldsEmpty(t *testing.T) {
	path := writeSheet(t, "h\nonly\n")
	err := ForEach(path, func(r *Row) error {
		if got := r.TakeString(); got != "only" {
			t.Errorf("first field = %q", got)
		}
		for i := 0; i < 3; i++ {
			if got := r.TakeString(); got != "" {
				t.Errorf("field past end = %q, want empty", got)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestTakeUintError(t *testing.T) {
	path := writeSheet(t, "h\nnope\n")
	err := ForEach(path, func(r *Row) error {
		_, err := r.TakeUint("diameter")
		return err
	})
	if err == nil {
		t.Fatal("expected a parse error")
	}
	for _, want := range []string{path, "line 2", `"diameter"`, `"nope"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestTakeOptional(t *testing.T) {
	path := writeSheet(t, "h\n;\n")
	err := ForEach(path, func(r *Row) error {
		u, err := r.TakeOptionalUint("u")
		if err != nil || u != 0 {
			t.Errorf("TakeOptionalUint on empty = %d, %v", u, err)
		}
		f, err := r.TakeOptionalFloat("f")
		if err != nil || f != 0 {
			t.Errorf("TakeOptionalFloat on empty = %g, %v", f, err)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestTakeFloatTrimsSpace(t *testing.T) {
	path := writeSheet(t, "h\n 12.5 ;x\n")
	err := ForEach(path, func(r *Row) error {
		v, err := r.TakeFloat("v")
		if err != nil {
			t.Fatal(err)
		}
		if v != 12.5 {
			t.Errorf("value = %g, want 12.5", v)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestForEachMissingFile(t *testing.T) {
	err := ForEach(filepath.Join(t.TempDir(), "absent.csv"), func(r *Row) error { return nil })
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
