package track

import (
	"strings"
	"testing"

	"drainroute/pkg/geom"
	"drainroute/pkg/view"
)

func TestAppendDirect(t *testing.T) {
	tr := New(&view.Memory{})
	n := tr.AppendDirect(directPipe(), geom.V(100, 500, 0), geom.V(900, 500, 0))

	if !geom.Eq(n.Center, geom.V(500, 500, 0)) {
		t.Errorf("center = %v", n.Center)
	}
	if !geom.Eq(n.BaseDir, geom.V(1, 0, 0)) {
		t.Errorf("base direction = %v, want the unit x axis", n.BaseDir)
	}
	if n.SecondDir.Length() != 0 || n.ThirdDir.Length() != 0 {
		t.Error("a straight pipe has only the base direction")
	}
}

func TestRemoveUnlinks(t *testing.T) {
	tr := New(&view.Memory{})
	a := tr.AppendDirect(directPipe(), geom.V(0, 0, 0), geom.V(100, 0, 0))
	b := tr.AppendDirect(directPipe(), geom.V(100, 0, 0), geom.V(100, 100, 0))
	a.Next = b
	b.BasePrev = a

	tr.Remove(b)

	if len(tr.Nodes) != 1 || tr.Nodes[0] != a {
		t.Fatalf("nodes after remove = %v", tr.Nodes)
	}
	if a.Next != nil {
		t.Error("the link to the removed node must be cleared")
	}
	if b.BasePrev != nil {
		t.Error("the removed node must drop its own links")
	}
}

func TestCloneIsDeep(t *testing.T) {
	tr := New(&view.Memory{})
	a := tr.AppendDirect(directPipe(), geom.V(0, 0, 0), geom.V(100, 0, 0))
	b := tr.AppendDirect(directPipe(), geom.V(100, 0, 0), geom.V(100, 100, 0))
	a.Next = b
	b.BasePrev = a

	clone := tr.Clone()
	if len(clone.Nodes) != 2 {
		t.Fatalf("clone has %d nodes", len(clone.Nodes))
	}
	ca, cb := clone.Nodes[0], clone.Nodes[1]
	if ca == a || cb == b {
		t.Fatal("clone must copy the nodes")
	}
	if ca.Next != cb || cb.BasePrev != ca {
		t.Error("links must point at the copies")
	}
	if ca.Object != a.Object {
		t.Error("catalog objects stay shared")
	}

	ca.End = geom.V(999, 0, 0)
	if !geom.Eq(a.End, geom.V(100, 0, 0)) {
		t.Error("mutating the clone leaked into the original")
	}
}

func TestWrite2D(t *testing.T) {
	tr := New(&view.Memory{})
	tr.AppendDirect(directPipe(), geom.V(100, 500, 0), geom.V(900, 500, 0))
	tr.AppendDirect(directPipe(), geom.V(900, 500, 0), geom.V(900, 100.5, 0))
	tr.NewNode(teeFitting(), geom.V(400, 400, 0), geom.V(320, 400, 0), geom.V(490, 400, 0),
		geom.V(1, 0, 0), geom.V(0, 1, 0), geom.Vec{})

	var sb strings.Builder
	if err := tr.Write2D(&sb); err != nil {
		t.Fatal(err)
	}
	want := "3 0\n" +
		"100 500 900 500 50\n" +
		"900 500 900 100.5 50\n" +
		"320 400 490 400 1\n"
	if sb.String() != want {
		t.Errorf("Write2D output:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestWriteSVG(t *testing.T) {
	tr := New(&view.Memory{})
	tr.AppendDirect(directPipe(), geom.V(100, 500, 0), geom.V(900, 500, 0))

	var sb strings.Builder
	if err := tr.WriteSVG(&sb); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{"<svg", "<line", "stroke-width:60", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q", want)
		}
	}
}

func TestPrint2D(t *testing.T) {
	sink := &view.Memory{}
	tr := New(sink)
	tr.AppendDirect(directPipe(), geom.V(0, 0, 0), geom.V(100, 0, 0))
	tr.Print2D()

	if len(sink.Infos) != 3 {
		t.Fatalf("expected header, one row and the total, got %d lines", len(sink.Infos))
	}
	if !strings.Contains(sink.Infos[len(sink.Infos)-1], "total cost") {
		t.Errorf("last line = %q", sink.Infos[len(sink.Infos)-1])
	}
}
