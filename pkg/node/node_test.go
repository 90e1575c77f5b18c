package node

import "testing"

func TestHeadingInvalidLevel(t *testing.T) {
	if _, err := NewHeading("", 0, "x"); err == nil {
		t.Fatalf("expected error for level 0")
	}
	if _, err := NewHeading("", 7, "x"); err == nil {
		t.Fatalf("expected error for level 7")
	}
	if _, err := NewHeading("", 1, "x"); err != nil {
		t.Fatalf("unexpected error for valid level: %v", err)
	}
}

func TestTableRowLengthMismatch(t *testing.T) {
	_, err := NewTable("", "", []string{"a", "b"}, [][]string{{"1", "2", "3"}})
	if err == nil {
		t.Fatalf("expected error for mismatched row length")
	}
}

func TestPlainTextParagraph(t *testing.T) {
	p := NewParagraph("", []Node{&Text{S: "hello "}, &Strong{Children: []Node{&Text{S: "world"}}}})
	if got := PlainText(p); got != "hello world" {
		t.Fatalf("unexpected plain text: %q", got)
	}
}

func TestPlainTextTable(t *testing.T) {
	tbl, err := NewTable("", "", []string{"a", "b"}, [][]string{{"1", "2"}, {"3", "4"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "a, b\n1, 2\n3, 4"
	if got := PlainText(tbl); got != want {
		t.Fatalf("unexpected plain text: got %q want %q", got, want)
	}
}

func TestStructuralImportance(t *testing.T) {
	h1, _ := NewHeading("", 1, "x")
	h3, _ := NewHeading("", 3, "x")
	if StructuralImportance(h1) != 1.0 {
		t.Fatalf("expected h1 importance 1.0, got %v", StructuralImportance(h1))
	}
	if got := StructuralImportance(h3); got != 0.7 {
		t.Fatalf("expected h3 importance 0.7, got %v", got)
	}
}

func TestIsContextBoundaryAndSpecialHandling(t *testing.T) {
	tbl, _ := NewTable("", "", nil, nil)
	code := NewCodeBlock("", "go", "package main")
	para := NewParagraph("", nil)

	if !IsContextBoundary(tbl) || !IsContextBoundary(code) {
		t.Fatalf("expected table and code block to be context boundaries")
	}
	if IsContextBoundary(para) {
		t.Fatalf("paragraph should not be a context boundary")
	}
	if !RequiresSpecialHandling(tbl) || !RequiresSpecialHandling(code) {
		t.Fatalf("expected table and code block to require special handling")
	}
	if RequiresSpecialHandling(para) {
		t.Fatalf("paragraph should not require special handling")
	}
}

func TestNodeIDDeterminism(t *testing.T) {
	a, _ := NewHeading("parent", 2, "Same Title")
	b, _ := NewHeading("parent", 2, "Same Title")
	if a.ID() != b.ID() {
		t.Fatalf("expected identical heading content to yield identical IDs")
	}
}
