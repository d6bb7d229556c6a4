package content

import "testing"

func TestBufferAppendTracksWidth(t *testing.T) {
	b := NewBuffer("")
	if b.Len() != 0 || b.Width() != 0 {
		t.Fatalf("empty buffer reports %dx%d", b.Width(), b.Len())
	}

	b.Append("short", "a much longer line")
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
	if b.Width() != len("a much longer line") {
		t.Fatalf("width = %d", b.Width())
	}
	if b.Line(0) != "short" {
		t.Fatalf("line 0 = %q", b.Line(0))
	}
	if b.Line(99) != "" {
		t.Fatal("out-of-range line must be empty")
	}
}

func TestBufferWidthIgnoresANSISequences(t *testing.T) {
	b := NewBuffer("")
	b.Append("\x1b[31mred\x1b[0m")
	if b.Width() != 3 {
		t.Fatalf("width = %d, want display width 3", b.Width())
	}
}

func TestBufferReplace(t *testing.T) {
	b := NewBuffer("one\ntwo\nthree")
	if b.Len() != 3 {
		t.Fatalf("len = %d, want 3", b.Len())
	}
	b.Replace([]string{"x"})
	if b.Len() != 1 || b.Width() != 1 {
		t.Fatalf("after replace: %dx%d", b.Width(), b.Len())
	}
}
