package buffer

import "testing"

var insertTests = []struct {
	Desc   string
	Start  string
	Cursor int
	Insert string
	Want   string
	WantAt int
}{
	{"append", "fil", 3, "e1", "file1", 5},
	{"middle", "fe1", 1, "il", "file1", 3},
	{"prefix", "le1", 0, "fi", "file1", 2},
}

func TestInsert(t *testing.T) {
	for _, tt := range insertTests {
		t.Run(tt.Desc, func(t *testing.T) {
			b := New()
			b.SetText(tt.Start)
			b.SetCursor(tt.Cursor)
			b.Insert(tt.Insert)
			if got := b.Text(); got != tt.Want {
				t.Errorf("Text() = %q, want %q", got, tt.Want)
			}
			if got := b.Cursor(); got != tt.WantAt {
				t.Errorf("Cursor() = %d, want %d", got, tt.WantAt)
			}
		})
	}
}

func TestBackspace(t *testing.T) {
	b := New()
	b.SetText("file1")
	b.SetCursor(5)
	if n := b.Backspace(1); n != 1 {
		t.Fatalf("Backspace() removed %d, want 1", n)
	}
	if got := b.Text(); got != "file" {
		t.Errorf("Text() = %q, want %q", got, "file")
	}
	if got := b.Cursor(); got != 4 {
		t.Errorf("Cursor() = %d, want 4", got)
	}
}

func TestBackspaceClampsAtStart(t *testing.T) {
	b := New()
	b.SetText("ab")
	b.SetCursor(0)
	if n := b.Backspace(5); n != 0 {
		t.Errorf("Backspace() at start removed %d, want 0", n)
	}
}

func TestDeleteClampsAtEnd(t *testing.T) {
	b := New()
	b.SetText("ab")
	b.SetCursor(2)
	if n := b.Delete(5); n != 0 {
		t.Errorf("Delete() at end removed %d, want 0", n)
	}
}

func TestReplace(t *testing.T) {
	b := New()
	b.SetText("case_map-1")
	b.Replace(8, 10, "_2")
	if got := b.Text(); got != "case_map_2" {
		t.Errorf("Text() = %q, want %q", got, "case_map_2")
	}
	if got := b.Cursor(); got != 10 {
		t.Errorf("Cursor() = %d, want 10", got)
	}
}

func TestSetCursorClamps(t *testing.T) {
	b := New()
	b.SetText("ab")
	b.SetCursor(100)
	if got := b.Cursor(); got != 2 {
		t.Errorf("Cursor() = %d, want 2", got)
	}
	b.SetCursor(-5)
	if got := b.Cursor(); got != 0 {
		t.Errorf("Cursor() = %d, want 0", got)
	}
}
