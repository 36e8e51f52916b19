package match

import "testing"

func TestAddDeduplicatesUnderScope(t *testing.T) {
	c := NewCollection(Relaxed)
	c.Add(Match{Text: "case_map-1"})
	if c.Add(Match{Text: "CASE_MAP_1"}) {
		t.Errorf("expected relaxed scope to treat case_map-1 and CASE_MAP_1 as duplicates")
	}
	if c.Count() != 1 {
		t.Errorf("Count() = %d, want 1", c.Count())
	}
}

func TestGetMatchLCD(t *testing.T) {
	c := NewCollection(Relaxed)
	c.Add(Match{Text: "case_map-1"})
	c.Add(Match{Text: "case_map_2"})

	lcd := c.GetMatchLCD()
	if lcd != "case_map" {
		t.Errorf("GetMatchLCD() = %q, want %q", lcd, "case_map")
	}
}

func TestGetMatchLCDIsPrefixOfEveryMatch(t *testing.T) {
	tests := [][]string{
		{"file1", "file2", "file10"},
		{"abc"},
		{"one", "two"},
	}
	for _, texts := range tests {
		c := NewCollection(Exact)
		for _, s := range texts {
			c.Add(Match{Text: s})
		}
		lcd := c.GetMatchLCD()
		for _, s := range texts {
			if len(s) < len(lcd) || s[:len(lcd)] != lcd {
				t.Errorf("lcd %q is not a prefix of match %q", lcd, s)
			}
		}
	}
}

func TestHasAux(t *testing.T) {
	c := NewCollection(Exact)
	c.Add(Match{Text: "a"})
	if c.HasAux() {
		t.Errorf("HasAux() = true before any aux match added")
	}
	c.Add(Match{Text: "b", Aux: "desc", HasAux: true})
	if !c.HasAux() {
		t.Errorf("HasAux() = false after adding aux match")
	}
}

func TestBuilderPrefixIncluded(t *testing.T) {
	c := NewCollection(Exact)
	b := NewBuilder(c)
	if b.PrefixIncluded() {
		t.Errorf("PrefixIncluded() default should be false")
	}
	b.SetPrefixIncluded(true)
	if !b.PrefixIncluded() {
		t.Errorf("PrefixIncluded() should be true after SetPrefixIncluded(true)")
	}
}

func TestDisplayFallsBackToText(t *testing.T) {
	m := Match{Text: "file1"}
	if m.Display() != "file1" {
		t.Errorf("Display() = %q, want %q", m.Display(), "file1")
	}
	m.Displayable = "file1*"
	if m.Display() != "file1*" {
		t.Errorf("Display() = %q, want %q", m.Display(), "file1*")
	}
}
