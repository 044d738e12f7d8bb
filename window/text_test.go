package window

import "testing"

func TestLoadLabelFont(t *testing.T) {
	f, err := defaultLabelFont(DefaultFontSize)
	if err != nil {
		t.Fatalf("defaultLabelFont: %v", err)
	}
	if f.lh <= 0 {
		t.Errorf("line height = %v", f.lh)
	}
	w1, h1 := f.measure("Speedy")
	w2, h2 := f.measure("Speedy\nCore")
	if w1 <= 0 || h2 <= h1 {
		t.Errorf("measure: one line %vx%v, two lines %vx%v", w1, h1, w2, h2)
	}
}

func TestLoadLabelFontRejectsGarbage(t *testing.T) {
	if _, err := loadLabelFont([]byte("not a font"), 12); err == nil {
		t.Error("expected error for invalid TTF data")
	}
}
