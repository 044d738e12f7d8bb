package window

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFileLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"scroll-1200", "scroll-1200"},
		{"  hero entrance ", "hero_entrance"},
		{"a/b\\c", "a_b_c"},
		{"", "frame"},
		{"héro", "h_ro"},
		{"v0.8.2", "v0.8.2"},
	}
	for _, tt := range tests {
		if got := fileLabel(tt.in); got != tt.want {
			t.Errorf("fileLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFrameImageStraightAlpha(t *testing.T) {
	pixels := []byte{
		64, 32, 0, 128, // half alpha
		255, 255, 255, 255, // opaque
		0, 0, 0, 0, // transparent
	}
	img := frameImage(pixels, 3, 1)
	want := []byte{127, 63, 0, 128, 255, 255, 255, 255, 0, 0, 0, 0}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], want[i])
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	img := frameImage([]byte{255, 0, 0, 255}, 1, 1)
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("bounds = %v", b)
	}

	if err := writePNG(filepath.Join(t.TempDir(), "missing", "x.png"), img); err == nil {
		t.Error("expected error for missing directory")
	}
}
