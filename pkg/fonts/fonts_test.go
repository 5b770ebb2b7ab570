package fonts

import "testing"

func TestRegular(t *testing.T) {
	if len(RegularTTF()) == 0 {
		t.Fatal("RegularTTF() is empty")
	}
	f, err := Regular()
	if err != nil {
		t.Fatalf("Regular() error: %v", err)
	}
	if again, _ := Regular(); again != f {
		t.Error("Regular() should return the cached font")
	}
}

func TestFace(t *testing.T) {
	face, err := Face(8, 72)
	if err != nil {
		t.Fatalf("Face() error: %v", err)
	}
	defer face.Close()
	if h := face.Metrics().Height.Ceil(); h <= 0 || h > 16 {
		t.Errorf("line height at 8pt/72dpi = %d px, want a small positive value", h)
	}
}
