package easel

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"canvas", "canvas"},
		{"after-drag", "after-drag"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExportQueueAppend(t *testing.T) {
	e := NewEditor(&recordingSource{})
	e.Export("a")
	e.Export("b")
	e.Export("c")
	if len(e.exportQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(e.exportQueue))
	}
	if e.exportQueue[0] != "a" || e.exportQueue[1] != "b" || e.exportQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", e.exportQueue)
	}
}

func TestExportDirDefault(t *testing.T) {
	e := NewEditor(&recordingSource{})
	if e.ExportDir != "exports" {
		t.Errorf("ExportDir = %q, want %q", e.ExportDir, "exports")
	}
}

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	if err := writePNG(path, img); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, _, err := image.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 8 {
		t.Errorf("decoded bounds = %v", decoded.Bounds())
	}
}
