package easel

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Export queues a labeled export of the rendered canvas, captured at the end
// of the current frame's Draw call. The resulting PNG is written to
// ExportDir with a timestamped filename. The canvas is exported as rendered:
// grid, placements, and frame, without the debug HUD. Safe to call from
// Update or Draw.
func (e *Editor) Export(label string) {
	e.exportQueue = append(e.exportQueue, label)
}

// flushExports writes a PNG of the canvas for every queued label. Called at
// the end of Editor.Draw.
func (e *Editor) flushExports(canvas *ebiten.Image) {
	if len(e.exportQueue) == 0 {
		return
	}

	if err := os.MkdirAll(e.ExportDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[easel] export: mkdir %s: %v\n", e.ExportDir, err)
		e.exportQueue = e.exportQueue[:0]
		return
	}

	bounds := canvas.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	canvas.ReadPixels(pixels)

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}

	stamp := time.Now().Format("20060102_150405")

	for _, label := range e.exportQueue {
		safe := sanitizeLabel(label)
		path := fmt.Sprintf("%s/%s_%s.png", e.ExportDir, stamp, safe)
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[easel] export: %v\n", err)
		}
	}

	e.exportQueue = e.exportQueue[:0]
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
