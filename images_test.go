package easel

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

// pngBytes encodes a solid wxh PNG for test servers.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// --- ImageHandle ---

func TestImageHandlePending(t *testing.T) {
	h := NewImageHandle()
	if h.Ready() || h.Failed() {
		t.Error("fresh handle should be pending")
	}
	if h.Image() != nil {
		t.Error("pending handle should have a nil image")
	}
	if h.Err() != nil {
		t.Errorf("pending handle err = %v", h.Err())
	}
}

func TestImageHandleResolve(t *testing.T) {
	h := NewImageHandle()
	img := ebiten.NewImage(4, 4)
	h.Resolve(img)

	if !h.Ready() {
		t.Fatal("resolved handle should be ready")
	}
	if h.Image() != img {
		t.Error("Image should return the resolved image")
	}

	// First resolve wins.
	h.Resolve(ebiten.NewImage(8, 8))
	if h.Image() != img {
		t.Error("second Resolve should be ignored")
	}

	// Fail after resolve is ignored.
	h.Fail(errors.New("late failure"))
	if h.Failed() || h.Err() != nil {
		t.Error("Fail after Resolve should be ignored")
	}
}

func TestImageHandleFail(t *testing.T) {
	h := NewImageHandle()
	cause := errors.New("boom")
	h.Fail(cause)

	if !h.Failed() {
		t.Fatal("failed handle should report Failed")
	}
	if h.Ready() || h.Image() != nil {
		t.Error("failed handle should never be ready")
	}
	if !errors.Is(h.Err(), cause) {
		t.Errorf("Err = %v, want %v", h.Err(), cause)
	}

	// Resolve after fail is ignored.
	h.Resolve(ebiten.NewImage(4, 4))
	if h.Ready() {
		t.Error("Resolve after Fail should be ignored")
	}
}

func TestImageHandleResolveNil(t *testing.T) {
	h := NewImageHandle()
	h.Resolve(nil)
	if h.Ready() {
		t.Error("Resolve(nil) should leave the handle pending")
	}
}

// --- PicsumSource ---

func TestPicsumSourceFetch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write(pngBytes(t, 16, 16))
	}))
	defer srv.Close()

	src := NewPicsumSource(srv.Client())
	src.BaseURL = srv.URL

	h := NewImageHandle()
	src.Fetch(h, 512, 384, 7)

	waitFor(t, h.Ready)
	if h.Failed() {
		t.Fatalf("fetch failed: %v", h.Err())
	}
	if gotPath != "/seed/7/512/384" {
		t.Errorf("request path = %q, want /seed/7/512/384", gotPath)
	}
	bounds := h.Image().Bounds()
	if bounds.Dx() != 16 || bounds.Dy() != 16 {
		t.Errorf("decoded size = %dx%d, want 16x16", bounds.Dx(), bounds.Dy())
	}
}

func TestPicsumSourceFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := NewPicsumSource(srv.Client())
	src.BaseURL = srv.URL

	h := NewImageHandle()
	src.Fetch(h, 64, 64, 1)

	waitFor(t, h.Failed)
	if h.Err() == nil || !strings.Contains(h.Err().Error(), "status") {
		t.Errorf("Err = %v, want a status error", h.Err())
	}
}

func TestPicsumSourceFetchDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not an image"))
	}))
	defer srv.Close()

	src := NewPicsumSource(srv.Client())
	src.BaseURL = srv.URL

	h := NewImageHandle()
	src.Fetch(h, 64, 64, 1)

	waitFor(t, h.Failed)
	if h.Err() == nil || !strings.Contains(h.Err().Error(), "decode") {
		t.Errorf("Err = %v, want a decode error", h.Err())
	}
}

func TestPicsumSourceDefaults(t *testing.T) {
	src := NewPicsumSource(nil)
	if src.BaseURL != "https://picsum.photos" {
		t.Errorf("BaseURL = %q", src.BaseURL)
	}
}
