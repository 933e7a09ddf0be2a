package easel

import (
	"fmt"
	"net/http"
	"sync/atomic"

	// Placeholder services serve JPEG or PNG; register both decoders for
	// ebitenutil.NewImageFromReader.
	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// ImageHandle is an opaque handle to an asynchronously loading image.
// It starts pending, then resolves to a drawable image or fails. A failed
// handle stays failed forever; the renderer simply never draws it.
//
// Resolve and Fail may be called from any goroutine; readers use Image.
type ImageHandle struct {
	img    atomic.Pointer[ebiten.Image]
	failed atomic.Bool
	err    atomic.Pointer[error]
}

// NewImageHandle returns a pending handle. The machine creates one per
// generate command so that the placement can be appended synchronously
// while the fetch happens in the background.
func NewImageHandle() *ImageHandle {
	return &ImageHandle{}
}

// Image returns the loaded image, or nil while the handle is pending or
// after it has failed.
func (h *ImageHandle) Image() *ebiten.Image {
	return h.img.Load()
}

// Ready reports whether the image has loaded and can be drawn.
func (h *ImageHandle) Ready() bool {
	return h.img.Load() != nil
}

// Failed reports whether the load failed. A failed handle never becomes
// ready.
func (h *ImageHandle) Failed() bool {
	return h.failed.Load()
}

// Err returns the load error, or nil if the handle is pending or ready.
func (h *ImageHandle) Err() error {
	if p := h.err.Load(); p != nil {
		return *p
	}
	return nil
}

// Resolve publishes the loaded image. Later calls and calls after Fail are
// ignored.
func (h *ImageHandle) Resolve(img *ebiten.Image) {
	if img == nil || h.failed.Load() {
		return
	}
	h.img.CompareAndSwap(nil, img)
}

// Fail marks the handle permanently failed. Ignored once resolved.
func (h *ImageHandle) Fail(err error) {
	if h.img.Load() != nil {
		return
	}
	h.err.Store(&err)
	h.failed.Store(true)
}

// Placement pairs frame geometry frozen at generate time with the image
// loading into it. Immutable once created; placements render in list order,
// later entries on top.
type Placement struct {
	Frame Rect
	Image *ImageHandle
}

// ImageSource fetches an image sized for the given frame into handle.
// Fetch must not block: implementations complete the handle from their own
// goroutine. seed is a cache-busting key so that repeated generates with
// identical geometry yield distinct images.
type ImageSource interface {
	Fetch(handle *ImageHandle, width, height int, seed uint64)
}

// PicsumSource fetches placeholder photos from picsum.photos (or any
// service with a compatible /seed/{seed}/{w}/{h} URL scheme).
type PicsumSource struct {
	// BaseURL is the service root without a trailing slash.
	// Defaults to https://picsum.photos.
	BaseURL string

	client *http.Client
}

// NewPicsumSource creates a source using the given HTTP client.
// A nil client uses http.DefaultClient.
func NewPicsumSource(client *http.Client) *PicsumSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &PicsumSource{BaseURL: "https://picsum.photos", client: client}
}

// Fetch requests a width x height placeholder image and completes the
// handle when the response has been decoded. Network or decode errors fail
// the handle; there is no retry.
func (s *PicsumSource) Fetch(handle *ImageHandle, width, height int, seed uint64) {
	url := fmt.Sprintf("%s/seed/%d/%d/%d", s.BaseURL, seed, width, height)
	go func() {
		resp, err := s.client.Get(url)
		if err != nil {
			handle.Fail(fmt.Errorf("fetch %s: %w", url, err))
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			handle.Fail(fmt.Errorf("fetch %s: status %s", url, resp.Status))
			return
		}
		img, _, err := ebitenutil.NewImageFromReader(resp.Body)
		if err != nil {
			handle.Fail(fmt.Errorf("decode %s: %w", url, err))
			return
		}
		handle.Resolve(img)
	}()
}
