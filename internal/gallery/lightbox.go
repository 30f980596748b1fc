package gallery

// DefaultZoom is the zoom level every image opens at.
const DefaultZoom = 1.0

// Callbacks receive the id of the image on screen when the viewer acts on it.
// Nil callbacks are ignored.
type Callbacks struct {
	Like     func(imageID string)
	Share    func(imageID string)
	Download func(imageID string)
}

// Lightbox is the full-screen viewer over an image set. Navigation wraps at
// both ends and always resets zoom.
type Lightbox struct {
	images    []Image
	current   int
	open      bool
	zoom      float64
	callbacks Callbacks
}

// NewLightbox creates a closed lightbox over images.
func NewLightbox(images []Image, callbacks Callbacks) *Lightbox {
	return &Lightbox{images: images, zoom: DefaultZoom, callbacks: callbacks}
}

// Open shows the image at index. Out-of-range indexes clamp to the nearest
// valid one; opening an empty set is a no-op.
func (l *Lightbox) Open(index int) {
	if len(l.images) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(l.images) {
		index = len(l.images) - 1
	}
	l.current = index
	l.open = true
	l.zoom = DefaultZoom
}

// Close hides the viewer.
func (l *Lightbox) Close() {
	l.open = false
	l.zoom = DefaultZoom
}

// IsOpen reports whether the viewer is showing.
func (l *Lightbox) IsOpen() bool {
	return l.open
}

// Next advances to the following image, wrapping past the last back to the
// first. Zoom resets.
func (l *Lightbox) Next() {
	if !l.open || len(l.images) == 0 {
		return
	}
	l.current = (l.current + 1) % len(l.images)
	l.zoom = DefaultZoom
}

// Prev steps back to the previous image, wrapping from the first to the last.
// Zoom resets.
func (l *Lightbox) Prev() {
	if !l.open || len(l.images) == 0 {
		return
	}
	l.current = (l.current - 1 + len(l.images)) % len(l.images)
	l.zoom = DefaultZoom
}

// Current returns the image on screen. The bool is false when the viewer is
// closed or empty.
func (l *Lightbox) Current() (Image, bool) {
	if !l.open || len(l.images) == 0 {
		return Image{}, false
	}
	return l.images[l.current], true
}

// Zoom returns the current zoom level.
func (l *Lightbox) Zoom() float64 {
	return l.zoom
}

// SetZoom adjusts the zoom level while an image is open. Non-positive values
// are ignored.
func (l *Lightbox) SetZoom(z float64) {
	if !l.open || z <= 0 {
		return
	}
	l.zoom = z
}

// Like invokes the like callback with the current image's id.
func (l *Lightbox) Like() {
	l.invoke(l.callbacks.Like)
}

// Share invokes the share callback with the current image's id.
func (l *Lightbox) Share() {
	l.invoke(l.callbacks.Share)
}

// Download invokes the download callback with the current image's id.
func (l *Lightbox) Download() {
	l.invoke(l.callbacks.Download)
}

func (l *Lightbox) invoke(cb func(string)) {
	img, ok := l.Current()
	if !ok || cb == nil {
		return
	}
	cb(img.ID)
}
