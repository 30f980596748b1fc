package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"lifelog/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// MaxImageBytes caps a single uploaded image.
const MaxImageBytes = 5 << 20

// ThumbWidth is the pixel width thumbnails are scaled to.
const ThumbWidth = 400

var extByContentType = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// SavedImage describes a stored upload.
type SavedImage struct {
	URL      string `json:"url"`
	ThumbURL string `json:"thumb_url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// SaveImage validates, stores and thumbnails one uploaded image. The content
// type is sniffed from the bytes, never taken from the client.
func SaveImage(ctx context.Context, store Store, r io.Reader) (*SavedImage, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(data) > MaxImageBytes {
		return nil, models.NewValidationError("Image exceeds the 5MB limit")
	}
	if len(data) == 0 {
		return nil, models.NewValidationError("Empty image upload")
	}

	contentType := http.DetectContentType(data)
	ext, ok := extByContentType[contentType]
	if !ok {
		return nil, models.NewValidationError("Unsupported image format; use JPEG, PNG, GIF or WebP")
	}

	img, err := decodeImage(data, contentType)
	if err != nil {
		return nil, models.NewValidationError("Image data is corrupt")
	}

	id := uuid.NewString()
	key := fmt.Sprintf("images/%s.%s", id, ext)
	url, err := store.Put(ctx, key, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	thumb, err := encodeThumbnail(img)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	thumbKey := fmt.Sprintf("thumbs/%s.webp", id)
	thumbURL, err := store.Put(ctx, thumbKey, "image/webp", bytes.NewReader(thumb), int64(len(thumb)))
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	bounds := img.Bounds()
	return &SavedImage{
		URL:      url,
		ThumbURL: thumbURL,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}, nil
}

func decodeImage(data []byte, contentType string) (image.Image, error) {
	switch contentType {
	case "image/jpeg":
		return jpeg.Decode(bytes.NewReader(data))
	case "image/png":
		return png.Decode(bytes.NewReader(data))
	case "image/gif":
		return gif.Decode(bytes.NewReader(data))
	case "image/webp":
		return webp.Decode(bytes.NewReader(data))
	}
	return nil, fmt.Errorf("unsupported content type %q", contentType)
}

// encodeThumbnail scales the image down to ThumbWidth and encodes it as webp.
// Images already narrower than ThumbWidth are re-encoded at full size.
func encodeThumbnail(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width > ThumbWidth {
		height = height * ThumbWidth / width
		if height < 1 {
			height = 1
		}
		width = ThumbWidth
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
