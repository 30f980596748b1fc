package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureStore struct {
	keys         []string
	contentTypes []string
}

func (s *captureStore) Put(_ context.Context, key, contentType string, r io.Reader, _ int64) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	s.keys = append(s.keys, key)
	s.contentTypes = append(s.contentTypes, contentType)
	return "/media/" + key, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveImageStoresOriginalAndThumb(t *testing.T) {
	store := &captureStore{}
	saved, err := SaveImage(context.Background(), store, bytes.NewReader(pngBytes(t, 800, 600)))
	require.NoError(t, err)

	assert.Equal(t, 800, saved.Width)
	assert.Equal(t, 600, saved.Height)
	require.Len(t, store.keys, 2)
	assert.True(t, strings.HasPrefix(store.keys[0], "images/"))
	assert.True(t, strings.HasSuffix(store.keys[0], ".png"))
	assert.True(t, strings.HasPrefix(store.keys[1], "thumbs/"))
	assert.True(t, strings.HasSuffix(store.keys[1], ".webp"))
	assert.Equal(t, "image/png", store.contentTypes[0])
	assert.Equal(t, "image/webp", store.contentTypes[1])
}

func TestSaveImageRejectsOversize(t *testing.T) {
	big := bytes.Repeat([]byte{0xff}, MaxImageBytes+1)
	_, err := SaveImage(context.Background(), &captureStore{}, bytes.NewReader(big))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5MB")
}

func TestSaveImageRejectsNonImages(t *testing.T) {
	_, err := SaveImage(context.Background(), &captureStore{}, strings.NewReader("<html>not an image</html>"))
	require.Error(t, err)

	_, err = SaveImage(context.Background(), &captureStore{}, strings.NewReader(""))
	require.Error(t, err)
}

func TestSaveImageRejectsCorruptData(t *testing.T) {
	// Valid PNG magic bytes with garbage after.
	data := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x01}, 64)...)
	_, err := SaveImage(context.Background(), &captureStore{}, bytes.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")
}
