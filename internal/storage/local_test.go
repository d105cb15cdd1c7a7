package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for x := 0; x < 320; x++ {
		for y := 0; y < 240; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLocalStore_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, zap.NewNop().Sugar())
	require.NoError(t, err)

	data := testPNG(t)
	ref, err := store.Save(context.Background(), "avatar.png", "image/png", data)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/profile-pictures/avatar.png", ref)

	saved, err := os.ReadFile(filepath.Join(dir, "avatar.png"))
	require.NoError(t, err)
	assert.Equal(t, data, saved)

	// a real image gets a thumbnail next to it
	_, err = os.Stat(filepath.Join(dir, "avatar.png_thumb.jpg"))
	assert.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), ref))
	_, err = os.Stat(filepath.Join(dir, "avatar.png"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "avatar.png_thumb.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_SaveUndecodableImage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, zap.NewNop().Sugar())
	require.NoError(t, err)

	// the file is stored even when no thumbnail can be produced
	ref, err := store.Save(context.Background(), "avatar.png", "image/png", []byte("not really a png"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/profile-pictures/avatar.png", ref)

	_, err = os.Stat(filepath.Join(dir, "avatar.png_thumb.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_DeleteMissingIsNoError(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.NoError(t, store.Delete(context.Background(), "/uploads/profile-pictures/gone.png"))
}

func TestGenerateThumbnail_Resizes(t *testing.T) {
	thumb, err := generateThumbnail(testPNG(t))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}
