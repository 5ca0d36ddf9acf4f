package testutil

import (
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilledImage(t *testing.T) {
	img := FilledImage(3, 2, color.Black)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(2, 1))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, WhiteImage(1, 1).RGBAAt(0, 0))
}

func TestWritePNG_RoundTrip(t *testing.T) {
	src := WhiteImage(4, 4)
	src.Set(1, 2, color.Black)
	path := WritePNG(t, src)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, g, b, _ := img.At(1, 2).RGBA()
	assert.Zero(t, r+g+b)
	r, _, _, _ = img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}
