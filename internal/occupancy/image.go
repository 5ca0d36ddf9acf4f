package occupancy

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// DefaultWallColor is the colour treated as a wall when none is configured.
var DefaultWallColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// ImageMap is an occupancy map backed by a raster image. A pixel is occupied
// when its R, G and B channels equal the wall colour; alpha is ignored.
type ImageMap struct {
	img  image.Image
	wall color.RGBA
}

// NewImageMap wraps img. The wall colour is reduced to 8-bit RGB before
// comparison.
func NewImageMap(img image.Image, wall color.Color) *ImageMap {
	return &ImageMap{img: img, wall: toRGBA(wall)}
}

// LoadImageMap decodes the PNG at path and scales it to width x height with
// nearest-neighbour sampling so that wall pixels keep their exact colour.
// A non-positive width or height keeps the source dimension.
func LoadImageMap(path string, width, height int, wall color.Color) (*ImageMap, error) {
	cleanPath := filepath.Clean(path)
	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode map image %s: %w", cleanPath, err)
	}

	return NewImageMap(Scale(src, width, height), wall), nil
}

// Scale resizes img to width x height using nearest-neighbour interpolation.
func Scale(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if width <= 0 {
		width = b.Dx()
	}
	if height <= 0 {
		height = b.Dy()
	}
	if width == b.Dx() && height == b.Dy() && b.Min == (image.Point{}) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// IsOccupied implements Map.
func (m *ImageMap) IsOccupied(x, y int) bool {
	b := m.img.Bounds()
	p := image.Pt(b.Min.X+x, b.Min.Y+y)
	if !p.In(b) {
		return false
	}
	c := toRGBA(m.img.At(p.X, p.Y))
	return c.R == m.wall.R && c.G == m.wall.G && c.B == m.wall.B
}

// Bounds implements Map.
func (m *ImageMap) Bounds() (int, int) {
	b := m.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the backing image.
func (m *ImageMap) Image() image.Image { return m.img }

// Rasterize copies m into a Grid so repeated sampling avoids colour
// conversion.
func Rasterize(m Map) *Grid {
	w, h := m.Bounds()
	g := &Grid{width: w, height: h, cells: make([]bool, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.cells[g.idx(x, y)] = m.IsOccupied(x, y)
		}
	}
	return g
}

func toRGBA(c color.Color) color.RGBA {
	// NRGBA keeps the colour channels un-premultiplied, so a transparent
	// black wall pixel still compares as black.
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}
