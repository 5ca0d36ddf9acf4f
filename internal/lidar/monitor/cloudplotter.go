package monitor

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/rangesim/internal/agent"
	"github.com/banshee-data/rangesim/internal/fsutil"
	"github.com/banshee-data/rangesim/internal/occupancy"
)

var (
	wallColor  = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	rayColor   = color.RGBA{R: 90, G: 160, B: 230, A: 120}
	hitColor   = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	agentColor = color.RGBA{R: 30, G: 150, B: 60, A: 255}
)

// CloudPlotter renders one PNG per tick showing the map walls, the rays of
// the last save scan, the detected points and the agent footprint.
type CloudPlotter struct {
	mu        sync.Mutex
	fs        fsutil.FileSystem
	outputDir string
	width     int
	height    int
	walls     plotter.XYs
	written   int
}

// NewCloudPlotter creates a plotter writing into outputDir on fsys. The
// walls of m are collected once and drawn under every frame.
func NewCloudPlotter(fsys fsutil.FileSystem, outputDir string, m occupancy.Map) (*CloudPlotter, error) {
	if err := fsys.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	w, h := m.Bounds()
	cp := &CloudPlotter{fs: fsys, outputDir: outputDir, width: w, height: h}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.IsOccupied(x, y) {
				cp.walls = append(cp.walls, plotter.XY{X: float64(x), Y: float64(y)})
			}
		}
	}
	return cp, nil
}

// Written returns how many frames have been saved.
func (cp *CloudPlotter) Written() int {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.written
}

// Plot saves the frame for tick and returns its path.
func (cp *CloudPlotter) Plot(tick int, snap agent.Snapshot) (string, error) {
	cp.mu.Lock()
	defer cp.mu.Unlock()

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Tick %d - %d hits, %d rays", tick, len(snap.Points), len(snap.Rays))
	p.X.Label.Text = "X (px)"
	p.Y.Label.Text = "Y (px)"
	p.X.Min, p.X.Max = 0, float64(cp.width)
	p.Y.Min, p.Y.Max = 0, float64(cp.height)
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	if len(cp.walls) > 0 {
		walls, err := plotter.NewScatter(cp.walls)
		if err != nil {
			return "", err
		}
		walls.GlyphStyle = draw.GlyphStyle{Color: wallColor, Radius: vg.Points(0.5), Shape: draw.BoxGlyph{}}
		p.Add(walls)
	}

	for _, cloud := range [][]agent.CloudEntry{snap.Rays, snap.Points} {
		for _, e := range cloud {
			ray, err := plotter.NewLine(plotter.XYs{
				{X: e.Origin.X, Y: e.Origin.Y},
				{X: float64(e.Point.X), Y: float64(e.Point.Y)},
			})
			if err != nil {
				return "", err
			}
			ray.Color = rayColor
			ray.Width = vg.Points(0.5)
			p.Add(ray)
		}
	}

	if len(snap.Points) > 0 {
		hits, err := plotter.NewScatter(pointsXY(snap.Points))
		if err != nil {
			return "", err
		}
		hits.GlyphStyle = draw.GlyphStyle{Color: hitColor, Radius: vg.Points(1.5), Shape: draw.CircleGlyph{}}
		p.Add(hits)
		p.Legend.Add("hits", hits)
	}

	body, err := plotter.NewLine(circleXY(snap.Position.X, snap.Position.Y, snap.Radius, 48))
	if err != nil {
		return "", err
	}
	body.Color = agentColor
	body.Width = vg.Points(1.5)
	p.Add(body)
	p.Legend.Add("agent", body)
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	path := filepath.Join(cp.outputDir, fmt.Sprintf("tick_%05d.png", tick))
	if err := cp.save(p, path); err != nil {
		return "", fmt.Errorf("save cloud plot: %w", err)
	}
	cp.written++
	return path, nil
}

func (cp *CloudPlotter) save(p *plot.Plot, path string) error {
	aspect := float64(cp.height) / float64(cp.width)
	wt, err := p.WriterTo(10*vg.Inch, vg.Length(10*aspect)*vg.Inch, "png")
	if err != nil {
		return err
	}
	f, err := cp.fs.Create(path)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func pointsXY(entries []agent.CloudEntry) plotter.XYs {
	xys := make(plotter.XYs, len(entries))
	for i, e := range entries {
		xys[i] = plotter.XY{X: float64(e.Point.X), Y: float64(e.Point.Y)}
	}
	return xys
}

// circleXY returns a closed polyline of n segments around (cx, cy).
func circleXY(cx, cy, r float64, n int) plotter.XYs {
	xys := make(plotter.XYs, n+1)
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		xys[i] = plotter.XY{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return xys
}
