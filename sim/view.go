package sim

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/nbody/camera"
	"github.com/milk9111/nbody/nbody"
	"gonum.org/v1/gonum/spatial/r3"
	"golang.org/x/image/colornames"
)

var (
	paneBackground = color.RGBA{0x10, 0x10, 0x18, 0xff}
	nodeBoxColor   = color.RGBA{0x00, 0xff, 0x00, 0x33}
)

type point struct {
	x, y float64
	clr  color.RGBA
}

// View renders one simulation from the shared camera. It is the pane type
// placed in the grid.
type View struct {
	name   string
	data   *Data
	camera *camera.Camera

	Colorizer Colorizer
	// ShowNodeBoxes draws the Barnes-Hut tree bounds. It has no effect on
	// other executors.
	ShowNodeBoxes bool
	PointSize     float32
	Highlight     bool

	points []point
	box    [8]point
	boxOK  bool
	closed bool
}

// NewView creates a view over data and registers it with data.
func NewView(name string, data *Data, cam *camera.Camera) *View {
	v := &View{
		name:          name,
		data:          data,
		camera:        cam,
		Colorizer:     Uniform{Body: colornames.Dodgerblue},
		ShowNodeBoxes: true,
		PointSize:     2,
	}
	data.attach(v)
	return v
}

func (v *View) Name() string {
	return v.name
}

func (v *View) Data() *Data {
	return v.data
}

// Kind reports which executor drives the view's simulation.
func (v *View) Kind() nbody.Kind {
	return v.data.Kind()
}

// Close detaches the view from its simulation. Closed views draw nothing.
func (v *View) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.data.detach(v)
	v.points = nil
}

func (v *View) Closed() bool {
	return v.closed
}

// Update projects the current bodies. The simulation itself is stepped by
// the Registry so views sharing data do not advance it twice.
func (v *View) Update(float64) {
	if v.closed {
		return
	}
	proj := v.camera.Projector()
	bodies := v.data.Bodies()

	v.points = v.points[:0]
	for _, b := range bodies {
		x, y, _, ok := proj.Project(b.Position)
		if !ok || x < -1 || x > 1 || y < -1 || y > 1 {
			continue
		}
		v.points = append(v.points, point{x: x, y: y, clr: v.Colorizer.Color(b)})
	}

	v.boxOK = false
	if v.ShowNodeBoxes && v.Kind() == nbody.BarnesHut {
		if box, ok := v.data.TreeBounds(); ok {
			v.boxOK = v.projectBox(proj, box)
		}
	}
}

func (v *View) projectBox(proj camera.Projector, box r3.Box) bool {
	for i := range v.box {
		corner := box.Min
		if i&1 != 0 {
			corner.X = box.Max.X
		}
		if i&2 != 0 {
			corner.Y = box.Max.Y
		}
		if i&4 != 0 {
			corner.Z = box.Max.Z
		}
		x, y, _, ok := proj.Project(corner)
		if !ok {
			return false
		}
		v.box[i] = point{x: x, y: y}
	}
	return true
}

// boxEdges indexes corners sharing all but one coordinate.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// toPixel maps normalized device coordinates into bounds.
func toPixel(x, y float64, w, h int, minX, minY int) (float32, float32) {
	px := float64(minX) + (x+1)/2*float64(w)
	py := float64(minY) + (1-y)/2*float64(h)
	return float32(px), float32(py)
}

func (v *View) Draw(dst *ebiten.Image) {
	b := dst.Bounds()
	dst.Fill(paneBackground)
	if v.closed {
		return
	}

	w, h := b.Dx(), b.Dy()
	size := v.PointSize
	for _, p := range v.points {
		px, py := toPixel(p.x, p.y, w, h, b.Min.X, b.Min.Y)
		vector.DrawFilledRect(dst, px-size/2, py-size/2, size, size, p.clr, false)
	}

	if v.boxOK {
		for _, e := range boxEdges {
			a, c := v.box[e[0]], v.box[e[1]]
			x0, y0 := toPixel(a.x, a.y, w, h, b.Min.X, b.Min.Y)
			x1, y1 := toPixel(c.x, c.y, w, h, b.Min.X, b.Min.Y)
			vector.StrokeLine(dst, x0, y0, x1, y1, 1, nodeBoxColor, true)
		}
	}

	if v.Highlight {
		vector.StrokeRect(dst, float32(b.Min.X)+1, float32(b.Min.Y)+1, float32(w)-2, float32(h)-2, 2, colornames.Gold, false)
	}

	ebitenutil.DebugPrintAt(dst, v.name, b.Min.X+6, b.Min.Y+4)
}
