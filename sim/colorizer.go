package sim

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/milk9111/nbody/common"
	"github.com/milk9111/nbody/nbody"
	"golang.org/x/image/colornames"
)

// Colorizer picks the colour of a body.
type Colorizer interface {
	Name() string
	Color(b nbody.Body) color.RGBA
}

// Uniform paints every body the same colour.
type Uniform struct {
	Body color.RGBA
}

func (Uniform) Name() string { return "uniform" }

func (u Uniform) Color(nbody.Body) color.RGBA {
	return u.Body
}

// SpeedDependent blends from Low to High as the speed goes from SpeedLow to
// SpeedHigh.
type SpeedDependent struct {
	SpeedLow, SpeedHigh float64
	Low, High           color.RGBA
}

func (SpeedDependent) Name() string { return "speed" }

func (s SpeedDependent) Color(b nbody.Body) color.RGBA {
	t := common.InverseLerp(s.SpeedLow, s.SpeedHigh, b.Speed())
	lo, _ := colorful.MakeColor(s.Low)
	hi, _ := colorful.MakeColor(s.High)
	return toRGBA(lo.BlendLab(hi, t), lerpAlpha(s.Low.A, s.High.A, t))
}

// DirectionDependent maps the heading of a body in the XZ plane to a hue.
// Offset rotates the hue wheel, in degrees.
type DirectionDependent struct {
	Offset float64
}

func (DirectionDependent) Name() string { return "direction" }

func (d DirectionDependent) Color(b nbody.Body) color.RGBA {
	heading := math.Atan2(b.Velocity.Z, b.Velocity.X) * 180 / math.Pi
	hue := math.Mod(heading+d.Offset+360, 360)
	if hue < 0 {
		hue += 360
	}
	return toRGBA(colorful.Hsv(hue, 0.8, 1), 255)
}

func toRGBA(c colorful.Color, a uint8) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func lerpAlpha(a, b uint8, t float64) uint8 {
	return uint8(math.Round(common.Lerp(float64(a), float64(b), t)))
}

// ColorizerNames lists the names accepted by NewColorizer.
func ColorizerNames() []string {
	return []string{"uniform", "speed", "direction"}
}

// NewColorizer returns a colorizer with default parameters.
func NewColorizer(name string) (Colorizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "uniform":
		return Uniform{Body: colornames.Dodgerblue}, nil
	case "speed":
		return SpeedDependent{SpeedLow: 0, SpeedHigh: 1, Low: colornames.Blue, High: colornames.Red}, nil
	case "direction":
		return DirectionDependent{}, nil
	default:
		return nil, fmt.Errorf("sim: unknown colorizer %q", name)
	}
}
