// Package preset generates initial body distributions.
package preset

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/milk9111/nbody/nbody"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"
)

var ErrUnknownPreset = errors.New("preset: unknown preset")

// Func builds n bodies. The same seed always yields the same bodies.
type Func func(n int, seed uint64) ([]nbody.Body, error)

var builtins = map[string]Func{
	"galaxy":    Galaxy,
	"explosion": Explosion,
}

// ScriptPrefix selects a tengo script preset, e.g. "script:presets/ring.tengo".
const ScriptPrefix = "script:"

func newSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// Galaxy returns a thin noisy disk rotating around the Y axis.
func Galaxy(n int, seed uint64) ([]nbody.Body, error) {
	src := newSource(seed)
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: 1e-2, Src: src}

	bodies := make([]nbody.Body, 0, n)
	for range n {
		radius := uniform.Rand()
		angle := 2 * math.Pi * uniform.Rand()
		pos := r3.Vec{
			X: radius*math.Cos(angle) + noise.Rand(),
			Y: 4 * noise.Rand(),
			Z: radius*math.Sin(angle) + noise.Rand(),
		}
		vel := r3.Scale(0.2, r3.Vec{X: pos.Z, Y: noise.Rand(), Z: -pos.X})
		bodies = append(bodies, nbody.Body{Mass: 1, Position: pos, Velocity: vel})
	}
	return bodies, nil
}

// Explosion places bodies on the unit sphere moving outwards.
func Explosion(n int, seed uint64) ([]nbody.Body, error) {
	src := newSource(seed)
	longitude := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src}
	latitude := distuv.Uniform{Min: -math.Pi / 2, Max: math.Pi / 2, Src: src}

	bodies := make([]nbody.Body, 0, n)
	for range n {
		lon, lat := longitude.Rand(), latitude.Rand()
		pos := r3.Vec{
			X: math.Cos(lat) * math.Cos(lon),
			Y: math.Cos(lat) * math.Sin(lon),
			Z: math.Sin(lat),
		}
		bodies = append(bodies, nbody.Body{Mass: 1, Position: pos, Velocity: r3.Scale(0.1, pos)})
	}
	return bodies, nil
}

// Names lists the built-in presets in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a built-in preset name or a "script:<path>" reference.
func Lookup(name string, scripts *Scripts) (Func, error) {
	if path, ok := strings.CutPrefix(name, ScriptPrefix); ok {
		if scripts == nil {
			return nil, fmt.Errorf("%w: %q (scripts disabled)", ErrUnknownPreset, name)
		}
		return func(n int, seed uint64) ([]nbody.Body, error) {
			return scripts.Run(path, n, seed)
		}, nil
	}
	fn, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return fn, nil
}

// Generate is Lookup followed by a call.
func Generate(name string, n int, seed uint64, scripts *Scripts) ([]nbody.Body, error) {
	if n < 0 {
		return nil, fmt.Errorf("preset: negative body count %d", n)
	}
	fn, err := Lookup(name, scripts)
	if err != nil {
		return nil, err
	}
	return fn(n, seed)
}
