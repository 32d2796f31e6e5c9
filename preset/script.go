package preset

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/nbody/nbody"
	"gonum.org/v1/gonum/spatial/r3"
)

var ErrScriptResult = errors.New("preset: script must define bodies")

// Scripts compiles and caches tengo preset scripts. A script sees the globals
// n and seed and must assign a list of maps to bodies:
//
//	bodies := []
//	for i := 0; i < n; i++ {
//		bodies = append(bodies, {mass: 1, x: i, y: 0, z: 0, vx: 0, vy: 0, vz: 0})
//	}
type Scripts struct {
	dir   string
	read  func(path string) ([]byte, error)
	mu    sync.Mutex
	cache map[string]*tengo.Compiled
}

// NewScripts resolves relative script paths against dir. Scripts missing
// from disk fall back to the embedded ones.
func NewScripts(dir string) *Scripts {
	return &Scripts{dir: dir, read: loadScript, cache: map[string]*tengo.Compiled{}}
}

func (s *Scripts) resolve(path string) string {
	if filepath.IsAbs(path) || s.dir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(s.dir, path)
}

// Invalidate drops a cached script so the next run recompiles it.
func (s *Scripts) Invalidate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, s.resolve(path))
	delete(s.cache, filepath.Clean(path))
}

func (s *Scripts) compiled(path string) (*tengo.Compiled, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.resolve(path)
	if c, ok := s.cache[key]; ok {
		return c.Clone(), nil
	}

	src, err := s.read(key)
	if err != nil {
		return nil, fmt.Errorf("preset: read script %s: %w", key, err)
	}
	script := tengo.NewScript(src)
	_ = script.Add("n", 0)
	_ = script.Add("seed", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	c, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("preset: compile script %s: %w", key, err)
	}
	s.cache[key] = c
	return c.Clone(), nil
}

// Run executes the script at path for n bodies.
func (s *Scripts) Run(path string, n int, seed uint64) ([]nbody.Body, error) {
	c, err := s.compiled(path)
	if err != nil {
		return nil, err
	}
	if err := c.Set("n", n); err != nil {
		return nil, err
	}
	if err := c.Set("seed", int64(seed)); err != nil {
		return nil, err
	}
	if err := c.Run(); err != nil {
		return nil, fmt.Errorf("preset: run script %s: %w", path, err)
	}
	if !c.IsDefined("bodies") {
		return nil, fmt.Errorf("%w: %s", ErrScriptResult, path)
	}

	raw := c.Get("bodies").Array()
	bodies := make([]nbody.Body, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s: entry %d is %T", ErrScriptResult, path, i, item)
		}
		bodies = append(bodies, bodyFromMap(m))
	}
	return bodies, nil
}

func bodyFromMap(m map[string]any) nbody.Body {
	mass := number(m["mass"])
	if _, ok := m["mass"]; !ok {
		mass = 1
	}
	return nbody.Body{
		Mass:     mass,
		Position: r3.Vec{X: number(m["x"]), Y: number(m["y"]), Z: number(m["z"])},
		Velocity: r3.Vec{X: number(m["vx"]), Y: number(m["vy"]), Z: number(m["vz"])},
	}
}

func number(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}
