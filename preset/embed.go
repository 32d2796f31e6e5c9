package preset

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// loadScript prefers the file on disk and falls back to the embedded script of
// the same base name.
func loadScript(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err == nil {
		return data, nil
	}
	if embedded, embErr := ScriptsFS.ReadFile(path.Join("scripts", filepath.Base(name))); embErr == nil {
		return embedded, nil
	}
	return nil, err
}

// ScriptNames lists the embedded scripts and any in dir, as preset names.
func ScriptNames(dir string) []string {
	seen := map[string]bool{}
	if entries, err := fs.ReadDir(ScriptsFS, "scripts"); err == nil {
		for _, e := range entries {
			seen[e.Name()] = true
		}
	}
	if dir != "" {
		if entries, err := os.ReadDir(dir); err == nil {
			for _, e := range entries {
				if !e.IsDir() && strings.HasSuffix(e.Name(), ".tengo") {
					seen[e.Name()] = true
				}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, ScriptPrefix+name)
	}
	sort.Strings(names)
	return names
}
