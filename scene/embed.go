package scene

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

// Dir is the on-disk location of script overrides.
const Dir = "scene/scripts"

// LoadScript reads name from Dir if present, otherwise from the embedded
// copy. The ".tengo" suffix is optional.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptName(name)
	if data, err := os.ReadFile(filepath.Join(filepath.FromSlash(Dir), clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(path.Join("scripts", clean))
}

// Names lists the embedded scenes without their suffix.
func Names() []string {
	entries, err := fs.ReadDir(ScriptsFS, "scripts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".tengo"))
	}
	sort.Strings(names)
	return names
}

func cleanScriptName(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	if !strings.HasSuffix(s, ".tengo") {
		s += ".tengo"
	}
	return s
}
