package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// formatPriority ranks same-stem files so an alpha-capable format wins over
// a lossy one, generalized from the teacher's OZT-over-OZJ rule (internal/
// texture/index.go) to the full decoder set image.go registers.
var formatPriority = map[string]int{
	".tga":  3,
	".png":  3,
	".bmp":  2,
	".tif":  2,
	".tiff": 2,
	".jpg":  1,
	".jpeg": 1,
}

// Index maps lowercase texture stems to filesystem paths.
type Index struct {
	entries map[string]string
}

// BuildIndex scans dir and all of its subdirectories, recursively, for
// texture files.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	searchDirs := []string{dir}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if e.IsDir() {
			searchDirs = append(searchDirs, filepath.Join(dir, e.Name()))
		}
	}

	for _, d := range searchDirs {
		filepath.WalkDir(d, func(path string, entry os.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if _, ok := formatPriority[ext]; !ok {
				return nil
			}
			stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

			existing, exists := idx.entries[stem]
			if !exists || formatPriority[ext] > formatPriority[strings.ToLower(filepath.Ext(existing))] {
				idx.entries[stem] = path
			}
			return nil
		})
	}

	return idx
}

// ResolvePath returns the filesystem path for a texture name, or ("", false).
func (idx *Index) ResolvePath(texName string) (string, bool) {
	texName = strings.ReplaceAll(texName, "\\", "/")
	base := filepath.Base(texName)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
