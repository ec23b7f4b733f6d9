package texture

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile %s: %v", path, err)
	}
}

func TestBuildIndexHigherPriorityFormatWins(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "armor.jpg"))
	touch(t, filepath.Join(dir, "armor.png"))

	idx := BuildIndex(dir)
	path, ok := idx.ResolvePath("armor")
	if !ok {
		t.Fatal("armor not indexed")
	}
	if filepath.Ext(path) != ".png" {
		t.Errorf("resolved path %s, want the .png variant (higher priority than .jpg)", path)
	}
}

func TestBuildIndexScansSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "Jewel")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	touch(t, filepath.Join(sub, "gem.tga"))

	idx := BuildIndex(dir)
	if _, ok := idx.ResolvePath("gem"); !ok {
		t.Error("expected gem.tga in a subdirectory to be indexed")
	}
}

func TestResolvePathStripsDirAndCase(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Sword.bmp"))

	idx := BuildIndex(dir)
	if _, ok := idx.ResolvePath(`Models\textures\SWORD.bmp`); !ok {
		t.Error("expected a backslash-prefixed, differently-cased name to resolve by stem")
	}
}
