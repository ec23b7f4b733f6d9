package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writeTestPNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 5, G: 6, B: 7, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestCacheResolveConcurrentLoadsOnce(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "brick.png")

	idx := BuildIndex(dir)
	if idx.Len() != 1 {
		t.Fatalf("Index.Len() = %d, want 1", idx.Len())
	}

	cache := NewCache(idx)
	var wg sync.WaitGroup
	results := make([]*Image, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.Resolve("brick")
		}(i)
	}
	wg.Wait()

	for i, img := range results {
		if img == nil {
			t.Fatalf("goroutine %d: Resolve returned nil", i)
		}
		if img != results[0] {
			t.Errorf("goroutine %d got a different *Image than goroutine 0; cache should load once and share", i)
		}
	}
}

func TestCacheResolveUnknownNameReturnsNil(t *testing.T) {
	cache := NewCache(BuildIndex(t.TempDir()))
	if got := cache.Resolve("does-not-exist"); got != nil {
		t.Errorf("Resolve(unknown) = %v, want nil", got)
	}
}
