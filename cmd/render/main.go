package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"gpuraster/internal/framerun"
	"gpuraster/internal/mathutil"
	"gpuraster/internal/raster"
	"gpuraster/internal/scene"
	"gpuraster/internal/texture"

	"github.com/HugoSmits86/nativewebp"
)

func main() {
	configFile := flag.String("config", "", "Path to a raster.Config JSON file")
	width := flag.Int("width", 256, "Output frame width")
	height := flag.Int("height", 256, "Output frame height")
	frames := flag.Int("frames", 36, "Number of turntable frames to render")
	workers := flag.Int("workers", 0, "Number of pipeline worker goroutines (default: NumCPU)")
	ssaa := flag.Int("ssaa", 1, "Supersampling factor: 1, 2, or 4")
	bilinear := flag.Bool("bilinear", false, "Use bilinear texture filtering")
	debugZ := flag.Bool("debug-z", false, "Override shading with a depth visualization")
	debugNorm := flag.Bool("debug-norm", false, "Override shading with a normal visualization")
	outputDir := flag.String("output", "frames", "Output directory for rendered frames")
	quality := flag.Int("quality", 90, "WebP encode quality 1-100 (ignored: the WebP encoder is lossless-only)")
	textureDir := flag.String("texture-dir", "", "Directory of texture image files to index; a texture named \"cube\" replaces the cube's procedural checker texture")

	flag.Parse()

	cfg := raster.DefaultConfig()
	if *configFile != "" {
		raw, err := os.ReadFile(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.SSAAFactor = *ssaa
	cfg.TextureBilinear = *bilinear
	cfg.DebugZ = *debugZ
	cfg.DebugNorm = *debugNorm
	if *workers > 0 {
		cfg.Workers = *workers
	}
	cfg.Resolve()

	s := scene.BuildDemo()
	if *textureDir != "" {
		texIndex := texture.BuildIndex(*textureDir)
		texCache := texture.NewCache(texIndex)
		fmt.Printf("Textures: %d indexed in %s\n", texIndex.Len(), *textureDir)
		if img := texCache.Resolve("cube"); img != nil {
			s.Groups[0].Texture = img
		} else {
			fmt.Fprintf(os.Stderr, "Warning: no texture named \"cube\" found in %s, keeping the procedural checker texture\n", *textureDir)
		}
	}

	runCfg := framerun.Config{
		Width:        *width,
		Height:       *height,
		NumFrames:    *frames,
		Workers:      cfg.Workers,
		RasterConfig: cfg,
		Eye:          mathutil.Vec3{0, 1.5, 6},
		Center:       mathutil.Vec3{0, 0, 0},
		Up:           mathutil.Vec3{0, 1, 0},
		FOVYRadians:  mathutil.Deg2Rad(45),
		Near:         0.1,
		Far:          100,
	}

	fmt.Printf("GPU-style software rasterizer turntable\n")
	fmt.Printf("Frames: %d, Size: %dx%d, SSAA: %d, Workers: %d\n", *frames, *width, *height, cfg.SSAAFactor, cfg.Workers)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results, stats, err := framerun.Run(runCfg, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output dir: %v\n", err)
		os.Exit(1)
	}

	success, failed := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "frame %d: %v\n", r.Index, r.Err)
			continue
		}
		if err := writeWebP(*outputDir, r.Index, *width, *height, r.Pixels, *quality); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "frame %d: encode: %v\n", r.Index, err)
			continue
		}
		success++
	}

	statsPath := filepath.Join(*outputDir, "stats.json")
	if err := raster.WriteStats(statsPath, stats); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: stats write failed: %v\n", err)
	} else {
		fmt.Printf("Stats: %s\n", statsPath)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.2fs — %d/%d frames written to %s\n", elapsed.Seconds(), success, len(results), *outputDir)

	if failed > 0 {
		os.Exit(1)
	}
}

// writeWebP encodes one resolved frame buffer as an opaque, lossless WebP
// image (nativewebp is a lossless-only encoder, so the -quality flag is
// accepted for config-file symmetry with the teacher's CLI but has no
// effect here). The pipeline's output alpha channel is always 0 (§4.5);
// the presented image is always fully opaque, so alpha is forced to 255.
func writeWebP(dir string, index, width, height int, pixels []byte, _ int) error {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		img.Pix[i*4] = pixels[i*4]
		img.Pix[i*4+1] = pixels[i*4+1]
		img.Pix[i*4+2] = pixels[i*4+2]
		img.Pix[i*4+3] = 255
	}

	path := filepath.Join(dir, fmt.Sprintf("frame-%03d.webp", index))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return nativewebp.Encode(f, img, nil)
}
