// Package framerun drives a turntable animation across a pool of
// rasterizer pipelines, one per worker so no two goroutines ever touch the
// same Pipeline's buffers concurrently. Grounded on the teacher's batch
// worker-pool driver (internal/batch/processor.go): a buffered job channel,
// a sync.WaitGroup, a periodic progress ticker reading an atomic counter.
package framerun

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gpuraster/internal/mathutil"
	"gpuraster/internal/raster"
	"gpuraster/internal/scene"
)

// Frame is one rendered output: the RGBA bytes for frame index N.
type Frame struct {
	Index  int
	Pixels []byte
	Err    error
}

// Config describes one turntable run.
type Config struct {
	Width, Height int
	NumFrames     int
	Workers       int
	RasterConfig  raster.Config

	// Camera holds the fixed eye/center/up and projection parameters; only
	// the model's Y rotation varies per frame.
	Eye, Center, Up    mathutil.Vec3
	FOVYRadians        float64
	Near, Far          float64
}

// Run renders NumFrames frames of s rotating about Y, fanned out across
// Workers goroutines each holding its own *raster.Pipeline, and returns one
// Frame per index in order (regardless of completion order), plus a
// raster.Stats summary aggregated across every worker's pipeline.
func Run(cfg Config, s *scene.Scene) ([]Frame, raster.Stats, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.NumFrames <= 0 {
		return nil, raster.Stats{}, nil
	}

	results := make([]Frame, cfg.NumFrames)
	var processed atomic.Int64
	start := time.Now()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, cfg.NumFrames, rate)
				}
			}
		}
	}()

	jobs := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup
	statsCh := make(chan raster.Stats, cfg.Workers)

	view := mathutil.LookAt(cfg.Eye, cfg.Center, cfg.Up)
	proj := mathutil.Perspective(cfg.FOVYRadians, float64(cfg.Width)/float64(cfg.Height), cfg.Near, cfg.Far)

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			p := raster.New(cfg.RasterConfig)
			if err := p.Init(cfg.Width, cfg.Height); err != nil {
				for idx := range jobs {
					results[idx] = Frame{Index: idx, Err: err}
					processed.Add(1)
				}
				return
			}
			defer p.Shutdown()

			if err := p.UploadScene(s); err != nil {
				for idx := range jobs {
					results[idx] = Frame{Index: idx, Err: err}
					processed.Add(1)
				}
				return
			}

			for idx := range jobs {
				results[idx] = renderFrame(p, idx, cfg, view, proj)
				processed.Add(1)
			}
			statsCh <- p.Stats()
		}()
	}

	for i := 0; i < cfg.NumFrames; i++ {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)
	close(statsCh)

	// Every worker uploads the same scene, so Groups/Vertices/Primitives agree
	// across workers; Fragments sums each worker's share of the rendered frames.
	var stats raster.Stats
	for ws := range statsCh {
		stats.Groups = ws.Groups
		stats.Vertices = ws.Vertices
		stats.Primitives = ws.Primitives
		stats.Fragments += ws.Fragments
	}

	return results, stats, nil
}

// renderFrame rotates the whole scene about Y by folding the turntable
// angle into the view matrix (orbiting the object and orbiting the camera
// the opposite way are equivalent). Pipeline.Rasterize takes the camera's
// mvp/mv/mvNormal with no group Model baked in and folds each group's own
// Model in internally.
func renderFrame(p *raster.Pipeline, idx int, cfg Config, view, proj mathutil.Mat4) Frame {
	angle := mathutil.Deg2Rad(360) * float64(idx) / float64(cfg.NumFrames)
	turntable := mathutil.FromMat3Translation(mathutil.RotY(angle), mathutil.Vec3{})
	viewFrame := mathutil.Mat4Mul(view, turntable)
	mvp := mathutil.Mat4Mul(proj, viewFrame)
	mvNormal := mathutil.NormalMatrix(viewFrame)

	pixels := make([]byte, cfg.Width*cfg.Height*4)
	if err := p.Rasterize(pixels, mvp, viewFrame, mvNormal); err != nil {
		return Frame{Index: idx, Err: err}
	}
	return Frame{Index: idx, Pixels: pixels}
}
