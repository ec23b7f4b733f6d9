package raster

import (
	"fmt"

	"gpuraster/internal/mathutil"
	"gpuraster/internal/scene"
)

// Pipeline is the CORE's external interface (§6): Init, UploadScene,
// Rasterize, Shutdown. It owns every device-resident buffer the spec's
// lifecycle section describes; none of its state is safe to touch from two
// goroutines calling Rasterize concurrently — callers that want frame-level
// parallelism give each worker its own Pipeline (see internal/framerun).
type Pipeline struct {
	cfg Config

	width  int // presented width
	height int // presented height

	fb     *FrameBuffers
	groups []*DeviceGroup

	// prims is the device primitive array (§3), allocated once in
	// UploadScene and reused across Rasterize calls like the rest of the
	// device-resident buffers.
	prims []Primitive

	// fragmentsTotal accumulates the covered-fragment count across every
	// Rasterize call since the last UploadScene, for Stats().
	fragmentsTotal int
}

// New returns a Pipeline with cfg resolved to its effective defaults.
func New(cfg Config) *Pipeline {
	cfg.Resolve()
	return &Pipeline{cfg: cfg}
}

// Init allocates internal buffers sized to SSAAFactor·width × SSAAFactor·height.
// Idempotent: a second call frees prior buffers and reallocates.
func (p *Pipeline) Init(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("raster: %w: non-positive dimensions %dx%d", ErrAllocationFailure, width, height)
	}
	p.width = width
	p.height = height
	p.fb = NewFrameBuffers(width*p.cfg.SSAAFactor, height*p.cfg.SSAAFactor)
	p.groups = nil
	p.prims = nil
	p.fragmentsTotal = 0
	return nil
}

// Shutdown releases all device buffers.
func (p *Pipeline) Shutdown() {
	p.fb = nil
	p.groups = nil
	p.prims = nil
	p.fragmentsTotal = 0
}

// UploadScene produces device-resident primitive groups from a host-side
// scene description. Ownership of the uploaded buffers belongs to the
// Pipeline until Shutdown.
func (p *Pipeline) UploadScene(s *scene.Scene) error {
	if p.fb == nil {
		return fmt.Errorf("raster: %w: UploadScene called before Init", ErrAllocationFailure)
	}

	groups := make([]*DeviceGroup, 0, len(s.Groups))
	totalPrims := 0
	for gi, g := range s.Groups {
		dg, err := uploadGroup(g)
		if err != nil {
			if p.cfg.SkipInvalidGroups {
				continue
			}
			return fmt.Errorf("raster: group %d: %w", gi, err)
		}
		groups = append(groups, dg)
		totalPrims += dg.numPrimitives()
	}
	p.groups = groups
	p.prims = make([]Primitive, totalPrims)
	p.fragmentsTotal = 0
	return nil
}

func uploadGroup(g scene.Group) (*DeviceGroup, error) {
	if len(g.Indices) == 0 {
		return nil, fmt.Errorf("%w: group %q has no indices", ErrInvalidScene, g.Name)
	}
	if len(g.Positions) == 0 {
		return nil, fmt.Errorf("%w: group %q has no vertex positions", ErrInvalidScene, g.Name)
	}
	for _, idx := range g.Indices {
		if int(idx) >= len(g.Positions) {
			return nil, fmt.Errorf("%w: group %q index %d out of bounds for %d vertices", ErrInvalidScene, g.Name, idx, len(g.Positions))
		}
	}

	dg := &DeviceGroup{
		Kind:        PrimitiveKind(g.Kind),
		Indices:     g.Indices,
		Positions:   g.Positions,
		Normals:     g.Normals,
		Texcoords:   g.Texcoords,
		Tex:         g.Texture,
		Model:       g.Model,
		NormalModel: mathutil.NormalMatrix(g.Model),
	}
	dg.VertexOut = make([]VertexOut, len(g.Positions))
	return dg, nil
}

// Rasterize runs one frame (§4.6) and writes an RGBA byte buffer of size
// (presented width)×(presented height)×4 into output (A always 0). mvp, mv
// and mvNormal are the camera's view-projection, view and view-normal
// matrices, with no per-group model baked in; each group's own Model
// (and cached NormalModel) is folded in here to form the per-group
// MVP/MV/MV_normal the vertex transform kernel's contract (§4.1) expects.
func (p *Pipeline) Rasterize(output []byte, mvp, mv mathutil.Mat4, mvNormal mathutil.Mat3) error {
	if p.fb == nil {
		return fmt.Errorf("raster: %w: Rasterize called before Init", ErrAllocationFailure)
	}
	want := p.width * p.height * 4
	if len(output) != want {
		return fmt.Errorf("raster: %w: output buffer has %d bytes, want %d", ErrInvalidScene, len(output), want)
	}

	p.fb.Clear()

	var state assemblyState
	for _, g := range p.groups {
		gMvp := mathutil.Mat4Mul(mvp, g.Model)
		gMv := mathutil.Mat4Mul(mv, g.Model)
		gMvNormal := mathutil.Mat3Mul(mvNormal, g.NormalModel)

		if err := transformVertices(g, gMvp, gMv, gMvNormal, p.fb.Width, p.fb.Height, p.cfg.Workers); err != nil {
			return err
		}
		if err := assemblePrimitives(g, &state, p.prims, p.cfg.Workers); err != nil {
			return err
		}
	}

	if err := rasterizePrimitives(p.prims, p.fb, p.cfg.CorrectInterp, p.cfg.Workers); err != nil {
		return err
	}
	if err := shadeFragments(p.fb, p.cfg, p.cfg.Workers); err != nil {
		return err
	}

	for i := range p.fb.Fragments {
		if p.fb.Fragments[i].Covered {
			p.fragmentsTotal++
		}
	}

	resolve(p.fb, p.cfg.SSAAFactor, output)
	return nil
}

// Stats summarizes the most recently uploaded scene plus the running
// covered-fragment total across every Rasterize call since, for diagnostics.
func (p *Pipeline) Stats() Stats {
	s := Stats{Groups: len(p.groups), Fragments: p.fragmentsTotal}
	for _, g := range p.groups {
		s.Vertices += len(g.Positions)
		s.Primitives += g.numPrimitives()
	}
	return s
}
