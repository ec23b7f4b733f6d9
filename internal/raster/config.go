package raster

import "runtime"

// Config holds the compile-time-style switches the spec enumerates as
// SSAA_FACTOR / TEXTURE / TEXTURE_BILINEAR / CORRECT_INTERP / DEBUG_Z /
// DEBUG_NORM, plus the worker count for every stage's parallelFor dispatch.
type Config struct {
	SSAAFactor      int  `json:"ssaa_factor"`
	Texture         bool `json:"texture"`
	TextureBilinear bool `json:"texture_bilinear"`
	CorrectInterp   bool `json:"correct_interp"`
	DebugZ          bool `json:"debug_z"`
	DebugNorm       bool `json:"debug_norm"`
	Workers         int  `json:"workers"`

	// SkipInvalidGroups makes UploadScene skip a malformed group instead of
	// failing the whole call (see §7 ErrInvalidScene).
	SkipInvalidGroups bool `json:"skip_invalid_groups"`
}

// DefaultConfig returns the spec's defaults: SSAA off, texturing and
// perspective-correct interpolation on, debug views off.
func DefaultConfig() Config {
	c := Config{
		SSAAFactor:    1,
		Texture:       true,
		CorrectInterp: true,
	}
	c.Resolve()
	return c
}

// Resolve fills in zero-valued fields with their defaults, the same
// override-then-default pass the teacher's config.Resolve performs.
func (c *Config) Resolve() {
	switch c.SSAAFactor {
	case 1, 2, 4:
	default:
		c.SSAAFactor = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
