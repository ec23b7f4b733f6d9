package raster

import "errors"

// Sentinel error kinds from §7. Wrap with fmt.Errorf("raster: %w", ...) so
// callers can errors.Is against these.
var (
	// ErrAllocationFailure: device memory exhausted during Init or
	// UploadScene. Fatal for that call.
	ErrAllocationFailure = errors.New("allocation failure")

	// ErrInvalidScene: an expected attribute is missing or mis-typed, e.g.
	// indices absent on a triangle primitive group, an index out of
	// vertex-count bounds, or an unsupported primitive kind.
	ErrInvalidScene = errors.New("invalid scene")

	// ErrDispatchFailure: a worker goroutine recovered from a panic during
	// a stage dispatch. The frame is discarded; later frames may still
	// succeed.
	ErrDispatchFailure = errors.New("dispatch failure")
)
