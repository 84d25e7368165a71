package engine

// Surface is the opaque display-surface handle a Renderer allocates on
// mount and the reconciler threads back into every Apply call. The core
// never inspects it (spec.md §6: Renderer "allocates display surface").
type Surface any

// Renderer is the platform contract from spec.md §6, implemented by a
// concrete display adapter (pkg/wsrenderer ships one; internal/testkit
// ships a synchronous in-process one for this package's own tests).
type Renderer interface {
	// Mount allocates a display surface sized rows x cols for viewer,
	// titled title.
	Mount(viewer Viewer, title string, rows, cols int) (Surface, error)
	// Unmount releases a surface allocated by Mount.
	Unmount(surface Surface)
	// Apply applies patch to surface. Must be idempotent and
	// order-preserving (spec.md §6).
	Apply(surface Surface, patch Patch) error
}
