package render

// SystemRenderer is implemented by components with visual output
type SystemRenderer interface {
	Render(ctx Context, c *Canvas)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}

// Invalidatable is optionally implemented by renderers that paint incrementally
// and must repaint everything after the buffers are reallocated
type Invalidatable interface {
	InvalidateAll()
}
