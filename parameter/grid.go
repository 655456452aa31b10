package parameter

// Grid Colors (0xRRGGBB)
const (
	// Background is the surface clear and card cover color
	Background = 0x333333

	// FadeColor paints a deactivating cell for its last visible frame
	FadeColor = 0x333333

	// CellFill is the color of a cell created without one
	CellFill = 0x00ff00
)

// Cell Geometry
const (
	// CellRadiusX, CellRadiusY extend a cell's painted square around its point
	CellRadiusX = 0
	CellRadiusY = 0
)

// Card Appearance
const (
	CardBackground = 0x0080ff
	CardForeground = 0xffffff

	// CardPadding is the blank column on each side of the caption
	CardPadding = 1

	// CardHeight is the box height in rows, caption on the middle row
	CardHeight = 3
)
