package render

import "time"

// Context provides frame state for renderers, passed by value
type Context struct {
	Frame  uint64
	Now    time.Time
	Width  int
	Height int
}
