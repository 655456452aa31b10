package parameter

// Status Line
const (
	// StatusRow is the screen row the status line occupies
	StatusRow = 0

	// StatusForeground, StatusBackground color the status line
	StatusForeground = 0x7f7f7f
	StatusBackground = 0x002222

	// PauseText is appended to the status line while updates are paused
	PauseText = " PAUSED"
)
