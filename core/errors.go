package core

import "errors"

// Error taxonomy shared by the grid, tracker and loop. Wrap with fmt.Errorf("...: %w") and test with errors.Is
var (
	// ErrStructural reports that a column or cell could not be created or found after insertion
	ErrStructural = errors.New("structural error")

	// ErrInvariant reports a violated internal invariant, e.g. a tracker holding entries it should have merged
	ErrInvariant = errors.New("invariant violation")

	// ErrUnknown classifies any other failure caught at the loop boundary, recovered panics included
	ErrUnknown = errors.New("unknown error")
)
