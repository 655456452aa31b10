package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer; sets cue latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Cue Shapes
const (
	// MoveCueDuration is the click played when a card is moved by key
	MoveCueDuration = 40 * time.Millisecond
	MoveCueFreq     = 660.0

	// ArriveCueDuration is the chime played when a glide completes
	ArriveCueDuration = 250 * time.Millisecond
	ArriveCueFreq     = 880.0

	// CueAttack, CueRelease shape every cue's envelope
	CueAttack  = 5 * time.Millisecond
	CueRelease = 30 * time.Millisecond

	// CueGain scales every cue
	CueGain = 0.2
)
