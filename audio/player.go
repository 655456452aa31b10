package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/krunch/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Cue identifies a short sound
type Cue uint8

const (
	CueMove   Cue = iota // card moved by key
	CueArrive            // glide reached its target
	cueCount
)

// Player mixes cues onto the speaker. Every method is safe on an uninitialized or nil player
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	requested   [cueCount]atomic.Int64
}

// NewPlayer creates a silent player; Initialize opens the speaker
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize sets up the audio system
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup stops all sounds and detaches from the speaker
func (p *Player) Cleanup() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	p.mixer.Clear()
	p.initialized = false
}

// Play queues cue; it is counted even when the speaker is not open
func (p *Player) Play(c Cue) {
	if p == nil || c >= cueCount {
		return
	}
	p.requested[c].Add(1)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(cueStreamer(c))
	speaker.Unlock()
}

// Requested returns how many times cue was played
func (p *Player) Requested(c Cue) int64 {
	if p == nil || c >= cueCount {
		return 0
	}
	return p.requested[c].Load()
}

func cueStreamer(c Cue) beep.Streamer {
	switch c {
	case CueArrive:
		return NewToneGenerator(sampleRate, parameter.ArriveCueFreq, parameter.CueGain,
			parameter.ArriveCueDuration, parameter.CueAttack, parameter.CueRelease)
	default:
		return NewToneGenerator(sampleRate, parameter.MoveCueFreq, parameter.CueGain,
			parameter.MoveCueDuration, parameter.CueAttack, parameter.CueRelease)
	}
}
