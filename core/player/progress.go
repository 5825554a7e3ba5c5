// Package player simulates the transport bar: a fake playback position that
// advances with wall-clock ticks, scrub-seeking, loop-on-completion and a
// drag-driven volume slider. No audio is decoded.
package player

import (
	"time"
)

// DefaultRate advances progress by one unit per second (0.001 per ms), so a
// full sweep takes 100 seconds whatever the beat's declared duration.
const DefaultRate = 0.001

// MaxProgress is the normalized end of a track.
const MaxProgress = 100.0

// State is the progress sub-state.
type State int

const (
	StoppedOrPaused State = iota
	Advancing
)

func (s State) String() string {
	if s == Advancing {
		return "advancing"
	}
	return "stopped"
}

// Simulator owns the progress value for the current track. The playing flag
// is pushed in by the transport; the simulator never flips it on its own.
type Simulator struct {
	rate     float64
	progress float64
	playing  bool
	loop     bool
	trackID  string

	lastTick time.Time
	ticking  bool // lastTick is valid for the current run
}

// NewSimulator returns a stopped simulator at progress 0 with DefaultRate.
func NewSimulator() *Simulator {
	return &Simulator{rate: DefaultRate}
}

// SetRate sets progress units per millisecond. Non-positive rates restore
// DefaultRate.
func (s *Simulator) SetRate(rate float64) {
	if rate <= 0 {
		rate = DefaultRate
	}
	s.rate = rate
}

// Rate returns progress units per millisecond.
func (s *Simulator) Rate() float64 { return s.rate }

// SetTrack records the current track identity. A different identity resets
// progress to 0 immediately, whatever the sub-state.
func (s *Simulator) SetTrack(id string) {
	if id == s.trackID {
		return
	}
	s.trackID = id
	s.progress = 0
}

// TrackID returns the current track identity.
func (s *Simulator) TrackID() string { return s.trackID }

// SetPlaying mirrors the external playing flag. Every change starts a new
// tick run, so the first tick afterwards has zero delta.
func (s *Simulator) SetPlaying(playing bool) {
	if playing == s.playing {
		return
	}
	s.playing = playing
	s.ticking = false
}

// Playing returns the mirrored playing flag.
func (s *Simulator) Playing() bool { return s.playing }

// SetLoop enables or disables wrap-around at the end of the track.
func (s *Simulator) SetLoop(loop bool) {
	if loop == s.loop {
		return
	}
	s.loop = loop
	s.ticking = false
}

// Loop reports whether loop-on-completion is enabled.
func (s *Simulator) Loop() bool { return s.loop }

// Progress returns the position in [0,100].
func (s *Simulator) Progress() float64 { return s.progress }

// State reports Advancing while playing, unless the track has ended with
// loop off.
func (s *Simulator) State() State {
	if !s.playing {
		return StoppedOrPaused
	}
	if !s.loop && s.progress >= MaxProgress {
		return StoppedOrPaused
	}
	return Advancing
}

// Seek moves to a horizontal fraction of the seek bar. The fraction is
// clamped to [0,1]; the sub-state is unchanged.
func (s *Simulator) Seek(fraction float64) {
	s.progress = clamp(fraction, 0, 1) * MaxProgress
}

// Tick advances progress by the wall-clock delta since the previous tick of
// the current run. It reports true when the track reached its end with loop
// off on this tick.
func (s *Simulator) Tick(now time.Time) bool {
	if !s.playing {
		s.ticking = false
		return false
	}
	var elapsed time.Duration
	if s.ticking {
		elapsed = now.Sub(s.lastTick)
	}
	s.lastTick = now
	s.ticking = true
	return s.Advance(elapsed)
}

// Advance moves progress forward by rate * elapsed while playing. Negative
// durations count as zero. See Tick for the return value.
func (s *Simulator) Advance(elapsed time.Duration) bool {
	if !s.playing {
		return false
	}
	if elapsed < 0 {
		elapsed = 0
	}
	ms := float64(elapsed) / float64(time.Millisecond)
	next := s.progress + s.rate*ms
	if next < MaxProgress {
		s.progress = next
		return false
	}
	if s.loop {
		s.progress = 0
		return false
	}
	ended := s.progress < MaxProgress
	s.progress = MaxProgress
	return ended
}

func clamp(v, lo, hi float64) float64 {
	if v != v { // NaN
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
