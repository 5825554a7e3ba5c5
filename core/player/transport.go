package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"beatwave/model"
)

// CommandType 播放控制指令类型
type CommandType string

const (
	CmdPlay         CommandType = "play"   // play beatId; same beat toggles
	CmdToggle       CommandType = "toggle" // toggle the current beat
	CmdPause        CommandType = "pause"
	CmdResume       CommandType = "resume"
	CmdSeek         CommandType = "seek"          // value = x fraction
	CmdLoop         CommandType = "loop"          // enabled, or toggle when absent
	CmdVolumeBegin  CommandType = "volume_begin"  // value = y fraction
	CmdVolumeMove   CommandType = "volume_move"   // value = y fraction
	CmdVolumeEnd    CommandType = "volume_end"
	CmdVolumeSet    CommandType = "volume_set"    // value = level 0..100
	CmdVolumePanel  CommandType = "volume_panel"  // toggle slider panel
	CmdOutsideClick CommandType = "outside_click" // pointer down outside the panel
	CmdSync         CommandType = "sync"          // request a snapshot only
)

// Command is one transport-bar interaction.
type Command struct {
	Type    CommandType `json:"type"`
	BeatID  string      `json:"beatId,omitempty"`
	Value   float64     `json:"value,omitempty"`
	Enabled *bool       `json:"enabled,omitempty"`
}

// Errors returned by Transport.Apply.
var (
	ErrUnknownCommand = errors.New("unknown player command")
	ErrUnknownBeat    = errors.New("unknown beat")
	ErrNoTrack        = errors.New("no track selected")
)

// BeatLookup resolves a beat id for the transport.
type BeatLookup func(id string) (model.Beat, bool)

// Snapshot is what rendering collaborators consume.
type Snapshot struct {
	BeatID     string  `json:"beatId,omitempty"`
	Title      string  `json:"title,omitempty"`
	Producer   string  `json:"producer,omitempty"`
	Progress   float64 `json:"progress"`
	Playing    bool    `json:"playing"`
	Loop       bool    `json:"loop"`
	State      string  `json:"state"`
	Elapsed    string  `json:"elapsed"`
	Total      string  `json:"total"`
	Volume     float64 `json:"volume"`
	VolumeOpen bool    `json:"volumeOpen"`
	Dragging   bool    `json:"dragging"`
	Error      string  `json:"error,omitempty"`
}

// Ticker is the host scheduling primitive driving frames.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory starts a Ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker wraps time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Options configure a Transport.
type Options struct {
	// FrameInterval between ticks while advancing. Defaults to 16ms.
	FrameInterval time.Duration
	// DurationRate derives the rate from each beat's declared duration
	// instead of DefaultRate.
	DurationRate bool
	NewTicker    TickerFactory
}

// Transport is the player bar: it owns the playing flag and current beat,
// and feeds the Simulator and Volume. It is not safe for concurrent use; a
// single goroutine (Run, or a UI event loop) drives it.
type Transport struct {
	sim     *Simulator
	volume  *Volume
	lookup  BeatLookup
	opts    Options
	current *model.Beat
}

// NewTransport creates a Transport with nothing selected.
func NewTransport(lookup BeatLookup, opts Options) *Transport {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 16 * time.Millisecond
	}
	if opts.NewTicker == nil {
		opts.NewTicker = NewTimeTicker
	}
	return &Transport{
		sim:    NewSimulator(),
		volume: NewVolume(),
		lookup: lookup,
		opts:   opts,
	}
}

// Simulator exposes the progress simulator.
func (t *Transport) Simulator() *Simulator { return t.sim }

// Volume exposes the volume slider.
func (t *Transport) Volume() *Volume { return t.volume }

// Current returns the selected beat, if any.
func (t *Transport) Current() (model.Beat, bool) {
	if t.current == nil {
		return model.Beat{}, false
	}
	return *t.current, true
}

// PlayBeat selects b and starts playing. Selecting the current beat again
// toggles playback instead.
func (t *Transport) PlayBeat(b model.Beat) {
	if t.current != nil && t.current.ID == b.ID {
		t.toggle()
		return
	}
	beat := b
	t.current = &beat
	t.sim.SetTrack(b.ID)
	if t.opts.DurationRate {
		t.sim.SetRate(RateForDuration(ParseDuration(b.Duration)))
	} else {
		t.sim.SetRate(DefaultRate)
	}
	t.sim.SetPlaying(true)
}

// resume starts playback. A track that ended with loop off restarts from 0.
func (t *Transport) resume() {
	if !t.sim.Loop() && t.sim.Progress() >= MaxProgress {
		t.sim.Seek(0)
	}
	t.sim.SetPlaying(true)
}

func (t *Transport) toggle() {
	if t.sim.Playing() {
		t.sim.SetPlaying(false)
		return
	}
	t.resume()
}

// settle clears the playing flag when the simulator cannot advance, e.g.
// after seeking to the end with loop off.
func (t *Transport) settle() {
	if t.sim.Playing() && t.sim.State() == StoppedOrPaused {
		t.sim.SetPlaying(false)
	}
}

// Apply executes one command. Errors describe bad input from the client;
// the player state is left unchanged in that case.
func (t *Transport) Apply(cmd Command) error {
	err := t.apply(cmd)
	t.settle()
	return err
}

func (t *Transport) apply(cmd Command) error {
	switch cmd.Type {
	case CmdPlay:
		if t.current != nil && t.current.ID == cmd.BeatID {
			t.PlayBeat(*t.current)
			return nil
		}
		if t.lookup == nil {
			return fmt.Errorf("%w: %s", ErrUnknownBeat, cmd.BeatID)
		}
		b, ok := t.lookup(cmd.BeatID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownBeat, cmd.BeatID)
		}
		t.PlayBeat(b)
	case CmdToggle:
		if t.current == nil {
			return ErrNoTrack
		}
		t.toggle()
	case CmdPause:
		t.sim.SetPlaying(false)
	case CmdResume:
		if t.current == nil {
			return ErrNoTrack
		}
		t.resume()
	case CmdSeek:
		t.sim.Seek(cmd.Value)
	case CmdLoop:
		loop := !t.sim.Loop()
		if cmd.Enabled != nil {
			loop = *cmd.Enabled
		}
		t.sim.SetLoop(loop)
	case CmdVolumeBegin:
		t.volume.BeginDrag(cmd.Value)
	case CmdVolumeMove:
		t.volume.Move(cmd.Value)
	case CmdVolumeEnd:
		t.volume.EndDrag()
	case CmdVolumeSet:
		t.volume.SetLevel(cmd.Value)
	case CmdVolumePanel:
		t.volume.TogglePanel()
	case CmdOutsideClick:
		t.volume.OutsideClick()
	case CmdSync:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
	return nil
}

// Tick forwards a frame to the simulator. When the track ends with loop off
// the transport pauses itself.
func (t *Transport) Tick(now time.Time) {
	t.sim.Tick(now)
	t.settle()
}

// Snapshot captures the current player state.
func (t *Transport) Snapshot() Snapshot {
	s := Snapshot{
		Progress:   t.sim.Progress(),
		Playing:    t.sim.Playing(),
		Loop:       t.sim.Loop(),
		State:      t.sim.State().String(),
		Elapsed:    FormatTime(0),
		Total:      FormatTime(0),
		Volume:     t.volume.Level(),
		VolumeOpen: t.volume.Open(),
		Dragging:   t.volume.Dragging(),
	}
	if t.current != nil {
		total := ParseDuration(t.current.Duration)
		s.BeatID = t.current.ID
		s.Title = t.current.Title
		s.Producer = t.current.Producer
		s.Elapsed = FormatTime(float64(ElapsedSeconds(s.Progress, total)))
		s.Total = t.current.Duration
	}
	return s
}

// Run drives the transport from cmds until ctx is done or cmds is closed.
// A ticker runs only while the simulator is Advancing and is stopped as
// soon as it leaves that state. emit receives a snapshot after every
// command and frame.
func (t *Transport) Run(ctx context.Context, cmds <-chan Command, emit func(Snapshot)) error {
	var (
		ticker Ticker
		frames <-chan time.Time
	)
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, frames = nil, nil
		}
	}
	defer stopTicker()

	syncTicker := func() {
		advancing := t.sim.State() == Advancing
		switch {
		case advancing && ticker == nil:
			ticker = t.opts.NewTicker(t.opts.FrameInterval)
			frames = ticker.C()
		case !advancing:
			stopTicker()
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-cmds:
			if !ok {
				return nil
			}
			err := t.Apply(cmd)
			snap := t.Snapshot()
			if err != nil {
				snap.Error = err.Error()
			}
			syncTicker()
			emit(snap)
		case now := <-frames:
			t.Tick(now)
			syncTicker()
			emit(t.Snapshot())
		}
	}
}
