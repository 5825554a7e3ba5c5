package player

// DefaultVolume is the initial volume level.
const DefaultVolume = 80.0

// Volume is the vertical volume slider. While a drag is in progress the panel
// ignores outside clicks and direct level changes.
type Volume struct {
	level    float64
	dragging bool
	open     bool
}

// NewVolume returns a closed slider at DefaultVolume.
func NewVolume() *Volume {
	return &Volume{level: DefaultVolume}
}

// Level returns the volume in [0,100].
func (v *Volume) Level() float64 { return v.level }

// Muted reports a zero level.
func (v *Volume) Muted() bool { return v.level == 0 }

// Dragging reports whether a drag is in progress.
func (v *Volume) Dragging() bool { return v.dragging }

// Open reports whether the slider panel is shown.
func (v *Volume) Open() bool { return v.open }

// levelAt maps a vertical fraction of the slider (0 = top) to a level.
func levelAt(yFraction float64) float64 {
	if yFraction != yFraction {
		return 0
	}
	return clamp(100-yFraction*100, 0, 100)
}

// BeginDrag starts a drag at yFraction and applies the level immediately.
func (v *Volume) BeginDrag(yFraction float64) {
	v.dragging = true
	v.level = levelAt(yFraction)
}

// Move updates the level during a drag. It reports false when no drag is in
// progress and the event was ignored.
func (v *Volume) Move(yFraction float64) bool {
	if !v.dragging {
		return false
	}
	v.level = levelAt(yFraction)
	return true
}

// EndDrag releases the pointer.
func (v *Volume) EndDrag() {
	v.dragging = false
}

// SetLevel sets the level directly (keyboard, preset). Ignored mid-drag.
func (v *Volume) SetLevel(level float64) {
	if v.dragging {
		return
	}
	v.level = clamp(level, 0, 100)
}

// TogglePanel opens or closes the slider panel.
func (v *Volume) TogglePanel() {
	v.open = !v.open
}

// OutsideClick closes the panel unless a drag is in progress.
func (v *Volume) OutsideClick() {
	if v.dragging {
		return
	}
	v.open = false
}
