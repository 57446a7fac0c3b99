package engine

// ModeState is the overlay's discrete state.
//
// ScrollLocked means content scrolling owns single-finger drags; it equals
// !GrabberMode whenever no gesture is in progress. ResizeActive and
// GrabberMode never hold together.
type ModeState struct {
	Visible      bool `json:"visible"`
	GrabberMode  bool `json:"grabber_mode"`
	ScrollLocked bool `json:"scroll_locked"`
	ResizeActive bool `json:"resize_active"`
}

// Mode is the coarse state derived from ModeState.
type Mode int

const (
	ModeHidden Mode = iota
	ModeFree
	ModeGrabberHidden
	ModeResizing
)

func (m Mode) String() string {
	switch m {
	case ModeHidden:
		return "hidden"
	case ModeFree:
		return "free"
	case ModeGrabberHidden:
		return "grabber-hidden"
	case ModeResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Mode collapses the flags into one of the four states.
func (s ModeState) Mode() Mode {
	switch {
	case !s.Visible:
		return ModeHidden
	case s.ResizeActive:
		return ModeResizing
	case s.GrabberMode:
		return ModeGrabberHidden
	default:
		return ModeFree
	}
}

func initialModeState() ModeState {
	return ModeState{ScrollLocked: true}
}
