package model

// Fast-start mode constants (spec.md §3 "Fast-start profile").
const (
	ModeOff           = 0 // off
	ModePreStartOff   = 1 // pre-start off
	ModeRampToMin     = 2 // ramping to min loading
	ModeFlexible      = 3 // at or above min loading, flexible
	ModeRampDown      = 4 // ramping down
)

// FastStartProfile is a fast-start unit's state at the start of a dispatch
// interval (or, for the first run of an interval, the caller-supplied
// current_mode / time_in_current_mode pair from the input table).
type FastStartProfile struct {
	Unit                   string
	Mode                   int // current_mode
	TimeInMode             float64
	ModeOneLength          float64
	ModeTwoLength          float64
	ModeFourLength         float64
	MinLoading             float64
	TimeSinceEndOfModeTwo  *float64 // carried from a prior interval once the unit has reached mode 3
}

// Advance runs the fast-start state machine forward by dispatchIntervalMinutes,
// returning the profile updated to end_mode/time_in_end_mode (spec.md §3).
// Time spilling over a mode's length carries into the next mode; mode 0 and
// mode 3 have no length and simply accumulate elapsed time. A transit from
// mode 2 to mode 3 within the interval starts (or restarts) TimeSinceEndOfModeTwo
// at the portion of the interval spent past the boundary; a unit already in
// mode 3 at the start of the interval has its carried value advanced by the
// full interval length.
func (p FastStartProfile) Advance(dispatchIntervalMinutes float64) FastStartProfile {
	mode := p.Mode
	timeInMode := p.TimeInMode
	remaining := dispatchIntervalMinutes
	var sinceModeTwo *float64

	if mode == ModeFlexible && p.TimeSinceEndOfModeTwo != nil {
		v := *p.TimeSinceEndOfModeTwo + dispatchIntervalMinutes
		sinceModeTwo = &v
	}

	for remaining > 0 {
		switch mode {
		case ModeOff, ModePreStartOff:
			length := modeLength(mode, p)
			if length <= 0 {
				timeInMode += remaining
				remaining = 0
				break
			}
			left := length - timeInMode
			if remaining < left {
				timeInMode += remaining
				remaining = 0
			} else {
				remaining -= left
				mode = nextMode(mode)
				timeInMode = 0
			}
		case ModeRampToMin:
			length := p.ModeTwoLength
			left := length - timeInMode
			if remaining < left {
				timeInMode += remaining
				remaining = 0
			} else {
				spill := remaining - left
				remaining = 0
				mode = ModeFlexible
				timeInMode = spill
				sinceModeTwo = &spill
			}
		case ModeFlexible:
			timeInMode += remaining
			remaining = 0
		case ModeRampDown:
			length := p.ModeFourLength
			left := length - timeInMode
			if remaining < left {
				timeInMode += remaining
				remaining = 0
			} else {
				remaining -= left
				mode = ModeOff
				timeInMode = 0
			}
		default:
			remaining = 0
		}
	}

	out := p
	out.Mode = mode
	out.TimeInMode = timeInMode
	out.TimeSinceEndOfModeTwo = sinceModeTwo
	return out
}

// modeLength returns the configured length of mode 1 (mode 0 has none).
func modeLength(mode int, p FastStartProfile) float64 {
	if mode == ModePreStartOff {
		return p.ModeOneLength
	}
	return 0
}

func nextMode(mode int) int {
	switch mode {
	case ModeOff:
		return ModeOff
	case ModePreStartOff:
		return ModeRampToMin
	default:
		return mode
	}
}
