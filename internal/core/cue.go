package core

// Cue is a fire-and-forget audio trigger emitted by the simulation.
type Cue int

const (
	CueFlap Cue = iota
	CueHit
	CueDie
	CuePoint
	CueSwoosh

	cueCount
)

// AllCues lists every cue in declaration order.
func AllCues() []Cue {
	cues := make([]Cue, 0, cueCount)
	for c := Cue(0); c < cueCount; c++ {
		cues = append(cues, c)
	}
	return cues
}

// String returns the cue name, also used as its asset file stem.
func (c Cue) String() string {
	switch c {
	case CueFlap:
		return "wing"
	case CueHit:
		return "hit"
	case CueDie:
		return "die"
	case CuePoint:
		return "point"
	case CueSwoosh:
		return "swoosh"
	default:
		return "unknown"
	}
}
