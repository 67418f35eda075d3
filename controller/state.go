package controller

//go:generate go tool stringer -type=State
//go:generate go tool stringer -type=Mode,CommitPolicy -linecomment -output=mode_string.go

// State is the pointer interaction state.
type State int

const (
	Idle State = iota
	Dragging
	Slicing
)

// Mode selects how a finished stroke becomes a cut path.
type Mode int

const (
	// ModeSingle cuts along the straight line from the first to the last
	// stroke point.
	ModeSingle Mode = iota // single
	// ModeFreehand cuts along every consecutive pair of stroke points.
	ModeFreehand // freehand
)

// CommitPolicy decides whether a freehand stroke cuts on release.
type CommitPolicy int

const (
	CommitOnRelease CommitPolicy = iota // release
	CommitNever                         // never
)
