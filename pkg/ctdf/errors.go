package ctdf

import "errors"

var (
	ErrDuplicateSection    = errors.New("section stations are already registered on the line")
	ErrDisconnectedSection = errors.New("section does not connect to any station on the line")
	ErrInvalidDistance     = errors.New("invalid section distance")
	ErrMinimumSize         = errors.New("line cannot have fewer sections")
	ErrStationNotFound     = errors.New("station not found")
	ErrLineNotFound        = errors.New("line not found")
	ErrInvalidSurcharge    = errors.New("line surcharge cannot be negative")
	ErrSameStation         = errors.New("source and target station are the same")
	ErrNoPath              = errors.New("no path between stations")

	// ErrBrokenTopology means the section set no longer forms a single chain.
	// It is never caused by bad input, only by a defect that broke the invariants.
	ErrBrokenTopology = errors.New("broken section topology")
)
