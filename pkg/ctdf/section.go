package ctdf

import "fmt"

// Section is a directed, distance weighted link between two adjacent stations of a line.
// Lines are referenced by id only; the owning Sections is the sole owner of the value.
type Section struct {
	LineRef LineID

	UpStation   Station
	DownStation Station
	Distance    int
}

func NewSection(lineRef LineID, upStation Station, downStation Station, distance int) (*Section, error) {
	if upStation.ID == downStation.ID {
		return nil, fmt.Errorf("section %s -> %s: %w", upStation, downStation, ErrSameStation)
	}
	if distance <= 0 {
		return nil, fmt.Errorf("section %s -> %s distance %d: %w", upStation, downStation, distance, ErrInvalidDistance)
	}

	return &Section{
		LineRef:     lineRef,
		UpStation:   upStation,
		DownStation: downStation,
		Distance:    distance,
	}, nil
}

func (s *Section) String() string {
	return fmt.Sprintf("%s -[%d]-> %s", s.UpStation, s.Distance, s.DownStation)
}

func (s *Section) shrinkFromUp(station Station, distance int) {
	s.UpStation = station
	s.Distance -= distance
}

func (s *Section) shrinkFromDown(station Station, distance int) {
	s.DownStation = station
	s.Distance -= distance
}
