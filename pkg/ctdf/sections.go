package ctdf

import (
	"fmt"

	"golang.org/x/exp/slices"
)

const SectionMinCount = 1

// Sections holds the sections of a single line. After every successful Add or
// Remove the sections form exactly one chain of stations without branches or cycles.
//
// Sections is not safe for concurrent use, writers for a line must be serialised by the caller.
type Sections struct {
	sections []*Section

	byUpStation   map[StationID]*Section
	byDownStation map[StationID]*Section
}

func NewSections(sections ...*Section) *Sections {
	s := &Sections{}
	for _, section := range sections {
		s.attach(section)
	}

	return s
}

func (s *Sections) Len() int {
	return len(s.sections)
}

func (s *Sections) Contains(stationID StationID) bool {
	if _, exists := s.byUpStation[stationID]; exists {
		return true
	}
	_, exists := s.byDownStation[stationID]

	return exists
}

// Add inserts a section. The first section of an empty line is always accepted.
// Later sections must share exactly one station with the line; a section starting
// or ending on a station that already starts or ends another section is inserted
// inside it, shortening the existing section by the new distance.
func (s *Sections) Add(section *Section) error {
	if len(s.sections) == 0 {
		s.attach(section)
		return nil
	}

	upStationExists := s.Contains(section.UpStation.ID)
	downStationExists := s.Contains(section.DownStation.ID)

	if upStationExists && downStationExists {
		return fmt.Errorf("add section %s: %w", section, ErrDuplicateSection)
	}
	if !upStationExists && !downStationExists {
		return fmt.Errorf("add section %s: %w", section, ErrDisconnectedSection)
	}

	if existing, ok := s.byUpStation[section.UpStation.ID]; ok {
		if existing.Distance <= section.Distance {
			return fmt.Errorf("add section %s inside %s: %w", section, existing, ErrInvalidDistance)
		}

		delete(s.byUpStation, existing.UpStation.ID)
		existing.shrinkFromUp(section.DownStation, section.Distance)
		s.byUpStation[existing.UpStation.ID] = existing

		s.attach(section)
		return nil
	}

	if existing, ok := s.byDownStation[section.DownStation.ID]; ok {
		if existing.Distance <= section.Distance {
			return fmt.Errorf("add section %s inside %s: %w", section, existing, ErrInvalidDistance)
		}

		delete(s.byDownStation, existing.DownStation.ID)
		existing.shrinkFromDown(section.UpStation, section.Distance)
		s.byDownStation[existing.DownStation.ID] = existing

		s.attach(section)
		return nil
	}

	// Touches the line only at one of its termini
	s.attach(section)

	return nil
}

// Remove takes a station off the line. An interior station has its two sections
// merged into one spanning both distances, a terminus just loses its section.
func (s *Sections) Remove(stationID StationID) error {
	if len(s.sections) <= SectionMinCount {
		return fmt.Errorf("remove station %d: %w", stationID, ErrMinimumSize)
	}
	if !s.Contains(stationID) {
		return fmt.Errorf("remove station %d: %w", stationID, ErrStationNotFound)
	}

	upSection, hasUpSection := s.byUpStation[stationID]
	downSection, hasDownSection := s.byDownStation[stationID]

	if hasUpSection {
		s.detach(upSection)
	}
	if hasDownSection {
		s.detach(downSection)
	}

	if hasUpSection && hasDownSection {
		s.attach(&Section{
			LineRef:     downSection.LineRef,
			UpStation:   downSection.UpStation,
			DownStation: upSection.DownStation,
			Distance:    downSection.Distance + upSection.Distance,
		})
	}

	return nil
}

// Stations walks the chain from the terminus with no incoming section to the
// terminus with no outgoing section.
func (s *Sections) Stations() ([]Station, error) {
	if len(s.sections) == 0 {
		return []Station{}, nil
	}

	var first *Section
	for _, section := range s.sections {
		if _, hasIncoming := s.byDownStation[section.UpStation.ID]; hasIncoming {
			continue
		}
		if first != nil {
			return nil, fmt.Errorf("stations %s and %s both start the line: %w", first.UpStation, section.UpStation, ErrBrokenTopology)
		}
		first = section
	}
	if first == nil {
		return nil, fmt.Errorf("no starting station: %w", ErrBrokenTopology)
	}

	stations := make([]Station, 0, len(s.sections)+1)
	stations = append(stations, first.UpStation)

	for current := first; current != nil; current = s.byUpStation[current.DownStation.ID] {
		if len(stations) > len(s.sections) {
			return nil, fmt.Errorf("cycle at %s: %w", current.DownStation, ErrBrokenTopology)
		}
		stations = append(stations, current.DownStation)
	}

	if len(stations) != len(s.sections)+1 {
		return nil, fmt.Errorf("walked %d stations over %d sections: %w", len(stations), len(s.sections), ErrBrokenTopology)
	}

	return stations, nil
}

// Snapshot copies the sections in storage order.
func (s *Sections) Snapshot() []Section {
	snapshot := make([]Section, 0, len(s.sections))
	for _, section := range s.sections {
		snapshot = append(snapshot, *section)
	}

	return snapshot
}

func (s *Sections) attach(section *Section) {
	if s.byUpStation == nil {
		s.byUpStation = map[StationID]*Section{}
		s.byDownStation = map[StationID]*Section{}
	}

	s.sections = append(s.sections, section)
	s.byUpStation[section.UpStation.ID] = section
	s.byDownStation[section.DownStation.ID] = section
}

func (s *Sections) detach(section *Section) {
	s.sections = slices.DeleteFunc(s.sections, func(existing *Section) bool {
		return existing == section
	})

	if s.byUpStation[section.UpStation.ID] == section {
		delete(s.byUpStation, section.UpStation.ID)
	}
	if s.byDownStation[section.DownStation.ID] == section {
		delete(s.byDownStation, section.DownStation.ID)
	}
}
