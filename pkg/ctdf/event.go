package ctdf

import (
	"fmt"
	"time"
)

type Event struct {
	Type      EventType
	Timestamp time.Time

	LineRef     LineID
	StationRefs []StationID
	Distance    int `json:",omitempty"`
}

type EventType string

const (
	EventTypeLineCreated    EventType = "LineCreated"
	EventTypeSectionAdded   EventType = "SectionAdded"
	EventTypeStationRemoved EventType = "StationRemoved"
)

func (e *Event) Summary() string {
	switch e.Type {
	case EventTypeLineCreated:
		return fmt.Sprintf("Line %d created with stations %v", e.LineRef, e.StationRefs)
	case EventTypeSectionAdded:
		return fmt.Sprintf("Section %v (%dkm) added to line %d", e.StationRefs, e.Distance, e.LineRef)
	case EventTypeStationRemoved:
		return fmt.Sprintf("Station %v removed from line %d", e.StationRefs, e.LineRef)
	default:
		return fmt.Sprintf("Unknown event %s on line %d", e.Type, e.LineRef)
	}
}
