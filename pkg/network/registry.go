package network

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/travigo/subway/pkg/ctdf"
)

type StationRegistry interface {
	Lookup(ctx context.Context, id ctdf.StationID) (ctdf.Station, error)
}

type LineRepository interface {
	Create(ctx context.Context, line *ctdf.Line) error
	Get(ctx context.Context, id ctdf.LineID) (*ctdf.Line, error)
	All(ctx context.Context) ([]*ctdf.Line, error)
}

type MemoryStationRegistry struct {
	mutex    sync.RWMutex
	stations map[ctdf.StationID]ctdf.Station
	nextID   ctdf.StationID
}

func NewMemoryStationRegistry() *MemoryStationRegistry {
	return &MemoryStationRegistry{
		stations: map[ctdf.StationID]ctdf.Station{},
		nextID:   1,
	}
}

func (r *MemoryStationRegistry) Register(name string) ctdf.Station {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	station := ctdf.Station{
		ID:               r.nextID,
		Name:             name,
		CreationDateTime: time.Now(),
	}
	r.stations[station.ID] = station
	r.nextID++

	return station
}

func (r *MemoryStationRegistry) Lookup(_ context.Context, id ctdf.StationID) (ctdf.Station, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	station, exists := r.stations[id]
	if !exists {
		return ctdf.Station{}, fmt.Errorf("station %d: %w", id, ctdf.ErrStationNotFound)
	}

	return station, nil
}

type MemoryLineRepository struct {
	mutex  sync.RWMutex
	lines  map[ctdf.LineID]*ctdf.Line
	nextID ctdf.LineID
}

func NewMemoryLineRepository() *MemoryLineRepository {
	return &MemoryLineRepository{
		lines:  map[ctdf.LineID]*ctdf.Line{},
		nextID: 1,
	}
}

func (r *MemoryLineRepository) Create(_ context.Context, line *ctdf.Line) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	line.ID = r.nextID
	r.lines[line.ID] = line
	r.nextID++

	return nil
}

func (r *MemoryLineRepository) Get(_ context.Context, id ctdf.LineID) (*ctdf.Line, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	line, exists := r.lines[id]
	if !exists {
		return nil, fmt.Errorf("line %d: %w", id, ctdf.ErrLineNotFound)
	}

	return line, nil
}

func (r *MemoryLineRepository) All(_ context.Context) ([]*ctdf.Line, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	lines := make([]*ctdf.Line, 0, len(r.lines))
	for _, line := range r.lines {
		lines = append(lines, line)
	}

	return lines, nil
}
