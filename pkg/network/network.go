package network

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/subway/pkg/ctdf"
	"github.com/travigo/subway/pkg/fare"
	"github.com/travigo/subway/pkg/journeygraph"
	"golang.org/x/exp/slices"
)

type EventPublisher interface {
	Publish(ctx context.Context, event ctdf.Event) error
}

// Network is the entry point for line changes and route queries. Changes to a
// line are serialised per line while different lines can change in parallel.
type Network struct {
	Stations StationRegistry
	Lines    LineRepository

	// Optional
	Cache     PathCache
	Publisher EventPublisher

	locksMutex sync.Mutex
	lineLocks  map[ctdf.LineID]*sync.Mutex
}

func New(stations StationRegistry, lines LineRepository) *Network {
	return &Network{
		Stations:  stations,
		Lines:     lines,
		lineLocks: map[ctdf.LineID]*sync.Mutex{},
	}
}

type LineRequest struct {
	Name      string
	Color     string
	Surcharge int

	UpStationID   ctdf.StationID
	DownStationID ctdf.StationID
	Distance      int
}

func (n *Network) CreateLine(ctx context.Context, request LineRequest) (*ctdf.Line, error) {
	if request.Surcharge < 0 {
		return nil, fmt.Errorf("line %s surcharge %d: %w", request.Name, request.Surcharge, ctdf.ErrInvalidSurcharge)
	}

	upStation, downStation, err := n.lookupStations(ctx, request.UpStationID, request.DownStationID)
	if err != nil {
		return nil, err
	}

	section, err := ctdf.NewSection(0, upStation, downStation, request.Distance)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	line := &ctdf.Line{
		Name:                 request.Name,
		Color:                request.Color,
		Surcharge:            request.Surcharge,
		CreationDateTime:     now,
		ModificationDateTime: now,
		Sections:             ctdf.NewSections(),
	}
	if err := n.Lines.Create(ctx, line); err != nil {
		return nil, err
	}

	// The line is already visible to snapshots
	err = n.withLineLock(line.ID, func() error {
		section.LineRef = line.ID
		return line.Sections.Add(section)
	})
	if err != nil {
		return nil, err
	}

	n.changed(ctx, ctdf.Event{
		Type:        ctdf.EventTypeLineCreated,
		LineRef:     line.ID,
		StationRefs: []ctdf.StationID{upStation.ID, downStation.ID},
		Distance:    request.Distance,
	})
	log.Info().Int64("line", int64(line.ID)).Str("name", line.Name).Msg("Created line")

	return line, nil
}

func (n *Network) AddSection(ctx context.Context, lineID ctdf.LineID, upStationID ctdf.StationID, downStationID ctdf.StationID, distance int) error {
	line, err := n.Lines.Get(ctx, lineID)
	if err != nil {
		return err
	}

	upStation, downStation, err := n.lookupStations(ctx, upStationID, downStationID)
	if err != nil {
		return err
	}

	section, err := ctdf.NewSection(line.ID, upStation, downStation, distance)
	if err != nil {
		return err
	}

	err = n.withLineLock(line.ID, func() error {
		if err := line.Sections.Add(section); err != nil {
			return err
		}
		line.ModificationDateTime = time.Now()
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Int64("line", int64(line.ID)).Msg("Rejected section")
		return err
	}

	n.changed(ctx, ctdf.Event{
		Type:        ctdf.EventTypeSectionAdded,
		LineRef:     line.ID,
		StationRefs: []ctdf.StationID{upStation.ID, downStation.ID},
		Distance:    distance,
	})
	log.Info().Int64("line", int64(line.ID)).Str("section", section.String()).Msg("Added section")

	return nil
}

func (n *Network) RemoveStation(ctx context.Context, lineID ctdf.LineID, stationID ctdf.StationID) error {
	line, err := n.Lines.Get(ctx, lineID)
	if err != nil {
		return err
	}

	err = n.withLineLock(line.ID, func() error {
		if err := line.Sections.Remove(stationID); err != nil {
			return err
		}
		line.ModificationDateTime = time.Now()
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Int64("line", int64(line.ID)).Int64("station", int64(stationID)).Msg("Rejected station removal")
		return err
	}

	n.changed(ctx, ctdf.Event{
		Type:        ctdf.EventTypeStationRemoved,
		LineRef:     line.ID,
		StationRefs: []ctdf.StationID{stationID},
	})
	log.Info().Int64("line", int64(line.ID)).Int64("station", int64(stationID)).Msg("Removed station")

	return nil
}

// StationsOf lists the stations of a line in travel order.
func (n *Network) StationsOf(ctx context.Context, lineID ctdf.LineID) ([]ctdf.Station, error) {
	line, err := n.Lines.Get(ctx, lineID)
	if err != nil {
		return nil, err
	}

	var stations []ctdf.Station
	err = n.withLineLock(line.ID, func() error {
		stations, err = line.Stations()
		return err
	})
	if errors.Is(err, ctdf.ErrBrokenTopology) {
		log.Error().Err(err).Int64("line", int64(line.ID)).Msg("Line sections are corrupted")
	}

	return stations, err
}

// Snapshot copies every line, each under its own lock, so a route query never
// sees a line half way through a change.
func (n *Network) Snapshot(ctx context.Context) (ctdf.NetworkSnapshot, error) {
	lines, err := n.Lines.All(ctx)
	if err != nil {
		return ctdf.NetworkSnapshot{}, err
	}

	p := pool.NewWithResults[ctdf.LineSnapshot]().WithErrors()
	for _, line := range lines {
		p.Go(func() (ctdf.LineSnapshot, error) {
			var snapshot ctdf.LineSnapshot
			err := n.withLineLock(line.ID, func() error {
				var err error
				snapshot, err = line.Snapshot()
				return err
			})
			return snapshot, err
		})
	}

	lineSnapshots, err := p.Wait()
	if err != nil {
		return ctdf.NetworkSnapshot{}, err
	}

	slices.SortFunc(lineSnapshots, func(a, b ctdf.LineSnapshot) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return ctdf.NetworkSnapshot{
		Lines:     lineSnapshots,
		Timestamp: time.Now(),
	}, nil
}

// ShortestPath finds the shortest route between two stations and prices it.
// A nil age is charged the adult fare.
func (n *Network) ShortestPath(ctx context.Context, sourceID ctdf.StationID, targetID ctdf.StationID, age *int) (*PathResult, error) {
	if sourceID == targetID {
		return nil, fmt.Errorf("path %d -> %d: %w", sourceID, targetID, ctdf.ErrSameStation)
	}

	if _, _, err := n.lookupStations(ctx, sourceID, targetID); err != nil {
		return nil, err
	}

	snapshot, err := n.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	cacheKey := pathCacheKey(snapshot, sourceID, targetID, age)
	if n.Cache != nil {
		cached, err := n.Cache.Get(ctx, cacheKey)
		if err == nil {
			log.Debug().Str("key", cacheKey).Msg("Path cache hit")
			return cached, nil
		}
		if !errors.Is(err, ErrPathCacheMiss) {
			log.Error().Err(err).Str("key", cacheKey).Msg("Failed to read cached path result")
		}
	}

	path, err := journeygraph.Build(snapshot).ShortestPath(sourceID, targetID)
	if err != nil {
		return nil, err
	}

	ageBand := fare.ClassifyPtr(age)
	result := &PathResult{
		Stations:  path.Stations,
		Distance:  path.Distance,
		Surcharge: path.Surcharge,
		Lines:     path.Lines,
		AgeBand:   ageBand.String(),
		Fare:      fare.Calculate(path.Distance, path.Surcharge, age),
	}

	if n.Cache != nil {
		if err := n.Cache.Set(ctx, cacheKey, result); err != nil {
			log.Error().Err(err).Str("key", cacheKey).Msg("Failed to cache path result")
		}
	}

	return result, nil
}

func (n *Network) lookupStations(ctx context.Context, upStationID ctdf.StationID, downStationID ctdf.StationID) (ctdf.Station, ctdf.Station, error) {
	upStation, err := n.Stations.Lookup(ctx, upStationID)
	if err != nil {
		return ctdf.Station{}, ctdf.Station{}, err
	}

	downStation, err := n.Stations.Lookup(ctx, downStationID)
	if err != nil {
		return ctdf.Station{}, ctdf.Station{}, err
	}

	return upStation, downStation, nil
}

func (n *Network) withLineLock(lineID ctdf.LineID, f func() error) error {
	n.locksMutex.Lock()
	lock, exists := n.lineLocks[lineID]
	if !exists {
		lock = &sync.Mutex{}
		n.lineLocks[lineID] = lock
	}
	n.locksMutex.Unlock()

	lock.Lock()
	defer lock.Unlock()

	return f()
}

func (n *Network) changed(ctx context.Context, event ctdf.Event) {
	if n.Publisher == nil {
		return
	}

	event.Timestamp = time.Now()
	if err := n.Publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to publish network event")
	}
}

// pathCacheKey is derived from the network topology, so any process holding the
// same lines shares entries and a change to any line moves every query to new keys.
func pathCacheKey(snapshot ctdf.NetworkSnapshot, sourceID ctdf.StationID, targetID ctdf.StationID, age *int) string {
	return fmt.Sprintf("subway:path:%s:%d:%d:%s", snapshot.Fingerprint(), sourceID, targetID, fare.ClassifyPtr(age))
}
