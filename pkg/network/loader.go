package network

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/ctdf"
	"gopkg.in/yaml.v3"
)

// NetworkFile describes a whole network by station name, for seeding a Network.
//
//	stations: [강남역, 양재역]
//	lines:
//	  - name: 신분당선
//	    color: bg-red-600
//	    surcharge: 900
//	    sections:
//	      - {up: 강남역, down: 양재역, distance: 10}
type NetworkFile struct {
	Stations []string          `yaml:"stations"`
	Lines    []NetworkFileLine `yaml:"lines"`
}

type NetworkFileLine struct {
	Name      string               `yaml:"name"`
	Color     string               `yaml:"color"`
	Surcharge int                  `yaml:"surcharge"`
	Sections  []NetworkFileSection `yaml:"sections"`
}

type NetworkFileSection struct {
	Line     string `yaml:"line" csv:"line"`
	Up       string `yaml:"up" csv:"up"`
	Down     string `yaml:"down" csv:"down"`
	Distance int    `yaml:"distance" csv:"distance"`
}

// Directory maps the names used in network files to registered ids.
type Directory struct {
	Stations map[string]ctdf.StationID
	Lines    map[string]ctdf.LineID
}

func (d *Directory) Station(name string) (ctdf.StationID, error) {
	id, exists := d.Stations[name]
	if !exists {
		return 0, fmt.Errorf("station %q: %w", name, ctdf.ErrStationNotFound)
	}

	return id, nil
}

func (d *Directory) Line(name string) (ctdf.LineID, error) {
	id, exists := d.Lines[name]
	if !exists {
		return 0, fmt.Errorf("line %q: %w", name, ctdf.ErrLineNotFound)
	}

	return id, nil
}

func ReadNetworkFile(path string) (*NetworkFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var networkFile NetworkFile
	if err := yaml.Unmarshal(content, &networkFile); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &networkFile, nil
}

// Load registers every station and builds every line through the normal
// Network operations, so a file breaking the line rules is rejected the same way.
func Load(ctx context.Context, network *Network, registry *MemoryStationRegistry, networkFile *NetworkFile) (*Directory, error) {
	directory := &Directory{
		Stations: map[string]ctdf.StationID{},
		Lines:    map[string]ctdf.LineID{},
	}

	for _, name := range networkFile.Stations {
		if _, exists := directory.Stations[name]; exists {
			return nil, fmt.Errorf("station %q listed twice", name)
		}
		directory.Stations[name] = registry.Register(name).ID
	}

	for _, fileLine := range networkFile.Lines {
		if len(fileLine.Sections) == 0 {
			return nil, fmt.Errorf("line %q has no sections", fileLine.Name)
		}

		first := fileLine.Sections[0]
		upStationID, err := directory.Station(first.Up)
		if err != nil {
			return nil, err
		}
		downStationID, err := directory.Station(first.Down)
		if err != nil {
			return nil, err
		}

		line, err := network.CreateLine(ctx, LineRequest{
			Name:          fileLine.Name,
			Color:         fileLine.Color,
			Surcharge:     fileLine.Surcharge,
			UpStationID:   upStationID,
			DownStationID: downStationID,
			Distance:      first.Distance,
		})
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", fileLine.Name, err)
		}
		directory.Lines[fileLine.Name] = line.ID

		for _, section := range fileLine.Sections[1:] {
			section.Line = fileLine.Name
			if err := addSection(ctx, network, directory, section); err != nil {
				return nil, err
			}
		}
	}

	log.Debug().Int("stations", len(directory.Stations)).Int("lines", len(directory.Lines)).Msg("Loaded network file")

	return directory, nil
}

// LoadSectionsCSV adds sections to already loaded lines from a line,up,down,distance CSV.
func LoadSectionsCSV(ctx context.Context, network *Network, directory *Directory, reader io.Reader) (int, error) {
	var sections []*NetworkFileSection
	if err := gocsv.Unmarshal(reader, &sections); err != nil {
		return 0, err
	}

	for _, section := range sections {
		if err := addSection(ctx, network, directory, *section); err != nil {
			return 0, err
		}
	}

	return len(sections), nil
}

func addSection(ctx context.Context, network *Network, directory *Directory, section NetworkFileSection) error {
	lineID, err := directory.Line(section.Line)
	if err != nil {
		return err
	}
	upStationID, err := directory.Station(section.Up)
	if err != nil {
		return err
	}
	downStationID, err := directory.Station(section.Down)
	if err != nil {
		return err
	}

	if err := network.AddSection(ctx, lineID, upStationID, downStationID, section.Distance); err != nil {
		return fmt.Errorf("line %q section %s -> %s: %w", section.Line, section.Up, section.Down, err)
	}

	return nil
}
