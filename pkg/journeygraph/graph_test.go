package journeygraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/subway/pkg/ctdf"
)

var (
	gangnam        = ctdf.Station{ID: 1, Name: "강남역"}
	yangjae        = ctdf.Station{ID: 2, Name: "양재역"}
	gyodae         = ctdf.Station{ID: 3, Name: "교대역"}
	nambuTerminal  = ctdf.Station{ID: 4, Name: "남부터미널역"}
	yongsan        = ctdf.Station{ID: 5, Name: "용산역"}
	isu            = ctdf.Station{ID: 6, Name: "이수역"}
	unknownStation = ctdf.StationID(999)
)

type testLine struct {
	id        ctdf.LineID
	surcharge int
	sections  [][3]any
}

func buildSnapshot(t *testing.T, lines ...testLine) ctdf.NetworkSnapshot {
	t.Helper()

	snapshot := ctdf.NetworkSnapshot{}
	for _, line := range lines {
		sections := ctdf.NewSections()
		for _, s := range line.sections {
			section, err := ctdf.NewSection(line.id, s[0].(ctdf.Station), s[1].(ctdf.Station), s[2].(int))
			require.NoError(t, err)
			require.NoError(t, sections.Add(section))
		}

		snapshot.Lines = append(snapshot.Lines, ctdf.LineSnapshot{
			ID:        line.id,
			Surcharge: line.surcharge,
			Sections:  sections.Snapshot(),
		})
	}

	return snapshot
}

// 교대역    --- *2호선* ---   강남역
// |                        |
// *3호선*                   *신분당선*
// |                        |
// 남부터미널역  --- *3호선* ---   양재
func referenceNetwork(t *testing.T, lineThreeSurcharge int) ctdf.NetworkSnapshot {
	return buildSnapshot(t,
		testLine{id: 1, surcharge: 900, sections: [][3]any{{gangnam, yangjae, 10}}},
		testLine{id: 2, sections: [][3]any{{gyodae, gangnam, 10}}},
		testLine{id: 3, surcharge: lineThreeSurcharge, sections: [][3]any{{gyodae, yangjae, 5}, {gyodae, nambuTerminal, 3}}},
		testLine{id: 4, sections: [][3]any{{yongsan, isu, 15}}},
	)
}

func stationIDs(stations []ctdf.Station) []ctdf.StationID {
	ids := make([]ctdf.StationID, 0, len(stations))
	for _, station := range stations {
		ids = append(ids, station.ID)
	}
	return ids
}

func TestBuild(t *testing.T) {
	graph := Build(referenceNetwork(t, 0))

	assert.Equal(t, 6, graph.StationCount())
	assert.Equal(t, 10, graph.EdgeCount())

	station, exists := graph.Station(gyodae.ID)
	assert.True(t, exists)
	assert.Equal(t, "교대역", station.Name)

	edges := graph.Edges(gyodae.ID)
	require.Len(t, edges, 2)
	assert.Equal(t, gangnam.ID, edges[0].To)
	assert.Equal(t, nambuTerminal.ID, edges[1].To)
}

func TestShortestPathReferenceNetwork(t *testing.T) {
	graph := Build(referenceNetwork(t, 0))

	path, err := graph.ShortestPath(yangjae.ID, gyodae.ID)
	require.NoError(t, err)

	assert.Equal(t, []ctdf.StationID{yangjae.ID, nambuTerminal.ID, gyodae.ID}, stationIDs(path.Stations))
	assert.Equal(t, 5, path.Distance)
	assert.Equal(t, 0, path.Surcharge)
	assert.Equal(t, []ctdf.LineID{3}, path.Lines)
}

func TestShortestPathAcrossLines(t *testing.T) {
	graph := Build(referenceNetwork(t, 0))

	path, err := graph.ShortestPath(nambuTerminal.ID, gangnam.ID)
	require.NoError(t, err)

	// 남부터미널 -> 교대 -> 강남 is 13, 남부터미널 -> 양재 -> 강남 is 12
	assert.Equal(t, []ctdf.StationID{nambuTerminal.ID, yangjae.ID, gangnam.ID}, stationIDs(path.Stations))
	assert.Equal(t, 12, path.Distance)
	assert.Equal(t, 900, path.Surcharge)
	assert.Equal(t, []ctdf.LineID{3, 1}, path.Lines)
}

func TestShortestPathDistanceMatchesTraversedSections(t *testing.T) {
	snapshot := referenceNetwork(t, 0)
	graph := Build(snapshot)

	sectionDistance := map[[2]ctdf.StationID]int{}
	for _, line := range snapshot.Lines {
		for _, section := range line.Sections {
			sectionDistance[[2]ctdf.StationID{section.UpStation.ID, section.DownStation.ID}] = section.Distance
			sectionDistance[[2]ctdf.StationID{section.DownStation.ID, section.UpStation.ID}] = section.Distance
		}
	}

	connected := []ctdf.StationID{gangnam.ID, yangjae.ID, gyodae.ID, nambuTerminal.ID}
	for _, source := range connected {
		for _, target := range connected {
			if source == target {
				continue
			}

			path, err := graph.ShortestPath(source, target)
			require.NoError(t, err)
			assert.Equal(t, source, path.Stations[0].ID)
			assert.Equal(t, target, path.Stations[len(path.Stations)-1].ID)

			total := 0
			for i := 1; i < len(path.Stations); i++ {
				distance, adjacent := sectionDistance[[2]ctdf.StationID{path.Stations[i-1].ID, path.Stations[i].ID}]
				require.True(t, adjacent, "%s and %s are not adjacent", path.Stations[i-1], path.Stations[i])
				total += distance
			}
			assert.Equal(t, path.Distance, total)
		}
	}
}

func TestShortestPathSurcharge(t *testing.T) {
	graph := Build(referenceNetwork(t, 500))

	path, err := graph.ShortestPath(yangjae.ID, gyodae.ID)
	require.NoError(t, err)
	assert.Equal(t, 500, path.Surcharge)
}

func TestShortestPathErrors(t *testing.T) {
	graph := Build(referenceNetwork(t, 0))

	_, err := graph.ShortestPath(yangjae.ID, yangjae.ID)
	assert.ErrorIs(t, err, ctdf.ErrSameStation)

	_, err = graph.ShortestPath(unknownStation, unknownStation)
	assert.ErrorIs(t, err, ctdf.ErrSameStation)

	_, err = graph.ShortestPath(yongsan.ID, nambuTerminal.ID)
	assert.ErrorIs(t, err, ctdf.ErrNoPath)

	_, err = graph.ShortestPath(unknownStation, gyodae.ID)
	assert.ErrorIs(t, err, ctdf.ErrStationNotFound)

	_, err = graph.ShortestPath(gyodae.ID, unknownStation)
	assert.ErrorIs(t, err, ctdf.ErrStationNotFound)
}

func TestShortestPathTieBreakIsDeterministic(t *testing.T) {
	graph := Build(buildSnapshot(t,
		testLine{id: 7, surcharge: 900, sections: [][3]any{{gangnam, yangjae, 5}}},
		testLine{id: 2, surcharge: 0, sections: [][3]any{{gangnam, yangjae, 5}}},
		testLine{id: 3, sections: [][3]any{{gangnam, gyodae, 2}, {gyodae, isu, 2}}},
		testLine{id: 4, sections: [][3]any{{gangnam, nambuTerminal, 2}, {nambuTerminal, isu, 2}}},
	))

	for i := 0; i < 10; i++ {
		path, err := graph.ShortestPath(gangnam.ID, yangjae.ID)
		require.NoError(t, err)
		assert.Equal(t, []ctdf.LineID{2}, path.Lines)
		assert.Equal(t, 0, path.Surcharge)

		path, err = graph.ShortestPath(gangnam.ID, isu.ID)
		require.NoError(t, err)
		assert.Equal(t, []ctdf.StationID{gangnam.ID, gyodae.ID, isu.ID}, stationIDs(path.Stations))
		assert.Equal(t, 4, path.Distance)
	}
}

func TestShortestPathParallelSections(t *testing.T) {
	graph := Build(buildSnapshot(t,
		testLine{id: 1, surcharge: 900, sections: [][3]any{{gangnam, yangjae, 4}}},
		testLine{id: 5, sections: [][3]any{{yangjae, gangnam, 6}}},
		testLine{id: 2, sections: [][3]any{{yangjae, gyodae, 3}}},
	))

	path, err := graph.ShortestPath(gyodae.ID, gangnam.ID)
	require.NoError(t, err)
	assert.Equal(t, []ctdf.StationID{gyodae.ID, yangjae.ID, gangnam.ID}, stationIDs(path.Stations))
	assert.Equal(t, 7, path.Distance)
	assert.Equal(t, []ctdf.LineID{2, 1}, path.Lines)
	assert.Equal(t, 900, path.Surcharge)
}
