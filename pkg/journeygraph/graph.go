package journeygraph

import (
	"cmp"

	"github.com/travigo/subway/pkg/ctdf"
	"golang.org/x/exp/slices"
)

// Edge is one travel direction of a section.
type Edge struct {
	From ctdf.StationID
	To   ctdf.StationID

	Distance  int
	LineRef   ctdf.LineID
	Surcharge int
}

// Graph is the route graph over every station of the network. Stations shared by
// several lines are a single vertex so paths can change line there.
type Graph struct {
	stations map[ctdf.StationID]ctdf.Station
	edges    map[ctdf.StationID][]Edge
}

// Build flattens the sections of every line into one graph. Sections can be
// travelled in both directions, so each one contributes an edge each way.
func Build(snapshot ctdf.NetworkSnapshot) *Graph {
	graph := &Graph{
		stations: map[ctdf.StationID]ctdf.Station{},
		edges:    map[ctdf.StationID][]Edge{},
	}

	for _, line := range snapshot.Lines {
		for _, section := range line.Sections {
			graph.stations[section.UpStation.ID] = section.UpStation
			graph.stations[section.DownStation.ID] = section.DownStation

			graph.addEdge(Edge{
				From:      section.UpStation.ID,
				To:        section.DownStation.ID,
				Distance:  section.Distance,
				LineRef:   line.ID,
				Surcharge: line.Surcharge,
			})
			graph.addEdge(Edge{
				From:      section.DownStation.ID,
				To:        section.UpStation.ID,
				Distance:  section.Distance,
				LineRef:   line.ID,
				Surcharge: line.Surcharge,
			})
		}
	}

	// Fixed neighbour order keeps equal distance results stable between queries
	for _, edges := range graph.edges {
		slices.SortFunc(edges, func(a, b Edge) int {
			if c := cmp.Compare(a.To, b.To); c != 0 {
				return c
			}
			if c := cmp.Compare(a.LineRef, b.LineRef); c != 0 {
				return c
			}
			return cmp.Compare(a.Distance, b.Distance)
		})
	}

	return graph
}

func (g *Graph) addEdge(edge Edge) {
	g.edges[edge.From] = append(g.edges[edge.From], edge)
}

func (g *Graph) Station(id ctdf.StationID) (ctdf.Station, bool) {
	station, exists := g.stations[id]
	return station, exists
}

func (g *Graph) Edges(id ctdf.StationID) []Edge {
	return g.edges[id]
}

func (g *Graph) StationCount() int {
	return len(g.stations)
}

func (g *Graph) EdgeCount() int {
	count := 0
	for _, edges := range g.edges {
		count += len(edges)
	}

	return count
}
