package journeygraph

import (
	"fmt"
	"math"

	"github.com/travigo/subway/pkg/ctdf"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

type Path struct {
	Stations []ctdf.Station
	Distance int

	// Surcharge is the highest surcharge among the lines travelled on
	Surcharge int
	Lines     []ctdf.LineID
}

// ShortestPath runs Dijkstra by cumulative distance. Neighbours are relaxed in
// station id order and a predecessor is only replaced by a strictly shorter
// route, so equal distance alternatives always resolve the same way. Parallel
// sections between two stations are travelled on the shortest one, lowest line id first.
func (g *Graph) ShortestPath(source ctdf.StationID, target ctdf.StationID) (*Path, error) {
	if source == target {
		return nil, fmt.Errorf("path %d -> %d: %w", source, target, ctdf.ErrSameStation)
	}
	if _, exists := g.stations[source]; !exists {
		return nil, fmt.Errorf("source station %d is not on any line: %w", source, ctdf.ErrStationNotFound)
	}
	if _, exists := g.stations[target]; !exists {
		return nil, fmt.Errorf("target station %d is not on any line: %w", target, ctdf.ErrStationNotFound)
	}

	nodes, weight := path.DijkstraFromTo(simple.Node(source), simple.Node(target), routeGraph{g})
	if len(nodes) == 0 || math.IsInf(weight, 1) {
		return nil, fmt.Errorf("path %d -> %d: %w", source, target, ctdf.ErrNoPath)
	}

	return g.buildPath(nodes), nil
}

// buildPath assigns every hop of a station sequence to the section it was
// travelled on.
func (g *Graph) buildPath(nodes []graph.Node) *Path {
	path := &Path{
		Stations: make([]ctdf.Station, 0, len(nodes)),
	}
	path.Stations = append(path.Stations, g.stations[ctdf.StationID(nodes[0].ID())])

	for i := 1; i < len(nodes); i++ {
		edge, _ := g.shortestEdge(ctdf.StationID(nodes[i-1].ID()), ctdf.StationID(nodes[i].ID()))

		path.Stations = append(path.Stations, g.stations[edge.To])
		path.Distance += edge.Distance

		if edge.Surcharge > path.Surcharge {
			path.Surcharge = edge.Surcharge
		}
		if len(path.Lines) == 0 || path.Lines[len(path.Lines)-1] != edge.LineRef {
			path.Lines = append(path.Lines, edge.LineRef)
		}
	}

	return path
}

// shortestEdge picks the shortest arc between two adjacent stations. Edges are
// sorted by line so the lowest line id wins among equal distances.
func (g *Graph) shortestEdge(from ctdf.StationID, to ctdf.StationID) (Edge, bool) {
	var shortest Edge
	found := false

	for _, edge := range g.edges[from] {
		if edge.To != to {
			continue
		}
		if !found || edge.Distance < shortest.Distance {
			shortest = edge
			found = true
		}
	}

	return shortest, found
}

// routeGraph exposes Graph to gonum's path search
type routeGraph struct {
	*Graph
}

func (r routeGraph) From(id int64) graph.Nodes {
	edges := r.edges[ctdf.StationID(id)]
	if len(edges) == 0 {
		return graph.Empty
	}

	// Edges are sorted by neighbour so duplicates are adjacent
	neighbours := make([]graph.Node, 0, len(edges))
	for i, edge := range edges {
		if i > 0 && edges[i-1].To == edge.To {
			continue
		}
		neighbours = append(neighbours, simple.Node(edge.To))
	}

	return iterator.NewOrderedNodes(neighbours)
}

func (r routeGraph) Edge(uid int64, vid int64) graph.Edge {
	if _, exists := r.shortestEdge(ctdf.StationID(uid), ctdf.StationID(vid)); !exists {
		return nil
	}

	return simple.Edge{F: simple.Node(uid), T: simple.Node(vid)}
}

func (r routeGraph) Weight(xid int64, yid int64) (float64, bool) {
	if xid == yid {
		return 0, true
	}

	edge, exists := r.shortestEdge(ctdf.StationID(xid), ctdf.StationID(yid))
	if !exists {
		return math.Inf(1), false
	}

	return float64(edge.Distance), true
}
