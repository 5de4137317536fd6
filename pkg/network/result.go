package network

import (
	"encoding/json"

	"github.com/liip/sheriff"
	"github.com/travigo/subway/pkg/ctdf"
)

type PathResult struct {
	Stations []ctdf.Station `groups:"basic,detailed"`
	Distance int            `groups:"basic,detailed"`
	Fare     int            `groups:"basic,detailed"`

	Surcharge int           `groups:"detailed"`
	Lines     []ctdf.LineID `groups:"detailed"`
	AgeBand   string        `groups:"detailed"`
}

// Render encodes the result as JSON, leaving out the surcharge and line
// breakdown unless detailed output is asked for.
func (r *PathResult) Render(detailed bool) ([]byte, error) {
	group := "basic"
	if detailed {
		group = "detailed"
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{group},
	}, r)
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(reduced, "", "  ")
}
