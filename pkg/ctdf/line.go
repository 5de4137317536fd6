package ctdf

import (
	"cmp"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/jinzhu/copier"
	"golang.org/x/exp/slices"
)

type LineID int64

type Line struct {
	ID    LineID
	Name  string
	Color string

	// Surcharge is added once to the fare of any path travelling on this line
	Surcharge int

	CreationDateTime     time.Time
	ModificationDateTime time.Time

	Sections *Sections
}

func (l *Line) Stations() ([]Station, error) {
	return l.Sections.Stations()
}

func (l *Line) Snapshot() (LineSnapshot, error) {
	var snapshot LineSnapshot
	if err := copier.Copy(&snapshot, l); err != nil {
		return LineSnapshot{}, err
	}
	snapshot.Sections = l.Sections.Snapshot()

	return snapshot, nil
}

type LineSnapshot struct {
	ID        LineID
	Name      string
	Color     string
	Surcharge int

	Sections []Section `copier:"-"`
}

// NetworkSnapshot is an immutable copy of every line taken for a single route query.
type NetworkSnapshot struct {
	Lines     []LineSnapshot
	Timestamp time.Time
}

func (n NetworkSnapshot) SectionCount() int {
	count := 0
	for _, line := range n.Lines {
		count += len(line.Sections)
	}

	return count
}

// Fingerprint identifies the topology of the snapshot: every line with its
// surcharge and sections, independent of the order sections were added in.
// The snapshot timestamp is not part of it.
func (n NetworkSnapshot) Fingerprint() string {
	digest := xxhash.New()

	for _, line := range n.Lines {
		fmt.Fprintf(digest, "line %d %d\n", line.ID, line.Surcharge)

		sections := slices.Clone(line.Sections)
		slices.SortFunc(sections, func(a, b Section) int {
			return cmp.Compare(a.UpStation.ID, b.UpStation.ID)
		})
		for _, section := range sections {
			fmt.Fprintf(digest, "%d %q %d %q %d\n",
				section.UpStation.ID, section.UpStation.Name,
				section.DownStation.ID, section.DownStation.Name,
				section.Distance)
		}
	}

	return strconv.FormatUint(digest.Sum64(), 16)
}
