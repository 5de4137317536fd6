package ctdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func networkSnapshot(t *testing.T, surcharge int, sections ...*Section) NetworkSnapshot {
	t.Helper()

	line := &Line{ID: 1, Name: "신분당선", Surcharge: surcharge, Sections: NewSections()}
	for _, section := range sections {
		require.NoError(t, line.Sections.Add(section))
	}

	snapshot, err := line.Snapshot()
	require.NoError(t, err)

	return NetworkSnapshot{Lines: []LineSnapshot{snapshot}, Timestamp: time.Now()}
}

func TestNetworkSnapshotFingerprint(t *testing.T) {
	base := networkSnapshot(t, 900,
		mustSection(t, gangnam, yangjae, 4),
		mustSection(t, yangjae, pangyo, 6),
	)

	// Same chain built from the other end and at another time
	reordered := networkSnapshot(t, 900,
		mustSection(t, yangjae, pangyo, 6),
		mustSection(t, gangnam, yangjae, 4),
	)
	assert.Equal(t, base.Fingerprint(), reordered.Fingerprint())

	longer := networkSnapshot(t, 900,
		mustSection(t, gangnam, yangjae, 5),
		mustSection(t, yangjae, pangyo, 6),
	)
	assert.NotEqual(t, base.Fingerprint(), longer.Fingerprint())

	cheaper := networkSnapshot(t, 0,
		mustSection(t, gangnam, yangjae, 4),
		mustSection(t, yangjae, pangyo, 6),
	)
	assert.NotEqual(t, base.Fingerprint(), cheaper.Fingerprint())

	merged := networkSnapshot(t, 900, mustSection(t, gangnam, pangyo, 10))
	assert.NotEqual(t, base.Fingerprint(), merged.Fingerprint())
}
