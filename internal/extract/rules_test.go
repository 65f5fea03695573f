package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRow_PositionWithSideMarker(t *testing.T) {
	// position 4, left side, two components, two empty slots
	slots := ParseRow("4 L 1 10 264.541 510.330 0.000 0.000 170 2152 5852")
	require.Len(t, slots, 4)

	assert.Equal(t, "1", slots[0].Raw)
	require.NotNil(t, slots[0].Weight)
	assert.InDelta(t, 264.541, *slots[0].Weight, 1e-9)

	assert.Equal(t, "10", slots[1].Raw)
	require.NotNil(t, slots[1].Weight)
	assert.InDelta(t, 510.330, *slots[1].Weight, 1e-9)

	assert.Empty(t, slots[2].Raw)
	assert.Empty(t, slots[3].Raw)
}

func TestParseRow_FourSlotsWithInsertAndPipe(t *testing.T) {
	slots := ParseRow("2 L 101 102* Einlage 80 . 10.5 20.5 30.5 40.5 170 2152 5852")
	require.Len(t, slots, 4)

	assert.Equal(t, "101", slots[0].Raw)
	assert.InDelta(t, 10.5, *slots[0].Weight, 1e-9)

	assert.Equal(t, "102*", slots[1].Raw)
	assert.InDelta(t, 20.5, *slots[1].Weight, 1e-9)

	assert.Equal(t, "Einlage 80", slots[2].Raw)
	assert.InDelta(t, 30.5, *slots[2].Weight, 1e-9)

	// fourth slot is the "." placeholder
	assert.Empty(t, slots[3].Raw)
}

func TestParseRow_MalformedWeightIsMissingNotZero(t *testing.T) {
	slots := ParseRow("3 7 8 . . 5.5 abc 0.0 0.0 170 2152 5852")
	require.Len(t, slots, 4)

	require.NotNil(t, slots[0].Weight)
	assert.InDelta(t, 5.5, *slots[0].Weight, 1e-9)

	assert.Equal(t, "8", slots[1].Raw)
	assert.Nil(t, slots[1].Weight, "non-numeric weight must stay missing")
}

func TestParseRow_ZeroWeightStaysZero(t *testing.T) {
	slots := ParseRow("1 12 . . . 0.000 0.0 0.0 0.0 170 2152 5852")
	require.NotNil(t, slots[0].Weight)
	assert.Equal(t, 0.0, *slots[0].Weight)
}

func TestParseRow_HeaderRowWithoutPositionNumber(t *testing.T) {
	// lines that do not start with a 1-7 position number are scanned as-is
	slots := ParseRow("Einlage 80 . 1 . 50.0 0.0 0.0 0.0 170 2152 5852")
	require.Len(t, slots, 4)

	assert.Equal(t, "Einlage 80", slots[0].Raw)
	assert.InDelta(t, 50.0, *slots[0].Weight, 1e-9)
	assert.Empty(t, slots[1].Raw)
	assert.Equal(t, "1", slots[2].Raw)
	assert.Empty(t, slots[3].Raw)
}

func TestParseRow_BundleEntry(t *testing.T) {
	slots := ParseRow("5 Bund 2 . . . 12.0 0 0 0 170 2152 5852")
	assert.Equal(t, "Bund 2", slots[0].Raw)
	require.NotNil(t, slots[0].Weight)
	assert.InDelta(t, 12.0, *slots[0].Weight, 1e-9)
}

func TestParseRow_ShortRowWithoutWeightColumns(t *testing.T) {
	// fewer than seven trailing tokens: slots still found, weights missing
	slots := ParseRow("6 11 12 13")
	assert.Equal(t, "11", slots[0].Raw)
	assert.Nil(t, slots[0].Weight)
	assert.Equal(t, "12", slots[1].Raw)
	assert.Equal(t, "13", slots[2].Raw)
}

func TestParseRow_FooterKeywordStopsScan(t *testing.T) {
	slots := ParseRow("Gesammtgewicht ca.: 12 Tonnen")
	for _, s := range slots {
		assert.Empty(t, s.Raw)
	}
}

func TestParseRow_UnmatchedLinesAreSkippedSilently(t *testing.T) {
	for _, line := range []string{
		"",
		"x y",
		"Unternehmer Mustermann GmbH",
	} {
		for _, s := range ParseRow(line) {
			assert.Empty(t, s.Raw, "line %q", line)
		}
	}
}
