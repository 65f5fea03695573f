package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader_CanonicalTruckID(t *testing.T) {
	hdr, ok := ParseHeader([]string{
		"Verladeplan Baustelle Nord",
		"Pritsche: PB 100 Unternehmer Mustermann GmbH",
	})
	require.True(t, ok)
	assert.Equal(t, "PB100", hdr.TruckID)
	assert.Equal(t, "PB", hdr.TruckType)
	assert.Equal(t, "PB 100", hdr.Raw)
	assert.Empty(t, hdr.TrailerID)
}

func TestParseHeader_WithTrailer(t *testing.T) {
	hdr, ok := ParseHeader([]string{
		"Pritsche: PW 3 Unternehmer Beispiel AG",
		"Anhänger: AH 12",
	})
	require.True(t, ok)
	assert.Equal(t, "PW3", hdr.TruckID)
	assert.Equal(t, "PW", hdr.TruckType)
	assert.Equal(t, "AH12", hdr.TrailerID)
}

func TestParseHeader_UnnumberedUnitFallsBackToFirstWord(t *testing.T) {
	hdr, ok := ParseHeader([]string{"Pritsche: Sonderfahrzeug Unternehmer X"})
	require.True(t, ok)
	assert.Equal(t, "Sonderfahrzeug", hdr.TruckID)
}

func TestParseHeader_MissingHeader(t *testing.T) {
	_, ok := ParseHeader([]string{"1 10 20 . . 1.0 2.0 0 0 170 2152 5852"})
	assert.False(t, ok)
}
