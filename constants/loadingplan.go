package constants

// Layout constants of the Verladeplan position table.
//
// Each position row (numbered 1-7) carries up to four component slots
// followed by seven numeric columns; the first four of those columns are
// the per-slot weights.
const (
	SlotsPerRow     = 4
	TrailingColumns = 7
	WeightColumns   = 4
)

// Side markers that may follow the position number.
var SideMarkers = map[string]struct{}{
	"L": {},
	"R": {},
}

// Labels that start a two-token slot entry ("Einlage 80", "Bund 3").
const (
	LabelInsert = "Einlage"
	LabelBundle = "Bund"
)

// FooterKeywords terminate slot scanning: once one of these appears the rest
// of the line belongs to the page footer, not the position table.
var FooterKeywords = map[string]struct{}{
	"Ladehöhe:":         {},
	"Gesammtgewicht":    {},
	"ca.:":              {},
	"Tonnen":            {},
	"Zusätzliches":      {},
	"Verlade-Material:": {},
	"Bemerkungen:":      {},
}

// IsFooterKeyword reports whether tok marks the start of footer content.
func IsFooterKeyword(tok string) bool {
	_, ok := FooterKeywords[tok]
	return ok
}
