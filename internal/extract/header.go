package extract

import (
	"regexp"
	"strings"
)

// Header identifies the truck/trailer unit a page's position table belongs to.
type Header struct {
	// TruckID is the canonical unit id with whitespace collapsed, e.g. "PB100".
	TruckID string
	// TruckType is the letter prefix of the unit, e.g. "PB".
	TruckType string
	// TrailerID is the optional attached trailer unit; empty when the page
	// names none.
	TrailerID string
	// Raw is the full text between the Pritsche label and the contractor field.
	Raw string
}

var (
	headerRe    = regexp.MustCompile(`Pritsche:\s*(.+?)\s+Unternehmer`)
	unitIDRe    = regexp.MustCompile(`([A-ZÄÖÜ]+\s*\d+)`)
	typeRe      = regexp.MustCompile(`^([A-ZÄÖÜ]+)`)
	trailerRe   = regexp.MustCompile(`Anhänger:?\s*([A-ZÄÖÜ]+\s*\d+)`)
	whitespaces = regexp.MustCompile(`\s+`)
)

// ParseHeader scans a page's lines for the "Pritsche: ... Unternehmer"
// header. Pages without it carry no position table and are skipped.
func ParseHeader(lines []string) (Header, bool) {
	text := strings.Join(lines, "\n")

	m := headerRe.FindStringSubmatch(text)
	if m == nil {
		return Header{}, false
	}
	raw := strings.TrimSpace(m[1])

	// "PB 100" -> "PB100"; fall back to the first word for unnumbered units.
	truckID := raw
	if im := unitIDRe.FindStringSubmatch(raw); im != nil {
		truckID = whitespaces.ReplaceAllString(im[1], "")
	} else if fields := strings.Fields(raw); len(fields) > 0 {
		truckID = fields[0]
	}

	truckType := truckID
	if tm := typeRe.FindStringSubmatch(truckID); tm != nil {
		truckType = tm[1]
	}

	trailerID := ""
	if am := trailerRe.FindStringSubmatch(text); am != nil {
		trailerID = whitespaces.ReplaceAllString(am[1], "")
	}

	return Header{TruckID: truckID, TruckType: truckType, TrailerID: trailerID, Raw: raw}, true
}
