package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lkoehler/ladeplan/constants"
)

// Slot is one of the four component positions of a position row. Raw is
// empty when the slot held a "." placeholder or nothing recognizable;
// Weight is nil when the matching weight column was absent or not numeric.
type Slot struct {
	Raw    string
	Weight *float64
}

var (
	positionRe  = regexp.MustCompile(`^[1-7]\b`)
	componentRe = regexp.MustCompile(`^\d+\*?$`)
)

// ParseRow applies the position-row heuristic to one text line and returns
// exactly SlotsPerRow slots (some possibly empty). Lines that are not
// position rows come back as all-empty slots; the caller drops those.
//
// Expected shape, e.g.:
//
//	4 L 1 10 264.541 510.330 0.000 0.000 170 2152 5852
//	7 10 Bund 1 3 . ...
//
// The optional leading token is the row number (1-7), optionally followed
// by a side marker L/R. The last seven tokens are numeric columns; the
// first four of those are the per-slot weights.
func ParseRow(line string) []Slot {
	slots := make([]Slot, constants.SlotsPerRow)

	tokens := strings.Fields(line)
	if len(tokens) < 3 {
		return slots
	}

	main := tokens
	if positionRe.MatchString(tokens[0]) {
		if _, side := constants.SideMarkers[tokens[1]]; side {
			main = tokens[2:]
		} else {
			main = tokens[1:]
		}
	}

	// Split off the trailing numeric block when present. Rows shorter than
	// the full column count still get their slots scanned, just weightless.
	weights := make([]*float64, constants.WeightColumns)
	elems := main
	if len(main) >= constants.TrailingColumns {
		raw := main[len(main)-constants.TrailingColumns : len(main)-constants.TrailingColumns+constants.WeightColumns]
		for i, w := range raw {
			weights[i] = parseWeight(w)
		}
		elems = main[:len(main)-constants.TrailingColumns]
	}

	filled := 0
	for i := 0; i < len(elems) && filled < constants.SlotsPerRow; i++ {
		tok := elems[i]

		if constants.IsFooterKeyword(tok) {
			break
		}

		switch {
		case tok == ".":
			// empty slot, keeps the weight column alignment
			filled++
		case (tok == constants.LabelInsert || tok == constants.LabelBundle) && i+1 < len(elems):
			slots[filled] = Slot{Raw: tok + " " + elems[i+1], Weight: weights[filled]}
			filled++
			i++
		case componentRe.MatchString(tok):
			slots[filled] = Slot{Raw: tok, Weight: weights[filled]}
			filled++
		case strings.HasPrefix(tok, constants.LabelInsert) || strings.HasPrefix(tok, constants.LabelBundle):
			slots[filled] = Slot{Raw: tok, Weight: weights[filled]}
			filled++
		default:
			// unknown token, not a slot entry
		}
	}
	return slots
}

// parseWeight returns nil for anything that is not a plain number.
// Missing stays missing; it is never coerced to zero.
func parseWeight(tok string) *float64 {
	w, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil
	}
	return &w
}
