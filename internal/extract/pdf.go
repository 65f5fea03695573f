package extract

import (
	"bytes"
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/lkoehler/ladeplan/internal/common"
)

// Compile-time interface check.
var _ TextExtractor = (*PDFExtractor)(nil)

// PDFExtractor reads the text layer of a loading-plan PDF. It reconstructs
// visual lines from positioned text fragments because the position table is
// laid out in columns: fragments sharing a Y coordinate (within tolerance)
// belong to one row, ordered left to right.
type PDFExtractor struct {
	logger *slog.Logger
}

func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

// yTolerance is the max Y distance (in PDF points) between fragments of one line.
const yTolerance = 2.0

// Extract returns per-page text lines. A PDF that cannot be opened yields
// ErrUnreadablePDF; a single page whose content cannot be decoded is skipped.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) ([]PageText, error) {
	if len(data) == 0 {
		return nil, common.NewAppError("PDF_EMPTY", "empty upload", common.ErrUnreadablePDF)
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, common.NewAppError("PDF_OPEN", "could not open PDF", common.ErrUnreadablePDF)
	}

	var pages []PageText
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		lines, err := pageLines(page)
		if err != nil {
			e.logger.Warn("extract.page.skipped", "page", i, "err", err)
			continue
		}
		if len(lines) == 0 {
			continue
		}
		pages = append(pages, PageText{Number: i, Lines: lines})
	}
	return pages, nil
}

type textRow struct {
	y     float64
	frags []pdf.Text
}

func pageLines(page pdf.Page) (_ []string, err error) {
	// The underlying content-stream decoder panics on some malformed pages.
	defer func() {
		if r := recover(); r != nil {
			err = common.WrapError(common.ErrUnreadablePDF, "page content")
		}
	}()

	texts := page.Content().Text
	var rows []textRow
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		placed := false
		for i := range rows {
			if abs(rows[i].y-t.Y) < yTolerance {
				rows[i].frags = append(rows[i].frags, t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, textRow{y: t.Y, frags: []pdf.Text{t}})
		}
	}

	// Top of the page first, then left to right within a row.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row.frags, func(i, j int) bool { return row.frags[i].X < row.frags[j].X })
		lines = append(lines, joinFragments(row.frags))
	}
	return lines, nil
}

// joinFragments assembles glyph-level fragments into a line, inserting a
// space where the horizontal gap to the previous glyph is wider than normal
// intra-word spacing.
func joinFragments(frags []pdf.Text) string {
	var b strings.Builder
	for i, f := range frags {
		if i > 0 {
			prev := frags[i-1]
			threshold := prev.FontSize * 0.25
			if threshold <= 0 {
				threshold = 1.0
			}
			if f.X-(prev.X+prev.W) > threshold {
				b.WriteString(" ")
			}
		}
		b.WriteString(f.S)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
