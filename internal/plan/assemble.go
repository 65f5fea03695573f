package plan

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lkoehler/ladeplan/constants"
	"github.com/lkoehler/ladeplan/internal/entity"
	"github.com/lkoehler/ladeplan/internal/extract"
)

// Assemble concatenates per-page extraction results into one flat loading
// plan. Pages without a recognizable header contribute nothing; empty slots
// are dropped. Every recognized entry becomes exactly one record, in
// document order.
func Assemble(filename string, pages []extract.PageText) *entity.LoadingPlan {
	p := &entity.LoadingPlan{
		ID:         uuid.New(),
		Filename:   filename,
		UploadedAt: time.Now().UTC(),
	}

	truckIDs := map[string]struct{}{}
	truckTypes := map[string]struct{}{}
	insertTypes := map[string]struct{}{}

	for _, page := range pages {
		if page.Number > p.Pages {
			p.Pages = page.Number
		}
		hdr, ok := extract.ParseHeader(page.Lines)
		if !ok {
			continue
		}
		truckIDs[hdr.TruckID] = struct{}{}
		truckTypes[hdr.TruckType] = struct{}{}

		for _, line := range page.Lines {
			if isMetadataLine(line) {
				continue
			}
			for _, slot := range extract.ParseRow(line) {
				if slot.Raw == "" {
					continue
				}
				rec := newRecord(slot, hdr, page.Number)
				if rec.IsInsert {
					insertTypes[rec.InsertType] = struct{}{}
				}
				p.Records = append(p.Records, rec)
			}
		}
	}

	p.TruckIDs = sortedKeys(truckIDs)
	p.TruckTypes = sortedKeys(truckTypes)
	p.InsertTypes = sortedKeys(insertTypes)
	return p
}

// isMetadataLine filters the unit header lines out of the position-row
// scan; their bare numbers ("PB 100") would otherwise read as components.
func isMetadataLine(line string) bool {
	return strings.Contains(line, "Pritsche:") || strings.Contains(line, "Anhänger:")
}

func newRecord(slot extract.Slot, hdr extract.Header, page int) entity.ComponentRecord {
	rec := entity.ComponentRecord{
		ComponentID: slot.Raw,
		Weight:      slot.Weight,
		TruckID:     hdr.TruckID,
		TruckType:   hdr.TruckType,
		TrailerID:   hdr.TrailerID,
		Page:        page,
	}
	switch {
	case strings.HasPrefix(slot.Raw, constants.LabelInsert+" "):
		rec.IsInsert = true
		rec.InsertType = slot.Raw
		rec.Description = slot.Raw
	case strings.HasPrefix(slot.Raw, constants.LabelBundle):
		rec.IsBundle = true
		rec.Description = slot.Raw
	case strings.Contains(slot.Raw, "*"):
		// trailing star marks a pipe position
		rec.IsPipe = true
	}
	return rec
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
