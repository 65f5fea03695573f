package plan

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lkoehler/ladeplan/internal/entity"
)

// Filter is one set of column selections over an assembled plan. The zero
// value selects everything visible (all truck types, bundles hidden).
type Filter struct {
	// TruckTypes restricts records to these truck-type prefixes; empty
	// means all types.
	TruckTypes []string
	// TruckID restricts records to one exact unit id.
	TruckID string
	// ExcludeInserts drops insert records of these types ("Einlage 80").
	ExcludeInserts []string
	// IncludeBundles keeps "Bund n" records in the visible table. They are
	// excluded by default but always feed the per-truck summary info.
	IncludeBundles bool
}

// Apply recomputes the visible subset of the plan's records for this filter
// and returns it sorted by truck and component. The plan itself is never
// modified.
func Apply(p *entity.LoadingPlan, f Filter) []entity.ComponentRecord {
	base := filterBase(p.Records, f)
	visible := make([]entity.ComponentRecord, 0, len(base))
	for _, r := range base {
		if r.IsBundle && !f.IncludeBundles {
			continue
		}
		visible = append(visible, r)
	}
	sortRecords(visible)
	return visible
}

// BundleRecords returns the bundle entries surviving the truck selections,
// regardless of IncludeBundles. The summary view lists them as info.
func BundleRecords(p *entity.LoadingPlan, f Filter) []entity.ComponentRecord {
	var out []entity.ComponentRecord
	for _, r := range filterBase(p.Records, f) {
		if r.IsBundle {
			out = append(out, r)
		}
	}
	return out
}

func filterBase(records []entity.ComponentRecord, f Filter) []entity.ComponentRecord {
	types := toSet(f.TruckTypes)
	excluded := toSet(f.ExcludeInserts)

	out := make([]entity.ComponentRecord, 0, len(records))
	for _, r := range records {
		if len(types) > 0 {
			if _, ok := types[r.TruckType]; !ok {
				continue
			}
		}
		if f.TruckID != "" && r.TruckID != f.TruckID {
			continue
		}
		if r.IsInsert {
			if _, drop := excluded[r.InsertType]; drop {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func toSet(vals []string) map[string]struct{} {
	if len(vals) == 0 {
		return nil
	}
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			m[v] = struct{}{}
		}
	}
	return m
}

var truckNumRe = regexp.MustCompile(`\d+`)

// sortRecords orders by truck type, truck number, numeric component value
// (text components last), then raw id.
func sortRecords(records []entity.ComponentRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.TruckType != b.TruckType {
			return a.TruckType < b.TruckType
		}
		if an, bn := truckNumber(a.TruckID), truckNumber(b.TruckID); an != bn {
			return an < bn
		}
		if av, bv := componentSortValue(a.ComponentID), componentSortValue(b.ComponentID); av != bv {
			return av < bv
		}
		return a.ComponentID < b.ComponentID
	})
}

func truckNumber(id string) int {
	m := truckNumRe.FindString(id)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// componentSortValue puts numeric ids in natural order and text entries
// (inserts, bundles) at the end.
func componentSortValue(id string) float64 {
	clean := strings.TrimSpace(strings.ReplaceAll(id, "*", ""))
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 999999
	}
	return v
}
