package plan

import (
	"sort"
	"strings"

	"github.com/lkoehler/ladeplan/internal/entity"
)

// Summarize aggregates the visible records per truck/trailer unit. Bundle
// records (filtered separately, see BundleRecords) show up as the Info
// column of the unit they ride on. Missing weights contribute nothing to
// the totals.
func Summarize(visible, bundles []entity.ComponentRecord) []entity.TruckSummary {
	byTruck := map[string]*entity.TruckSummary{}
	order := []string{}

	for _, r := range visible {
		s, ok := byTruck[r.TruckID]
		if !ok {
			s = &entity.TruckSummary{TruckID: r.TruckID}
			byTruck[r.TruckID] = s
			order = append(order, r.TruckID)
		}
		s.Count++
		s.TotalWeightKg += r.WeightOrZero()
	}

	info := map[string][]string{}
	for _, b := range bundles {
		if !contains(info[b.TruckID], b.ComponentID) {
			info[b.TruckID] = append(info[b.TruckID], b.ComponentID)
		}
	}

	sort.Strings(order)
	out := make([]entity.TruckSummary, 0, len(order))
	for _, id := range order {
		s := *byTruck[id]
		s.Info = strings.Join(info[id], ", ")
		out = append(out, s)
	}
	return out
}

// Total folds the per-truck summaries into one grand-total row.
func Total(sums []entity.TruckSummary) entity.TruckSummary {
	t := entity.TruckSummary{TruckID: "Gesamt"}
	for _, s := range sums {
		t.Count += s.Count
		t.TotalWeightKg += s.TotalWeightKg
	}
	return t
}

func contains(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
