package entity

import (
	"time"

	"github.com/google/uuid"
)

// LoadingPlan is the assembled table for one uploaded PDF. It is built once
// by the assembler and never mutated afterwards; filtering always works on
// copies of Records.
type LoadingPlan struct {
	ID         uuid.UUID         `json:"id"`
	Filename   string            `json:"filename"`
	UploadedAt time.Time         `json:"uploaded_at"`
	Pages      int               `json:"pages"`
	Records    []ComponentRecord `json:"records"`

	// Distinct values for the filter widgets, sorted ascending.
	TruckIDs    []string `json:"truck_ids"`
	TruckTypes  []string `json:"truck_types"`
	InsertTypes []string `json:"insert_types"`
}

// Empty reports whether extraction found no recognizable entries.
func (p *LoadingPlan) Empty() bool {
	return len(p.Records) == 0
}

// TruckSummary aggregates the visible components of one truck/trailer unit.
type TruckSummary struct {
	TruckID       string  `json:"truck_id"`
	Count         int     `json:"count"`
	TotalWeightKg float64 `json:"total_weight_kg"`
	Info          string  `json:"info,omitempty"`
}
