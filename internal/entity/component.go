package entity

// ComponentRecord is one extracted loading-plan entry for data transfer
// between layers. Weight is nil when the source cell was missing or not
// numeric; it is never coerced to zero.
type ComponentRecord struct {
	ComponentID string   `json:"component_id"`
	Description string   `json:"description,omitempty"`
	Weight      *float64 `json:"weight_kg,omitempty"`
	TruckID     string   `json:"assigned_truck_id"`
	TruckType   string   `json:"truck_type"`
	TrailerID   string   `json:"assigned_trailer_id,omitempty"`
	Page        int      `json:"page_number"`
	IsInsert    bool     `json:"is_insert,omitempty"`
	InsertType  string   `json:"insert_type,omitempty"`
	IsBundle    bool     `json:"is_bundle,omitempty"`
	IsPipe      bool     `json:"is_pipe,omitempty"`
}

// WeightOrZero returns the weight for aggregation, treating missing as 0.
// Display and export layers must keep rendering missing weights as blank.
func (r ComponentRecord) WeightOrZero() float64 {
	if r.Weight == nil {
		return 0
	}
	return *r.Weight
}
