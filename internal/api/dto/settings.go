package dto

type CostRange struct {
	FromKm    int   `json:"from_km"`
	ToKm      *int  `json:"to_km"`
	CostPerKm int64 `json:"cost_per_km"`
}

type Supplement struct {
	Kind        string `json:"kind"`
	Percentage  int    `json:"percentage"`
	FixedAmount int64  `json:"fixed_amount"`
	Active      bool   `json:"active"`
}

type SettingsPayload struct {
	ProfessionalID int64        `json:"professional_id"`
	BaseCost       int64        `json:"base_cost"`
	FreeDistanceKm int          `json:"free_distance_km"`
	Active         bool         `json:"active"`
	CostRanges     []CostRange  `json:"cost_ranges"`
	Supplements    []Supplement `json:"supplements"`
}
