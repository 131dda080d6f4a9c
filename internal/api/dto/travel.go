package dto

type TravelInfoRequest struct {
	ProfessionalID int64 `json:"professional_id"`
	RequestID      int64 `json:"request_id"`
}

type BatchTravelInfoRequest struct {
	ProfessionalID int64   `json:"professional_id"`
	RequestIDs     []int64 `json:"request_ids"`
}

type TravelInfo struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
	Cost            int64   `json:"cost"`
}

// A nil TravelInfo means "cannot price this route yet" (soft state), not an
// error.
type TravelInfoResponse struct {
	TravelInfo *TravelInfo `json:"travel_info"`
}

type BatchTravelInfoItem struct {
	RequestID  int64       `json:"request_id"`
	TravelInfo *TravelInfo `json:"travel_info"`
}

type BatchTravelInfoResponse struct {
	Results []BatchTravelInfoItem `json:"results"`
}

type QuoteRequest struct {
	ProfessionalID int64   `json:"professional_id"`
	DistanceKm     float64 `json:"distance_km"`
	Weekend        bool    `json:"weekend"`
	Night          bool    `json:"night"`
	Holiday        bool    `json:"holiday"`
	Urgent         bool    `json:"urgent"`
}

type SupplementCharge struct {
	Kind   string `json:"kind"`
	Amount int64  `json:"amount"`
}

type QuoteResponse struct {
	BaseCost     int64              `json:"base_cost"`
	DistanceCost int64              `json:"distance_cost"`
	Supplements  []SupplementCharge `json:"supplements"`
	Total        int64              `json:"total"`
}
