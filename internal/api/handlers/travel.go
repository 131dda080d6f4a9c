package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"travel-cost-service/internal/api/dto"
	"travel-cost-service/internal/domain"
	"travel-cost-service/internal/platform/obs"
	"travel-cost-service/internal/services"
)

// TravelHandler exposes travel info computation and quoting endpoints.
type TravelHandler struct {
	Calculator *services.TravelCalculator
	Settings   *services.SettingsService
}

// Compute prices one professional -> request route. An unresolvable route is
// a 200 with a null travel_info, so the UI can show "complete your address"
// instead of an error banner.
func (h *TravelHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req dto.TravelInfoRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.ProfessionalID <= 0 || req.RequestID <= 0 {
		writeError(w, r, http.StatusBadRequest, "professional_id and request_id must be positive integers")
		return
	}

	info, err := h.Calculator.ComputeForRequest(r.Context(), req.ProfessionalID, req.RequestID)
	if err != nil {
		log.Printf("compute travel info failed: %v", err)
		obs.TravelQuotesTotal.WithLabelValues("error").Inc()
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if info == nil {
		obs.TravelQuotesTotal.WithLabelValues("unresolvable").Inc()
	} else {
		obs.TravelQuotesTotal.WithLabelValues("priced").Inc()
	}

	writeJSON(w, r, http.StatusOK, dto.TravelInfoResponse{TravelInfo: travelInfoToDTO(info)})
}

// ComputeBatch prices many requests against one professional; failures are
// isolated per item.
func (h *TravelHandler) ComputeBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchTravelInfoRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.ProfessionalID <= 0 {
		writeError(w, r, http.StatusBadRequest, "professional_id must be a positive integer")
		return
	}
	if len(req.RequestIDs) == 0 {
		writeJSON(w, r, http.StatusOK, dto.BatchTravelInfoResponse{Results: []dto.BatchTravelInfoItem{}})
		return
	}
	if len(req.RequestIDs) > 100 {
		writeError(w, r, http.StatusBadRequest, "request_ids must contain at most 100 entries")
		return
	}

	results := h.Calculator.ComputeBatch(r.Context(), req.ProfessionalID, req.RequestIDs)

	res := dto.BatchTravelInfoResponse{Results: make([]dto.BatchTravelInfoItem, 0, len(results))}
	for _, item := range results {
		res.Results = append(res.Results, dto.BatchTravelInfoItem{
			RequestID:  item.RequestID,
			TravelInfo: travelInfoToDTO(item.TravelInfo),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Quote runs the tiered pricer against the professional's settings for a
// known distance.
func (h *TravelHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.ProfessionalID <= 0 {
		writeError(w, r, http.StatusBadRequest, "professional_id must be a positive integer")
		return
	}
	if req.DistanceKm < 0 {
		writeError(w, r, http.StatusBadRequest, "distance_km must not be negative")
		return
	}

	settings := h.Settings.Get(r.Context(), req.ProfessionalID)
	breakdown := services.PriceTravel(req.DistanceKm, settings, domain.TimeContext{
		Weekend: req.Weekend,
		Night:   req.Night,
		Holiday: req.Holiday,
		Urgent:  req.Urgent,
	})

	res := dto.QuoteResponse{
		BaseCost:     breakdown.BaseCost,
		DistanceCost: breakdown.DistanceCost,
		Supplements:  make([]dto.SupplementCharge, 0, len(breakdown.Supplements)),
		Total:        breakdown.Total,
	}
	for _, c := range breakdown.Supplements {
		res.Supplements = append(res.Supplements, dto.SupplementCharge{
			Kind:   string(c.Kind),
			Amount: c.Amount,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func travelInfoToDTO(info *domain.TravelInfo) *dto.TravelInfo {
	if info == nil {
		return nil
	}
	return &dto.TravelInfo{
		DistanceKm:      info.DistanceKm,
		DurationMinutes: info.DurationMinutes,
		Cost:            info.Cost,
	}
}

// decodeBody enforces POST with a single strict JSON object body.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	return true
}
