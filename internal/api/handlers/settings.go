package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"travel-cost-service/internal/api/dto"
	"travel-cost-service/internal/domain"
	"travel-cost-service/internal/services"
)

// SettingsHandler exposes travel pricing configuration endpoints.
type SettingsHandler struct {
	Service *services.SettingsService
}

// Handle dispatches GET (read, never fails) and PUT (validated save).
func (h *SettingsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.save(w, r)
	default:
		w.Header().Set("Allow", "GET, PUT")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	professionalID, err := strconv.ParseInt(r.URL.Query().Get("professional_id"), 10, 64)
	if err != nil || professionalID <= 0 {
		writeError(w, r, http.StatusBadRequest, "professional_id must be a positive integer")
		return
	}

	// Never a 5xx: missing record and broken store both yield defaults.
	s := h.Service.Get(r.Context(), professionalID)
	writeJSON(w, r, http.StatusOK, settingsToDTO(s))
}

func (h *SettingsHandler) save(w http.ResponseWriter, r *http.Request) {
	var req dto.SettingsPayload

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	settings := settingsFromDTO(&req)
	if err := services.ValidateSettings(settings); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.Service.Save(r.Context(), settings)
	if err != nil {
		log.Printf("save settings failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, settingsToDTO(saved))
}

func settingsToDTO(s *domain.TravelCostSettings) dto.SettingsPayload {
	out := dto.SettingsPayload{
		ProfessionalID: s.ProfessionalID,
		BaseCost:       s.BaseCost,
		FreeDistanceKm: s.FreeDistanceKm,
		Active:         s.Active,
		CostRanges:     make([]dto.CostRange, 0, len(s.CostRanges)),
		Supplements:    make([]dto.Supplement, 0, len(s.Supplements)),
	}
	for _, r := range s.CostRanges {
		out.CostRanges = append(out.CostRanges, dto.CostRange{
			FromKm:    r.FromKm,
			ToKm:      r.ToKm,
			CostPerKm: r.CostPerKm,
		})
	}
	for _, sup := range s.Supplements {
		out.Supplements = append(out.Supplements, dto.Supplement{
			Kind:        string(sup.Kind),
			Percentage:  sup.Percentage,
			FixedAmount: sup.FixedAmount,
			Active:      sup.Active,
		})
	}
	return out
}

func settingsFromDTO(p *dto.SettingsPayload) *domain.TravelCostSettings {
	out := &domain.TravelCostSettings{
		ProfessionalID: p.ProfessionalID,
		BaseCost:       p.BaseCost,
		FreeDistanceKm: p.FreeDistanceKm,
		Active:         p.Active,
		CostRanges:     make([]domain.CostRange, 0, len(p.CostRanges)),
		Supplements:    make([]domain.Supplement, 0, len(p.Supplements)),
	}
	for _, r := range p.CostRanges {
		out.CostRanges = append(out.CostRanges, domain.CostRange{
			FromKm:    r.FromKm,
			ToKm:      r.ToKm,
			CostPerKm: r.CostPerKm,
		})
	}
	for _, sup := range p.Supplements {
		out.Supplements = append(out.Supplements, domain.Supplement{
			Kind:        domain.SupplementKind(sup.Kind),
			Percentage:  sup.Percentage,
			FixedAmount: sup.FixedAmount,
			Active:      sup.Active,
		})
	}
	return out
}
