package services

import (
	"math"
	"slices"
	"travel-cost-service/internal/domain"
)

// PriceTravel produces an itemized travel cost breakdown for a distance
// under a professional's pricing configuration. Pure function, no I/O:
// identical inputs always produce identical output.
//
// Range cutoffs compare against the absolute travelled distance, not the
// free-distance-shifted one: the free allowance is consumed from the lowest
// bands first and only each band's excess bills at that band's rate. With
// the default-shaped ranges and a 10 km allowance, a 25 km trip bills all
// 15 chargeable kilometers inside the 10-50 band.
//
// Range lists are treated as unsorted input and sorted by FromKm ascending;
// overlaps and gaps are not detected here (validation happens on save).
func PriceTravel(distanceKm float64, settings *domain.TravelCostSettings, tc domain.TimeContext) domain.PriceBreakdown {
	base := settings.BaseCost

	var distanceCost int64
	chargeable := distanceKm - float64(settings.FreeDistanceKm)
	if chargeable > 0 && len(settings.CostRanges) > 0 {
		ranges := make([]domain.CostRange, len(settings.CostRanges))
		copy(ranges, settings.CostRanges)
		slices.SortFunc(ranges, func(a, b domain.CostRange) int {
			return a.FromKm - b.FromKm
		})

		freeLeft := float64(settings.FreeDistanceKm)
		for _, r := range ranges {
			from := float64(r.FromKm)
			if distanceKm <= from {
				break
			}

			upper := distanceKm
			if r.ToKm != nil && float64(*r.ToKm) < upper {
				upper = float64(*r.ToKm)
			}

			span := upper - from
			if span <= 0 {
				continue
			}

			free := math.Min(freeLeft, span)
			freeLeft -= free

			if billable := span - free; billable > 0 {
				distanceCost += int64(math.Round(billable * float64(r.CostPerKm)))
			}
		}
	}

	subtotal := base + distanceCost

	var charges []domain.SupplementCharge
	var totalSupplements int64
	for _, s := range settings.Supplements {
		if !s.Active || !triggered(s.Kind, tc) {
			continue
		}

		// Each supplement applies against base+distance only; supplements
		// never compound against each other's amounts.
		amount := roundPercent(subtotal, s.Percentage) + s.FixedAmount
		charges = append(charges, domain.SupplementCharge{Kind: s.Kind, Amount: amount})
		totalSupplements += amount
	}

	return domain.PriceBreakdown{
		BaseCost:     base,
		DistanceCost: distanceCost,
		Supplements:  charges,
		Total:        subtotal + totalSupplements,
	}
}

func triggered(kind domain.SupplementKind, tc domain.TimeContext) bool {
	switch kind {
	case domain.SupplementWeekend:
		return tc.Weekend
	case domain.SupplementNight:
		return tc.Night
	case domain.SupplementHoliday:
		return tc.Holiday
	case domain.SupplementUrgent:
		return tc.Urgent
	}
	return false
}

// roundPercent computes round(amount * pct / 100) in integer arithmetic.
func roundPercent(amount int64, pct int) int64 {
	return (amount*int64(pct) + 50) / 100
}
