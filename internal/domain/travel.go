package domain

import "time"

// TravelInfo is a priced route between a professional's origin and a request
// location. It is produced fresh on every computation and never cached, since
// addresses may shift and rates may change between requests.
type TravelInfo struct {
	// Kilometers, rounded to 2 decimal places.
	DistanceKm float64
	// Whole minutes, rounded to the nearest minute.
	DurationMinutes int
	// Minor currency units.
	Cost int64
}

// TimeContext carries the boolean flags that trigger supplements.
type TimeContext struct {
	Weekend bool
	Night   bool
	Holiday bool
	Urgent  bool
}

// Night hours for the NIGHT supplement (local time of the appointment).
const (
	nightStartHour = 22
	nightEndHour   = 6
)

// TimeContextAt derives weekend/night flags from an appointment time.
// Holidays have no embedded calendar, so the flag stays false; callers with a
// holiday source set it themselves.
func TimeContextAt(t time.Time, urgent bool) TimeContext {
	wd := t.Weekday()
	return TimeContext{
		Weekend: wd == time.Saturday || wd == time.Sunday,
		Night:   t.Hour() >= nightStartHour || t.Hour() < nightEndHour,
		Urgent:  urgent,
	}
}

// SupplementCharge is one applied surcharge in a price breakdown.
type SupplementCharge struct {
	Kind   SupplementKind
	Amount int64
}

// PriceBreakdown is the itemized result of the tiered travel pricer.
// Total == BaseCost + DistanceCost + sum of supplement amounts, exactly.
type PriceBreakdown struct {
	BaseCost     int64
	DistanceCost int64
	Supplements  []SupplementCharge
	Total        int64
}
