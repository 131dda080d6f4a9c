package domain

// SupplementKind identifies the time-context trigger of a surcharge.
type SupplementKind string

const (
	SupplementWeekend SupplementKind = "WEEKEND"
	SupplementNight   SupplementKind = "NIGHT"
	SupplementHoliday SupplementKind = "HOLIDAY"
	SupplementUrgent  SupplementKind = "URGENT"
)

// CostRange is a [FromKm, ToKm) distance band with its own per-kilometer rate.
// A nil ToKm means the band is unbounded. Range sets are treated as unsorted
// input; consumers sort by FromKm ascending before use.
type CostRange struct {
	FromKm int
	ToKm   *int
	// Minor currency units per kilometer.
	CostPerKm int64
}

// Supplement is a conditional surcharge: a percentage of the running subtotal
// plus a fixed amount, applied when its time-context flag is true and the
// supplement is marked active.
type Supplement struct {
	Kind        SupplementKind
	Percentage  int
	FixedAmount int64
	Active      bool
}

// TravelCostSettings is a professional's travel pricing configuration.
// All monetary fields are integer minor currency units.
//
// A settings record exists implicitly with hard-coded defaults until the
// professional explicitly saves a configuration.
type TravelCostSettings struct {
	ProfessionalID int64
	BaseCost       int64
	FreeDistanceKm int
	Active         bool
	CostRanges     []CostRange
	Supplements    []Supplement
}

// Default travel pricing applied when a professional has never saved a
// configuration or the settings store is unreachable.
const (
	DefaultBaseCost  int64 = 1000
	DefaultRatePerKm int64 = 50
)

func intPtr(v int) *int { return &v }

// DefaultSettings returns the hard-coded fallback configuration. It is never
// persisted; it only exists in the response.
func DefaultSettings(professionalID int64) *TravelCostSettings {
	return &TravelCostSettings{
		ProfessionalID: professionalID,
		BaseCost:       DefaultBaseCost,
		FreeDistanceKm: 0,
		Active:         false,
		CostRanges: []CostRange{
			{FromKm: 0, ToKm: intPtr(10), CostPerKm: 100},
			{FromKm: 10, ToKm: intPtr(50), CostPerKm: 80},
			{FromKm: 50, ToKm: nil, CostPerKm: 60},
		},
		Supplements: []Supplement{
			{Kind: SupplementWeekend, Percentage: 20, Active: false},
			{Kind: SupplementNight, Percentage: 30, Active: false},
			{Kind: SupplementHoliday, Percentage: 50, Active: false},
			{Kind: SupplementUrgent, FixedAmount: 2000, Active: false},
		},
	}
}
