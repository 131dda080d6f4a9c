package domain

import (
	"testing"
	"time"
)

func TestAddressComplete(t *testing.T) {
	full := Address{Line: "Via Roma 12", City: "Torino", Province: "TO", PostalCode: "10121"}
	if !full.Complete() {
		t.Fatal("expected complete address")
	}

	partials := []Address{
		{},
		{Line: "Via Roma 12"},
		{Line: "Via Roma 12", City: "Torino", Province: "TO"},
		{Line: "Via Roma 12", City: "Torino", Province: "  ", PostalCode: "10121"},
	}
	for _, a := range partials {
		if a.Complete() {
			t.Fatalf("expected incomplete address: %+v", a)
		}
	}
}

func TestAddressSingleLine(t *testing.T) {
	a := Address{Line: "Via  Roma   12", City: "Torino", Province: "TO", PostalCode: "10121"}
	if got := a.SingleLine(); got != "Via Roma 12, 10121, Torino, TO" {
		t.Fatalf("single line = %q", got)
	}
}

func TestWorkProfileOriginSelection(t *testing.T) {
	res := Address{Line: "Via Roma 12", City: "Torino", Province: "TO", PostalCode: "10121"}
	work := Address{Line: "Via Garibaldi 5", City: "Moncalieri", Province: "TO", PostalCode: "10024"}
	resCoords := &Coordinates{Lat: 45.07, Lon: 7.68}
	workCoords := &Coordinates{Lat: 45.00, Lon: 7.69}

	p := &WorkProfile{
		ResidenceAddress:     res,
		ResidenceCoords:      resCoords,
		WorkAddress:          &work,
		WorkCoords:           workCoords,
		UseResidenceAsOrigin: true,
	}

	if p.OriginAddress() != res || p.OriginCoords() != resCoords {
		t.Fatal("expected residence origin")
	}

	p.UseResidenceAsOrigin = false
	if p.OriginAddress() != work || p.OriginCoords() != workCoords {
		t.Fatal("expected work origin")
	}

	// A profile without a declared work address always falls back to residence.
	p.WorkAddress = nil
	if p.OriginAddress() != res || p.OriginCoords() != resCoords {
		t.Fatal("expected residence fallback when work address is absent")
	}
}

func TestTimeContextAt(t *testing.T) {
	saturdayNight := time.Date(2026, 8, 29, 23, 30, 0, 0, time.UTC)
	tc := TimeContextAt(saturdayNight, true)
	if !tc.Weekend || !tc.Night || !tc.Urgent || tc.Holiday {
		t.Fatalf("unexpected context: %+v", tc)
	}

	tuesdayNoon := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	tc = TimeContextAt(tuesdayNoon, false)
	if tc.Weekend || tc.Night || tc.Urgent || tc.Holiday {
		t.Fatalf("unexpected context: %+v", tc)
	}

	earlyMorning := time.Date(2026, 8, 26, 5, 59, 0, 0, time.UTC)
	if tc := TimeContextAt(earlyMorning, false); !tc.Night {
		t.Fatalf("05:59 should be night: %+v", tc)
	}
}

func TestDefaultSettingsShape(t *testing.T) {
	s := DefaultSettings(9)

	if s.ProfessionalID != 9 || s.BaseCost != 1000 || s.FreeDistanceKm != 0 || s.Active {
		t.Fatalf("unexpected defaults: %+v", s)
	}

	wantRates := []int64{100, 80, 60}
	for i, r := range s.CostRanges {
		if r.CostPerKm != wantRates[i] {
			t.Fatalf("range %d rate = %d, want %d", i, r.CostPerKm, wantRates[i])
		}
	}
	if s.CostRanges[2].ToKm != nil {
		t.Fatal("last default range must be unbounded")
	}

	kinds := map[SupplementKind]bool{}
	for _, sup := range s.Supplements {
		kinds[sup.Kind] = true
	}
	for _, k := range []SupplementKind{SupplementWeekend, SupplementNight, SupplementHoliday, SupplementUrgent} {
		if !kinds[k] {
			t.Fatalf("missing default supplement %s", k)
		}
	}
}
