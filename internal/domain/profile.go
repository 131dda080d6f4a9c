package domain

// WorkProfile holds the travel-related part of a professional's account:
// where they travel from and their flat per-kilometer rate.
//
// Coordinates are write-once-then-cached: once populated they are never
// re-derived unless the underlying address fields change.
type WorkProfile struct {
	ProfessionalID   int64
	ResidenceAddress Address
	ResidenceCoords  *Coordinates
	WorkAddress      *Address
	WorkCoords       *Coordinates
	// Selects which address/coordinate pair is authoritative as travel origin.
	UseResidenceAsOrigin bool
	// Flat travel rate in minor currency units per kilometer; 0 means "not set".
	RatePerKm int64
}

// OriginAddress returns the address the professional travels from.
func (p *WorkProfile) OriginAddress() Address {
	if p.UseResidenceAsOrigin || p.WorkAddress == nil {
		return p.ResidenceAddress
	}
	return *p.WorkAddress
}

// OriginCoords returns the cached origin coordinates, if any.
func (p *WorkProfile) OriginCoords() *Coordinates {
	if p.UseResidenceAsOrigin || p.WorkAddress == nil {
		return p.ResidenceCoords
	}
	return p.WorkCoords
}

// ServiceRequestLocation is the place a service request must be fulfilled at.
// Same caching discipline as WorkProfile coordinates.
type ServiceRequestLocation struct {
	RequestID int64
	Address   Address
	Coords    *Coordinates
}
