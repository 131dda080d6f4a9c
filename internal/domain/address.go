package domain

import "strings"

// Postal address a professional or service request can be geocoded from.
// All four fields are required together; a partially filled address is
// "insufficient for geocoding", not an error.
type Address struct {
	Line       string
	City       string
	Province   string
	PostalCode string
}

// Complete reports whether every field carries a non-blank value.
func (a Address) Complete() bool {
	return strings.TrimSpace(a.Line) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.Province) != "" &&
		strings.TrimSpace(a.PostalCode) != ""
}

// SingleLine renders the address as one normalized lookup string.
func (a Address) SingleLine() string {
	parts := []string{a.Line, a.PostalCode, a.City, a.Province}
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			fields = append(fields, p)
		}
	}
	return strings.Join(fields, ", ")
}
