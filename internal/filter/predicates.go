package filter

import (
	"fmt"
	"sort"
	"strings"
)

// VATFilter selects rows by their VAT flag.
type VATFilter string

// VAT filter variants. Anything unrecognized behaves like VATAny.
const (
	VATAny      VATFilter = "any"
	VATRequired VATFilter = "required"
	VATExcluded VATFilter = "excluded"
)

// TariffFilter selects rows by extra tariff presence.
type TariffFilter string

// Extra tariff filter variants. Anything unrecognized behaves like TariffAny.
const (
	TariffAny     TariffFilter = "any"
	TariffPresent TariffFilter = "present"
	TariffAbsent  TariffFilter = "absent"
)

// Predicates is the active filter selection. A nil *Predicates means the
// controls have not been initialized yet, and the engine returns the full
// data set. Malformed values never exclude rows: each predicate fails open.
type Predicates struct {
	// RequiredAmenities keeps only stations carrying every listed tag.
	RequiredAmenities []string
	// MaxConnectors keeps only rows of stations with at most this many
	// distinct connectors (inclusive). Values below 1 mean no constraint.
	MaxConnectors int
	VAT           VATFilter
	ExtraTariff   TariffFilter
}

// Key returns a canonical representation used for memoization.
func (p *Predicates) Key() string {
	if p == nil {
		return "all"
	}
	amenities := append([]string(nil), p.RequiredAmenities...)
	sort.Strings(amenities)
	return fmt.Sprintf("a=%s|c=%d|v=%s|t=%s",
		strings.Join(amenities, ","), p.MaxConnectors, p.VAT, p.ExtraTariff)
}
