package tax

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/errors"
)

// Jurisdiction is a named region with its own bracket.
type Jurisdiction struct {
	Name    string
	Bracket *Bracket
}

// Registry maps jurisdiction names to brackets. It is built once and never
// mutated, so it may be shared freely between goroutines.
type Registry struct {
	byName map[string]Jurisdiction
	names  []string
}

// NormalizeName canonicalizes a jurisdiction name for lookup.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NewRegistry builds a registry. Names are normalized; empty names,
// duplicate names and nil brackets are rejected.
func NewRegistry(jurisdictions ...Jurisdiction) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]Jurisdiction, len(jurisdictions)),
		names:  make([]string, 0, len(jurisdictions)),
	}
	for _, j := range jurisdictions {
		name := NormalizeName(j.Name)
		if name == "" {
			return nil, errors.Input("jurisdiction name is empty")
		}
		if j.Bracket == nil {
			return nil, errors.InvalidBracket("jurisdiction %s has no bracket", name)
		}
		if _, dup := r.byName[name]; dup {
			return nil, errors.Inputf("jurisdiction %s defined twice", name)
		}
		r.byName[name] = Jurisdiction{Name: name, Bracket: j.Bracket}
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Get returns the named jurisdiction.
func (r *Registry) Get(name string) (Jurisdiction, error) {
	j, ok := r.byName[NormalizeName(name)]
	if !ok {
		return Jurisdiction{}, errors.UnknownJurisdiction(name)
	}
	return j, nil
}

// Bracket returns the named jurisdiction's bracket.
func (r *Registry) Bracket(name string) (*Bracket, error) {
	j, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return j.Bracket, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Jurisdictions returns every jurisdiction in name order.
func (r *Registry) Jurisdictions() []Jurisdiction {
	out := make([]Jurisdiction, len(r.names))
	for i, name := range r.names {
		out[i] = r.byName[name]
	}
	return out
}

// Len returns the number of jurisdictions.
func (r *Registry) Len() int {
	return len(r.names)
}

// EffectiveRate is EffectiveRate for the named jurisdiction.
func (r *Registry) EffectiveRate(name string, hourlyWage decimal.Decimal) (decimal.Decimal, error) {
	b, err := r.Bracket(name)
	if err != nil {
		return decimal.Zero, err
	}
	return EffectiveRate(b, hourlyWage)
}

// RateDelta returns EffectiveRate(b) - EffectiveRate(a) at hourlyWage.
// A positive delta means a has the lower effective rate.
func (r *Registry) RateDelta(hourlyWage decimal.Decimal, a, b string) (decimal.Decimal, error) {
	rateA, err := r.EffectiveRate(a, hourlyWage)
	if err != nil {
		return decimal.Zero, err
	}
	rateB, err := r.EffectiveRate(b, hourlyWage)
	if err != nil {
		return decimal.Zero, err
	}
	return rateB.Sub(rateA), nil
}
