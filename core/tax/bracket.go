// Package tax implements progressive (marginal-rate) income tax.
//
// A Bracket is a contiguous run of segments starting at zero income. Each
// segment taxes only the part of an income that falls inside it, so the
// total owed is the sum over every segment at or below the income.
package tax

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// Bound is an income cutoff. The zero value is a bounded cutoff at 0.
type Bound struct {
	value     decimal.Decimal
	unbounded bool
}

// At returns a finite cutoff.
func At(v decimal.Decimal) Bound {
	return Bound{value: v}
}

// AtInt returns a finite cutoff from a whole amount.
func AtInt(v int64) Bound {
	return Bound{value: decimal.NewFromInt(v)}
}

// Unbounded returns the cutoff at positive infinity.
func Unbounded() Bound {
	return Bound{unbounded: true}
}

// IsUnbounded reports whether the cutoff is at infinity.
func (b Bound) IsUnbounded() bool {
	return b.unbounded
}

// Value returns the finite cutoff. It is zero for an unbounded cutoff.
func (b Bound) Value() decimal.Decimal {
	return b.value
}

// Covers reports whether x <= b.
func (b Bound) Covers(x decimal.Decimal) bool {
	return b.unbounded || x.LessThanOrEqual(b.value)
}

// String returns the cutoff amount, or "inf".
func (b Bound) String() string {
	if b.unbounded {
		return "inf"
	}
	return b.value.String()
}

// MarshalText encodes the cutoff the same way String does.
func (b Bound) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText accepts anything ParseBound does.
func (b *Bound) UnmarshalText(text []byte) error {
	parsed, err := ParseBound(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBound parses a cutoff amount; "inf" and "infinity" mean Unbounded.
func ParseBound(s string) (Bound, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inf", "+inf", "infinity":
		return Unbounded(), nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Bound{}, errors.Wrapf(errors.TypeInvalidBracket, err, "invalid cutoff %q", s)
	}
	return At(d), nil
}

// Segment is one marginal tier: Rate percent applies to income in (Lower, Upper].
type Segment struct {
	Rate  decimal.Decimal `json:"rate"`
	Lower decimal.Decimal `json:"lower"`
	Upper Bound           `json:"upper"`
}

// Contains reports whether Lower < x <= Upper.
func (s Segment) Contains(x decimal.Decimal) bool {
	return x.GreaterThan(s.Lower) && s.Upper.Covers(x)
}

// Bracket is an immutable ordered set of contiguous segments covering (0, top].
type Bracket struct {
	segments []Segment
}

// BuildBracket pairs rates[i] with the interval (cutoffs[i], cutoffs[i+1]].
//
// cutoffs must start at 0, be strictly increasing and have exactly one more
// entry than rates. Only the last cutoff may be Unbounded. Rates are
// percentages in [0, 100].
func BuildBracket(rates []decimal.Decimal, cutoffs []Bound) (*Bracket, error) {
	if len(rates) == 0 {
		return nil, errors.InvalidBracket("bracket needs at least one rate")
	}
	if len(cutoffs) != len(rates)+1 {
		return nil, errors.InvalidBracket("got %d cutoffs for %d rates, want %d",
			len(cutoffs), len(rates), len(rates)+1)
	}
	if cutoffs[0].IsUnbounded() || !cutoffs[0].Value().IsZero() {
		return nil, errors.InvalidBracket("first cutoff must be 0, got %s", cutoffs[0])
	}

	segments := make([]Segment, len(rates))
	for i, rate := range rates {
		if rate.IsNegative() || rate.GreaterThan(hundred) {
			return nil, errors.InvalidBracket("rate %s at segment %d outside [0, 100]", rate, i)
		}
		lower, upper := cutoffs[i], cutoffs[i+1]
		if lower.IsUnbounded() {
			return nil, errors.InvalidBracket("unbounded cutoff at position %d; only the last cutoff may be unbounded", i)
		}
		if !upper.IsUnbounded() && !upper.Value().GreaterThan(lower.Value()) {
			return nil, errors.InvalidBracket("cutoffs not strictly increasing at position %d: %s then %s",
				i+1, lower, upper)
		}
		segments[i] = Segment{Rate: rate, Lower: lower.Value(), Upper: upper}
	}

	return &Bracket{segments: segments}, nil
}

// BuildBracketFromFloats is BuildBracket over literal float tables.
// math.Inf(1) is accepted as an unbounded cutoff.
func BuildBracketFromFloats(rates, cutoffs []float64) (*Bracket, error) {
	rs := make([]decimal.Decimal, len(rates))
	for i, r := range rates {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, errors.InvalidBracket("rate at segment %d is not finite", i)
		}
		rs[i] = decimal.NewFromFloat(r)
	}
	cs := make([]Bound, len(cutoffs))
	for i, c := range cutoffs {
		switch {
		case math.IsInf(c, 1):
			cs[i] = Unbounded()
		case math.IsNaN(c) || math.IsInf(c, -1):
			return nil, errors.InvalidBracket("cutoff at position %d is not a number", i)
		default:
			cs[i] = At(decimal.NewFromFloat(c))
		}
	}
	return BuildBracket(rs, cs)
}

// MustBuildBracketFromFloats panics if the tables are malformed.
// It is intended for compiled-in literal tables only.
func MustBuildBracketFromFloats(rates, cutoffs []float64) *Bracket {
	b, err := BuildBracketFromFloats(rates, cutoffs)
	if err != nil {
		panic(err)
	}
	return b
}

// Segments returns a copy of the bracket's segments, lowest first.
func (b *Bracket) Segments() []Segment {
	out := make([]Segment, len(b.segments))
	copy(out, b.segments)
	return out
}

// Len returns the number of segments.
func (b *Bracket) Len() int {
	return len(b.segments)
}

// Top returns the upper cutoff of the highest segment.
func (b *Bracket) Top() Bound {
	return b.segments[len(b.segments)-1].Upper
}

// segmentFor finds the segment whose interval contains income.
func (b *Bracket) segmentFor(income decimal.Decimal) (Segment, bool) {
	for _, s := range b.segments {
		if s.Contains(income) {
			return s, true
		}
	}
	return Segment{}, false
}
