package tax

import (
	"testing"

	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/errors"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	names := r.Names()
	want := []string{"CO", "NJ", "NY"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, names[i], want[i])
		}
	}

	// lookups are case and space insensitive
	j, err := r.Get(" ny ")
	if err != nil {
		t.Fatalf("Get(ny): %v", err)
	}
	if j.Name != "NY" || j.Bracket.Len() != 6 {
		t.Errorf("Get(ny) = %s with %d segments", j.Name, j.Bracket.Len())
	}

	if _, err := r.Get("TX"); !errors.IsType(err, errors.TypeUnknownJurisdiction) {
		t.Errorf("expected UNKNOWN_JURISDICTION, got %v", err)
	}

	// each call builds an independent registry
	if DefaultRegistry() == r {
		t.Error("DefaultRegistry returned a shared instance")
	}
}

func TestNewRegistryRejectsBadEntries(t *testing.T) {
	flat := MustBuildBracketFromFloats([]float64{5}, []float64{0, 1000})

	tests := []struct {
		name     string
		entries  []Jurisdiction
		wantType errors.Type
	}{
		{
			name:     "duplicate after normalization",
			entries:  []Jurisdiction{{Name: "co", Bracket: flat}, {Name: "CO", Bracket: flat}},
			wantType: errors.TypeInput,
		},
		{
			name:     "empty name",
			entries:  []Jurisdiction{{Name: "  ", Bracket: flat}},
			wantType: errors.TypeInput,
		},
		{
			name:     "nil bracket",
			entries:  []Jurisdiction{{Name: "CO"}},
			wantType: errors.TypeInvalidBracket,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.entries...)
			if !errors.IsType(err, tt.wantType) {
				t.Errorf("expected %s, got %v", tt.wantType, err)
			}
		})
	}
}

func TestRateDelta(t *testing.T) {
	r := DefaultRegistry()
	wage := dec("50")

	coRate, _ := r.EffectiveRate("CO", wage)
	nyRate, _ := r.EffectiveRate("NY", wage)

	delta, err := r.RateDelta(wage, "CO", "NY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !delta.Equal(nyRate.Sub(coRate)) {
		t.Errorf("RateDelta(CO, NY) = %s, want %s", delta, nyRate.Sub(coRate))
	}
	if !delta.IsPositive() {
		t.Errorf("CO should be cheaper than NY at $50/h, delta %s", delta)
	}

	if same, _ := r.RateDelta(wage, "NJ", "nj"); !same.IsZero() {
		t.Errorf("RateDelta(NJ, NJ) = %s, want 0", same)
	}
}

func TestRateDeltaIsAntisymmetric(t *testing.T) {
	r := DefaultRegistry()
	names := r.Names()

	for _, wage := range []string{"1", "12.5", "35", "69"} {
		for _, a := range names {
			for _, b := range names {
				ab, err := r.RateDelta(dec(wage), a, b)
				if err != nil {
					t.Fatalf("RateDelta(%s, %s, %s): %v", wage, a, b, err)
				}
				ba, err := r.RateDelta(dec(wage), b, a)
				if err != nil {
					t.Fatalf("RateDelta(%s, %s, %s): %v", wage, b, a, err)
				}
				if !ab.Equal(ba.Neg()) {
					t.Errorf("RateDelta(%s, %s, %s) = %s but reverse is %s", wage, a, b, ab, ba)
				}
			}
		}
	}
}

func TestRateDeltaErrors(t *testing.T) {
	r := DefaultRegistry()

	if _, err := r.RateDelta(dec("20"), "CO", "TX"); !errors.IsType(err, errors.TypeUnknownJurisdiction) {
		t.Errorf("expected UNKNOWN_JURISDICTION, got %v", err)
	}
	if _, err := r.RateDelta(dec("0"), "CO", "NY"); !errors.IsType(err, errors.TypeDivideByZero) {
		t.Errorf("expected DIVIDE_BY_ZERO, got %v", err)
	}
}
