package tax

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/errors"
)

func mustBracket(t *testing.T, rates, cutoffs []float64) *Bracket {
	t.Helper()
	b, err := BuildBracketFromFloats(rates, cutoffs)
	if err != nil {
		t.Fatalf("BuildBracketFromFloats: %v", err)
	}
	return b
}

func mustRegistryBracket(t *testing.T, name string) *Bracket {
	t.Helper()
	b, err := DefaultRegistry().Bracket(name)
	if err != nil {
		t.Fatalf("Bracket(%s): %v", name, err)
	}
	return b
}

// TestTotalTax covers worked examples on known tables
func TestTotalTax(t *testing.T) {
	twoTier := mustBracket(t, []float64{10, 20}, []float64{0, 100, math.Inf(1)})

	tests := []struct {
		name    string
		bracket *Bracket
		income  string
		want    string
	}{
		{"zero income", twoTier, "0", "0"},
		{"inside first tier", twoTier, "50", "5"},
		{"first tier boundary", twoTier, "100", "10"},
		{"spans both tiers", twoTier, "150", "20"},
		{"open top tier", twoTier, "1000100", "200010"},
		{"CO flat", mustRegistryBracket(t, "CO"), "100000", "4550"},
		{"CO at top cutoff", mustRegistryBracket(t, "CO"), "500000", "22750"},
		{"NY segment boundary", mustRegistryBracket(t, "NY"), "21400", "1042"},
		{"NY six tiers", mustRegistryBracket(t, "NY"), "100000", "5804.08"},
		{"NJ first tier", mustRegistryBracket(t, "NJ"), "10000", "140"},
		{"NJ three tiers", mustRegistryBracket(t, "NJ"), "38000", "647.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TotalTax(tt.bracket, dec(tt.income))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("TotalTax(%s) = %s, want %s", tt.income, got, tt.want)
			}
		})
	}
}

func TestTotalTaxSingleOpenSegmentIsLinear(t *testing.T) {
	b := mustBracket(t, []float64{7}, []float64{0, math.Inf(1)})
	rate := dec("0.07")

	for _, income := range []string{"0", "0.01", "1", "999.99", "123456.78", "99999999"} {
		x := dec(income)
		got, err := TotalTax(b, x)
		if err != nil {
			t.Fatalf("TotalTax(%s): %v", income, err)
		}
		if want := x.Mul(rate); !got.Equal(want) {
			t.Errorf("TotalTax(%s) = %s, want %s", income, got, want)
		}
	}
}

func TestTotalTaxOutOfRange(t *testing.T) {
	co := mustRegistryBracket(t, "CO")

	for _, income := range []string{"500000.01", "1000000", "-1"} {
		_, err := TotalTax(co, dec(income))
		if !errors.IsType(err, errors.TypeOutOfRange) {
			t.Errorf("TotalTax(%s): expected OUT_OF_RANGE, got %v", income, err)
		}
	}
}

// TestTotalTaxMonotonicAndContinuous walks NY across every tier
func TestTotalTaxMonotonicAndContinuous(t *testing.T) {
	ny := mustRegistryBracket(t, "NY")
	step := decimal.NewFromInt(250)
	prev := decimal.Zero

	for income := decimal.Zero; income.LessThanOrEqual(dec("215400")); income = income.Add(step) {
		got, err := TotalTax(ny, income)
		if err != nil {
			t.Fatalf("TotalTax(%s): %v", income, err)
		}
		if got.LessThan(prev) {
			t.Fatalf("TotalTax decreased at %s: %s < %s", income, got, prev)
		}
		// a $250 step can add at most 250 * 6.33%
		if got.Sub(prev).GreaterThan(dec("15.825")) {
			t.Fatalf("TotalTax jumped at %s: %s -> %s", income, prev, got)
		}
		prev = got
	}

	// one cent past a boundary costs one cent at the next marginal rate
	at, _ := TotalTax(ny, dec("80650"))
	past, _ := TotalTax(ny, dec("80650.01"))
	if diff := past.Sub(at); !diff.Equal(dec("0.000633")) {
		t.Errorf("marginal cent past 80650 = %s, want 0.000633", diff)
	}
}

func TestBreakdownSumsToTotal(t *testing.T) {
	ny := mustRegistryBracket(t, "NY")
	income := dec("100000")

	portions, err := Breakdown(ny, income)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(portions) != ny.Len() {
		t.Fatalf("expected %d portions, got %d", ny.Len(), len(portions))
	}

	taxable, total := decimal.Zero, decimal.Zero
	for i, p := range portions {
		if i > 0 && !p.Segment.Lower.GreaterThan(portions[i-1].Segment.Lower) {
			t.Errorf("portions not ordered lowest first at %d", i)
		}
		taxable = taxable.Add(p.Taxable)
		total = total.Add(p.Tax)
	}
	if !taxable.Equal(income) {
		t.Errorf("taxable sums to %s, want %s", taxable, income)
	}
	want, _ := TotalTax(ny, income)
	if !total.Equal(want) {
		t.Errorf("portions sum to %s, TotalTax is %s", total, want)
	}
	if !portions[0].Tax.Equal(dec("340")) {
		t.Errorf("first tier tax = %s, want 340", portions[0].Tax)
	}

	none, err := Breakdown(ny, decimal.Zero)
	if err != nil || len(none) != 0 {
		t.Errorf("Breakdown(0) = %v, %v; want no portions", none, err)
	}
}

func TestEffectiveRate(t *testing.T) {
	co := mustRegistryBracket(t, "CO")

	rate, err := EffectiveRateAnnual(co, dec("100000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Equal(dec("0.0455")) {
		t.Errorf("EffectiveRateAnnual(CO, 100000) = %s, want 0.0455", rate)
	}

	// $50/h is 104000 a year
	if annual := HourlyToAnnual(dec("50")); !annual.Equal(dec("104000")) {
		t.Errorf("HourlyToAnnual(50) = %s", annual)
	}
	rate, err = EffectiveRate(co, dec("50"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Equal(dec("0.0455")) {
		t.Errorf("EffectiveRate(CO, 50) = %s, want 0.0455", rate)
	}

	if _, err := EffectiveRate(co, decimal.Zero); !errors.IsType(err, errors.TypeDivideByZero) {
		t.Errorf("expected DIVIDE_BY_ZERO, got %v", err)
	}
	if _, err := EffectiveRate(co, dec("500")); !errors.IsType(err, errors.TypeOutOfRange) {
		t.Errorf("expected OUT_OF_RANGE for $500/h, got %v", err)
	}
}

func TestEffectiveRateProgressive(t *testing.T) {
	ny := mustRegistryBracket(t, "NY")

	low, err := EffectiveRate(ny, dec("10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	high, err := EffectiveRate(ny, dec("60"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !high.GreaterThan(low) {
		t.Errorf("expected rising effective rate, got %s at $10 and %s at $60", low, high)
	}
	if high.GreaterThanOrEqual(dec("0.0633")) {
		t.Errorf("effective rate %s must stay below the top marginal rate", high)
	}
}
