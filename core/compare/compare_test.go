package compare

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jacklambert122/NursingSalaryByStateComparison/core/tax"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       Range
		wantErr bool
	}{
		{"default", DefaultRange(), false},
		{"fractional step", Range{Start: dec("10"), End: dec("11"), Step: dec("0.25")}, false},
		{"zero step", Range{Start: dec("1"), End: dec("10"), Step: dec("0")}, true},
		{"negative step", Range{Start: dec("1"), End: dec("10"), Step: dec("-1")}, true},
		{"zero start", Range{Start: dec("0"), End: dec("10"), Step: dec("1")}, true},
		{"end before start", Range{Start: dec("10"), End: dec("5"), Step: dec("1")}, true},
		{"empty", Range{Start: dec("10"), End: dec("10"), Step: dec("1")}, true},
		{"too many steps", Range{Start: dec("1"), End: dec("70"), Step: dec("0.0001")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.wantErr {
				if !errors.IsType(err, errors.TypeInput) {
					t.Errorf("expected INPUT_ERROR, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRangeWagesIsEndExclusive(t *testing.T) {
	wages, err := DefaultRange().Wages()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wages) != 69 {
		t.Fatalf("expected 69 wages, got %d", len(wages))
	}
	if !wages[0].Equal(dec("1")) || !wages[68].Equal(dec("69")) {
		t.Errorf("wages span %s..%s, want 1..69", wages[0], wages[68])
	}
}

func TestSweep(t *testing.T) {
	reg := tax.DefaultRegistry()

	points, err := Sweep(reg, "nj", "co", DefaultRange())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 69 {
		t.Fatalf("expected 69 points, got %d", len(points))
	}

	for _, p := range points {
		if !p.ReferenceRate.Equal(dec("0.0455")) {
			t.Errorf("CO rate at $%s/h = %s, want 0.0455", p.Hourly, p.ReferenceRate)
		}
		if !p.Delta.Equal(p.TargetRate.Sub(p.ReferenceRate)) {
			t.Errorf("delta at $%s/h inconsistent", p.Hourly)
		}
		if !p.DeltaDollars.Equal(p.Annual.Mul(p.Delta)) {
			t.Errorf("delta dollars at $%s/h inconsistent", p.Hourly)
		}
		// Delta is the registry delta taken from the reference side
		want, err := reg.RateDelta(p.Hourly, "CO", "NJ")
		if err != nil {
			t.Fatalf("RateDelta: %v", err)
		}
		if !p.Delta.Equal(want) {
			t.Errorf("delta at $%s/h = %s, RateDelta says %s", p.Hourly, p.Delta, want)
		}
	}

	if !points[0].Delta.IsNegative() {
		t.Errorf("NJ should be cheaper than CO at $1/h, delta %s", points[0].Delta)
	}
	if !points[len(points)-1].Delta.IsPositive() {
		t.Errorf("NJ should cost more than CO at $69/h, delta %s", points[len(points)-1].Delta)
	}
}

func TestSweepErrors(t *testing.T) {
	reg := tax.DefaultRegistry()

	if _, err := Sweep(reg, "TX", "CO", DefaultRange()); !errors.IsType(err, errors.TypeUnknownJurisdiction) {
		t.Errorf("expected UNKNOWN_JURISDICTION, got %v", err)
	}
	if _, err := Sweep(reg, "NY", "CO", Range{Start: dec("5"), End: dec("1"), Step: dec("1")}); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected INPUT_ERROR, got %v", err)
	}
	// NY's table stops at 215400 a year, about $103.56/h
	if _, err := Sweep(reg, "NY", "CO", Range{Start: dec("100"), End: dec("110"), Step: dec("1")}); !errors.IsType(err, errors.TypeOutOfRange) {
		t.Errorf("expected OUT_OF_RANGE, got %v", err)
	}
}

func TestBreakEven(t *testing.T) {
	reg := tax.DefaultRegistry()

	tests := []struct {
		target string
		want   string
	}{
		// NJ crosses CO between $58 and $59 an hour
		{"NJ", "121680"},
		// NY crosses CO between $7 and $8 an hour
		{"NY", "15600"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			points, err := Sweep(reg, tt.target, "CO", DefaultRange())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, ok := BreakEven(points)
			if !ok {
				t.Fatal("expected a break-even salary")
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("BreakEven = %s, want %s", got, tt.want)
			}
		})
	}

	points, err := Sweep(reg, "CO", "CO", DefaultRange())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := BreakEven(points); ok {
		t.Error("identical jurisdictions never cross")
	}
	if _, ok := BreakEven(nil); ok {
		t.Error("no points, no break-even")
	}
}

func TestAdjustWage(t *testing.T) {
	reg := tax.DefaultRegistry()
	hourly := dec("50")

	same, err := AdjustWage(reg, hourly, "CO", "CO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !same.Equal(hourly) {
		t.Errorf("adjusting against itself changed the wage: %s", same)
	}

	adjusted, err := AdjustWage(reg, hourly, "NY", "CO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !adjusted.LessThan(hourly) {
		t.Errorf("NY wage should shrink against CO, got %s", adjusted)
	}
	delta, _ := reg.RateDelta(hourly, "NY", "CO")
	if want := hourly.Add(hourly.Mul(delta)); !adjusted.Equal(want) {
		t.Errorf("AdjustWage = %s, want %s", adjusted, want)
	}

	if _, err := AdjustWage(reg, hourly, "NY", "TX"); !errors.IsType(err, errors.TypeUnknownJurisdiction) {
		t.Errorf("expected UNKNOWN_JURISDICTION, got %v", err)
	}
}

func TestCostOfLiving(t *testing.T) {
	tests := []struct {
		name    string
		hourly  string
		index   string
		want    string
		wantErr bool
	}{
		{name: "national average", hourly: "50", index: "100", want: "50"},
		{name: "expensive state", hourly: "50", index: "125", want: "40"},
		{name: "cheap state", hourly: "45", index: "90", want: "50"},
		{name: "zero index", hourly: "50", index: "0", wantErr: true},
		{name: "negative index", hourly: "50", index: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CostOfLiving(dec(tt.hourly), dec(tt.index))
			if tt.wantErr {
				if !errors.IsType(err, errors.TypeInput) {
					t.Fatalf("expected INPUT_ERROR, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("CostOfLiving = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRateTable(t *testing.T) {
	reg := tax.DefaultRegistry()
	r := Range{Start: dec("20"), End: dec("22"), Step: dec("1")}

	rows, err := RateTable(reg, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if len(row.Rates) != reg.Len() {
			t.Errorf("row $%s/h has %d rates, want %d", row.Hourly, len(row.Rates), reg.Len())
		}
		for name, rate := range row.Rates {
			want, _ := reg.EffectiveRate(name, row.Hourly)
			if !rate.Equal(want) {
				t.Errorf("%s at $%s/h = %s, want %s", name, row.Hourly, rate, want)
			}
		}
	}
}
