// Package compare produces tax comparisons between jurisdictions over a
// range of hourly wages.
package compare

import (
	"github.com/shopspring/decimal"

	"github.com/jacklambert122/NursingSalaryByStateComparison/core/tax"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/errors"
)

// maxSteps caps a sweep so a tiny step cannot run away.
const maxSteps = 100000

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Range is an hourly wage range [Start, End) walked in Step increments.
type Range struct {
	Start decimal.Decimal `json:"start"`
	End   decimal.Decimal `json:"end"`
	Step  decimal.Decimal `json:"step"`
}

// DefaultRange is $1 through $69 an hour in whole dollars.
func DefaultRange() Range {
	return Range{
		Start: decimal.NewFromInt(1),
		End:   decimal.NewFromInt(70),
		Step:  decimal.NewFromInt(1),
	}
}

// Validate checks the range is non-empty, positive and bounded.
func (r Range) Validate() error {
	if !r.Step.IsPositive() {
		return errors.Inputf("range step must be positive, got %s", r.Step)
	}
	if !r.Start.IsPositive() {
		return errors.Inputf("range start must be positive, got %s", r.Start)
	}
	if !r.End.GreaterThan(r.Start) {
		return errors.Inputf("range end %s must be above start %s", r.End, r.Start)
	}
	if r.End.Sub(r.Start).Div(r.Step).GreaterThan(decimal.NewFromInt(maxSteps)) {
		return errors.Inputf("range has more than %d steps", maxSteps)
	}
	return nil
}

// Wages lists every hourly wage in the range.
func (r Range) Wages() ([]decimal.Decimal, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	var out []decimal.Decimal
	for w := r.Start; w.LessThan(r.End); w = w.Add(r.Step) {
		out = append(out, w)
	}
	return out, nil
}

// Point is one wage in a sweep of target against reference.
type Point struct {
	Hourly        decimal.Decimal `json:"hourly"`
	Annual        decimal.Decimal `json:"annual"`
	TargetRate    decimal.Decimal `json:"target_rate"`
	ReferenceRate decimal.Decimal `json:"reference_rate"`
	// Delta is TargetRate - ReferenceRate; positive when target taxes more.
	Delta        decimal.Decimal `json:"delta"`
	DeltaDollars decimal.Decimal `json:"delta_dollars"`
}

// Sweep compares target against reference at every wage in r.
func Sweep(reg *tax.Registry, target, reference string, r Range) ([]Point, error) {
	targetBracket, err := reg.Bracket(target)
	if err != nil {
		return nil, err
	}
	referenceBracket, err := reg.Bracket(reference)
	if err != nil {
		return nil, err
	}
	wages, err := r.Wages()
	if err != nil {
		return nil, err
	}

	points := make([]Point, 0, len(wages))
	for _, hourly := range wages {
		targetRate, err := tax.EffectiveRate(targetBracket, hourly)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeOf(err), err, "%s at $%s/h", tax.NormalizeName(target), hourly)
		}
		referenceRate, err := tax.EffectiveRate(referenceBracket, hourly)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeOf(err), err, "%s at $%s/h", tax.NormalizeName(reference), hourly)
		}
		annual := tax.HourlyToAnnual(hourly)
		delta := targetRate.Sub(referenceRate)
		points = append(points, Point{
			Hourly:        hourly,
			Annual:        annual,
			TargetRate:    targetRate,
			ReferenceRate: referenceRate,
			Delta:         delta,
			DeltaDollars:  annual.Mul(delta),
		})
	}
	return points, nil
}

// BreakEven returns the annual salary at which Delta first changes sign,
// taken as the midpoint between the two straddling points.
func BreakEven(points []Point) (decimal.Decimal, bool) {
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1].Delta.Sign(), points[i].Delta.Sign()
		if prev != cur {
			return points[i-1].Annual.Add(points[i].Annual).Div(two), true
		}
	}
	return decimal.Zero, false
}

// AdjustWage scales hourly by (1 + RateDelta(hourly, home, reference)),
// the hourly wage in home expressed as take-home in reference terms.
func AdjustWage(reg *tax.Registry, hourly decimal.Decimal, home, reference string) (decimal.Decimal, error) {
	delta, err := reg.RateDelta(hourly, home, reference)
	if err != nil {
		return decimal.Zero, err
	}
	return hourly.Mul(decimal.NewFromInt(1).Add(delta)), nil
}

// CostOfLiving rescales hourly by a cost of living index where 100 is the
// national average: hourly × 100 / index.
func CostOfLiving(hourly, index decimal.Decimal) (decimal.Decimal, error) {
	if !index.IsPositive() {
		return decimal.Zero, errors.Inputf("cost of living index must be positive, got %s", index)
	}
	return hourly.Mul(hundred).Div(index), nil
}

// RateRow holds every jurisdiction's effective rate at one wage.
type RateRow struct {
	Hourly decimal.Decimal            `json:"hourly"`
	Annual decimal.Decimal            `json:"annual"`
	Rates  map[string]decimal.Decimal `json:"rates"`
}

// RateTable computes the effective rate of every registered jurisdiction
// at each wage in r.
func RateTable(reg *tax.Registry, r Range) ([]RateRow, error) {
	wages, err := r.Wages()
	if err != nil {
		return nil, err
	}

	jurisdictions := reg.Jurisdictions()
	rows := make([]RateRow, 0, len(wages))
	for _, hourly := range wages {
		row := RateRow{
			Hourly: hourly,
			Annual: tax.HourlyToAnnual(hourly),
			Rates:  make(map[string]decimal.Decimal, len(jurisdictions)),
		}
		for _, j := range jurisdictions {
			rate, err := tax.EffectiveRate(j.Bracket, hourly)
			if err != nil {
				return nil, errors.Wrapf(errors.TypeOf(err), err, "%s at $%s/h", j.Name, hourly)
			}
			row.Rates[j.Name] = rate
		}
		rows = append(rows, row)
	}
	return rows, nil
}
