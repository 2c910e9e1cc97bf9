package tax

import (
	"github.com/shopspring/decimal"

	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/errors"
)

// HoursPerYear is a 40 hour week over a 52 week year.
const HoursPerYear = 40 * 52

var hoursPerYear = decimal.NewFromInt(HoursPerYear)

// Portion is the part of an income taxed inside one segment.
type Portion struct {
	Segment Segment         `json:"segment"`
	Taxable decimal.Decimal `json:"taxable"`
	Tax     decimal.Decimal `json:"tax"`
}

// HourlyToAnnual converts an hourly wage to a full-time annual income.
func HourlyToAnnual(hourly decimal.Decimal) decimal.Decimal {
	return hourly.Mul(hoursPerYear)
}

// Breakdown returns the per-segment tax on annualIncome, lowest segment
// first. A zero income yields no portions.
func Breakdown(b *Bracket, annualIncome decimal.Decimal) ([]Portion, error) {
	if annualIncome.IsNegative() {
		return nil, errors.OutOfRange("income %s is negative", annualIncome).
			WithContext("income", annualIncome.String())
	}

	var portions []Portion
	income := annualIncome
	for !income.IsZero() {
		seg, ok := b.segmentFor(income)
		if !ok {
			return nil, errors.OutOfRange("income %s above top cutoff %s", annualIncome, b.Top()).
				WithContext("income", annualIncome.String())
		}
		taxable := income.Sub(seg.Lower)
		portions = append(portions, Portion{
			Segment: seg,
			Taxable: taxable,
			Tax:     taxable.Mul(seg.Rate).Div(hundred),
		})
		income = seg.Lower
	}

	for i, j := 0, len(portions)-1; i < j; i, j = i+1, j-1 {
		portions[i], portions[j] = portions[j], portions[i]
	}
	return portions, nil
}

// TotalTax returns the total tax owed on annualIncome under b.
func TotalTax(b *Bracket, annualIncome decimal.Decimal) (decimal.Decimal, error) {
	portions, err := Breakdown(b, annualIncome)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range portions {
		total = total.Add(p.Tax)
	}
	return total, nil
}

// EffectiveRateAnnual returns total tax over annualIncome as a fraction.
func EffectiveRateAnnual(b *Bracket, annualIncome decimal.Decimal) (decimal.Decimal, error) {
	if annualIncome.IsZero() {
		return decimal.Zero, errors.DivideByZero("effective rate of zero income is undefined")
	}
	total, err := TotalTax(b, annualIncome)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Div(annualIncome), nil
}

// EffectiveRate returns the effective rate for a full-time hourly wage.
func EffectiveRate(b *Bracket, hourlyWage decimal.Decimal) (decimal.Decimal, error) {
	return EffectiveRateAnnual(b, HourlyToAnnual(hourlyWage))
}
