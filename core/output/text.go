package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/jacklambert122/NursingSalaryByStateComparison/core/tax"
)

var hundred = decimal.NewFromInt(100)

// TextFormatter renders aligned plain-text tables
type TextFormatter struct{}

// Format returns FormatCLI
func (f *TextFormatter) Format() Format {
	return FormatCLI
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(3) + "%"
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

// RenderTax prints the per-segment breakdown and totals
func (f *TextFormatter) RenderTax(w io.Writer, r *TaxResult) error {
	fmt.Fprintf(w, "%s tax on %s\n\n", r.Jurisdiction, money(r.AnnualIncome))

	tw := newTable(w)
	fmt.Fprintln(tw, "Segment\tRate\tTaxable\tTax\t")
	for _, p := range r.Breakdown {
		fmt.Fprintf(tw, "(%s, %s]\t%s%%\t%s\t%s\t\n",
			p.Segment.Lower, p.Segment.Upper, p.Segment.Rate, money(p.Taxable), money(p.Tax))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal:          %s\n", money(r.Total))
	_, err := fmt.Fprintf(w, "Effective rate: %s\n", percent(r.EffectiveRate))
	return err
}

// RenderDelta prints a rate delta and optional adjusted wage
func (f *TextFormatter) RenderDelta(w io.Writer, r *DeltaResult) error {
	fmt.Fprintf(w, "At %s/h (%s/yr): %s - %s = %s\n",
		money(r.Hourly), money(r.Annual), r.To, r.From, percent(r.Delta))
	if r.Adjusted != nil {
		fmt.Fprintf(w, "Tax-adjusted wage in %s terms: %s/h\n", r.To, money(*r.Adjusted))
	}
	if r.CostOfLiving != nil && r.CostOfLivingIndex != nil {
		fmt.Fprintf(w, "CoL & tax adjusted wage (index %s): %s/h\n", r.CostOfLivingIndex, money(*r.CostOfLiving))
	}
	return nil
}

// RenderSweep prints one row per hourly wage and the break-even salary
func (f *TextFormatter) RenderSweep(w io.Writer, r *SweepResult) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Hourly\tAnnual\t%s\t%s\tDelta\tDelta $\t\n", r.Target, r.Reference)
	for _, p := range r.Points {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			money(p.Hourly), money(p.Annual), percent(p.TargetRate), percent(p.ReferenceRate),
			percent(p.Delta), money(p.DeltaDollars))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if r.BreakEven != nil {
		_, err := fmt.Fprintf(w, "\n%s equivalent tax to %s at salary: %s\n", r.Target, r.Reference, money(*r.BreakEven))
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s and %s do not cross in this range\n", r.Target, r.Reference)
	return err
}

// RenderRates prints the effective rate of every jurisdiction per wage
func (f *TextFormatter) RenderRates(w io.Writer, r *RatesResult) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Hourly\tAnnual\t%s\t\n", strings.Join(r.Jurisdictions, "\t"))
	for _, row := range r.Rows {
		cells := make([]string, len(r.Jurisdictions))
		for i, name := range r.Jurisdictions {
			cells[i] = percent(row.Rates[name])
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", money(row.Hourly), money(row.Annual), strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// RenderJurisdictions lists each jurisdiction's segments
func (f *TextFormatter) RenderJurisdictions(w io.Writer, js []tax.Jurisdiction) error {
	for i, j := range js {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", j.Name)
		tw := newTable(w)
		for _, s := range j.Bracket.Segments() {
			fmt.Fprintf(tw, "  (%s, %s]\t%s%%\t\n", s.Lower, s.Upper, s.Rate)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
