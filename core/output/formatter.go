// Package output renders tax engine results for humans and machines.
package output

import (
	"io"

	"github.com/shopspring/decimal"

	"github.com/jacklambert122/NursingSalaryByStateComparison/core/compare"
	"github.com/jacklambert122/NursingSalaryByStateComparison/core/tax"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	RenderTax(w io.Writer, r *TaxResult) error
	RenderDelta(w io.Writer, r *DeltaResult) error
	RenderSweep(w io.Writer, r *SweepResult) error
	RenderRates(w io.Writer, r *RatesResult) error
	RenderJurisdictions(w io.Writer, js []tax.Jurisdiction) error
}

// TaxResult is the total owed by one jurisdiction on one income
type TaxResult struct {
	Jurisdiction  string          `json:"jurisdiction"`
	AnnualIncome  decimal.Decimal `json:"annual_income"`
	Total         decimal.Decimal `json:"total"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	Breakdown     []tax.Portion   `json:"breakdown"`
}

// DeltaResult is a rate comparison between two jurisdictions at one wage
type DeltaResult struct {
	Hourly decimal.Decimal `json:"hourly"`
	Annual decimal.Decimal `json:"annual"`
	From   string          `json:"from"`
	To     string          `json:"to"`
	// Delta is EffectiveRate(To) - EffectiveRate(From)
	Delta decimal.Decimal `json:"delta"`
	// Adjusted is set for tax-adjusted wage output
	Adjusted *decimal.Decimal `json:"adjusted_hourly,omitempty"`
	// CostOfLiving is Adjusted rescaled by CostOfLivingIndex, when one is given
	CostOfLivingIndex *decimal.Decimal `json:"cost_of_living_index,omitempty"`
	CostOfLiving      *decimal.Decimal `json:"col_adjusted_hourly,omitempty"`
}

// SweepResult is a sweep of target against reference
type SweepResult struct {
	Target    string           `json:"target"`
	Reference string           `json:"reference"`
	Points    []compare.Point  `json:"points"`
	BreakEven *decimal.Decimal `json:"break_even_annual,omitempty"`
}

// RatesResult is an effective rate table
type RatesResult struct {
	Jurisdictions []string          `json:"jurisdictions"`
	Rows          []compare.RateRow `json:"rows"`
}

// NewFormatter returns the formatter for a format name
func NewFormatter(format string) (Formatter, error) {
	switch Format(format) {
	case FormatCLI, "":
		return &TextFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}, nil
	default:
		return nil, errors.Inputf("unknown output format %q (want cli or json)", format)
	}
}
