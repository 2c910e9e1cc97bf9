// Package api - API types for the tax endpoints
// Amounts travel as decimal strings so no precision is lost in transit.
package api

import (
	"github.com/shopspring/decimal"

	"github.com/jacklambert122/NursingSalaryByStateComparison/core/compare"
)

// TaxRequest is the input to POST /tax
type TaxRequest struct {
	Jurisdiction string          `json:"jurisdiction" validate:"required,max=64"`
	AnnualIncome decimal.Decimal `json:"annual_income"`
}

// EffectiveRateRequest is the input to POST /effective-rate
type EffectiveRateRequest struct {
	Jurisdiction string          `json:"jurisdiction" validate:"required,max=64"`
	HourlyWage   decimal.Decimal `json:"hourly_wage"`
}

// EffectiveRateResponse is the output of POST /effective-rate
type EffectiveRateResponse struct {
	Jurisdiction  string          `json:"jurisdiction"`
	HourlyWage    decimal.Decimal `json:"hourly_wage"`
	AnnualIncome  decimal.Decimal `json:"annual_income"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
}

// RateDeltaRequest is the input to POST /rate-delta
type RateDeltaRequest struct {
	HourlyWage decimal.Decimal `json:"hourly_wage"`
	From       string          `json:"from" validate:"required,max=64"`
	To         string          `json:"to" validate:"required,max=64"`

	// Adjust also returns the tax-adjusted wage of From in To terms
	Adjust bool `json:"adjust,omitempty"`

	// CostOfLivingIndex, with Adjust, rescales the adjusted wage by From's index
	CostOfLivingIndex *decimal.Decimal `json:"cost_of_living_index,omitempty"`
}

// SweepRequest is the input to POST /sweep. Omitted range fields use the
// server defaults.
type SweepRequest struct {
	Target    string           `json:"target" validate:"required,max=64"`
	Reference string           `json:"reference" validate:"omitempty,max=64"`
	Start     *decimal.Decimal `json:"start,omitempty"`
	End       *decimal.Decimal `json:"end,omitempty"`
	Step      *decimal.Decimal `json:"step,omitempty"`
}

// Range merges the request's range fields over def
func (r *SweepRequest) Range(def compare.Range) compare.Range {
	out := def
	if r.Start != nil {
		out.Start = *r.Start
	}
	if r.End != nil {
		out.End = *r.End
	}
	if r.Step != nil {
		out.Step = *r.Step
	}
	return out
}

// ErrorBody is the error envelope
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}
