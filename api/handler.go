// Package api - HTTP handlers for tax queries
// Handlers wrap the engine; all math is delegated to core packages.
package api

import (
	"net/http"

	"github.com/jacklambert122/NursingSalaryByStateComparison/core/compare"
	"github.com/jacklambert122/NursingSalaryByStateComparison/core/output"
	"github.com/jacklambert122/NursingSalaryByStateComparison/core/tax"
)

// handleTax handles POST /tax
func (s *Server) handleTax(w http.ResponseWriter, r *http.Request) {
	var req TaxRequest
	if !s.decode(w, r, &req) {
		return
	}

	j, err := s.registry.Get(req.Jurisdiction)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	portions, err := tax.Breakdown(j.Bracket, req.AnnualIncome)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	total, err := tax.TotalTax(j.Bracket, req.AnnualIncome)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	result := &output.TaxResult{
		Jurisdiction: j.Name,
		AnnualIncome: req.AnnualIncome,
		Total:        total,
		Breakdown:    portions,
	}
	// zero income has no effective rate; report 0 rather than fail the whole query
	if !req.AnnualIncome.IsZero() {
		if result.EffectiveRate, err = tax.EffectiveRateAnnual(j.Bracket, req.AnnualIncome); err != nil {
			s.writeEngineError(w, r, err)
			return
		}
	}

	s.writeJSON(w, result, http.StatusOK)
}

// handleEffectiveRate handles POST /effective-rate
func (s *Server) handleEffectiveRate(w http.ResponseWriter, r *http.Request) {
	var req EffectiveRateRequest
	if !s.decode(w, r, &req) {
		return
	}

	j, err := s.registry.Get(req.Jurisdiction)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	rate, err := tax.EffectiveRate(j.Bracket, req.HourlyWage)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	s.writeJSON(w, &EffectiveRateResponse{
		Jurisdiction:  j.Name,
		HourlyWage:    req.HourlyWage,
		AnnualIncome:  tax.HourlyToAnnual(req.HourlyWage),
		EffectiveRate: rate,
	}, http.StatusOK)
}

// handleRateDelta handles POST /rate-delta
func (s *Server) handleRateDelta(w http.ResponseWriter, r *http.Request) {
	var req RateDeltaRequest
	if !s.decode(w, r, &req) {
		return
	}

	delta, err := s.registry.RateDelta(req.HourlyWage, req.From, req.To)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	result := &output.DeltaResult{
		Hourly: req.HourlyWage,
		Annual: tax.HourlyToAnnual(req.HourlyWage),
		From:   tax.NormalizeName(req.From),
		To:     tax.NormalizeName(req.To),
		Delta:  delta,
	}
	if req.Adjust {
		adjusted, err := compare.AdjustWage(s.registry, req.HourlyWage, req.From, req.To)
		if err != nil {
			s.writeEngineError(w, r, err)
			return
		}
		result.Adjusted = &adjusted

		if req.CostOfLivingIndex != nil {
			col, err := compare.CostOfLiving(adjusted, *req.CostOfLivingIndex)
			if err != nil {
				s.writeEngineError(w, r, err)
				return
			}
			result.CostOfLivingIndex = req.CostOfLivingIndex
			result.CostOfLiving = &col
		}
	}

	s.writeJSON(w, result, http.StatusOK)
}

// handleSweep handles POST /sweep
func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	var req SweepRequest
	if !s.decode(w, r, &req) {
		return
	}
	reference := req.Reference
	if reference == "" {
		reference = s.opts.Reference
	}

	points, err := compare.Sweep(s.registry, req.Target, reference, req.Range(s.opts.Sweep))
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	result := &output.SweepResult{
		Target:    tax.NormalizeName(req.Target),
		Reference: tax.NormalizeName(reference),
		Points:    points,
	}
	if be, ok := compare.BreakEven(points); ok {
		result.BreakEven = &be
	}

	s.writeJSON(w, result, http.StatusOK)
}

// handleJurisdictions handles GET /jurisdictions
func (s *Server) handleJurisdictions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"jurisdictions": output.Views(s.registry.Jurisdictions()),
		"reference":     tax.NormalizeName(s.opts.Reference),
		"count":         s.registry.Len(),
	}, http.StatusOK)
}
