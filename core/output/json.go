package output

import (
	"encoding/json"
	"io"

	"github.com/jacklambert122/NursingSalaryByStateComparison/core/tax"
)

// JSONFormatter renders results as JSON documents
type JSONFormatter struct {
	Indent string
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

func (f *JSONFormatter) encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	return enc.Encode(v)
}

// RenderTax encodes r
func (f *JSONFormatter) RenderTax(w io.Writer, r *TaxResult) error {
	return f.encode(w, r)
}

// RenderDelta encodes r
func (f *JSONFormatter) RenderDelta(w io.Writer, r *DeltaResult) error {
	return f.encode(w, r)
}

// RenderSweep encodes r
func (f *JSONFormatter) RenderSweep(w io.Writer, r *SweepResult) error {
	return f.encode(w, r)
}

// RenderRates encodes r
func (f *JSONFormatter) RenderRates(w io.Writer, r *RatesResult) error {
	return f.encode(w, r)
}

// JurisdictionView is the serialized form of a jurisdiction
type JurisdictionView struct {
	Name     string        `json:"name"`
	Segments []tax.Segment `json:"segments"`
}

// Views converts jurisdictions into their serialized form
func Views(js []tax.Jurisdiction) []JurisdictionView {
	out := make([]JurisdictionView, len(js))
	for i, j := range js {
		out[i] = JurisdictionView{Name: j.Name, Segments: j.Bracket.Segments()}
	}
	return out
}

// RenderJurisdictions encodes the jurisdictions with their segments
func (f *JSONFormatter) RenderJurisdictions(w io.Writer, js []tax.Jurisdiction) error {
	return f.encode(w, Views(js))
}
