package hcl

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/jacklambert122/NursingSalaryByStateComparison/core/tax"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/errors"
)

// Encode renders every jurisdiction in reg as a bracket tables file that
// Load accepts.
func Encode(reg *tax.Registry) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	for i, j := range reg.Jurisdictions() {
		if i > 0 {
			root.AppendNewline()
		}
		segments := j.Bracket.Segments()
		rates := make([]cty.Value, len(segments))
		cutoffs := make([]cty.Value, 0, len(segments)+1)
		cutoffs = append(cutoffs, cty.Zero)

		for k, s := range segments {
			rate, err := cty.ParseNumberVal(s.Rate.String())
			if err != nil {
				return nil, errors.Internal("encode rate for "+j.Name, err)
			}
			rates[k] = rate

			if s.Upper.IsUnbounded() {
				cutoffs = append(cutoffs, cty.StringVal("inf"))
				continue
			}
			upper, err := cty.ParseNumberVal(s.Upper.String())
			if err != nil {
				return nil, errors.Internal("encode cutoff for "+j.Name, err)
			}
			cutoffs = append(cutoffs, upper)
		}

		block := root.AppendNewBlock("jurisdiction", []string{j.Name})
		block.Body().SetAttributeValue("rates", cty.TupleVal(rates))
		block.Body().SetAttributeValue("cutoffs", cty.TupleVal(cutoffs))
	}

	return f.Bytes(), nil
}
