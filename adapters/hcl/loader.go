// Package hcl reads and writes jurisdiction bracket tables in HCL.
//
//	jurisdiction "NY" {
//	  rates   = [4, 4.5, 5.25, 5.9, 5.97, 6.33]
//	  cutoffs = [0, 8500, 11700, 13900, 21400, 80650, 215400]
//	}
//
// A final cutoff of "inf" leaves the top segment unbounded.
package hcl

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/zap"

	"github.com/jacklambert122/NursingSalaryByStateComparison/core/tax"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/errors"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/logging"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "jurisdiction", LabelNames: []string{"name"}},
	},
}

var jurisdictionSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "rates", Required: true},
		{Name: "cutoffs", Required: true},
	},
}

// LoadFile reads a bracket tables file into a registry.
func LoadFile(path string) (*tax.Registry, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config(fmt.Sprintf("failed to read bracket file %s", path), err)
	}
	return Load(src, path)
}

// Load parses bracket tables from src. filename is used in diagnostics.
func Load(src []byte, filename string) (*tax.Registry, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing("failed to parse bracket file", diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid bracket file", diags)
	}

	jurisdictions := make([]tax.Jurisdiction, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		j, err := decodeJurisdiction(block)
		if err != nil {
			return nil, err
		}
		jurisdictions = append(jurisdictions, j)
	}

	if len(jurisdictions) == 0 {
		return nil, errors.Config(fmt.Sprintf("%s defines no jurisdictions", filename), nil)
	}

	reg, err := tax.NewRegistry(jurisdictions...)
	if err != nil {
		return nil, err
	}

	logging.Debug("loaded bracket tables",
		zap.String("file", filename),
		zap.Strings("jurisdictions", reg.Names()),
	)
	return reg, nil
}

func decodeJurisdiction(block *hcl.Block) (tax.Jurisdiction, error) {
	name := block.Labels[0]
	at := block.DefRange.String()

	body, diags := block.Body.Content(jurisdictionSchema)
	if diags.HasErrors() {
		return tax.Jurisdiction{}, errors.Parsing(fmt.Sprintf("jurisdiction %q", name), diags)
	}

	rateVals, err := listValues(body.Attributes["rates"])
	if err != nil {
		return tax.Jurisdiction{}, err
	}
	cutoffVals, err := listValues(body.Attributes["cutoffs"])
	if err != nil {
		return tax.Jurisdiction{}, err
	}

	rates := make([]decimal.Decimal, len(rateVals))
	for i, v := range rateVals {
		if v.Type() != cty.Number {
			return tax.Jurisdiction{}, errors.InvalidBracket("%s: rate %d of %q must be a number", at, i, name)
		}
		rate, err := numberToDecimal(v)
		if err != nil {
			return tax.Jurisdiction{}, errors.Wrapf(errors.TypeInvalidBracket, err, "%s: rate %d of %q", at, i, name)
		}
		rates[i] = rate
	}

	cutoffs := make([]tax.Bound, len(cutoffVals))
	for i, v := range cutoffVals {
		switch v.Type() {
		case cty.Number:
			d, err := numberToDecimal(v)
			if err != nil {
				return tax.Jurisdiction{}, errors.Wrapf(errors.TypeInvalidBracket, err, "%s: cutoff %d of %q", at, i, name)
			}
			cutoffs[i] = tax.At(d)
		case cty.String:
			b, err := tax.ParseBound(v.AsString())
			if err != nil {
				return tax.Jurisdiction{}, errors.Wrapf(errors.TypeInvalidBracket, err, "%s: cutoff %d of %q", at, i, name)
			}
			cutoffs[i] = b
		default:
			return tax.Jurisdiction{}, errors.InvalidBracket("%s: cutoff %d of %q must be a number or \"inf\"", at, i, name)
		}
	}

	bracket, err := tax.BuildBracket(rates, cutoffs)
	if err != nil {
		return tax.Jurisdiction{}, errors.Wrapf(errors.TypeInvalidBracket, err, "%s: jurisdiction %q", at, name).
			WithContext("jurisdiction", name)
	}
	return tax.Jurisdiction{Name: name, Bracket: bracket}, nil
}

// listValues evaluates a constant list or tuple attribute.
func listValues(attr *hcl.Attribute) ([]cty.Value, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, errors.Parsing(fmt.Sprintf("attribute %q", attr.Name), diags)
	}
	ty := val.Type()
	if val.IsNull() || !val.IsKnown() || !(ty.IsTupleType() || ty.IsListType()) {
		return nil, errors.InvalidBracket("%s: %q must be a list", attr.Range.String(), attr.Name)
	}

	out := make([]cty.Value, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if v.IsNull() || !v.IsKnown() {
			return nil, errors.InvalidBracket("%s: %q contains a null value", attr.Range.String(), attr.Name)
		}
		out = append(out, v)
	}
	return out, nil
}

// numberToDecimal converts exactly via the shortest decimal text of the value.
// Infinities are rejected; an unbounded cutoff is written "inf".
func numberToDecimal(v cty.Value) (decimal.Decimal, error) {
	f := v.AsBigFloat()
	if f.IsInf() {
		return decimal.Zero, errors.InvalidBracket("%s must be finite", f.Text('g', -1))
	}
	d, err := decimal.NewFromString(f.Text('f', -1))
	if err != nil {
		return decimal.Zero, errors.Wrap(errors.TypeInvalidBracket, "number out of range", err)
	}
	return d, nil
}
