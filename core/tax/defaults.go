package tax

// Built-in state income tax tables, percentages over annual income.
var (
	newYorkRates   = []float64{4, 4.5, 5.25, 5.9, 5.97, 6.33}
	newYorkCutoffs = []float64{0, 8500, 11700, 13900, 21400, 80650, 215400}

	newJerseyRates   = []float64{1.4, 1.75, 3.5, 5.25, 6.37}
	newJerseyCutoffs = []float64{0, 20000, 35000, 40000, 75000, 500000}

	coloradoRates   = []float64{4.55}
	coloradoCutoffs = []float64{0, 500000}
)

// DefaultReference is the jurisdiction other states are compared against.
const DefaultReference = "CO"

// DefaultRegistry returns a fresh registry of the built-in CO, NJ and NY tables.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		Jurisdiction{Name: "NY", Bracket: MustBuildBracketFromFloats(newYorkRates, newYorkCutoffs)},
		Jurisdiction{Name: "NJ", Bracket: MustBuildBracketFromFloats(newJerseyRates, newJerseyCutoffs)},
		Jurisdiction{Name: "CO", Bracket: MustBuildBracketFromFloats(coloradoRates, coloradoCutoffs)},
	)
	if err != nil {
		panic(err)
	}
	return r
}
