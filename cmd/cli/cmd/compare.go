// Package cmd - comparison commands
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jacklambert122/NursingSalaryByStateComparison/core/compare"
	"github.com/jacklambert122/NursingSalaryByStateComparison/core/output"
	"github.com/jacklambert122/NursingSalaryByStateComparison/core/tax"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/config"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/logging"
)

var (
	rangeStart string
	rangeEnd   string
	rangeStep  string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <target> [reference]",
	Short: "Compare effective rates of two jurisdictions over an hourly range",
	Long: `Compare the effective rate of <target> against [reference] at every
hourly wage in [start, end), and report the salary where they cross.

The reference defaults to the configured reference jurisdiction.`,
	Example: `  statetax sweep NY
  statetax sweep NJ CO --start 40 --end 70 --step 0.5`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSweep,
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show effective rates of every jurisdiction over an hourly range",
	Args:  cobra.NoArgs,
	RunE:  runRates,
}

var jurisdictionsCmd = &cobra.Command{
	Use:     "jurisdictions",
	Aliases: []string{"list"},
	Short:   "List jurisdictions and their brackets",
	Args:    cobra.NoArgs,
	RunE:    runJurisdictions,
}

func init() {
	for _, c := range []*cobra.Command{sweepCmd, ratesCmd} {
		c.Flags().StringVar(&rangeStart, "start", "", "first hourly wage (default from config)")
		c.Flags().StringVar(&rangeEnd, "end", "", "hourly wage to stop before (default from config)")
		c.Flags().StringVar(&rangeStep, "step", "", "hourly wage increment (default from config)")
	}

	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(jurisdictionsCmd)
}

// rangeFromFlags overlays the range flags on the configured sweep range
func rangeFromFlags() (compare.Range, error) {
	r := config.Get().Sweep.Range()
	var err error
	if rangeStart != "" {
		if r.Start, err = parseAmount(rangeStart, "start"); err != nil {
			return compare.Range{}, err
		}
	}
	if rangeEnd != "" {
		if r.End, err = parseAmount(rangeEnd, "end"); err != nil {
			return compare.Range{}, err
		}
	}
	if rangeStep != "" {
		if r.Step, err = parseAmount(rangeStep, "step"); err != nil {
			return compare.Range{}, err
		}
	}
	return r, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	r, err := rangeFromFlags()
	if err != nil {
		return err
	}
	target := args[0]
	reference, err := referenceArg(reg, args, 1)
	if err != nil {
		return err
	}

	points, err := compare.Sweep(reg, target, reference, r)
	if err != nil {
		return err
	}
	result := &output.SweepResult{
		Target:    tax.NormalizeName(target),
		Reference: tax.NormalizeName(reference),
		Points:    points,
	}
	if be, ok := compare.BreakEven(points); ok {
		result.BreakEven = &be
		logging.Debug("break-even found", logging.Jurisdiction(result.Target), logging.Amount("annual", be))
	}

	f, err := formatter()
	if err != nil {
		return err
	}
	return f.RenderSweep(cmd.OutOrStdout(), result)
}

func runRates(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	r, err := rangeFromFlags()
	if err != nil {
		return err
	}
	rows, err := compare.RateTable(reg, r)
	if err != nil {
		return err
	}

	f, err := formatter()
	if err != nil {
		return err
	}
	return f.RenderRates(cmd.OutOrStdout(), &output.RatesResult{
		Jurisdictions: reg.Names(),
		Rows:          rows,
	})
}

func runJurisdictions(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	f, err := formatter()
	if err != nil {
		return err
	}
	return f.RenderJurisdictions(cmd.OutOrStdout(), reg.Jurisdictions())
}
