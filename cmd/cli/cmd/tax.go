// Package cmd - tax query commands
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jacklambert122/NursingSalaryByStateComparison/core/compare"
	"github.com/jacklambert122/NursingSalaryByStateComparison/core/output"
	"github.com/jacklambert122/NursingSalaryByStateComparison/core/tax"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/logging"
)

var totalCmd = &cobra.Command{
	Use:   "total <jurisdiction> <annual-income>",
	Short: "Show total tax owed on an annual income",
	Example: `  statetax total NY 100000
  statetax total nj 38000 --format json`,
	Args: cobra.ExactArgs(2),
	RunE: runTotal,
}

var effectiveCmd = &cobra.Command{
	Use:   "effective <jurisdiction> <hourly-wage>",
	Short: "Show the effective rate for a full-time hourly wage",
	Long: `Show the effective tax rate for a full-time hourly wage.

Annual income is hourly x 40 hours x 52 weeks.`,
	Args: cobra.ExactArgs(2),
	RunE: runEffective,
}

var deltaCmd = &cobra.Command{
	Use:   "delta <hourly-wage> <from> <to>",
	Short: "Show effective rate of <to> minus effective rate of <from>",
	Long: `Show EffectiveRate(to) - EffectiveRate(from) at a full-time hourly wage.

A positive delta means <from> has the lower effective rate.`,
	Args: cobra.ExactArgs(3),
	RunE: runDelta,
}

var adjustCmd = &cobra.Command{
	Use:   "adjust <hourly-wage> <home> [reference]",
	Short: "Show a wage scaled by the tax delta against a reference jurisdiction",
	Long: `Scale an hourly wage earned in <home> by (1 + delta), where delta is the
effective rate of the reference minus the effective rate of <home>.

The reference defaults to the configured reference jurisdiction. With
--col-index the adjusted wage is also rescaled by <home>'s cost of living
index (100 is the national average).`,
	Example: `  statetax adjust 50 NY
  statetax adjust 50 NY CO --col-index 135.7`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runAdjust,
}

var colIndex string

func init() {
	adjustCmd.Flags().StringVar(&colIndex, "col-index", "", "cost of living index of <home>, 100 = national average")

	rootCmd.AddCommand(totalCmd)
	rootCmd.AddCommand(effectiveCmd)
	rootCmd.AddCommand(deltaCmd)
	rootCmd.AddCommand(adjustCmd)
}

func runTotal(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	j, err := reg.Get(args[0])
	if err != nil {
		return err
	}
	income, err := parseAmount(args[1], "annual income")
	if err != nil {
		return err
	}

	portions, err := tax.Breakdown(j.Bracket, income)
	if err != nil {
		return err
	}
	total, err := tax.TotalTax(j.Bracket, income)
	if err != nil {
		return err
	}
	result := &output.TaxResult{
		Jurisdiction: j.Name,
		AnnualIncome: income,
		Total:        total,
		Breakdown:    portions,
	}
	if !income.IsZero() {
		if result.EffectiveRate, err = tax.EffectiveRateAnnual(j.Bracket, income); err != nil {
			return err
		}
	}

	logging.Debug("computed total tax", logging.Jurisdiction(j.Name), logging.Amount("total", total))

	f, err := formatter()
	if err != nil {
		return err
	}
	return f.RenderTax(cmd.OutOrStdout(), result)
}

func runEffective(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	hourly, err := parseAmount(args[1], "hourly wage")
	if err != nil {
		return err
	}
	j, err := reg.Get(args[0])
	if err != nil {
		return err
	}
	annual := tax.HourlyToAnnual(hourly)
	rate, err := tax.EffectiveRate(j.Bracket, hourly)
	if err != nil {
		return err
	}
	total, err := tax.TotalTax(j.Bracket, annual)
	if err != nil {
		return err
	}
	portions, err := tax.Breakdown(j.Bracket, annual)
	if err != nil {
		return err
	}

	f, err := formatter()
	if err != nil {
		return err
	}
	return f.RenderTax(cmd.OutOrStdout(), &output.TaxResult{
		Jurisdiction:  j.Name,
		AnnualIncome:  annual,
		Total:         total,
		EffectiveRate: rate,
		Breakdown:     portions,
	})
}

func runDelta(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	hourly, err := parseAmount(args[0], "hourly wage")
	if err != nil {
		return err
	}
	delta, err := reg.RateDelta(hourly, args[1], args[2])
	if err != nil {
		return err
	}

	f, err := formatter()
	if err != nil {
		return err
	}
	return f.RenderDelta(cmd.OutOrStdout(), &output.DeltaResult{
		Hourly: hourly,
		Annual: tax.HourlyToAnnual(hourly),
		From:   tax.NormalizeName(args[1]),
		To:     tax.NormalizeName(args[2]),
		Delta:  delta,
	})
}

func runAdjust(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	hourly, err := parseAmount(args[0], "hourly wage")
	if err != nil {
		return err
	}
	home := args[1]
	reference, err := referenceArg(reg, args, 2)
	if err != nil {
		return err
	}

	delta, err := reg.RateDelta(hourly, home, reference)
	if err != nil {
		return err
	}
	adjusted, err := compare.AdjustWage(reg, hourly, home, reference)
	if err != nil {
		return err
	}
	logging.Debug("adjusted wage",
		logging.Jurisdiction(tax.NormalizeName(home)),
		zap.String("reference", tax.NormalizeName(reference)),
		logging.Amount("adjusted", adjusted),
	)

	result := &output.DeltaResult{
		Hourly:   hourly,
		Annual:   tax.HourlyToAnnual(hourly),
		From:     tax.NormalizeName(home),
		To:       tax.NormalizeName(reference),
		Delta:    delta,
		Adjusted: &adjusted,
	}
	if colIndex != "" {
		index, err := parseAmount(colIndex, "cost of living index")
		if err != nil {
			return err
		}
		col, err := compare.CostOfLiving(adjusted, index)
		if err != nil {
			return err
		}
		result.CostOfLivingIndex = &index
		result.CostOfLiving = &col
	}

	f, err := formatter()
	if err != nil {
		return err
	}
	return f.RenderDelta(cmd.OutOrStdout(), result)
}
