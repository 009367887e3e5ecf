package cli

import (
	"io"

	"github.com/spf13/cobra"

	"fincalc-agent/domain"
	"fincalc-agent/service"
)

type emiOptions struct {
	input    domain.LoanInput
	schedule bool
	tenures  []int
}

// NewEMICommand creates the emi command.
func NewEMICommand(rootOpts *RootOptions) *cobra.Command {
	opts := &emiOptions{}

	cmd := &cobra.Command{
		Use:   "emi",
		Short: "Compute the monthly installment of a loan",
		Long: `Compute the equated monthly installment, total payment and total
interest of a reducing-balance loan.

--schedule prints the month-by-month amortization table. --tenures compares
several tenures side by side instead of using --years.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEMI(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.input.Principal, "principal", 0, "loan amount")
	cmd.Flags().Float64Var(&opts.input.AnnualRatePct, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&opts.input.TenureYears, "years", 0, "tenure in years")
	cmd.Flags().BoolVar(&opts.schedule, "schedule", false, "print the amortization schedule")
	cmd.Flags().IntSliceVar(&opts.tenures, "tenures", nil, "compare these tenures in years, e.g. 5,10,20")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("rate")
	cmd.MarkFlagsMutuallyExclusive("schedule", "tenures")

	return cmd
}

func runEMI(rootOpts *RootOptions, opts *emiOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	ctx := cmd.Context()
	emi := service.NewEMIService(service.Deps{})

	switch {
	case len(opts.tenures) > 0:
		tenure := service.NewTenureService(emi, service.Deps{})
		res, err := tenure.Compare(ctx, domain.TenureComparisonInput{
			Principal:     opts.input.Principal,
			AnnualRatePct: opts.input.AnnualRatePct,
			TenuresYears:  opts.tenures,
		})
		if err != nil {
			return formatter.Fail(err)
		}
		return formatter.Success(res, func(w io.Writer) error { return renderTenures(w, res) })

	case opts.schedule:
		res, err := emi.Schedule(ctx, opts.input)
		if err != nil {
			return formatter.Fail(err)
		}
		return formatter.Success(res, func(w io.Writer) error { return renderSchedule(w, res) })

	default:
		res, err := emi.Calculate(ctx, opts.input)
		if err != nil {
			return formatter.Fail(err)
		}
		return formatter.Success(res, func(w io.Writer) error { return renderLoan(w, res) })
	}
}
