package cli

import (
	"io"

	"github.com/spf13/cobra"

	"fincalc-agent/domain"
	"fincalc-agent/service"
)

type sipOptions struct {
	input      domain.SIPInput
	projection bool
}

// NewSIPCommand creates the sip command.
func NewSIPCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &sipOptions{}

	cmd := &cobra.Command{
		Use:   "sip",
		Short: "Project a systematic investment plan",
		Long: `Project the value of a fixed monthly investment made at the start of
every month, compounded monthly at the assumed annual return.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSIP(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.input.MonthlyAmount, "monthly", 0, "monthly contribution")
	cmd.Flags().IntVar(&opts.input.DurationYears, "years", 0, "duration in years")
	cmd.Flags().Float64Var(&opts.input.AssumedRatePct, "rate", 0, "assumed annual return in percent")
	cmd.Flags().BoolVar(&opts.projection, "projection", false, "print the value at every year end")
	_ = cmd.MarkFlagRequired("monthly")
	_ = cmd.MarkFlagRequired("years")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}

func runSIP(rootOpts *RootOptions, opts *sipOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	svc := service.NewSIPService(service.Deps{})

	if opts.projection {
		res, err := svc.Projection(cmd.Context(), opts.input)
		if err != nil {
			return formatter.Fail(err)
		}
		return formatter.Success(res, func(w io.Writer) error { return renderProjection(w, res) })
	}

	res, err := svc.Calculate(cmd.Context(), opts.input)
	if err != nil {
		return formatter.Fail(err)
	}
	return formatter.Success(res, func(w io.Writer) error { return renderSIP(w, res) })
}
