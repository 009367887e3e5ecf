package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fincalc-agent/domain"
	"fincalc-agent/service"
)

type netWorthOptions struct {
	assets      []string
	liabilities []string
}

// NewNetWorthCommand creates the networth command.
func NewNetWorthCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &netWorthOptions{}

	cmd := &cobra.Command{
		Use:   "networth",
		Short: "Compute net worth and balance-sheet ratios",
		Long: `Compute net worth, liquidity and leverage ratios and the share of each
bucket. Buckets are given as name=amount and may repeat:

  fincalc networth --asset liquid=100000 --asset growth=250000 --liability secured=80000

Well-known asset buckets are liquid, growth, retirement and fixed; liability
buckets are secured, unsecured and short_term. Other names are accepted.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNetWorth(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.assets, "asset", nil, "asset bucket as name=amount")
	cmd.Flags().StringArrayVar(&opts.liabilities, "liability", nil, "liability bucket as name=amount")

	return cmd
}

func runNetWorth(rootOpts *RootOptions, opts *netWorthOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	assets, err := parseBuckets("asset", opts.assets)
	if err != nil {
		return formatter.Fail(err)
	}
	liabilities, err := parseBuckets("liability", opts.liabilities)
	if err != nil {
		return formatter.Fail(err)
	}

	svc := service.NewNetWorthService(service.Deps{})
	res, err := svc.Calculate(cmd.Context(), domain.NetWorthInput{Assets: assets, Liabilities: liabilities})
	if err != nil {
		return formatter.Fail(err)
	}
	return formatter.Success(res, func(w io.Writer) error { return renderNetWorth(w, res) })
}

// parseBuckets turns repeated name=amount flags into a bucket map. Repeating
// a name adds to it.
func parseBuckets(flag string, values []string) (map[string]float64, error) {
	out := make(map[string]float64, len(values))
	for _, raw := range values {
		name, amount, ok := strings.Cut(raw, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("--%s %q: expected name=amount", flag, raw))
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("--%s %q: invalid amount", flag, raw), err)
		}
		out[name] += v
	}
	return out, nil
}
