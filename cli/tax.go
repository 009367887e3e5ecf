package cli

import (
	"io"

	"github.com/spf13/cobra"

	"fincalc-agent/calculator"
	"fincalc-agent/domain"
	"fincalc-agent/service"
)

type taxOptions struct {
	input     domain.TaxInput
	regime    string
	age       string
	entity    string
	residency string
	rulesFile string
	compare   bool
}

// NewTaxCommand creates the tax command.
func NewTaxCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &taxOptions{}

	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Compute income tax for one regime or compare both",
		Long: `Compute income tax from income heads and deductions.

Deductions only apply under the old regime. Use --compare to compute both
regimes and see which one is cheaper.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTax(rootOpts, opts, cmd)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.regime, "regime", "new", "tax regime (new|old)")
	f.StringVar(&opts.age, "age", "normal", "age bracket (normal|senior|super_senior)")
	f.StringVar(&opts.entity, "entity", "individual", "entity type (individual|huf)")
	f.StringVar(&opts.residency, "residency", "resident", "residential status (resident|non_resident)")
	f.StringVar(&opts.rulesFile, "rules", "", "YAML rule file overriding the built-in FY 2024-25 rules")
	f.BoolVar(&opts.compare, "compare", false, "compute both regimes and recommend one")

	in := &opts.input.Income
	f.Float64Var(&in.Salary, "salary", 0, "gross salary")
	f.Float64Var(&in.HouseRent, "house-rent", 0, "annual rent received")
	f.Float64Var(&in.HouseLoanInterest, "house-loan-interest", 0, "interest paid on a housing loan")
	f.Float64Var(&in.Business, "business", 0, "business or professional income")
	f.Float64Var(&in.STCG, "stcg", 0, "short-term capital gains")
	f.Float64Var(&in.LTCG, "ltcg", 0, "long-term capital gains")
	f.Float64Var(&in.OtherSources, "other", 0, "income from other sources")

	d := &opts.input.Deductions
	f.Float64Var(&d.Sec80C, "80c", 0, "section 80C investments")
	f.Float64Var(&d.Sec80D, "80d", 0, "section 80D health insurance premium")
	f.Float64Var(&d.Sec80TTA, "80tta", 0, "section 80TTA savings interest")
	f.Float64Var(&d.HRAExemption, "hra", 0, "HRA exemption")

	return cmd
}

func runTax(rootOpts *RootOptions, opts *taxOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	rules := calculator.DefaultRules()
	if opts.rulesFile != "" {
		loaded, err := calculator.LoadRulesFile(opts.rulesFile)
		if err != nil {
			return formatter.Fail(WrapExitError(ExitCommandError, "load tax rules", err))
		}
		rules = loaded
		formatter.VerboseLog("Loaded tax rules %q from %s", rules.Name, opts.rulesFile)
	}

	input := opts.input
	input.Profile = domain.TaxProfile{
		Regime:            domain.Regime(opts.regime),
		AgeBracket:        domain.AgeBracket(opts.age),
		EntityType:        domain.EntityType(opts.entity),
		ResidentialStatus: domain.ResidentialStatus(opts.residency),
	}

	svc := service.NewTaxService(rules, service.Deps{})
	active := svc.Rules()
	formatter.VerboseLog("Using tax rules %q (strict eligibility: %t)", active.Name, active.StrictEligibility)
	ctx := cmd.Context()

	if opts.compare {
		cmp, err := svc.Compare(ctx, input)
		if err != nil {
			return formatter.Fail(err)
		}
		return formatter.Success(cmp, func(w io.Writer) error { return renderComparison(w, cmp) })
	}

	res, err := svc.Calculate(ctx, input)
	if err != nil {
		return formatter.Fail(err)
	}
	return formatter.Success(res, func(w io.Writer) error { return renderTax(w, res) })
}
