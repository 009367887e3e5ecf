package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"

	"fincalc-agent/domain"
)

const (
	rowFormat     = "%-24s %18s\n"
	compareFormat = "%-24s %18s %18s\n"
)

func money(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func percent(v float64) string {
	return humanize.FormatFloat("#,###.##", v) + "%"
}

// textWriter remembers the first write error so renderers stay linear.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) row(label, value string) {
	t.printf(rowFormat, label, value)
}

func renderTax(w io.Writer, r domain.TaxResult) error {
	t := &textWriter{w: w}
	t.row("Regime", string(r.Regime))
	t.row("Net salary", money(r.NetSalary))
	t.row("Net house property", money(r.NetHouseProperty))
	t.row("Gross total income", money(r.GTI))
	t.row("Standard deduction", money(r.StandardDeduction))
	t.row("Deductions", money(r.TotalDeductions))
	t.row("Taxable income", money(r.TaxableIncome))
	t.row("Base tax", money(r.BaseTax))
	t.row("Rebate limit", money(r.RebateLimit))
	t.row("Rebate", money(r.Rebate))
	t.row("Cess", money(r.Cess))
	t.row("Total tax", money(r.TotalTax))
	t.row("Effective rate", percent(r.EffectiveRatePct))
	t.row("Marginal rate", percent(r.MarginalRatePct))
	return t.err
}

func renderComparison(w io.Writer, c domain.RegimeComparison) error {
	t := &textWriter{w: w}
	line := func(label string, pick func(domain.TaxResult) string) {
		t.printf(compareFormat, label, pick(c.New), pick(c.Old))
	}
	t.printf(compareFormat, "", "new", "old")
	line("Gross total income", func(r domain.TaxResult) string { return money(r.GTI) })
	line("Standard deduction", func(r domain.TaxResult) string { return money(r.StandardDeduction) })
	line("Deductions", func(r domain.TaxResult) string { return money(r.TotalDeductions) })
	line("Taxable income", func(r domain.TaxResult) string { return money(r.TaxableIncome) })
	line("Base tax", func(r domain.TaxResult) string { return money(r.BaseTax) })
	line("Rebate", func(r domain.TaxResult) string { return money(r.Rebate) })
	line("Cess", func(r domain.TaxResult) string { return money(r.Cess) })
	line("Total tax", func(r domain.TaxResult) string { return money(r.TotalTax) })
	line("Effective rate", func(r domain.TaxResult) string { return percent(r.EffectiveRatePct) })
	t.printf("\nRecommended: %s regime, saves %s\n", c.Recommended, money(c.Savings))
	return t.err
}

func renderLoan(w io.Writer, r domain.LoanResult) error {
	t := &textWriter{w: w}
	t.row("Monthly EMI", money(r.EMI))
	t.row("Total payment", money(r.TotalPayment))
	t.row("Total interest", money(r.TotalInterest))
	return t.err
}

func renderSchedule(w io.Writer, r domain.AmortizationResult) error {
	if err := renderLoan(w, r.LoanResult); err != nil {
		return err
	}
	t := &textWriter{w: w}
	t.printf("\n%5s %14s %14s %14s %16s\n", "Month", "Payment", "Principal", "Interest", "Balance")
	for _, inst := range r.Schedule {
		t.printf("%5d %14s %14s %14s %16s\n", inst.Month,
			money(inst.Payment), money(inst.Principal), money(inst.Interest), money(inst.Balance))
	}
	return t.err
}

func renderTenures(w io.Writer, r domain.TenureComparisonResult) error {
	t := &textWriter{w: w}
	t.printf("%5s %14s %16s %16s\n", "Years", "EMI", "Total interest", "Total payment")
	for _, opt := range r.Options {
		t.printf("%5d %14s %16s %16s\n", opt.TenureYears,
			money(opt.EMI), money(opt.TotalInterest), money(opt.TotalPayment))
	}
	t.printf("\nLowest total interest: %s\n", yearsLabel(r.LowestInterestYears))
	t.printf("Lowest EMI: %s\n", yearsLabel(r.LowestEMIYears))
	return t.err
}

func renderSIP(w io.Writer, r domain.SIPResult) error {
	t := &textWriter{w: w}
	t.row("Invested", money(r.TotalPrincipal))
	t.row("Future value", money(r.FutureValue))
	t.row("Compounding effect", money(r.CompoundingEffect))
	return t.err
}

func renderProjection(w io.Writer, r domain.SIPProjectionResult) error {
	if err := renderSIP(w, r.SIPResult); err != nil {
		return err
	}
	t := &textWriter{w: w}
	t.printf("\n%4s %16s %16s %16s\n", "Year", "Invested", "Value", "Gain")
	for _, y := range r.Years {
		t.printf("%4d %16s %16s %16s\n", y.Year, money(y.Invested), money(y.Value), money(y.Gain))
	}
	return t.err
}

func renderNetWorth(w io.Writer, r domain.NetWorthResult) error {
	t := &textWriter{w: w}
	t.row("Total assets", money(r.TotalAssets))
	t.row("Total liabilities", money(r.TotalLiabilities))
	t.row("Net worth", money(r.NetWorth))
	t.row("Liquidity ratio", percent(r.LiquidityRatioPct))
	t.row("Leverage ratio", percent(r.LeverageRatioPct))
	breakdown := func(title string, pct map[string]float64) {
		if len(pct) == 0 {
			return
		}
		t.printf("\n%s\n", title)
		for _, name := range slices.Sorted(maps.Keys(pct)) {
			t.row("  "+name, percent(pct[name]))
		}
	}
	breakdown("Assets", r.AssetBreakdownPct)
	breakdown("Liabilities", r.LiabilityBreakdownPct)
	return t.err
}

func yearsLabel(years int) string {
	if years == 1 {
		return "1 year"
	}
	return strconv.Itoa(years) + " years"
}
