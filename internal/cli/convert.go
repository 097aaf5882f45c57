package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"convertkit.dev/internal/domain"
	"convertkit.dev/internal/utils"
)

func unitsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "units <domain>",
		Short:     "List the units of a domain",
		Args:      cobra.ExactArgs(1),
		ValidArgs: domainNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := domain.ParseDomain(args[0])
			if err != nil {
				return err
			}
			list, err := opts.app.ListUnits(d)
			if err != nil {
				return err
			}

			tw := newTabWriter(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tSYMBOL")
			for _, u := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", u.ID, u.Name, u.Symbol)
			}
			return tw.Flush()
		},
	}
}

func convertCmd(opts *rootOptions) *cobra.Command {
	var swap, noQuick bool

	cmd := &cobra.Command{
		Use:   "convert <domain> <value> <from> <to>",
		Short: "Convert a value between two units",
		Example: `  convertctl convert length 5 km mi
  convertctl convert temperature -- -40 c f
  convertctl convert currency 100 usd eur --swap`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := domain.ParseDomain(args[0])
			if err != nil {
				return err
			}
			value, err := utils.ParseNumericInput("value", args[1])
			if err != nil {
				return err
			}
			from, to := strings.TrimSpace(args[2]), strings.TrimSpace(args[3])
			if swap {
				from, to = to, from
			}

			a := opts.app
			result, quick, err := a.ConvertWithQuick(d, value, from, to)
			if err != nil {
				return err
			}
			fromUnit, _ := a.FindUnit(d, from)
			toUnit, _ := a.FindUnit(d, to)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s = %s\n",
				withUnit(d, a.Format(d, value, fromUnit.ID), fromUnit),
				withUnit(d, a.Format(d, result, toUnit.ID), toUnit))

			if noQuick {
				return nil
			}
			for _, q := range quick {
				fmt.Fprintf(out, "  = %s %s\n", q.Formatted, unitLabel(d, q.Unit))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&swap, "swap", false, "exchange the from and to units")
	cmd.Flags().BoolVar(&noQuick, "no-quick", false, "omit conversions into other units")
	return cmd
}

// withUnit appends the unit to a formatted value. Temperatures already carry
// their scale suffix.
func withUnit(d domain.Domain, formatted string, u domain.Unit) string {
	if d == domain.DomainTemperature {
		return formatted
	}
	return formatted + " " + unitLabel(d, u)
}

func unitLabel(d domain.Domain, u domain.Unit) string {
	if d == domain.DomainCurrency {
		return u.ID
	}
	return u.Symbol
}

func domainNames() []string {
	names := make([]string, 0, len(domain.AllDomains))
	for _, d := range domain.AllDomains {
		names = append(names, string(d))
	}
	return names
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
