package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"convertkit.dev/internal/currency"
	"convertkit.dev/internal/format"
)

func ratesCmd(opts *rootOptions) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show exchange rates against the base currency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := opts.app.Rates
			table := svc.Rates()

			var refreshErr error
			if refresh {
				table, refreshErr = svc.Refresh(cmd.Context())
			}

			if err := printRates(cmd.OutOrStdout(), svc.Book(), table, opts.app.Formatter, refreshErr != nil); err != nil {
				return err
			}
			return refreshErr
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch new rates from the rate source first")
	return cmd
}

func printRates(w io.Writer, book *currency.Book, table currency.RateTable, f *format.Formatter, stale bool) error {
	header := fmt.Sprintf("Base: %s   Last updated: %s", table.Base, f.Timestamp(table.AsOf))
	if stale {
		header += "   (stale)"
	}
	fmt.Fprintln(w, header)

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "CODE\tNAME\tSYMBOL\tRATE")
	for _, c := range book.Currencies {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Code, c.Name, c.Symbol, f.Fixed(table.Rates[c.Code], 4))
	}
	return tw.Flush()
}
