package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"convertkit.dev/internal/calc"
	"convertkit.dev/internal/utils"
)

func searchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search the converter and calculator catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := utils.ValidateAndSanitizeQuery(strings.Join(args, " "))
			if err != nil {
				return err
			}

			entries := opts.app.Catalog.Search(query)
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "(no matches)")
				return nil
			}

			tw := newTabWriter(out)
			fmt.Fprintln(tw, "TITLE\tPATH\tDESCRIPTION")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Title, e.Path, e.Description)
			}
			return tw.Flush()
		},
	}
}

func bmiCmd(opts *rootOptions) *cobra.Command {
	var in calc.BMIInput

	cmd := &cobra.Command{
		Use:   "bmi",
		Short: "Compute body mass index",
		Example: `  convertctl bmi --height 180 --weight 70
  convertctl bmi --system imperial --feet 5 --inches 10 --weight 200`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.System = strings.ToLower(in.System)
			if !cmd.Flags().Changed("weight-unit") && in.System == calc.SystemImperial {
				in.WeightUnit = "lb"
			}

			res, err := opts.app.BMICategories.Evaluate(in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "BMI %s (%s)\n", opts.app.Formatter.Fixed(res.BMI, 1), res.Category.Label)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.System, "system", calc.SystemMetric, "metric or imperial")
	flags.Float64Var(&in.Height, "height", 0, "height (metric system)")
	flags.StringVar(&in.HeightUnit, "height-unit", "cm", "cm or m")
	flags.Float64Var(&in.Feet, "feet", 0, "height in feet (imperial system)")
	flags.Float64Var(&in.Inches, "inches", 0, "additional inches (imperial system)")
	flags.Float64Var(&in.Weight, "weight", 0, "weight")
	flags.StringVar(&in.WeightUnit, "weight-unit", "kg", "kg, g, lb or st")
	return cmd
}

func ageCmd(opts *rootOptions) *cobra.Command {
	var birthRaw, endRaw string

	cmd := &cobra.Command{
		Use:   "age",
		Short: "Compute age between a birth date and today or an end date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			birth, err := utils.ParseDate("birth-date", birthRaw)
			if err != nil {
				return err
			}
			end := time.Now().UTC()
			if endRaw != "" {
				if end, err = utils.ParseDate("end-date", endRaw); err != nil {
					return err
				}
			}

			age, err := calc.AgeBetween(birth, end)
			if err != nil {
				return err
			}

			f := opts.app.Formatter
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d years, %d months, %d days\n", age.Years, age.Months, age.Days)
			fmt.Fprintf(out, "%s months, %s weeks, %s days, %s hours\n",
				f.Fixed(float64(age.TotalMonths), 0), f.Fixed(float64(age.TotalWeeks), 0),
				f.Fixed(float64(age.TotalDays), 0), f.Fixed(float64(age.TotalHours), 0))
			return nil
		},
	}

	cmd.Flags().StringVar(&birthRaw, "birth-date", "", "birth date, e.g. 1990-05-20")
	cmd.Flags().StringVar(&endRaw, "end-date", "", "end date (default today)")
	_ = cmd.MarkFlagRequired("birth-date")
	return cmd
}
