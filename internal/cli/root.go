package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"convertkit.dev/internal/app"
	"convertkit.dev/internal/appconf"
	"convertkit.dev/internal/currency"
	"convertkit.dev/internal/logging"
)

// rootOptions holds the persistent flags and the Application built from them.
type rootOptions struct {
	configPath    string
	locale        string
	logLevel      string
	rateSourceURL string

	source  currency.Source
	logOut  io.Writer
	app     *app.Application
	cleanup func()
}

func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{logOut: os.Stderr})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "convertctl",
		Short:        "Convert units and currencies, compute BMI and age",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if opts.cleanup != nil {
				opts.cleanup()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file")
	flags.StringVar(&opts.locale, appconf.FlagLocale, appconf.DefaultLocale, "locale used for number grouping and dates")
	flags.StringVar(&opts.logLevel, appconf.FlagLogLevel, "warn", "log level (debug|info|warn|error)")
	flags.StringVar(&opts.rateSourceURL, appconf.FlagRateSourceURL, "", "exchange-rate feed URL; simulated rates when empty")

	cmd.AddCommand(
		unitsCmd(opts),
		convertCmd(opts),
		searchCmd(opts),
		bmiCmd(opts),
		ageCmd(opts),
		ratesCmd(opts),
	)
	return cmd
}

// init builds the Application from flags layered over the optional config file.
func (o *rootOptions) init(cmd *cobra.Command) error {
	cfg := appconf.Default()
	cfg.RateLimit = 0
	cfg.Locale = o.locale
	cfg.LogLevel = o.logLevel
	cfg.RateSourceURL = o.rateSourceURL

	if o.configPath != "" {
		f, err := appconf.LoadFile(o.configPath, slog.Default())
		if err != nil {
			return err
		}
		f.ApplyTo(&cfg, changedFlags(cmd))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewTextLogger(o.logOut, level).With(slog.String("component", "cli"))

	application, err := app.New(cfg, logger, o.source)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	o.app = application
	o.cleanup = application.Rates.Shutdown
	return nil
}

func changedFlags(cmd *cobra.Command) map[string]bool {
	explicit := make(map[string]bool)
	for _, name := range []string{appconf.FlagLocale, appconf.FlagLogLevel, appconf.FlagRateSourceURL} {
		if cmd.Flags().Changed(name) {
			explicit[name] = true
		}
	}
	return explicit
}
