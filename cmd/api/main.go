package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"convertkit.dev/internal/app"
	"convertkit.dev/internal/appconf"
	"convertkit.dev/internal/logging"
	"convertkit.dev/internal/restapi"
)

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logging.NewStructuredLogger(os.Stdout, level)

	if err := run(cfg, logger); err != nil {
		logging.LogError(logger, "server stopped", err)
		os.Exit(1)
	}
}

// parseConfig reads flags from args and layers them over the optional
// config file: a flag given explicitly always wins over the file.
func parseConfig(args []string, output io.Writer) (appconf.Config, error) {
	cfg := appconf.Default()
	var env, configPath, trustedProxies string

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.Port, appconf.FlagPort, appconf.DefaultPort, "API server port")
	fs.StringVar(&env, appconf.FlagEnv, "development", "Environment (development|test|production)")
	fs.StringVar(&configPath, "config", "", "YAML config file")
	fs.IntVar(&cfg.RateLimit, appconf.FlagRateLimit, appconf.DefaultRateLimit, "Requests per second per client IP (0 disables)")
	fs.StringVar(&trustedProxies, appconf.FlagTrustedProxies, "", "Comma-separated IPs or CIDRs of proxies allowed to set X-Forwarded-For")
	fs.StringVar(&cfg.RateSourceURL, appconf.FlagRateSourceURL, "", "Exchange-rate feed URL; simulated rates when empty")
	fs.DurationVar(&cfg.RefreshInterval, appconf.FlagRefreshInterval, appconf.DefaultRefreshInterval, "Exchange-rate refresh interval (0 disables)")
	fs.DurationVar(&cfg.FetchTimeout, appconf.FlagFetchTimeout, appconf.DefaultFetchTimeout, "Timeout for one exchange-rate fetch")
	fs.StringVar(&cfg.Locale, appconf.FlagLocale, appconf.DefaultLocale, "Locale for number grouping and dates")
	fs.StringVar(&cfg.LogLevel, appconf.FlagLogLevel, appconf.DefaultLogLevel, "Log level (debug|info|warn|error)")
	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, err
	}
	cfg.Env = appconf.EnvFlagToEnvironment(env)
	if trustedProxies != "" {
		cfg.TrustedProxies = strings.Split(trustedProxies, ",")
	}

	if configPath != "" {
		f, err := appconf.LoadFile(configPath, slog.Default())
		if err != nil {
			return appconf.Config{}, err
		}
		explicit := make(map[string]bool)
		fs.Visit(func(fl *flag.Flag) { explicit[fl.Name] = true })
		f.ApplyTo(&cfg, explicit)
	}

	if err := cfg.Validate(); err != nil {
		return appconf.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(cfg appconf.Config, logger *slog.Logger) error {
	application, err := app.New(cfg, logger, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	if _, err := application.Rates.Refresh(ctx); err != nil {
		logging.LogError(logger, "initial rate refresh failed, serving built-in rates", err)
	}
	cancel()
	application.Rates.Start()
	defer application.Rates.Shutdown()

	api := restapi.NewRestAPI(application)
	defer api.Shutdown()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String(), "locale", cfg.Locale)
		serveErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
