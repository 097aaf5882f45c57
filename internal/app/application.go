package app

import (
	"fmt"
	"log/slog"

	"convertkit.dev/internal/appconf"
	"convertkit.dev/internal/calc"
	"convertkit.dev/internal/catalog"
	"convertkit.dev/internal/currency"
	"convertkit.dev/internal/domain"
	"convertkit.dev/internal/format"
	"convertkit.dev/internal/units"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware, and for the command-line tool.
type Application struct {
	Config        appconf.Config
	Logger        *slog.Logger
	Units         *units.Registry
	Rates         *currency.Service
	Formatter     *format.Formatter
	BMICategories *calc.Categories
	Catalog       *catalog.Catalog
}

// New loads the built-in tables and wires them into an Application. Rates are
// refreshed from source; a nil source is chosen from the configuration.
func New(cfg appconf.Config, logger *slog.Logger, source currency.Source) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry, err := units.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("load unit tables: %w", err)
	}
	book, err := currency.LoadDefaultBook()
	if err != nil {
		return nil, fmt.Errorf("load currencies: %w", err)
	}
	categories, err := calc.LoadDefaultCategories()
	if err != nil {
		return nil, fmt.Errorf("load bmi categories: %w", err)
	}
	cat, err := catalog.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	formatter, err := format.New(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", cfg.Locale, err)
	}

	if source == nil {
		source = RateSource(cfg, book, logger)
	}
	rates := currency.NewService(book, source, currency.ServiceConfig{
		FetchTimeout:    cfg.FetchTimeout,
		RefreshInterval: cfg.RefreshInterval,
	}, logger)

	return &Application{
		Config:        cfg,
		Logger:        logger,
		Units:         registry,
		Rates:         rates,
		Formatter:     formatter,
		BMICategories: categories,
		Catalog:       cat,
	}, nil
}

// RateSource picks the exchange-rate source for cfg: the configured feed
// when a URL is set, the fixed built-in table under test, and simulated
// jitter around the built-in table otherwise.
func RateSource(cfg appconf.Config, book *currency.Book, logger *slog.Logger) currency.Source {
	switch {
	case cfg.RateSourceURL != "":
		return currency.NewHTTPSource(cfg.RateSourceURL, currency.WithLogger(logger))
	case cfg.Env == appconf.Test:
		return currency.StaticSource{Book: book}
	default:
		return currency.NewJitterSource(book)
	}
}

// ListUnits returns the units of a domain in display order.
func (app *Application) ListUnits(d domain.Domain) ([]domain.Unit, error) {
	if d == domain.DomainCurrency {
		return app.Rates.Book().Units(), nil
	}
	return app.Units.ListUnits(d)
}

// FindUnit looks up one unit of a domain by id.
func (app *Application) FindUnit(d domain.Domain, id string) (domain.Unit, bool) {
	if d == domain.DomainCurrency {
		c, ok := app.Rates.Book().Find(id)
		if !ok {
			return domain.Unit{}, false
		}
		return c.Unit(), true
	}
	return app.Units.FindUnit(d, id)
}

// Convert converts value between two units of a domain.
func (app *Application) Convert(d domain.Domain, value float64, from, to string) (float64, error) {
	if d == domain.DomainCurrency {
		return app.Rates.Convert(value, from, to)
	}
	return app.Units.Convert(d, value, from, to)
}

// Format renders a converted value the way its domain is displayed.
func (app *Application) Format(d domain.Domain, value float64, to string) string {
	return app.Formatter.Format(d, value, to)
}

// QuickResult is a formatted alternative conversion.
type QuickResult struct {
	Unit      domain.Unit
	Value     float64
	Formatted string
}

// Quick converts value into up to units.DefaultQuickCount other units of the
// domain, skipping from and to. A zero value yields an empty list.
func (app *Application) Quick(d domain.Domain, value float64, from, to string) ([]QuickResult, error) {
	if d == domain.DomainCurrency {
		return app.quickCurrency(app.Rates.Rates(), value, from, to)
	}

	conversions, err := app.Units.Quick(d, value, from, to, units.DefaultQuickCount)
	if err != nil {
		return nil, err
	}
	out := make([]QuickResult, 0, len(conversions))
	for _, c := range conversions {
		out = append(out, QuickResult{Unit: c.Unit, Value: c.Value, Formatted: app.Formatter.Quick(c.Value)})
	}
	return out, nil
}

// ConvertWithQuick converts value and lists its quick conversions. Currency
// results and their quick conversions are read from the same rate table.
func (app *Application) ConvertWithQuick(d domain.Domain, value float64, from, to string) (float64, []QuickResult, error) {
	if d != domain.DomainCurrency {
		result, err := app.Units.Convert(d, value, from, to)
		if err != nil {
			return 0, nil, err
		}
		quick, err := app.Quick(d, value, from, to)
		if err != nil {
			return 0, nil, err
		}
		return result, quick, nil
	}

	table := app.Rates.Rates()
	result, err := table.Convert(value, from, to)
	if err != nil {
		return 0, nil, err
	}
	quick, err := app.quickCurrency(table, value, from, to)
	if err != nil {
		return 0, nil, err
	}
	return result, quick, nil
}

func (app *Application) quickCurrency(table currency.RateTable, amount float64, from, to string) ([]QuickResult, error) {
	if _, err := table.Convert(amount, from, to); err != nil {
		return nil, err
	}

	out := []QuickResult{}
	if amount == 0 {
		return out, nil
	}
	fromUnit, _ := app.FindUnit(domain.DomainCurrency, from)
	toUnit, _ := app.FindUnit(domain.DomainCurrency, to)

	for _, u := range app.Rates.Book().Units() {
		if len(out) >= units.DefaultQuickCount {
			break
		}
		if u.ID == fromUnit.ID || u.ID == toUnit.ID {
			continue
		}
		v, err := table.Convert(amount, from, u.ID)
		if domain.IsKind(err, domain.KindInvalidNumericInput) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, QuickResult{Unit: u, Value: v, Formatted: app.Formatter.Currency(v)})
	}
	return out, nil
}
