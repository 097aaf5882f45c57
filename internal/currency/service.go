package currency

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"convertkit.dev/internal/domain"
	"convertkit.dev/internal/logging"
)

// ServiceConfig tunes how the Service talks to its Source.
type ServiceConfig struct {
	// FetchTimeout bounds a single refresh (default: 15s).
	FetchTimeout time.Duration
	// RefreshInterval enables periodic refresh when positive.
	RefreshInterval time.Duration
}

// Service owns the current exchange-rate table. Conversions read the table
// while refreshes replace it, so access is guarded by a RWMutex.
type Service struct {
	book   *Book
	source Source
	config ServiceConfig
	logger *slog.Logger

	mu    sync.RWMutex
	table RateTable

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
	startOnce    sync.Once
}

// NewService starts from the book's static rates and refreshes from source on demand.
func NewService(book *Book, source Source, config ServiceConfig, logger *slog.Logger) *Service {
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		book:         book,
		source:       source,
		config:       config,
		logger:       logger.With(slog.String("component", "currency_rates")),
		table:        book.StaticTable(time.Now()),
		shutdownChan: make(chan struct{}),
	}
}

// Book returns the supported currencies.
func (s *Service) Book() *Book {
	return s.book
}

// Rates returns a copy of the current table.
func (s *Service) Rates() RateTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

// Convert converts amount between two currencies at the current rates.
func (s *Service) Convert(amount float64, from, to string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Convert(amount, from, to)
}

// Refresh asks the source for new rates. On failure the last-known table is
// kept and returned together with a rate_source error.
func (s *Service) Refresh(ctx context.Context) (RateTable, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.FetchTimeout)
	defer cancel()

	start := time.Now()
	fetched, err := s.source.FetchRates(ctx)
	if err == nil {
		fetched, err = s.accept(fetched)
	}
	if err != nil {
		logging.LogError(s.logger, "rate refresh failed, keeping last known rates", err)
		return s.Rates(), &domain.Error{Op: "refresh rates", Kind: domain.KindRateSource, Err: err}
	}

	s.mu.Lock()
	s.table = fetched
	s.mu.Unlock()

	logging.LogOperation(s.logger, "rates_refreshed",
		slog.Int("currencies", len(fetched.Rates)),
		slog.Time("as_of", fetched.AsOf),
		slog.Duration("duration", time.Since(start)))

	return fetched.Clone(), nil
}

// accept rebases a fetched table onto the book's base currency and keeps only
// the book's currencies.
func (s *Service) accept(t RateTable) (RateTable, error) {
	if t.Base != s.book.Base {
		pivot, ok := t.Rates[s.book.Base]
		if !ok || pivot <= 0 {
			return RateTable{}, fmt.Errorf("feed base %s has no rate for %s", t.Base, s.book.Base)
		}
		rebased := RateTable{Base: s.book.Base, Rates: make(map[string]float64, len(t.Rates)), AsOf: t.AsOf}
		for code, r := range t.Rates {
			rebased.Rates[code] = r / pivot
		}
		rebased.Rates[s.book.Base] = 1
		t = rebased
	}
	return t.validate(s.book.Codes())
}

// Start launches periodic refresh when RefreshInterval is positive.
func (s *Service) Start() {
	if s.config.RefreshInterval <= 0 {
		return
	}
	s.startOnce.Do(func() {
		s.wg.Add(1)
		go s.refreshPeriodically()
	})
}

func (s *Service) refreshPeriodically() {
	defer s.wg.Done()

	// Shutdown cancels a fetch that is still in flight.
	ctx, cancel := context.WithCancel(logging.WithLogger(context.Background(), s.logger))
	defer cancel()
	go func() {
		select {
		case <-s.shutdownChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	ticker := time.NewTicker(s.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = s.Refresh(ctx)
		case <-s.shutdownChan:
			logging.LogOperation(s.logger, "shutting_down_rate_refresh")
			return
		}
	}
}

// Shutdown stops periodic refresh and waits for it to finish.
func (s *Service) Shutdown() {
	s.shutdownOnce.Do(func() {
		close(s.shutdownChan)
		s.wg.Wait()
	})
}
