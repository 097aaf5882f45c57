package currency

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// Source supplies exchange rates. Implementations may block on the network
// and must honor ctx cancellation.
type Source interface {
	FetchRates(ctx context.Context) (RateTable, error)
}

// MaxJitter is the largest relative change JitterSource applies to a rate.
const MaxJitter = 0.01

// JitterSource simulates a live feed by perturbing every static rate by an
// independent uniform factor in [-MaxJitter, +MaxJitter]. The base currency
// stays at exactly 1.
type JitterSource struct {
	book *Book
	now  func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewJitterSource returns a JitterSource around the book's static rates.
func NewJitterSource(book *Book) *JitterSource {
	return NewJitterSourceWithRand(book, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)), time.Now)
}

// NewJitterSourceWithRand allows deterministic randomness and clock, mainly for tests.
func NewJitterSourceWithRand(book *Book, rng *rand.Rand, now func() time.Time) *JitterSource {
	return &JitterSource{book: book, rng: rng, now: now}
}

// FetchRates returns a freshly perturbed copy of the static table.
func (s *JitterSource) FetchRates(ctx context.Context) (RateTable, error) {
	if err := ctx.Err(); err != nil {
		return RateTable{}, err
	}

	table := s.book.StaticTable(s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, code := range s.book.Codes() {
		if code == table.Base {
			continue
		}
		table.Rates[code] *= 1 + (s.rng.Float64()*2*MaxJitter - MaxJitter)
	}
	return table, nil
}

// StaticSource always returns the book's static rates.
type StaticSource struct {
	Book *Book
	Now  func() time.Time
}

func (s StaticSource) FetchRates(ctx context.Context) (RateTable, error) {
	if err := ctx.Err(); err != nil {
		return RateTable{}, err
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return s.Book.StaticTable(now()), nil
}
