package currency

import (
	"context"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJitterSourceStaysWithinBounds(t *testing.T) {
	book := loadBook(t)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	src := NewJitterSourceWithRand(book, rand.New(rand.NewPCG(1, 2)), func() time.Time { return fixed })

	for i := 0; i < 50; i++ {
		table, err := src.FetchRates(context.Background())
		require.NoError(t, err)

		assert.Equal(t, fixed, table.AsOf)
		assert.Equal(t, 1.0, table.Rates["USD"])
		for _, c := range book.Currencies {
			got := table.Rates[c.Code]
			assert.GreaterOrEqual(t, got, c.Rate*(1-MaxJitter), c.Code)
			assert.LessOrEqual(t, got, c.Rate*(1+MaxJitter), c.Code)
		}
	}
}

func TestJitterSourceDoesNotAccumulate(t *testing.T) {
	book := loadBook(t)
	src := NewJitterSourceWithRand(book, rand.New(rand.NewPCG(7, 7)), time.Now)

	var last RateTable
	for i := 0; i < 200; i++ {
		var err error
		last, err = src.FetchRates(context.Background())
		require.NoError(t, err)
	}
	assert.InDelta(t, 150.14, last.Rates["JPY"], 150.14*MaxJitter)
}

func TestJitterSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewJitterSource(loadBook(t)).FetchRates(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStaticSource(t *testing.T) {
	book := loadBook(t)
	table, err := StaticSource{Book: book}.FetchRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.93, table.Rates["EUR"])
}

func noBackoff(int) time.Duration { return 0 }

func TestHTTPSourceParsesFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","time_last_update_unix":1700000000,"rates":{"USD":1,"eur":0.91,"GBP":0.8}}`))
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL, WithRetry(1, noBackoff))
	table, err := src.FetchRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "USD", table.Base)
	assert.Equal(t, 0.91, table.Rates["EUR"])
	assert.Equal(t, time.Unix(1700000000, 0), table.AsOf)
}

func TestHTTPSourceRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","rates":{"USD":1}}`))
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL, WithRetry(3, noBackoff))
	_, err := src.FetchRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPSourceGivesUp(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"result":"error","error-type":"invalid-key"}`))
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL, WithRetry(2, noBackoff))
	_, err := src.FetchRates(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid-key")
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPSourceHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	src := NewHTTPSource(server.URL, WithRetry(5, func(int) time.Duration { return time.Second }))
	_, err := src.FetchRates(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExponentialBackoff(t *testing.T) {
	assert.Equal(t, time.Duration(0), ExponentialBackoff(0))
	assert.Equal(t, time.Second, ExponentialBackoff(1))
	assert.Equal(t, 2*time.Second, ExponentialBackoff(2))
	assert.Equal(t, 4*time.Second, ExponentialBackoff(3))
}
