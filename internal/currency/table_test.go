package currency

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"convertkit.dev/internal/domain"
)

func loadBook(t *testing.T) *Book {
	t.Helper()
	book, err := LoadDefaultBook()
	require.NoError(t, err)
	return book
}

func TestLoadDefaultBook(t *testing.T) {
	book := loadBook(t)

	assert.Equal(t, "USD", book.Base)
	assert.Len(t, book.Currencies, 12)
	assert.Equal(t, []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "CHF", "CNY", "INR", "MXN", "BRL", "RUB"}, book.Codes())

	eur, ok := book.Find("eur")
	require.True(t, ok)
	assert.Equal(t, "Euro", eur.Name)
	assert.Equal(t, "€", eur.Symbol)

	units := book.Units()
	assert.Equal(t, domain.Unit{ID: "USD", Name: "US Dollar", Symbol: "$"}, units[0])
}

func TestLoadBookRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not iso", "base: USD\ncurrencies:\n  - {code: XYZW, name: Bogus, symbol: B, rate: 1}\n"},
		{"base rate not one", "base: USD\ncurrencies:\n  - {code: USD, name: US Dollar, symbol: $, rate: 1.1}\n"},
		{"base missing", "base: USD\ncurrencies:\n  - {code: EUR, name: Euro, symbol: E, rate: 1}\n"},
		{"zero rate", "base: USD\ncurrencies:\n  - {code: USD, name: US Dollar, symbol: $, rate: 1}\n  - {code: EUR, name: Euro, symbol: E, rate: 0}\n"},
		{"duplicate", "base: USD\ncurrencies:\n  - {code: USD, name: US Dollar, symbol: $, rate: 1}\n  - {code: usd, name: US Dollar, symbol: $, rate: 1}\n"},
		{"empty", "base: USD\ncurrencies: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBook(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindInvalidTable), "got %v", err)
		})
	}
}

func TestRateTableConvert(t *testing.T) {
	table := loadBook(t).StaticTable(time.Now())

	got, err := table.Convert(100, "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 93.0, got)

	got, err = table.Convert(93, "EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)

	got, err = table.Convert(79, "gbp", "eur")
	require.NoError(t, err)
	assert.InDelta(t, 93.0, got, 1e-9)
}

func TestRateTableConvertRejectsOverflow(t *testing.T) {
	table := loadBook(t).StaticTable(time.Now())

	_, err := table.Convert(1e308, "USD", "JPY")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidNumericInput))
	assert.Equal(t, "value", domain.FieldOf(err))

	got, err := table.Convert(1e300, "USD", "JPY")
	require.NoError(t, err)
	assert.InDelta(t, 1.5014e302, got, 1e288)
}

func TestRateTableIdentity(t *testing.T) {
	book := loadBook(t)
	table := book.StaticTable(time.Now())

	for _, code := range book.Codes() {
		for _, amount := range []float64{0, 1, 12.34, 987654.321, -5} {
			got, err := table.Convert(amount, code, code)
			require.NoError(t, err)
			assert.Equal(t, amount, got, code)
		}
	}
}

func TestRateTableConvertUnknownCode(t *testing.T) {
	table := loadBook(t).StaticTable(time.Now())

	_, err := table.Convert(1, "XAU", "USD")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindUnknownUnit))
	assert.Equal(t, "from", domain.FieldOf(err))

	_, err = table.Convert(1, "USD", "XAU")
	assert.Equal(t, "to", domain.FieldOf(err))
}

func TestRateTableClone(t *testing.T) {
	table := loadBook(t).StaticTable(time.Now())
	clone := table.Clone()
	clone.Rates["EUR"] = 2

	assert.Equal(t, 0.93, table.Rates["EUR"])
}
