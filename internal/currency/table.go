package currency

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	isocurrency "golang.org/x/text/currency"
	"gopkg.in/yaml.v3"

	"convertkit.dev/internal/domain"
)

//go:embed currencies.yaml
var defaultBook []byte

// Currency describes one supported currency.
type Currency struct {
	Code   string  `yaml:"code"`
	Name   string  `yaml:"name"`
	Symbol string  `yaml:"symbol"`
	Rate   float64 `yaml:"rate"`
}

// Unit returns the currency as a selectable unit.
func (c Currency) Unit() domain.Unit {
	return domain.Unit{ID: c.Code, Name: c.Name, Symbol: c.Symbol}
}

// Book is the immutable list of supported currencies and their static rates.
type Book struct {
	Base       string     `yaml:"base"`
	Currencies []Currency `yaml:"currencies"`
}

// LoadDefaultBook parses the embedded currency list.
func LoadDefaultBook() (*Book, error) {
	return LoadBook(bytes.NewReader(defaultBook))
}

// LoadBook parses and validates a currency list. Codes must be ISO 4217.
func LoadBook(r io.Reader) (*Book, error) {
	const op = "load currencies"

	var book Book
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&book); err != nil {
		return nil, &domain.Error{Op: op, Kind: domain.KindInvalidTable, Err: err}
	}
	if len(book.Currencies) == 0 {
		return nil, domain.NewError(op, domain.KindInvalidTable, "", "no currencies")
	}

	seen := make(map[string]bool, len(book.Currencies))
	for i, c := range book.Currencies {
		unit, err := isocurrency.ParseISO(c.Code)
		if err != nil {
			return nil, domain.NewError(op, domain.KindInvalidTable, "", fmt.Sprintf("%q is not an ISO 4217 code", c.Code))
		}
		book.Currencies[i].Code = unit.String()
		if seen[unit.String()] {
			return nil, domain.NewError(op, domain.KindInvalidTable, "", "duplicate currency "+c.Code)
		}
		seen[unit.String()] = true
	}

	if _, err := book.StaticTable(time.Time{}).validate(book.Codes()); err != nil {
		return nil, err
	}
	return &book, nil
}

// Codes returns the currency codes in display order.
func (b *Book) Codes() []string {
	codes := make([]string, 0, len(b.Currencies))
	for _, c := range b.Currencies {
		codes = append(codes, c.Code)
	}
	return codes
}

// Units returns the currencies as selectable units.
func (b *Book) Units() []domain.Unit {
	out := make([]domain.Unit, 0, len(b.Currencies))
	for _, c := range b.Currencies {
		out = append(out, c.Unit())
	}
	return out
}

// Find looks up a currency by code, ignoring case.
func (b *Book) Find(code string) (Currency, bool) {
	code = strings.ToUpper(code)
	for _, c := range b.Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// StaticTable returns the book's rates as a table stamped with asOf.
func (b *Book) StaticTable(asOf time.Time) RateTable {
	rates := make(map[string]float64, len(b.Currencies))
	for _, c := range b.Currencies {
		rates[c.Code] = c.Rate
	}
	return RateTable{Base: b.Base, Rates: rates, AsOf: asOf}
}

// RateTable maps currency codes to their value in one base currency.
type RateTable struct {
	Base  string
	Rates map[string]float64
	AsOf  time.Time
}

// Clone returns a deep copy of the table.
func (t RateTable) Clone() RateTable {
	rates := make(map[string]float64, len(t.Rates))
	for k, v := range t.Rates {
		rates[k] = v
	}
	return RateTable{Base: t.Base, Rates: rates, AsOf: t.AsOf}
}

// validate checks the table covers codes with positive rates and a base rate of exactly 1.
// It returns the table restricted to codes.
func (t RateTable) validate(codes []string) (RateTable, error) {
	const op = "validate rates"

	if t.Rates[t.Base] != 1 {
		return RateTable{}, domain.NewError(op, domain.KindInvalidTable, "", fmt.Sprintf("base currency %q must have rate 1", t.Base))
	}

	out := RateTable{Base: t.Base, Rates: make(map[string]float64, len(codes)), AsOf: t.AsOf}
	for _, code := range codes {
		r, ok := t.Rates[code]
		if !ok {
			return RateTable{}, domain.NewError(op, domain.KindInvalidTable, "", "missing rate for "+code)
		}
		if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
			return RateTable{}, domain.NewError(op, domain.KindInvalidTable, "", fmt.Sprintf("rate for %s must be finite and positive, got %v", code, r))
		}
		out.Rates[code] = r
	}
	return out, nil
}

// Convert routes amount through the base currency: amount / rate[from] * rate[to].
func (t RateTable) Convert(amount float64, from, to string) (float64, error) {
	const op = "convert currency"

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, domain.NewError(op, domain.KindInvalidNumericInput, "value", "amount must be finite")
	}

	from, to = strings.ToUpper(from), strings.ToUpper(to)
	fromRate, ok := t.Rates[from]
	if !ok {
		return 0, domain.NewError(op, domain.KindUnknownUnit, "from", from)
	}
	toRate, ok := t.Rates[to]
	if !ok {
		return 0, domain.NewError(op, domain.KindUnknownUnit, "to", to)
	}
	if from == to {
		return amount, nil
	}

	// Multiply before dividing so terminating quotients stay exact.
	result := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(toRate)).
		Div(decimal.NewFromFloat(fromRate)).
		InexactFloat64()
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, domain.NewError(op, domain.KindInvalidNumericInput, "value", "result out of range")
	}
	return result, nil
}
