// Package format renders conversion results for display.
package format

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"convertkit.dev/internal/domain"
	"convertkit.dev/internal/units"
)

// Magnitudes outside [LowerThreshold, UpperThreshold] are rendered in exponential notation.
const (
	LowerThreshold = 0.01
	UpperThreshold = 10000

	defaultFractionDigits  = 6
	quickFractionDigits    = 4
	currencyFractionDigits = 2
)

// Formatter renders numbers using the digit grouping of one locale.
type Formatter struct {
	tag language.Tag
}

// New returns a Formatter for a BCP 47 locale such as "en-US" or "de".
// An empty locale means English.
func New(locale string) (*Formatter, error) {
	if locale == "" {
		return &Formatter{tag: language.English}, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}
	return &Formatter{tag: tag}, nil
}

// Default returns an English Formatter.
func Default() *Formatter {
	return &Formatter{tag: language.English}
}

// Locale returns the locale the formatter groups digits for.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Format renders value the way the given domain displays results.
func (f *Formatter) Format(d domain.Domain, value float64, to string) string {
	switch d {
	case domain.DomainTemperature:
		return Temperature(value, to)
	case domain.DomainCurrency:
		return f.Currency(value)
	default:
		return f.Number(value)
	}
}

// Number applies the default rule: exponential notation with six fractional
// digits for very small or very large magnitudes, grouped digits with at most
// six fractional digits otherwise.
func (f *Formatter) Number(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'g', -1, 64)
	}
	abs := math.Abs(value)
	if abs < LowerThreshold || abs > UpperThreshold {
		return Exponential(value, defaultFractionDigits)
	}
	return f.decimal(value, 0, defaultFractionDigits)
}

// Currency renders an amount with exactly two fractional digits.
func (f *Formatter) Currency(value float64) string {
	return f.decimal(value, currencyFractionDigits, currencyFractionDigits)
}

// Quick renders a secondary conversion with at most four fractional digits.
func (f *Formatter) Quick(value float64) string {
	return f.decimal(value, 0, quickFractionDigits)
}

// Fixed renders value with exactly digits fractional digits.
func (f *Formatter) Fixed(value float64, digits int) string {
	return f.decimal(value, digits, digits)
}

func (f *Formatter) decimal(value float64, minDigits, maxDigits int) string {
	p := message.NewPrinter(f.tag)
	rounded := roundHalfUp(value, maxDigits)
	return p.Sprintf("%v", number.Decimal(rounded,
		number.MinFractionDigits(minDigits),
		number.MaxFractionDigits(maxDigits)))
}

// Exponential renders value as d.dddddde±x with no zero padding on the exponent.
func Exponential(value float64, digits int) string {
	s := strconv.FormatFloat(value, 'e', digits, 64)
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + "e" + sign + exp
}

// Temperature rounds to two decimals and appends the scale suffix. Kelvin is
// written without a degree sign; unknown scales get no suffix.
func Temperature(value float64, to string) string {
	s := strconv.FormatFloat(roundHalfUp(value, 2), 'f', -1, 64)
	switch to {
	case units.Celsius:
		return s + "°C"
	case units.Fahrenheit:
		return s + "°F"
	case units.Kelvin:
		return s + " K"
	case units.Rankine:
		return s + "°R"
	default:
		return s
	}
}

// roundHalfUp rounds towards +Inf on ties and never returns negative zero.
func roundHalfUp(value float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	r := math.Floor(value*scale+0.5) / scale
	if r == 0 {
		return 0
	}
	return r
}
