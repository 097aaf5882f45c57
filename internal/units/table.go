package units

import (
	"fmt"
	"math"

	"convertkit.dev/internal/domain"
)

// Table is the immutable unit list and conversion table of one linear domain.
// Every unit carries exactly one strictly positive factor relative to the base unit.
type Table struct {
	domain  domain.Domain
	base    string
	units   []domain.Unit
	factors map[string]float64
}

// NewTable validates units and factors and builds a Table.
func NewTable(d domain.Domain, base string, units []domain.Unit, factors map[string]float64) (*Table, error) {
	op := fmt.Sprintf("build %s table", d)

	if len(units) == 0 {
		return nil, domain.NewError(op, domain.KindInvalidTable, "", "no units")
	}
	if len(factors) != len(units) {
		return nil, domain.NewError(op, domain.KindInvalidTable, "",
			fmt.Sprintf("%d units but %d factors", len(units), len(factors)))
	}

	seen := make(map[string]bool, len(units))
	for _, u := range units {
		if u.ID == "" {
			return nil, domain.NewError(op, domain.KindInvalidTable, "", "unit with empty id")
		}
		if seen[u.ID] {
			return nil, domain.NewError(op, domain.KindInvalidTable, "", "duplicate unit "+u.ID)
		}
		seen[u.ID] = true

		f, ok := factors[u.ID]
		if !ok {
			return nil, domain.NewError(op, domain.KindInvalidTable, "", "missing factor for "+u.ID)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			return nil, domain.NewError(op, domain.KindInvalidTable, "",
				fmt.Sprintf("factor for %s must be finite and positive, got %v", u.ID, f))
		}
	}

	if factors[base] != 1 {
		return nil, domain.NewError(op, domain.KindInvalidTable, "",
			fmt.Sprintf("base unit %q must have factor 1", base))
	}

	t := &Table{
		domain:  d,
		base:    base,
		units:   append([]domain.Unit(nil), units...),
		factors: make(map[string]float64, len(factors)),
	}
	for id, f := range factors {
		t.factors[id] = f
	}
	return t, nil
}

// Domain returns the domain the table belongs to.
func (t *Table) Domain() domain.Domain { return t.domain }

// Base returns the id of the base unit.
func (t *Table) Base() string { return t.base }

// Units returns a copy of the units in display order.
func (t *Table) Units() []domain.Unit {
	return append([]domain.Unit(nil), t.units...)
}

// Factor returns the scale factor of id relative to the base unit.
func (t *Table) Factor(id string) (float64, bool) {
	f, ok := t.factors[id]
	return f, ok
}

// Convert scales value from one unit to another through the base unit.
// Negative and zero values pass through; no physical validation is applied.
func (t *Table) Convert(value float64, from, to string) (float64, error) {
	op := fmt.Sprintf("convert %s", t.domain)

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, domain.NewError(op, domain.KindInvalidNumericInput, "value", "value must be finite")
	}

	fromFactor, ok := t.factors[from]
	if !ok {
		return 0, domain.NewError(op, domain.KindUnknownUnit, "from", from)
	}
	toFactor, ok := t.factors[to]
	if !ok {
		return 0, domain.NewError(op, domain.KindUnknownUnit, "to", to)
	}

	if from == to {
		return value, nil
	}

	base := value * fromFactor
	return checkResult(op, base/toFactor)
}

// checkResult rejects finite inputs whose conversion overflowed.
func checkResult(op string, result float64) (float64, error) {
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, domain.NewError(op, domain.KindInvalidNumericInput, "value", "result out of range")
	}
	return result, nil
}
