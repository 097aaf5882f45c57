package units

import "convertkit.dev/internal/domain"

// DefaultQuickCount is how many alternative units a quick conversion lists.
const DefaultQuickCount = 4

// QuickConversion is value expressed in one alternative unit.
type QuickConversion struct {
	Unit  domain.Unit
	Value float64
}

// Quick converts value from the from unit into up to n other units of the
// domain, skipping from and to. A zero value yields no quick conversions.
// Units the value cannot be expressed in without overflowing are skipped.
func (reg *Registry) Quick(d domain.Domain, value float64, from, to string, n int) ([]QuickConversion, error) {
	list, err := reg.ListUnits(d)
	if err != nil {
		return nil, err
	}
	if _, err := reg.Convert(d, value, from, to); err != nil {
		return nil, err
	}

	out := []QuickConversion{}
	if value == 0 {
		return out, nil
	}

	for _, u := range list {
		if len(out) >= n {
			break
		}
		if u.ID == from || u.ID == to {
			continue
		}
		v, err := reg.Convert(d, value, from, u.ID)
		if domain.IsKind(err, domain.KindInvalidNumericInput) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, QuickConversion{Unit: u, Value: v})
	}
	return out, nil
}
