package units

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"convertkit.dev/internal/domain"
)

//go:embed units.yaml
var defaultTables []byte

type unitDTO struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Symbol string   `yaml:"symbol"`
	Factor *float64 `yaml:"factor"`
}

type domainDTO struct {
	Name  string    `yaml:"name"`
	Kind  string    `yaml:"kind"`
	Base  string    `yaml:"base"`
	Units []unitDTO `yaml:"units"`
}

type tablesDTO struct {
	Domains []domainDTO `yaml:"domains"`
}

// Registry holds the unit tables of every measurement domain. It is built once
// at startup and only read afterwards, so it is safe for concurrent use.
type Registry struct {
	linear      map[domain.Domain]*Table
	temperature []domain.Unit
}

// LoadDefault builds the registry from the embedded unit tables.
func LoadDefault() (*Registry, error) {
	return Load(bytes.NewReader(defaultTables))
}

// Load parses and validates a unit table document.
func Load(r io.Reader) (*Registry, error) {
	var doc tablesDTO
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &domain.Error{Op: "load unit tables", Kind: domain.KindInvalidTable, Err: err}
	}

	reg := &Registry{linear: make(map[domain.Domain]*Table)}

	for _, dd := range doc.Domains {
		d, err := domain.ParseDomain(dd.Name)
		if err != nil || d == domain.DomainCurrency {
			return nil, domain.NewError("load unit tables", domain.KindInvalidTable, "", "unsupported domain "+dd.Name)
		}

		units := make([]domain.Unit, 0, len(dd.Units))
		for _, u := range dd.Units {
			units = append(units, domain.Unit{ID: u.ID, Name: u.Name, Symbol: u.Symbol})
		}

		switch dd.Kind {
		case "linear":
			if !d.IsLinear() {
				return nil, domain.NewError("load unit tables", domain.KindInvalidTable, "", dd.Name+" is not a linear domain")
			}
			factors := make(map[string]float64, len(dd.Units))
			for _, u := range dd.Units {
				if u.Factor == nil {
					return nil, domain.NewError("load unit tables", domain.KindInvalidTable, "",
						fmt.Sprintf("%s: unit %s has no factor", dd.Name, u.ID))
				}
				factors[u.ID] = *u.Factor
			}
			table, err := NewTable(d, dd.Base, units, factors)
			if err != nil {
				return nil, err
			}
			reg.linear[d] = table
		case "affine":
			if d != domain.DomainTemperature {
				return nil, domain.NewError("load unit tables", domain.KindInvalidTable, "", dd.Name+" is not an affine domain")
			}
			if err := validateTemperatureUnits(units); err != nil {
				return nil, err
			}
			reg.temperature = units
		default:
			return nil, domain.NewError("load unit tables", domain.KindInvalidTable, "",
				fmt.Sprintf("%s: unknown kind %q", dd.Name, dd.Kind))
		}
	}

	for _, d := range domain.LinearDomains {
		if _, ok := reg.linear[d]; !ok {
			return nil, domain.NewError("load unit tables", domain.KindInvalidTable, "", "missing domain "+string(d))
		}
	}
	if reg.temperature == nil {
		return nil, domain.NewError("load unit tables", domain.KindInvalidTable, "", "missing domain temperature")
	}

	return reg, nil
}

func validateTemperatureUnits(units []domain.Unit) error {
	known := map[string]bool{Celsius: true, Fahrenheit: true, Kelvin: true, Rankine: true}
	for _, u := range units {
		if !known[u.ID] {
			return domain.NewError("load unit tables", domain.KindInvalidTable, "", "unsupported temperature scale "+u.ID)
		}
		delete(known, u.ID)
	}
	if len(known) != 0 {
		return domain.NewError("load unit tables", domain.KindInvalidTable, "", "temperature table is incomplete")
	}
	return nil
}

// Table returns the conversion table of a linear domain.
func (reg *Registry) Table(d domain.Domain) (*Table, error) {
	t, ok := reg.linear[d]
	if !ok {
		return nil, domain.NewError("lookup table", domain.KindUnknownDomain, "domain", string(d))
	}
	return t, nil
}

// ListUnits returns the units of a measurement domain in display order.
// Currency is served by the rate service, not the registry.
func (reg *Registry) ListUnits(d domain.Domain) ([]domain.Unit, error) {
	if d == domain.DomainTemperature {
		return append([]domain.Unit(nil), reg.temperature...), nil
	}
	t, err := reg.Table(d)
	if err != nil {
		return nil, err
	}
	return t.Units(), nil
}

// FindUnit looks up a unit by id within a domain.
func (reg *Registry) FindUnit(d domain.Domain, id string) (domain.Unit, bool) {
	list, err := reg.ListUnits(d)
	if err != nil {
		return domain.Unit{}, false
	}
	for _, u := range list {
		if u.ID == id {
			return u, true
		}
	}
	return domain.Unit{}, false
}

// Convert converts value between two units of a measurement domain.
func (reg *Registry) Convert(d domain.Domain, value float64, from, to string) (float64, error) {
	if d == domain.DomainTemperature {
		return ConvertTemperature(value, from, to)
	}
	t, err := reg.Table(d)
	if err != nil {
		return 0, err
	}
	return t.Convert(value, from, to)
}
