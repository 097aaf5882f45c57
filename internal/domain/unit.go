package domain

import "strings"

// Domain names a family of mutually convertible units.
type Domain string

const (
	DomainLength      Domain = "length"
	DomainArea        Domain = "area"
	DomainVolume      Domain = "volume"
	DomainWeight      Domain = "weight"
	DomainTemperature Domain = "temperature"
	DomainCurrency    Domain = "currency"
)

// LinearDomains are the domains converted by scale factor through a base unit.
var LinearDomains = []Domain{DomainLength, DomainArea, DomainVolume, DomainWeight}

// AllDomains lists every domain the registry and rate service can serve.
var AllDomains = []Domain{DomainLength, DomainArea, DomainVolume, DomainWeight, DomainTemperature, DomainCurrency}

// ParseDomain normalizes a user-supplied domain name.
func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllDomains {
		if d == known {
			return d, nil
		}
	}
	return "", NewError("parse domain", KindUnknownDomain, "domain", s)
}

// IsLinear reports whether d converts by scale factor.
func (d Domain) IsLinear() bool {
	for _, l := range LinearDomains {
		if d == l {
			return true
		}
	}
	return false
}

// Unit describes one selectable unit. Units are immutable once loaded.
type Unit struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Symbol string `json:"symbol" yaml:"symbol"`
}
