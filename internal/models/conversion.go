package models

// QuickConversion is one extra target of a conversion, already formatted.
type QuickConversion struct {
	Unit      string  `json:"unit"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

// Conversion is the result of converting Value from one unit to another.
type Conversion struct {
	Domain    string            `json:"domain"`
	Value     float64           `json:"value"`
	From      string            `json:"from"`
	To        string            `json:"to"`
	Result    float64           `json:"result"`
	Formatted string            `json:"formatted"`
	Quick     []QuickConversion `json:"quick,omitempty"`
}

// DomainUnits lists the units of one conversion domain.
type DomainUnits struct {
	Domain string          `json:"domain"`
	Units  []UnitReference `json:"units"`
}
