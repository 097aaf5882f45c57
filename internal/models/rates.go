package models

// CurrencyRate is one row of the current rate table.
type CurrencyRate struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
}

// RatesEntry is the rate table with its freshness.
type RatesEntry struct {
	Base                string         `json:"base"`
	LastUpdated         int64          `json:"lastUpdated"`
	ReadableLastUpdated string         `json:"readableLastUpdated"`
	Rates               []CurrencyRate `json:"rates"`
	Stale               bool           `json:"stale,omitempty"`
}
