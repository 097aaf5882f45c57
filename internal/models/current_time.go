package models

import "time"

// ClockEntry reports the server clock alongside the age of the exchange
// rates the converter is using.
type ClockEntry struct {
	Time         int64  `json:"time"`
	ReadableTime string `json:"readableTime"`
	LocalTime    string `json:"localTime"`
	Locale       string `json:"locale"`
	RatesAsOf    int64  `json:"ratesAsOf"`
	RatesAgeSecs int64  `json:"ratesAgeSeconds"`
}

// NewClockEntry builds the current-time entry. localTime is now already
// rendered for locale.
func NewClockEntry(now time.Time, localTime, locale string, ratesAsOf time.Time) ClockEntry {
	age := now.Sub(ratesAsOf)
	if age < 0 {
		age = 0
	}
	return ClockEntry{
		Time:         now.UnixMilli(),
		ReadableTime: now.Format(time.RFC3339),
		LocalTime:    localTime,
		Locale:       locale,
		RatesAsOf:    ratesAsOf.UnixMilli(),
		RatesAgeSecs: int64(age / time.Second),
	}
}
