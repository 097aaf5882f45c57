package calc

import (
	"math"
	"time"

	"convertkit.dev/internal/domain"
)

// AverageDaysPerMonth approximates a month when deriving TotalMonths.
const AverageDaysPerMonth = 30.44

const hoursPerDay = 24

// AgeResult is the calendar and aggregate difference between two dates.
type AgeResult struct {
	Years       int `json:"years"`
	Months      int `json:"months"`
	Days        int `json:"days"`
	TotalDays   int `json:"totalDays"`
	TotalMonths int `json:"totalMonths"`
	TotalWeeks  int `json:"totalWeeks"`
	TotalHours  int `json:"totalHours"`
}

// AgeBetween returns the age at end of someone born on birth. Both times are
// reduced to their UTC calendar date first. A birth date after end is an
// invalid_range error.
//
// Years, months and days are computed by component subtraction with borrowing:
// a negative day count borrows the length of the month before end's month, a
// negative month count borrows a year. Totals derive from the whole-day
// difference; TotalMonths uses an average month length and TotalHours counts
// whole days only.
func AgeBetween(birth, end time.Time) (AgeResult, error) {
	birth = calendarDate(birth)
	end = calendarDate(end)

	if birth.After(end) {
		return AgeResult{}, domain.NewError("age", domain.KindInvalidRange, "birthDate", "birth date is after end date")
	}

	years := end.Year() - birth.Year()
	months := int(end.Month()) - int(birth.Month())
	days := end.Day() - birth.Day()

	if days < 0 {
		months--
		days += daysInPreviousMonth(end)
	}
	if months < 0 {
		years--
		months += 12
	}

	totalDays := int(math.Floor(end.Sub(birth).Hours() / hoursPerDay))

	return AgeResult{
		Years:       years,
		Months:      months,
		Days:        days,
		TotalDays:   totalDays,
		TotalMonths: int(math.Floor(float64(totalDays) / AverageDaysPerMonth)),
		TotalWeeks:  totalDays / 7,
		TotalHours:  totalDays * hoursPerDay,
	}, nil
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysInPreviousMonth is the length of the month before t's month.
func daysInPreviousMonth(t time.Time) int {
	// Day 0 of a month normalizes to the last day of the month before it.
	return time.Date(t.Year(), t.Month(), 0, 0, 0, 0, 0, time.UTC).Day()
}
