package units

import (
	"math"

	"convertkit.dev/internal/domain"
)

// Temperature scale ids.
const (
	Celsius    = "c"
	Fahrenheit = "f"
	Kelvin     = "k"
	Rankine    = "r"
)

// ConvertTemperature converts between Celsius, Fahrenheit, Kelvin and Rankine
// by way of Celsius. Values below absolute zero are converted like any other.
func ConvertTemperature(value float64, from, to string) (float64, error) {
	const op = "convert temperature"

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, domain.NewError(op, domain.KindInvalidNumericInput, "value", "value must be finite")
	}

	var celsius float64
	switch from {
	case Celsius:
		celsius = value
	case Fahrenheit:
		celsius = (value - 32) * 5 / 9
	case Kelvin:
		celsius = value - 273.15
	case Rankine:
		celsius = (value - 491.67) * 5 / 9
	default:
		return 0, domain.NewError(op, domain.KindUnknownUnit, "from", from)
	}

	if from == to {
		return value, nil
	}

	var result float64
	switch to {
	case Celsius:
		result = celsius
	case Fahrenheit:
		result = celsius*9/5 + 32
	case Kelvin:
		result = celsius + 273.15
	case Rankine:
		result = (celsius + 273.15) * 9 / 5
	default:
		return 0, domain.NewError(op, domain.KindUnknownUnit, "to", to)
	}
	return checkResult(op, result)
}
