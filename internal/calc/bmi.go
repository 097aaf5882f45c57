package calc

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"convertkit.dev/internal/domain"
)

//go:embed bmi_categories.yaml
var defaultCategories []byte

// Fixed factors used to normalize imperial inputs to metric.
const (
	MetersPerInch       = 0.0254
	KgPerPound          = 0.453592
	KgPerStone          = 6.35029
	InchesPerFoot       = 12
	CentimetersPerMeter = 100
	GramsPerKg          = 1000
)

// Measurement systems accepted by the BMI calculator.
const (
	SystemMetric   = "metric"
	SystemImperial = "imperial"
)

// BMI computes weightKg / heightMeters². Both inputs must be positive.
func BMI(heightMeters, weightKg float64) (float64, error) {
	const op = "bmi"

	if !isFinite(heightMeters) || heightMeters <= 0 {
		return 0, domain.NewError(op, domain.KindInvalidNumericInput, "height", "height must be positive")
	}
	if !isFinite(weightKg) || weightKg <= 0 {
		return 0, domain.NewError(op, domain.KindInvalidNumericInput, "weight", "weight must be positive")
	}
	return weightKg / (heightMeters * heightMeters), nil
}

// MetricHeight converts a height in "cm" or "m" to meters.
func MetricHeight(value float64, unit string) (float64, error) {
	switch unit {
	case "cm":
		return value / CentimetersPerMeter, nil
	case "m":
		return value, nil
	default:
		return 0, domain.NewError("normalize height", domain.KindUnknownUnit, "heightUnit", unit)
	}
}

// ImperialHeight converts feet and inches to meters.
func ImperialHeight(feet, inches float64) float64 {
	return (feet*InchesPerFoot + inches) * MetersPerInch
}

// WeightKg converts a weight in "kg", "g", "lb" or "st" to kilograms.
func WeightKg(value float64, unit string) (float64, error) {
	switch unit {
	case "kg":
		return value, nil
	case "g":
		return value / GramsPerKg, nil
	case "lb":
		return value * KgPerPound, nil
	case "st":
		return value * KgPerStone, nil
	default:
		return 0, domain.NewError("normalize weight", domain.KindUnknownUnit, "weightUnit", unit)
	}
}

// Category is one half-open BMI range [Min, Max).
type Category struct {
	Min      float64 `yaml:"min" json:"min"`
	Max      float64 `yaml:"max" json:"max"`
	Label    string  `yaml:"label" json:"label"`
	Severity string  `yaml:"severity" json:"severity"`
}

// Contains reports whether bmi falls in [Min, Max).
func (c Category) Contains(bmi float64) bool {
	return bmi >= c.Min && bmi < c.Max
}

// Categories is an ordered, contiguous list of ranges covering [0, +Inf).
type Categories struct {
	list []Category
}

// LoadDefaultCategories parses the embedded category table.
func LoadDefaultCategories() (*Categories, error) {
	return LoadCategories(bytes.NewReader(defaultCategories))
}

// LoadCategories parses and validates a category table.
func LoadCategories(r io.Reader) (*Categories, error) {
	const op = "load bmi categories"

	var doc struct {
		Categories []Category `yaml:"categories"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &domain.Error{Op: op, Kind: domain.KindInvalidTable, Err: err}
	}
	return NewCategories(doc.Categories)
}

// NewCategories validates that list is contiguous and exhaustive over [0, +Inf).
func NewCategories(list []Category) (*Categories, error) {
	const op = "load bmi categories"

	if len(list) == 0 {
		return nil, domain.NewError(op, domain.KindInvalidTable, "", "no categories")
	}
	if list[0].Min != 0 {
		return nil, domain.NewError(op, domain.KindInvalidTable, "", "first category must start at 0")
	}
	for i, c := range list {
		if c.Label == "" {
			return nil, domain.NewError(op, domain.KindInvalidTable, "", fmt.Sprintf("category %d has no label", i))
		}
		if !(c.Max > c.Min) {
			return nil, domain.NewError(op, domain.KindInvalidTable, "", fmt.Sprintf("category %q is empty", c.Label))
		}
		if i > 0 && list[i-1].Max != c.Min {
			return nil, domain.NewError(op, domain.KindInvalidTable, "",
				fmt.Sprintf("gap between %q and %q", list[i-1].Label, c.Label))
		}
	}
	if !math.IsInf(list[len(list)-1].Max, 1) {
		return nil, domain.NewError(op, domain.KindInvalidTable, "", "last category must be open-ended")
	}
	return &Categories{list: append([]Category(nil), list...)}, nil
}

// All returns the categories in order.
func (c *Categories) All() []Category {
	return append([]Category(nil), c.list...)
}

// Lookup returns the first category containing bmi.
func (c *Categories) Lookup(bmi float64) (Category, error) {
	if !isFinite(bmi) || bmi < 0 {
		return Category{}, domain.NewError("bmi category", domain.KindInvalidNumericInput, "bmi", fmt.Sprintf("%v", bmi))
	}
	for _, cat := range c.list {
		if cat.Contains(bmi) {
			return cat, nil
		}
	}
	// Unreachable for a validated table.
	return Category{}, domain.NewError("bmi category", domain.KindInvalidTable, "", "no category matched")
}

// BMIInput is the raw form of a BMI request before unit normalization.
type BMIInput struct {
	System     string
	Height     float64
	HeightUnit string
	Feet       float64
	Inches     float64
	Weight     float64
	WeightUnit string
}

// BMIResult is a computed BMI with its normalized inputs and category.
type BMIResult struct {
	HeightMeters float64
	WeightKg     float64
	BMI          float64
	Category     Category
}

// Evaluate normalizes in, computes the BMI and looks up its category.
func (c *Categories) Evaluate(in BMIInput) (BMIResult, error) {
	var height float64
	switch in.System {
	case SystemMetric, "":
		h, err := MetricHeight(in.Height, in.HeightUnit)
		if err != nil {
			return BMIResult{}, err
		}
		height = h
	case SystemImperial:
		height = ImperialHeight(in.Feet, in.Inches)
	default:
		return BMIResult{}, domain.NewError("bmi", domain.KindUnknownUnit, "system", in.System)
	}

	weight, err := WeightKg(in.Weight, in.WeightUnit)
	if err != nil {
		return BMIResult{}, err
	}

	bmi, err := BMI(height, weight)
	if err != nil {
		return BMIResult{}, err
	}

	cat, err := c.Lookup(bmi)
	if err != nil {
		return BMIResult{}, err
	}
	return BMIResult{HeightMeters: height, WeightKg: weight, BMI: bmi, Category: cat}, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
