package models

// BMIEntry is a computed body mass index.
type BMIEntry struct {
	BMI          float64 `json:"bmi"`
	Formatted    string  `json:"formatted"`
	Category     string  `json:"category"`
	Severity     string  `json:"severity"`
	HeightMeters float64 `json:"heightMeters"`
	WeightKg     float64 `json:"weightKg"`
}

// BMICategory is one band of the BMI scale. Max is null for the open band.
type BMICategory struct {
	Min      float64  `json:"min"`
	Max      *float64 `json:"max"`
	Label    string   `json:"label"`
	Severity string   `json:"severity"`
}

// AgeEntry is the age between a birth date and an end date.
type AgeEntry struct {
	BirthDate   string `json:"birthDate"`
	EndDate     string `json:"endDate"`
	Years       int    `json:"years"`
	Months      int    `json:"months"`
	Days        int    `json:"days"`
	TotalDays   int    `json:"totalDays"`
	TotalMonths int    `json:"totalMonths"`
	TotalWeeks  int    `json:"totalWeeks"`
	TotalHours  int    `json:"totalHours"`
}
