package restapi

import (
	"math"
	"net/http"
	"strings"
	"time"

	"convertkit.dev/internal/calc"
	"convertkit.dev/internal/models"
	"convertkit.dev/internal/utils"
)

const dateLayout = "2006-01-02"

func (api *RestAPI) bmiHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	in := calc.BMIInput{
		System:     strings.ToLower(params.Get("system")),
		HeightUnit: params.Get("heightUnit"),
		WeightUnit: params.Get("weightUnit"),
	}
	if in.System == "" {
		in.System = calc.SystemMetric
	}
	if in.HeightUnit == "" {
		in.HeightUnit = "cm"
	}
	if in.WeightUnit == "" {
		in.WeightUnit = "kg"
		if in.System == calc.SystemImperial {
			in.WeightUnit = "lb"
		}
	}

	var fieldErrors map[string][]string
	in.Height, fieldErrors = utils.ParseFloatParam(params, "height", fieldErrors)
	in.Feet, fieldErrors = utils.ParseFloatParam(params, "feet", fieldErrors)
	in.Inches, fieldErrors = utils.ParseFloatParam(params, "inches", fieldErrors)
	in.Weight, fieldErrors = utils.ParseFloatParam(params, "weight", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	res, err := api.BMICategories.Evaluate(in)
	if err != nil {
		api.domainErrorResponse(w, r, err)
		return
	}

	entry := models.BMIEntry{
		BMI:          res.BMI,
		Formatted:    api.Formatter.Fixed(res.BMI, 1),
		Category:     res.Category.Label,
		Severity:     res.Category.Severity,
		HeightMeters: res.HeightMeters,
		WeightKg:     res.WeightKg,
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences()))
}

func (api *RestAPI) bmiCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	all := api.BMICategories.All()
	list := make([]models.BMICategory, 0, len(all))
	for _, c := range all {
		cat := models.BMICategory{Min: c.Min, Label: c.Label, Severity: c.Severity}
		if !math.IsInf(c.Max, 1) {
			upper := c.Max
			cat.Max = &upper
		}
		list = append(list, cat)
	}
	api.sendResponse(w, r, models.NewListResponse(list, models.NewEmptyReferences()))
}

func (api *RestAPI) ageHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	birth, fieldErrors := utils.ParseDateParam(params, "birthDate", time.Time{}, nil)
	end, fieldErrors := utils.ParseDateParam(params, "endDate", today, fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	age, err := calc.AgeBetween(birth, end)
	if err != nil {
		api.domainErrorResponse(w, r, err)
		return
	}

	entry := models.AgeEntry{
		BirthDate:   birth.Format(dateLayout),
		EndDate:     end.Format(dateLayout),
		Years:       age.Years,
		Months:      age.Months,
		Days:        age.Days,
		TotalDays:   age.TotalDays,
		TotalMonths: age.TotalMonths,
		TotalWeeks:  age.TotalWeeks,
		TotalHours:  age.TotalHours,
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences()))
}
