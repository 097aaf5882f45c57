package restapi

import (
	"net/http"

	"convertkit.dev/internal/domain"
	"convertkit.dev/internal/models"
	"convertkit.dev/internal/utils"
)

func (api *RestAPI) convertHandler(w http.ResponseWriter, r *http.Request) {
	d, err := domain.ParseDomain(utils.ExtractIDFromParams(r, "domain"))
	if err != nil {
		api.domainErrorResponse(w, r, err)
		return
	}

	params := r.URL.Query()
	value, fieldErrors := utils.ParseNumericParam(params, "value", nil)
	from, fieldErrors := utils.ParseUnitParam(params, "from", fieldErrors)
	to, fieldErrors := utils.ParseUnitParam(params, "to", fieldErrors)
	swap, fieldErrors := utils.ParseBoolParam(params, "swap", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if swap {
		from, to = to, from
	}

	result, quick, err := api.ConvertWithQuick(d, value, from, to)
	if err != nil {
		api.domainErrorResponse(w, r, err)
		return
	}

	references := models.NewEmptyReferences()
	fromUnit, _ := api.FindUnit(d, from)
	toUnit, _ := api.FindUnit(d, to)
	references.AddUnit(unitReference(fromUnit))
	references.AddUnit(unitReference(toUnit))

	entry := models.Conversion{
		Domain:    string(d),
		Value:     value,
		From:      fromUnit.ID,
		To:        toUnit.ID,
		Result:    result,
		Formatted: api.Format(d, result, toUnit.ID),
	}
	for _, q := range quick {
		entry.Quick = append(entry.Quick, models.QuickConversion{
			Unit:      q.Unit.ID,
			Value:     q.Value,
			Formatted: q.Formatted,
		})
		references.AddUnit(unitReference(q.Unit))
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry, references))
}
