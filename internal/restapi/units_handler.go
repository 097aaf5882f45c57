package restapi

import (
	"net/http"

	"convertkit.dev/internal/domain"
	"convertkit.dev/internal/models"
	"convertkit.dev/internal/utils"
)

func unitReference(u domain.Unit) models.UnitReference {
	return models.UnitReference{ID: u.ID, Name: u.Name, Symbol: u.Symbol}
}

func (api *RestAPI) unitsHandler(w http.ResponseWriter, r *http.Request) {
	d, err := domain.ParseDomain(utils.ExtractIDFromParams(r, "domain"))
	if err != nil {
		api.domainErrorResponse(w, r, err)
		return
	}

	list, err := api.ListUnits(d)
	if err != nil {
		api.domainErrorResponse(w, r, err)
		return
	}

	entry := models.DomainUnits{Domain: string(d), Units: make([]models.UnitReference, 0, len(list))}
	for _, u := range list {
		entry.Units = append(entry.Units, unitReference(u))
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences()))
}
