package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	handle := func(method, path string, h handlerFunc) {
		router.Handler(method, path, http.HandlerFunc(h))
	}

	handle(http.MethodGet, "/api/v1/current-time.json", api.currentTimeHandler)
	handle(http.MethodGet, "/api/v1/catalog.json", api.catalogHandler)
	handle(http.MethodGet, "/api/v1/catalog/:category", api.catalogCategoryHandler)
	handle(http.MethodGet, "/api/v1/search.json", api.searchHandler)
	handle(http.MethodGet, "/api/v1/units/:domain", api.unitsHandler)
	handle(http.MethodGet, "/api/v1/convert/:domain", api.convertHandler)
	handle(http.MethodGet, "/api/v1/currency/rates.json", api.currencyRatesHandler)
	handle(http.MethodPost, "/api/v1/currency/refresh", api.currencyRefreshHandler)
	handle(http.MethodGet, "/api/v1/bmi.json", api.bmiHandler)
	handle(http.MethodGet, "/api/v1/bmi/categories.json", api.bmiCategoriesHandler)
	handle(http.MethodGet, "/api/v1/age.json", api.ageHandler)

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.MethodNotAllowed = http.HandlerFunc(api.methodNotAllowedResponse)
}
