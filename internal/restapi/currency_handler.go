package restapi

import (
	"net/http"

	"convertkit.dev/internal/currency"
	"convertkit.dev/internal/domain"
	"convertkit.dev/internal/models"
)

func (api *RestAPI) currencyRatesHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewEntryResponse(api.ratesEntry(api.Rates.Rates()), models.NewEmptyReferences()))
}

// currencyRefreshHandler fetches new rates. When the source fails the
// last-known table is returned with a 502 and marked stale.
func (api *RestAPI) currencyRefreshHandler(w http.ResponseWriter, r *http.Request) {
	table, err := api.Rates.Refresh(r.Context())
	if err != nil {
		if !domain.IsKind(err, domain.KindRateSource) {
			api.domainErrorResponse(w, r, err)
			return
		}
		entry := api.ratesEntry(table)
		entry.Stale = true
		api.sendResponse(w, r, models.NewResponse(http.StatusBadGateway, map[string]interface{}{
			"entry":      entry,
			"references": models.NewEmptyReferences(),
		}, "rate source unavailable"))
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(api.ratesEntry(table), models.NewEmptyReferences()))
}

func (api *RestAPI) ratesEntry(table currency.RateTable) models.RatesEntry {
	book := api.Rates.Book()
	entry := models.RatesEntry{
		Base:                table.Base,
		LastUpdated:         table.AsOf.UnixMilli(),
		ReadableLastUpdated: api.Formatter.Timestamp(table.AsOf),
		Rates:               make([]models.CurrencyRate, 0, len(book.Currencies)),
	}
	for _, c := range book.Currencies {
		entry.Rates = append(entry.Rates, models.CurrencyRate{
			Code:   c.Code,
			Name:   c.Name,
			Symbol: c.Symbol,
			Rate:   table.Rates[c.Code],
		})
	}
	return entry
}
