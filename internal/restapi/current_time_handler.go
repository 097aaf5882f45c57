package restapi

import (
	"net/http"
	"time"

	"convertkit.dev/internal/models"
)

func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	entry := models.NewClockEntry(now, api.Formatter.Timestamp(now), api.Formatter.Locale(), api.Rates.Rates().AsOf)
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences()))
}
