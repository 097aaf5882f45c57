package restapi

import (
	"net/http"

	"convertkit.dev/internal/catalog"
	"convertkit.dev/internal/models"
	"convertkit.dev/internal/utils"
)

func (api *RestAPI) catalogHandler(w http.ResponseWriter, r *http.Request) {
	api.sendCatalogList(w, r, api.Catalog.Entries())
}

func (api *RestAPI) catalogCategoryHandler(w http.ResponseWriter, r *http.Request) {
	slug := utils.ExtractIDFromParams(r, "category")

	entries, err := api.Catalog.ByCategory(slug)
	if err != nil {
		api.domainErrorResponse(w, r, err)
		return
	}
	api.sendCatalogList(w, r, entries)
}

func (api *RestAPI) searchHandler(w http.ResponseWriter, r *http.Request) {
	query, err := utils.ValidateAndSanitizeQuery(r.URL.Query().Get("q"))
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"q": {err.Error()}})
		return
	}
	api.sendCatalogList(w, r, api.Catalog.Search(query))
}

// sendCatalogList renders entries with the categories they belong to as references.
func (api *RestAPI) sendCatalogList(w http.ResponseWriter, r *http.Request, entries []catalog.Entry) {
	list := make([]models.CatalogEntry, 0, len(entries))
	references := models.NewEmptyReferences()

	for _, e := range entries {
		list = append(list, models.CatalogEntry{
			Title:       e.Title,
			Description: e.Description,
			Path:        e.Path,
			Category:    e.Category,
			Domain:      string(e.Domain),
			Keywords:    e.Keywords,
		})
		if cat, ok := api.Catalog.Category(e.Category); ok {
			references.AddCategory(models.CategoryReference{
				Slug:        cat.Slug,
				Title:       cat.Title,
				Description: cat.Description,
			})
		}
	}

	api.sendResponse(w, r, models.NewListResponse(list, references))
}
