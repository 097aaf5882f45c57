package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"convertkit.dev/internal/app"
	"convertkit.dev/internal/domain"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

// DataTypes are the values accepted by the dataType query parameter.
var DataTypes = []string{"units", "currencies", "rates", "bmi", "catalog", "config"}

// WebUI serves read-only debug pages over the loaded tables.
type WebUI struct {
	*app.Application
}

func New(application *app.Application) *WebUI {
	return &WebUI{Application: application}
}

type debugData struct {
	Title     string
	Pre       string
	DataTypes []string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := debugTemplate.Execute(w, debugData{
		Title:     title,
		Pre:       spew.Sdump(data),
		DataTypes: DataTypes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "units":
		units := make(map[domain.Domain][]domain.Unit, len(domain.AllDomains))
		for _, d := range domain.AllDomains {
			list, err := webUI.ListUnits(d)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			units[d] = list
		}
		data = units
		title = "Unit Tables"
	case "currencies":
		data = webUI.Rates.Book().Currencies
		title = "Currencies"
	case "rates":
		data = webUI.Rates.Rates()
		title = "Exchange Rates"
	case "bmi":
		data = webUI.BMICategories.All()
		title = "BMI Categories"
	case "catalog":
		data = webUI.Catalog.Entries()
		title = "Catalog"
	case "config":
		data = webUI.Config
		title = "Configuration"
	default:
		data = map[string]string{
			"error": "Please use one of the following: units, currencies, rates, bmi, catalog, config.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
