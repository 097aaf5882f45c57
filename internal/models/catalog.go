package models

// CatalogEntry is one converter or calculator listed in the catalog.
type CatalogEntry struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Path        string   `json:"path"`
	Category    string   `json:"category"`
	Domain      string   `json:"domain,omitempty"`
	Keywords    []string `json:"keywords"`
}
