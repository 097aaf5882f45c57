package models

// UnitReference describes a unit mentioned by an entry.
type UnitReference struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// CategoryReference describes a catalog category mentioned by an entry.
type CategoryReference struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ReferencesModel References model for related data
type ReferencesModel struct {
	Units      []UnitReference     `json:"units"`
	Categories []CategoryReference `json:"categories"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Units:      []UnitReference{},
		Categories: []CategoryReference{},
	}
}

// AddUnit appends u unless a unit with the same id is already referenced.
func (r *ReferencesModel) AddUnit(u UnitReference) {
	for _, existing := range r.Units {
		if existing.ID == u.ID {
			return
		}
	}
	r.Units = append(r.Units, u)
}

// AddCategory appends c unless its slug is already referenced.
func (r *ReferencesModel) AddCategory(c CategoryReference) {
	for _, existing := range r.Categories {
		if existing.Slug == c.Slug {
			return
		}
	}
	r.Categories = append(r.Categories, c)
}
