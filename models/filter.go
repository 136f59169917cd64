package models

import "strings"

// Range is a (from, to) bound, either side optional. Values arrive as
// strings straight from the request layer; the literal "null" means
// absent, not the text "null".
type Range struct {
	From string
	To   string
}

func (r Range) IsZero() bool {
	return normalizeBound(r.From) == "" && normalizeBound(r.To) == ""
}

func normalizeBound(v string) string {
	if v == "null" {
		return ""
	}
	return v
}

// SearchFilter is the generic filter vocabulary the frontend speaks.
// Brand and Model may be provider codes or human labels; the search
// service resolves labels against reference data. A Model of the form
// "group_<id>" selects a whole model group instead of a single model.
type SearchFilter struct {
	Brand string
	Model string

	Price   Range // in the target currency, not EUR
	Mileage Range
	Year    Range
	Power   Range // horsepower

	FuelTypes     []string
	Bodies        []string
	Transmissions []string
	Features      []string
	Condition     string

	Sort  string
	Order string // "asc" / "desc"
	Page  int    // 1-based

	// SessionID partitions browser pages between users so that
	// concurrent searches do not clobber each other's tab.
	SessionID string

	// ForceBrowser bypasses the JSON API and scrapes the rendered
	// search page instead.
	ForceBrowser bool
}

// ModelGroup splits the "group_<id>" sentinel: it returns the plain
// model code and the group id, exactly one of which is non-empty when a
// model is selected at all.
func (f SearchFilter) ModelGroup() (model, group string) {
	model = normalizeBound(f.Model)
	if strings.HasPrefix(model, "group_") {
		group = strings.TrimPrefix(model, "group_")
		model = ""
	}
	return model, group
}
