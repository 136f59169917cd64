package models

// Listing is the canonical, currency- and terminology-translated record
// returned to callers regardless of which transport produced it.
type Listing struct {
	ID               string    `json:"id"`
	URL              string    `json:"url"`
	Title            string    `json:"title"`
	Date             string    `json:"date"`
	Mileage          int       `json:"mileage"`
	Power            int       `json:"power"`
	Price            int       `json:"price"`
	PriceWithoutVAT  int       `json:"priceWithoutVAT"`
	FuelType         string    `json:"fuelType"`
	TransmissionType string    `json:"transmissionType"`
	ConditionType    string    `json:"conditionType,omitempty"`
	Features         []Feature `json:"features,omitempty"`
	ImgURLs          []string  `json:"imgUrls"`
}

// Feature is a translated equipment entry: Label is the localized text,
// Value the provider enum code (or the raw label when no code exists).
type Feature struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type SearchResult struct {
	Items      []Listing `json:"items"`
	TotalCount int       `json:"totalCount"`
}

// Option is a reference-data entry (brand, color).
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ModelOption is a per-brand model entry. IsGroup marks umbrella
// selectors that cover several model codes (e.g. "C-Класс (Все)").
type ModelOption struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	IsGroup bool   `json:"isGroup"`
}
