package scraper

import "encoding/json"

// Source tags which transport produced a raw payload.
type Source int

const (
	SourceAPI Source = iota
	SourceDOM
)

// RawSearch is one page of untranslated search results. Exactly one of
// APIItems / DOMRows is populated, matching Source.
type RawSearch struct {
	Source     Source
	TotalCount int
	APIItems   []APIItem
	DOMRows    []DOMRow
}

// APIItem is a listing record as the JSON API returns it.
type APIItem struct {
	ID    json.Number `json:"id"`
	Title string      `json:"title"`
	Attr  struct {
		FR string `json:"fr"` // first registration
		ML string `json:"ml"` // mileage, localized ("150.000 km")
		PW string `json:"pw"` // power ("110 kW (150 PS)")
		FT string `json:"ft"` // fuel type, German label
		TR string `json:"tr"` // transmission, German label
	} `json:"attr"`
	Price struct {
		Grs struct {
			Amount float64 `json:"amount"`
		} `json:"grs"`
	} `json:"price"`
	Images []struct {
		URI string `json:"uri"`
	} `json:"images"`
	TopAd bool `json:"topAd"` // paid placement
}

// APISearchResponse is the JSON API's search envelope.
type APISearchResponse struct {
	Items           []APIItem `json:"items"`
	NumResultsTotal int       `json:"numResultsTotal"`
}

// RawAd is a single-listing record from the detail endpoint.
type RawAd struct {
	ID    json.Number `json:"id"`
	Title string      `json:"title"`
	Make  string      `json:"make"`
	Model string      `json:"model"`
	Attr  struct {
		FR string `json:"fr"`
		ML string `json:"ml"`
		PW string `json:"pw"`
		FT string `json:"ft"`
		TR string `json:"tr"`
	} `json:"attr"`
	Price struct {
		Grs struct {
			Amount float64 `json:"amount"`
		} `json:"grs"`
	} `json:"price"`
	Features []string `json:"features"`
	Images   []struct {
		URI string `json:"uri"`
	} `json:"images"`
}

// DOMRow is a listing row scraped from the rendered search page. The
// details line is the " • "-joined text the page shows under the title.
type DOMRow struct {
	ID          string
	URL         string // relative href
	Title       string
	PriceText   string // "25.900 €"
	DetailsText string
	ImgURLs     []string
	Sponsored   bool
}
