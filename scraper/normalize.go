package scraper

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"mobide/models"
)

const (
	listingBaseURL = "https://suchen.mobile.de"

	// German VAT; gross prices are assumed to include it.
	vatRate = 1.19

	// imageProxySegment is the provider's internal image proxy prefix;
	// stripped so clients hit the CDN directly.
	imageProxySegment = "m.mobile.de/yams-proxy/"
	imageRenditionArg = "?rule=mo-360.jpg"

	// accidentFreeMarker is an optional badge on rendered rows; when
	// present it shifts the fuel/transmission/condition columns right.
	accidentFreeMarker = "Unfallfrei • "
)

var powerRe = regexp.MustCompile(`(\d+) PS`)

// NormalizeSearch converts a raw page of either transport into the
// canonical result. Sponsored rows are dropped here, never returned.
func NormalizeSearch(raw *RawSearch, rate float64) *models.SearchResult {
	result := &models.SearchResult{
		Items:      []models.Listing{},
		TotalCount: raw.TotalCount,
	}

	switch raw.Source {
	case SourceAPI:
		for i := range raw.APIItems {
			if raw.APIItems[i].TopAd {
				continue
			}
			result.Items = append(result.Items, normalizeAPIItem(&raw.APIItems[i], rate))
		}
	case SourceDOM:
		for i := range raw.DOMRows {
			if raw.DOMRows[i].Sponsored {
				continue
			}
			result.Items = append(result.Items, normalizeDOMRow(&raw.DOMRows[i], rate))
		}
	}

	return result
}

func normalizeAPIItem(it *APIItem, rate float64) models.Listing {
	price, withoutVAT := convertPrice(it.Price.Grs.Amount, rate)

	l := models.Listing{
		ID:               it.ID.String(),
		URL:              detailURLFor(it.ID.String()),
		Title:            it.Title,
		Date:             it.Attr.FR,
		Mileage:          parseLocalizedInt(firstToken(it.Attr.ML)),
		Power:            extractPower(it.Attr.PW),
		Price:            price,
		PriceWithoutVAT:  withoutVAT,
		FuelType:         translateFuelType(it.Attr.FT),
		TransmissionType: translateTransmission(it.Attr.TR),
	}
	for _, im := range it.Images {
		l.ImgURLs = append(l.ImgURLs, rewriteImageURL(im.URI))
	}
	return l
}

func normalizeDOMRow(row *DOMRow, rate float64) models.Listing {
	rows := strings.Split(row.DetailsText, " • ")

	// The accident-free badge prepends a column, shifting fuel,
	// transmission and condition one position to the right.
	diff := 0
	if strings.Contains(row.DetailsText, accidentFreeMarker) {
		diff = 1
	}
	field := func(i int) string {
		if i < len(rows) {
			return rows[i]
		}
		return ""
	}

	condition := ""
	if parts := strings.SplitN(field(5+diff), "HU ", 2); len(parts) == 2 {
		condition = parts[1]
	}
	if condition == "Neu" {
		condition = "Новый"
	}

	nativePrice := float64(parseLocalizedInt(firstToken(row.PriceText)))
	price, withoutVAT := convertPrice(nativePrice, rate)

	l := models.Listing{
		ID:               row.ID,
		URL:              listingBaseURL + row.URL,
		Title:            row.Title,
		Date:             field(0),
		Mileage:          parseLocalizedInt(firstToken(field(1))),
		Power:            extractPower(row.DetailsText),
		Price:            price,
		PriceWithoutVAT:  withoutVAT,
		FuelType:         translateFuelType(field(3 + diff)),
		TransmissionType: translateTransmission(field(4 + diff)),
		ConditionType:    condition,
	}
	for _, src := range row.ImgURLs {
		l.ImgURLs = append(l.ImgURLs, rewriteImageURL(src))
	}
	return l
}

// NormalizeAd converts a raw detail record into the canonical listing,
// translating its equipment list into {label, value} pairs.
func NormalizeAd(ad *RawAd, rate float64) *models.Listing {
	price, withoutVAT := convertPrice(ad.Price.Grs.Amount, rate)

	title := ad.Title
	if title == "" {
		title = strings.TrimSpace(ad.Make + " " + ad.Model)
	}

	l := &models.Listing{
		ID:               ad.ID.String(),
		URL:              detailURLFor(ad.ID.String()),
		Title:            title,
		Date:             ad.Attr.FR,
		Mileage:          parseLocalizedInt(firstToken(ad.Attr.ML)),
		Power:            extractPower(ad.Attr.PW),
		Price:            price,
		PriceWithoutVAT:  withoutVAT,
		FuelType:         translateFuelType(ad.Attr.FT),
		TransmissionType: translateTransmission(ad.Attr.TR),
	}
	for _, f := range ad.Features {
		l.Features = append(l.Features, translateFeature(f))
	}
	for _, im := range ad.Images {
		l.ImgURLs = append(l.ImgURLs, rewriteImageURL(im.URI))
	}
	return l
}

// convertPrice converts a native gross amount into the target currency
// and derives the pre-VAT figure, both floored.
func convertPrice(native, rate float64) (price, withoutVAT int) {
	price = int(math.Floor(native * rate))
	withoutVAT = int(math.Floor(native * rate / vatRate))
	return price, withoutVAT
}

// extractPower finds a "<digits> PS" pattern anywhere in the text.
// Absent power is 0, not an error.
func extractPower(s string) int {
	m := powerRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// rewriteImageURL strips the provider's internal image proxy segment
// and pins a fixed rendition size.
func rewriteImageURL(uri string) string {
	uri = strings.TrimPrefix(uri, "https://")
	uri = strings.TrimPrefix(uri, "http://")
	uri = strings.Replace(uri, imageProxySegment, "", 1)
	if i := strings.Index(uri, "?"); i >= 0 {
		uri = uri[:i]
	}
	return "https://" + uri + imageRenditionArg
}

// parseLocalizedInt parses an integer with German thousands separators
// ("150.000" -> 150000). Unparseable input yields 0.
func parseLocalizedInt(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func firstToken(s string) string {
	return strings.SplitN(strings.TrimSpace(s), " ", 2)[0]
}

func detailURLFor(id string) string {
	return listingBaseURL + "/fahrzeuge/details.html?id=" + id
}

func jsonNumber(s string) json.Number {
	return json.Number(s)
}
