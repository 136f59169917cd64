package scraper

import (
	"bytes"
	"errors"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func loadSearchDocument(t *testing.T) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(loadFixture(t, "search_page.html")))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

func TestExtractSearchDocument(t *testing.T) {
	raw, err := extractSearchDocument(loadSearchDocument(t), "https://suchen.mobile.de/fahrzeuge/search.html")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if raw.Source != SourceDOM {
		t.Fatal("expected DOM source")
	}
	if raw.TotalCount != 1234 {
		t.Fatalf("expected total count 1234, got %d", raw.TotalCount)
	}
	if len(raw.DOMRows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(raw.DOMRows))
	}

	first := raw.DOMRows[0]
	if first.ID != "111" {
		t.Fatalf("expected id 111, got %s", first.ID)
	}
	if first.Title != "BMW 320d Touring" {
		t.Fatalf("unexpected title %q", first.Title)
	}
	if first.PriceText != "25.900 € (Brutto)" {
		t.Fatalf("unexpected price text %q", first.PriceText)
	}
	if first.Sponsored {
		t.Fatal("first row is not sponsored")
	}
	if len(first.ImgURLs) != 1 {
		t.Fatalf("expected 1 image, got %d", len(first.ImgURLs))
	}

	if !raw.DOMRows[2].Sponsored {
		t.Fatal("third row carries the sponsored badge")
	}
}

func TestExtractSearchDocumentNormalizes(t *testing.T) {
	raw, err := extractSearchDocument(loadSearchDocument(t), "https://suchen.mobile.de/fahrzeuge/search.html")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	result := NormalizeSearch(raw, 100)

	if len(result.Items) != 2 {
		t.Fatalf("expected sponsored row dropped, got %d items", len(result.Items))
	}

	golf := result.Items[1]
	if golf.FuelType != "Бензин" || golf.TransmissionType != "Ручная" || golf.ConditionType != "Новый" {
		t.Fatalf("accident-free row parsed as %q/%q/%q",
			golf.FuelType, golf.TransmissionType, golf.ConditionType)
	}
	if golf.Mileage != 120000 || golf.Power != 110 {
		t.Fatalf("golf mileage/power = %d/%d", golf.Mileage, golf.Power)
	}
	if golf.Price != 1250000 {
		t.Fatalf("expected price 1250000, got %d", golf.Price)
	}
	if got := golf.ImgURLs[0]; got != "https://img.classistatic.de/api/v1/mo-prod/images/cd/cde456.jpg?rule=mo-360.jpg" {
		t.Fatalf("unexpected image url %s", got)
	}
}

func TestExtractSearchDocumentMissingContainer(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte("<html><body><p>blocked</p></body></html>")))
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}

	_, err = extractSearchDocument(doc, "https://suchen.mobile.de/fahrzeuge/search.html")

	var extractErr *ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected an extraction error, got %v", err)
	}
	if extractErr.Timeout {
		t.Fatal("a parsed page without the container is not a timeout")
	}
	if extractErr.Selector != resultListSelector {
		t.Fatalf("unexpected selector %s", extractErr.Selector)
	}
}

func TestListingIDFromHref(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/fahrzeuge/details.html?id=111&ref=srp", "111"},
		{"/fahrzeuge/details.html?id=222", "222"},
		{"/fahrzeuge/details.html", ""},
	}
	for _, c := range cases {
		if got := listingIDFromHref(c.in); got != c.want {
			t.Errorf("listingIDFromHref(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
