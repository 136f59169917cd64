package scraper

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"

	"mobide/config"
	"mobide/query"
)

// Selectors on the server-rendered search page.
const (
	resultListSelector     = `[data-testid="result-list-container"]`
	resultItemSelector     = `[data-testid="result-list-container"] a[data-testid^="result-listing-"]`
	totalCountSelector     = `[data-testid="srp-title"]`
	sponsoredBadgeSelector = `[data-testid="sponsored-badge"]`
	detailsAttrSelector    = `[data-testid="listing-details-attributes"]`
	priceLabelSelector     = `[data-testid="price-label"]`
	resultImageSelector    = `[data-testid^="result-listing-image-"]`
	exteriorColorSelector  = `[data-testid^="exterior-color-"]`
)

// BrowserHandler drives a pooled headless-browser page against the
// rendered search site. Used when the JSON API is blocked or the caller
// forces browser mode.
type BrowserHandler struct {
	cfg  *config.MarketplaceConfig
	bcfg *config.BrowserConfig
	pool *PagePool
}

func NewBrowserHandler(cfg *config.MarketplaceConfig, bcfg *config.BrowserConfig, pool *PagePool) *BrowserHandler {
	return &BrowserHandler{cfg: cfg, bcfg: bcfg, pool: pool}
}

func (h *BrowserHandler) Search(ctx context.Context, q query.Params, sessionID string) (*RawSearch, error) {
	searchURL := h.cfg.BrowseBase + "/fahrzeuge/search.html?" + q.Encode()

	doc, err := h.renderPage(ctx, "cars", sessionID, searchURL, resultListSelector)
	if err != nil {
		return nil, err
	}

	return extractSearchDocument(doc, searchURL)
}

func (h *BrowserHandler) Count(ctx context.Context, q query.Params) (int, error) {
	searchURL := h.cfg.BrowseBase + "/fahrzeuge/search.html?" + q.Encode()

	doc, err := h.renderPage(ctx, "count", "", searchURL, totalCountSelector)
	if err != nil {
		return 0, err
	}

	title := doc.Find(totalCountSelector).First().Text()
	if title == "" {
		return 0, &ExtractionError{URL: searchURL, Selector: totalCountSelector}
	}
	return parseLocalizedInt(strings.SplitN(title, " ", 2)[0]), nil
}

// Detail scrapes a single listing page. The rendered page exposes less
// than the JSON detail endpoint; this is the degraded fallback.
func (h *BrowserHandler) Detail(ctx context.Context, id string) (*RawAd, error) {
	detailURL := h.cfg.BrowseBase + "/fahrzeuge/details.html?id=" + id

	doc, err := h.renderPage(ctx, "detail", "", detailURL, priceLabelSelector)
	if err != nil {
		return nil, err
	}

	ad := &RawAd{ID: jsonNumber(id)}
	ad.Title = strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	if ad.Title == "" {
		ad.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	priceText := doc.Find(priceLabelSelector).First().Text()
	ad.Price.Grs.Amount = float64(parseLocalizedInt(strings.SplitN(priceText, " ", 2)[0]))

	doc.Find(`meta[property="og:image"]`).Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("content"); ok && src != "" {
			ad.Images = append(ad.Images, struct {
				URI string `json:"uri"`
			}{URI: src})
		}
	})

	return ad, nil
}

// Colors scrapes the advanced-search form for the exterior color codes.
func (h *BrowserHandler) Colors(ctx context.Context) ([]string, error) {
	formURL := h.cfg.BrowseBase + "/fahrzeuge/detailsuche/"

	doc, err := h.renderPage(ctx, "main", "", formURL, exteriorColorSelector)
	if err != nil {
		return nil, err
	}

	var colors []string
	doc.Find(exteriorColorSelector).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("value"); ok {
			colors = append(colors, v)
		}
	})
	return colors, nil
}

// renderPage acquires the pooled page for the key, navigates it, waits
// for the page to settle and the marker selector to show up, and hands
// back the parsed document. The page stays locked for the whole
// sequence; two operations on the same key never interleave.
func (h *BrowserHandler) renderPage(ctx context.Context, purpose, sessionID, pageURL, marker string) (*goquery.Document, error) {
	pg, err := h.pool.Acquire(purpose, sessionID)
	if err != nil {
		return nil, err
	}

	pg.Lock()
	defer pg.Unlock()

	timeout := float64(h.bcfg.NavTimeout.Milliseconds())

	if _, err := pg.Page.Goto(pageURL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(timeout),
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return nil, &UpstreamError{URL: pageURL, Err: err}
	}

	if err := pg.Page.Locator(marker).First().WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(timeout),
	}); err != nil {
		log.Printf("Selector wait failed for %s at %s: %v", marker, pageURL, err)
		return nil, &ExtractionError{URL: pageURL, Selector: marker, Timeout: true}
	}

	content, err := pg.Page.Content()
	if err != nil {
		return nil, &UpstreamError{URL: pageURL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, &UpstreamError{URL: pageURL, Err: err}
	}
	return doc, nil
}

// extractSearchDocument pulls raw listing rows out of a rendered search
// page. Kept separate from the browser plumbing so it can run against
// fixture HTML.
func extractSearchDocument(doc *goquery.Document, pageURL string) (*RawSearch, error) {
	if doc.Find(resultListSelector).Length() == 0 {
		return nil, &ExtractionError{URL: pageURL, Selector: resultListSelector}
	}

	title := doc.Find(totalCountSelector).First().Text()
	totalCount := parseLocalizedInt(strings.SplitN(title, " ", 2)[0])

	raw := &RawSearch{Source: SourceDOM, TotalCount: totalCount}

	doc.Find(resultItemSelector).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")

		row := DOMRow{
			URL:         href,
			ID:          listingIDFromHref(href),
			Title:       strings.TrimSpace(s.Find("h2").First().Text()),
			PriceText:   s.Find(priceLabelSelector).First().Text(),
			DetailsText: s.Find(detailsAttrSelector).First().Text(),
			Sponsored:   s.Find(sponsoredBadgeSelector).Length() > 0,
		}
		s.Find(resultImageSelector).Each(func(_ int, img *goquery.Selection) {
			if src, ok := img.Attr("src"); ok && src != "" {
				row.ImgURLs = append(row.ImgURLs, src)
			}
		})

		raw.DOMRows = append(raw.DOMRows, row)
	})

	return raw, nil
}

func listingIDFromHref(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("id")
}
