package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mobide/config"
	"mobide/models"
	"mobide/query"
	"mobide/refdata"
	"mobide/scraper"
)

// fakeTransport records the compiled query it was handed and serves
// canned raw payloads.
type fakeTransport struct {
	name      string
	lastQuery query.Params
	calls     int
	raw       *scraper.RawSearch
	count     int
	ad        *scraper.RawAd
}

func (f *fakeTransport) Search(_ context.Context, q query.Params, _ string) (*scraper.RawSearch, error) {
	f.calls++
	f.lastQuery = q
	return f.raw, nil
}

func (f *fakeTransport) Count(_ context.Context, q query.Params) (int, error) {
	f.calls++
	f.lastQuery = q
	return f.count, nil
}

func (f *fakeTransport) Detail(_ context.Context, id string) (*scraper.RawAd, error) {
	f.calls++
	return f.ad, nil
}

func newTestService(t *testing.T, transport string) (*SearchService, *fakeTransport, *fakeTransport) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/r/makes/"):
			w.Write([]byte(`{"makes": [{"n": "BMW", "i": 3500}, {"n": "Audi", "i": 1900}]}`))
		case strings.HasPrefix(r.URL.Path, "/api/r/models/"):
			w.Write([]byte(`{"models": [{"n": "320", "i": 20}, {"n": "3er Reihe", "i": 7, "g": true}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Marketplace: config.MarketplaceConfig{
			APIBase:    srv.URL,
			BrowseBase: srv.URL,
			Transport:  transport,
		},
		Currency: config.CurrencyConfig{DefaultRate: 100},
	}
	rd := refdata.New(srv.Client(), srv.URL, cfg.Currency)

	api := &fakeTransport{name: "api", raw: &scraper.RawSearch{Source: scraper.SourceAPI}, count: 10}
	browser := &fakeTransport{name: "browser", raw: &scraper.RawSearch{Source: scraper.SourceDOM}, count: 20}

	return NewSearchService(cfg, rd, api, browser), api, browser
}

func TestSearchResolvesLabelsAndCompiles(t *testing.T) {
	svc, api, _ := newTestService(t, "api")

	f := models.SearchFilter{
		Brand: "BMW",
		Model: "3er Reihe",
		Price: models.Range{From: "1000000", To: "5000000"},
		Page:  2,
	}
	if _, err := svc.Search(context.Background(), f); err != nil {
		t.Fatalf("search: %v", err)
	}

	q := api.lastQuery
	if q.MakeModel != "3500%3B%3B7%3B" {
		t.Fatalf("expected resolved group make/model token, got %s", q.MakeModel)
	}
	if q.Price != "10000:50000" {
		t.Fatalf("expected converted price range, got %s", q.Price)
	}
	if q.Offset == nil || *q.Offset != 20 {
		t.Fatalf("expected offset 20 for page 2, got %v", q.Offset)
	}
}

func TestSearchPassesNumericCodesThrough(t *testing.T) {
	svc, api, _ := newTestService(t, "api")

	f := models.SearchFilter{Brand: "17200", Model: "10"}
	if _, err := svc.Search(context.Background(), f); err != nil {
		t.Fatalf("search: %v", err)
	}

	if api.lastQuery.MakeModel != "17200%3B10%3B%3B" {
		t.Fatalf("numeric codes should pass through, got %s", api.lastQuery.MakeModel)
	}
}

func TestSearchTransportSelection(t *testing.T) {
	svc, api, browser := newTestService(t, "api")

	svc.Search(context.Background(), models.SearchFilter{})
	if api.calls != 1 || browser.calls != 0 {
		t.Fatalf("default should hit the API transport: api=%d browser=%d", api.calls, browser.calls)
	}

	svc.Search(context.Background(), models.SearchFilter{ForceBrowser: true})
	if browser.calls != 1 {
		t.Fatalf("ForceBrowser should hit the browser transport, calls=%d", browser.calls)
	}

	svc2, api2, browser2 := newTestService(t, "browser")
	svc2.Search(context.Background(), models.SearchFilter{})
	if browser2.calls != 1 || api2.calls != 0 {
		t.Fatalf("browser default should hit the browser transport: api=%d browser=%d",
			api2.calls, browser2.calls)
	}
}

func TestCountUsesCountQuery(t *testing.T) {
	svc, api, _ := newTestService(t, "api")

	n, err := svc.Count(context.Background(), models.SearchFilter{Brand: "17200"})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 10 {
		t.Fatalf("expected count 10, got %d", n)
	}

	q := api.lastQuery
	if q.Offset == nil || *q.Offset != 0 || q.PageSize == nil || *q.PageSize != 0 {
		t.Fatal("count query should pin pagination flags to zero")
	}
	if q.IsSearchRequest || q.SortBy != "" || q.Ref != "" {
		t.Fatal("count query should carry no search-only parameters")
	}
	if q.MakeModel != "17200;;;" {
		t.Fatalf("count make/model token should stay unescaped, got %s", q.MakeModel)
	}
}

func TestDetailNormalizes(t *testing.T) {
	svc, api, browser := newTestService(t, "api")
	api.ad = &scraper.RawAd{ID: "42", Title: "BMW 320d"}
	api.ad.Price.Grs.Amount = 10000
	browser.ad = api.ad

	l, err := svc.Detail(context.Background(), "42", false)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if l.Price != 1000000 || l.PriceWithoutVAT != 840336 {
		t.Fatalf("unexpected prices %d/%d", l.Price, l.PriceWithoutVAT)
	}

	svc.Detail(context.Background(), "42", true)
	if api.calls != 1 {
		t.Fatal("forced browser detail should not hit the API transport")
	}
}
