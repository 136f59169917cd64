package services

import (
	"context"
	"log"

	"mobide/config"
	"mobide/models"
	"mobide/query"
	"mobide/refdata"
	"mobide/scraper"
)

// SearchService ties the reference caches, the query compiler and the
// transports together. Handlers call it, never a transport directly.
type SearchService struct {
	cfg     *config.Config
	refdata *refdata.Cache
	api     scraper.Transport
	browser scraper.Transport
}

func NewSearchService(cfg *config.Config, rd *refdata.Cache, api, browser scraper.Transport) *SearchService {
	return &SearchService{cfg: cfg, refdata: rd, api: api, browser: browser}
}

// Search resolves filter labels to provider codes, compiles the query,
// fetches one result page and normalizes it.
func (s *SearchService) Search(ctx context.Context, f models.SearchFilter) (*models.SearchResult, error) {
	f = s.resolveFilter(ctx, f)

	q := query.Compile(f, s.refdata.Rate())

	raw, err := s.transportFor(f).Search(ctx, q, f.SessionID)
	if err != nil {
		return nil, err
	}
	return scraper.NormalizeSearch(raw, s.refdata.Rate()), nil
}

// Count returns the total number of hits for the filter without
// fetching any listings.
func (s *SearchService) Count(ctx context.Context, f models.SearchFilter) (int, error) {
	f = s.resolveFilter(ctx, f)

	q := query.CompileCount(f, s.refdata.Rate())

	return s.transportFor(f).Count(ctx, q)
}

// Detail fetches and normalizes a single listing by its provider id.
func (s *SearchService) Detail(ctx context.Context, id string, forceBrowser bool) (*models.Listing, error) {
	t := s.api
	if (forceBrowser || s.browserDefault()) && s.browser != nil {
		t = s.browser
	}

	ad, err := t.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	return scraper.NormalizeAd(ad, s.refdata.Rate()), nil
}

// resolveFilter substitutes human-readable brand and model labels with
// the provider's numeric codes. Resolution failures keep the original
// value; the provider then ignores it.
func (s *SearchService) resolveFilter(ctx context.Context, f models.SearchFilter) models.SearchFilter {
	if f.Brand != "" && f.Brand != "null" {
		f.Brand = s.refdata.ResolveBrand(ctx, f.Brand)
	}
	if f.Model != "" && f.Model != "null" {
		f.Model = s.refdata.ResolveModel(ctx, f.Brand, f.Model)
	}
	return f
}

func (s *SearchService) transportFor(f models.SearchFilter) scraper.Transport {
	if f.ForceBrowser || s.browserDefault() {
		if s.browser == nil {
			log.Print("Browser transport requested but not configured, falling back to API")
			return s.api
		}
		return s.browser
	}
	return s.api
}

func (s *SearchService) browserDefault() bool {
	return s.cfg.Marketplace.Transport == "browser" && s.browser != nil
}
