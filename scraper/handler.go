package scraper

import (
	"context"

	"mobide/config"
	"mobide/httputil"
	"mobide/query"
)

// Transport fetches raw marketplace data. The two implementations are
// capability-equivalent: the JSON API with spoofed app headers, and a
// pooled headless-browser page scraping the rendered search site.
type Transport interface {
	Search(ctx context.Context, q query.Params, sessionID string) (*RawSearch, error)
	Count(ctx context.Context, q query.Params) (int, error)
	Detail(ctx context.Context, id string) (*RawAd, error)
}

func NewTransport(cfg *config.Config, clients *httputil.Clients, pool *PagePool) Transport {
	switch cfg.Marketplace.Transport {
	case "browser":
		return NewBrowserHandler(&cfg.Marketplace, &cfg.Browser, pool)
	default:
		return NewAPIHandler(&cfg.Marketplace, clients.Marketplace)
	}
}
