package httputil

import (
	"net/http"
	"net/url"
	"time"
)

type Clients struct {
	Marketplace *http.Client // spoofed mobile-app calls against the JSON API
	Reference   *http.Client // currency rates, frontend asset proxying
}

// NewClients builds the two outbound HTTP clients. proxyURL is optional;
// when set, marketplace traffic is routed through it while reference
// traffic stays direct.
func NewClients(proxyURL string) *Clients {
	marketplace := &http.Client{Timeout: 30 * time.Second}

	if proxyURL != "" {
		if parsed, err := url.Parse(proxyURL); err == nil {
			marketplace.Transport = &http.Transport{
				Proxy:             http.ProxyURL(parsed),
				ForceAttemptHTTP2: false,
			}
		}
	}

	return &Clients{
		Marketplace: marketplace,
		Reference:   &http.Client{Timeout: 15 * time.Second},
	}
}
