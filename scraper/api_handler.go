package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"mobide/config"
	"mobide/identity"
	"mobide/query"
)

// APIHandler talks to the marketplace's internal JSON endpoints while
// impersonating the official mobile app.
type APIHandler struct {
	cfg    *config.MarketplaceConfig
	client *http.Client
}

func NewAPIHandler(cfg *config.MarketplaceConfig, client *http.Client) *APIHandler {
	return &APIHandler{cfg: cfg, client: client}
}

func (h *APIHandler) Search(ctx context.Context, q query.Params, _ string) (*RawSearch, error) {
	url := h.cfg.APIBase + "/api/s/"
	if qs := q.Encode(); qs != "" {
		url += "?" + qs
	}

	var resp APISearchResponse
	if err := h.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	return &RawSearch{
		Source:     SourceAPI,
		TotalCount: resp.NumResultsTotal,
		APIItems:   resp.Items,
	}, nil
}

func (h *APIHandler) Count(ctx context.Context, q query.Params) (int, error) {
	url := h.cfg.APIBase + "/api/s/?" + q.Encode()

	var resp struct {
		NumResultsTotal int `json:"numResultsTotal"`
	}
	if err := h.getJSON(ctx, url, &resp); err != nil {
		return 0, err
	}
	return resp.NumResultsTotal, nil
}

func (h *APIHandler) Detail(ctx context.Context, id string) (*RawAd, error) {
	var ad RawAd
	if err := h.getJSON(ctx, h.cfg.APIBase+"/api/a/"+id, &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

func (h *APIHandler) getJSON(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	for key, val := range identity.MobileHeaders() {
		req.Header.Set(key, val)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return &UpstreamError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &UpstreamError{URL: url, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &UpstreamError{URL: url, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
