package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"

	"mobide/config"
	"mobide/identity"
	"mobide/models"
)

// localizedTerms rewrites the handful of German generic words that show
// up inside model names.
var localizedTerms = strings.NewReplacer(
	"Klasse", "Класс",
	"Class", "Класс",
	"Alle", "Все",
	"All", "Все",
	"Andere", "Другие",
)

// Cache memoizes marketplace reference data. Brand and model lists are
// fetched once and kept for the process lifetime; the currency rate is
// fetched once at startup and never refreshed (stale over long runs,
// kept that way deliberately). A duplicate upstream call on a
// cache-miss race is acceptable; a populated key is never refetched.
type Cache struct {
	client   *http.Client
	apiBase  string
	currency config.CurrencyConfig

	mu            sync.Mutex
	brands        []models.Option
	modelsByBrand map[string][]models.ModelOption
	rate          float64
}

func New(client *http.Client, apiBase string, currency config.CurrencyConfig) *Cache {
	return &Cache{
		client:        client,
		apiBase:       apiBase,
		currency:      currency,
		modelsByBrand: make(map[string][]models.ModelOption),
		rate:          currency.DefaultRate,
	}
}

// Brands returns the cached brand list, fetching and sorting it by
// localized label on first use.
func (c *Cache) Brands(ctx context.Context) ([]models.Option, error) {
	c.mu.Lock()
	cached := c.brands
	c.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	var payload struct {
		Makes []struct {
			N string      `json:"n"`
			I json.Number `json:"i"`
		} `json:"makes"`
	}
	if err := c.getJSON(ctx, c.apiBase+"/api/r/makes/Car", true, &payload); err != nil {
		return nil, fmt.Errorf("fetch brands: %w", err)
	}

	brands := make([]models.Option, 0, len(payload.Makes))
	for _, m := range payload.Makes {
		brands = append(brands, models.Option{Label: m.N, Value: m.I.String()})
	}
	sort.Slice(brands, func(i, j int) bool { return brands[i].Label < brands[j].Label })

	c.mu.Lock()
	if c.brands == nil {
		c.brands = brands
	}
	brands = c.brands
	c.mu.Unlock()

	return brands, nil
}

// Models returns the cached model list for a brand code, fetching it
// and substituting the German generic terms on first use.
func (c *Cache) Models(ctx context.Context, brand string) ([]models.ModelOption, error) {
	if brand == "" {
		return nil, nil
	}

	c.mu.Lock()
	cached, ok := c.modelsByBrand[brand]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	var payload struct {
		Models []struct {
			N string      `json:"n"`
			I json.Number `json:"i"`
			G bool        `json:"g"`
		} `json:"models"`
	}
	if err := c.getJSON(ctx, c.apiBase+"/api/r/models/"+brand, true, &payload); err != nil {
		return nil, fmt.Errorf("fetch models for %s: %w", brand, err)
	}

	list := make([]models.ModelOption, 0, len(payload.Models))
	for _, m := range payload.Models {
		list = append(list, models.ModelOption{
			Label:   localizedTerms.Replace(m.N),
			Value:   m.I.String(),
			IsGroup: m.G,
		})
	}

	c.mu.Lock()
	if _, ok := c.modelsByBrand[brand]; !ok {
		c.modelsByBrand[brand] = list
	}
	list = c.modelsByBrand[brand]
	c.mu.Unlock()

	return list, nil
}

// Rate returns the last fetched currency rate (target per EUR).
func (c *Cache) Rate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rate
}

// FetchRate pulls the startup currency rate. On failure the configured
// default stays in place and the error is returned for logging only.
func (c *Cache) FetchRate(ctx context.Context) error {
	var payload struct {
		Valute map[string]struct {
			Value float64 `json:"Value"`
		} `json:"Valute"`
	}
	if err := c.getJSON(ctx, c.currency.RateURL, false, &payload); err != nil {
		return fmt.Errorf("fetch currency rate: %w", err)
	}

	entry, ok := payload.Valute[c.currency.CharCode]
	if !ok || entry.Value <= 0 {
		return fmt.Errorf("currency rate: no usable %s quote", c.currency.CharCode)
	}

	c.mu.Lock()
	c.rate = entry.Value
	c.mu.Unlock()

	log.Printf("Currency rate %s: %.4f", c.currency.CharCode, entry.Value)
	return nil
}

// Quote returns the raw central-bank quote object for a currency code,
// for the passthrough endpoint. Always fetched live.
func (c *Cache) Quote(ctx context.Context, charCode string) (json.RawMessage, error) {
	var payload struct {
		Valute map[string]json.RawMessage `json:"Valute"`
	}
	if err := c.getJSON(ctx, c.currency.RateURL, false, &payload); err != nil {
		return nil, err
	}

	quote, ok := payload.Valute[charCode]
	if !ok {
		return nil, fmt.Errorf("no quote for %s", charCode)
	}
	return quote, nil
}

// ResolveBrand maps a brand label to its provider code. Codes pass
// through untouched, as does anything that cannot be resolved.
func (c *Cache) ResolveBrand(ctx context.Context, v string) string {
	if v == "" || v == "null" || isNumeric(v) {
		return v
	}

	brands, err := c.Brands(ctx)
	if err != nil {
		log.Printf("Brand resolution failed for %q: %v", v, err)
		return v
	}
	for _, b := range brands {
		if strings.EqualFold(b.Label, v) {
			return b.Value
		}
	}
	return v
}

// ResolveModel maps a model label to its provider code within a brand.
// Group entries resolve to the "group_<id>" sentinel.
func (c *Cache) ResolveModel(ctx context.Context, brandCode, v string) string {
	if v == "" || v == "null" || isNumeric(v) || strings.HasPrefix(v, "group_") {
		return v
	}

	list, err := c.Models(ctx, brandCode)
	if err != nil {
		log.Printf("Model resolution failed for %q: %v", v, err)
		return v
	}
	for _, m := range list {
		if strings.EqualFold(m.Label, v) {
			if m.IsGroup {
				return "group_" + m.Value
			}
			return m.Value
		}
	}
	return v
}

func (c *Cache) getJSON(ctx context.Context, url string, spoof bool, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	if spoof {
		for key, val := range identity.MobileHeaders() {
			req.Header.Set(key, val)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: status %d: %s", url, resp.StatusCode, truncate(body, 200))
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
