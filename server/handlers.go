package server

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mobide/refdata"
	"mobide/scraper"
	"mobide/services"
)

// Handler serves the frontend-facing API. The static routes proxy the
// hosted frontend bundle so the whole app runs off one origin.
type Handler struct {
	svc            *services.SearchService
	refdata        *refdata.Cache
	browser        *scraper.BrowserHandler
	client         *http.Client
	frontendOrigin string
	charCode       string
}

func NewHandler(svc *services.SearchService, rd *refdata.Cache, browser *scraper.BrowserHandler, client *http.Client, frontendOrigin, charCode string) *Handler {
	return &Handler{
		svc:            svc,
		refdata:        rd,
		browser:        browser,
		client:         client,
		frontendOrigin: frontendOrigin,
		charCode:       charCode,
	}
}

func (h *Handler) GetCurrencyRate(c *gin.Context) {
	code := c.Query("CharCode")
	if code == "" {
		code = h.charCode
	}

	quote, err := h.refdata.Quote(c.Request.Context(), code)
	if err != nil {
		abortUpstream(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", quote)
}

func (h *Handler) GetBrands(c *gin.Context) {
	brands, err := h.refdata.Brands(c.Request.Context())
	if err != nil {
		abortUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

func (h *Handler) GetModels(c *gin.Context) {
	brand := c.Query("brand")
	if brand == "" {
		c.JSON(http.StatusOK, []struct{}{})
		return
	}

	list, err := h.refdata.Models(c.Request.Context(), brand)
	if err != nil {
		abortUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetFeatures(c *gin.Context) {
	c.JSON(http.StatusOK, scraper.Features)
}

func (h *Handler) GetColors(c *gin.Context) {
	if h.browser == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "browser transport not configured"})
		return
	}

	colors, err := h.browser.Colors(c.Request.Context())
	if err != nil {
		abortUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, colors)
}

func (h *Handler) GetCars(c *gin.Context) {
	result, err := h.svc.Search(c.Request.Context(), parseFilter(c))
	if err != nil {
		abortUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetCarsCount(c *gin.Context) {
	n, err := h.svc.Count(c.Request.Context(), parseFilter(c))
	if err != nil {
		abortUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *Handler) GetCarByID(c *gin.Context) {
	listing, err := h.svc.Detail(c.Request.Context(), c.Param("id"), isTruthy(c.Query("forceBrowser")))
	if err != nil {
		abortUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// GetIndex streams the hosted frontend's index page.
func (h *Handler) GetIndex(c *gin.Context) {
	h.proxyStatic(c, h.frontendOrigin+"/")
}

// GetAsset streams a frontend asset, preserving its content type.
func (h *Handler) GetAsset(c *gin.Context) {
	h.proxyStatic(c, h.frontendOrigin+"/assets/"+c.Param("path"))
}

func (h *Handler) proxyStatic(c *gin.Context, url string) {
	req, err := http.NewRequestWithContext(c.Request.Context(), "GET", url, nil)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		log.Printf("Static proxy failed for %s: %v", url, err)
		c.Status(http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	c.Status(resp.StatusCode)
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		c.Header("Content-Type", ct)
	}
	io.Copy(c.Writer, resp.Body)
}

// abortUpstream maps transport failures onto gateway statuses so the
// frontend can tell a blocked provider from a broken backend.
func abortUpstream(c *gin.Context, err error) {
	log.Printf("Request failed: %v", err)

	var extractErr *scraper.ExtractionError
	if errors.As(err, &extractErr) {
		status := http.StatusBadGateway
		if extractErr.Timeout {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	var upErr *scraper.UpstreamError
	if errors.As(err, &upErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
