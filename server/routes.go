package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the API and the static frontend proxy. Unknown
// paths land on the index page so client-side routing keeps working.
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	r.GET("/api/currency-rate", h.GetCurrencyRate)
	r.GET("/api/brands", h.GetBrands)
	r.GET("/api/models", h.GetModels)
	r.GET("/api/features", h.GetFeatures)
	r.GET("/api/colors", h.GetColors)
	r.GET("/api/cars", h.GetCars)
	r.GET("/api/cars/count", h.GetCarsCount)
	r.GET("/api/cars/:id", h.GetCarByID)

	r.GET("/", h.GetIndex)
	r.GET("/assets/:path", h.GetAsset)
	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/")
	})

	return r
}
