package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"mobide/models"
)

// parseFilter maps the frontend's query string onto a SearchFilter.
// Range bounds stay strings; "null" and empty both mean "no bound".
func parseFilter(c *gin.Context) models.SearchFilter {
	page, _ := strconv.Atoi(c.Query("page"))

	return models.SearchFilter{
		Brand:         c.Query("brand"),
		Model:         c.Query("model"),
		Price:         models.Range{From: c.Query("priceFrom"), To: c.Query("priceTo")},
		Mileage:       models.Range{From: c.Query("mileageFrom"), To: c.Query("mileageTo")},
		Year:          models.Range{From: c.Query("yearFrom"), To: c.Query("yearTo")},
		Power:         models.Range{From: c.Query("pwFrom"), To: c.Query("pwTo")},
		FuelTypes:     c.QueryArray("ft"),
		Bodies:        c.QueryArray("c"),
		Transmissions: c.QueryArray("tr"),
		Features:      c.QueryArray("fe"),
		Condition:     c.Query("con"),
		Sort:          c.Query("sort"),
		Order:         c.Query("order"),
		Page:          page,
		SessionID:     c.Query("userId"),
		ForceBrowser:  isTruthy(c.Query("forceBrowser")),
	}
}

func isTruthy(v string) bool {
	return v == "1" || v == "true"
}
