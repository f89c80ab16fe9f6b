package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scalexlabs/marketing-dashboard/internal/chart"
)

// ChartHandler serves the static mock chart API.
type ChartHandler struct {
	Table chart.Table
}

// GetChart looks the chart id up in the fixed table. The request body is
// accepted and logged but never validated. Unknown ids return the error
// envelope with a 200, matching the API's contract.
func (h *ChartHandler) GetChart(c echo.Context) error {
	chartID := c.Param("chart_id")
	body, _ := io.ReadAll(c.Request().Body)
	log.Printf("chart api: chart_id=%s payload=%s", chartID, body)

	resp, ok := h.Table.Lookup(chartID)
	if !ok {
		return c.JSON(http.StatusOK, chart.NotFound(chartID))
	}
	return c.JSON(http.StatusOK, resp)
}
