package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenantworks/saas-admin/internal/core/ports"
)

type StatsHandler struct {
	statsService ports.StatsService
}

func NewStatsHandler(statsService ports.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Get returns entity counts across all tenants. Super_admin only.
//
// @Summary      Platform statistics
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Stats
// @Failure      403  {object}  map[string]string
// @Router       /stats [get]
func (h *StatsHandler) Get(c echo.Context) error {
	stats, err := h.statsService.Counts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
