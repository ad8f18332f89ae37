package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-pos-api/internal/application/analytics"
)

// AnalyticsHandler maneja el reporte de ganancias (protegido).
type AnalyticsHandler struct {
	uc *analytics.ProfitUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.ProfitUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Profit godoc
// @Summary      Reporte de ganancias por período
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        shopId     path   string  true   "ID de la tienda"
// @Param        timeframe  query  string  false  "today|yesterday|last7days|last30days|week|month|thisMonth|lastMonth|year|allTime"  default(today)
// @Success      200  {object}  dto.ProfitReportDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{shopId}/analytics/profit [get]
func (h *AnalyticsHandler) Profit(c *fiber.Ctx) error {
	out, err := h.uc.GetReport(c.UserContext(), GetUserID(c), c.Params("shopId"), c.Query("timeframe"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
