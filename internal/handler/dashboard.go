package handler

import (
	"net/http"

	"github.com/fermanzolido/autitos/internal/middleware"
	"github.com/fermanzolido/autitos/internal/model"
	"github.com/fermanzolido/autitos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats godoc
// @Summary      Contadores del panel
// @Description  Stock y ventas acumuladas. Los usuarios dealer ven solo su concesionario; admin y factory ven la red completa.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.DashboardStatsResponse
// @Router       /v1/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	claims := middleware.GetClaims(c)
	var scope *uuid.UUID
	if claims != nil && claims.Rol == model.RolDealer {
		scope = dealerScope(c)
	}
	resp, err := h.svc.Stats(c.Request.Context(), scope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
