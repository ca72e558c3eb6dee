package handler

import (
	"net/http"

	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/service"

	"github.com/gin-gonic/gin"
)

type PrevisionesHandler struct{ svc service.PrevisionService }

func NewPrevisionesHandler(svc service.PrevisionService) *PrevisionesHandler {
	return &PrevisionesHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear previsión de producción
// @Tags         previsiones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPrevisionRequest true "Objetivo mensual"
// @Success      201  {object} dto.PrevisionResponse
// @Router       /v1/previsiones [post]
func (h *PrevisionesHandler) Crear(c *gin.Context) {
	var req dto.CrearPrevisionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar previsiones
// @Tags         previsiones
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.PrevisionResponse
// @Router       /v1/previsiones [get]
func (h *PrevisionesHandler) Listar(c *gin.Context) {
	previsiones, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, previsiones)
}
