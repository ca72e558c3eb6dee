package service

import (
	"context"

	"github.com/fermanzolido/autitos/internal/apierror"
	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/model"
	"github.com/fermanzolido/autitos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConcesionarioService interface {
	Crear(ctx context.Context, req dto.GuardarConcesionarioRequest) (*dto.ConcesionarioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarConcesionarioRequest) (*dto.ConcesionarioResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ConcesionarioResponse, error)
	Listar(ctx context.Context) ([]dto.ConcesionarioResponse, error)
}

type concesionarioService struct {
	repo repository.ConcesionarioRepository
}

func NewConcesionarioService(repo repository.ConcesionarioRepository) ConcesionarioService {
	return &concesionarioService{repo: repo}
}

func (s *concesionarioService) Crear(ctx context.Context, req dto.GuardarConcesionarioRequest) (*dto.ConcesionarioResponse, error) {
	if req.LineaCredito.IsNegative() {
		return nil, apierror.New(apierror.InvalidArgument, "linea_credito no puede ser negativa")
	}
	c := &model.Concesionario{
		Nombre:     req.Nombre,
		Direccion:  req.Direccion,
		Email:      req.Email,
		Territorio: req.Territorio,
		// A new dealer starts with the whole line available.
		LineaCredito:      req.LineaCredito,
		CreditoDisponible: req.LineaCredito,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, errAlmacen("concesionario.crear", err)
	}
	return concesionarioToResponse(c), nil
}

// Actualizar edits the dealer. A changed credit line applies its delta
// to the available balance instead of recomputing it, so amounts
// encumbered by confirmed unsettled orders stay encumbered. A reduction
// that would push the balance negative is rejected.
func (s *concesionarioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarConcesionarioRequest) (*dto.ConcesionarioResponse, error) {
	if req.LineaCredito.IsNegative() {
		return nil, apierror.New(apierror.InvalidArgument, "linea_credito no puede ser negativa")
	}

	var actualizado *model.Concesionario
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return notFound("concesionario.actualizar", "Concesionario no encontrado", err)
		}

		delta := req.LineaCredito.Sub(c.LineaCredito)
		nuevoDisponible := c.CreditoDisponible.Add(delta)
		if nuevoDisponible.IsNegative() {
			return apierror.Newf(apierror.FailedPrecondition,
				"La reduccion dejaria el credito disponible en %s; hay %s comprometido en pedidos sin liquidar",
				nuevoDisponible.StringFixed(2), c.LineaCredito.Sub(c.CreditoDisponible).StringFixed(2))
		}

		c.Nombre = req.Nombre
		c.Direccion = req.Direccion
		c.Email = req.Email
		c.Territorio = req.Territorio
		c.LineaCredito = req.LineaCredito
		c.CreditoDisponible = nuevoDisponible

		if err := s.repo.UpdateTx(tx, c); err != nil {
			return errAlmacen("concesionario.actualizar", err)
		}
		actualizado = c
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return concesionarioToResponse(actualizado), nil
}

func (s *concesionarioService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFound("concesionario.eliminar", "Concesionario no encontrado", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errAlmacen("concesionario.eliminar", err)
	}
	return nil
}

func (s *concesionarioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ConcesionarioResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("concesionario.obtener", "Concesionario no encontrado", err)
	}
	return concesionarioToResponse(c), nil
}

func (s *concesionarioService) Listar(ctx context.Context) ([]dto.ConcesionarioResponse, error) {
	concesionarios, err := s.repo.List(ctx)
	if err != nil {
		return nil, errAlmacen("concesionario.listar", err)
	}
	out := make([]dto.ConcesionarioResponse, 0, len(concesionarios))
	for i := range concesionarios {
		out = append(out, *concesionarioToResponse(&concesionarios[i]))
	}
	return out, nil
}

func concesionarioToResponse(c *model.Concesionario) *dto.ConcesionarioResponse {
	return &dto.ConcesionarioResponse{
		ID:                c.ID.String(),
		Nombre:            c.Nombre,
		Direccion:         c.Direccion,
		Email:             c.Email,
		Territorio:        c.Territorio,
		LineaCredito:      c.LineaCredito,
		CreditoDisponible: c.CreditoDisponible,
	}
}
