package service

import (
	"context"

	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/model"
	"github.com/fermanzolido/autitos/internal/repository"
)

type PrevisionService interface {
	Crear(ctx context.Context, req dto.CrearPrevisionRequest) (*dto.PrevisionResponse, error)
	Listar(ctx context.Context) ([]dto.PrevisionResponse, error)
}

type previsionService struct {
	repo repository.PrevisionRepository
}

func NewPrevisionService(repo repository.PrevisionRepository) PrevisionService {
	return &previsionService{repo: repo}
}

func (s *previsionService) Crear(ctx context.Context, req dto.CrearPrevisionRequest) (*dto.PrevisionResponse, error) {
	p := &model.Prevision{
		Mes:      req.Mes,
		Objetivo: req.Objetivo,
		Marca:    req.Marca,
		Modelo:   req.Modelo,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, errAlmacen("prevision.crear", err)
	}
	return previsionToResponse(p), nil
}

func (s *previsionService) Listar(ctx context.Context) ([]dto.PrevisionResponse, error) {
	previsiones, err := s.repo.List(ctx)
	if err != nil {
		return nil, errAlmacen("prevision.listar", err)
	}
	out := make([]dto.PrevisionResponse, 0, len(previsiones))
	for i := range previsiones {
		out = append(out, *previsionToResponse(&previsiones[i]))
	}
	return out, nil
}

func previsionToResponse(p *model.Prevision) *dto.PrevisionResponse {
	return &dto.PrevisionResponse{
		ID:       p.ID.String(),
		Mes:      p.Mes,
		Objetivo: p.Objetivo,
		Marca:    p.Marca,
		Modelo:   p.Modelo,
	}
}
