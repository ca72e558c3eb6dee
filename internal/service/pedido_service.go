package service

import (
	"context"
	"time"

	"github.com/fermanzolido/autitos/internal/apierror"
	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/model"
	"github.com/fermanzolido/autitos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PedidoService interface {
	Crear(ctx context.Context, concesionarioID uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
	Emparejar(ctx context.Context, pedidoID, vehiculoID uuid.UUID) error
	Listar(ctx context.Context, concesionarioID *uuid.UUID) ([]dto.PedidoResponse, error)
}

type pedidoService struct {
	repo         repository.PedidoRepository
	vehiculoRepo repository.VehiculoRepository
}

func NewPedidoService(repo repository.PedidoRepository, vehiculoRepo repository.VehiculoRepository) PedidoService {
	return &pedidoService{repo: repo, vehiculoRepo: vehiculoRepo}
}

func (s *pedidoService) Crear(ctx context.Context, concesionarioID uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	p := &model.PedidoFabrica{
		ConcesionarioID: concesionarioID,
		Marca:           req.Marca,
		Modelo:          req.Modelo,
		Estado:          model.PedidoPendiente,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, errAlmacen("pedido.crear", err)
	}
	return pedidoToResponse(p), nil
}

// Emparejar matches a pending order against factory inventory. Both rows
// are locked, both preconditions re-checked, and both flips are guarded,
// so two concurrent matches over the same order or the same vehicle
// cannot both commit.
func (s *pedidoService) Emparejar(ctx context.Context, pedidoID, vehiculoID uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDTx(tx, pedidoID)
		if err != nil {
			return notFound("pedido.emparejar", "Pedido no encontrado", err)
		}
		if p.Estado != model.PedidoPendiente {
			return apierror.New(apierror.FailedPrecondition, "El pedido ya fue emparejado")
		}

		v, err := s.vehiculoRepo.FindByIDTx(tx, vehiculoID)
		if err != nil {
			return notFound("pedido.emparejar", "Vehiculo no encontrado", err)
		}
		if v.Estado != model.EstadoEnFabrica {
			return apierror.Newf(apierror.FailedPrecondition,
				"El vehiculo debe estar en estado %q para ser emparejado, pero esta en %q",
				model.EstadoEnFabrica, v.Estado)
		}
		if v.ConcesionarioID != nil {
			return apierror.New(apierror.FailedPrecondition, "El vehiculo ya tiene concesionario asignado")
		}

		ok, err := s.repo.EmparejarTx(tx, pedidoID, vehiculoID)
		if err != nil {
			return errAlmacen("pedido.emparejar", err)
		}
		if !ok {
			return apierror.New(apierror.FailedPrecondition, "El pedido ya fue emparejado")
		}

		ok, err = s.vehiculoRepo.AsignarTx(tx, vehiculoID, p.ConcesionarioID)
		if err != nil {
			return errAlmacen("pedido.emparejar", err)
		}
		if !ok {
			return apierror.New(apierror.FailedPrecondition, "El vehiculo ya tiene concesionario asignado")
		}

		ok, err = s.vehiculoRepo.TransicionarTx(tx, vehiculoID, model.EstadoEnFabrica, model.EstadoAsignado, nil)
		if err != nil {
			return errAlmacen("pedido.emparejar", err)
		}
		if !ok {
			return apierror.Newf(apierror.FailedPrecondition,
				"El vehiculo debe estar en estado %q para ser emparejado", model.EstadoEnFabrica)
		}
		return s.vehiculoRepo.AppendHistorialTx(tx, vehiculoID, model.EstadoAsignado)
	})
}

func (s *pedidoService) Listar(ctx context.Context, concesionarioID *uuid.UUID) ([]dto.PedidoResponse, error) {
	pedidos, err := s.repo.List(ctx, concesionarioID)
	if err != nil {
		return nil, errAlmacen("pedido.listar", err)
	}
	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		out = append(out, *pedidoToResponse(&pedidos[i]))
	}
	return out, nil
}

func pedidoToResponse(p *model.PedidoFabrica) *dto.PedidoResponse {
	resp := &dto.PedidoResponse{
		ID:              p.ID.String(),
		ConcesionarioID: p.ConcesionarioID.String(),
		Marca:           p.Marca,
		Modelo:          p.Modelo,
		Estado:          p.Estado,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
	if p.VehiculoEmparejadoID != nil {
		id := p.VehiculoEmparejadoID.String()
		resp.VehiculoEmparejadoID = &id
	}
	return resp
}
