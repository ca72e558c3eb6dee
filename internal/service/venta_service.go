package service

import (
	"context"
	"errors"
	"time"

	"github.com/fermanzolido/autitos/internal/apierror"
	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/model"
	"github.com/fermanzolido/autitos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaService interface {
	// Registrar records a retail sale. concesionarioID carries the
	// caller's dealer when the caller is a dealer; admins may instead
	// name any dealer in the request.
	Registrar(ctx context.Context, concesionarioID *uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Listar(ctx context.Context, concesionarioID *uuid.UUID, filter dto.VentaFilter) ([]dto.VentaResponse, int64, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	vehiculoRepo repository.VehiculoRepository
	clienteRepo  repository.ClienteRepository
}

func NewVentaService(
	repo repository.VentaRepository,
	vehiculoRepo repository.VehiculoRepository,
	clienteRepo repository.ClienteRepository,
) VentaService {
	return &ventaService{repo: repo, vehiculoRepo: vehiculoRepo, clienteRepo: clienteRepo}
}

// Registrar validates the request fully before any write, then performs
// customer creation (if inline), sale insertion and the vehicle's flip
// to vendido in a single transaction.
func (s *ventaService) Registrar(ctx context.Context, concesionarioID *uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if req.PrecioFinal == nil {
		return nil, apierror.New(apierror.InvalidArgument, "precio_final es obligatorio")
	}
	if !req.PrecioFinal.IsPositive() {
		return nil, apierror.New(apierror.InvalidArgument, "precio_final debe ser mayor que cero")
	}
	if (req.ClienteID == nil) == (req.ClienteNuevo == nil) {
		return nil, apierror.New(apierror.InvalidArgument,
			"Debe indicarse exactamente uno de cliente_id o cliente_nuevo")
	}

	vehiculoID, err := uuid.Parse(req.VehiculoID)
	if err != nil {
		return nil, apierror.New(apierror.InvalidArgument, "vehiculo_id invalido")
	}

	var clienteID uuid.UUID
	if req.ClienteID != nil {
		clienteID, err = uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, apierror.New(apierror.InvalidArgument, "cliente_id invalido")
		}
		if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
			return nil, notFound("venta.registrar", "Cliente no encontrado", err)
		}
	}

	var venta *model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		v, err := s.vehiculoRepo.FindByIDTx(tx, vehiculoID)
		if err != nil {
			return notFound("venta.registrar", "Vehiculo no encontrado", err)
		}
		if v.Estado != model.EstadoEnConcesionario {
			return apierror.Newf(apierror.FailedPrecondition,
				"El vehiculo debe estar en estado %q para ser vendido, pero esta en %q",
				model.EstadoEnConcesionario, v.Estado)
		}

		// Dealers sell their own stock; admins may act for any dealer but
		// default to the vehicle's assignment.
		var vendedorID uuid.UUID
		switch {
		case concesionarioID != nil:
			if v.ConcesionarioID == nil || *v.ConcesionarioID != *concesionarioID {
				return apierror.New(apierror.PermissionDenied, "El vehiculo no esta asignado a este concesionario")
			}
			vendedorID = *concesionarioID
		case req.ConcesionarioID != nil:
			vendedorID, err = uuid.Parse(*req.ConcesionarioID)
			if err != nil {
				return apierror.New(apierror.InvalidArgument, "concesionario_id invalido")
			}
		case v.ConcesionarioID != nil:
			vendedorID = *v.ConcesionarioID
		default:
			return apierror.New(apierror.FailedPrecondition, "El vehiculo no tiene concesionario asignado")
		}

		if req.ClienteNuevo != nil {
			c := &model.Cliente{
				Nombre:   req.ClienteNuevo.Nombre,
				DNI:      req.ClienteNuevo.DNI,
				Email:    req.ClienteNuevo.Email,
				Telefono: req.ClienteNuevo.Telefono,
			}
			if req.ClienteNuevo.FechaNacimiento != nil {
				if fecha, parseErr := time.Parse("2006-01-02", *req.ClienteNuevo.FechaNacimiento); parseErr == nil {
					c.FechaNacimiento = &fecha
				}
			}
			if err := s.clienteRepo.CreateTx(tx, c); err != nil {
				return errAlmacen("venta.registrar", err)
			}
			clienteID = c.ID
		}

		ahora := time.Now()
		venta = &model.Venta{
			VehiculoID:         vehiculoID,
			ClienteID:          clienteID,
			ConcesionarioID:    vendedorID,
			PrecioFinal:        *req.PrecioFinal,
			FechaVenta:         ahora,
			MetodoFinanciacion: req.MetodoFinanciacion,
			EntregaMarca:       req.EntregaMarca,
			EntregaModelo:      req.EntregaModelo,
			EntregaVIN:         req.EntregaVIN,
			EntregaValor:       req.EntregaValor,
		}
		if err := s.repo.CreateTx(tx, venta); err != nil {
			return errAlmacen("venta.registrar", err)
		}

		ok, err := s.vehiculoRepo.TransicionarTx(tx, vehiculoID,
			model.EstadoEnConcesionario, model.EstadoVendido,
			map[string]interface{}{"fecha_entrega_final": ahora})
		if err != nil {
			return errAlmacen("venta.registrar", err)
		}
		if !ok {
			return apierror.New(apierror.FailedPrecondition, "El vehiculo ya fue vendido")
		}
		return s.vehiculoRepo.AppendHistorialTx(tx, vehiculoID, model.EstadoVendido)
	})
	if txErr != nil {
		return nil, txErr
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, concesionarioID *uuid.UUID, filter dto.VentaFilter) ([]dto.VentaResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, concesionarioID, filter)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []dto.VentaResponse{}, 0, nil
		}
		return nil, 0, errAlmacen("venta.listar", err)
	}
	out := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		out = append(out, *ventaToResponse(&ventas[i]))
	}
	return out, total, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	return &dto.VentaResponse{
		ID:              v.ID.String(),
		VehiculoID:      v.VehiculoID.String(),
		ClienteID:       v.ClienteID.String(),
		ConcesionarioID: v.ConcesionarioID.String(),
		PrecioFinal:     v.PrecioFinal,
		FechaVenta:      v.FechaVenta.Format(time.RFC3339),
	}
}
