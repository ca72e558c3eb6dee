package service

import (
	"context"
	"errors"
	"time"

	"github.com/fermanzolido/autitos/internal/apierror"
	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/model"
	"github.com/fermanzolido/autitos/internal/repository"
	"github.com/fermanzolido/autitos/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehiculoService interface {
	Crear(ctx context.Context, req dto.GuardarVehiculoRequest) (*dto.VehiculoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarVehiculoRequest) (*dto.VehiculoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Asignar(ctx context.Context, vehiculoID, concesionarioID uuid.UUID) error
	ConfirmarPedido(ctx context.Context, vehiculoID, concesionarioID uuid.UUID) error
	Recibir(ctx context.Context, vehiculoID, concesionarioID uuid.UUID) error
	// Obtener returns the vehicle with its ordered history. A non-nil
	// concesionarioID hides vehicles outside that dealer's scope.
	Obtener(ctx context.Context, id uuid.UUID, concesionarioID *uuid.UUID) (*dto.VehiculoResponse, error)
	Listar(ctx context.Context, concesionarioID *uuid.UUID, filter dto.VehiculoFilter) (*dto.VehiculoListResponse, error)
}

type vehiculoService struct {
	repo              repository.VehiculoRepository
	concesionarioRepo repository.ConcesionarioRepository
	facturaRepo       repository.FacturaRepository
	dispatcher        *worker.Dispatcher
}

func NewVehiculoService(
	repo repository.VehiculoRepository,
	concesionarioRepo repository.ConcesionarioRepository,
	facturaRepo repository.FacturaRepository,
	dispatcher *worker.Dispatcher,
) VehiculoService {
	return &vehiculoService{
		repo:              repo,
		concesionarioRepo: concesionarioRepo,
		facturaRepo:       facturaRepo,
		dispatcher:        dispatcher,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *vehiculoService) Crear(ctx context.Context, req dto.GuardarVehiculoRequest) (*dto.VehiculoResponse, error) {
	estado := model.EstadoEnFabrica
	if req.Estado != "" {
		estado = model.EstadoVehiculo(req.Estado)
		if !estado.Valido() {
			return nil, apierror.Newf(apierror.InvalidArgument, "Estado desconocido: %q", req.Estado)
		}
	}

	if _, err := s.repo.FindByVIN(ctx, req.VIN); err == nil {
		return nil, apierror.New(apierror.AlreadyExists, "Ya existe un vehiculo con ese VIN")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errAlmacen("vehiculo.crear", err)
	}

	v := &model.Vehiculo{
		Marca:   req.Marca,
		Modelo:  req.Modelo,
		Version: req.Version,
		VIN:     req.VIN,
		Color:   req.Color,
		Precio:  req.Precio,
		Estado:  estado,
	}
	if req.FechaFabricacion != nil {
		if fecha, err := time.Parse("2006-01-02", *req.FechaFabricacion); err == nil {
			v.FechaFabricacion = &fecha
		}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, v); err != nil {
			return errAlmacen("vehiculo.crear", err)
		}
		return s.repo.AppendHistorialTx(tx, v.ID, estado)
	})
	if txErr != nil {
		return nil, txErr
	}
	return vehiculoToResponse(v), nil
}

// ── Actualizar ────────────────────────────────────────────────────────────────
// Administrative save. A changed estado must move the lifecycle forward;
// moving into enConcesionario on a dealer-assigned vehicle creates the
// B2B invoice in the same transaction.

func (s *vehiculoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarVehiculoRequest) (*dto.VehiculoResponse, error) {
	var actualizado *model.Vehiculo
	var facturaNueva *model.Factura

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		v, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return notFound("vehiculo.actualizar", "Vehiculo no encontrado", err)
		}

		estadoAnterior := v.Estado
		v.Marca = req.Marca
		v.Modelo = req.Modelo
		v.Version = req.Version
		v.Color = req.Color
		v.Precio = req.Precio
		if req.FechaFabricacion != nil {
			if fecha, parseErr := time.Parse("2006-01-02", *req.FechaFabricacion); parseErr == nil {
				v.FechaFabricacion = &fecha
			}
		}

		cambioEstado := false
		if req.Estado != "" && model.EstadoVehiculo(req.Estado) != estadoAnterior {
			nuevo := model.EstadoVehiculo(req.Estado)
			if !estadoAnterior.Posterior(nuevo) {
				return apierror.Newf(apierror.FailedPrecondition,
					"Transicion invalida: %s no puede retroceder a %s", estadoAnterior, nuevo)
			}
			v.Estado = nuevo
			cambioEstado = true
		}

		if err := s.repo.UpdateTx(tx, v); err != nil {
			return errAlmacen("vehiculo.actualizar", err)
		}
		if cambioEstado {
			if err := s.repo.AppendHistorialTx(tx, v.ID, v.Estado); err != nil {
				return errAlmacen("vehiculo.actualizar", err)
			}
			// Arrival at the dealership bills the dealer — once, only
			// when the vehicle carries an assignment.
			if v.Estado == model.EstadoEnConcesionario && v.ConcesionarioID != nil {
				facturaNueva = &model.Factura{
					VehiculoID:      v.ID,
					ConcesionarioID: *v.ConcesionarioID,
					Precio:          v.Precio,
					Estado:          model.FacturaPendiente,
					Fecha:           time.Now(),
				}
				if err := s.facturaRepo.CreateTx(tx, facturaNueva); err != nil {
					return errAlmacen("vehiculo.actualizar", err)
				}
			}
		}
		actualizado = v
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if facturaNueva != nil && s.dispatcher != nil {
		_ = s.dispatcher.EnqueueDocumento(ctx, worker.DocumentoJobPayload{FacturaID: facturaNueva.ID.String()})
	}
	return vehiculoToResponse(actualizado), nil
}

func (s *vehiculoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFound("vehiculo.eliminar", "Vehiculo no encontrado", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errAlmacen("vehiculo.eliminar", err)
	}
	return nil
}

// ── Asignar ───────────────────────────────────────────────────────────────────
// Manual dealer assignment outside the order matcher. The dealer slot is
// written exactly once.

func (s *vehiculoService) Asignar(ctx context.Context, vehiculoID, concesionarioID uuid.UUID) error {
	if _, err := s.concesionarioRepo.FindByID(ctx, concesionarioID); err != nil {
		return notFound("vehiculo.asignar", "Concesionario no encontrado", err)
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		v, err := s.repo.FindByIDTx(tx, vehiculoID)
		if err != nil {
			return notFound("vehiculo.asignar", "Vehiculo no encontrado", err)
		}
		if v.ConcesionarioID != nil {
			return apierror.New(apierror.FailedPrecondition, "El vehiculo ya tiene concesionario asignado")
		}
		ok, err := s.repo.AsignarTx(tx, vehiculoID, concesionarioID)
		if err != nil {
			return errAlmacen("vehiculo.asignar", err)
		}
		if !ok {
			return apierror.New(apierror.FailedPrecondition, "El vehiculo ya tiene concesionario asignado")
		}
		return nil
	})
}

// ── ConfirmarPedido ───────────────────────────────────────────────────────────
// asignado → enTransito, debiting the dealer's available credit by the
// vehicle price. One transaction: the guarded debit and the guarded
// transition make a concurrent double-confirm impossible — the loser
// observes the changed estado and fails with FailedPrecondition.

func (s *vehiculoService) ConfirmarPedido(ctx context.Context, vehiculoID, concesionarioID uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		v, err := s.repo.FindByIDTx(tx, vehiculoID)
		if err != nil {
			return notFound("vehiculo.confirmar", "Vehiculo no encontrado", err)
		}
		if v.ConcesionarioID == nil || *v.ConcesionarioID != concesionarioID {
			return apierror.New(apierror.PermissionDenied, "El vehiculo no esta asignado a este concesionario")
		}
		if v.Estado != model.EstadoAsignado {
			return apierror.Newf(apierror.FailedPrecondition,
				"El vehiculo debe estar en estado %q para confirmar el pedido, pero esta en %q",
				model.EstadoAsignado, v.Estado)
		}

		c, err := s.concesionarioRepo.FindByIDTx(tx, concesionarioID)
		if err != nil {
			return notFound("vehiculo.confirmar", "Concesionario no encontrado", err)
		}

		ok, err := s.concesionarioRepo.DebitarCreditoTx(tx, concesionarioID, v.Precio)
		if err != nil {
			return errAlmacen("vehiculo.confirmar", err)
		}
		if !ok {
			return apierror.Newf(apierror.FailedPrecondition,
				"Credito insuficiente. Disponible: %s, Requerido: %s",
				c.CreditoDisponible.StringFixed(2), v.Precio.StringFixed(2))
		}

		ok, err = s.repo.TransicionarTx(tx, vehiculoID, model.EstadoAsignado, model.EstadoEnTransito, nil)
		if err != nil {
			return errAlmacen("vehiculo.confirmar", err)
		}
		if !ok {
			return apierror.Newf(apierror.FailedPrecondition,
				"El vehiculo debe estar en estado %q para confirmar el pedido", model.EstadoAsignado)
		}
		return s.repo.AppendHistorialTx(tx, vehiculoID, model.EstadoEnTransito)
	})
}

// ── Recibir ───────────────────────────────────────────────────────────────────
// enTransito → enConcesionario. The ownership check guarantees a dealer
// assignment, so arrival always creates the pending B2B invoice in the
// same transaction; the PDF/email job is enqueued only after commit.

func (s *vehiculoService) Recibir(ctx context.Context, vehiculoID, concesionarioID uuid.UUID) error {
	var facturaNueva *model.Factura

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		v, err := s.repo.FindByIDTx(tx, vehiculoID)
		if err != nil {
			return notFound("vehiculo.recibir", "Vehiculo no encontrado", err)
		}
		if v.ConcesionarioID == nil || *v.ConcesionarioID != concesionarioID {
			return apierror.New(apierror.PermissionDenied, "El vehiculo no esta asignado a este concesionario")
		}
		if v.Estado != model.EstadoEnTransito {
			return apierror.Newf(apierror.FailedPrecondition,
				"El vehiculo debe estar en estado %q para ser recibido, pero esta en %q",
				model.EstadoEnTransito, v.Estado)
		}

		ok, err := s.repo.TransicionarTx(tx, vehiculoID, model.EstadoEnTransito, model.EstadoEnConcesionario, nil)
		if err != nil {
			return errAlmacen("vehiculo.recibir", err)
		}
		if !ok {
			return apierror.Newf(apierror.FailedPrecondition,
				"El vehiculo debe estar en estado %q para ser recibido", model.EstadoEnTransito)
		}
		if err := s.repo.AppendHistorialTx(tx, vehiculoID, model.EstadoEnConcesionario); err != nil {
			return errAlmacen("vehiculo.recibir", err)
		}

		facturaNueva = &model.Factura{
			VehiculoID:      v.ID,
			ConcesionarioID: concesionarioID,
			Precio:          v.Precio,
			Estado:          model.FacturaPendiente,
			Fecha:           time.Now(),
		}
		return s.facturaRepo.CreateTx(tx, facturaNueva)
	})
	if txErr != nil {
		return txErr
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueDocumento(ctx, worker.DocumentoJobPayload{FacturaID: facturaNueva.ID.String()})
	}
	return nil
}

func (s *vehiculoService) Obtener(ctx context.Context, id uuid.UUID, concesionarioID *uuid.UUID) (*dto.VehiculoResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("vehiculo.obtener", "Vehiculo no encontrado", err)
	}
	// Out-of-scope vehicles are indistinguishable from missing ones.
	if concesionarioID != nil && (v.ConcesionarioID == nil || *v.ConcesionarioID != *concesionarioID) {
		return nil, apierror.New(apierror.NotFound, "Vehiculo no encontrado")
	}
	return vehiculoToResponse(v), nil
}

// ── Listar ────────────────────────────────────────────────────────────────────

func (s *vehiculoService) Listar(ctx context.Context, concesionarioID *uuid.UUID, filter dto.VehiculoFilter) (*dto.VehiculoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	vehiculos, total, err := s.repo.List(ctx, concesionarioID, filter)
	if err != nil {
		return nil, errAlmacen("vehiculo.listar", err)
	}
	items := make([]dto.VehiculoResponse, 0, len(vehiculos))
	for i := range vehiculos {
		items = append(items, *vehiculoToResponse(&vehiculos[i]))
	}
	return &dto.VehiculoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func vehiculoToResponse(v *model.Vehiculo) *dto.VehiculoResponse {
	historial := make([]dto.HistorialEstadoResponse, 0, len(v.Historial))
	for _, h := range v.Historial {
		historial = append(historial, dto.HistorialEstadoResponse{
			Estado: string(h.Estado),
			Fecha:  h.CreatedAt.Format(time.RFC3339),
		})
	}
	resp := &dto.VehiculoResponse{
		ID:        v.ID.String(),
		Marca:     v.Marca,
		Modelo:    v.Modelo,
		Version:   v.Version,
		VIN:       v.VIN,
		Color:     v.Color,
		Precio:    v.Precio,
		Estado:    string(v.Estado),
		Historial: historial,
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
	}
	if v.ConcesionarioID != nil {
		id := v.ConcesionarioID.String()
		resp.ConcesionarioID = &id
	}
	if v.FechaEntregaFinal != nil {
		fecha := v.FechaEntregaFinal.Format(time.RFC3339)
		resp.FechaEntregaFinal = &fecha
	}
	return resp
}
