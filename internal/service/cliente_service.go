package service

import (
	"context"
	"time"

	"github.com/fermanzolido/autitos/internal/apierror"
	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/model"
	"github.com/fermanzolido/autitos/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.GuardarClienteRequest) (*dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)

	CrearInteraccion(ctx context.Context, req dto.CrearInteraccionRequest) (*dto.InteraccionResponse, error)
	ListarInteracciones(ctx context.Context, clienteID uuid.UUID) ([]dto.InteraccionResponse, error)
	CompletarSeguimiento(ctx context.Context, interaccionID uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.GuardarClienteRequest) (*dto.ClienteResponse, error) {
	c := &model.Cliente{
		Nombre:   req.Nombre,
		DNI:      req.DNI,
		Email:    req.Email,
		Telefono: req.Telefono,
	}
	if req.FechaNacimiento != nil {
		if fecha, err := time.Parse("2006-01-02", *req.FechaNacimiento); err == nil {
			c.FechaNacimiento = &fecha
		}
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, errAlmacen("cliente.crear", err)
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("cliente.actualizar", "Cliente no encontrado", err)
	}
	c.Nombre = req.Nombre
	c.DNI = req.DNI
	c.Email = req.Email
	c.Telefono = req.Telefono
	if req.FechaNacimiento != nil {
		if fecha, parseErr := time.Parse("2006-01-02", *req.FechaNacimiento); parseErr == nil {
			c.FechaNacimiento = &fecha
		}
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, errAlmacen("cliente.actualizar", err)
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFound("cliente.eliminar", "Cliente no encontrado", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errAlmacen("cliente.eliminar", err)
	}
	return nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("cliente.obtener", "Cliente no encontrado", err)
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, errAlmacen("cliente.listar", err)
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out, nil
}

// CrearInteraccion records a CRM note. With a follow-up date the entry
// starts pendiente; without one there is nothing left to do and it is
// completado from the start.
func (s *clienteService) CrearInteraccion(ctx context.Context, req dto.CrearInteraccionRequest) (*dto.InteraccionResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.New(apierror.InvalidArgument, "cliente_id invalido")
	}
	if _, err := s.repo.FindByID(ctx, clienteID); err != nil {
		return nil, notFound("interaccion.crear", "Cliente no encontrado", err)
	}

	i := &model.Interaccion{
		ClienteID:         clienteID,
		Notas:             req.Notas,
		Fecha:             time.Now(),
		EstadoSeguimiento: model.SeguimientoCompletado,
	}
	if req.FechaSeguimiento != nil {
		if fecha, parseErr := time.Parse("2006-01-02", *req.FechaSeguimiento); parseErr == nil {
			i.FechaSeguimiento = &fecha
			i.EstadoSeguimiento = model.SeguimientoPendiente
		}
	}
	if err := s.repo.CreateInteraccion(ctx, i); err != nil {
		return nil, errAlmacen("interaccion.crear", err)
	}
	return interaccionToResponse(i), nil
}

func (s *clienteService) ListarInteracciones(ctx context.Context, clienteID uuid.UUID) ([]dto.InteraccionResponse, error) {
	if _, err := s.repo.FindByID(ctx, clienteID); err != nil {
		return nil, notFound("interaccion.listar", "Cliente no encontrado", err)
	}
	interacciones, err := s.repo.ListInteracciones(ctx, clienteID)
	if err != nil {
		return nil, errAlmacen("interaccion.listar", err)
	}
	out := make([]dto.InteraccionResponse, 0, len(interacciones))
	for i := range interacciones {
		out = append(out, *interaccionToResponse(&interacciones[i]))
	}
	return out, nil
}

func (s *clienteService) CompletarSeguimiento(ctx context.Context, interaccionID uuid.UUID) error {
	i, err := s.repo.FindInteraccionByID(ctx, interaccionID)
	if err != nil {
		return notFound("interaccion.completar", "Interaccion no encontrada", err)
	}
	if i.EstadoSeguimiento == model.SeguimientoCompletado {
		return apierror.New(apierror.FailedPrecondition, "El seguimiento ya fue completado")
	}
	if err := s.repo.CompletarSeguimiento(ctx, interaccionID); err != nil {
		return errAlmacen("interaccion.completar", err)
	}
	return nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:       c.ID.String(),
		Nombre:   c.Nombre,
		DNI:      c.DNI,
		Email:    c.Email,
		Telefono: c.Telefono,
	}
}

func interaccionToResponse(i *model.Interaccion) *dto.InteraccionResponse {
	resp := &dto.InteraccionResponse{
		ID:                i.ID.String(),
		ClienteID:         i.ClienteID.String(),
		Notas:             i.Notas,
		Fecha:             i.Fecha.Format(time.RFC3339),
		EstadoSeguimiento: i.EstadoSeguimiento,
	}
	if i.FechaSeguimiento != nil {
		fecha := i.FechaSeguimiento.Format("2006-01-02")
		resp.FechaSeguimiento = &fecha
	}
	return resp
}
