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

type FacturaService interface {
	// MarcarPagada settles a pending invoice and restores the dealer's
	// available credit by the invoice amount, atomically.
	MarcarPagada(ctx context.Context, facturaID uuid.UUID) error
	Listar(ctx context.Context, concesionarioID *uuid.UUID, filter dto.FacturaFilter) ([]dto.FacturaResponse, int64, error)
	// ObtenerPDFPath returns the stored document path, scoped to the
	// caller's dealer when one is given.
	ObtenerPDFPath(ctx context.Context, facturaID uuid.UUID, concesionarioID *uuid.UUID) (string, error)
}

type facturaService struct {
	repo              repository.FacturaRepository
	concesionarioRepo repository.ConcesionarioRepository
}

func NewFacturaService(repo repository.FacturaRepository, concesionarioRepo repository.ConcesionarioRepository) FacturaService {
	return &facturaService{repo: repo, concesionarioRepo: concesionarioRepo}
}

// MarcarPagada uses a guarded flip: of two concurrent payments exactly
// one sees rows affected, so the credit is restored exactly once.
func (s *facturaService) MarcarPagada(ctx context.Context, facturaID uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		f, err := s.repo.FindByIDTx(tx, facturaID)
		if err != nil {
			return notFound("factura.pagar", "Factura no encontrada", err)
		}
		if f.Estado != model.FacturaPendiente {
			return apierror.New(apierror.FailedPrecondition, "La factura ya fue pagada")
		}

		ok, err := s.repo.MarcarPagadaTx(tx, facturaID)
		if err != nil {
			return errAlmacen("factura.pagar", err)
		}
		if !ok {
			return apierror.New(apierror.FailedPrecondition, "La factura ya fue pagada")
		}
		return s.concesionarioRepo.AcreditarCreditoTx(tx, f.ConcesionarioID, f.Precio)
	})
}

func (s *facturaService) Listar(ctx context.Context, concesionarioID *uuid.UUID, filter dto.FacturaFilter) ([]dto.FacturaResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	facturas, total, err := s.repo.List(ctx, concesionarioID, filter)
	if err != nil {
		return nil, 0, errAlmacen("factura.listar", err)
	}
	out := make([]dto.FacturaResponse, 0, len(facturas))
	for i := range facturas {
		out = append(out, *facturaToResponse(&facturas[i]))
	}
	return out, total, nil
}

func (s *facturaService) ObtenerPDFPath(ctx context.Context, facturaID uuid.UUID, concesionarioID *uuid.UUID) (string, error) {
	f, err := s.repo.FindByID(ctx, facturaID)
	if err != nil {
		return "", notFound("factura.pdf", "Factura no encontrada", err)
	}
	if concesionarioID != nil && f.ConcesionarioID != *concesionarioID {
		return "", apierror.New(apierror.PermissionDenied, "La factura pertenece a otro concesionario")
	}
	if f.PDFPath == nil || *f.PDFPath == "" {
		return "", apierror.New(apierror.NotFound, "El documento de la factura todavia no fue generado")
	}
	return *f.PDFPath, nil
}

func facturaToResponse(f *model.Factura) *dto.FacturaResponse {
	resp := &dto.FacturaResponse{
		ID:              f.ID.String(),
		VehiculoID:      f.VehiculoID.String(),
		ConcesionarioID: f.ConcesionarioID.String(),
		Precio:          f.Precio,
		Estado:          f.Estado,
		Fecha:           f.Fecha.Format(time.RFC3339),
	}
	if f.PDFPath != nil && *f.PDFPath != "" {
		url := "/v1/facturas/" + f.ID.String() + "/pdf"
		resp.PDFUrl = &url
	}
	return resp
}
