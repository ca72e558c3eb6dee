package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/fermanzolido/autitos/internal/apierror"
	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/model"
	"github.com/fermanzolido/autitos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFacturaSvc() (service.FacturaService, *stubFacturaRepo, *stubConcesionarioRepo) {
	facturaRepo := newStubFacturaRepo()
	concesionarioRepo := newStubConcesionarioRepo()
	return service.NewFacturaService(facturaRepo, concesionarioRepo), facturaRepo, concesionarioRepo
}

func seedFactura(r *stubFacturaRepo, concesionarioID uuid.UUID, monto float64, estado string) *model.Factura {
	f := &model.Factura{
		ID:              uuid.New(),
		VehiculoID:      uuid.New(),
		ConcesionarioID: concesionarioID,
		Precio:          decimal.NewFromFloat(monto),
		Estado:          estado,
		Fecha:           time.Now(),
	}
	r.facturas[f.ID] = f
	return f
}

func TestMarcarPagada_RestauraCredito(t *testing.T) {
	svc, facturaRepo, concesionarioRepo := buildFacturaSvc()
	c := seedConcesionario(concesionarioRepo, 100000)
	// Simulate an earlier confirmed order that consumed 80000.
	c.CreditoDisponible = decimal.NewFromInt(20000)
	f := seedFactura(facturaRepo, c.ID, 80000, model.FacturaPendiente)

	err := svc.MarcarPagada(context.Background(), f.ID)
	require.NoError(t, err)

	assert.Equal(t, model.FacturaPagada, facturaRepo.facturas[f.ID].Estado)
	assert.Equal(t, "100000", concesionarioRepo.concesionarios[c.ID].CreditoDisponible.String())
}

func TestMarcarPagada_DoblePagoNoDuplicaCredito(t *testing.T) {
	svc, facturaRepo, concesionarioRepo := buildFacturaSvc()
	c := seedConcesionario(concesionarioRepo, 100000)
	c.CreditoDisponible = decimal.NewFromInt(20000)
	f := seedFactura(facturaRepo, c.ID, 80000, model.FacturaPendiente)

	require.NoError(t, svc.MarcarPagada(context.Background(), f.ID))

	err := svc.MarcarPagada(context.Background(), f.ID)
	assert.True(t, apierror.Is(err, apierror.FailedPrecondition))

	// Credited exactly once.
	assert.Equal(t, "100000", concesionarioRepo.concesionarios[c.ID].CreditoDisponible.String())
}

func TestMarcarPagada_NoExiste(t *testing.T) {
	svc, _, _ := buildFacturaSvc()
	err := svc.MarcarPagada(context.Background(), uuid.New())
	assert.True(t, apierror.Is(err, apierror.NotFound))
}

func TestListarFacturas_ScopePorConcesionario(t *testing.T) {
	svc, facturaRepo, concesionarioRepo := buildFacturaSvc()
	c := seedConcesionario(concesionarioRepo, 100000)
	seedFactura(facturaRepo, c.ID, 30000, model.FacturaPendiente)
	seedFactura(facturaRepo, uuid.New(), 45000, model.FacturaPendiente)

	out, total, err := svc.Listar(context.Background(), &c.ID, dto.FacturaFilter{Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, out, 1)
	assert.Equal(t, c.ID.String(), out[0].ConcesionarioID)
}

func TestObtenerPDFPath_ScopeDeOtroConcesionario(t *testing.T) {
	svc, facturaRepo, concesionarioRepo := buildFacturaSvc()
	c := seedConcesionario(concesionarioRepo, 100000)
	f := seedFactura(facturaRepo, c.ID, 30000, model.FacturaPendiente)
	path := "/tmp/facturas/x.pdf"
	f.PDFPath = &path

	otro := uuid.New()
	_, err := svc.ObtenerPDFPath(context.Background(), f.ID, &otro)
	assert.True(t, apierror.Is(err, apierror.PermissionDenied))

	got, err := svc.ObtenerPDFPath(context.Background(), f.ID, &c.ID)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestObtenerPDFPath_SinDocumento(t *testing.T) {
	svc, facturaRepo, concesionarioRepo := buildFacturaSvc()
	c := seedConcesionario(concesionarioRepo, 100000)
	f := seedFactura(facturaRepo, c.ID, 30000, model.FacturaPendiente)

	_, err := svc.ObtenerPDFPath(context.Background(), f.ID, nil)
	assert.True(t, apierror.Is(err, apierror.NotFound))
}
