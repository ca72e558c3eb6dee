package service_test

import (
	"context"
	"testing"

	"github.com/fermanzolido/autitos/internal/apierror"
	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/model"
	"github.com/fermanzolido/autitos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

func buildVehiculoSvc() (service.VehiculoService, *stubVehiculoRepo, *stubConcesionarioRepo, *stubFacturaRepo) {
	vehiculoRepo := newStubVehiculoRepo()
	concesionarioRepo := newStubConcesionarioRepo()
	facturaRepo := newStubFacturaRepo()
	svc := service.NewVehiculoService(vehiculoRepo, concesionarioRepo, facturaRepo, nil)
	return svc, vehiculoRepo, concesionarioRepo, facturaRepo
}

func seedConcesionario(r *stubConcesionarioRepo, linea float64) *model.Concesionario {
	c := &model.Concesionario{
		ID:                uuid.New(),
		Nombre:            "Concesionario Centro",
		LineaCredito:      decimal.NewFromFloat(linea),
		CreditoDisponible: decimal.NewFromFloat(linea),
	}
	r.concesionarios[c.ID] = c
	return c
}

func seedVehiculo(r *stubVehiculoRepo, vin string, precio float64, estado model.EstadoVehiculo, concesionarioID *uuid.UUID) *model.Vehiculo {
	v := &model.Vehiculo{
		ID:              uuid.New(),
		Marca:           "Seat",
		Modelo:          "Ibiza",
		VIN:             vin,
		Precio:          decimal.NewFromFloat(precio),
		Estado:          estado,
		ConcesionarioID: concesionarioID,
	}
	r.vehiculos[v.ID] = v
	return v
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func TestCrearVehiculo_HistorialInicial(t *testing.T) {
	svc, vehiculoRepo, _, _ := buildVehiculoSvc()

	resp, err := svc.Crear(context.Background(), dto.GuardarVehiculoRequest{
		Marca:  "Seat",
		Modelo: "Leon",
		VIN:    "VSSZZZ1P0LR000001",
		Precio: decimal.NewFromInt(27000),
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.EstadoEnFabrica), resp.Estado)

	id := uuid.MustParse(resp.ID)
	historial := vehiculoRepo.historial[id]
	require.Len(t, historial, 1)
	assert.Equal(t, model.EstadoEnFabrica, historial[0].Estado)
}

func TestCrearVehiculo_VINDuplicado(t *testing.T) {
	svc, vehiculoRepo, _, _ := buildVehiculoSvc()
	seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR000002", 25000, model.EstadoEnFabrica, nil)

	_, err := svc.Crear(context.Background(), dto.GuardarVehiculoRequest{
		Marca:  "Seat",
		Modelo: "Ibiza",
		VIN:    "VSSZZZ1P0LR000002",
		Precio: decimal.NewFromInt(25000),
	})
	assert.True(t, apierror.Is(err, apierror.AlreadyExists))
}

func TestCrearVehiculo_EstadoDesconocido(t *testing.T) {
	svc, _, _, _ := buildVehiculoSvc()

	_, err := svc.Crear(context.Background(), dto.GuardarVehiculoRequest{
		Marca:  "Seat",
		Modelo: "Ibiza",
		VIN:    "VSSZZZ1P0LR000003",
		Precio: decimal.NewFromInt(25000),
		Estado: "derretido",
	})
	assert.True(t, apierror.Is(err, apierror.InvalidArgument))
}

// ── Actualizar ────────────────────────────────────────────────────────────────

func TestActualizarVehiculo_RetrocesoRechazado(t *testing.T) {
	svc, vehiculoRepo, _, _ := buildVehiculoSvc()
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR000004", 25000, model.EstadoEnTransito, nil)

	_, err := svc.Actualizar(context.Background(), v.ID, dto.GuardarVehiculoRequest{
		Marca:  v.Marca,
		Modelo: v.Modelo,
		VIN:    v.VIN,
		Precio: v.Precio,
		Estado: string(model.EstadoAsignado),
	})
	assert.True(t, apierror.Is(err, apierror.FailedPrecondition))
	assert.Equal(t, model.EstadoEnTransito, vehiculoRepo.vehiculos[v.ID].Estado)
}

func TestActualizarVehiculo_LlegadaGeneraFactura(t *testing.T) {
	svc, vehiculoRepo, concesionarioRepo, facturaRepo := buildVehiculoSvc()
	c := seedConcesionario(concesionarioRepo, 100000)
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR000005", 30000, model.EstadoEnTransito, &c.ID)

	resp, err := svc.Actualizar(context.Background(), v.ID, dto.GuardarVehiculoRequest{
		Marca:  v.Marca,
		Modelo: v.Modelo,
		VIN:    v.VIN,
		Precio: v.Precio,
		Estado: string(model.EstadoEnConcesionario),
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.EstadoEnConcesionario), resp.Estado)

	require.Len(t, facturaRepo.facturas, 1)
	for _, f := range facturaRepo.facturas {
		assert.Equal(t, model.FacturaPendiente, f.Estado)
		assert.Equal(t, c.ID, f.ConcesionarioID)
		assert.True(t, f.Precio.Equal(v.Precio))
	}
}

func TestActualizarVehiculo_SinConcesionarioNoFactura(t *testing.T) {
	svc, vehiculoRepo, _, facturaRepo := buildVehiculoSvc()
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR000006", 30000, model.EstadoEnTransito, nil)

	_, err := svc.Actualizar(context.Background(), v.ID, dto.GuardarVehiculoRequest{
		Marca:  v.Marca,
		Modelo: v.Modelo,
		VIN:    v.VIN,
		Precio: v.Precio,
		Estado: string(model.EstadoEnConcesionario),
	})
	require.NoError(t, err)
	assert.Empty(t, facturaRepo.facturas)
}

// ── ConfirmarPedido ───────────────────────────────────────────────────────────

func TestConfirmarPedido_DebitaCredito(t *testing.T) {
	svc, vehiculoRepo, concesionarioRepo, _ := buildVehiculoSvc()
	c := seedConcesionario(concesionarioRepo, 100000)
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR000007", 80000, model.EstadoAsignado, &c.ID)

	err := svc.ConfirmarPedido(context.Background(), v.ID, c.ID)
	require.NoError(t, err)

	assert.Equal(t, model.EstadoEnTransito, vehiculoRepo.vehiculos[v.ID].Estado)
	assert.Equal(t, "20000", concesionarioRepo.concesionarios[c.ID].CreditoDisponible.String())

	historial := vehiculoRepo.historial[v.ID]
	require.Len(t, historial, 1)
	assert.Equal(t, model.EstadoEnTransito, historial[0].Estado)
}

func TestConfirmarPedido_CreditoInsuficiente(t *testing.T) {
	svc, vehiculoRepo, concesionarioRepo, _ := buildVehiculoSvc()
	c := seedConcesionario(concesionarioRepo, 50000)
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR000008", 80000, model.EstadoAsignado, &c.ID)

	err := svc.ConfirmarPedido(context.Background(), v.ID, c.ID)
	assert.True(t, apierror.Is(err, apierror.FailedPrecondition))
	assert.ErrorContains(t, err, "Credito insuficiente")

	// Nothing changed.
	assert.Equal(t, model.EstadoAsignado, vehiculoRepo.vehiculos[v.ID].Estado)
	assert.Equal(t, "50000", concesionarioRepo.concesionarios[c.ID].CreditoDisponible.String())
}

func TestConfirmarPedido_DobleConfirmacion(t *testing.T) {
	svc, vehiculoRepo, concesionarioRepo, _ := buildVehiculoSvc()
	c := seedConcesionario(concesionarioRepo, 200000)
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR000009", 80000, model.EstadoAsignado, &c.ID)

	require.NoError(t, svc.ConfirmarPedido(context.Background(), v.ID, c.ID))

	err := svc.ConfirmarPedido(context.Background(), v.ID, c.ID)
	assert.True(t, apierror.Is(err, apierror.FailedPrecondition))

	// Debited exactly once.
	assert.Equal(t, "120000", concesionarioRepo.concesionarios[c.ID].CreditoDisponible.String())
}

func TestConfirmarPedido_OtroConcesionario(t *testing.T) {
	svc, vehiculoRepo, concesionarioRepo, _ := buildVehiculoSvc()
	dueno := seedConcesionario(concesionarioRepo, 100000)
	otro := seedConcesionario(concesionarioRepo, 100000)
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR000010", 80000, model.EstadoAsignado, &dueno.ID)

	err := svc.ConfirmarPedido(context.Background(), v.ID, otro.ID)
	assert.True(t, apierror.Is(err, apierror.PermissionDenied))
}

func TestConfirmarPedido_EstadoIncorrecto(t *testing.T) {
	svc, vehiculoRepo, concesionarioRepo, _ := buildVehiculoSvc()
	c := seedConcesionario(concesionarioRepo, 100000)
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR000011", 80000, model.EstadoEnFabrica, &c.ID)

	err := svc.ConfirmarPedido(context.Background(), v.ID, c.ID)
	assert.True(t, apierror.Is(err, apierror.FailedPrecondition))
}

// ── Recibir ───────────────────────────────────────────────────────────────────

func TestRecibir_CreaFacturaPendiente(t *testing.T) {
	svc, vehiculoRepo, concesionarioRepo, facturaRepo := buildVehiculoSvc()
	c := seedConcesionario(concesionarioRepo, 100000)
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR000012", 30000, model.EstadoEnTransito, &c.ID)

	err := svc.Recibir(context.Background(), v.ID, c.ID)
	require.NoError(t, err)

	assert.Equal(t, model.EstadoEnConcesionario, vehiculoRepo.vehiculos[v.ID].Estado)
	require.Len(t, facturaRepo.facturas, 1)
	for _, f := range facturaRepo.facturas {
		assert.Equal(t, v.ID, f.VehiculoID)
		assert.Equal(t, model.FacturaPendiente, f.Estado)
	}
}

func TestRecibir_EstadoIncorrecto(t *testing.T) {
	svc, vehiculoRepo, concesionarioRepo, facturaRepo := buildVehiculoSvc()
	c := seedConcesionario(concesionarioRepo, 100000)
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR000013", 30000, model.EstadoAsignado, &c.ID)

	err := svc.Recibir(context.Background(), v.ID, c.ID)
	assert.True(t, apierror.Is(err, apierror.FailedPrecondition))
	assert.Empty(t, facturaRepo.facturas)
}

// ── Asignar ───────────────────────────────────────────────────────────────────

func TestAsignar_YaAsignado(t *testing.T) {
	svc, vehiculoRepo, concesionarioRepo, _ := buildVehiculoSvc()
	dueno := seedConcesionario(concesionarioRepo, 100000)
	otro := seedConcesionario(concesionarioRepo, 100000)
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR000014", 30000, model.EstadoEnFabrica, &dueno.ID)

	err := svc.Asignar(context.Background(), v.ID, otro.ID)
	assert.True(t, apierror.Is(err, apierror.FailedPrecondition))
	assert.Equal(t, dueno.ID, *vehiculoRepo.vehiculos[v.ID].ConcesionarioID)
}

// ── Listar ────────────────────────────────────────────────────────────────────

func TestListarVehiculos_ScopePorConcesionario(t *testing.T) {
	svc, vehiculoRepo, concesionarioRepo, _ := buildVehiculoSvc()
	c := seedConcesionario(concesionarioRepo, 100000)
	seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR000015", 30000, model.EstadoAsignado, &c.ID)
	seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR000016", 30000, model.EstadoEnFabrica, nil)

	resp, err := svc.Listar(context.Background(), &c.ID, dto.VehiculoFilter{Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "VSSZZZ1P0LR000015", resp.Data[0].VIN)
}
