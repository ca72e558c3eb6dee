package service_test

import (
	"context"
	"testing"

	"github.com/fermanzolido/autitos/internal/apierror"
	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/model"
	"github.com/fermanzolido/autitos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPedidoSvc() (service.PedidoService, *stubPedidoRepo, *stubVehiculoRepo) {
	pedidoRepo := newStubPedidoRepo()
	vehiculoRepo := newStubVehiculoRepo()
	return service.NewPedidoService(pedidoRepo, vehiculoRepo), pedidoRepo, vehiculoRepo
}

func seedPedido(r *stubPedidoRepo, concesionarioID uuid.UUID, estado string) *model.PedidoFabrica {
	p := &model.PedidoFabrica{
		ID:              uuid.New(),
		ConcesionarioID: concesionarioID,
		Marca:           "Seat",
		Modelo:          "Ibiza",
		Estado:          estado,
	}
	r.pedidos[p.ID] = p
	return p
}

func TestCrearPedido(t *testing.T) {
	svc, pedidoRepo, _ := buildPedidoSvc()
	cid := uuid.New()

	resp, err := svc.Crear(context.Background(), cid, dto.CrearPedidoRequest{Marca: "Seat", Modelo: "Arona"})
	require.NoError(t, err)
	assert.Equal(t, model.PedidoPendiente, resp.Estado)
	assert.Equal(t, cid.String(), resp.ConcesionarioID)
	assert.Len(t, pedidoRepo.pedidos, 1)
}

func TestEmparejar_AsignaYTransiciona(t *testing.T) {
	svc, pedidoRepo, vehiculoRepo := buildPedidoSvc()
	cid := uuid.New()
	p := seedPedido(pedidoRepo, cid, model.PedidoPendiente)
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR100001", 25000, model.EstadoEnFabrica, nil)

	err := svc.Emparejar(context.Background(), p.ID, v.ID)
	require.NoError(t, err)

	assert.Equal(t, model.PedidoEmparejado, pedidoRepo.pedidos[p.ID].Estado)
	assert.Equal(t, v.ID, *pedidoRepo.pedidos[p.ID].VehiculoEmparejadoID)

	actualizado := vehiculoRepo.vehiculos[v.ID]
	assert.Equal(t, model.EstadoAsignado, actualizado.Estado)
	assert.Equal(t, cid, *actualizado.ConcesionarioID)

	historial := vehiculoRepo.historial[v.ID]
	require.Len(t, historial, 1)
	assert.Equal(t, model.EstadoAsignado, historial[0].Estado)
}

func TestEmparejar_PedidoYaEmparejado(t *testing.T) {
	svc, pedidoRepo, vehiculoRepo := buildPedidoSvc()
	p := seedPedido(pedidoRepo, uuid.New(), model.PedidoEmparejado)
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR100002", 25000, model.EstadoEnFabrica, nil)

	err := svc.Emparejar(context.Background(), p.ID, v.ID)
	assert.True(t, apierror.Is(err, apierror.FailedPrecondition))
	assert.Nil(t, vehiculoRepo.vehiculos[v.ID].ConcesionarioID)
}

func TestEmparejar_VehiculoFueraDeFabrica(t *testing.T) {
	svc, pedidoRepo, vehiculoRepo := buildPedidoSvc()
	p := seedPedido(pedidoRepo, uuid.New(), model.PedidoPendiente)
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR100003", 25000, model.EstadoEnTransito, nil)

	err := svc.Emparejar(context.Background(), p.ID, v.ID)
	assert.True(t, apierror.Is(err, apierror.FailedPrecondition))
	assert.Equal(t, model.PedidoPendiente, pedidoRepo.pedidos[p.ID].Estado)
}

func TestEmparejar_VehiculoYaAsignado(t *testing.T) {
	svc, pedidoRepo, vehiculoRepo := buildPedidoSvc()
	p := seedPedido(pedidoRepo, uuid.New(), model.PedidoPendiente)
	otro := uuid.New()
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR100004", 25000, model.EstadoEnFabrica, &otro)

	err := svc.Emparejar(context.Background(), p.ID, v.ID)
	assert.True(t, apierror.Is(err, apierror.FailedPrecondition))
}

func TestEmparejar_DobleEmparejamiento(t *testing.T) {
	svc, pedidoRepo, vehiculoRepo := buildPedidoSvc()
	cid := uuid.New()
	p1 := seedPedido(pedidoRepo, cid, model.PedidoPendiente)
	p2 := seedPedido(pedidoRepo, uuid.New(), model.PedidoPendiente)
	v := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR100005", 25000, model.EstadoEnFabrica, nil)

	require.NoError(t, svc.Emparejar(context.Background(), p1.ID, v.ID))

	// The same vehicle cannot satisfy a second order.
	err := svc.Emparejar(context.Background(), p2.ID, v.ID)
	assert.True(t, apierror.Is(err, apierror.FailedPrecondition))
	assert.Equal(t, model.PedidoPendiente, pedidoRepo.pedidos[p2.ID].Estado)
}

func TestListarPedidos_ScopePorConcesionario(t *testing.T) {
	svc, pedidoRepo, _ := buildPedidoSvc()
	cid := uuid.New()
	seedPedido(pedidoRepo, cid, model.PedidoPendiente)
	seedPedido(pedidoRepo, uuid.New(), model.PedidoPendiente)

	out, err := svc.Listar(context.Background(), &cid)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
