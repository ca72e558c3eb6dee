package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/fermanzolido/autitos/internal/model"
	"github.com/fermanzolido/autitos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats_Global(t *testing.T) {
	vehiculoRepo := newStubVehiculoRepo()
	ventaRepo := newStubVentaRepo()
	concesionarioRepo := newStubConcesionarioRepo()
	svc := service.NewDashboardService(vehiculoRepo, ventaRepo, concesionarioRepo, nil, 30*time.Second)

	c := seedConcesionario(concesionarioRepo, 100000)
	seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR300001", 30000, model.EstadoEnFabrica, nil)
	seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR300002", 30000, model.EstadoEnConcesionario, &c.ID)
	vendido := seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR300003", 30000, model.EstadoVendido, &c.ID)
	ventaRepo.ventas[uuid.New()] = &model.Venta{VehiculoID: vendido.ID, ConcesionarioID: c.ID}

	resp, err := svc.Stats(context.Background(), nil)
	require.NoError(t, err)
	// Sold vehicles are out of stock.
	assert.Equal(t, int64(2), resp.VehiculosEnStock)
	assert.Equal(t, int64(1), resp.TotalVentas)
	require.NotNil(t, resp.TotalConcesionarios)
	assert.Equal(t, int64(1), *resp.TotalConcesionarios)
}

func TestDashboardStats_ScopeDealer(t *testing.T) {
	vehiculoRepo := newStubVehiculoRepo()
	ventaRepo := newStubVentaRepo()
	concesionarioRepo := newStubConcesionarioRepo()
	svc := service.NewDashboardService(vehiculoRepo, ventaRepo, concesionarioRepo, nil, 30*time.Second)

	c := seedConcesionario(concesionarioRepo, 100000)
	otro := seedConcesionario(concesionarioRepo, 100000)
	seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR300004", 30000, model.EstadoEnConcesionario, &c.ID)
	seedVehiculo(vehiculoRepo, "VSSZZZ1P0LR300005", 30000, model.EstadoEnConcesionario, &otro.ID)

	resp, err := svc.Stats(context.Background(), &c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.VehiculosEnStock)
	// Dealers never see the network-wide count.
	assert.Nil(t, resp.TotalConcesionarios)
}
