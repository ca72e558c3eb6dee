package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstadoVehiculoOrden(t *testing.T) {
	cadena := []EstadoVehiculo{
		EstadoEnFabrica, EstadoAsignado, EstadoEnTransito, EstadoEnConcesionario, EstadoVendido,
	}

	for i, e := range cadena {
		assert.True(t, e.Valido(), "estado %s debe ser válido", e)
		for j, destino := range cadena {
			esperado := j > i
			assert.Equal(t, esperado, e.Posterior(destino),
				"%s → %s: Posterior debe ser %v", e, destino, esperado)
		}
	}
}

func TestEstadoVehiculoInvalido(t *testing.T) {
	assert.False(t, EstadoVehiculo("entregado").Valido())
	assert.False(t, EstadoEnFabrica.Posterior("entregado"))
	assert.False(t, EstadoVehiculo("").Posterior(EstadoVendido))
}

func TestRolValido(t *testing.T) {
	assert.True(t, RolAdmin.Valido())
	assert.True(t, RolFactory.Valido())
	assert.True(t, RolDealer.Valido())
	assert.False(t, Rol("supervisor").Valido())
}
