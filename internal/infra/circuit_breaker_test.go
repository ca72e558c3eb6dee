package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRelay = errors.New("smtp relay down")

func testCB() *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      50 * time.Millisecond,
	})
}

func TestCircuitBreaker_AbreTrasFallosConsecutivos(t *testing.T) {
	cb := testCB()
	for i := 0; i < 3; i++ {
		err := cb.Execute(func() error { return errRelay })
		require.ErrorIs(t, err, errRelay)
	}
	assert.Equal(t, CBOpen, cb.State())

	// Abierto: fast-fail sin ejecutar fn
	ejecutado := false
	err := cb.Execute(func() error { ejecutado = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, ejecutado)
}

func TestCircuitBreaker_ExitoReiniciaElContador(t *testing.T) {
	cb := testCB()
	require.Error(t, cb.Execute(func() error { return errRelay }))
	require.Error(t, cb.Execute(func() error { return errRelay }))
	require.NoError(t, cb.Execute(func() error { return nil }))

	// Dos fallos más no alcanzan: el contador volvió a cero.
	require.Error(t, cb.Execute(func() error { return errRelay }))
	require.Error(t, cb.Execute(func() error { return errRelay }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_MedioAbiertoCierraConExitos(t *testing.T) {
	cb := testCB()
	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errRelay })
	}
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_SondaFallidaReabre(t *testing.T) {
	cb := testCB()
	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errRelay })
	}
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.Error(t, cb.Execute(func() error { return errRelay }))
	assert.Equal(t, CBOpen, cb.State())
}
