package service_test

import (
	"context"
	"time"

	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/model"
	"github.com/fermanzolido/autitos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories. Tx-suffixed methods ignore the nil *gorm.DB the
// services pass when built without a database, but keep the guarded-update
// semantics (checking the expected state before flipping) so concurrency
// preconditions can be exercised.

type stubVehiculoRepo struct {
	vehiculos map[uuid.UUID]*model.Vehiculo
	historial map[uuid.UUID][]model.HistorialEstado
}

func newStubVehiculoRepo() *stubVehiculoRepo {
	return &stubVehiculoRepo{
		vehiculos: make(map[uuid.UUID]*model.Vehiculo),
		historial: make(map[uuid.UUID][]model.HistorialEstado),
	}
}

func (r *stubVehiculoRepo) Create(_ context.Context, _ *gorm.DB, v *model.Vehiculo) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	r.vehiculos[v.ID] = v
	return nil
}

func (r *stubVehiculoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Vehiculo, error) {
	v, ok := r.vehiculos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *v
	copia.Historial = r.historial[id]
	return &copia, nil
}

func (r *stubVehiculoRepo) FindByVIN(_ context.Context, vin string) (*model.Vehiculo, error) {
	for _, v := range r.vehiculos {
		if v.VIN == vin {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVehiculoRepo) List(_ context.Context, concesionarioID *uuid.UUID, _ dto.VehiculoFilter) ([]model.Vehiculo, int64, error) {
	var out []model.Vehiculo
	for _, v := range r.vehiculos {
		if concesionarioID != nil && (v.ConcesionarioID == nil || *v.ConcesionarioID != *concesionarioID) {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVehiculoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.vehiculos, id)
	delete(r.historial, id)
	return nil
}

func (r *stubVehiculoRepo) CountEnStock(_ context.Context, concesionarioID *uuid.UUID) (int64, error) {
	var total int64
	for _, v := range r.vehiculos {
		if v.Estado == model.EstadoVendido {
			continue
		}
		if concesionarioID != nil && (v.ConcesionarioID == nil || *v.ConcesionarioID != *concesionarioID) {
			continue
		}
		total++
	}
	return total, nil
}

func (r *stubVehiculoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Vehiculo, error) {
	v, ok := r.vehiculos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVehiculoRepo) TransicionarTx(_ *gorm.DB, id uuid.UUID, desde, hasta model.EstadoVehiculo, extra map[string]interface{}) (bool, error) {
	v, ok := r.vehiculos[id]
	if !ok || v.Estado != desde {
		return false, nil
	}
	v.Estado = hasta
	if _, ok := extra["fecha_entrega_final"]; ok {
		ahora := time.Now()
		v.FechaEntregaFinal = &ahora
	}
	return true, nil
}

func (r *stubVehiculoRepo) AsignarTx(_ *gorm.DB, id uuid.UUID, concesionarioID uuid.UUID) (bool, error) {
	v, ok := r.vehiculos[id]
	if !ok || v.ConcesionarioID != nil {
		return false, nil
	}
	v.ConcesionarioID = &concesionarioID
	return true, nil
}

func (r *stubVehiculoRepo) AppendHistorialTx(_ *gorm.DB, vehiculoID uuid.UUID, estado model.EstadoVehiculo) error {
	r.historial[vehiculoID] = append(r.historial[vehiculoID], model.HistorialEstado{
		VehiculoID: vehiculoID,
		Estado:     estado,
		CreatedAt:  time.Now(),
	})
	return nil
}

func (r *stubVehiculoRepo) UpdateTx(_ *gorm.DB, v *model.Vehiculo) error {
	r.vehiculos[v.ID] = v
	return nil
}

func (r *stubVehiculoRepo) DB() *gorm.DB { return nil }

var _ repository.VehiculoRepository = (*stubVehiculoRepo)(nil)

type stubConcesionarioRepo struct {
	concesionarios map[uuid.UUID]*model.Concesionario
}

func newStubConcesionarioRepo() *stubConcesionarioRepo {
	return &stubConcesionarioRepo{concesionarios: make(map[uuid.UUID]*model.Concesionario)}
}

func (r *stubConcesionarioRepo) Create(_ context.Context, c *model.Concesionario) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.concesionarios[c.ID] = c
	return nil
}

func (r *stubConcesionarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Concesionario, error) {
	c, ok := r.concesionarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubConcesionarioRepo) List(_ context.Context) ([]model.Concesionario, error) {
	var out []model.Concesionario
	for _, c := range r.concesionarios {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubConcesionarioRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.concesionarios, id)
	return nil
}

func (r *stubConcesionarioRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.concesionarios)), nil
}

func (r *stubConcesionarioRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Concesionario, error) {
	c, ok := r.concesionarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubConcesionarioRepo) DebitarCreditoTx(_ *gorm.DB, id uuid.UUID, monto decimal.Decimal) (bool, error) {
	c, ok := r.concesionarios[id]
	if !ok || c.CreditoDisponible.LessThan(monto) {
		return false, nil
	}
	c.CreditoDisponible = c.CreditoDisponible.Sub(monto)
	return true, nil
}

func (r *stubConcesionarioRepo) AcreditarCreditoTx(_ *gorm.DB, id uuid.UUID, monto decimal.Decimal) error {
	c, ok := r.concesionarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.CreditoDisponible = c.CreditoDisponible.Add(monto)
	return nil
}

func (r *stubConcesionarioRepo) UpdateTx(_ *gorm.DB, c *model.Concesionario) error {
	r.concesionarios[c.ID] = c
	return nil
}

func (r *stubConcesionarioRepo) DB() *gorm.DB { return nil }

var _ repository.ConcesionarioRepository = (*stubConcesionarioRepo)(nil)

type stubPedidoRepo struct {
	pedidos map[uuid.UUID]*model.PedidoFabrica
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.PedidoFabrica)}
}

func (r *stubPedidoRepo) Create(_ context.Context, p *model.PedidoFabrica) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PedidoFabrica, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPedidoRepo) List(_ context.Context, concesionarioID *uuid.UUID) ([]model.PedidoFabrica, error) {
	var out []model.PedidoFabrica
	for _, p := range r.pedidos {
		if concesionarioID != nil && p.ConcesionarioID != *concesionarioID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPedidoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.PedidoFabrica, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPedidoRepo) EmparejarTx(_ *gorm.DB, id uuid.UUID, vehiculoID uuid.UUID) (bool, error) {
	p, ok := r.pedidos[id]
	if !ok || p.Estado != model.PedidoPendiente {
		return false, nil
	}
	p.Estado = model.PedidoEmparejado
	p.VehiculoEmparejadoID = &vehiculoID
	return true, nil
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

type stubFacturaRepo struct {
	facturas map[uuid.UUID]*model.Factura
}

func newStubFacturaRepo() *stubFacturaRepo {
	return &stubFacturaRepo{facturas: make(map[uuid.UUID]*model.Factura)}
}

func (r *stubFacturaRepo) CreateTx(_ *gorm.DB, f *model.Factura) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.facturas[f.ID] = f
	return nil
}

func (r *stubFacturaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Factura, error) {
	f, ok := r.facturas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *stubFacturaRepo) List(_ context.Context, concesionarioID *uuid.UUID, _ dto.FacturaFilter) ([]model.Factura, int64, error) {
	var out []model.Factura
	for _, f := range r.facturas {
		if concesionarioID != nil && f.ConcesionarioID != *concesionarioID {
			continue
		}
		out = append(out, *f)
	}
	return out, int64(len(out)), nil
}

func (r *stubFacturaRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Factura, error) {
	f, ok := r.facturas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *stubFacturaRepo) MarcarPagadaTx(_ *gorm.DB, id uuid.UUID) (bool, error) {
	f, ok := r.facturas[id]
	if !ok || f.Estado != model.FacturaPendiente {
		return false, nil
	}
	f.Estado = model.FacturaPagada
	return true, nil
}

func (r *stubFacturaRepo) UpdatePDFPath(_ context.Context, id uuid.UUID, path string) error {
	f, ok := r.facturas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.PDFPath = &path
	return nil
}

func (r *stubFacturaRepo) DB() *gorm.DB { return nil }

var _ repository.FacturaRepository = (*stubFacturaRepo)(nil)

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) List(_ context.Context, concesionarioID *uuid.UUID, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if concesionarioID != nil && v.ConcesionarioID != *concesionarioID {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) Count(_ context.Context, concesionarioID *uuid.UUID) (int64, error) {
	_, total, _ := r.List(context.Background(), concesionarioID, dto.VentaFilter{})
	return total, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

type stubClienteRepo struct {
	clientes      map[uuid.UUID]*model.Cliente
	interacciones map[uuid.UUID]*model.Interaccion
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{
		clientes:      make(map[uuid.UUID]*model.Cliente),
		interacciones: make(map[uuid.UUID]*model.Interaccion),
	}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) CreateTx(_ *gorm.DB, c *model.Cliente) error {
	return r.Create(context.Background(), c)
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clientes, id)
	return nil
}

func (r *stubClienteRepo) CreateInteraccion(_ context.Context, i *model.Interaccion) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.interacciones[i.ID] = i
	return nil
}

func (r *stubClienteRepo) FindInteraccionByID(_ context.Context, id uuid.UUID) (*model.Interaccion, error) {
	i, ok := r.interacciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubClienteRepo) ListInteracciones(_ context.Context, clienteID uuid.UUID) ([]model.Interaccion, error) {
	var out []model.Interaccion
	for _, i := range r.interacciones {
		if i.ClienteID == clienteID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubClienteRepo) CompletarSeguimiento(_ context.Context, id uuid.UUID) error {
	i, ok := r.interacciones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	i.EstadoSeguimiento = model.SeguimientoCompletado
	return nil
}

func (r *stubClienteRepo) DB() *gorm.DB { return nil }

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Usuarios ─────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			copia := *u
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *u
	return &copia, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	if _, ok := r.usuarios[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.usuarios[u.ID] = u
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)
