package repository

import (
	"context"

	"github.com/fermanzolido/autitos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	CreateTx(tx *gorm.DB, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Interacciones — CRM follow-up notes on a customer
	CreateInteraccion(ctx context.Context, i *model.Interaccion) error
	FindInteraccionByID(ctx context.Context, id uuid.UUID) (*model.Interaccion, error)
	ListInteracciones(ctx context.Context, clienteID uuid.UUID) ([]model.Interaccion, error)
	CompletarSeguimiento(ctx context.Context, id uuid.UUID) error

	DB() *gorm.DB
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) DB() *gorm.DB { return r.db }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) CreateTx(tx *gorm.DB, c *model.Cliente) error {
	return tx.Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Cliente{}, "id = ?", id).Error
}

func (r *clienteRepo) CreateInteraccion(ctx context.Context, i *model.Interaccion) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *clienteRepo) FindInteraccionByID(ctx context.Context, id uuid.UUID) (*model.Interaccion, error) {
	var i model.Interaccion
	err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *clienteRepo) ListInteracciones(ctx context.Context, clienteID uuid.UUID) ([]model.Interaccion, error) {
	var interacciones []model.Interaccion
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Order("fecha DESC").
		Find(&interacciones).Error
	return interacciones, err
}

func (r *clienteRepo) CompletarSeguimiento(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Interaccion{}).
		Where("id = ?", id).
		Update("estado_seguimiento", model.SeguimientoCompletado).Error
}
