package repository

import (
	"context"

	"github.com/fermanzolido/autitos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PedidoRepository interface {
	Create(ctx context.Context, p *model.PedidoFabrica) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PedidoFabrica, error)
	List(ctx context.Context, concesionarioID *uuid.UUID) ([]model.PedidoFabrica, error)

	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.PedidoFabrica, error)

	// EmparejarTx flips the order pendiente → emparejado and records the
	// matched vehicle. Returns false if the order was no longer pending,
	// so a concurrent second match cannot succeed.
	EmparejarTx(tx *gorm.DB, id uuid.UUID, vehiculoID uuid.UUID) (bool, error)

	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func (r *pedidoRepo) Create(ctx context.Context, p *model.PedidoFabrica) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PedidoFabrica, error) {
	var p model.PedidoFabrica
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) List(ctx context.Context, concesionarioID *uuid.UUID) ([]model.PedidoFabrica, error) {
	var pedidos []model.PedidoFabrica
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if concesionarioID != nil {
		q = q.Where("concesionario_id = ?", *concesionarioID)
	}
	err := q.Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.PedidoFabrica, error) {
	var p model.PedidoFabrica
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) EmparejarTx(tx *gorm.DB, id uuid.UUID, vehiculoID uuid.UUID) (bool, error) {
	res := tx.Model(&model.PedidoFabrica{}).
		Where("id = ? AND estado = ?", id, model.PedidoPendiente).
		Updates(map[string]interface{}{
			"estado":                 model.PedidoEmparejado,
			"vehiculo_emparejado_id": vehiculoID,
		})
	return res.RowsAffected > 0, res.Error
}
