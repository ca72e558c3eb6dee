package repository

import (
	"context"

	"github.com/fermanzolido/autitos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConcesionarioRepository maintains dealers and their credit ledger.
// The balance is adjusted incrementally with guarded updates — never
// recomputed from outstanding vehicles — so every credit check is a
// constant-size read inside the transaction.
type ConcesionarioRepository interface {
	Create(ctx context.Context, c *model.Concesionario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Concesionario, error)
	List(ctx context.Context) ([]model.Concesionario, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)

	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Concesionario, error)

	// DebitarCreditoTx subtracts monto from the available credit only if
	// enough is available. Returns false on insufficient credit.
	DebitarCreditoTx(tx *gorm.DB, id uuid.UUID, monto decimal.Decimal) (bool, error)

	// AcreditarCreditoTx restores monto of available credit (invoice payment).
	AcreditarCreditoTx(tx *gorm.DB, id uuid.UUID, monto decimal.Decimal) error

	UpdateTx(tx *gorm.DB, c *model.Concesionario) error

	DB() *gorm.DB
}

type concesionarioRepo struct{ db *gorm.DB }

func NewConcesionarioRepository(db *gorm.DB) ConcesionarioRepository {
	return &concesionarioRepo{db: db}
}

func (r *concesionarioRepo) DB() *gorm.DB { return r.db }

func (r *concesionarioRepo) Create(ctx context.Context, c *model.Concesionario) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *concesionarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Concesionario, error) {
	var c model.Concesionario
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *concesionarioRepo) List(ctx context.Context) ([]model.Concesionario, error) {
	var concesionarios []model.Concesionario
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&concesionarios).Error
	return concesionarios, err
}

func (r *concesionarioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Concesionario{}, "id = ?", id).Error
}

func (r *concesionarioRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Concesionario{}).Count(&total).Error
	return total, err
}

func (r *concesionarioRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Concesionario, error) {
	var c model.Concesionario
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *concesionarioRepo) DebitarCreditoTx(tx *gorm.DB, id uuid.UUID, monto decimal.Decimal) (bool, error) {
	res := tx.Model(&model.Concesionario{}).
		Where("id = ? AND credito_disponible >= ?", id, monto).
		Update("credito_disponible", gorm.Expr("credito_disponible - ?", monto))
	return res.RowsAffected > 0, res.Error
}

func (r *concesionarioRepo) AcreditarCreditoTx(tx *gorm.DB, id uuid.UUID, monto decimal.Decimal) error {
	return tx.Model(&model.Concesionario{}).
		Where("id = ?", id).
		Update("credito_disponible", gorm.Expr("credito_disponible + ?", monto)).Error
}

func (r *concesionarioRepo) UpdateTx(tx *gorm.DB, c *model.Concesionario) error {
	return tx.Save(c).Error
}
