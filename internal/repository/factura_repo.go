package repository

import (
	"context"

	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FacturaRepository interface {
	CreateTx(tx *gorm.DB, f *model.Factura) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error)
	List(ctx context.Context, concesionarioID *uuid.UUID, filter dto.FacturaFilter) ([]model.Factura, int64, error)

	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Factura, error)

	// MarcarPagadaTx settles the invoice only if it is still pending.
	// Returns false when it was already settled.
	MarcarPagadaTx(tx *gorm.DB, id uuid.UUID) (bool, error)

	UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error

	DB() *gorm.DB
}

type facturaRepo struct{ db *gorm.DB }

func NewFacturaRepository(db *gorm.DB) FacturaRepository { return &facturaRepo{db: db} }

func (r *facturaRepo) DB() *gorm.DB { return r.db }

func (r *facturaRepo) CreateTx(tx *gorm.DB, f *model.Factura) error {
	return tx.Create(f).Error
}

func (r *facturaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facturaRepo) List(ctx context.Context, concesionarioID *uuid.UUID, filter dto.FacturaFilter) ([]model.Factura, int64, error) {
	var facturas []model.Factura
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Factura{})
	if concesionarioID != nil {
		q = q.Where("concesionario_id = ?", *concesionarioID)
	}
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("fecha DESC").Offset(offset).Limit(filter.Limit).Find(&facturas).Error
	return facturas, total, err
}

func (r *facturaRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Factura, error) {
	var f model.Factura
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&f, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facturaRepo) MarcarPagadaTx(tx *gorm.DB, id uuid.UUID) (bool, error) {
	res := tx.Model(&model.Factura{}).
		Where("id = ? AND estado = ?", id, model.FacturaPendiente).
		Update("estado", model.FacturaPagada)
	return res.RowsAffected > 0, res.Error
}

func (r *facturaRepo) UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.Factura{}).
		Where("id = ?", id).
		Update("pdf_path", path).Error
}
