package repository

import (
	"context"

	"github.com/fermanzolido/autitos/internal/model"

	"gorm.io/gorm"
)

type PrevisionRepository interface {
	Create(ctx context.Context, p *model.Prevision) error
	List(ctx context.Context) ([]model.Prevision, error)
}

type previsionRepo struct{ db *gorm.DB }

func NewPrevisionRepository(db *gorm.DB) PrevisionRepository { return &previsionRepo{db: db} }

func (r *previsionRepo) Create(ctx context.Context, p *model.Prevision) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *previsionRepo) List(ctx context.Context) ([]model.Prevision, error) {
	var previsiones []model.Prevision
	err := r.db.WithContext(ctx).Order("mes DESC").Find(&previsiones).Error
	return previsiones, err
}
