package repository

import (
	"context"
	"time"

	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VehiculoRepository is the data access contract for vehicles. Methods
// with a Tx suffix run inside a caller-supplied transaction; state
// transitions use guarded updates (WHERE estado = <expected>) so that of
// two concurrent writers exactly one observes rows affected.
type VehiculoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Vehiculo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vehiculo, error)
	FindByVIN(ctx context.Context, vin string) (*model.Vehiculo, error)
	List(ctx context.Context, concesionarioID *uuid.UUID, filter dto.VehiculoFilter) ([]model.Vehiculo, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountEnStock(ctx context.Context, concesionarioID *uuid.UUID) (int64, error)

	// FindByIDTx re-reads the vehicle inside tx with a row lock, so the
	// preconditions checked afterwards hold until commit.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Vehiculo, error)

	// TransicionarTx moves estado desde→hasta, applying extra column
	// updates in the same statement. Returns false when the vehicle was
	// no longer in the expected estado.
	TransicionarTx(tx *gorm.DB, id uuid.UUID, desde, hasta model.EstadoVehiculo, extra map[string]interface{}) (bool, error)

	// AsignarTx sets the dealer on a factory vehicle that has none yet.
	AsignarTx(tx *gorm.DB, id uuid.UUID, concesionarioID uuid.UUID) (bool, error)

	// AppendHistorialTx inserts one append-only status log entry.
	AppendHistorialTx(tx *gorm.DB, vehiculoID uuid.UUID, estado model.EstadoVehiculo) error

	UpdateTx(tx *gorm.DB, v *model.Vehiculo) error

	DB() *gorm.DB
}

type vehiculoRepo struct{ db *gorm.DB }

func NewVehiculoRepository(db *gorm.DB) VehiculoRepository { return &vehiculoRepo{db: db} }

func (r *vehiculoRepo) DB() *gorm.DB { return r.db }

func (r *vehiculoRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Vehiculo) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *vehiculoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehiculo, error) {
	var v model.Vehiculo
	err := r.db.WithContext(ctx).
		Preload("Historial", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehiculoRepo) FindByVIN(ctx context.Context, vin string) (*model.Vehiculo, error) {
	var v model.Vehiculo
	err := r.db.WithContext(ctx).Where("vin = ?", vin).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehiculoRepo) List(ctx context.Context, concesionarioID *uuid.UUID, filter dto.VehiculoFilter) ([]model.Vehiculo, int64, error) {
	var vehiculos []model.Vehiculo
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Vehiculo{})
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
	err := q.Preload("Historial", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&vehiculos).Error
	return vehiculos, total, err
}

func (r *vehiculoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vehiculo_id = ?", id).Delete(&model.HistorialEstado{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Vehiculo{}, "id = ?", id).Error
	})
}

func (r *vehiculoRepo) CountEnStock(ctx context.Context, concesionarioID *uuid.UUID) (int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Vehiculo{}).Where("estado <> ?", model.EstadoVendido)
	if concesionarioID != nil {
		q = q.Where("concesionario_id = ?", *concesionarioID)
	}
	err := q.Count(&total).Error
	return total, err
}

func (r *vehiculoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Vehiculo, error) {
	var v model.Vehiculo
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehiculoRepo) TransicionarTx(tx *gorm.DB, id uuid.UUID, desde, hasta model.EstadoVehiculo, extra map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"estado": hasta, "updated_at": time.Now()}
	for k, v := range extra {
		updates[k] = v
	}
	res := tx.Model(&model.Vehiculo{}).
		Where("id = ? AND estado = ?", id, desde).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *vehiculoRepo) AsignarTx(tx *gorm.DB, id uuid.UUID, concesionarioID uuid.UUID) (bool, error) {
	res := tx.Model(&model.Vehiculo{}).
		Where("id = ? AND concesionario_id IS NULL", id).
		Update("concesionario_id", concesionarioID)
	return res.RowsAffected > 0, res.Error
}

func (r *vehiculoRepo) AppendHistorialTx(tx *gorm.DB, vehiculoID uuid.UUID, estado model.EstadoVehiculo) error {
	return tx.Create(&model.HistorialEstado{VehiculoID: vehiculoID, Estado: estado}).Error
}

func (r *vehiculoRepo) UpdateTx(tx *gorm.DB, v *model.Vehiculo) error {
	return tx.Save(v).Error
}
