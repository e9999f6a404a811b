package repository

import (
	"context"
	"time"

	"torresegura/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EstadoCuentaRepository interface {
	Create(ctx context.Context, ec *model.EstadoCuenta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EstadoCuenta, error)
	Update(ctx context.Context, ec *model.EstadoCuenta) error
	ListByVivienda(ctx context.Context, viviendaID uuid.UUID) ([]model.EstadoCuenta, error)
	ExistsPeriodo(ctx context.Context, viviendaID uuid.UUID, inicio, fin time.Time) (bool, error)
	FindUltimoAnterior(ctx context.Context, viviendaID uuid.UUID, antesDe time.Time) (*model.EstadoCuenta, error)
}

type estadoCuentaRepo struct{ db *gorm.DB }

func NewEstadoCuentaRepository(db *gorm.DB) EstadoCuentaRepository {
	return &estadoCuentaRepo{db: db}
}

func (r *estadoCuentaRepo) Create(ctx context.Context, ec *model.EstadoCuenta) error {
	return r.db.WithContext(ctx).Create(ec).Error
}

func (r *estadoCuentaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.EstadoCuenta, error) {
	var ec model.EstadoCuenta
	err := r.db.WithContext(ctx).Preload("Vivienda").Preload("Vivienda.Edificio").First(&ec, id).Error
	return &ec, err
}

func (r *estadoCuentaRepo) Update(ctx context.Context, ec *model.EstadoCuenta) error {
	return r.db.WithContext(ctx).Save(ec).Error
}

func (r *estadoCuentaRepo) ListByVivienda(ctx context.Context, viviendaID uuid.UUID) ([]model.EstadoCuenta, error) {
	var ecs []model.EstadoCuenta
	err := r.db.WithContext(ctx).
		Where("vivienda_id = ?", viviendaID).
		Order("fecha_fin DESC").Find(&ecs).Error
	return ecs, err
}

func (r *estadoCuentaRepo) ExistsPeriodo(ctx context.Context, viviendaID uuid.UUID, inicio, fin time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.EstadoCuenta{}).
		Where("vivienda_id = ? AND fecha_inicio = ? AND fecha_fin = ?", viviendaID, inicio, fin).
		Count(&n).Error
	return n > 0, err
}

// FindUltimoAnterior returns the most recent statement that closed before the
// given date, used to seed saldo_anterior for a new statement.
func (r *estadoCuentaRepo) FindUltimoAnterior(ctx context.Context, viviendaID uuid.UUID, antesDe time.Time) (*model.EstadoCuenta, error) {
	var ec model.EstadoCuenta
	err := r.db.WithContext(ctx).
		Where("vivienda_id = ? AND fecha_fin < ?", viviendaID, antesDe).
		Order("fecha_fin DESC").First(&ec).Error
	if err != nil {
		return nil, err
	}
	return &ec, nil
}
