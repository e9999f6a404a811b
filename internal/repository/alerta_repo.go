package repository

import (
	"context"

	"torresegura/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertaFilter struct {
	Estado       string
	EnviadoPorID *uuid.UUID
	Page         int
	Limit        int
}

type AlertaRepository interface {
	Create(ctx context.Context, a *model.Alerta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Alerta, error)
	Update(ctx context.Context, a *model.Alerta) error
	List(ctx context.Context, f AlertaFilter) ([]model.Alerta, int64, error)
}

type alertaRepo struct{ db *gorm.DB }

func NewAlertaRepository(db *gorm.DB) AlertaRepository { return &alertaRepo{db: db} }

func (r *alertaRepo) Create(ctx context.Context, a *model.Alerta) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *alertaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Alerta, error) {
	var a model.Alerta
	err := r.db.WithContext(ctx).
		Preload("EnviadoPor").Preload("AtendidoPor").
		First(&a, id).Error
	return &a, err
}

func (r *alertaRepo) Update(ctx context.Context, a *model.Alerta) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *alertaRepo) List(ctx context.Context, f AlertaFilter) ([]model.Alerta, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Alerta{})
	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}
	if f.EnviadoPorID != nil {
		q = q.Where("enviado_por_id = ?", *f.EnviadoPorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var alertas []model.Alerta
	err := q.Preload("EnviadoPor").Preload("AtendidoPor").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Find(&alertas).Error
	return alertas, total, err
}
