package repository

import (
	"context"
	"time"

	"torresegura/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VisitaFilter struct {
	ViviendaID *uuid.UUID
	Activas    bool
	Desde      *time.Time
	Hasta      *time.Time
	Limit      int
}

type VisitaRepository interface {
	Create(ctx context.Context, v *model.Visita) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Visita, error)
	Update(ctx context.Context, v *model.Visita) error
	ListHistorial(ctx context.Context, f VisitaFilter) ([]model.Visita, error)

	CreateMovimiento(ctx context.Context, m *model.MovimientoResidente) error
	ListMovimientos(ctx context.Context, residenteID *uuid.UUID, limit int) ([]model.MovimientoResidente, error)
}

type visitaRepo struct{ db *gorm.DB }

func NewVisitaRepository(db *gorm.DB) VisitaRepository { return &visitaRepo{db: db} }

func (r *visitaRepo) Create(ctx context.Context, v *model.Visita) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *visitaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Visita, error) {
	var v model.Visita
	err := r.db.WithContext(ctx).
		Preload("ViviendaDestino").Preload("ViviendaDestino.Edificio").
		Preload("ResidenteAutoriza").
		First(&v, id).Error
	return &v, err
}

func (r *visitaRepo) Update(ctx context.Context, v *model.Visita) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *visitaRepo) ListHistorial(ctx context.Context, f VisitaFilter) ([]model.Visita, error) {
	q := r.db.WithContext(ctx).Model(&model.Visita{})
	if f.ViviendaID != nil {
		q = q.Where("vivienda_destino_id = ?", *f.ViviendaID)
	}
	if f.Activas {
		q = q.Where("fecha_hora_salida IS NULL")
	}
	if f.Desde != nil {
		q = q.Where("fecha_hora_entrada >= ?", *f.Desde)
	}
	if f.Hasta != nil {
		q = q.Where("fecha_hora_entrada <= ?", *f.Hasta)
	}
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var visitas []model.Visita
	err := q.Preload("ViviendaDestino").
		Order("fecha_hora_entrada DESC").Limit(limit).Find(&visitas).Error
	return visitas, err
}

func (r *visitaRepo) CreateMovimiento(ctx context.Context, m *model.MovimientoResidente) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *visitaRepo) ListMovimientos(ctx context.Context, residenteID *uuid.UUID, limit int) ([]model.MovimientoResidente, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimientoResidente{})
	if residenteID != nil {
		q = q.Where("residente_id = ?", *residenteID)
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var movs []model.MovimientoResidente
	err := q.Preload("Residente").Order("created_at DESC").Limit(limit).Find(&movs).Error
	return movs, err
}
