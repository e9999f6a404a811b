package repository

import (
	"context"
	"time"

	"torresegura/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CuotaFilter narrows List queries; zero values mean "no filter".
type CuotaFilter struct {
	ViviendaID *uuid.UUID
	ConceptoID *uuid.UUID
	Pagada     *bool
	VencidaAl  *time.Time // fecha_vencimiento < VencidaAl and unpaid
	Page       int
	Limit      int
}

type CuotaRepository interface {
	DB() *gorm.DB
	Create(ctx context.Context, c *model.Cuota) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cuota, error)
	// FindByIDForUpdate locks the cuota row inside tx (SELECT ... FOR UPDATE)
	// so concurrent allocation writes cannot race past the outstanding check.
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Cuota, error)
	Update(ctx context.Context, c *model.Cuota) error
	UpdateTx(tx *gorm.DB, c *model.Cuota) error
	List(ctx context.Context, f CuotaFilter) ([]model.Cuota, int64, error)
	Exists(ctx context.Context, conceptoID, viviendaID uuid.UUID, fechaEmision time.Time) (bool, error)
	ListPendientesByVivienda(ctx context.Context, viviendaID uuid.UUID) ([]model.Cuota, error)
	ListVencidas(ctx context.Context, hoy time.Time, limit int) ([]model.Cuota, error)
	ListByViviendaPeriodo(ctx context.Context, viviendaID uuid.UUID, desde, hasta time.Time) ([]model.Cuota, error)
}

type cuotaRepo struct{ db *gorm.DB }

func NewCuotaRepository(db *gorm.DB) CuotaRepository { return &cuotaRepo{db: db} }

func (r *cuotaRepo) DB() *gorm.DB { return r.db }

func (r *cuotaRepo) Create(ctx context.Context, c *model.Cuota) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cuotaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cuota, error) {
	var c model.Cuota
	err := r.db.WithContext(ctx).Preload("Concepto").Preload("Vivienda").First(&c, id).Error
	return &c, err
}

func (r *cuotaRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Cuota, error) {
	var c model.Cuota
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Concepto").First(&c, id).Error
	return &c, err
}

func (r *cuotaRepo) Update(ctx context.Context, c *model.Cuota) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cuotaRepo) UpdateTx(tx *gorm.DB, c *model.Cuota) error {
	return tx.Save(c).Error
}

func (r *cuotaRepo) List(ctx context.Context, f CuotaFilter) ([]model.Cuota, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Cuota{})
	if f.ViviendaID != nil {
		q = q.Where("vivienda_id = ?", *f.ViviendaID)
	}
	if f.ConceptoID != nil {
		q = q.Where("concepto_id = ?", *f.ConceptoID)
	}
	if f.Pagada != nil {
		q = q.Where("pagada = ?", *f.Pagada)
	}
	if f.VencidaAl != nil {
		q = q.Where("pagada = false AND fecha_vencimiento < ?", *f.VencidaAl)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Offset((f.Page - 1) * f.Limit).Limit(f.Limit)
	}
	var cuotas []model.Cuota
	err := q.Preload("Concepto").Order("fecha_vencimiento DESC").Find(&cuotas).Error
	return cuotas, total, err
}

func (r *cuotaRepo) Exists(ctx context.Context, conceptoID, viviendaID uuid.UUID, fechaEmision time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Cuota{}).
		Where("concepto_id = ? AND vivienda_id = ? AND fecha_emision = ?", conceptoID, viviendaID, fechaEmision).
		Count(&count).Error
	return count > 0, err
}

func (r *cuotaRepo) ListPendientesByVivienda(ctx context.Context, viviendaID uuid.UUID) ([]model.Cuota, error) {
	var cuotas []model.Cuota
	err := r.db.WithContext(ctx).Preload("Concepto").
		Where("vivienda_id = ? AND pagada = false", viviendaID).
		Order("fecha_vencimiento ASC").Find(&cuotas).Error
	return cuotas, err
}

func (r *cuotaRepo) ListVencidas(ctx context.Context, hoy time.Time, limit int) ([]model.Cuota, error) {
	var cuotas []model.Cuota
	q := r.db.WithContext(ctx).Preload("Concepto").
		Joins("JOIN concepto_cuotas ON concepto_cuotas.id = cuotas.concepto_id").
		Where("cuotas.pagada = false AND cuotas.fecha_vencimiento < ? AND concepto_cuotas.aplica_recargo = true", hoy).
		Order("cuotas.fecha_vencimiento ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&cuotas).Error
	return cuotas, err
}

func (r *cuotaRepo) ListByViviendaPeriodo(ctx context.Context, viviendaID uuid.UUID, desde, hasta time.Time) ([]model.Cuota, error) {
	var cuotas []model.Cuota
	err := r.db.WithContext(ctx).Preload("Concepto").
		Where("vivienda_id = ? AND fecha_emision >= ? AND fecha_emision <= ?", viviendaID, desde, hasta).
		Order("fecha_emision ASC").Find(&cuotas).Error
	return cuotas, err
}
