package repository

import (
	"context"
	"time"

	"torresegura/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PagoFilter narrows List queries; zero values mean "no filter".
type PagoFilter struct {
	ViviendaID *uuid.UUID
	Estado     string
	Desde      *time.Time
	Hasta      *time.Time
	Page       int
	Limit      int
}

type PagoRepository interface {
	DB() *gorm.DB
	Create(ctx context.Context, p *model.Pago) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pago, error)
	Update(ctx context.Context, p *model.Pago) error
	UpdateTx(tx *gorm.DB, p *model.Pago) error
	List(ctx context.Context, f PagoFilter) ([]model.Pago, int64, error)
	ListVerificadosPeriodo(ctx context.Context, viviendaID uuid.UUID, desde, hasta time.Time) ([]model.Pago, error)

	// Asignaciones
	CreateAsignacionTx(tx *gorm.DB, pc *model.PagoCuota) error
	FindAsignacion(ctx context.Context, pagoID, cuotaID uuid.UUID) (*model.PagoCuota, error)
	DeleteAsignacionTx(tx *gorm.DB, id uuid.UUID) error
	ListAsignacionesByPago(ctx context.Context, pagoID uuid.UUID) ([]model.PagoCuota, error)
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) DB() *gorm.DB { return r.db }

func (r *pagoRepo) Create(ctx context.Context, p *model.Pago) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pagoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pago, error) {
	var p model.Pago
	err := r.db.WithContext(ctx).
		Preload("Asignaciones").
		Preload("Asignaciones.Cuota").
		Preload("Asignaciones.Cuota.Concepto").
		First(&p, id).Error
	return &p, err
}

func (r *pagoRepo) Update(ctx context.Context, p *model.Pago) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *pagoRepo) UpdateTx(tx *gorm.DB, p *model.Pago) error {
	return tx.Save(p).Error
}

func (r *pagoRepo) List(ctx context.Context, f PagoFilter) ([]model.Pago, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Pago{})
	if f.ViviendaID != nil {
		q = q.Where("vivienda_id = ?", *f.ViviendaID)
	}
	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}
	if f.Desde != nil {
		q = q.Where("fecha_pago >= ?", *f.Desde)
	}
	if f.Hasta != nil {
		q = q.Where("fecha_pago <= ?", *f.Hasta)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Offset((f.Page - 1) * f.Limit).Limit(f.Limit)
	}
	var pagos []model.Pago
	err := q.Order("fecha_pago DESC, created_at DESC").Find(&pagos).Error
	return pagos, total, err
}

func (r *pagoRepo) ListVerificadosPeriodo(ctx context.Context, viviendaID uuid.UUID, desde, hasta time.Time) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Where("vivienda_id = ? AND estado = ? AND fecha_pago >= ? AND fecha_pago <= ?",
			viviendaID, model.PagoVerificado, desde, hasta).
		Order("fecha_pago ASC").Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) CreateAsignacionTx(tx *gorm.DB, pc *model.PagoCuota) error {
	return tx.Create(pc).Error
}

func (r *pagoRepo) FindAsignacion(ctx context.Context, pagoID, cuotaID uuid.UUID) (*model.PagoCuota, error) {
	var pc model.PagoCuota
	err := r.db.WithContext(ctx).
		Where("pago_id = ? AND cuota_id = ?", pagoID, cuotaID).First(&pc).Error
	return &pc, err
}

func (r *pagoRepo) DeleteAsignacionTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.PagoCuota{}, id).Error
}

func (r *pagoRepo) ListAsignacionesByPago(ctx context.Context, pagoID uuid.UUID) ([]model.PagoCuota, error) {
	var pcs []model.PagoCuota
	err := r.db.WithContext(ctx).Where("pago_id = ?", pagoID).Find(&pcs).Error
	return pcs, err
}
