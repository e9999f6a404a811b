package repository

import (
	"context"

	"torresegura/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConceptoRepository interface {
	Create(ctx context.Context, c *model.ConceptoCuota) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ConceptoCuota, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.ConceptoCuota, error)
	Update(ctx context.Context, c *model.ConceptoCuota) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountCuotas backs the delete guard: a concepto with cuotas cannot go away
	CountCuotas(ctx context.Context, id uuid.UUID) (int64, error)
}

type conceptoRepo struct{ db *gorm.DB }

func NewConceptoRepository(db *gorm.DB) ConceptoRepository { return &conceptoRepo{db: db} }

func (r *conceptoRepo) Create(ctx context.Context, c *model.ConceptoCuota) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *conceptoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ConceptoCuota, error) {
	var c model.ConceptoCuota
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *conceptoRepo) List(ctx context.Context, incluirInactivos bool) ([]model.ConceptoCuota, error) {
	q := r.db.WithContext(ctx).Order("nombre ASC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	var conceptos []model.ConceptoCuota
	err := q.Find(&conceptos).Error
	return conceptos, err
}

func (r *conceptoRepo) Update(ctx context.Context, c *model.ConceptoCuota) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *conceptoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ConceptoCuota{}, id).Error
}

func (r *conceptoRepo) CountCuotas(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Cuota{}).Where("concepto_id = ?", id).Count(&count).Error
	return count, err
}
