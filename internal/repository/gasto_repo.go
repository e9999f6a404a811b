package repository

import (
	"context"
	"time"

	"torresegura/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GastoFilter struct {
	CategoriaID *uuid.UUID
	Estado      string
	Tipo        string
	Desde       *time.Time
	Hasta       *time.Time
	Page        int
	Limit       int
}

type GastoRepository interface {
	CreateCategoria(ctx context.Context, c *model.CategoriaGasto) error
	FindCategoriaByID(ctx context.Context, id uuid.UUID) (*model.CategoriaGasto, error)
	ListCategorias(ctx context.Context) ([]model.CategoriaGasto, error)
	UpdateCategoria(ctx context.Context, c *model.CategoriaGasto) error
	CountGastosByCategoria(ctx context.Context, categoriaID uuid.UUID) (int64, error)
	DeleteCategoria(ctx context.Context, id uuid.UUID) error

	Create(ctx context.Context, g *model.Gasto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error)
	Update(ctx context.Context, g *model.Gasto) error
	List(ctx context.Context, f GastoFilter) ([]model.Gasto, int64, error)
	SumMontoByCategoriaBetween(ctx context.Context, categoriaID uuid.UUID, desde, hasta time.Time) (decimal.Decimal, error)
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) CreateCategoria(ctx context.Context, c *model.CategoriaGasto) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *gastoRepo) FindCategoriaByID(ctx context.Context, id uuid.UUID) (*model.CategoriaGasto, error) {
	var c model.CategoriaGasto
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *gastoRepo) ListCategorias(ctx context.Context) ([]model.CategoriaGasto, error) {
	var cats []model.CategoriaGasto
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&cats).Error
	return cats, err
}

func (r *gastoRepo) UpdateCategoria(ctx context.Context, c *model.CategoriaGasto) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *gastoRepo) CountGastosByCategoria(ctx context.Context, categoriaID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Gasto{}).
		Where("categoria_id = ?", categoriaID).Count(&n).Error
	return n, err
}

func (r *gastoRepo) DeleteCategoria(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CategoriaGasto{}, id).Error
}

func (r *gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gastoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error) {
	var g model.Gasto
	err := r.db.WithContext(ctx).Preload("Categoria").First(&g, id).Error
	return &g, err
}

func (r *gastoRepo) Update(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *gastoRepo) List(ctx context.Context, f GastoFilter) ([]model.Gasto, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Gasto{})
	if f.CategoriaID != nil {
		q = q.Where("categoria_id = ?", *f.CategoriaID)
	}
	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}
	if f.Tipo != "" {
		q = q.Where("tipo_gasto = ?", f.Tipo)
	}
	if f.Desde != nil {
		q = q.Where("fecha >= ?", *f.Desde)
	}
	if f.Hasta != nil {
		q = q.Where("fecha <= ?", *f.Hasta)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Offset((f.Page - 1) * f.Limit).Limit(f.Limit)
	}
	var gastos []model.Gasto
	err := q.Preload("Categoria").Order("fecha DESC").Find(&gastos).Error
	return gastos, total, err
}

func (r *gastoRepo) SumMontoByCategoriaBetween(ctx context.Context, categoriaID uuid.UUID, desde, hasta time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Gasto{}).
		Select("COALESCE(SUM(monto), 0)").
		Where("categoria_id = ? AND estado <> ? AND fecha >= ? AND fecha <= ?",
			categoriaID, model.GastoCancelado, desde, hasta).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
