package repository

import (
	"context"

	"torresegura/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AsignacionFilter struct {
	EmpleadoID *uuid.UUID
	Estado     string
	Tipo       string
	Page       int
	Limit      int
}

type PersonalRepository interface {
	CreatePuesto(ctx context.Context, p *model.Puesto) error
	FindPuestoByID(ctx context.Context, id uuid.UUID) (*model.Puesto, error)
	ListPuestos(ctx context.Context) ([]model.Puesto, error)
	UpdatePuesto(ctx context.Context, p *model.Puesto) error
	CountEmpleadosByPuesto(ctx context.Context, puestoID uuid.UUID) (int64, error)

	CreateEmpleado(ctx context.Context, e *model.Empleado) error
	FindEmpleadoByID(ctx context.Context, id uuid.UUID) (*model.Empleado, error)
	FindEmpleadoByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Empleado, error)
	ListEmpleados(ctx context.Context, soloActivos bool) ([]model.Empleado, error)
	UpdateEmpleado(ctx context.Context, e *model.Empleado) error

	CreateAsignacion(ctx context.Context, a *model.Asignacion) error
	FindAsignacionByID(ctx context.Context, id uuid.UUID) (*model.Asignacion, error)
	UpdateAsignacion(ctx context.Context, a *model.Asignacion) error
	ListAsignaciones(ctx context.Context, f AsignacionFilter) ([]model.Asignacion, int64, error)
}

type personalRepo struct{ db *gorm.DB }

func NewPersonalRepository(db *gorm.DB) PersonalRepository { return &personalRepo{db: db} }

func (r *personalRepo) CreatePuesto(ctx context.Context, p *model.Puesto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *personalRepo) FindPuestoByID(ctx context.Context, id uuid.UUID) (*model.Puesto, error) {
	var p model.Puesto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *personalRepo) ListPuestos(ctx context.Context) ([]model.Puesto, error) {
	var puestos []model.Puesto
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&puestos).Error
	return puestos, err
}

func (r *personalRepo) UpdatePuesto(ctx context.Context, p *model.Puesto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *personalRepo) CountEmpleadosByPuesto(ctx context.Context, puestoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Empleado{}).
		Where("puesto_id = ? AND activo = true", puestoID).Count(&n).Error
	return n, err
}

func (r *personalRepo) CreateEmpleado(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *personalRepo) FindEmpleadoByID(ctx context.Context, id uuid.UUID) (*model.Empleado, error) {
	var e model.Empleado
	err := r.db.WithContext(ctx).
		Preload("Usuario").Preload("Puesto").Preload("Edificio").
		First(&e, id).Error
	return &e, err
}

func (r *personalRepo) FindEmpleadoByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Empleado, error) {
	var e model.Empleado
	err := r.db.WithContext(ctx).Preload("Puesto").
		Where("usuario_id = ?", usuarioID).First(&e).Error
	return &e, err
}

func (r *personalRepo) ListEmpleados(ctx context.Context, soloActivos bool) ([]model.Empleado, error) {
	q := r.db.WithContext(ctx).Preload("Usuario").Preload("Puesto")
	if soloActivos {
		q = q.Where("activo = true")
	}
	var empleados []model.Empleado
	err := q.Order("created_at ASC").Find(&empleados).Error
	return empleados, err
}

func (r *personalRepo) UpdateEmpleado(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *personalRepo) CreateAsignacion(ctx context.Context, a *model.Asignacion) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *personalRepo) FindAsignacionByID(ctx context.Context, id uuid.UUID) (*model.Asignacion, error) {
	var a model.Asignacion
	err := r.db.WithContext(ctx).
		Preload("Empleado").Preload("Empleado.Usuario").Preload("Vivienda").
		First(&a, id).Error
	return &a, err
}

func (r *personalRepo) UpdateAsignacion(ctx context.Context, a *model.Asignacion) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *personalRepo) ListAsignaciones(ctx context.Context, f AsignacionFilter) ([]model.Asignacion, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Asignacion{})
	if f.EmpleadoID != nil {
		q = q.Where("empleado_id = ?", *f.EmpleadoID)
	}
	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}
	if f.Tipo != "" {
		q = q.Where("tipo = ?", f.Tipo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Offset((f.Page - 1) * f.Limit).Limit(f.Limit)
	}
	var asignaciones []model.Asignacion
	err := q.Preload("Empleado").Preload("Vivienda").
		Order("prioridad ASC, fecha_asignacion DESC").Find(&asignaciones).Error
	return asignaciones, total, err
}
