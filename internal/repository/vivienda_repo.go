package repository

import (
	"context"

	"torresegura/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ViviendaRepository interface {
	// Edificios
	CreateEdificio(ctx context.Context, e *model.Edificio) error
	FindEdificioByID(ctx context.Context, id uuid.UUID) (*model.Edificio, error)
	ListEdificios(ctx context.Context) ([]model.Edificio, error)
	UpdateEdificio(ctx context.Context, e *model.Edificio) error
	DeleteEdificio(ctx context.Context, id uuid.UUID) error

	// Viviendas
	Create(ctx context.Context, v *model.Vivienda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vivienda, error)
	List(ctx context.Context, soloActivas bool) ([]model.Vivienda, error)
	ListActivasIDs(ctx context.Context) ([]uuid.UUID, error)
	Update(ctx context.Context, v *model.Vivienda) error
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error

	// Residentes
	CreateResidente(ctx context.Context, res *model.Residente) error
	FindResidenteByID(ctx context.Context, id uuid.UUID) (*model.Residente, error)
	FindResidenteByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Residente, error)
	ListResidentesByVivienda(ctx context.Context, viviendaID uuid.UUID, soloActivos bool) ([]model.Residente, error)
	UpdateResidente(ctx context.Context, res *model.Residente) error
	DeleteResidente(ctx context.Context, id uuid.UUID) error
}

type viviendaRepo struct{ db *gorm.DB }

func NewViviendaRepository(db *gorm.DB) ViviendaRepository { return &viviendaRepo{db: db} }

func (r *viviendaRepo) CreateEdificio(ctx context.Context, e *model.Edificio) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *viviendaRepo) FindEdificioByID(ctx context.Context, id uuid.UUID) (*model.Edificio, error) {
	var e model.Edificio
	err := r.db.WithContext(ctx).Preload("Viviendas").First(&e, id).Error
	return &e, err
}

func (r *viviendaRepo) ListEdificios(ctx context.Context) ([]model.Edificio, error) {
	var edificios []model.Edificio
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&edificios).Error
	return edificios, err
}

func (r *viviendaRepo) UpdateEdificio(ctx context.Context, e *model.Edificio) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *viviendaRepo) DeleteEdificio(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Edificio{}, id).Error
}

func (r *viviendaRepo) Create(ctx context.Context, v *model.Vivienda) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *viviendaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vivienda, error) {
	var v model.Vivienda
	err := r.db.WithContext(ctx).Preload("Edificio").First(&v, id).Error
	return &v, err
}

func (r *viviendaRepo) List(ctx context.Context, soloActivas bool) ([]model.Vivienda, error) {
	q := r.db.WithContext(ctx).Preload("Edificio").Order("numero ASC")
	if soloActivas {
		q = q.Where("activo = true")
	}
	var viviendas []model.Vivienda
	err := q.Find(&viviendas).Error
	return viviendas, err
}

func (r *viviendaRepo) ListActivasIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Vivienda{}).
		Where("activo = true").Order("numero ASC").Pluck("id", &ids).Error
	return ids, err
}

func (r *viviendaRepo) Update(ctx context.Context, v *model.Vivienda) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *viviendaRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Vivienda{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *viviendaRepo) CreateResidente(ctx context.Context, res *model.Residente) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *viviendaRepo) FindResidenteByID(ctx context.Context, id uuid.UUID) (*model.Residente, error) {
	var res model.Residente
	err := r.db.WithContext(ctx).Preload("Usuario").Preload("Vivienda").First(&res, id).Error
	return &res, err
}

func (r *viviendaRepo) FindResidenteByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Residente, error) {
	var res model.Residente
	err := r.db.WithContext(ctx).Preload("Vivienda").Where("usuario_id = ?", usuarioID).First(&res).Error
	return &res, err
}

func (r *viviendaRepo) ListResidentesByVivienda(ctx context.Context, viviendaID uuid.UUID, soloActivos bool) ([]model.Residente, error) {
	q := r.db.WithContext(ctx).Preload("Usuario").Where("vivienda_id = ?", viviendaID)
	if soloActivos {
		q = q.Where("activo = true")
	}
	var residentes []model.Residente
	err := q.Find(&residentes).Error
	return residentes, err
}

func (r *viviendaRepo) UpdateResidente(ctx context.Context, res *model.Residente) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *viviendaRepo) DeleteResidente(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Residente{}, id).Error
}
