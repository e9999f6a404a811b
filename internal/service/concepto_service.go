package service

import (
	"context"
	"errors"

	"torresegura/internal/dto"
	"torresegura/internal/model"
	"torresegura/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ConceptoService interface {
	Crear(ctx context.Context, req dto.CrearConceptoRequest) (*dto.ConceptoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ConceptoResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.ConceptoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarConceptoRequest) (*dto.ConceptoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type conceptoService struct {
	repo repository.ConceptoRepository
}

func NewConceptoService(repo repository.ConceptoRepository) ConceptoService {
	return &conceptoService{repo: repo}
}

func (s *conceptoService) Crear(ctx context.Context, req dto.CrearConceptoRequest) (*dto.ConceptoResponse, error) {
	if req.MontoBase.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("monto_base debe ser mayor a cero")
	}
	if req.PorcentajeRecargo.IsNegative() {
		return nil, errors.New("porcentaje_recargo no puede ser negativo")
	}

	c := &model.ConceptoCuota{
		Nombre:            req.Nombre,
		Descripcion:       req.Descripcion,
		MontoBase:         req.MontoBase,
		Periodicidad:      req.Periodicidad,
		AplicaRecargo:     true,
		PorcentajeRecargo: req.PorcentajeRecargo,
		Activo:            true,
	}
	if c.Periodicidad == "" {
		c.Periodicidad = "mensual"
	}
	if req.AplicaRecargo != nil {
		c.AplicaRecargo = *req.AplicaRecargo
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return conceptoToResponse(c), nil
}

func (s *conceptoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ConceptoResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("concepto no encontrado")
	}
	return conceptoToResponse(c), nil
}

func (s *conceptoService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.ConceptoResponse, error) {
	conceptos, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ConceptoResponse, len(conceptos))
	for i := range conceptos {
		resp[i] = *conceptoToResponse(&conceptos[i])
	}
	return resp, nil
}

func (s *conceptoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarConceptoRequest) (*dto.ConceptoResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("concepto no encontrado")
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		c.Descripcion = *req.Descripcion
	}
	if req.MontoBase != nil {
		if req.MontoBase.LessThanOrEqual(decimal.Zero) {
			return nil, errors.New("monto_base debe ser mayor a cero")
		}
		c.MontoBase = *req.MontoBase
	}
	if req.Periodicidad != nil {
		c.Periodicidad = *req.Periodicidad
	}
	if req.AplicaRecargo != nil {
		c.AplicaRecargo = *req.AplicaRecargo
	}
	if req.PorcentajeRecargo != nil {
		if req.PorcentajeRecargo.IsNegative() {
			return nil, errors.New("porcentaje_recargo no puede ser negativo")
		}
		c.PorcentajeRecargo = *req.PorcentajeRecargo
	}
	if req.Activo != nil {
		c.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return conceptoToResponse(c), nil
}

// Eliminar rejects the delete while any cuota references the concepto,
// mirroring the FK RESTRICT at the schema level.
func (s *conceptoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("concepto no encontrado")
	}
	n, err := s.repo.CountCuotas(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errors.New("el concepto tiene cuotas emitidas y no puede eliminarse")
	}
	return s.repo.Delete(ctx, id)
}

func conceptoToResponse(c *model.ConceptoCuota) *dto.ConceptoResponse {
	return &dto.ConceptoResponse{
		ID:                c.ID.String(),
		Nombre:            c.Nombre,
		Descripcion:       c.Descripcion,
		MontoBase:         c.MontoBase,
		Periodicidad:      c.Periodicidad,
		AplicaRecargo:     c.AplicaRecargo,
		PorcentajeRecargo: c.PorcentajeRecargo,
		Activo:            c.Activo,
	}
}
