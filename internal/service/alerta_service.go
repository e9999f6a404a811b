package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"torresegura/internal/dto"
	"torresegura/internal/model"
	"torresegura/internal/repository"

	"github.com/google/uuid"
)

// AlertaService manages emergency alerts raised from the mobile app or the
// guard booth. New alertas start in "pendiente"; staff moves them through
// "en_proceso" to "resuelto".
type AlertaService interface {
	Crear(ctx context.Context, enviadoPorID uuid.UUID, req dto.CrearAlertaRequest) (*dto.AlertaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.AlertaResponse, error)
	Listar(ctx context.Context, filter dto.AlertaFilter) (*dto.AlertaListResponse, error)
	// MisAlertas lists only the alertas the given user raised.
	MisAlertas(ctx context.Context, usuarioID uuid.UUID) ([]dto.AlertaResponse, error)
	// CambiarEstado moves the alerta through the workflow. Taking an alerta
	// (en_proceso or resuelto) stamps who attended it and when.
	CambiarEstado(ctx context.Context, id, atendidoPorID uuid.UUID, req dto.CambiarEstadoAlertaRequest) (*dto.AlertaResponse, error)
}

type alertaService struct {
	repo repository.AlertaRepository
}

func NewAlertaService(repo repository.AlertaRepository) AlertaService {
	return &alertaService{repo: repo}
}

func (s *alertaService) Crear(ctx context.Context, enviadoPorID uuid.UUID, req dto.CrearAlertaRequest) (*dto.AlertaResponse, error) {
	a := &model.Alerta{
		Tipo:         req.Tipo,
		Descripcion:  req.Descripcion,
		Estado:       model.AlertaPendiente,
		EnviadoPorID: enviadoPorID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return alertaToResponse(a), nil
}

func (s *alertaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.AlertaResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("alerta no encontrada")
	}
	return alertaToResponse(a), nil
}

func (s *alertaService) Listar(ctx context.Context, filter dto.AlertaFilter) (*dto.AlertaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	repoFilter := repository.AlertaFilter{
		Estado: filter.Estado,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}
	if filter.EnviadoPor != "" {
		uid, err := uuid.Parse(filter.EnviadoPor)
		if err != nil {
			return nil, fmt.Errorf("enviado_por invalido: %w", err)
		}
		repoFilter.EnviadoPorID = &uid
	}

	alertas, total, err := s.repo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.AlertaResponse, len(alertas))
	for i := range alertas {
		data[i] = *alertaToResponse(&alertas[i])
	}
	return &dto.AlertaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *alertaService) MisAlertas(ctx context.Context, usuarioID uuid.UUID) ([]dto.AlertaResponse, error) {
	alertas, _, err := s.repo.List(ctx, repository.AlertaFilter{
		EnviadoPorID: &usuarioID,
		Page:         1,
		Limit:        200,
	})
	if err != nil {
		return nil, err
	}
	data := make([]dto.AlertaResponse, len(alertas))
	for i := range alertas {
		data[i] = *alertaToResponse(&alertas[i])
	}
	return data, nil
}

func (s *alertaService) CambiarEstado(ctx context.Context, id, atendidoPorID uuid.UUID, req dto.CambiarEstadoAlertaRequest) (*dto.AlertaResponse, error) {
	if !model.EstadoAlertaValido(req.Estado) {
		return nil, errors.New("estado invalido")
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("alerta no encontrada")
	}

	a.Estado = req.Estado
	// Reopening an alerta clears the attention stamp
	if req.Estado == model.AlertaPendiente {
		a.AtendidoPorID = nil
		a.FechaAtencion = nil
	} else {
		ahora := time.Now()
		a.AtendidoPorID = &atendidoPorID
		a.FechaAtencion = &ahora
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return alertaToResponse(a), nil
}

func alertaToResponse(a *model.Alerta) *dto.AlertaResponse {
	resp := &dto.AlertaResponse{
		ID:           a.ID.String(),
		Tipo:         a.Tipo,
		Descripcion:  a.Descripcion,
		Estado:       a.Estado,
		EnviadoPorID: a.EnviadoPorID.String(),
		CreadaEn:     a.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if a.EnviadoPor != nil {
		resp.EnviadoPor = a.EnviadoPor.Nombre
	}
	if a.AtendidoPorID != nil {
		resp.AtendidoPorID = a.AtendidoPorID.String()
	}
	if a.AtendidoPor != nil {
		resp.AtendidoPor = a.AtendidoPor.Nombre
	}
	if a.FechaAtencion != nil {
		resp.FechaAtencion = a.FechaAtencion.Format("2006-01-02T15:04:05Z")
	}
	return resp
}
