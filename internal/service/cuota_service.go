package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"torresegura/internal/dto"
	"torresegura/internal/infra"
	"torresegura/internal/model"
	"torresegura/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CuotaService interface {
	Crear(ctx context.Context, req dto.CrearCuotaRequest) (*dto.CuotaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CuotaResponse, error)
	// Actualizar edits monto, vencimiento or notas of an unpaid cuota.
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCuotaRequest) (*dto.CuotaResponse, error)
	Listar(ctx context.Context, filter dto.CuotaFilter) (*dto.CuotaListResponse, error)
	// GenerarCuotas emits one cuota per active vivienda for the period.
	// Idempotent: existing (concepto, vivienda, fecha_emision) rows are skipped.
	GenerarCuotas(ctx context.Context, req dto.GenerarCuotasRequest) (*dto.GenerarCuotasResponse, error)
	// ActualizarRecargo recomputes the late fee for one cuota and persists it
	// only when the stored value changed.
	ActualizarRecargo(ctx context.Context, id uuid.UUID, hoy time.Time) (*dto.CuotaResponse, error)
	// ProcesarVencidas sweeps overdue unpaid cuotas in batches, refreshing
	// stale recargos. Returns how many rows were updated.
	ProcesarVencidas(ctx context.Context, hoy time.Time, batchSize int) (int, error)
	DeudaVivienda(ctx context.Context, viviendaID uuid.UUID, hoy time.Time) (*dto.DeudaViviendaResponse, error)
}

type cuotaService struct {
	repo         repository.CuotaRepository
	conceptoRepo repository.ConceptoRepository
	viviendaRepo repository.ViviendaRepository
	deudaCache   *infra.DeudaCache
}

func NewCuotaService(
	repo repository.CuotaRepository,
	conceptoRepo repository.ConceptoRepository,
	viviendaRepo repository.ViviendaRepository,
	deudaCache *infra.DeudaCache,
) CuotaService {
	return &cuotaService{
		repo:         repo,
		conceptoRepo: conceptoRepo,
		viviendaRepo: viviendaRepo,
		deudaCache:   deudaCache,
	}
}

func (s *cuotaService) Crear(ctx context.Context, req dto.CrearCuotaRequest) (*dto.CuotaResponse, error) {
	conceptoID, err := uuid.Parse(req.ConceptoID)
	if err != nil {
		return nil, fmt.Errorf("concepto_id invalido: %w", err)
	}
	viviendaID, err := uuid.Parse(req.ViviendaID)
	if err != nil {
		return nil, fmt.Errorf("vivienda_id invalido: %w", err)
	}

	concepto, err := s.conceptoRepo.FindByID(ctx, conceptoID)
	if err != nil {
		return nil, errors.New("concepto no encontrado")
	}
	vivienda, err := s.viviendaRepo.FindByID(ctx, viviendaID)
	if err != nil {
		return nil, errors.New("vivienda no encontrada")
	}
	if !vivienda.Activo {
		return nil, errors.New("la vivienda esta dada de baja")
	}

	emision, err := time.Parse(fechaLayout, req.FechaEmision)
	if err != nil {
		return nil, errors.New("fecha_emision invalida")
	}
	vencimiento, err := time.Parse(fechaLayout, req.FechaVencimiento)
	if err != nil {
		return nil, errors.New("fecha_vencimiento invalida")
	}
	if vencimiento.Before(emision) {
		return nil, errors.New("fecha_vencimiento no puede ser anterior a fecha_emision")
	}

	// Zero monto falls back to the concepto's base amount
	monto := req.Monto
	if monto.IsZero() {
		monto = concepto.MontoBase
	}
	if monto.IsNegative() {
		return nil, errors.New("monto no puede ser negativo")
	}

	c := &model.Cuota{
		ConceptoID:       conceptoID,
		ViviendaID:       viviendaID,
		Monto:            monto,
		FechaEmision:     emision,
		FechaVencimiento: vencimiento,
		Recargo:          decimal.Zero,
		Notas:            req.Notas,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	c.Concepto = concepto
	c.Vivienda = vivienda
	return cuotaToResponse(c, time.Now()), nil
}

func (s *cuotaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CuotaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cuota no encontrada")
	}
	return cuotaToResponse(c, time.Now()), nil
}

func (s *cuotaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCuotaRequest) (*dto.CuotaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cuota no encontrada")
	}
	if c.Pagada {
		return nil, errors.New("la cuota ya esta pagada y no admite cambios")
	}

	if req.Monto != nil {
		if !req.Monto.IsPositive() {
			return nil, errors.New("monto debe ser mayor a cero")
		}
		c.Monto = *req.Monto
	}
	if req.FechaVencimiento != nil {
		vencimiento, err := time.Parse(fechaLayout, *req.FechaVencimiento)
		if err != nil {
			return nil, errors.New("fecha_vencimiento invalida")
		}
		if vencimiento.Before(c.FechaEmision) {
			return nil, errors.New("fecha_vencimiento no puede ser anterior a fecha_emision")
		}
		c.FechaVencimiento = vencimiento
	}
	if req.Notas != nil {
		c.Notas = *req.Notas
	}

	// Moving the vencimiento or the monto changes the late fee base
	hoy := time.Now()
	c.Recargo = c.CalcularRecargo(hoy)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.deudaCache.Invalidate(ctx, c.ViviendaID)
	return cuotaToResponse(c, hoy), nil
}

func (s *cuotaService) Listar(ctx context.Context, filter dto.CuotaFilter) (*dto.CuotaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	repoFilter := repository.CuotaFilter{Page: filter.Page, Limit: filter.Limit}
	if filter.ViviendaID != "" {
		vid, err := uuid.Parse(filter.ViviendaID)
		if err != nil {
			return nil, fmt.Errorf("vivienda_id invalido: %w", err)
		}
		repoFilter.ViviendaID = &vid
	}
	if filter.ConceptoID != "" {
		cid, err := uuid.Parse(filter.ConceptoID)
		if err != nil {
			return nil, fmt.Errorf("concepto_id invalido: %w", err)
		}
		repoFilter.ConceptoID = &cid
	}
	if filter.Pagada != "" {
		pagada := filter.Pagada == "true"
		repoFilter.Pagada = &pagada
	}
	if filter.Vencidas {
		hoy := time.Now()
		repoFilter.VencidaAl = &hoy
	}

	cuotas, total, err := s.repo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	hoy := time.Now()
	data := make([]dto.CuotaResponse, len(cuotas))
	for i := range cuotas {
		data[i] = *cuotaToResponse(&cuotas[i], hoy)
	}
	return &dto.CuotaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *cuotaService) GenerarCuotas(ctx context.Context, req dto.GenerarCuotasRequest) (*dto.GenerarCuotasResponse, error) {
	conceptoID, err := uuid.Parse(req.ConceptoID)
	if err != nil {
		return nil, fmt.Errorf("concepto_id invalido: %w", err)
	}
	concepto, err := s.conceptoRepo.FindByID(ctx, conceptoID)
	if err != nil {
		return nil, errors.New("concepto no encontrado")
	}
	if !concepto.Activo {
		return nil, errors.New("el concepto esta inactivo")
	}

	emision, err := time.Parse(fechaLayout, req.FechaEmision)
	if err != nil {
		return nil, errors.New("fecha_emision invalida")
	}
	vencimiento, err := time.Parse(fechaLayout, req.FechaVencimiento)
	if err != nil {
		return nil, errors.New("fecha_vencimiento invalida")
	}
	if vencimiento.Before(emision) {
		return nil, errors.New("fecha_vencimiento no puede ser anterior a fecha_emision")
	}

	monto := concepto.MontoBase
	if req.Monto != nil {
		if !req.Monto.IsPositive() {
			return nil, errors.New("monto debe ser mayor a cero")
		}
		monto = *req.Monto
	}

	var viviendaIDs []uuid.UUID
	if len(req.ViviendaIDs) > 0 {
		// Targeted run: only the named units, all of which must be active
		for _, raw := range req.ViviendaIDs {
			vid, err := uuid.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("vivienda_id invalido: %w", err)
			}
			vivienda, err := s.viviendaRepo.FindByID(ctx, vid)
			if err != nil {
				return nil, errors.New("vivienda no encontrada")
			}
			if !vivienda.Activo {
				return nil, errors.New("la vivienda esta dada de baja")
			}
			viviendaIDs = append(viviendaIDs, vid)
		}
	} else {
		viviendaIDs, err = s.viviendaRepo.ListActivasIDs(ctx)
		if err != nil {
			return nil, err
		}
	}

	resp := &dto.GenerarCuotasResponse{}
	for _, vid := range viviendaIDs {
		exists, err := s.repo.Exists(ctx, conceptoID, vid, emision)
		if err != nil {
			return nil, err
		}
		if exists {
			resp.Omitidas++
			continue
		}
		c := &model.Cuota{
			ConceptoID:       conceptoID,
			ViviendaID:       vid,
			Monto:            monto,
			FechaEmision:     emision,
			FechaVencimiento: vencimiento,
			Recargo:          decimal.Zero,
		}
		if err := s.repo.Create(ctx, c); err != nil {
			return nil, err
		}
		resp.Generadas++
	}
	return resp, nil
}

func (s *cuotaService) ActualizarRecargo(ctx context.Context, id uuid.UUID, hoy time.Time) (*dto.CuotaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cuota no encontrada")
	}
	nuevo := c.CalcularRecargo(hoy)
	if !nuevo.Equal(c.Recargo) {
		c.Recargo = nuevo
		if err := s.repo.Update(ctx, c); err != nil {
			return nil, err
		}
	}
	return cuotaToResponse(c, hoy), nil
}

func (s *cuotaService) ProcesarVencidas(ctx context.Context, hoy time.Time, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	cuotas, err := s.repo.ListVencidas(ctx, hoy, batchSize)
	if err != nil {
		return 0, err
	}

	actualizadas := 0
	for i := range cuotas {
		c := &cuotas[i]
		nuevo := c.CalcularRecargo(hoy)
		if nuevo.Equal(c.Recargo) {
			continue
		}
		c.Recargo = nuevo
		if err := s.repo.Update(ctx, c); err != nil {
			return actualizadas, err
		}
		actualizadas++
	}
	return actualizadas, nil
}

func (s *cuotaService) DeudaVivienda(ctx context.Context, viviendaID uuid.UUID, hoy time.Time) (*dto.DeudaViviendaResponse, error) {
	if cached, ok := s.deudaCache.Get(ctx, viviendaID); ok {
		var resp dto.DeudaViviendaResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
	}

	cuotas, err := s.repo.ListPendientesByVivienda(ctx, viviendaID)
	if err != nil {
		return nil, err
	}

	resp := &dto.DeudaViviendaResponse{
		ViviendaID:     viviendaID.String(),
		TotalPendiente: decimal.Zero,
		TotalRecargos:  decimal.Zero,
		Cuotas:         make([]dto.CuotaResponse, 0, len(cuotas)),
	}
	for i := range cuotas {
		c := &cuotas[i]
		resp.TotalPendiente = resp.TotalPendiente.Add(c.Monto)
		resp.TotalRecargos = resp.TotalRecargos.Add(c.Recargo)
		resp.Cuotas = append(resp.Cuotas, *cuotaToResponse(c, hoy))
	}

	if payload, err := json.Marshal(resp); err == nil {
		s.deudaCache.Set(ctx, viviendaID, string(payload))
	}
	return resp, nil
}

func cuotaToResponse(c *model.Cuota, hoy time.Time) *dto.CuotaResponse {
	resp := &dto.CuotaResponse{
		ID:               c.ID.String(),
		ConceptoID:       c.ConceptoID.String(),
		ViviendaID:       c.ViviendaID.String(),
		Monto:            c.Monto,
		Recargo:          c.Recargo,
		TotalAPagar:      c.TotalAPagar(),
		FechaEmision:     c.FechaEmision.Format(fechaLayout),
		FechaVencimiento: c.FechaVencimiento.Format(fechaLayout),
		Pagada:           c.Pagada,
		Vencida:          c.Vencida(hoy),
		Notas:            c.Notas,
	}
	if c.Concepto != nil {
		resp.Concepto = c.Concepto.Nombre
	}
	if c.Vivienda != nil {
		resp.Vivienda = c.Vivienda.Numero
	}
	return resp
}
