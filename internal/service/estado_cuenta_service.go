package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"torresegura/internal/dto"
	"torresegura/internal/model"
	"torresegura/internal/repository"
	"torresegura/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EstadoCuentaService interface {
	// Crear computes the period totals once, at creation. The stored snapshot
	// is never silently refreshed when cuotas or pagos change afterwards.
	Crear(ctx context.Context, req dto.CrearEstadoCuentaRequest) (*dto.EstadoCuentaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.EstadoCuentaResponse, error)
	ListarPorVivienda(ctx context.Context, viviendaID uuid.UUID) ([]dto.EstadoCuentaResponse, error)
	// GenerarMasivo creates one statement per active vivienda for the period,
	// skipping units that already have one for the exact period.
	GenerarMasivo(ctx context.Context, req dto.GenerarEstadosCuentaRequest) (*dto.GenerarEstadosCuentaResponse, error)
	// Recalcular recomputes the stored snapshot for its period. This is the
	// only way totals change after creation.
	Recalcular(ctx context.Context, id uuid.UUID) (*dto.EstadoCuentaResponse, error)
	// Enviar queues PDF rendering and email delivery for the statement.
	Enviar(ctx context.Context, id uuid.UUID) error
}

type estadoCuentaService struct {
	repo         repository.EstadoCuentaRepository
	cuotaRepo    repository.CuotaRepository
	pagoRepo     repository.PagoRepository
	viviendaRepo repository.ViviendaRepository
	dispatcher   *worker.Dispatcher
}

func NewEstadoCuentaService(
	repo repository.EstadoCuentaRepository,
	cuotaRepo repository.CuotaRepository,
	pagoRepo repository.PagoRepository,
	viviendaRepo repository.ViviendaRepository,
	dispatcher *worker.Dispatcher,
) EstadoCuentaService {
	return &estadoCuentaService{
		repo:         repo,
		cuotaRepo:    cuotaRepo,
		pagoRepo:     pagoRepo,
		viviendaRepo: viviendaRepo,
		dispatcher:   dispatcher,
	}
}

func (s *estadoCuentaService) Crear(ctx context.Context, req dto.CrearEstadoCuentaRequest) (*dto.EstadoCuentaResponse, error) {
	viviendaID, err := uuid.Parse(req.ViviendaID)
	if err != nil {
		return nil, fmt.Errorf("vivienda_id invalido: %w", err)
	}
	if _, err := s.viviendaRepo.FindByID(ctx, viviendaID); err != nil {
		return nil, errors.New("vivienda no encontrada")
	}

	inicio, fin, err := parsePeriodo(req.FechaInicio, req.FechaFin)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsPeriodo(ctx, viviendaID, inicio, fin)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("ya existe un estado de cuenta para ese periodo")
	}

	ec, err := s.calcular(ctx, viviendaID, inicio, fin)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, ec); err != nil {
		return nil, err
	}
	return estadoCuentaToResponse(ec), nil
}

// calcular builds the statement snapshot:
//
//	saldo_final = saldo_anterior + total_cuotas + total_recargos − total_pagos
//
// saldo_anterior carries over from the latest statement that closed before
// the period, zero when none exists.
func (s *estadoCuentaService) calcular(ctx context.Context, viviendaID uuid.UUID, inicio, fin time.Time) (*model.EstadoCuenta, error) {
	saldoAnterior := decimal.Zero
	if anterior, err := s.repo.FindUltimoAnterior(ctx, viviendaID, inicio); err == nil {
		saldoAnterior = anterior.SaldoFinal
	}

	cuotas, err := s.cuotaRepo.ListByViviendaPeriodo(ctx, viviendaID, inicio, fin)
	if err != nil {
		return nil, err
	}
	totalCuotas := decimal.Zero
	totalRecargos := decimal.Zero
	for i := range cuotas {
		totalCuotas = totalCuotas.Add(cuotas[i].Monto)
		totalRecargos = totalRecargos.Add(cuotas[i].Recargo)
	}

	pagos, err := s.pagoRepo.ListVerificadosPeriodo(ctx, viviendaID, inicio, fin)
	if err != nil {
		return nil, err
	}
	totalPagos := decimal.Zero
	for i := range pagos {
		totalPagos = totalPagos.Add(pagos[i].Monto)
	}

	return &model.EstadoCuenta{
		ViviendaID:    viviendaID,
		FechaInicio:   inicio,
		FechaFin:      fin,
		SaldoAnterior: saldoAnterior,
		TotalCuotas:   totalCuotas,
		TotalRecargos: totalRecargos,
		TotalPagos:    totalPagos,
		SaldoFinal:    saldoAnterior.Add(totalCuotas).Add(totalRecargos).Sub(totalPagos),
	}, nil
}

func (s *estadoCuentaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.EstadoCuentaResponse, error) {
	ec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("estado de cuenta no encontrado")
	}
	return estadoCuentaToResponse(ec), nil
}

func (s *estadoCuentaService) ListarPorVivienda(ctx context.Context, viviendaID uuid.UUID) ([]dto.EstadoCuentaResponse, error) {
	ecs, err := s.repo.ListByVivienda(ctx, viviendaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EstadoCuentaResponse, len(ecs))
	for i := range ecs {
		resp[i] = *estadoCuentaToResponse(&ecs[i])
	}
	return resp, nil
}

func (s *estadoCuentaService) GenerarMasivo(ctx context.Context, req dto.GenerarEstadosCuentaRequest) (*dto.GenerarEstadosCuentaResponse, error) {
	inicio, fin, err := parsePeriodo(req.FechaInicio, req.FechaFin)
	if err != nil {
		return nil, err
	}

	viviendaIDs, err := s.viviendaRepo.ListActivasIDs(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.GenerarEstadosCuentaResponse{}
	for _, vid := range viviendaIDs {
		exists, err := s.repo.ExistsPeriodo(ctx, vid, inicio, fin)
		if err != nil {
			return nil, err
		}
		if exists {
			resp.Omitidos++
			continue
		}
		ec, err := s.calcular(ctx, vid, inicio, fin)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Create(ctx, ec); err != nil {
			return nil, err
		}
		resp.Generados++
	}
	return resp, nil
}

func (s *estadoCuentaService) Recalcular(ctx context.Context, id uuid.UUID) (*dto.EstadoCuentaResponse, error) {
	ec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("estado de cuenta no encontrado")
	}
	nuevo, err := s.calcular(ctx, ec.ViviendaID, ec.FechaInicio, ec.FechaFin)
	if err != nil {
		return nil, err
	}
	ec.SaldoAnterior = nuevo.SaldoAnterior
	ec.TotalCuotas = nuevo.TotalCuotas
	ec.TotalRecargos = nuevo.TotalRecargos
	ec.TotalPagos = nuevo.TotalPagos
	ec.SaldoFinal = nuevo.SaldoFinal
	if err := s.repo.Update(ctx, ec); err != nil {
		return nil, err
	}
	return estadoCuentaToResponse(ec), nil
}

func (s *estadoCuentaService) Enviar(ctx context.Context, id uuid.UUID) error {
	ec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("estado de cuenta no encontrado")
	}
	if s.dispatcher == nil {
		return errors.New("el envio de estados de cuenta no esta disponible")
	}
	return s.dispatcher.EnqueueEstadoCuenta(ctx, map[string]interface{}{
		"estado_cuenta_id": ec.ID.String(),
	})
}

func parsePeriodo(inicioStr, finStr string) (time.Time, time.Time, error) {
	inicio, err := time.Parse(fechaLayout, inicioStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("fecha_inicio invalida")
	}
	fin, err := time.Parse(fechaLayout, finStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("fecha_fin invalida")
	}
	if fin.Before(inicio) {
		return time.Time{}, time.Time{}, errors.New("fecha_fin no puede ser anterior a fecha_inicio")
	}
	return inicio, fin, nil
}

func estadoCuentaToResponse(ec *model.EstadoCuenta) *dto.EstadoCuentaResponse {
	resp := &dto.EstadoCuentaResponse{
		ID:            ec.ID.String(),
		ViviendaID:    ec.ViviendaID.String(),
		FechaInicio:   ec.FechaInicio.Format(fechaLayout),
		FechaFin:      ec.FechaFin.Format(fechaLayout),
		SaldoAnterior: ec.SaldoAnterior,
		TotalCuotas:   ec.TotalCuotas,
		TotalRecargos: ec.TotalRecargos,
		TotalPagos:    ec.TotalPagos,
		SaldoFinal:    ec.SaldoFinal,
		Enviado:       ec.Enviado,
	}
	if ec.Vivienda != nil {
		resp.Vivienda = ec.Vivienda.Numero
	}
	if ec.FechaEnvio != nil {
		f := ec.FechaEnvio.Format("2006-01-02T15:04:05Z")
		resp.FechaEnvio = &f
	}
	return resp
}
