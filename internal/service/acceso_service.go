package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"torresegura/internal/dto"
	"torresegura/internal/infra"
	"torresegura/internal/model"
	"torresegura/internal/repository"

	"github.com/google/uuid"
)

const fechaHoraLayout = "2006-01-02T15:04:05Z"

type AccesoService interface {
	// RegistrarVisita creates the access record and issues its signed pass.
	RegistrarVisita(ctx context.Context, registradorID uuid.UUID, req dto.RegistrarVisitaRequest) (*dto.VisitaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VisitaResponse, error)
	// QRVisita renders the pass as a PNG for printing or sharing.
	QRVisita(ctx context.Context, id uuid.UUID) ([]byte, error)
	// RegistrarSalida closes an open visit. A visit's exit can be recorded
	// only once.
	RegistrarSalida(ctx context.Context, id uuid.UUID) (*dto.VisitaResponse, error)
	// VerificarQR validates a scanned pass at the gate.
	VerificarQR(ctx context.Context, req dto.VerificarQRRequest) (*dto.VerificarQRResponse, error)
	Historial(ctx context.Context, filter dto.VisitaHistorialFilter) ([]dto.VisitaResponse, error)

	RegistrarMovimiento(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error)
	ListarMovimientos(ctx context.Context, residenteID *uuid.UUID, limit int) ([]dto.MovimientoResponse, error)
}

type accesoService struct {
	repo         repository.VisitaRepository
	viviendaRepo repository.ViviendaRepository
	firmador     *infra.QRFirmador
}

func NewAccesoService(
	repo repository.VisitaRepository,
	viviendaRepo repository.ViviendaRepository,
	firmador *infra.QRFirmador,
) AccesoService {
	return &accesoService{repo: repo, viviendaRepo: viviendaRepo, firmador: firmador}
}

func (s *accesoService) RegistrarVisita(ctx context.Context, registradorID uuid.UUID, req dto.RegistrarVisitaRequest) (*dto.VisitaResponse, error) {
	viviendaID, err := uuid.Parse(req.ViviendaDestinoID)
	if err != nil {
		return nil, fmt.Errorf("vivienda_destino_id invalido: %w", err)
	}
	residenteID, err := uuid.Parse(req.ResidenteAutorizaID)
	if err != nil {
		return nil, fmt.Errorf("residente_autoriza_id invalido: %w", err)
	}

	vivienda, err := s.viviendaRepo.FindByID(ctx, viviendaID)
	if err != nil {
		return nil, errors.New("vivienda no encontrada")
	}
	if !vivienda.Activo {
		return nil, errors.New("la vivienda esta dada de baja")
	}
	residente, err := s.viviendaRepo.FindResidenteByID(ctx, residenteID)
	if err != nil {
		return nil, errors.New("residente no encontrado")
	}
	if !residente.Activo {
		return nil, errors.New("el residente esta inactivo")
	}
	if residente.ViviendaID == nil || *residente.ViviendaID != viviendaID {
		return nil, errors.New("el residente no pertenece a la vivienda destino")
	}

	v := &model.Visita{
		NombreVisitante:     req.NombreVisitante,
		DocumentoVisitante:  req.DocumentoVisitante,
		ViviendaDestinoID:   viviendaID,
		ResidenteAutorizaID: residenteID,
		FechaHoraEntrada:    time.Now(),
		Motivo:              req.Motivo,
		RegistradoPorID:     &registradorID,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	v.ViviendaDestino = vivienda
	resp := visitaToResponse(v)
	resp.Firma = s.firmador.Firmar(v.ID.String())
	return resp, nil
}

func (s *accesoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VisitaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("visita no encontrada")
	}
	return visitaToResponse(v), nil
}

func (s *accesoService) QRVisita(ctx context.Context, id uuid.UUID) ([]byte, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("visita no encontrada")
	}
	return s.firmador.GenerarPNG(v.ID.String(), 256)
}

func (s *accesoService) RegistrarSalida(ctx context.Context, id uuid.UUID) (*dto.VisitaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("visita no encontrada")
	}
	if v.FechaHoraSalida != nil {
		return nil, errors.New("la salida ya fue registrada")
	}
	ahora := time.Now()
	v.FechaHoraSalida = &ahora
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return visitaToResponse(v), nil
}

func (s *accesoService) VerificarQR(ctx context.Context, req dto.VerificarQRRequest) (*dto.VerificarQRResponse, error) {
	if !s.firmador.Verificar(req.VisitaID, req.Firma) {
		return &dto.VerificarQRResponse{Valido: false}, nil
	}
	id, err := uuid.Parse(req.VisitaID)
	if err != nil {
		return &dto.VerificarQRResponse{Valido: false}, nil
	}
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return &dto.VerificarQRResponse{Valido: false}, nil
	}
	return &dto.VerificarQRResponse{Valido: true, Visita: visitaToResponse(v)}, nil
}

func (s *accesoService) Historial(ctx context.Context, filter dto.VisitaHistorialFilter) ([]dto.VisitaResponse, error) {
	repoFilter := repository.VisitaFilter{
		Activas: filter.Activas,
		Limit:   filter.Limit,
	}
	if filter.ViviendaID != "" {
		vid, err := uuid.Parse(filter.ViviendaID)
		if err != nil {
			return nil, fmt.Errorf("vivienda_id invalido: %w", err)
		}
		repoFilter.ViviendaID = &vid
	}
	if filter.Desde != "" {
		desde, err := time.Parse(fechaLayout, filter.Desde)
		if err != nil {
			return nil, errors.New("desde invalida")
		}
		repoFilter.Desde = &desde
	}
	if filter.Hasta != "" {
		hasta, err := time.Parse(fechaLayout, filter.Hasta)
		if err != nil {
			return nil, errors.New("hasta invalida")
		}
		repoFilter.Hasta = &hasta
	}

	visitas, err := s.repo.ListHistorial(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.VisitaResponse, len(visitas))
	for i := range visitas {
		resp[i] = *visitaToResponse(&visitas[i])
	}
	return resp, nil
}

func (s *accesoService) RegistrarMovimiento(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	residenteID, err := uuid.Parse(req.ResidenteID)
	if err != nil {
		return nil, fmt.Errorf("residente_id invalido: %w", err)
	}
	residente, err := s.viviendaRepo.FindResidenteByID(ctx, residenteID)
	if err != nil {
		return nil, errors.New("residente no encontrado")
	}
	if !residente.Activo {
		return nil, errors.New("el residente esta inactivo")
	}

	ahora := time.Now()
	m := &model.MovimientoResidente{
		ResidenteID:   residenteID,
		Vehiculo:      req.Vehiculo,
		PlacaVehiculo: req.PlacaVehiculo,
	}
	if req.Tipo == "entrada" {
		m.FechaHoraEntrada = &ahora
	} else {
		m.FechaHoraSalida = &ahora
	}
	if err := s.repo.CreateMovimiento(ctx, m); err != nil {
		return nil, err
	}
	m.Residente = residente
	return movimientoToResponse(m), nil
}

func (s *accesoService) ListarMovimientos(ctx context.Context, residenteID *uuid.UUID, limit int) ([]dto.MovimientoResponse, error) {
	movs, err := s.repo.ListMovimientos(ctx, residenteID, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovimientoResponse, len(movs))
	for i := range movs {
		resp[i] = *movimientoToResponse(&movs[i])
	}
	return resp, nil
}

// ── Mappers ──────────────────────────────────────────────────────────────────

func visitaToResponse(v *model.Visita) *dto.VisitaResponse {
	resp := &dto.VisitaResponse{
		ID:                 v.ID.String(),
		NombreVisitante:    v.NombreVisitante,
		DocumentoVisitante: v.DocumentoVisitante,
		ViviendaDestinoID:  v.ViviendaDestinoID.String(),
		FechaHoraEntrada:   v.FechaHoraEntrada.Format(fechaHoraLayout),
		Motivo:             v.Motivo,
	}
	if v.ViviendaDestino != nil {
		resp.Vivienda = v.ViviendaDestino.Numero
	}
	if v.FechaHoraSalida != nil {
		f := v.FechaHoraSalida.Format(fechaHoraLayout)
		resp.FechaHoraSalida = &f
	}
	return resp
}

func movimientoToResponse(m *model.MovimientoResidente) *dto.MovimientoResponse {
	resp := &dto.MovimientoResponse{
		ID:            m.ID.String(),
		ResidenteID:   m.ResidenteID.String(),
		Vehiculo:      m.Vehiculo,
		PlacaVehiculo: m.PlacaVehiculo,
	}
	if m.Residente != nil && m.Residente.Usuario != nil {
		resp.Residente = m.Residente.Usuario.Nombre
	}
	if m.FechaHoraEntrada != nil {
		f := m.FechaHoraEntrada.Format(fechaHoraLayout)
		resp.FechaHoraEntrada = &f
	}
	if m.FechaHoraSalida != nil {
		f := m.FechaHoraSalida.Format(fechaHoraLayout)
		resp.FechaHoraSalida = &f
	}
	return resp
}
