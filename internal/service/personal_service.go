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

type PersonalService interface {
	CrearPuesto(ctx context.Context, req dto.CrearPuestoRequest) (*dto.PuestoResponse, error)
	ListarPuestos(ctx context.Context) ([]dto.PuestoResponse, error)

	CrearEmpleado(ctx context.Context, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error)
	ListarEmpleados(ctx context.Context, soloActivos bool) ([]dto.EmpleadoResponse, error)
	ActualizarEmpleado(ctx context.Context, id uuid.UUID, req dto.ActualizarEmpleadoRequest) (*dto.EmpleadoResponse, error)

	CrearAsignacion(ctx context.Context, req dto.CrearAsignacionRequest) (*dto.AsignacionResponse, error)
	ListarAsignaciones(ctx context.Context, filter dto.AsignacionFilter) (*dto.AsignacionListResponse, error)
	// CambiarEstado applies a task state transition. Terminal states
	// (completada, cancelada) reject further transitions.
	CambiarEstado(ctx context.Context, id uuid.UUID, req dto.CambiarEstadoAsignacionRequest) (*dto.AsignacionResponse, error)
	// MisAsignaciones lists the tasks of the employee bound to the given user.
	MisAsignaciones(ctx context.Context, usuarioID uuid.UUID) ([]dto.AsignacionResponse, error)
}

type personalService struct {
	repo         repository.PersonalRepository
	usuarioRepo  repository.UsuarioRepository
	viviendaRepo repository.ViviendaRepository
}

func NewPersonalService(
	repo repository.PersonalRepository,
	usuarioRepo repository.UsuarioRepository,
	viviendaRepo repository.ViviendaRepository,
) PersonalService {
	return &personalService{repo: repo, usuarioRepo: usuarioRepo, viviendaRepo: viviendaRepo}
}

// ── Puestos ──────────────────────────────────────────────────────────────────

func (s *personalService) CrearPuesto(ctx context.Context, req dto.CrearPuestoRequest) (*dto.PuestoResponse, error) {
	p := &model.Puesto{
		Nombre:                  req.Nombre,
		Descripcion:             req.Descripcion,
		RequiereEspecializacion: req.RequiereEspecializacion,
		Activo:                  true,
	}
	if err := s.repo.CreatePuesto(ctx, p); err != nil {
		return nil, err
	}
	return puestoToResponse(p), nil
}

func (s *personalService) ListarPuestos(ctx context.Context) ([]dto.PuestoResponse, error) {
	puestos, err := s.repo.ListPuestos(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PuestoResponse, len(puestos))
	for i := range puestos {
		resp[i] = *puestoToResponse(&puestos[i])
	}
	return resp, nil
}

// ── Empleados ────────────────────────────────────────────────────────────────

func (s *personalService) CrearEmpleado(ctx context.Context, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	usuarioID, err := uuid.Parse(req.UsuarioID)
	if err != nil {
		return nil, fmt.Errorf("usuario_id invalido: %w", err)
	}
	puestoID, err := uuid.Parse(req.PuestoID)
	if err != nil {
		return nil, fmt.Errorf("puesto_id invalido: %w", err)
	}

	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}
	puesto, err := s.repo.FindPuestoByID(ctx, puestoID)
	if err != nil {
		return nil, errors.New("puesto no encontrado")
	}
	if puesto.RequiereEspecializacion && req.Especialidad == "" {
		return nil, fmt.Errorf("el puesto %s requiere especialidad", puesto.Nombre)
	}

	fechaContratacion, err := time.Parse(fechaLayout, req.FechaContratacion)
	if err != nil {
		return nil, errors.New("fecha_contratacion invalida")
	}

	e := &model.Empleado{
		UsuarioID:         usuarioID,
		PuestoID:          puestoID,
		FechaContratacion: fechaContratacion,
		TipoContrato:      req.TipoContrato,
		Salario:           req.Salario,
		Especialidad:      req.Especialidad,
		Activo:            true,
	}
	if e.TipoContrato == "" {
		e.TipoContrato = "permanente"
	}
	if req.EdificioID != nil {
		eid, err := uuid.Parse(*req.EdificioID)
		if err != nil {
			return nil, fmt.Errorf("edificio_id invalido: %w", err)
		}
		e.EdificioID = &eid
	}
	if err := s.repo.CreateEmpleado(ctx, e); err != nil {
		return nil, err
	}
	e.Usuario = usuario
	e.Puesto = puesto
	return empleadoToResponse(e), nil
}

func (s *personalService) ListarEmpleados(ctx context.Context, soloActivos bool) ([]dto.EmpleadoResponse, error) {
	empleados, err := s.repo.ListEmpleados(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EmpleadoResponse, len(empleados))
	for i := range empleados {
		resp[i] = *empleadoToResponse(&empleados[i])
	}
	return resp, nil
}

func (s *personalService) ActualizarEmpleado(ctx context.Context, id uuid.UUID, req dto.ActualizarEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	e, err := s.repo.FindEmpleadoByID(ctx, id)
	if err != nil {
		return nil, errors.New("empleado no encontrado")
	}
	if req.PuestoID != nil {
		pid, err := uuid.Parse(*req.PuestoID)
		if err != nil {
			return nil, fmt.Errorf("puesto_id invalido: %w", err)
		}
		puesto, err := s.repo.FindPuestoByID(ctx, pid)
		if err != nil {
			return nil, errors.New("puesto no encontrado")
		}
		e.PuestoID = pid
		e.Puesto = puesto
	}
	if req.EdificioID != nil {
		eid, err := uuid.Parse(*req.EdificioID)
		if err != nil {
			return nil, fmt.Errorf("edificio_id invalido: %w", err)
		}
		e.EdificioID = &eid
	}
	if req.TipoContrato != nil {
		e.TipoContrato = *req.TipoContrato
	}
	if req.Salario != nil {
		e.Salario = req.Salario
	}
	if req.Especialidad != nil {
		e.Especialidad = *req.Especialidad
	}
	if req.Activo != nil {
		e.Activo = *req.Activo
	}
	if err := s.repo.UpdateEmpleado(ctx, e); err != nil {
		return nil, err
	}
	return empleadoToResponse(e), nil
}

// ── Asignaciones ─────────────────────────────────────────────────────────────

func (s *personalService) CrearAsignacion(ctx context.Context, req dto.CrearAsignacionRequest) (*dto.AsignacionResponse, error) {
	empleadoID, err := uuid.Parse(req.EmpleadoID)
	if err != nil {
		return nil, fmt.Errorf("empleado_id invalido: %w", err)
	}
	empleado, err := s.repo.FindEmpleadoByID(ctx, empleadoID)
	if err != nil {
		return nil, errors.New("empleado no encontrado")
	}
	if !empleado.Activo {
		return nil, errors.New("el empleado esta inactivo")
	}

	a := &model.Asignacion{
		EmpleadoID:      empleadoID,
		Tipo:            req.Tipo,
		Descripcion:     req.Descripcion,
		FechaAsignacion: time.Now(),
		Estado:          model.AsignacionPendiente,
		Prioridad:       req.Prioridad,
	}
	if a.Prioridad == 0 {
		a.Prioridad = 2
	}
	if req.ViviendaID != nil {
		vid, err := uuid.Parse(*req.ViviendaID)
		if err != nil {
			return nil, fmt.Errorf("vivienda_id invalido: %w", err)
		}
		if _, err := s.viviendaRepo.FindByID(ctx, vid); err != nil {
			return nil, errors.New("vivienda no encontrada")
		}
		a.ViviendaID = &vid
	}
	if req.FechaLimite != nil {
		limite, err := time.Parse(fechaLayout, *req.FechaLimite)
		if err != nil {
			return nil, errors.New("fecha_limite invalida")
		}
		a.FechaLimite = &limite
	}
	if err := s.repo.CreateAsignacion(ctx, a); err != nil {
		return nil, err
	}
	a.Empleado = empleado
	return asignacionToResponse(a), nil
}

func (s *personalService) ListarAsignaciones(ctx context.Context, filter dto.AsignacionFilter) (*dto.AsignacionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	repoFilter := repository.AsignacionFilter{
		Estado: filter.Estado,
		Tipo:   filter.Tipo,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}
	if filter.EmpleadoID != "" {
		eid, err := uuid.Parse(filter.EmpleadoID)
		if err != nil {
			return nil, fmt.Errorf("empleado_id invalido: %w", err)
		}
		repoFilter.EmpleadoID = &eid
	}

	asignaciones, total, err := s.repo.ListAsignaciones(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.AsignacionResponse, len(asignaciones))
	for i := range asignaciones {
		data[i] = *asignacionToResponse(&asignaciones[i])
	}
	return &dto.AsignacionListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *personalService) CambiarEstado(ctx context.Context, id uuid.UUID, req dto.CambiarEstadoAsignacionRequest) (*dto.AsignacionResponse, error) {
	a, err := s.repo.FindAsignacionByID(ctx, id)
	if err != nil {
		return nil, errors.New("asignacion no encontrada")
	}
	if a.Estado == model.AsignacionCompletada || a.Estado == model.AsignacionCancelada {
		return nil, fmt.Errorf("la asignacion esta %s y no admite cambios", a.Estado)
	}
	if req.Estado == a.Estado {
		return nil, errors.New("la asignacion ya esta en ese estado")
	}

	a.Estado = req.Estado
	if req.Estado == model.AsignacionCompletada {
		ahora := time.Now()
		a.CompletadaEn = &ahora
	}
	if req.Notas != "" {
		if a.Notas != "" {
			a.Notas += "\n"
		}
		a.Notas += req.Notas
	}
	if err := s.repo.UpdateAsignacion(ctx, a); err != nil {
		return nil, err
	}
	return asignacionToResponse(a), nil
}

func (s *personalService) MisAsignaciones(ctx context.Context, usuarioID uuid.UUID) ([]dto.AsignacionResponse, error) {
	empleado, err := s.repo.FindEmpleadoByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, errors.New("el usuario no tiene un empleado asociado")
	}
	asignaciones, _, err := s.repo.ListAsignaciones(ctx, repository.AsignacionFilter{
		EmpleadoID: &empleado.ID,
	})
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AsignacionResponse, len(asignaciones))
	for i := range asignaciones {
		resp[i] = *asignacionToResponse(&asignaciones[i])
	}
	return resp, nil
}

// ── Mappers ──────────────────────────────────────────────────────────────────

func puestoToResponse(p *model.Puesto) *dto.PuestoResponse {
	return &dto.PuestoResponse{
		ID:                      p.ID.String(),
		Nombre:                  p.Nombre,
		Descripcion:             p.Descripcion,
		RequiereEspecializacion: p.RequiereEspecializacion,
		Activo:                  p.Activo,
	}
}

func empleadoToResponse(e *model.Empleado) *dto.EmpleadoResponse {
	resp := &dto.EmpleadoResponse{
		ID:                e.ID.String(),
		UsuarioID:         e.UsuarioID.String(),
		FechaContratacion: e.FechaContratacion.Format(fechaLayout),
		TipoContrato:      e.TipoContrato,
		Especialidad:      e.Especialidad,
		Activo:            e.Activo,
	}
	if e.Usuario != nil {
		resp.Nombre = e.Usuario.Nombre
	}
	if e.Puesto != nil {
		resp.Puesto = e.Puesto.Nombre
	}
	return resp
}

func asignacionToResponse(a *model.Asignacion) *dto.AsignacionResponse {
	resp := &dto.AsignacionResponse{
		ID:              a.ID.String(),
		EmpleadoID:      a.EmpleadoID.String(),
		Tipo:            a.Tipo,
		Descripcion:     a.Descripcion,
		FechaAsignacion: a.FechaAsignacion.Format(fechaLayout),
		Estado:          a.Estado,
		Prioridad:       a.Prioridad,
		Notas:           a.Notas,
	}
	if a.Empleado != nil && a.Empleado.Usuario != nil {
		resp.Empleado = a.Empleado.Usuario.Nombre
	}
	if a.ViviendaID != nil {
		vid := a.ViviendaID.String()
		resp.ViviendaID = &vid
	}
	if a.Vivienda != nil {
		resp.Vivienda = a.Vivienda.Numero
	}
	if a.FechaLimite != nil {
		f := a.FechaLimite.Format(fechaLayout)
		resp.FechaLimite = &f
	}
	if a.CompletadaEn != nil {
		f := a.CompletadaEn.Format(fechaHoraLayout)
		resp.CompletadaEn = &f
	}
	return resp
}
