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

const fechaLayout = "2006-01-02"

type ViviendaService interface {
	CrearEdificio(ctx context.Context, req dto.CrearEdificioRequest) (*dto.EdificioResponse, error)
	ListarEdificios(ctx context.Context) ([]dto.EdificioResponse, error)
	ActualizarEdificio(ctx context.Context, id uuid.UUID, req dto.ActualizarEdificioRequest) (*dto.EdificioResponse, error)
	EliminarEdificio(ctx context.Context, id uuid.UUID) error

	CrearVivienda(ctx context.Context, req dto.CrearViviendaRequest) (*dto.ViviendaResponse, error)
	ObtenerVivienda(ctx context.Context, id uuid.UUID) (*dto.ViviendaResponse, error)
	ListarViviendas(ctx context.Context, soloActivas bool) ([]dto.ViviendaResponse, error)
	ActualizarVivienda(ctx context.Context, id uuid.UUID, req dto.ActualizarViviendaRequest) (*dto.ViviendaResponse, error)
	DarBajaVivienda(ctx context.Context, id uuid.UUID, motivo string) error

	CrearResidente(ctx context.Context, req dto.CrearResidenteRequest) (*dto.ResidenteResponse, error)
	ListarResidentes(ctx context.Context, viviendaID uuid.UUID, soloActivos bool) ([]dto.ResidenteResponse, error)
	ActualizarResidente(ctx context.Context, id uuid.UUID, req dto.ActualizarResidenteRequest) (*dto.ResidenteResponse, error)
	EliminarResidente(ctx context.Context, id uuid.UUID) error
}

type viviendaService struct {
	repo        repository.ViviendaRepository
	usuarioRepo repository.UsuarioRepository
}

func NewViviendaService(repo repository.ViviendaRepository, usuarioRepo repository.UsuarioRepository) ViviendaService {
	return &viviendaService{repo: repo, usuarioRepo: usuarioRepo}
}

// ── Edificios ────────────────────────────────────────────────────────────────

func (s *viviendaService) CrearEdificio(ctx context.Context, req dto.CrearEdificioRequest) (*dto.EdificioResponse, error) {
	e := &model.Edificio{
		Nombre:    req.Nombre,
		Direccion: req.Direccion,
		Pisos:     req.Pisos,
	}
	if req.FechaConstruccion != nil {
		fecha, err := time.Parse(fechaLayout, *req.FechaConstruccion)
		if err != nil {
			return nil, errors.New("fecha_construccion invalida")
		}
		e.FechaConstruccion = &fecha
	}
	if err := s.repo.CreateEdificio(ctx, e); err != nil {
		return nil, err
	}
	return edificioToResponse(e), nil
}

func (s *viviendaService) ListarEdificios(ctx context.Context) ([]dto.EdificioResponse, error) {
	edificios, err := s.repo.ListEdificios(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EdificioResponse, len(edificios))
	for i := range edificios {
		resp[i] = *edificioToResponse(&edificios[i])
	}
	return resp, nil
}

func (s *viviendaService) ActualizarEdificio(ctx context.Context, id uuid.UUID, req dto.ActualizarEdificioRequest) (*dto.EdificioResponse, error) {
	e, err := s.repo.FindEdificioByID(ctx, id)
	if err != nil {
		return nil, errors.New("edificio no encontrado")
	}
	if req.Nombre != nil {
		e.Nombre = *req.Nombre
	}
	if req.Direccion != nil {
		e.Direccion = *req.Direccion
	}
	if req.Pisos != nil {
		e.Pisos = *req.Pisos
	}
	if err := s.repo.UpdateEdificio(ctx, e); err != nil {
		return nil, err
	}
	return edificioToResponse(e), nil
}

func (s *viviendaService) EliminarEdificio(ctx context.Context, id uuid.UUID) error {
	e, err := s.repo.FindEdificioByID(ctx, id)
	if err != nil {
		return errors.New("edificio no encontrado")
	}
	for _, v := range e.Viviendas {
		if v.Activo {
			return errors.New("el edificio tiene viviendas activas y no puede eliminarse")
		}
	}
	return s.repo.DeleteEdificio(ctx, id)
}

// ── Viviendas ────────────────────────────────────────────────────────────────

func (s *viviendaService) CrearVivienda(ctx context.Context, req dto.CrearViviendaRequest) (*dto.ViviendaResponse, error) {
	edificioID, err := uuid.Parse(req.EdificioID)
	if err != nil {
		return nil, fmt.Errorf("edificio_id invalido: %w", err)
	}
	edificio, err := s.repo.FindEdificioByID(ctx, edificioID)
	if err != nil {
		return nil, errors.New("edificio no encontrado")
	}
	if req.Piso > edificio.Pisos {
		return nil, fmt.Errorf("el edificio %s tiene solo %d pisos", edificio.Nombre, edificio.Pisos)
	}

	v := &model.Vivienda{
		EdificioID:      edificioID,
		Numero:          req.Numero,
		Piso:            req.Piso,
		MetrosCuadrados: req.MetrosCuadrados,
		Habitaciones:    req.Habitaciones,
		Banos:           req.Banos,
		Estado:          req.Estado,
		Activo:          true,
	}
	if v.Habitaciones < 1 {
		v.Habitaciones = 1
	}
	if v.Banos < 1 {
		v.Banos = 1
	}
	if v.Estado == "" {
		v.Estado = "desocupado"
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return viviendaToResponse(v), nil
}

func (s *viviendaService) ObtenerVivienda(ctx context.Context, id uuid.UUID) (*dto.ViviendaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("vivienda no encontrada")
	}
	return viviendaToResponse(v), nil
}

func (s *viviendaService) ListarViviendas(ctx context.Context, soloActivas bool) ([]dto.ViviendaResponse, error) {
	viviendas, err := s.repo.List(ctx, soloActivas)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ViviendaResponse, len(viviendas))
	for i := range viviendas {
		resp[i] = *viviendaToResponse(&viviendas[i])
	}
	return resp, nil
}

func (s *viviendaService) ActualizarVivienda(ctx context.Context, id uuid.UUID, req dto.ActualizarViviendaRequest) (*dto.ViviendaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("vivienda no encontrada")
	}
	if !v.Activo {
		return nil, errors.New("la vivienda esta dada de baja")
	}
	if req.Numero != nil {
		v.Numero = *req.Numero
	}
	if req.Piso != nil {
		v.Piso = *req.Piso
	}
	if req.MetrosCuadrados != nil {
		v.MetrosCuadrados = *req.MetrosCuadrados
	}
	if req.Habitaciones != nil {
		v.Habitaciones = *req.Habitaciones
	}
	if req.Banos != nil {
		v.Banos = *req.Banos
	}
	if req.Estado != nil {
		v.Estado = *req.Estado
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return viviendaToResponse(v), nil
}

// DarBajaVivienda soft-deletes a unit. Its residents keep their records but
// are detached from the unit so they can be reassigned later.
func (s *viviendaService) DarBajaVivienda(ctx context.Context, id uuid.UUID, motivo string) error {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("vivienda no encontrada")
	}
	if !v.Activo {
		return errors.New("la vivienda ya esta dada de baja")
	}

	ahora := time.Now()
	v.Activo = false
	v.Estado = "baja"
	v.FechaBaja = &ahora
	v.MotivoBaja = &motivo
	if err := s.repo.Update(ctx, v); err != nil {
		return err
	}

	residentes, err := s.repo.ListResidentesByVivienda(ctx, id, false)
	if err != nil {
		return err
	}
	for i := range residentes {
		residentes[i].ViviendaID = nil
		if err := s.repo.UpdateResidente(ctx, &residentes[i]); err != nil {
			return err
		}
	}
	return nil
}

// ── Residentes ───────────────────────────────────────────────────────────────

func (s *viviendaService) CrearResidente(ctx context.Context, req dto.CrearResidenteRequest) (*dto.ResidenteResponse, error) {
	usuarioID, err := uuid.Parse(req.UsuarioID)
	if err != nil {
		return nil, fmt.Errorf("usuario_id invalido: %w", err)
	}
	viviendaID, err := uuid.Parse(req.ViviendaID)
	if err != nil {
		return nil, fmt.Errorf("vivienda_id invalido: %w", err)
	}

	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}
	if usuario.Rol != model.RolResidente {
		return nil, errors.New("el usuario no tiene rol residente")
	}

	vivienda, err := s.repo.FindByID(ctx, viviendaID)
	if err != nil {
		return nil, errors.New("vivienda no encontrada")
	}
	if !vivienda.Activo {
		return nil, errors.New("la vivienda esta dada de baja")
	}

	fechaIngreso, err := time.Parse(fechaLayout, req.FechaIngreso)
	if err != nil {
		return nil, errors.New("fecha_ingreso invalida")
	}

	res := &model.Residente{
		UsuarioID:     usuarioID,
		ViviendaID:    &viviendaID,
		FechaIngreso:  fechaIngreso,
		Vehiculos:     req.Vehiculos,
		EsPropietario: req.EsPropietario,
		Activo:        true,
	}
	if err := s.repo.CreateResidente(ctx, res); err != nil {
		return nil, err
	}

	// An occupied unit reflects its residents
	if vivienda.Estado == "desocupado" {
		_ = s.repo.UpdateEstado(ctx, viviendaID, "ocupado")
	}

	res.Usuario = usuario
	return residenteToResponse(res), nil
}

func (s *viviendaService) ListarResidentes(ctx context.Context, viviendaID uuid.UUID, soloActivos bool) ([]dto.ResidenteResponse, error) {
	residentes, err := s.repo.ListResidentesByVivienda(ctx, viviendaID, soloActivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ResidenteResponse, len(residentes))
	for i := range residentes {
		resp[i] = *residenteToResponse(&residentes[i])
	}
	return resp, nil
}

func (s *viviendaService) ActualizarResidente(ctx context.Context, id uuid.UUID, req dto.ActualizarResidenteRequest) (*dto.ResidenteResponse, error) {
	res, err := s.repo.FindResidenteByID(ctx, id)
	if err != nil {
		return nil, errors.New("residente no encontrado")
	}
	if req.ViviendaID != nil {
		vid, err := uuid.Parse(*req.ViviendaID)
		if err != nil {
			return nil, fmt.Errorf("vivienda_id invalido: %w", err)
		}
		vivienda, err := s.repo.FindByID(ctx, vid)
		if err != nil {
			return nil, errors.New("vivienda no encontrada")
		}
		if !vivienda.Activo {
			return nil, errors.New("la vivienda esta dada de baja")
		}
		res.ViviendaID = &vid
	}
	if req.Vehiculos != nil {
		res.Vehiculos = *req.Vehiculos
	}
	if req.EsPropietario != nil {
		res.EsPropietario = *req.EsPropietario
	}
	if req.Activo != nil {
		res.Activo = *req.Activo
	}
	if err := s.repo.UpdateResidente(ctx, res); err != nil {
		return nil, err
	}
	return residenteToResponse(res), nil
}

func (s *viviendaService) EliminarResidente(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindResidenteByID(ctx, id); err != nil {
		return errors.New("residente no encontrado")
	}
	return s.repo.DeleteResidente(ctx, id)
}

// ── Mappers ──────────────────────────────────────────────────────────────────

func edificioToResponse(e *model.Edificio) *dto.EdificioResponse {
	resp := &dto.EdificioResponse{
		ID:             e.ID.String(),
		Nombre:         e.Nombre,
		Direccion:      e.Direccion,
		Pisos:          e.Pisos,
		TotalViviendas: len(e.Viviendas),
	}
	if e.FechaConstruccion != nil {
		f := e.FechaConstruccion.Format(fechaLayout)
		resp.FechaConstruccion = &f
	}
	return resp
}

func viviendaToResponse(v *model.Vivienda) *dto.ViviendaResponse {
	resp := &dto.ViviendaResponse{
		ID:              v.ID.String(),
		EdificioID:      v.EdificioID.String(),
		Numero:          v.Numero,
		Piso:            v.Piso,
		MetrosCuadrados: v.MetrosCuadrados,
		Habitaciones:    v.Habitaciones,
		Banos:           v.Banos,
		Estado:          v.Estado,
		Activo:          v.Activo,
		MotivoBaja:      v.MotivoBaja,
	}
	if v.Edificio != nil {
		resp.Edificio = v.Edificio.Nombre
	}
	if v.FechaBaja != nil {
		f := v.FechaBaja.Format(fechaLayout)
		resp.FechaBaja = &f
	}
	return resp
}

func residenteToResponse(r *model.Residente) *dto.ResidenteResponse {
	resp := &dto.ResidenteResponse{
		ID:            r.ID.String(),
		UsuarioID:     r.UsuarioID.String(),
		FechaIngreso:  r.FechaIngreso.Format(fechaLayout),
		Vehiculos:     r.Vehiculos,
		EsPropietario: r.EsPropietario,
		Activo:        r.Activo,
	}
	if r.ViviendaID != nil {
		vid := r.ViviendaID.String()
		resp.ViviendaID = &vid
	}
	if r.Usuario != nil {
		resp.Nombre = r.Usuario.Nombre
	}
	if r.Vivienda != nil {
		resp.Vivienda = r.Vivienda.Numero
	}
	return resp
}
