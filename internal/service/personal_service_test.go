package service_test

import (
	"context"
	"errors"
	"testing"

	"torresegura/internal/dto"
	"torresegura/internal/model"
	"torresegura/internal/repository"
	"torresegura/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPersonalRepo is an in-memory PersonalRepository.
type stubPersonalRepo struct {
	puestos      map[uuid.UUID]*model.Puesto
	empleados    map[uuid.UUID]*model.Empleado
	asignaciones map[uuid.UUID]*model.Asignacion
}

func newStubPersonalRepo() *stubPersonalRepo {
	return &stubPersonalRepo{
		puestos:      make(map[uuid.UUID]*model.Puesto),
		empleados:    make(map[uuid.UUID]*model.Empleado),
		asignaciones: make(map[uuid.UUID]*model.Asignacion),
	}
}

func (r *stubPersonalRepo) CreatePuesto(_ context.Context, p *model.Puesto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.puestos[p.ID] = p
	return nil
}

func (r *stubPersonalRepo) FindPuestoByID(_ context.Context, id uuid.UUID) (*model.Puesto, error) {
	p, ok := r.puestos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubPersonalRepo) ListPuestos(_ context.Context) ([]model.Puesto, error) {
	var out []model.Puesto
	for _, p := range r.puestos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPersonalRepo) UpdatePuesto(_ context.Context, p *model.Puesto) error {
	r.puestos[p.ID] = p
	return nil
}

func (r *stubPersonalRepo) CountEmpleadosByPuesto(_ context.Context, puestoID uuid.UUID) (int64, error) {
	var n int64
	for _, e := range r.empleados {
		if e.PuestoID == puestoID {
			n++
		}
	}
	return n, nil
}

func (r *stubPersonalRepo) CreateEmpleado(_ context.Context, e *model.Empleado) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.empleados[e.ID] = e
	return nil
}

func (r *stubPersonalRepo) FindEmpleadoByID(_ context.Context, id uuid.UUID) (*model.Empleado, error) {
	e, ok := r.empleados[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return e, nil
}

func (r *stubPersonalRepo) FindEmpleadoByUsuario(_ context.Context, usuarioID uuid.UUID) (*model.Empleado, error) {
	for _, e := range r.empleados {
		if e.UsuarioID == usuarioID {
			return e, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubPersonalRepo) ListEmpleados(_ context.Context, soloActivos bool) ([]model.Empleado, error) {
	var out []model.Empleado
	for _, e := range r.empleados {
		if soloActivos && !e.Activo {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubPersonalRepo) UpdateEmpleado(_ context.Context, e *model.Empleado) error {
	r.empleados[e.ID] = e
	return nil
}

func (r *stubPersonalRepo) CreateAsignacion(_ context.Context, a *model.Asignacion) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.asignaciones[a.ID] = a
	return nil
}

func (r *stubPersonalRepo) FindAsignacionByID(_ context.Context, id uuid.UUID) (*model.Asignacion, error) {
	a, ok := r.asignaciones[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return a, nil
}

func (r *stubPersonalRepo) UpdateAsignacion(_ context.Context, a *model.Asignacion) error {
	r.asignaciones[a.ID] = a
	return nil
}

func (r *stubPersonalRepo) ListAsignaciones(_ context.Context, f repository.AsignacionFilter) ([]model.Asignacion, int64, error) {
	var out []model.Asignacion
	for _, a := range r.asignaciones {
		if f.EmpleadoID != nil && a.EmpleadoID != *f.EmpleadoID {
			continue
		}
		if f.Estado != "" && a.Estado != f.Estado {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

var _ repository.PersonalRepository = (*stubPersonalRepo)(nil)

// stubUsuarioRepo is an in-memory UsuarioRepository.
type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = false
	}
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = true
	}
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func buildPersonalSvc() (service.PersonalService, *stubPersonalRepo, *stubUsuarioRepo, *stubViviendaRepo) {
	personalRepo := newStubPersonalRepo()
	usuarioRepo := newStubUsuarioRepo()
	viviendaRepo := newStubViviendaRepo()
	svc := service.NewPersonalService(personalRepo, usuarioRepo, viviendaRepo)
	return svc, personalRepo, usuarioRepo, viviendaRepo
}

func seedUsuario(repo *stubUsuarioRepo, nombre string) *model.Usuario {
	u := &model.Usuario{
		ID:       uuid.New(),
		Username: nombre,
		Nombre:   nombre,
		Rol:      model.RolSeguridad,
		Activo:   true,
	}
	repo.usuarios[u.ID] = u
	return u
}

func seedPuesto(repo *stubPersonalRepo, nombre string, requiereEsp bool) *model.Puesto {
	p := &model.Puesto{
		ID:                      uuid.New(),
		Nombre:                  nombre,
		RequiereEspecializacion: requiereEsp,
		Activo:                  true,
	}
	repo.puestos[p.ID] = p
	return p
}

func seedEmpleado(repo *stubPersonalRepo, usuarioID, puestoID uuid.UUID) *model.Empleado {
	e := &model.Empleado{
		ID:                uuid.New(),
		UsuarioID:         usuarioID,
		PuestoID:          puestoID,
		FechaContratacion: fecha("2023-06-01"),
		TipoContrato:      "permanente",
		Activo:            true,
	}
	repo.empleados[e.ID] = e
	return e
}

// ── Empleados ────────────────────────────────────────────────────────────────

func TestCrearEmpleado_PuestoRequiereEspecialidad(t *testing.T) {
	svc, personalRepo, usuarioRepo, _ := buildPersonalSvc()
	u := seedUsuario(usuarioRepo, "jperez")
	p := seedPuesto(personalRepo, "Tecnico electricista", true)

	_, err := svc.CrearEmpleado(context.Background(), dto.CrearEmpleadoRequest{
		UsuarioID:         u.ID.String(),
		PuestoID:          p.ID.String(),
		FechaContratacion: "2024-01-15",
	})
	assert.EqualError(t, err, "el puesto Tecnico electricista requiere especialidad")
}

func TestCrearEmpleado_ContratoPorDefecto(t *testing.T) {
	svc, personalRepo, usuarioRepo, _ := buildPersonalSvc()
	u := seedUsuario(usuarioRepo, "jperez")
	p := seedPuesto(personalRepo, "Conserje", false)

	resp, err := svc.CrearEmpleado(context.Background(), dto.CrearEmpleadoRequest{
		UsuarioID:         u.ID.String(),
		PuestoID:          p.ID.String(),
		FechaContratacion: "2024-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "permanente", resp.TipoContrato)
	assert.Equal(t, "jperez", resp.Nombre)
	assert.Equal(t, "Conserje", resp.Puesto)
}

func TestCrearEmpleado_UsuarioInexistente(t *testing.T) {
	svc, personalRepo, _, _ := buildPersonalSvc()
	p := seedPuesto(personalRepo, "Conserje", false)

	_, err := svc.CrearEmpleado(context.Background(), dto.CrearEmpleadoRequest{
		UsuarioID:         uuid.NewString(),
		PuestoID:          p.ID.String(),
		FechaContratacion: "2024-01-15",
	})
	assert.EqualError(t, err, "usuario no encontrado")
}

// ── Asignaciones ─────────────────────────────────────────────────────────────

func TestCrearAsignacion_EmpleadoInactivo(t *testing.T) {
	svc, personalRepo, usuarioRepo, _ := buildPersonalSvc()
	u := seedUsuario(usuarioRepo, "jperez")
	p := seedPuesto(personalRepo, "Conserje", false)
	e := seedEmpleado(personalRepo, u.ID, p.ID)
	e.Activo = false

	_, err := svc.CrearAsignacion(context.Background(), dto.CrearAsignacionRequest{
		EmpleadoID:  e.ID.String(),
		Tipo:        "limpieza",
		Descripcion: "Limpieza de pasillos torre A",
	})
	assert.EqualError(t, err, "el empleado esta inactivo")
}

func TestCrearAsignacion_PrioridadPorDefecto(t *testing.T) {
	svc, personalRepo, usuarioRepo, _ := buildPersonalSvc()
	u := seedUsuario(usuarioRepo, "jperez")
	p := seedPuesto(personalRepo, "Conserje", false)
	e := seedEmpleado(personalRepo, u.ID, p.ID)

	resp, err := svc.CrearAsignacion(context.Background(), dto.CrearAsignacionRequest{
		EmpleadoID:  e.ID.String(),
		Tipo:        "limpieza",
		Descripcion: "Limpieza de pasillos torre A",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Prioridad)
	assert.Equal(t, model.AsignacionPendiente, resp.Estado)
}

func TestCambiarEstado_CompletadaEsTerminal(t *testing.T) {
	svc, personalRepo, usuarioRepo, _ := buildPersonalSvc()
	u := seedUsuario(usuarioRepo, "jperez")
	p := seedPuesto(personalRepo, "Conserje", false)
	e := seedEmpleado(personalRepo, u.ID, p.ID)

	a := &model.Asignacion{
		ID:         uuid.New(),
		EmpleadoID: e.ID,
		Tipo:       "limpieza",
		Estado:     model.AsignacionCompletada,
	}
	personalRepo.asignaciones[a.ID] = a

	_, err := svc.CambiarEstado(context.Background(), a.ID, dto.CambiarEstadoAsignacionRequest{
		Estado: model.AsignacionEnProgreso,
	})
	assert.EqualError(t, err, "la asignacion esta completada y no admite cambios")
}

func TestCambiarEstado_CompletarFijaFecha(t *testing.T) {
	svc, personalRepo, usuarioRepo, _ := buildPersonalSvc()
	u := seedUsuario(usuarioRepo, "jperez")
	p := seedPuesto(personalRepo, "Conserje", false)
	e := seedEmpleado(personalRepo, u.ID, p.ID)

	a := &model.Asignacion{
		ID:         uuid.New(),
		EmpleadoID: e.ID,
		Tipo:       "mantenimiento",
		Estado:     model.AsignacionEnProgreso,
	}
	personalRepo.asignaciones[a.ID] = a

	resp, err := svc.CambiarEstado(context.Background(), a.ID, dto.CambiarEstadoAsignacionRequest{
		Estado: model.AsignacionCompletada,
		Notas:  "bomba reemplazada",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AsignacionCompletada, resp.Estado)
	assert.NotNil(t, resp.CompletadaEn)
	assert.Equal(t, "bomba reemplazada", resp.Notas)
}

func TestCambiarEstado_MismoEstado(t *testing.T) {
	svc, personalRepo, usuarioRepo, _ := buildPersonalSvc()
	u := seedUsuario(usuarioRepo, "jperez")
	p := seedPuesto(personalRepo, "Conserje", false)
	e := seedEmpleado(personalRepo, u.ID, p.ID)

	a := &model.Asignacion{
		ID:         uuid.New(),
		EmpleadoID: e.ID,
		Tipo:       "limpieza",
		Estado:     model.AsignacionPendiente,
	}
	personalRepo.asignaciones[a.ID] = a

	_, err := svc.CambiarEstado(context.Background(), a.ID, dto.CambiarEstadoAsignacionRequest{
		Estado: model.AsignacionPendiente,
	})
	assert.EqualError(t, err, "la asignacion ya esta en ese estado")
}

func TestMisAsignaciones_FiltraPorEmpleado(t *testing.T) {
	svc, personalRepo, usuarioRepo, _ := buildPersonalSvc()
	u := seedUsuario(usuarioRepo, "jperez")
	otro := seedUsuario(usuarioRepo, "mlopez")
	p := seedPuesto(personalRepo, "Conserje", false)
	e := seedEmpleado(personalRepo, u.ID, p.ID)
	e2 := seedEmpleado(personalRepo, otro.ID, p.ID)

	a1 := &model.Asignacion{ID: uuid.New(), EmpleadoID: e.ID, Tipo: "limpieza", Estado: model.AsignacionPendiente}
	a2 := &model.Asignacion{ID: uuid.New(), EmpleadoID: e2.ID, Tipo: "jardineria", Estado: model.AsignacionPendiente}
	personalRepo.asignaciones[a1.ID] = a1
	personalRepo.asignaciones[a2.ID] = a2

	resp, err := svc.MisAsignaciones(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, a1.ID.String(), resp[0].ID)
}

func TestMisAsignaciones_UsuarioSinEmpleado(t *testing.T) {
	svc, _, usuarioRepo, _ := buildPersonalSvc()
	u := seedUsuario(usuarioRepo, "jperez")

	_, err := svc.MisAsignaciones(context.Background(), u.ID)
	assert.EqualError(t, err, "el usuario no tiene un empleado asociado")
}
