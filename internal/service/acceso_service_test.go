package service_test

import (
	"context"
	"errors"
	"testing"

	"torresegura/internal/dto"
	"torresegura/internal/infra"
	"torresegura/internal/model"
	"torresegura/internal/repository"
	"torresegura/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVisitaRepo is an in-memory VisitaRepository.
type stubVisitaRepo struct {
	visitas     map[uuid.UUID]*model.Visita
	movimientos map[uuid.UUID]*model.MovimientoResidente
}

func newStubVisitaRepo() *stubVisitaRepo {
	return &stubVisitaRepo{
		visitas:     make(map[uuid.UUID]*model.Visita),
		movimientos: make(map[uuid.UUID]*model.MovimientoResidente),
	}
}

func (r *stubVisitaRepo) Create(_ context.Context, v *model.Visita) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.visitas[v.ID] = v
	return nil
}

func (r *stubVisitaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Visita, error) {
	v, ok := r.visitas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (r *stubVisitaRepo) Update(_ context.Context, v *model.Visita) error {
	r.visitas[v.ID] = v
	return nil
}

func (r *stubVisitaRepo) ListHistorial(_ context.Context, f repository.VisitaFilter) ([]model.Visita, error) {
	var out []model.Visita
	for _, v := range r.visitas {
		if f.ViviendaID != nil && v.ViviendaDestinoID != *f.ViviendaID {
			continue
		}
		if f.Activas && v.FechaHoraSalida != nil {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVisitaRepo) CreateMovimiento(_ context.Context, m *model.MovimientoResidente) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos[m.ID] = m
	return nil
}

func (r *stubVisitaRepo) ListMovimientos(_ context.Context, residenteID *uuid.UUID, _ int) ([]model.MovimientoResidente, error) {
	var out []model.MovimientoResidente
	for _, m := range r.movimientos {
		if residenteID != nil && m.ResidenteID != *residenteID {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

var _ repository.VisitaRepository = (*stubVisitaRepo)(nil)

func buildAccesoSvc() (service.AccesoService, *stubVisitaRepo, *stubViviendaRepo) {
	visitaRepo := newStubVisitaRepo()
	viviendaRepo := newStubViviendaRepo()
	firmador := infra.NewQRFirmador("clave-de-prueba")
	svc := service.NewAccesoService(visitaRepo, viviendaRepo, firmador)
	return svc, visitaRepo, viviendaRepo
}

func seedResidente(repo *stubViviendaRepo, viviendaID uuid.UUID) *model.Residente {
	res := &model.Residente{
		ID:         uuid.New(),
		UsuarioID:  uuid.New(),
		ViviendaID: &viviendaID,
		Activo:     true,
	}
	repo.residentes[res.ID] = res
	return res
}

func registrarVisita(t *testing.T, svc service.AccesoService, viviendaID, residenteID uuid.UUID) *dto.VisitaResponse {
	t.Helper()
	resp, err := svc.RegistrarVisita(context.Background(), uuid.New(), dto.RegistrarVisitaRequest{
		NombreVisitante:     "Laura Medina",
		DocumentoVisitante:  "CURP123",
		ViviendaDestinoID:   viviendaID.String(),
		ResidenteAutorizaID: residenteID.String(),
		Motivo:              "visita familiar",
	})
	require.NoError(t, err)
	return resp
}

func TestRegistrarVisita_EmiteFirma(t *testing.T) {
	svc, _, viviendaRepo := buildAccesoSvc()
	viviendaID := seedVivienda(viviendaRepo)
	res := seedResidente(viviendaRepo, viviendaID)

	resp := registrarVisita(t, svc, viviendaID, res.ID)
	assert.Len(t, resp.Firma, 64)
	assert.Nil(t, resp.FechaHoraSalida)
}

func TestRegistrarVisita_ResidenteDeOtraVivienda(t *testing.T) {
	svc, _, viviendaRepo := buildAccesoSvc()
	viviendaID := seedVivienda(viviendaRepo)
	otra := seedVivienda(viviendaRepo)
	res := seedResidente(viviendaRepo, otra)

	_, err := svc.RegistrarVisita(context.Background(), uuid.New(), dto.RegistrarVisitaRequest{
		NombreVisitante:     "Laura Medina",
		DocumentoVisitante:  "CURP123",
		ViviendaDestinoID:   viviendaID.String(),
		ResidenteAutorizaID: res.ID.String(),
	})
	assert.EqualError(t, err, "el residente no pertenece a la vivienda destino")
}

func TestVerificarQR_FirmaValida(t *testing.T) {
	svc, _, viviendaRepo := buildAccesoSvc()
	viviendaID := seedVivienda(viviendaRepo)
	res := seedResidente(viviendaRepo, viviendaID)
	visita := registrarVisita(t, svc, viviendaID, res.ID)

	resp, err := svc.VerificarQR(context.Background(), dto.VerificarQRRequest{
		VisitaID: visita.ID,
		Firma:    visita.Firma,
	})
	require.NoError(t, err)
	assert.True(t, resp.Valido)
	require.NotNil(t, resp.Visita)
	assert.Equal(t, visita.ID, resp.Visita.ID)
}

func TestVerificarQR_FirmaAdulterada(t *testing.T) {
	svc, _, viviendaRepo := buildAccesoSvc()
	viviendaID := seedVivienda(viviendaRepo)
	res := seedResidente(viviendaRepo, viviendaID)
	visita := registrarVisita(t, svc, viviendaID, res.ID)

	// Alterar un solo caracter de la firma la invalida
	firma := []byte(visita.Firma)
	if firma[0] == 'a' {
		firma[0] = 'b'
	} else {
		firma[0] = 'a'
	}

	resp, err := svc.VerificarQR(context.Background(), dto.VerificarQRRequest{
		VisitaID: visita.ID,
		Firma:    string(firma),
	})
	require.NoError(t, err)
	assert.False(t, resp.Valido)
	assert.Nil(t, resp.Visita)
}

func TestVerificarQR_FirmaDeOtraVisita(t *testing.T) {
	svc, _, viviendaRepo := buildAccesoSvc()
	viviendaID := seedVivienda(viviendaRepo)
	res := seedResidente(viviendaRepo, viviendaID)
	v1 := registrarVisita(t, svc, viviendaID, res.ID)
	v2 := registrarVisita(t, svc, viviendaID, res.ID)

	resp, err := svc.VerificarQR(context.Background(), dto.VerificarQRRequest{
		VisitaID: v1.ID,
		Firma:    v2.Firma,
	})
	require.NoError(t, err)
	assert.False(t, resp.Valido)
}

func TestRegistrarSalida_SoloUnaVez(t *testing.T) {
	svc, _, viviendaRepo := buildAccesoSvc()
	viviendaID := seedVivienda(viviendaRepo)
	res := seedResidente(viviendaRepo, viviendaID)
	visita := registrarVisita(t, svc, viviendaID, res.ID)

	id, err := uuid.Parse(visita.ID)
	require.NoError(t, err)

	resp, err := svc.RegistrarSalida(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, resp.FechaHoraSalida)

	_, err = svc.RegistrarSalida(context.Background(), id)
	assert.EqualError(t, err, "la salida ya fue registrada")
}

func TestQRVisita_GeneraPNG(t *testing.T) {
	svc, _, viviendaRepo := buildAccesoSvc()
	viviendaID := seedVivienda(viviendaRepo)
	res := seedResidente(viviendaRepo, viviendaID)
	visita := registrarVisita(t, svc, viviendaID, res.ID)

	id, err := uuid.Parse(visita.ID)
	require.NoError(t, err)

	png, err := svc.QRVisita(context.Background(), id)
	require.NoError(t, err)
	// PNG magic bytes
	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
