package service_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"torresegura/internal/dto"
	"torresegura/internal/model"
	"torresegura/internal/repository"
	"torresegura/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEstadoCuentaRepo is an in-memory EstadoCuentaRepository.
type stubEstadoCuentaRepo struct {
	estados map[uuid.UUID]*model.EstadoCuenta
}

func newStubEstadoCuentaRepo() *stubEstadoCuentaRepo {
	return &stubEstadoCuentaRepo{estados: make(map[uuid.UUID]*model.EstadoCuenta)}
}

func (r *stubEstadoCuentaRepo) Create(_ context.Context, ec *model.EstadoCuenta) error {
	if ec.ID == uuid.Nil {
		ec.ID = uuid.New()
	}
	r.estados[ec.ID] = ec
	return nil
}

func (r *stubEstadoCuentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.EstadoCuenta, error) {
	ec, ok := r.estados[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return ec, nil
}

func (r *stubEstadoCuentaRepo) Update(_ context.Context, ec *model.EstadoCuenta) error {
	r.estados[ec.ID] = ec
	return nil
}

func (r *stubEstadoCuentaRepo) ListByVivienda(_ context.Context, viviendaID uuid.UUID) ([]model.EstadoCuenta, error) {
	var out []model.EstadoCuenta
	for _, ec := range r.estados {
		if ec.ViviendaID == viviendaID {
			out = append(out, *ec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaFin.After(out[j].FechaFin) })
	return out, nil
}

func (r *stubEstadoCuentaRepo) ExistsPeriodo(_ context.Context, viviendaID uuid.UUID, inicio, fin time.Time) (bool, error) {
	for _, ec := range r.estados {
		if ec.ViviendaID == viviendaID && ec.FechaInicio.Equal(inicio) && ec.FechaFin.Equal(fin) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubEstadoCuentaRepo) FindUltimoAnterior(_ context.Context, viviendaID uuid.UUID, antesDe time.Time) (*model.EstadoCuenta, error) {
	var ultimo *model.EstadoCuenta
	for _, ec := range r.estados {
		if ec.ViviendaID != viviendaID || !ec.FechaFin.Before(antesDe) {
			continue
		}
		if ultimo == nil || ec.FechaFin.After(ultimo.FechaFin) {
			ultimo = ec
		}
	}
	if ultimo == nil {
		return nil, errors.New("not found")
	}
	return ultimo, nil
}

var _ repository.EstadoCuentaRepository = (*stubEstadoCuentaRepo)(nil)

func buildEstadoCuentaSvc() (service.EstadoCuentaService, *stubEstadoCuentaRepo, *stubCuotaRepo, *stubPagoRepo, *stubViviendaRepo) {
	ecRepo := newStubEstadoCuentaRepo()
	cuotaRepo := newStubCuotaRepo()
	pagoRepo := newStubPagoRepo()
	viviendaRepo := newStubViviendaRepo()
	svc := service.NewEstadoCuentaService(ecRepo, cuotaRepo, pagoRepo, viviendaRepo, nil)
	return svc, ecRepo, cuotaRepo, pagoRepo, viviendaRepo
}

func TestCrearEstadoCuenta_SaldoFinal(t *testing.T) {
	svc, _, cuotaRepo, pagoRepo, viviendaRepo := buildEstadoCuentaSvc()
	viviendaID := seedVivienda(viviendaRepo)

	// Cuotas del periodo: 500 + 500 de principal, 20 de recargos
	c1 := seedCuota(cuotaRepo, viviendaID, "500.00", "20.00", fecha("2024-02-15"))
	c1.FechaEmision = fecha("2024-02-01")
	c2 := seedCuota(cuotaRepo, viviendaID, "500.00", "0.00", fecha("2024-02-28"))
	c2.FechaEmision = fecha("2024-02-10")

	// Pago verificado dentro del periodo: 845
	p := seedPago(pagoRepo, viviendaID, "845.00", model.PagoVerificado)
	p.FechaPago = fecha("2024-02-20")

	resp, err := svc.Crear(context.Background(), dto.CrearEstadoCuentaRequest{
		ViviendaID:  viviendaID.String(),
		FechaInicio: "2024-02-01",
		FechaFin:    "2024-02-29",
	})
	require.NoError(t, err)

	// saldo_final = 0 + 1000 + 20 − 845 = 175
	assert.True(t, dec("1000.00").Equal(resp.TotalCuotas))
	assert.True(t, dec("20.00").Equal(resp.TotalRecargos))
	assert.True(t, dec("845.00").Equal(resp.TotalPagos))
	assert.True(t, dec("175.00").Equal(resp.SaldoFinal), "saldo_final = %s", resp.SaldoFinal)
}

func TestCrearEstadoCuenta_ArrastraSaldoAnterior(t *testing.T) {
	svc, ecRepo, _, _, viviendaRepo := buildEstadoCuentaSvc()
	viviendaID := seedVivienda(viviendaRepo)

	anterior := &model.EstadoCuenta{
		ID:          uuid.New(),
		ViviendaID:  viviendaID,
		FechaInicio: fecha("2024-01-01"),
		FechaFin:    fecha("2024-01-31"),
		SaldoFinal:  dec("175.00"),
	}
	ecRepo.estados[anterior.ID] = anterior

	resp, err := svc.Crear(context.Background(), dto.CrearEstadoCuentaRequest{
		ViviendaID:  viviendaID.String(),
		FechaInicio: "2024-02-01",
		FechaFin:    "2024-02-29",
	})
	require.NoError(t, err)
	assert.True(t, dec("175.00").Equal(resp.SaldoAnterior))
	assert.True(t, dec("175.00").Equal(resp.SaldoFinal))
}

func TestCrearEstadoCuenta_PeriodoDuplicado(t *testing.T) {
	svc, _, _, _, viviendaRepo := buildEstadoCuentaSvc()
	viviendaID := seedVivienda(viviendaRepo)

	req := dto.CrearEstadoCuentaRequest{
		ViviendaID:  viviendaID.String(),
		FechaInicio: "2024-02-01",
		FechaFin:    "2024-02-29",
	}
	_, err := svc.Crear(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Crear(context.Background(), req)
	assert.EqualError(t, err, "ya existe un estado de cuenta para ese periodo")
}

func TestGenerarMasivo_OmiteExistentes(t *testing.T) {
	svc, _, _, _, viviendaRepo := buildEstadoCuentaSvc()
	v1 := seedVivienda(viviendaRepo)
	seedVivienda(viviendaRepo)

	// v1 ya tiene estado de cuenta para el periodo
	_, err := svc.Crear(context.Background(), dto.CrearEstadoCuentaRequest{
		ViviendaID:  v1.String(),
		FechaInicio: "2024-02-01",
		FechaFin:    "2024-02-29",
	})
	require.NoError(t, err)

	resp, err := svc.GenerarMasivo(context.Background(), dto.GenerarEstadosCuentaRequest{
		FechaInicio: "2024-02-01",
		FechaFin:    "2024-02-29",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Generados)
	assert.Equal(t, 1, resp.Omitidos)
}

func TestCrearEstadoCuenta_PeriodoInvertido(t *testing.T) {
	svc, _, _, _, viviendaRepo := buildEstadoCuentaSvc()
	viviendaID := seedVivienda(viviendaRepo)

	_, err := svc.Crear(context.Background(), dto.CrearEstadoCuentaRequest{
		ViviendaID:  viviendaID.String(),
		FechaInicio: "2024-02-29",
		FechaFin:    "2024-02-01",
	})
	assert.Error(t, err)
}

func TestRecalcular_IncorporaPagosPosteriores(t *testing.T) {
	svc, _, _, pagoRepo, viviendaRepo := buildEstadoCuentaSvc()
	viviendaID := seedVivienda(viviendaRepo)

	resp, err := svc.Crear(context.Background(), dto.CrearEstadoCuentaRequest{
		ViviendaID:  viviendaID.String(),
		FechaInicio: "2024-02-01",
		FechaFin:    "2024-02-29",
	})
	require.NoError(t, err)
	assert.True(t, dec("0").Equal(resp.TotalPagos))

	// Un pago del periodo se verifica despues de emitir el estado de cuenta
	p := seedPago(pagoRepo, viviendaID, "300.00", model.PagoVerificado)
	p.FechaPago = fecha("2024-02-20")

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	actualizado, err := svc.Recalcular(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, dec("300.00").Equal(actualizado.TotalPagos))
	assert.True(t, dec("-300.00").Equal(actualizado.SaldoFinal))
}
