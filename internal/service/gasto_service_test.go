package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"torresegura/internal/dto"
	"torresegura/internal/model"
	"torresegura/internal/repository"
	"torresegura/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGastoRepo is an in-memory GastoRepository.
type stubGastoRepo struct {
	categorias map[uuid.UUID]*model.CategoriaGasto
	gastos     map[uuid.UUID]*model.Gasto
}

func newStubGastoRepo() *stubGastoRepo {
	return &stubGastoRepo{
		categorias: make(map[uuid.UUID]*model.CategoriaGasto),
		gastos:     make(map[uuid.UUID]*model.Gasto),
	}
}

func (r *stubGastoRepo) CreateCategoria(_ context.Context, c *model.CategoriaGasto) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias[c.ID] = c
	return nil
}

func (r *stubGastoRepo) FindCategoriaByID(_ context.Context, id uuid.UUID) (*model.CategoriaGasto, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubGastoRepo) ListCategorias(_ context.Context) ([]model.CategoriaGasto, error) {
	var out []model.CategoriaGasto
	for _, c := range r.categorias {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubGastoRepo) UpdateCategoria(_ context.Context, c *model.CategoriaGasto) error {
	r.categorias[c.ID] = c
	return nil
}

func (r *stubGastoRepo) CountGastosByCategoria(_ context.Context, categoriaID uuid.UUID) (int64, error) {
	var n int64
	for _, g := range r.gastos {
		if g.CategoriaID == categoriaID {
			n++
		}
	}
	return n, nil
}

func (r *stubGastoRepo) DeleteCategoria(_ context.Context, id uuid.UUID) error {
	delete(r.categorias, id)
	return nil
}

func (r *stubGastoRepo) Create(_ context.Context, g *model.Gasto) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.gastos[g.ID] = g
	return nil
}

func (r *stubGastoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Gasto, error) {
	g, ok := r.gastos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return g, nil
}

func (r *stubGastoRepo) Update(_ context.Context, g *model.Gasto) error {
	r.gastos[g.ID] = g
	return nil
}

func (r *stubGastoRepo) List(_ context.Context, f repository.GastoFilter) ([]model.Gasto, int64, error) {
	var out []model.Gasto
	for _, g := range r.gastos {
		if f.Estado != "" && g.Estado != f.Estado {
			continue
		}
		if f.CategoriaID != nil && g.CategoriaID != *f.CategoriaID {
			continue
		}
		out = append(out, *g)
	}
	return out, int64(len(out)), nil
}

func (r *stubGastoRepo) SumMontoByCategoriaBetween(_ context.Context, categoriaID uuid.UUID, desde, hasta time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, g := range r.gastos {
		if g.CategoriaID != categoriaID || g.Estado == model.GastoCancelado {
			continue
		}
		if g.Fecha.Before(desde) || g.Fecha.After(hasta) {
			continue
		}
		total = total.Add(g.Monto)
	}
	return total, nil
}

var _ repository.GastoRepository = (*stubGastoRepo)(nil)

func buildGastoSvc() (service.GastoService, *stubGastoRepo) {
	repo := newStubGastoRepo()
	return service.NewGastoService(repo), repo
}

func seedCategoria(repo *stubGastoRepo, presupuesto string) uuid.UUID {
	c := &model.CategoriaGasto{
		ID:                 uuid.New(),
		Nombre:             "Mantenimiento",
		PresupuestoMensual: dec(presupuesto),
		Activo:             true,
	}
	repo.categorias[c.ID] = c
	return c.ID
}

func seedGasto(repo *stubGastoRepo, categoriaID uuid.UUID, monto, dia, estado string) *model.Gasto {
	g := &model.Gasto{
		ID:          uuid.New(),
		CategoriaID: categoriaID,
		Concepto:    "Reparacion bomba de agua",
		Monto:       dec(monto),
		Fecha:       fecha(dia),
		Estado:      estado,
		TipoGasto:   "mantenimiento",
	}
	repo.gastos[g.ID] = g
	return g
}

// ── Categorías ───────────────────────────────────────────────────────────────

func TestCrearCategoria_ColorPorDefecto(t *testing.T) {
	svc, _ := buildGastoSvc()

	resp, err := svc.CrearCategoria(context.Background(), dto.CrearCategoriaGastoRequest{
		Nombre:             "Jardineria",
		PresupuestoMensual: dec("3000.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "#3498db", resp.Color)
	assert.True(t, resp.Activo)
}

func TestCrearCategoria_PresupuestoNegativo(t *testing.T) {
	svc, _ := buildGastoSvc()

	_, err := svc.CrearCategoria(context.Background(), dto.CrearCategoriaGastoRequest{
		Nombre:             "Jardineria",
		PresupuestoMensual: dec("-1.00"),
	})
	assert.EqualError(t, err, "presupuesto_mensual no puede ser negativo")
}

func TestEliminarCategoria_ConGastos(t *testing.T) {
	svc, repo := buildGastoSvc()
	catID := seedCategoria(repo, "5000.00")
	seedGasto(repo, catID, "1200.00", "2024-03-05", model.GastoPendiente)

	err := svc.EliminarCategoria(context.Background(), catID)
	assert.EqualError(t, err, "la categoria tiene gastos registrados y no puede eliminarse")
}

func TestEliminarCategoria_SinGastos(t *testing.T) {
	svc, repo := buildGastoSvc()
	catID := seedCategoria(repo, "5000.00")

	require.NoError(t, svc.EliminarCategoria(context.Background(), catID))
	_, ok := repo.categorias[catID]
	assert.False(t, ok)
}

func TestEjecucionPresupuestal_CalculaPorcentaje(t *testing.T) {
	svc, repo := buildGastoSvc()
	catID := seedCategoria(repo, "5000.00")
	seedGasto(repo, catID, "1200.00", "2024-03-05", model.GastoPagado)
	seedGasto(repo, catID, "800.00", "2024-03-20", model.GastoPendiente)
	// Fuera del mes consultado
	seedGasto(repo, catID, "999.00", "2024-02-28", model.GastoPagado)

	resp, err := svc.EjecucionPresupuestal(context.Background(), fecha("2024-03-15"))
	require.NoError(t, err)
	require.Len(t, resp, 1)
	require.NotNil(t, resp[0].GastadoMes)
	assert.True(t, dec("2000.00").Equal(*resp[0].GastadoMes))
	require.NotNil(t, resp[0].PorcentajeEjecutado)
	assert.True(t, dec("40.00").Equal(*resp[0].PorcentajeEjecutado))
}

func TestEjecucionPresupuestal_SinPresupuestoOmitePorcentaje(t *testing.T) {
	svc, repo := buildGastoSvc()
	catID := seedCategoria(repo, "0")
	seedGasto(repo, catID, "500.00", "2024-03-05", model.GastoPagado)

	resp, err := svc.EjecucionPresupuestal(context.Background(), fecha("2024-03-15"))
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Nil(t, resp[0].PorcentajeEjecutado)
}

// ── Gastos ───────────────────────────────────────────────────────────────────

func TestCrearGasto_CategoriaInactiva(t *testing.T) {
	svc, repo := buildGastoSvc()
	catID := seedCategoria(repo, "5000.00")
	repo.categorias[catID].Activo = false

	_, err := svc.Crear(context.Background(), uuid.New(), dto.CrearGastoRequest{
		CategoriaID: catID.String(),
		Concepto:    "Pintura fachada",
		Monto:       dec("2500.00"),
		Fecha:       "2024-03-10",
	})
	assert.EqualError(t, err, "la categoria esta inactiva")
}

func TestCrearGasto_TipoPorDefecto(t *testing.T) {
	svc, repo := buildGastoSvc()
	catID := seedCategoria(repo, "5000.00")

	resp, err := svc.Crear(context.Background(), uuid.New(), dto.CrearGastoRequest{
		CategoriaID: catID.String(),
		Concepto:    "Pintura fachada",
		Monto:       dec("2500.00"),
		Fecha:       "2024-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "ordinario", resp.TipoGasto)
	assert.Equal(t, model.GastoPendiente, resp.Estado)
}

func TestActualizarGasto_SoloPendientes(t *testing.T) {
	svc, repo := buildGastoSvc()
	catID := seedCategoria(repo, "5000.00")
	g := seedGasto(repo, catID, "1200.00", "2024-03-05", model.GastoPagado)

	nuevo := "Cambio de bomba"
	_, err := svc.Actualizar(context.Background(), g.ID, dto.ActualizarGastoRequest{Concepto: &nuevo})
	assert.EqualError(t, err, "solo pueden modificarse gastos pendientes")
}

func TestMarcarPagado_RegistraFechaYAutorizador(t *testing.T) {
	svc, repo := buildGastoSvc()
	catID := seedCategoria(repo, "5000.00")
	g := seedGasto(repo, catID, "1200.00", "2024-03-05", model.GastoPendiente)
	autorizador := uuid.New()

	resp, err := svc.MarcarPagado(context.Background(), g.ID, autorizador)
	require.NoError(t, err)
	assert.Equal(t, model.GastoPagado, resp.Estado)
	assert.NotNil(t, resp.FechaPago)
	require.NotNil(t, repo.gastos[g.ID].AutorizadoPorID)
	assert.Equal(t, autorizador, *repo.gastos[g.ID].AutorizadoPorID)
}

func TestMarcarPagado_SoloPendientes(t *testing.T) {
	svc, repo := buildGastoSvc()
	catID := seedCategoria(repo, "5000.00")
	g := seedGasto(repo, catID, "1200.00", "2024-03-05", model.GastoCancelado)

	_, err := svc.MarcarPagado(context.Background(), g.ID, uuid.New())
	assert.EqualError(t, err, "el gasto esta cancelado y no puede marcarse pagado")
}

func TestCancelarGasto_PagadoNoSeCancela(t *testing.T) {
	svc, repo := buildGastoSvc()
	catID := seedCategoria(repo, "5000.00")
	g := seedGasto(repo, catID, "1200.00", "2024-03-05", model.GastoPagado)

	_, err := svc.Cancelar(context.Background(), g.ID)
	assert.EqualError(t, err, "un gasto pagado no puede cancelarse")
}

func TestCancelarGasto_Idempotencia(t *testing.T) {
	svc, repo := buildGastoSvc()
	catID := seedCategoria(repo, "5000.00")
	g := seedGasto(repo, catID, "1200.00", "2024-03-05", model.GastoPendiente)

	resp, err := svc.Cancelar(context.Background(), g.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GastoCancelado, resp.Estado)

	_, err = svc.Cancelar(context.Background(), g.ID)
	assert.EqualError(t, err, "el gasto ya esta cancelado")
}
