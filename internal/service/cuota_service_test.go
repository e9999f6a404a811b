package service_test

import (
	"context"
	"testing"
	"time"

	"torresegura/internal/dto"
	"torresegura/internal/model"
	"torresegura/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fecha(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// seedVivienda registers an active unit and returns its id.
func seedVivienda(repo *stubViviendaRepo) uuid.UUID {
	v := &model.Vivienda{
		ID:         uuid.New(),
		EdificioID: uuid.New(),
		Numero:     "101",
		Piso:       1,
		Estado:     "ocupado",
		Activo:     true,
	}
	repo.viviendas[v.ID] = v
	return v.ID
}

func seedConcepto(repo *stubConceptoRepo, montoBase, pctRecargo string) *model.ConceptoCuota {
	c := &model.ConceptoCuota{
		ID:                uuid.New(),
		Nombre:            "Mantenimiento",
		MontoBase:         dec(montoBase),
		Periodicidad:      "mensual",
		AplicaRecargo:     true,
		PorcentajeRecargo: dec(pctRecargo),
		Activo:            true,
	}
	repo.conceptos[c.ID] = c
	return c
}

func buildCuotaSvc() (service.CuotaService, *stubCuotaRepo, *stubConceptoRepo, *stubViviendaRepo) {
	cuotaRepo := newStubCuotaRepo()
	conceptoRepo := newStubConceptoRepo()
	viviendaRepo := newStubViviendaRepo()
	svc := service.NewCuotaService(cuotaRepo, conceptoRepo, viviendaRepo, nil)
	return svc, cuotaRepo, conceptoRepo, viviendaRepo
}

// ── Recargo ──────────────────────────────────────────────────────────────────

func TestCalcularRecargo_DosMesesVencida(t *testing.T) {
	concepto := &model.ConceptoCuota{AplicaRecargo: true, PorcentajeRecargo: dec("2.00")}
	c := &model.Cuota{
		Monto:            dec("100.00"),
		FechaVencimiento: fecha("2024-01-15"),
		Concepto:         concepto,
	}

	// Two full months elapsed: 2% x 2 over 100.00
	recargo := c.CalcularRecargo(fecha("2024-03-20"))
	assert.True(t, dec("4.00").Equal(recargo), "recargo = %s", recargo)
}

func TestCalcularRecargo_MinimoUnMes(t *testing.T) {
	concepto := &model.ConceptoCuota{AplicaRecargo: true, PorcentajeRecargo: dec("2.00")}
	c := &model.Cuota{
		Monto:            dec("100.00"),
		FechaVencimiento: fecha("2024-01-15"),
		Concepto:         concepto,
	}

	// One day overdue still counts as one month — no pro-rating
	recargo := c.CalcularRecargo(fecha("2024-01-16"))
	assert.True(t, dec("2.00").Equal(recargo), "recargo = %s", recargo)
}

func TestCalcularRecargo_CuotaPagada(t *testing.T) {
	concepto := &model.ConceptoCuota{AplicaRecargo: true, PorcentajeRecargo: dec("2.00")}
	c := &model.Cuota{
		Monto:            dec("100.00"),
		FechaVencimiento: fecha("2024-01-15"),
		Pagada:           true,
		Concepto:         concepto,
	}
	assert.True(t, c.CalcularRecargo(fecha("2024-03-20")).IsZero())
}

func TestCalcularRecargo_NoVencida(t *testing.T) {
	concepto := &model.ConceptoCuota{AplicaRecargo: true, PorcentajeRecargo: dec("2.00")}
	c := &model.Cuota{
		Monto:            dec("100.00"),
		FechaVencimiento: fecha("2024-01-15"),
		Concepto:         concepto,
	}
	// El día del vencimiento no genera recargo
	assert.True(t, c.CalcularRecargo(fecha("2024-01-15")).IsZero())
}

func TestCalcularRecargo_ConceptoSinRecargo(t *testing.T) {
	concepto := &model.ConceptoCuota{AplicaRecargo: false, PorcentajeRecargo: dec("2.00")}
	c := &model.Cuota{
		Monto:            dec("100.00"),
		FechaVencimiento: fecha("2024-01-15"),
		Concepto:         concepto,
	}
	assert.True(t, c.CalcularRecargo(fecha("2024-06-01")).IsZero())
}

func TestActualizarRecargo_PersisteSoloSiCambia(t *testing.T) {
	svc, cuotaRepo, conceptoRepo, viviendaRepo := buildCuotaSvc()
	viviendaID := seedVivienda(viviendaRepo)
	concepto := seedConcepto(conceptoRepo, "500.00", "2.00")

	c := &model.Cuota{
		ID:               uuid.New(),
		ConceptoID:       concepto.ID,
		ViviendaID:       viviendaID,
		Monto:            dec("500.00"),
		FechaEmision:     fecha("2024-01-01"),
		FechaVencimiento: fecha("2024-01-15"),
		Recargo:          decimal.Zero,
		Concepto:         concepto,
	}
	cuotaRepo.cuotas[c.ID] = c

	resp, err := svc.ActualizarRecargo(context.Background(), c.ID, fecha("2024-03-20"))
	require.NoError(t, err)
	assert.True(t, dec("20.00").Equal(resp.Recargo), "recargo = %s", resp.Recargo)
	assert.True(t, dec("520.00").Equal(resp.TotalAPagar))
	assert.True(t, resp.Vencida)
}

// ── Generación masiva ────────────────────────────────────────────────────────

func TestGenerarCuotas_UnaPorViviendaActiva(t *testing.T) {
	svc, _, conceptoRepo, viviendaRepo := buildCuotaSvc()
	concepto := seedConcepto(conceptoRepo, "500.00", "2.00")
	seedVivienda(viviendaRepo)
	seedVivienda(viviendaRepo)

	// Las viviendas dadas de baja no reciben cuota
	baja := seedVivienda(viviendaRepo)
	viviendaRepo.viviendas[baja].Activo = false

	resp, err := svc.GenerarCuotas(context.Background(), dto.GenerarCuotasRequest{
		ConceptoID:       concepto.ID.String(),
		FechaEmision:     "2024-02-01",
		FechaVencimiento: "2024-02-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Generadas)
	assert.Equal(t, 0, resp.Omitidas)
}

func TestGenerarCuotas_Idempotente(t *testing.T) {
	svc, _, conceptoRepo, viviendaRepo := buildCuotaSvc()
	concepto := seedConcepto(conceptoRepo, "500.00", "2.00")
	seedVivienda(viviendaRepo)
	seedVivienda(viviendaRepo)

	req := dto.GenerarCuotasRequest{
		ConceptoID:       concepto.ID.String(),
		FechaEmision:     "2024-02-01",
		FechaVencimiento: "2024-02-15",
	}
	_, err := svc.GenerarCuotas(context.Background(), req)
	require.NoError(t, err)

	// Repetir la generación no duplica cuotas
	resp, err := svc.GenerarCuotas(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Generadas)
	assert.Equal(t, 2, resp.Omitidas)
}

func TestGenerarCuotas_ConceptoInactivo(t *testing.T) {
	svc, _, conceptoRepo, viviendaRepo := buildCuotaSvc()
	concepto := seedConcepto(conceptoRepo, "500.00", "2.00")
	concepto.Activo = false
	seedVivienda(viviendaRepo)

	_, err := svc.GenerarCuotas(context.Background(), dto.GenerarCuotasRequest{
		ConceptoID:       concepto.ID.String(),
		FechaEmision:     "2024-02-01",
		FechaVencimiento: "2024-02-15",
	})
	assert.EqualError(t, err, "el concepto esta inactivo")
}

func TestGenerarCuotas_SoloViviendasIndicadas(t *testing.T) {
	svc, cuotaRepo, conceptoRepo, viviendaRepo := buildCuotaSvc()
	concepto := seedConcepto(conceptoRepo, "500.00", "2.00")
	objetivo := seedVivienda(viviendaRepo)
	seedVivienda(viviendaRepo)
	seedVivienda(viviendaRepo)

	resp, err := svc.GenerarCuotas(context.Background(), dto.GenerarCuotasRequest{
		ConceptoID:       concepto.ID.String(),
		FechaEmision:     "2024-02-01",
		FechaVencimiento: "2024-02-15",
		ViviendaIDs:      []string{objetivo.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Generadas)

	require.Len(t, cuotaRepo.cuotas, 1)
	for _, c := range cuotaRepo.cuotas {
		assert.Equal(t, objetivo, c.ViviendaID)
	}
}

func TestGenerarCuotas_ViviendaIndicadaDadaDeBaja(t *testing.T) {
	svc, _, conceptoRepo, viviendaRepo := buildCuotaSvc()
	concepto := seedConcepto(conceptoRepo, "500.00", "2.00")
	baja := seedVivienda(viviendaRepo)
	viviendaRepo.viviendas[baja].Activo = false

	_, err := svc.GenerarCuotas(context.Background(), dto.GenerarCuotasRequest{
		ConceptoID:       concepto.ID.String(),
		FechaEmision:     "2024-02-01",
		FechaVencimiento: "2024-02-15",
		ViviendaIDs:      []string{baja.String()},
	})
	assert.EqualError(t, err, "la vivienda esta dada de baja")
}

func TestGenerarCuotas_MontoDistintoAlBase(t *testing.T) {
	svc, cuotaRepo, conceptoRepo, viviendaRepo := buildCuotaSvc()
	concepto := seedConcepto(conceptoRepo, "500.00", "2.00")
	seedVivienda(viviendaRepo)

	especial := dec("650.00")
	resp, err := svc.GenerarCuotas(context.Background(), dto.GenerarCuotasRequest{
		ConceptoID:       concepto.ID.String(),
		FechaEmision:     "2024-02-01",
		FechaVencimiento: "2024-02-15",
		Monto:            &especial,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Generadas)

	for _, c := range cuotaRepo.cuotas {
		assert.True(t, dec("650.00").Equal(c.Monto), "monto = %s", c.Monto)
	}
}

func TestGenerarCuotas_MontoNegativo(t *testing.T) {
	svc, _, conceptoRepo, viviendaRepo := buildCuotaSvc()
	concepto := seedConcepto(conceptoRepo, "500.00", "2.00")
	seedVivienda(viviendaRepo)

	negativo := dec("-10.00")
	_, err := svc.GenerarCuotas(context.Background(), dto.GenerarCuotasRequest{
		ConceptoID:       concepto.ID.String(),
		FechaEmision:     "2024-02-01",
		FechaVencimiento: "2024-02-15",
		Monto:            &negativo,
	})
	assert.EqualError(t, err, "monto debe ser mayor a cero")
}

// ── Actualizar ───────────────────────────────────────────────────────────────

func TestActualizarCuota_CambiaMontoYNotas(t *testing.T) {
	svc, cuotaRepo, conceptoRepo, viviendaRepo := buildCuotaSvc()
	viviendaID := seedVivienda(viviendaRepo)
	concepto := seedConcepto(conceptoRepo, "500.00", "2.00")

	c := &model.Cuota{
		ID: uuid.New(), ConceptoID: concepto.ID, ViviendaID: viviendaID,
		Monto:        dec("500.00"),
		FechaEmision: fecha("2024-01-01"), FechaVencimiento: fecha("2024-01-15"),
		Recargo: decimal.Zero, Concepto: concepto,
	}
	cuotaRepo.cuotas[c.ID] = c

	nuevoMonto := dec("450.00")
	notas := "Descuento por convenio"
	resp, err := svc.Actualizar(context.Background(), c.ID, dto.ActualizarCuotaRequest{
		Monto: &nuevoMonto,
		Notas: &notas,
	})
	require.NoError(t, err)
	assert.True(t, dec("450.00").Equal(resp.Monto))
	assert.Equal(t, "Descuento por convenio", resp.Notas)
	assert.True(t, dec("450.00").Equal(cuotaRepo.cuotas[c.ID].Monto))
}

func TestActualizarCuota_Pagada(t *testing.T) {
	svc, cuotaRepo, conceptoRepo, viviendaRepo := buildCuotaSvc()
	viviendaID := seedVivienda(viviendaRepo)
	concepto := seedConcepto(conceptoRepo, "500.00", "2.00")

	c := &model.Cuota{
		ID: uuid.New(), ConceptoID: concepto.ID, ViviendaID: viviendaID,
		Monto: dec("500.00"), Pagada: true,
		FechaEmision: fecha("2024-01-01"), FechaVencimiento: fecha("2024-01-15"),
		Concepto: concepto,
	}
	cuotaRepo.cuotas[c.ID] = c

	nuevoMonto := dec("450.00")
	_, err := svc.Actualizar(context.Background(), c.ID, dto.ActualizarCuotaRequest{Monto: &nuevoMonto})
	assert.EqualError(t, err, "la cuota ya esta pagada y no admite cambios")
}

func TestActualizarCuota_VencimientoAnteriorAEmision(t *testing.T) {
	svc, cuotaRepo, conceptoRepo, viviendaRepo := buildCuotaSvc()
	viviendaID := seedVivienda(viviendaRepo)
	concepto := seedConcepto(conceptoRepo, "500.00", "2.00")

	c := &model.Cuota{
		ID: uuid.New(), ConceptoID: concepto.ID, ViviendaID: viviendaID,
		Monto:        dec("500.00"),
		FechaEmision: fecha("2024-02-01"), FechaVencimiento: fecha("2024-02-15"),
		Concepto:     concepto,
	}
	cuotaRepo.cuotas[c.ID] = c

	anterior := "2024-01-15"
	_, err := svc.Actualizar(context.Background(), c.ID, dto.ActualizarCuotaRequest{FechaVencimiento: &anterior})
	assert.EqualError(t, err, "fecha_vencimiento no puede ser anterior a fecha_emision")
}

// ── Barrido de vencidas ──────────────────────────────────────────────────────

func TestProcesarVencidas_ActualizaRecargosDesfasados(t *testing.T) {
	svc, cuotaRepo, conceptoRepo, viviendaRepo := buildCuotaSvc()
	viviendaID := seedVivienda(viviendaRepo)
	concepto := seedConcepto(conceptoRepo, "500.00", "2.00")

	// Recargo almacenado en cero pese a dos meses de atraso
	desfasada := &model.Cuota{
		ID: uuid.New(), ConceptoID: concepto.ID, ViviendaID: viviendaID,
		Monto:        dec("500.00"),
		FechaEmision: fecha("2024-01-01"), FechaVencimiento: fecha("2024-01-15"),
		Recargo: decimal.Zero, Concepto: concepto,
	}
	// Recargo ya al día: el barrido no la cuenta
	alDia := &model.Cuota{
		ID: uuid.New(), ConceptoID: concepto.ID, ViviendaID: viviendaID,
		Monto:        dec("500.00"),
		FechaEmision: fecha("2024-01-01"), FechaVencimiento: fecha("2024-01-15"),
		Recargo: dec("20.00"), Concepto: concepto,
	}
	// Pagada: fuera del barrido
	pagada := &model.Cuota{
		ID: uuid.New(), ConceptoID: concepto.ID, ViviendaID: viviendaID,
		Monto: dec("500.00"), Pagada: true,
		FechaEmision: fecha("2024-01-01"), FechaVencimiento: fecha("2024-01-15"),
		Concepto: concepto,
	}
	cuotaRepo.cuotas[desfasada.ID] = desfasada
	cuotaRepo.cuotas[alDia.ID] = alDia
	cuotaRepo.cuotas[pagada.ID] = pagada

	actualizadas, err := svc.ProcesarVencidas(context.Background(), fecha("2024-03-20"), 100)
	require.NoError(t, err)
	assert.Equal(t, 1, actualizadas)

	// 2% x 2 meses sobre 500.00, persistido en el repositorio
	assert.True(t, dec("20.00").Equal(cuotaRepo.cuotas[desfasada.ID].Recargo),
		"recargo = %s", cuotaRepo.cuotas[desfasada.ID].Recargo)
	assert.True(t, cuotaRepo.cuotas[pagada.ID].Recargo.IsZero())
}

// ── Crear ────────────────────────────────────────────────────────────────────

func TestCrearCuota_MontoCeroUsaMontoBase(t *testing.T) {
	svc, _, conceptoRepo, viviendaRepo := buildCuotaSvc()
	concepto := seedConcepto(conceptoRepo, "750.00", "2.00")
	viviendaID := seedVivienda(viviendaRepo)

	resp, err := svc.Crear(context.Background(), dto.CrearCuotaRequest{
		ConceptoID:       concepto.ID.String(),
		ViviendaID:       viviendaID.String(),
		FechaEmision:     "2024-02-01",
		FechaVencimiento: "2024-02-15",
	})
	require.NoError(t, err)
	assert.True(t, dec("750.00").Equal(resp.Monto))
	assert.False(t, resp.Pagada)
}

func TestCrearCuota_VencimientoAnteriorAEmision(t *testing.T) {
	svc, _, conceptoRepo, viviendaRepo := buildCuotaSvc()
	concepto := seedConcepto(conceptoRepo, "500.00", "2.00")
	viviendaID := seedVivienda(viviendaRepo)

	_, err := svc.Crear(context.Background(), dto.CrearCuotaRequest{
		ConceptoID:       concepto.ID.String(),
		ViviendaID:       viviendaID.String(),
		FechaEmision:     "2024-02-15",
		FechaVencimiento: "2024-02-01",
	})
	assert.EqualError(t, err, "fecha_vencimiento no puede ser anterior a fecha_emision")
}

func TestCrearCuota_ViviendaDadaDeBaja(t *testing.T) {
	svc, _, conceptoRepo, viviendaRepo := buildCuotaSvc()
	concepto := seedConcepto(conceptoRepo, "500.00", "2.00")
	viviendaID := seedVivienda(viviendaRepo)
	viviendaRepo.viviendas[viviendaID].Activo = false

	_, err := svc.Crear(context.Background(), dto.CrearCuotaRequest{
		ConceptoID:       concepto.ID.String(),
		ViviendaID:       viviendaID.String(),
		FechaEmision:     "2024-02-01",
		FechaVencimiento: "2024-02-15",
	})
	assert.EqualError(t, err, "la vivienda esta dada de baja")
}

// ── Deuda ────────────────────────────────────────────────────────────────────

func TestDeudaVivienda_SumaPendientes(t *testing.T) {
	svc, cuotaRepo, conceptoRepo, viviendaRepo := buildCuotaSvc()
	concepto := seedConcepto(conceptoRepo, "500.00", "2.00")
	viviendaID := seedVivienda(viviendaRepo)

	pendiente := &model.Cuota{
		ID: uuid.New(), ConceptoID: concepto.ID, ViviendaID: viviendaID,
		Monto: dec("500.00"), Recargo: dec("20.00"),
		FechaEmision: fecha("2024-01-01"), FechaVencimiento: fecha("2024-01-15"),
		Concepto: concepto,
	}
	pagada := &model.Cuota{
		ID: uuid.New(), ConceptoID: concepto.ID, ViviendaID: viviendaID,
		Monto: dec("500.00"), Pagada: true,
		FechaEmision: fecha("2023-12-01"), FechaVencimiento: fecha("2023-12-15"),
		Concepto: concepto,
	}
	cuotaRepo.cuotas[pendiente.ID] = pendiente
	cuotaRepo.cuotas[pagada.ID] = pagada

	resp, err := svc.DeudaVivienda(context.Background(), viviendaID, fecha("2024-03-20"))
	require.NoError(t, err)
	assert.True(t, dec("500.00").Equal(resp.TotalPendiente))
	assert.True(t, dec("20.00").Equal(resp.TotalRecargos))
	require.Len(t, resp.Cuotas, 1)
	assert.True(t, resp.Cuotas[0].Vencida)
}
