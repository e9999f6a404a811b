package service_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"torresegura/internal/model"
	"torresegura/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubCuotaRepo is an in-memory CuotaRepository for testing.
type stubCuotaRepo struct {
	cuotas map[uuid.UUID]*model.Cuota
}

func newStubCuotaRepo() *stubCuotaRepo {
	return &stubCuotaRepo{cuotas: make(map[uuid.UUID]*model.Cuota)}
}

func (r *stubCuotaRepo) DB() *gorm.DB { return nil }

func (r *stubCuotaRepo) Create(_ context.Context, c *model.Cuota) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cuotas[c.ID] = c
	return nil
}

func (r *stubCuotaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cuota, error) {
	c, ok := r.cuotas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCuotaRepo) FindByIDForUpdate(_ *gorm.DB, id uuid.UUID) (*model.Cuota, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubCuotaRepo) Update(_ context.Context, c *model.Cuota) error {
	r.cuotas[c.ID] = c
	return nil
}

func (r *stubCuotaRepo) UpdateTx(_ *gorm.DB, c *model.Cuota) error {
	r.cuotas[c.ID] = c
	return nil
}

func (r *stubCuotaRepo) List(_ context.Context, f repository.CuotaFilter) ([]model.Cuota, int64, error) {
	var out []model.Cuota
	for _, c := range r.cuotas {
		if f.ViviendaID != nil && c.ViviendaID != *f.ViviendaID {
			continue
		}
		if f.ConceptoID != nil && c.ConceptoID != *f.ConceptoID {
			continue
		}
		if f.Pagada != nil && c.Pagada != *f.Pagada {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCuotaRepo) Exists(_ context.Context, conceptoID, viviendaID uuid.UUID, fechaEmision time.Time) (bool, error) {
	for _, c := range r.cuotas {
		if c.ConceptoID == conceptoID && c.ViviendaID == viviendaID && c.FechaEmision.Equal(fechaEmision) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCuotaRepo) ListPendientesByVivienda(_ context.Context, viviendaID uuid.UUID) ([]model.Cuota, error) {
	var out []model.Cuota
	for _, c := range r.cuotas {
		if c.ViviendaID == viviendaID && !c.Pagada {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FechaVencimiento.Before(out[j].FechaVencimiento)
	})
	return out, nil
}

func (r *stubCuotaRepo) ListVencidas(_ context.Context, hoy time.Time, limit int) ([]model.Cuota, error) {
	var out []model.Cuota
	for _, c := range r.cuotas {
		if c.Vencida(hoy) {
			out = append(out, *c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubCuotaRepo) ListByViviendaPeriodo(_ context.Context, viviendaID uuid.UUID, desde, hasta time.Time) ([]model.Cuota, error) {
	var out []model.Cuota
	for _, c := range r.cuotas {
		if c.ViviendaID != viviendaID {
			continue
		}
		if c.FechaEmision.Before(desde) || c.FechaEmision.After(hasta) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

var _ repository.CuotaRepository = (*stubCuotaRepo)(nil)

// stubConceptoRepo is an in-memory ConceptoRepository.
type stubConceptoRepo struct {
	conceptos map[uuid.UUID]*model.ConceptoCuota
	numCuotas map[uuid.UUID]int64
}

func newStubConceptoRepo() *stubConceptoRepo {
	return &stubConceptoRepo{
		conceptos: make(map[uuid.UUID]*model.ConceptoCuota),
		numCuotas: make(map[uuid.UUID]int64),
	}
}

func (r *stubConceptoRepo) Create(_ context.Context, c *model.ConceptoCuota) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.conceptos[c.ID] = c
	return nil
}

func (r *stubConceptoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ConceptoCuota, error) {
	c, ok := r.conceptos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubConceptoRepo) List(_ context.Context, incluirInactivos bool) ([]model.ConceptoCuota, error) {
	var out []model.ConceptoCuota
	for _, c := range r.conceptos {
		if !incluirInactivos && !c.Activo {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubConceptoRepo) Update(_ context.Context, c *model.ConceptoCuota) error {
	r.conceptos[c.ID] = c
	return nil
}

func (r *stubConceptoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.conceptos, id)
	return nil
}

func (r *stubConceptoRepo) CountCuotas(_ context.Context, id uuid.UUID) (int64, error) {
	return r.numCuotas[id], nil
}

var _ repository.ConceptoRepository = (*stubConceptoRepo)(nil)

// stubViviendaRepo is an in-memory ViviendaRepository.
type stubViviendaRepo struct {
	edificios  map[uuid.UUID]*model.Edificio
	viviendas  map[uuid.UUID]*model.Vivienda
	residentes map[uuid.UUID]*model.Residente
}

func newStubViviendaRepo() *stubViviendaRepo {
	return &stubViviendaRepo{
		edificios:  make(map[uuid.UUID]*model.Edificio),
		viviendas:  make(map[uuid.UUID]*model.Vivienda),
		residentes: make(map[uuid.UUID]*model.Residente),
	}
}

func (r *stubViviendaRepo) CreateEdificio(_ context.Context, e *model.Edificio) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.edificios[e.ID] = e
	return nil
}

func (r *stubViviendaRepo) FindEdificioByID(_ context.Context, id uuid.UUID) (*model.Edificio, error) {
	e, ok := r.edificios[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return e, nil
}

func (r *stubViviendaRepo) ListEdificios(_ context.Context) ([]model.Edificio, error) {
	var out []model.Edificio
	for _, e := range r.edificios {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubViviendaRepo) UpdateEdificio(_ context.Context, e *model.Edificio) error {
	r.edificios[e.ID] = e
	return nil
}

func (r *stubViviendaRepo) DeleteEdificio(_ context.Context, id uuid.UUID) error {
	delete(r.edificios, id)
	return nil
}

func (r *stubViviendaRepo) Create(_ context.Context, v *model.Vivienda) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.viviendas[v.ID] = v
	return nil
}

func (r *stubViviendaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Vivienda, error) {
	v, ok := r.viviendas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (r *stubViviendaRepo) List(_ context.Context, soloActivas bool) ([]model.Vivienda, error) {
	var out []model.Vivienda
	for _, v := range r.viviendas {
		if soloActivas && !v.Activo {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubViviendaRepo) ListActivasIDs(_ context.Context) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, v := range r.viviendas {
		if v.Activo {
			out = append(out, v.ID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

func (r *stubViviendaRepo) Update(_ context.Context, v *model.Vivienda) error {
	r.viviendas[v.ID] = v
	return nil
}

func (r *stubViviendaRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	v, ok := r.viviendas[id]
	if !ok {
		return errors.New("not found")
	}
	v.Estado = estado
	return nil
}

func (r *stubViviendaRepo) CreateResidente(_ context.Context, res *model.Residente) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	r.residentes[res.ID] = res
	return nil
}

func (r *stubViviendaRepo) FindResidenteByID(_ context.Context, id uuid.UUID) (*model.Residente, error) {
	res, ok := r.residentes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return res, nil
}

func (r *stubViviendaRepo) FindResidenteByUsuario(_ context.Context, usuarioID uuid.UUID) (*model.Residente, error) {
	for _, res := range r.residentes {
		if res.UsuarioID == usuarioID {
			return res, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubViviendaRepo) ListResidentesByVivienda(_ context.Context, viviendaID uuid.UUID, soloActivos bool) ([]model.Residente, error) {
	var out []model.Residente
	for _, res := range r.residentes {
		if viviendaID != uuid.Nil && (res.ViviendaID == nil || *res.ViviendaID != viviendaID) {
			continue
		}
		if soloActivos && !res.Activo {
			continue
		}
		out = append(out, *res)
	}
	return out, nil
}

func (r *stubViviendaRepo) UpdateResidente(_ context.Context, res *model.Residente) error {
	r.residentes[res.ID] = res
	return nil
}

func (r *stubViviendaRepo) DeleteResidente(_ context.Context, id uuid.UUID) error {
	delete(r.residentes, id)
	return nil
}

var _ repository.ViviendaRepository = (*stubViviendaRepo)(nil)

// stubPagoRepo is an in-memory PagoRepository.
type stubPagoRepo struct {
	pagos        map[uuid.UUID]*model.Pago
	asignaciones map[uuid.UUID]*model.PagoCuota
}

func newStubPagoRepo() *stubPagoRepo {
	return &stubPagoRepo{
		pagos:        make(map[uuid.UUID]*model.Pago),
		asignaciones: make(map[uuid.UUID]*model.PagoCuota),
	}
}

func (r *stubPagoRepo) DB() *gorm.DB { return nil }

func (r *stubPagoRepo) Create(_ context.Context, p *model.Pago) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pagos[p.ID] = p
	return nil
}

func (r *stubPagoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pago, error) {
	p, ok := r.pagos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	p.Asignaciones = nil
	for _, pc := range r.asignaciones {
		if pc.PagoID == id {
			p.Asignaciones = append(p.Asignaciones, *pc)
		}
	}
	return p, nil
}

func (r *stubPagoRepo) Update(_ context.Context, p *model.Pago) error {
	r.pagos[p.ID] = p
	return nil
}

func (r *stubPagoRepo) UpdateTx(_ *gorm.DB, p *model.Pago) error {
	r.pagos[p.ID] = p
	return nil
}

func (r *stubPagoRepo) List(_ context.Context, f repository.PagoFilter) ([]model.Pago, int64, error) {
	var out []model.Pago
	for _, p := range r.pagos {
		if f.ViviendaID != nil && p.ViviendaID != *f.ViviendaID {
			continue
		}
		if f.Estado != "" && p.Estado != f.Estado {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPagoRepo) ListVerificadosPeriodo(_ context.Context, viviendaID uuid.UUID, desde, hasta time.Time) ([]model.Pago, error) {
	var out []model.Pago
	for _, p := range r.pagos {
		if p.ViviendaID != viviendaID || p.Estado != model.PagoVerificado {
			continue
		}
		if p.FechaPago.Before(desde) || p.FechaPago.After(hasta) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPagoRepo) CreateAsignacionTx(_ *gorm.DB, pc *model.PagoCuota) error {
	if pc.ID == uuid.Nil {
		pc.ID = uuid.New()
	}
	r.asignaciones[pc.ID] = pc
	return nil
}

func (r *stubPagoRepo) FindAsignacion(_ context.Context, pagoID, cuotaID uuid.UUID) (*model.PagoCuota, error) {
	for _, pc := range r.asignaciones {
		if pc.PagoID == pagoID && pc.CuotaID == cuotaID {
			return pc, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubPagoRepo) DeleteAsignacionTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.asignaciones, id)
	return nil
}

func (r *stubPagoRepo) ListAsignacionesByPago(_ context.Context, pagoID uuid.UUID) ([]model.PagoCuota, error) {
	var out []model.PagoCuota
	for _, pc := range r.asignaciones {
		if pc.PagoID == pagoID {
			out = append(out, *pc)
		}
	}
	return out, nil
}

var _ repository.PagoRepository = (*stubPagoRepo)(nil)
