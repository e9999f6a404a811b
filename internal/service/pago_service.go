package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"torresegura/internal/dto"
	"torresegura/internal/infra"
	"torresegura/internal/model"
	"torresegura/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PagoService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PagoResponse, error)
	Listar(ctx context.Context, filter dto.PagoFilter) (*dto.PagoListResponse, error)
	// Verificar moves a pending payment to verificado and reconciles its
	// allocations against the covered cuotas. When the payment has no manual
	// allocations it is auto-applied to the unit's pending cuotas, oldest
	// due date first.
	Verificar(ctx context.Context, id, verificadorID uuid.UUID) (*dto.PagoResponse, error)
	// Rechazar rejects a payment. If it was already verified, its allocations
	// are reversed and the covered cuotas reopened with recargos recomputed.
	Rechazar(ctx context.Context, id, verificadorID uuid.UUID, motivo string) (*dto.PagoResponse, error)
	AsignarCuota(ctx context.Context, pagoID uuid.UUID, req dto.AsignarCuotaRequest) (*dto.PagoResponse, error)
	EliminarAsignacion(ctx context.Context, pagoID, cuotaID uuid.UUID) error
}

type pagoService struct {
	repo         repository.PagoRepository
	cuotaRepo    repository.CuotaRepository
	viviendaRepo repository.ViviendaRepository
	deudaCache   *infra.DeudaCache
}

func NewPagoService(
	repo repository.PagoRepository,
	cuotaRepo repository.CuotaRepository,
	viviendaRepo repository.ViviendaRepository,
	deudaCache *infra.DeudaCache,
) PagoService {
	return &pagoService{
		repo:         repo,
		cuotaRepo:    cuotaRepo,
		viviendaRepo: viviendaRepo,
		deudaCache:   deudaCache,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Registrar ────────────────────────────────────────────────────────────────

func (s *pagoService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error) {
	viviendaID, err := uuid.Parse(req.ViviendaID)
	if err != nil {
		return nil, fmt.Errorf("vivienda_id invalido: %w", err)
	}
	vivienda, err := s.viviendaRepo.FindByID(ctx, viviendaID)
	if err != nil {
		return nil, errors.New("vivienda no encontrada")
	}
	if !vivienda.Activo {
		return nil, errors.New("la vivienda esta dada de baja")
	}

	if req.Monto.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("el monto debe ser mayor a cero")
	}
	fechaPago, err := time.Parse(fechaLayout, req.FechaPago)
	if err != nil {
		return nil, errors.New("fecha_pago invalida")
	}
	if fechaPago.After(time.Now()) {
		return nil, errors.New("fecha_pago no puede ser futura")
	}
	if (req.Metodo == "transferencia" || req.Metodo == "cheque") && strings.TrimSpace(req.Referencia) == "" {
		return nil, fmt.Errorf("la referencia es obligatoria para pagos por %s", req.Metodo)
	}

	p := &model.Pago{
		ViviendaID:      viviendaID,
		Monto:           req.Monto,
		FechaPago:       fechaPago,
		Metodo:          req.Metodo,
		Referencia:      req.Referencia,
		Estado:          model.PagoPendiente,
		Notas:           req.Notas,
		RegistradoPorID: &usuarioID,
	}
	if residente, err := s.viviendaRepo.FindResidenteByUsuario(ctx, usuarioID); err == nil {
		p.ResidenteID = &residente.ID
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return pagoToResponse(p), nil
}

func (s *pagoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PagoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pago no encontrado")
	}
	return pagoToResponse(p), nil
}

func (s *pagoService) Listar(ctx context.Context, filter dto.PagoFilter) (*dto.PagoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	repoFilter := repository.PagoFilter{
		Estado: filter.Estado,
		Page:   filter.Page,
		Limit:  filter.Limit,
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

	pagos, total, err := s.repo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PagoResponse, len(pagos))
	for i := range pagos {
		data[i] = *pagoToResponse(&pagos[i])
	}
	return &dto.PagoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Verificar ────────────────────────────────────────────────────────────────

func (s *pagoService) Verificar(ctx context.Context, id, verificadorID uuid.UUID) (*dto.PagoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pago no encontrado")
	}
	if p.Estado != model.PagoPendiente {
		return nil, fmt.Errorf("el pago esta %s y no puede verificarse", p.Estado)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// No manual allocations: auto-apply to the unit's pending cuotas,
		// oldest due date first, until the payment runs out.
		if len(p.Asignaciones) == 0 {
			pendientes, err := s.cuotaRepo.ListPendientesByVivienda(ctx, p.ViviendaID)
			if err != nil {
				return err
			}
			restante := p.Monto
			for i := range pendientes {
				if restante.LessThanOrEqual(decimal.Zero) {
					break
				}
				c := &pendientes[i]
				aplicar := c.TotalAPagar()
				if restante.LessThan(aplicar) {
					aplicar = restante
				}
				pc := &model.PagoCuota{
					PagoID:        p.ID,
					CuotaID:       c.ID,
					MontoAplicado: aplicar,
				}
				if err := s.repo.CreateAsignacionTx(tx, pc); err != nil {
					return err
				}
				p.Asignaciones = append(p.Asignaciones, *pc)
				restante = restante.Sub(aplicar)
			}
		}

		// Reconcile each allocated cuota under a row lock
		for _, pc := range p.Asignaciones {
			if err := s.conciliarCuotaTx(tx, pc.CuotaID, pc.MontoAplicado); err != nil {
				return err
			}
		}

		ahora := time.Now()
		p.Estado = model.PagoVerificado
		p.VerificadoPorID = &verificadorID
		p.FechaVerificacion = &ahora
		return s.repo.UpdateTx(tx, p)
	})
	if txErr != nil {
		return nil, txErr
	}
	s.deudaCache.Invalidate(ctx, p.ViviendaID)
	return pagoToResponse(p), nil
}

// conciliarCuotaTx applies montoAplicado to the cuota. Full coverage marks it
// pagada and clears the recargo; a partial payment reduces the outstanding
// principal in place.
func (s *pagoService) conciliarCuotaTx(tx *gorm.DB, cuotaID uuid.UUID, montoAplicado decimal.Decimal) error {
	c, err := s.cuotaRepo.FindByIDForUpdate(tx, cuotaID)
	if err != nil {
		return fmt.Errorf("cuota %s no encontrada", cuotaID)
	}
	if c.Pagada {
		return fmt.Errorf("la cuota %s ya esta pagada", cuotaID)
	}

	if montoAplicado.GreaterThanOrEqual(c.TotalAPagar()) {
		c.Pagada = true
		c.Recargo = decimal.Zero
	} else {
		// Partial payments reduce the outstanding principal in place;
		// the recargo keeps accruing on the reduced principal.
		c.Monto = c.Monto.Sub(montoAplicado)
	}
	return s.cuotaRepo.UpdateTx(tx, c)
}

// ── Rechazar ─────────────────────────────────────────────────────────────────

func (s *pagoService) Rechazar(ctx context.Context, id, verificadorID uuid.UUID, motivo string) (*dto.PagoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pago no encontrado")
	}
	if p.Estado == model.PagoRechazado {
		return nil, errors.New("el pago ya esta rechazado")
	}

	eraVerificado := p.Estado == model.PagoVerificado
	hoy := time.Now()

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if eraVerificado {
			// Reverse the reconciliation: reopen each covered cuota,
			// restore its principal and recompute the recargo at today.
			for _, pc := range p.Asignaciones {
				c, err := s.cuotaRepo.FindByIDForUpdate(tx, pc.CuotaID)
				if err != nil {
					return err
				}
				if c.Pagada {
					c.Pagada = false
				} else {
					c.Monto = c.Monto.Add(pc.MontoAplicado)
				}
				c.Recargo = c.CalcularRecargo(hoy)
				if err := s.cuotaRepo.UpdateTx(tx, c); err != nil {
					return err
				}
			}
		}

		p.Estado = model.PagoRechazado
		p.VerificadoPorID = &verificadorID
		p.FechaVerificacion = &hoy
		if p.Notas != "" {
			p.Notas += "\n"
		}
		p.Notas += "Rechazado: " + motivo
		return s.repo.UpdateTx(tx, p)
	})
	if txErr != nil {
		return nil, txErr
	}
	if eraVerificado {
		s.deudaCache.Invalidate(ctx, p.ViviendaID)
	}
	return pagoToResponse(p), nil
}

// ── Asignaciones manuales ────────────────────────────────────────────────────

func (s *pagoService) AsignarCuota(ctx context.Context, pagoID uuid.UUID, req dto.AsignarCuotaRequest) (*dto.PagoResponse, error) {
	cuotaID, err := uuid.Parse(req.CuotaID)
	if err != nil {
		return nil, fmt.Errorf("cuota_id invalido: %w", err)
	}
	if req.MontoAplicado.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("monto_aplicado debe ser mayor a cero")
	}

	p, err := s.repo.FindByID(ctx, pagoID)
	if err != nil {
		return nil, errors.New("pago no encontrado")
	}
	if p.Estado == model.PagoRechazado {
		return nil, errors.New("no pueden asignarse cuotas a un pago rechazado")
	}

	// A payment allocates to a cuota at most once
	for _, pc := range p.Asignaciones {
		if pc.CuotaID == cuotaID {
			return nil, errors.New("el pago ya tiene una asignacion para esa cuota")
		}
	}

	// Sum of allocations may not exceed the payment amount
	asignado := decimal.Zero
	for _, pc := range p.Asignaciones {
		asignado = asignado.Add(pc.MontoAplicado)
	}
	if asignado.Add(req.MontoAplicado).GreaterThan(p.Monto) {
		return nil, errors.New("la suma de asignaciones excede el monto del pago")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.cuotaRepo.FindByIDForUpdate(tx, cuotaID)
		if err != nil {
			return errors.New("cuota no encontrada")
		}
		if c.Pagada {
			return errors.New("la cuota ya esta pagada")
		}
		if c.ViviendaID != p.ViviendaID {
			return errors.New("la cuota pertenece a otra vivienda")
		}
		if req.MontoAplicado.GreaterThan(c.TotalAPagar()) {
			return errors.New("monto_aplicado excede el total pendiente de la cuota")
		}
		pc := &model.PagoCuota{
			PagoID:        p.ID,
			CuotaID:       cuotaID,
			MontoAplicado: req.MontoAplicado,
		}
		if err := s.repo.CreateAsignacionTx(tx, pc); err != nil {
			return err
		}
		p.Asignaciones = append(p.Asignaciones, *pc)

		// Allocations on a pending payment take effect only at verification
		if p.Estado == model.PagoVerificado {
			return s.conciliarCuotaTx(tx, cuotaID, req.MontoAplicado)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	if p.Estado == model.PagoVerificado {
		s.deudaCache.Invalidate(ctx, p.ViviendaID)
	}
	return pagoToResponse(p), nil
}

// EliminarAsignacion removes one allocation. When the payment was already
// verified, the covered cuota is reopened: its principal is restored and the
// recargo recomputed at today.
func (s *pagoService) EliminarAsignacion(ctx context.Context, pagoID, cuotaID uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, pagoID)
	if err != nil {
		return errors.New("pago no encontrado")
	}
	if p.Estado == model.PagoRechazado {
		return errors.New("el pago esta rechazado")
	}
	pc, err := s.repo.FindAsignacion(ctx, pagoID, cuotaID)
	if err != nil {
		return errors.New("asignacion no encontrada")
	}

	hoy := time.Now()
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if p.Estado == model.PagoVerificado {
			c, err := s.cuotaRepo.FindByIDForUpdate(tx, cuotaID)
			if err != nil {
				return err
			}
			if c.Pagada {
				c.Pagada = false
			} else {
				c.Monto = c.Monto.Add(pc.MontoAplicado)
			}
			c.Recargo = c.CalcularRecargo(hoy)
			if err := s.cuotaRepo.UpdateTx(tx, c); err != nil {
				return err
			}
		}
		return s.repo.DeleteAsignacionTx(tx, pc.ID)
	})
	if err != nil {
		return err
	}
	if p.Estado == model.PagoVerificado {
		s.deudaCache.Invalidate(ctx, p.ViviendaID)
	}
	return nil
}

// ── Mappers ──────────────────────────────────────────────────────────────────

func pagoToResponse(p *model.Pago) *dto.PagoResponse {
	asignaciones := make([]dto.AsignacionPagoResponse, 0, len(p.Asignaciones))
	for _, pc := range p.Asignaciones {
		a := dto.AsignacionPagoResponse{
			ID:            pc.ID.String(),
			CuotaID:       pc.CuotaID.String(),
			MontoAplicado: pc.MontoAplicado,
		}
		if pc.Cuota != nil && pc.Cuota.Concepto != nil {
			a.Concepto = pc.Cuota.Concepto.Nombre
		}
		asignaciones = append(asignaciones, a)
	}
	resp := &dto.PagoResponse{
		ID:           p.ID.String(),
		ViviendaID:   p.ViviendaID.String(),
		Monto:        p.Monto,
		FechaPago:    p.FechaPago.Format(fechaLayout),
		Metodo:       p.Metodo,
		Referencia:   p.Referencia,
		Estado:       p.Estado,
		Notas:        p.Notas,
		Asignaciones: asignaciones,
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if p.FechaVerificacion != nil {
		f := p.FechaVerificacion.Format("2006-01-02T15:04:05Z")
		resp.FechaVerificacion = &f
	}
	return resp
}
