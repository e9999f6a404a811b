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
	"github.com/shopspring/decimal"
)

type GastoService interface {
	CrearCategoria(ctx context.Context, req dto.CrearCategoriaGastoRequest) (*dto.CategoriaGastoResponse, error)
	ListarCategorias(ctx context.Context) ([]dto.CategoriaGastoResponse, error)
	ActualizarCategoria(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaGastoRequest) (*dto.CategoriaGastoResponse, error)
	EliminarCategoria(ctx context.Context, id uuid.UUID) error
	// EjecucionPresupuestal reports each category's budget execution for the
	// month containing fecha.
	EjecucionPresupuestal(ctx context.Context, fecha time.Time) ([]dto.CategoriaGastoResponse, error)

	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearGastoRequest) (*dto.GastoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.GastoResponse, error)
	Listar(ctx context.Context, filter dto.GastoFilter) (*dto.GastoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarGastoRequest) (*dto.GastoResponse, error)
	MarcarPagado(ctx context.Context, id, autorizadorID uuid.UUID) (*dto.GastoResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID) (*dto.GastoResponse, error)
}

type gastoService struct {
	repo repository.GastoRepository
}

func NewGastoService(repo repository.GastoRepository) GastoService {
	return &gastoService{repo: repo}
}

// ── Categorías ───────────────────────────────────────────────────────────────

func (s *gastoService) CrearCategoria(ctx context.Context, req dto.CrearCategoriaGastoRequest) (*dto.CategoriaGastoResponse, error) {
	if req.PresupuestoMensual.IsNegative() {
		return nil, errors.New("presupuesto_mensual no puede ser negativo")
	}
	c := &model.CategoriaGasto{
		Nombre:             req.Nombre,
		Descripcion:        req.Descripcion,
		PresupuestoMensual: req.PresupuestoMensual,
		Color:              req.Color,
		Activo:             true,
	}
	if c.Color == "" {
		c.Color = "#3498db"
	}
	if err := s.repo.CreateCategoria(ctx, c); err != nil {
		return nil, err
	}
	return categoriaGastoToResponse(c), nil
}

func (s *gastoService) ListarCategorias(ctx context.Context) ([]dto.CategoriaGastoResponse, error) {
	cats, err := s.repo.ListCategorias(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoriaGastoResponse, len(cats))
	for i := range cats {
		resp[i] = *categoriaGastoToResponse(&cats[i])
	}
	return resp, nil
}

func (s *gastoService) ActualizarCategoria(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaGastoRequest) (*dto.CategoriaGastoResponse, error) {
	c, err := s.repo.FindCategoriaByID(ctx, id)
	if err != nil {
		return nil, errors.New("categoria no encontrada")
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		c.Descripcion = *req.Descripcion
	}
	if req.PresupuestoMensual != nil {
		if req.PresupuestoMensual.IsNegative() {
			return nil, errors.New("presupuesto_mensual no puede ser negativo")
		}
		c.PresupuestoMensual = *req.PresupuestoMensual
	}
	if req.Color != nil {
		c.Color = *req.Color
	}
	if req.Activo != nil {
		c.Activo = *req.Activo
	}
	if err := s.repo.UpdateCategoria(ctx, c); err != nil {
		return nil, err
	}
	return categoriaGastoToResponse(c), nil
}

func (s *gastoService) EliminarCategoria(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindCategoriaByID(ctx, id); err != nil {
		return errors.New("categoria no encontrada")
	}
	n, err := s.repo.CountGastosByCategoria(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errors.New("la categoria tiene gastos registrados y no puede eliminarse")
	}
	return s.repo.DeleteCategoria(ctx, id)
}

func (s *gastoService) EjecucionPresupuestal(ctx context.Context, fecha time.Time) ([]dto.CategoriaGastoResponse, error) {
	inicio := time.Date(fecha.Year(), fecha.Month(), 1, 0, 0, 0, 0, time.UTC)
	fin := inicio.AddDate(0, 1, -1)

	cats, err := s.repo.ListCategorias(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoriaGastoResponse, 0, len(cats))
	cien := decimal.NewFromInt(100)
	for i := range cats {
		c := &cats[i]
		gastado, err := s.repo.SumMontoByCategoriaBetween(ctx, c.ID, inicio, fin)
		if err != nil {
			return nil, err
		}
		item := *categoriaGastoToResponse(c)
		item.GastadoMes = &gastado
		if c.PresupuestoMensual.IsPositive() {
			pct := gastado.Div(c.PresupuestoMensual).Mul(cien).Round(2)
			item.PorcentajeEjecutado = &pct
		}
		resp = append(resp, item)
	}
	return resp, nil
}

// ── Gastos ───────────────────────────────────────────────────────────────────

func (s *gastoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearGastoRequest) (*dto.GastoResponse, error) {
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, fmt.Errorf("categoria_id invalido: %w", err)
	}
	categoria, err := s.repo.FindCategoriaByID(ctx, categoriaID)
	if err != nil {
		return nil, errors.New("categoria no encontrada")
	}
	if !categoria.Activo {
		return nil, errors.New("la categoria esta inactiva")
	}
	if req.Monto.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("el monto debe ser mayor a cero")
	}
	fecha, err := time.Parse(fechaLayout, req.Fecha)
	if err != nil {
		return nil, errors.New("fecha invalida")
	}

	g := &model.Gasto{
		CategoriaID:     categoriaID,
		Concepto:        req.Concepto,
		Descripcion:     req.Descripcion,
		Monto:           req.Monto,
		Fecha:           fecha,
		Proveedor:       req.Proveedor,
		Factura:         req.Factura,
		Estado:          model.GastoPendiente,
		TipoGasto:       req.TipoGasto,
		Recurrente:      req.Recurrente,
		RegistradoPorID: &usuarioID,
		Notas:           req.Notas,
	}
	if g.TipoGasto == "" {
		g.TipoGasto = "ordinario"
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	g.Categoria = categoria
	return gastoToResponse(g), nil
}

func (s *gastoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.GastoResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("gasto no encontrado")
	}
	return gastoToResponse(g), nil
}

func (s *gastoService) Listar(ctx context.Context, filter dto.GastoFilter) (*dto.GastoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	repoFilter := repository.GastoFilter{
		Estado: filter.Estado,
		Tipo:   filter.Tipo,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}
	if filter.CategoriaID != "" {
		cid, err := uuid.Parse(filter.CategoriaID)
		if err != nil {
			return nil, fmt.Errorf("categoria_id invalido: %w", err)
		}
		repoFilter.CategoriaID = &cid
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

	gastos, total, err := s.repo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.GastoResponse, len(gastos))
	for i := range gastos {
		data[i] = *gastoToResponse(&gastos[i])
	}
	return &dto.GastoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *gastoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarGastoRequest) (*dto.GastoResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("gasto no encontrado")
	}
	if g.Estado != model.GastoPendiente {
		return nil, errors.New("solo pueden modificarse gastos pendientes")
	}
	if req.Concepto != nil {
		g.Concepto = *req.Concepto
	}
	if req.Descripcion != nil {
		g.Descripcion = *req.Descripcion
	}
	if req.Monto != nil {
		if req.Monto.LessThanOrEqual(decimal.Zero) {
			return nil, errors.New("el monto debe ser mayor a cero")
		}
		g.Monto = *req.Monto
	}
	if req.Fecha != nil {
		fecha, err := time.Parse(fechaLayout, *req.Fecha)
		if err != nil {
			return nil, errors.New("fecha invalida")
		}
		g.Fecha = fecha
	}
	if req.Proveedor != nil {
		g.Proveedor = *req.Proveedor
	}
	if req.Factura != nil {
		g.Factura = *req.Factura
	}
	if req.Notas != nil {
		g.Notas = *req.Notas
	}
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return gastoToResponse(g), nil
}

func (s *gastoService) MarcarPagado(ctx context.Context, id, autorizadorID uuid.UUID) (*dto.GastoResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("gasto no encontrado")
	}
	if g.Estado != model.GastoPendiente {
		return nil, fmt.Errorf("el gasto esta %s y no puede marcarse pagado", g.Estado)
	}
	ahora := time.Now()
	g.Estado = model.GastoPagado
	g.FechaPago = &ahora
	g.AutorizadoPorID = &autorizadorID
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return gastoToResponse(g), nil
}

func (s *gastoService) Cancelar(ctx context.Context, id uuid.UUID) (*dto.GastoResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("gasto no encontrado")
	}
	if g.Estado == model.GastoPagado {
		return nil, errors.New("un gasto pagado no puede cancelarse")
	}
	if g.Estado == model.GastoCancelado {
		return nil, errors.New("el gasto ya esta cancelado")
	}
	g.Estado = model.GastoCancelado
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return gastoToResponse(g), nil
}

// ── Mappers ──────────────────────────────────────────────────────────────────

func categoriaGastoToResponse(c *model.CategoriaGasto) *dto.CategoriaGastoResponse {
	return &dto.CategoriaGastoResponse{
		ID:                 c.ID.String(),
		Nombre:             c.Nombre,
		Descripcion:        c.Descripcion,
		PresupuestoMensual: c.PresupuestoMensual,
		Color:              c.Color,
		Activo:             c.Activo,
	}
}

func gastoToResponse(g *model.Gasto) *dto.GastoResponse {
	resp := &dto.GastoResponse{
		ID:          g.ID.String(),
		CategoriaID: g.CategoriaID.String(),
		Concepto:    g.Concepto,
		Descripcion: g.Descripcion,
		Monto:       g.Monto,
		Fecha:       g.Fecha.Format(fechaLayout),
		Proveedor:   g.Proveedor,
		Factura:     g.Factura,
		Estado:      g.Estado,
		TipoGasto:   g.TipoGasto,
		Recurrente:  g.Recurrente,
		Notas:       g.Notas,
	}
	if g.Categoria != nil {
		resp.Categoria = g.Categoria.Nombre
	}
	if g.FechaPago != nil {
		f := g.FechaPago.Format(fechaLayout)
		resp.FechaPago = &f
	}
	return resp
}
