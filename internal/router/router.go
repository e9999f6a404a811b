package router

import (
	"time"

	"torresegura/internal/config"
	"torresegura/internal/handler"
	"torresegura/internal/infra"
	"torresegura/internal/middleware"
	"torresegura/internal/repository"
	"torresegura/internal/service"
	"torresegura/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	firmador := infra.NewQRFirmador(cfg.QRSecretKey)
	deudaCache := infra.NewDeudaCache(rdb)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	viviendaRepo := repository.NewViviendaRepository(db)
	conceptoRepo := repository.NewConceptoRepository(db)
	cuotaRepo := repository.NewCuotaRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	gastoRepo := repository.NewGastoRepository(db)
	estadoCuentaRepo := repository.NewEstadoCuentaRepository(db)
	visitaRepo := repository.NewVisitaRepository(db)
	personalRepo := repository.NewPersonalRepository(db)
	alertaRepo := repository.NewAlertaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	viviendaSvc := service.NewViviendaService(viviendaRepo, usuarioRepo)
	conceptoSvc := service.NewConceptoService(conceptoRepo)
	cuotaSvc := service.NewCuotaService(cuotaRepo, conceptoRepo, viviendaRepo, deudaCache)
	pagoSvc := service.NewPagoService(pagoRepo, cuotaRepo, viviendaRepo, deudaCache)
	gastoSvc := service.NewGastoService(gastoRepo)
	estadoCuentaSvc := service.NewEstadoCuentaService(estadoCuentaRepo, cuotaRepo, pagoRepo, viviendaRepo, dispatcher)
	accesoSvc := service.NewAccesoService(visitaRepo, viviendaRepo, firmador)
	personalSvc := service.NewPersonalService(personalRepo, usuarioRepo, viviendaRepo)
	alertaSvc := service.NewAlertaService(alertaRepo)
	reporteSvc := service.NewReporteService(estadoCuentaRepo, cuotaRepo, pagoRepo, gastoRepo, visitaRepo, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	viviendasH := handler.NewViviendasHandler(viviendaSvc)
	conceptosH := handler.NewConceptosHandler(conceptoSvc)
	cuotasH := handler.NewCuotasHandler(cuotaSvc)
	pagosH := handler.NewPagosHandler(pagoSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	estadosCuentaH := handler.NewEstadosCuentaHandler(estadoCuentaSvc)
	visitasH := handler.NewVisitasHandler(accesoSvc)
	personalH := handler.NewPersonalHandler(personalSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	alertasH := handler.NewAlertasHandler(alertaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole("administrador")
	gestion := middleware.RequireRole("administrador", "gerente")
	caseta := middleware.RequireRole("administrador", "gerente", "seguridad")
	todos := middleware.RequireRole("administrador", "gerente", "seguridad", "residente")

	v1 := r.Group("/v1", jwtMW)
	{
		usuarios := v1.Group("/usuarios", adminOnly)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}

		edificios := v1.Group("/edificios", gestion)
		{
			edificios.POST("", viviendasH.CrearEdificio)
			edificios.GET("", viviendasH.ListarEdificios)
			edificios.PUT("/:id", viviendasH.ActualizarEdificio)
			edificios.DELETE("/:id", adminOnly, viviendasH.EliminarEdificio)
		}

		// Viviendas — la deuda puede consultarla también el residente (app móvil)
		v1.GET("/viviendas/:id/deuda", todos, cuotasH.DeudaVivienda)
		viviendas := v1.Group("/viviendas", gestion)
		{
			viviendas.POST("", viviendasH.CrearVivienda)
			viviendas.GET("", viviendasH.ListarViviendas)
			viviendas.GET("/:id", viviendasH.ObtenerVivienda)
			viviendas.GET("/:id/residentes", viviendasH.ResidentesDeVivienda)
			viviendas.PUT("/:id", viviendasH.ActualizarVivienda)
			viviendas.DELETE("/:id", adminOnly, viviendasH.DarBajaVivienda)
		}

		residentes := v1.Group("/residentes", gestion)
		{
			residentes.POST("", viviendasH.CrearResidente)
			residentes.GET("", viviendasH.ListarResidentes)
			residentes.PUT("/:id", viviendasH.ActualizarResidente)
			residentes.DELETE("/:id", viviendasH.EliminarResidente)
		}

		conceptos := v1.Group("/conceptos", gestion)
		{
			conceptos.POST("", conceptosH.Crear)
			conceptos.GET("", conceptosH.Listar)
			conceptos.GET("/:id", conceptosH.Obtener)
			conceptos.PUT("/:id", conceptosH.Actualizar)
			conceptos.DELETE("/:id", adminOnly, conceptosH.Eliminar)
		}

		cuotas := v1.Group("/cuotas", gestion)
		{
			cuotas.POST("", cuotasH.Crear)
			cuotas.GET("", cuotasH.Listar)
			cuotas.GET("/:id", cuotasH.Obtener)
			cuotas.PUT("/:id", cuotasH.Actualizar)
			// La generación masiva crea deuda para todo el condominio: solo admin
			cuotas.POST("/generar", adminOnly, cuotasH.Generar)
			cuotas.POST("/:id/recargo", cuotasH.ActualizarRecargo)
		}

		// Pagos — el residente reporta su pago desde la app móvil; verificar,
		// rechazar y reasignar quedan reservados al administrador
		pagos := v1.Group("/pagos")
		{
			pagos.POST("", middleware.RequireRole("administrador", "gerente", "residente"), pagosH.Registrar)
			pagos.GET("", gestion, pagosH.Listar)
			pagos.GET("/:id", gestion, pagosH.Obtener)
			pagos.POST("/:id/verificar", adminOnly, pagosH.Verificar)
			pagos.POST("/:id/rechazar", adminOnly, pagosH.Rechazar)
			pagos.POST("/:id/asignaciones", adminOnly, pagosH.AsignarCuota)
			pagos.DELETE("/:id/asignaciones/:cuota_id", adminOnly, pagosH.EliminarAsignacion)
		}

		gastos := v1.Group("/gastos", gestion)
		{
			gastos.POST("/categorias", gastosH.CrearCategoria)
			gastos.GET("/categorias", gastosH.ListarCategorias)
			gastos.PUT("/categorias/:id", gastosH.ActualizarCategoria)
			gastos.DELETE("/categorias/:id", adminOnly, gastosH.EliminarCategoria)
			gastos.GET("/presupuesto", gastosH.EjecucionPresupuestal)

			gastos.POST("", gastosH.Crear)
			gastos.GET("", gastosH.Listar)
			gastos.GET("/:id", gastosH.Obtener)
			gastos.PUT("/:id", gastosH.Actualizar)
			gastos.POST("/:id/pagar", gastosH.MarcarPagado)
			gastos.POST("/:id/cancelar", gastosH.Cancelar)
		}

		estados := v1.Group("/estados-cuenta", gestion)
		{
			estados.POST("", estadosCuentaH.Crear)
			estados.GET("", estadosCuentaH.ListarPorVivienda)
			estados.GET("/:id", estadosCuentaH.Obtener)
			estados.POST("/generar", estadosCuentaH.Generar)
			estados.POST("/:id/recalcular", estadosCuentaH.Recalcular)
			estados.POST("/:id/enviar", estadosCuentaH.Enviar)
		}

		// Visitas — la caseta de seguridad registra y verifica pases
		visitas := v1.Group("/visitas", caseta)
		{
			visitas.POST("", visitasH.Registrar)
			visitas.GET("", visitasH.Historial)
			visitas.GET("/:id", visitasH.Obtener)
			visitas.GET("/:id/qr", visitasH.QR)
			visitas.POST("/verificar", visitasH.VerificarQR)
			visitas.POST("/:id/salida", visitasH.RegistrarSalida)
		}

		movimientos := v1.Group("/movimientos", caseta)
		{
			movimientos.POST("", visitasH.RegistrarMovimiento)
			movimientos.GET("", visitasH.ListarMovimientos)
		}

		// Alertas — cualquier usuario autenticado puede reportar una emergencia;
		// atenderlas es tarea de gestión
		alertas := v1.Group("/alertas")
		{
			alertas.POST("", todos, alertasH.Crear)
			alertas.GET("/mias", todos, alertasH.Mias)
			alertas.GET("", caseta, alertasH.Listar)
			alertas.GET("/:id", caseta, alertasH.Obtener)
			alertas.POST("/:id/estado", gestion, alertasH.CambiarEstado)
		}

		// Personal — las asignaciones propias las consulta cualquier empleado
		v1.GET("/asignaciones/mias", todos, personalH.MisAsignaciones)
		personal := v1.Group("", gestion)
		{
			personal.POST("/puestos", personalH.CrearPuesto)
			personal.GET("/puestos", personalH.ListarPuestos)
			personal.POST("/empleados", personalH.CrearEmpleado)
			personal.GET("/empleados", personalH.ListarEmpleados)
			personal.PUT("/empleados/:id", personalH.ActualizarEmpleado)
			personal.POST("/asignaciones", personalH.CrearAsignacion)
			personal.GET("/asignaciones", personalH.ListarAsignaciones)
			personal.POST("/asignaciones/:id/estado", personalH.CambiarEstado)
		}

		reportes := v1.Group("/reportes", gestion)
		{
			reportes.GET("/estados-cuenta/:id/pdf", reportesH.EstadoCuentaPDF)
			reportes.GET("/estados-cuenta/:id/excel", reportesH.EstadoCuentaExcel)
			reportes.GET("/cuotas/csv", reportesH.CuotasCSV)
			reportes.GET("/pagos/csv", reportesH.PagosCSV)
			reportes.GET("/gastos/csv", reportesH.GastosCSV)
			reportes.GET("/visitas/csv", reportesH.VisitasCSV)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
