package router

import (
	"time"

	"github.com/Nikise23/optica-mia/internal/config"
	"github.com/Nikise23/optica-mia/internal/handler"
	"github.com/Nikise23/optica-mia/internal/infra"
	"github.com/Nikise23/optica-mia/internal/middleware"
	"github.com/Nikise23/optica-mia/internal/repository"
	"github.com/Nikise23/optica-mia/internal/service"
	"github.com/Nikise23/optica-mia/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb and dispatcher may be nil when Redis is not configured; the report
// cache and the close-report emails degrade to no-ops.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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
	cache := infra.NewReporteCache(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	pacienteRepo := repository.NewPacienteRepository(db)
	medicoRepo := repository.NewMedicoRepository(db)
	recetaRepo := repository.NewRecetaRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	gastoRepo := repository.NewGastoRepository(db)
	cajaRepo := repository.NewCajaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	productoSvc := service.NewProductoService(productoRepo)
	pacienteSvc := service.NewPacienteService(pacienteRepo)
	medicoSvc := service.NewMedicoService(medicoRepo)
	cajaSvc := service.NewCajaService(cajaRepo, pagoRepo, gastoRepo, dispatcher, cache, cfg.PDFStoragePath, cfg.ReporteEmail)
	recetaSvc := service.NewRecetaService(recetaRepo, pagoRepo, pacienteRepo, medicoRepo, productoRepo)
	pagoSvc := service.NewPagoService(pagoRepo, recetaRepo, cajaSvc, cache)
	gastoSvc := service.NewGastoService(gastoRepo, cajaSvc, cache)
	comisionSvc := service.NewComisionService(medicoRepo, pagoRepo)
	reporteSvc := service.NewReporteService(pagoRepo, gastoRepo, recetaRepo, productoRepo, cajaSvc, comisionSvc, cache)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productosH := handler.NewProductosHandler(productoSvc)
	pacientesH := handler.NewPacientesHandler(pacienteSvc)
	medicosH := handler.NewMedicosHandler(medicoSvc)
	recetasH := handler.NewRecetasHandler(recetaSvc)
	pagosH := handler.NewPagosHandler(pagoSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc, comisionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		recetas := v1.Group("/recetas")
		{
			recetas.POST("", recetasH.Crear)
			recetas.GET("", recetasH.Listar)
			recetas.GET("/:id", recetasH.Obtener)
			recetas.PUT("/:id", recetasH.Actualizar)
			recetas.DELETE("/:id", recetasH.Eliminar)
			recetas.POST("/:id/pagos", pagosH.Registrar)
			recetas.GET("/:id/pagos", pagosH.EstadoCuenta)
		}

		v1.DELETE("/pagos/:id", pagosH.Eliminar)

		caja := v1.Group("/caja")
		{
			caja.GET("/:fecha", cajaH.Obtener)
			caja.POST("/:fecha/cerrar", cajaH.Cerrar)
			caja.POST("/:fecha/reabrir", cajaH.Reabrir)
		}

		gastos := v1.Group("/gastos")
		{
			gastos.POST("", gastosH.Crear)
			gastos.GET("", gastosH.Listar)
			gastos.DELETE("/:id", gastosH.Eliminar)
		}

		v1.GET("/comisiones", reportesH.Comisiones)

		reportes := v1.Group("/reportes")
		{
			reportes.GET("/diario/:fecha", reportesH.Diario)
			reportes.GET("/diario/:fecha/export", reportesH.ExportarDiario)
			reportes.GET("/mensual/:anio/:mes", reportesH.Mensual)
		}

		v1.GET("/dashboard", reportesH.Dashboard)

		productos := v1.Group("/productos")
		{
			productos.POST("", productosH.Crear)
			productos.GET("", productosH.Listar)
			productos.GET("/bajo-stock", productosH.BajoStock)
			productos.GET("/:id", productosH.Obtener)
			productos.PUT("/:id", productosH.Actualizar)
			productos.DELETE("/:id", productosH.Eliminar)
			productos.PATCH("/:id/stock", productosH.AjustarStock)
		}

		pacientes := v1.Group("/pacientes")
		{
			pacientes.POST("", pacientesH.Crear)
			pacientes.GET("", pacientesH.Listar)
			pacientes.GET("/:id", pacientesH.Obtener)
			pacientes.PUT("/:id", pacientesH.Actualizar)
			pacientes.DELETE("/:id", pacientesH.Eliminar)
		}

		medicos := v1.Group("/medicos")
		{
			medicos.POST("", medicosH.Crear)
			medicos.GET("", medicosH.Listar)
			medicos.GET("/:id", medicosH.Obtener)
			medicos.PUT("/:id", medicosH.Actualizar)
			medicos.DELETE("/:id", medicosH.Eliminar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
