package router

import (
	"time"

	"github.com/fermanzolido/autitos/internal/config"
	"github.com/fermanzolido/autitos/internal/handler"
	"github.com/fermanzolido/autitos/internal/middleware"
	"github.com/fermanzolido/autitos/internal/model"
	"github.com/fermanzolido/autitos/internal/repository"
	"github.com/fermanzolido/autitos/internal/service"
	"github.com/fermanzolido/autitos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
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

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	vehiculoRepo := repository.NewVehiculoRepository(db)
	concesionarioRepo := repository.NewConcesionarioRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	facturaRepo := repository.NewFacturaRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	previsionRepo := repository.NewPrevisionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	vehiculoSvc := service.NewVehiculoService(vehiculoRepo, concesionarioRepo, facturaRepo, dispatcher)
	pedidoSvc := service.NewPedidoService(pedidoRepo, vehiculoRepo)
	ventaSvc := service.NewVentaService(ventaRepo, vehiculoRepo, clienteRepo)
	facturaSvc := service.NewFacturaService(facturaRepo, concesionarioRepo)
	concesionarioSvc := service.NewConcesionarioService(concesionarioRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	previsionSvc := service.NewPrevisionService(previsionRepo)
	dashboardSvc := service.NewDashboardService(vehiculoRepo, ventaRepo, concesionarioRepo, rdb,
		time.Duration(cfg.StatsCacheSeconds)*time.Second)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	vehiculosH := handler.NewVehiculosHandler(vehiculoSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	facturasH := handler.NewFacturasHandler(facturaSvc)
	concesionariosH := handler.NewConcesionariosHandler(concesionarioSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	previsionesH := handler.NewPrevisionesHandler(previsionSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes. Permission table per operation; dealer-scoped
	// routes additionally require the concesionario_id claim.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	conScope := middleware.RequireConcesionario()
	v1 := r.Group("/v1", jwtMW)
	{
		vehiculos := v1.Group("/vehiculos")
		{
			vehiculos.POST("", middleware.RequireRol(model.RolAdmin, model.RolFactory), vehiculosH.Crear)
			vehiculos.PUT("/:id", middleware.RequireRol(model.RolAdmin, model.RolFactory), vehiculosH.Actualizar)
			vehiculos.DELETE("/:id", middleware.RequireRol(model.RolAdmin), vehiculosH.Eliminar)
			vehiculos.POST("/:id/asignar", middleware.RequireRol(model.RolAdmin, model.RolFactory), vehiculosH.Asignar)
			vehiculos.POST("/:id/confirmar", middleware.RequireRol(model.RolDealer), conScope, vehiculosH.ConfirmarPedido)
			vehiculos.POST("/:id/recibir", middleware.RequireRol(model.RolDealer), conScope, vehiculosH.Recibir)
			vehiculos.GET("", conScope, vehiculosH.Listar)
			vehiculos.GET("/:id", conScope, vehiculosH.Obtener)
		}

		pedidos := v1.Group("/pedidos-fabrica")
		{
			pedidos.POST("", middleware.RequireRol(model.RolDealer), conScope, pedidosH.Crear)
			pedidos.POST("/:id/emparejar", middleware.RequireRol(model.RolAdmin, model.RolFactory), pedidosH.Emparejar)
			pedidos.GET("", conScope, pedidosH.Listar)
		}

		ventas := v1.Group("/ventas")
		{
			ventas.POST("", middleware.RequireRol(model.RolAdmin, model.RolDealer), conScope, ventasH.Registrar)
			ventas.GET("", conScope, ventasH.Listar)
		}

		facturas := v1.Group("/facturas")
		{
			facturas.POST("/:id/pagar", middleware.RequireRol(model.RolAdmin, model.RolFactory), facturasH.MarcarPagada)
			facturas.GET("", conScope, facturasH.Listar)
			facturas.GET("/:id/pdf", conScope, facturasH.DescargarPDF)
		}

		concesionarios := v1.Group("/concesionarios")
		{
			concesionarios.POST("", middleware.RequireRol(model.RolAdmin), concesionariosH.Crear)
			concesionarios.PUT("/:id", middleware.RequireRol(model.RolAdmin), concesionariosH.Actualizar)
			concesionarios.DELETE("/:id", middleware.RequireRol(model.RolAdmin), concesionariosH.Eliminar)
			concesionarios.GET("", concesionariosH.Listar)
			concesionarios.GET("/:id", concesionariosH.Obtener)
		}

		clientes := v1.Group("/clientes")
		{
			clientes.POST("", middleware.RequireRol(model.RolAdmin, model.RolDealer), clientesH.Crear)
			clientes.PUT("/:id", middleware.RequireRol(model.RolAdmin, model.RolDealer), clientesH.Actualizar)
			clientes.DELETE("/:id", middleware.RequireRol(model.RolAdmin), clientesH.Eliminar)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.GET("/:id/interacciones", clientesH.ListarInteracciones)
		}

		interacciones := v1.Group("/interacciones")
		{
			interacciones.POST("", middleware.RequireRol(model.RolAdmin, model.RolDealer), clientesH.CrearInteraccion)
			interacciones.POST("/:id/completar", middleware.RequireRol(model.RolAdmin, model.RolDealer), clientesH.CompletarSeguimiento)
		}

		previsiones := v1.Group("/previsiones")
		{
			previsiones.POST("", middleware.RequireRol(model.RolAdmin, model.RolFactory), previsionesH.Crear)
			previsiones.GET("", previsionesH.Listar)
		}

		v1.GET("/dashboard/stats", conScope, dashboardH.Stats)

		usuarios := v1.Group("/usuarios", middleware.RequireRol(model.RolAdmin))
		{
			usuarios.POST("", authH.CrearUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
