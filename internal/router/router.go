package router

import (
	"bodega/internal/auth"
	"bodega/internal/config"
	"bodega/internal/handler"
	"bodega/internal/infra"
	"bodega/internal/middleware"
	"bodega/internal/repository"
	"bodega/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, iaCB *infra.CircuitBreaker) *gin.Engine {
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

	// ── Infrastructure ───────────────────────────────────────────────────────
	ollama := infra.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	historialRepo := repository.NewHistorialPrecioRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, historialRepo, rdb)
	inventarioSvc := service.NewInventarioService(productoRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	iaSvc := service.NewIAService(productoRepo, ollama, iaCB, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	historialH := handler.NewHistorialPreciosHandler(productoSvc)
	iaH := handler.NewConsultaIAHandler(iaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, iaCB))

	// Auth (public)
	r.POST("/v1/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Protected routes — each endpoint declares the capability it requires;
	// the authorization check runs before the handler ever touches storage.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/inventario", middleware.RequireOperation(auth.OpInventarioLeer), inventarioH.Listar)

		v1.GET("/proveedores", middleware.RequireOperation(auth.OpProveedoresListar), proveedoresH.Listar)
		v1.POST("/proveedores", middleware.RequireOperation(auth.OpProductoCrear), proveedoresH.Crear)
		v1.DELETE("/proveedores/:id", middleware.RequireOperation(auth.OpProductoEliminar), proveedoresH.Eliminar)

		prods := v1.Group("/productos")
		{
			prods.POST("", middleware.RequireOperation(auth.OpProductoCrear), productosH.Crear)
			prods.PATCH("/:id/stock", middleware.RequireOperation(auth.OpProductoActualizarStock), productosH.ActualizarStock)
			prods.PATCH("/:id/precio", middleware.RequireOperation(auth.OpProductoActualizarPrecio), productosH.ActualizarPrecio)
			prods.DELETE("/:id", middleware.RequireOperation(auth.OpProductoEliminar), productosH.Eliminar)
			prods.GET("/:id/historial", middleware.RequireOperation(auth.OpHistorialLeer), historialH.ListarPorProducto)
		}

		v1.POST("/ia/consulta", middleware.RequireOperation(auth.OpConsultaIA), iaH.Consultar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
