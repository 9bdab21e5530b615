package service

import (
	"context"

	"bodega/internal/dto"
	"bodega/internal/model"
	"bodega/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// iaContextoCacheKey is the Redis key holding the cached AI-context
// projection. Every product write invalidates it.
const iaContextoCacheKey = "ia:contexto"

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ActualizarStock(ctx context.Context, id uint, req dto.ActualizarStockRequest) (*dto.ProductoResponse, error)
	ActualizarPrecio(ctx context.Context, id uint, req dto.ActualizarPrecioRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uint) error
	Historial(ctx context.Context, id uint) (*dto.HistorialPrecioListResponse, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	historialRepo repository.HistorialPrecioRepository
	rdb           *redis.Client
}

func NewProductoService(repo repository.ProductoRepository, historialRepo repository.HistorialPrecioRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, historialRepo: historialRepo, rdb: rdb}
}

// Crear inserts a new product. Field presence is validated at the handler
// edge; referential integrity (id_proveedor) and sku uniqueness belong to the
// storage layer and surface as repository sentinels.
func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	sku := req.SKU
	p := &model.Producto{
		Nombre:       req.Nombre,
		SKU:          &sku,
		PrecioCompra: req.PrecioCompra,
		StockActual:  req.StockActual,
		StockMinimo:  5,
		ProveedorID:  req.ProveedorID,
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarContextoIA(ctx)
	return productoToDTO(p), nil
}

// ActualizarStock sets stock_actual. By itself it never produces a price
// history row — only precio_compra changes do, and the trigger enforces that.
func (s *productoService) ActualizarStock(ctx context.Context, id uint, req dto.ActualizarStockRequest) (*dto.ProductoResponse, error) {
	if err := s.repo.UpdateStock(ctx, id, req.StockActual); err != nil {
		return nil, err
	}
	s.invalidarContextoIA(ctx)
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productoToDTO(p), nil
}

// ActualizarPrecio sets precio_compra. The audit row appears as a side effect
// of the storage layer; this service writes exactly one column.
func (s *productoService) ActualizarPrecio(ctx context.Context, id uint, req dto.ActualizarPrecioRequest) (*dto.ProductoResponse, error) {
	if err := s.repo.UpdatePrecio(ctx, id, req.PrecioCompra); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productoToDTO(p), nil
}

// Eliminar removes the product; its history rows go with it (ON DELETE
// CASCADE).
func (s *productoService) Eliminar(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidarContextoIA(ctx)
	return nil
}

func (s *productoService) Historial(ctx context.Context, id uint) (*dto.HistorialPrecioListResponse, error) {
	// 404 for a product that does not exist, empty list for one that has no
	// recorded changes yet.
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.historialRepo.ListByProducto(ctx, id)
	if err != nil {
		return nil, err
	}
	data := make([]dto.HistorialPrecioItem, 0, len(rows))
	for _, h := range rows {
		data = append(data, dto.HistorialPrecioItem{
			ID:               h.ID,
			ProductoID:       h.ProductoID,
			PrecioRegistrado: h.PrecioRegistrado,
			Fecha:            h.Fecha.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.HistorialPrecioListResponse{Data: data, Total: len(data)}, nil
}

// invalidarContextoIA drops the cached AI projection after any product write.
// Best effort: the cache is an optimization, not a source of truth.
func (s *productoService) invalidarContextoIA(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, iaContextoCacheKey).Err(); err != nil {
		log.Debug().Err(err).Msg("no se pudo invalidar cache de contexto IA")
	}
}

func productoToDTO(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:           p.ID,
		Nombre:       p.Nombre,
		SKU:          p.SKU,
		PrecioCompra: p.PrecioCompra,
		StockActual:  p.StockActual,
		StockMinimo:  p.StockMinimo,
		ProveedorID:  p.ProveedorID,
	}
}
