package service

import (
	"context"

	"bodega/internal/dto"
	"bodega/internal/repository"
)

// EsStockBajo is the low-stock predicate: at or below the reorder threshold.
// Presentation-only — nothing at the storage layer enforces it.
func EsStockBajo(stockActual, stockMinimo int) bool {
	return stockActual <= stockMinimo
}

type InventarioService interface {
	Listar(ctx context.Context) (*dto.InventarioListResponse, error)
}

type inventarioService struct {
	repo repository.ProductoRepository
}

func NewInventarioService(repo repository.ProductoRepository) InventarioService {
	return &inventarioService{repo: repo}
}

func (s *inventarioService) Listar(ctx context.Context) (*dto.InventarioListResponse, error) {
	rows, err := s.repo.ListInventario(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.InventarioItem, 0, len(rows))
	for _, r := range rows {
		data = append(data, dto.InventarioItem{
			ID:          r.ID,
			Nombre:      r.Nombre,
			SKU:         r.SKU,
			StockActual: r.StockActual,
			StockMinimo: r.StockMinimo,
			Proveedor:   r.Proveedor,
			StockBajo:   EsStockBajo(r.StockActual, r.StockMinimo),
		})
	}
	return &dto.InventarioListResponse{Data: data, Total: len(data)}, nil
}
