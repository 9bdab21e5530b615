package service

import (
	"context"

	"bodega/internal/dto"
	"bodega/internal/model"
	"bodega/internal/repository"
)

type ProveedorService interface {
	Listar(ctx context.Context) ([]dto.ProveedorOption, error)
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorOption, error)
	Eliminar(ctx context.Context, id uint) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorOption, error) {
	proveedores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]dto.ProveedorOption, 0, len(proveedores))
	for _, p := range proveedores {
		opts = append(opts, dto.ProveedorOption{ID: p.ID, Nombre: p.Nombre})
	}
	return opts, nil
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorOption, error) {
	p := &model.Proveedor{
		Nombre:   req.Nombre,
		Contacto: req.Contacto,
		Email:    req.Email,
		Telefono: req.Telefono,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &dto.ProveedorOption{ID: p.ID, Nombre: p.Nombre}, nil
}

// Eliminar drops the supplier; its products are orphaned (id_proveedor goes
// NULL), never deleted.
func (s *proveedorService) Eliminar(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
