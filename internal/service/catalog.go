package service

import (
	"context"
	"fmt"

	"github.com/dentalmart/shop/internal/models"
	"github.com/dentalmart/shop/internal/repo"
)

// CatalogService is read-only: catalog CRUD lives outside this backend.
type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, nil
}

func (s *CatalogService) GetPackage(ctx context.Context, id uint) (*models.Package, error) {
	p, err := s.Repo.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("package %d: %w", id, ErrNotFound)
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	return s.Repo.ListProducts(ctx, offset, limit)
}
