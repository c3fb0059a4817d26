package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vietanh2810/dining-pos-api/internal/domain"
	"github.com/vietanh2810/dining-pos-api/internal/repository/dao"
)

type ProductDAO interface {
	Insert(ctx context.Context, product dao.Product) (dao.Product, error)
	FindByID(ctx context.Context, id uint) (dao.Product, error)
	UpdatePrice(ctx context.Context, id uint, price decimal.Decimal) error
}

type ProductRepository struct {
	dao ProductDAO
}

func NewProductRepository(dao ProductDAO) *ProductRepository {
	return &ProductRepository{
		dao: dao,
	}
}

func (r *ProductRepository) daoToDomain(p dao.Product) domain.Product {
	return domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		UnitPrice:   p.UnitPrice,
		IsAvailable: p.IsAvailable,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	created, err := r.dao.Insert(ctx, dao.Product{
		Name:        product.Name,
		UnitPrice:   product.UnitPrice,
		IsAvailable: product.IsAvailable,
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}
	return r.daoToDomain(created), nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (domain.Product, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}
	return r.daoToDomain(found), nil
}

func (r *ProductRepository) UpdatePrice(ctx context.Context, id uint, price decimal.Decimal) error {
	if err := r.dao.UpdatePrice(ctx, id, price); err != nil {
		return fmt.Errorf("r.dao.UpdatePrice -> %w", err)
	}
	return nil
}
