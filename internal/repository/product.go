package repository

import (
	"context"
	"fmt"

	"github.com/agrolink/distribution-api/internal/domain"
	"github.com/agrolink/distribution-api/internal/repository/dao"
)

var ErrProductNotFound = dao.ErrProductNotFound

type ProductDAO interface {
	Insert(ctx context.Context, product dao.Product) (dao.Product, error)
	FindByID(ctx context.Context, id uint) (dao.Product, error)
	FindAll(ctx context.Context) ([]dao.Product, error)
	Update(ctx context.Context, product dao.Product) (dao.Product, error)
	Delete(ctx context.Context, id uint) error
}

type ProductRepository struct {
	dao ProductDAO
}

func NewProductRepository(dao ProductDAO) *ProductRepository {
	return &ProductRepository{
		dao: dao,
	}
}

func productDaoToDomain(p dao.Product) domain.Product {
	return domain.Product{
		ID:                  p.ID,
		Name:                p.Name,
		FranchisePrice:      p.FranchisePrice,
		DistributorPrice:    p.DistributorPrice,
		SubDistributorPrice: p.SubDistributorPrice,
		DealerPrice:         p.DealerPrice,
		FarmerPrice:         p.FarmerPrice,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func productDomainToDao(p domain.Product) dao.Product {
	return dao.Product{
		ID:                  p.ID,
		Name:                p.Name,
		FranchisePrice:      p.FranchisePrice,
		DistributorPrice:    p.DistributorPrice,
		SubDistributorPrice: p.SubDistributorPrice,
		DealerPrice:         p.DealerPrice,
		FarmerPrice:         p.FarmerPrice,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	created, err := r.dao.Insert(ctx, productDomainToDao(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return productDaoToDomain(created), nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (domain.Product, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return productDaoToDomain(found), nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	products := make([]domain.Product, len(found))
	for i, p := range found {
		products[i] = productDaoToDomain(p)
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	updated, err := r.dao.Update(ctx, productDomainToDao(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return productDaoToDomain(updated), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
