package usecase

import (
	"context"
	"fmt"
	"strings"

	"datatrail/internal/domain/lineage"
	"datatrail/internal/repository"
)

type ProductUsecase interface {
	ListProducts(ctx context.Context) ([]string, error)
	ListDependencies(ctx context.Context, productName string) ([]lineage.Dependency, error)
}

type Product struct {
	products repository.ProductRepository
}

func NewProductUsecase(products repository.ProductRepository) *Product {
	return &Product{products: products}
}

func (u *Product) ListProducts(ctx context.Context) ([]string, error) {
	out, err := u.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %v", ErrInternal, err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// ListDependencies returns an empty list for a product without views.
func (u *Product) ListDependencies(ctx context.Context, productName string) ([]lineage.Dependency, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return nil, ErrInvalidInput
	}
	out, err := u.products.ListDependencies(ctx, productName)
	if err != nil {
		return nil, fmt.Errorf("%w: list dependencies: %v", ErrInternal, err)
	}
	if out == nil {
		out = []lineage.Dependency{}
	}
	return out, nil
}
