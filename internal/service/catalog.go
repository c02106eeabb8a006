package service

import (
	"context"

	"github.com/msomdec/freshshop/internal/domain"
)

// StaticCatalog serves a fixed product list.
type StaticCatalog struct {
	products []domain.Product
}

// NewStaticCatalog returns the storefront's built-in products.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{products: []domain.Product{
		{ID: 1, Name: "Producto 1", Price: 9.99, Image: "images/img-pro-01.jpg"},
		{ID: 2, Name: "Producto 2", Price: 14.99, Image: "images/img-pro-02.jpg"},
		{ID: 3, Name: "Producto 3", Price: 7.99, Image: "images/img-pro-03.jpg"},
	}}
}

func (c *StaticCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}
