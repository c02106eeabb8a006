package domain

import "context"

type Product struct {
	ID    int
	Name  string
	Price float64
	Image string
}

// ProductCatalog lists the products shown on the shop page.
type ProductCatalog interface {
	ListProducts(ctx context.Context) ([]Product, error)
}
