// Package catalog is the example bounded context shipped with the library.
// It models a small product catalog using the domain primitives: Product is
// an aggregate with invariants and events, and the specifications in this
// package are built from the common predicate library.
package catalog

import (
	"domainkit/pkg/aggregate"
	"domainkit/pkg/derrors"
	"domainkit/pkg/entity"
)

// ProductStatus represents the lifecycle state of a product.
type ProductStatus string

const (
	// StatusDraft indicates the product has been created but is not for sale yet.
	StatusDraft ProductStatus = "DRAFT"
	// StatusActive indicates the product is for sale.
	StatusActive ProductStatus = "ACTIVE"
	// StatusDiscontinued indicates the product was withdrawn from sale.
	StatusDiscontinued ProductStatus = "DISCONTINUED"
)

// Product is a catalog entry. State changes go through its methods, which
// guard the aggregate's invariants and record domain events.
type Product struct {
	entity.Base
	aggregate.Root `json:"-"`

	// Name is the display name of the product.
	Name string `json:"name"`
	// Price is the sale price.
	Price float64 `json:"price"`
	// Status is the current lifecycle state.
	Status ProductStatus `json:"status"`
	// Tags classify the product for search.
	Tags []string `json:"tags"`
	// Featured marks products promoted on the storefront.
	Featured bool `json:"featured"`
}

// NewProduct creates a draft product with a fresh identity.
func NewProduct(name string, price float64, tags ...string) (*Product, error) {
	if name == "" {
		return nil, derrors.With(derrors.ErrValidation, "product requires a name")
	}
	if price < 0 {
		return nil, derrors.With(derrors.ErrValidation, "product price cannot be negative, got %v", price)
	}

	return &Product{
		Base:   entity.NewBase(),
		Name:   name,
		Price:  price,
		Status: StatusDraft,
		Tags:   tags,
	}, nil
}

// Activate puts the product on sale. Only draft products can be activated.
func (p *Product) Activate() error {
	if err := aggregate.Check(p.Status == StatusDraft, "cannot activate a %s product", p.Status); err != nil {
		return err
	}

	p.Status = StatusActive
	p.Touch()
	p.Record(ProductActivated{ID: p.ID, At: p.UpdatedAt})

	return nil
}

// Discontinue withdraws the product from sale. Only active products can be
// discontinued.
func (p *Product) Discontinue() error {
	if err := aggregate.Check(p.Status == StatusActive, "cannot discontinue a %s product", p.Status); err != nil {
		return err
	}

	p.Status = StatusDiscontinued
	p.Featured = false
	p.Touch()
	p.Record(ProductDiscontinued{ID: p.ID, At: p.UpdatedAt})

	return nil
}

// Reprice changes the sale price.
func (p *Product) Reprice(price float64) error {
	if price < 0 {
		return derrors.With(derrors.ErrValidation, "product price cannot be negative, got %v", price)
	}

	p.Price = price
	p.Touch()

	return nil
}

// Feature marks the product as promoted. Only active products can be
// featured.
func (p *Product) Feature() error {
	if err := aggregate.Check(p.Status == StatusActive, "cannot feature a %s product", p.Status); err != nil {
		return err
	}

	p.Featured = true
	p.Touch()

	return nil
}
