package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"domainkit/pkg/entity"
	"domainkit/pkg/repository/postgres"
)

// ProductsTable is the table the catalog repository stores products in.
const ProductsTable = "products"

// ProductRow is the database representation of a Product. Tags are stored as
// a JSONB array so the Tagged specification compiles to exact element
// containment, matching its in-memory semantics.
type ProductRow struct {
	ID       uuid.UUID `db:"id"`
	Name     string    `db:"name"`
	Price    float64   `db:"price"`
	Status   string    `db:"status"`
	Tags     string    `db:"tags"`
	Featured bool      `db:"featured"`

	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt sql.NullTime `db:"updated_at"`
}

// FromDomain fills the row from a product.
func (r *ProductRow) FromDomain(p Product) error {
	tags := []byte("[]")
	if p.Tags != nil {
		var err error
		if tags, err = json.Marshal(p.Tags); err != nil {
			return fmt.Errorf("could not marshal product tags: %w", err)
		}
	}

	*r = ProductRow{
		ID:        uuid.UUID(p.ID),
		Name:      p.Name,
		Price:     p.Price,
		Status:    string(p.Status),
		Tags:      string(tags),
		Featured:  p.Featured,
		CreatedAt: p.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  p.UpdatedAt,
			Valid: !p.UpdatedAt.IsZero(),
		},
	}

	return nil
}

// ToDomain converts the row back into a product.
func (r *ProductRow) ToDomain() (Product, error) {
	var tags []string
	if r.Tags != "" {
		if err := json.Unmarshal([]byte(r.Tags), &tags); err != nil {
			return Product{}, fmt.Errorf("could not unmarshal product tags: %w", err)
		}
	}

	return Product{
		Base: entity.Base{
			ID:        entity.ID(r.ID),
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt.Time,
		},
		Name:     r.Name,
		Price:    r.Price,
		Status:   ProductStatus(r.Status),
		Tags:     tags,
		Featured: r.Featured,
	}, nil
}

// PgMapping binds products to their table for the PostgreSQL repository.
func PgMapping() postgres.Mapping[Product, ProductRow] {
	return postgres.Mapping[Product, ProductRow]{
		Table:        ProductsTable,
		ArrayColumns: []string{"tags"},
		ToRow: func(p Product) (ProductRow, error) {
			var row ProductRow
			err := row.FromDomain(p)

			return row, err
		},
		FromRow: func(row ProductRow) (Product, error) {
			return row.ToDomain()
		},
	}
}
