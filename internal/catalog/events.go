package catalog

import (
	"time"

	"domainkit/pkg/entity"
)

// ProductActivated is recorded when a draft product goes on sale.
type ProductActivated struct {
	ID entity.ID
	At time.Time
}

func (e ProductActivated) EventName() string     { return "catalog.product.activated" }
func (e ProductActivated) OccurredAt() time.Time { return e.At }

// ProductDiscontinued is recorded when a product is withdrawn from sale.
type ProductDiscontinued struct {
	ID entity.ID
	At time.Time
}

func (e ProductDiscontinued) EventName() string     { return "catalog.product.discontinued" }
func (e ProductDiscontinued) OccurredAt() time.Time { return e.At }
