// Package productrepo provides data transfer objects and mapping functions
// for product persistence. Besides the aggregate CRUD it implements the quota
// ledger reads: usage totals recomputed from the product rows themselves.
package productrepo

import (
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting products.
// Weight and volume are nullable: a NULL measurement means "not yet weighed"
// and contributes zero to the quota sums via COALESCE.
type ProductDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;index"`
	Description string
	ProductType string `gorm:"index"`
	Weight      *float64
	Volume      *float64
	DepartureID *uuid.UUID `gorm:"type:uuid;index"`
	Status      int
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	var departureID *uuid.UUID
	if id := aggregate.DepartureID(); id != nil {
		raw := id.Bytes()
		departureID = &raw
	}

	return ProductDTO{
		ID:          aggregate.ID().Bytes(),
		ShipmentID:  aggregate.ShipmentID().Bytes(),
		Description: aggregate.Description(),
		ProductType: aggregate.ProductType(),
		Weight:      aggregate.Weight(),
		Volume:      aggregate.Volume(),
		DepartureID: departureID,
		Status:      int(aggregate.Status()),
	}
}

// toDomain converts a database DTO to a product aggregate.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	var departureID *kernel.UUID
	if dto.DepartureID != nil {
		dID, depErr := kernel.UUIDFromBytes((*dto.DepartureID)[:])
		if depErr != nil {
			return nil, depErr
		}

		departureID = &dID
	}

	return product.RestoreProduct(
		id,
		shipmentID,
		dto.Description,
		dto.ProductType,
		dto.Weight,
		dto.Volume,
		departureID,
		product.Status(dto.Status),
	)
}
