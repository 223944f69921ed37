package queries_test

import (
	"time"

	"shipping/internal/adapters/out/postgres/departurerepo"
	"shipping/internal/adapters/out/postgres/productrepo"

	"github.com/google/uuid"
)

// Row builders shared by the query handler suites. Rows are inserted through
// the persistence DTOs directly; the queries are read models and do not go
// through the aggregates.

func departureRow(date time.Time, types string, capacityWeight, capacityVolume float64, active bool) departurerepo.DepartureDTO {
	return departurerepo.DepartureDTO{
		ID:                   uuid.New(),
		Date:                 date,
		CarrierID:            uuid.New(),
		AcceptedProductTypes: types,
		CapacityWeight:       capacityWeight,
		CapacityVolume:       capacityVolume,
		Active:               active,
	}
}

func productRow(departureID *uuid.UUID, productType string, weight, volume *float64) productrepo.ProductDTO {
	return productrepo.ProductDTO{
		ID:          uuid.New(),
		ShipmentID:  uuid.New(),
		Description: "Carga de prueba",
		ProductType: productType,
		Weight:      weight,
		Volume:      volume,
		DepartureID: departureID,
	}
}

func fptr(v float64) *float64 {
	return &v
}
