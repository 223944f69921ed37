package queries

import (
	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// toKernelUUID converts a scanned database UUID to the domain identity type.
func toKernelUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

// toKernelUUIDPtr converts a scanned nullable database UUID, mapping NULL to nil.
func toKernelUUIDPtr(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}

	converted, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
