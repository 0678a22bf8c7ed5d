package store

import "github.com/MKhiriev/invest-keeper/internal/logger"

// Storages aggregates all repositories backing the service layer.
type Storages struct {
	UserRepository     UserRepository
	CategoryRepository CategoryRepository
}

// NewStorages wires all repositories to the shared database handle.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:     NewUserRepository(db, logger),
		CategoryRepository: NewCategoryRepository(db, logger),
	}
}
