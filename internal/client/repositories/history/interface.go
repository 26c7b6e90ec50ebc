package history

import (
	"context"

	"github.com/dmitrijs2005/utilitybox/internal/client/models"
)

// Repository stores and lists journaled operations.
type Repository interface {
	// Add inserts op. CreatedAt defaults to now when zero.
	Add(ctx context.Context, op *models.Operation) error

	// List returns up to limit operations, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]models.Operation, error)
}
