package contract

import (
	"context"

	"paper-rag-be/internal/entity"
	"paper-rag-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error
	// FindActive returns the currently active document, or nil when no
	// document has been uploaded yet.
	FindActive(ctx context.Context) (*entity.Document, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	// DeactivateAll retires the active document (flag off + soft delete);
	// the swap half performed before activating a successor.
	DeactivateAll(ctx context.Context) error
	// DeleteAll soft-deletes every document; clear-all only.
	DeleteAll(ctx context.Context) error
	Delete(ctx context.Context, id uuid.UUID) error
}
