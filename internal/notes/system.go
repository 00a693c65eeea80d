package notes

import (
	"context"

	"github.com/google/uuid"

	"github.com/pmaterna/apibase/pkg/pagination"
)

// System defines the note operations exposed to handlers.
type System interface {
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Note], error)
	Find(ctx context.Context, id uuid.UUID) (*Note, error)
	Create(ctx context.Context, cmd CreateNoteCommand) (*Note, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateNoteCommand) (*Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
