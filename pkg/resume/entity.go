package resume

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Resume stores metadata about an uploaded file. Content stays null until the
// background extraction task fills it.
type Resume struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"-"`
	Size        int64     `json:"size"`
	Content     *string   `json:"content,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

var (
	ErrNotFound = errors.New("resume not found")
	// ErrNotOwner maps to 403: resumes are owned exclusively by their user.
	ErrNotOwner = errors.New("not the owner of this resume")
)

// Repository is the persistence port for resumes.
type Repository interface {
	Create(ctx context.Context, r Resume) error
	GetMeta(ctx context.Context, id uuid.UUID) (Resume, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Resume, error)
	// Delete returns the deleted row so the caller can remove the file.
	Delete(ctx context.Context, id uuid.UUID) (Resume, error)
	SaveContent(ctx context.Context, id uuid.UUID, content string) error
}
