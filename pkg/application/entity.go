package application

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Application is one user's application to one job. (user, job) is unique.
// AIScore and AIReport stay null until the background analysis writes them,
// and are written together exactly once.
type Application struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	JobID       uuid.UUID       `json:"job_id"`
	ResumeID    uuid.UUID       `json:"resume_id"`
	CoverLetter string          `json:"cover_letter"`
	Status      Status          `json:"status"`
	AIScore     *float64        `json:"is_cover_letter_ai_generated,omitempty"`
	AIReport    json.RawMessage `json:"is_cover_letter_ai_report,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

var (
	ErrNotFound = errors.New("application not found")
	// ErrDuplicate backs the (user, job) uniqueness invariant.
	ErrDuplicate = errors.New("application already exists")
)

// Repository is the persistence port for applications.
//
// Create must insert the row and bump the job's applicant counter atomically
// in place (never read-modify-write). UpdateStatus must validate the
// transition against the persisted status under a lock so two concurrent
// transitions serialize instead of both succeeding from the same prior state.
type Repository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Application, error)
	// ListByJob orders by the AI-generation score ascending with nulls first,
	// so un-flagged applications precede flagged ones.
	ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, to Status) (Application, error)
	// SaveAIVerdict writes score and raw report in a single statement so a
	// partial failure can never leave the record half-written.
	SaveAIVerdict(ctx context.Context, id uuid.UUID, score *float64, report json.RawMessage) error
}
