package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobboard/pkg/application"
)

// ApplicationRepository stores job applications and enforces the status state
// machine at the storage boundary.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) (*ApplicationRepository, error) {
	r := &ApplicationRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ApplicationRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS job_applications (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	resume_id UUID NOT NULL REFERENCES resumes(id),
	cover_letter TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'applied',
	is_cover_letter_ai_generated DOUBLE PRECISION,
	is_cover_letter_ai_report JSONB,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	UNIQUE (user_id, job_id)
);
CREATE INDEX IF NOT EXISTS idx_job_applications_job ON job_applications(job_id);
`)
	return err
}

// Create inserts the application and bumps the job's applicant counter in the
// same transaction. The increment is in-place so concurrent applications to
// one job never lose counts to a read-modify-write race.
func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
INSERT INTO job_applications (id, user_id, job_id, resume_id, cover_letter, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, a.ID, a.UserID, a.JobID, a.ResumeID, a.CoverLetter, string(a.Status), a.CreatedAt, a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return application.ErrDuplicate
		}
		return err
	}
	_, err = tx.Exec(ctx, `
UPDATE jobs SET number_of_applicants = number_of_applicants + 1 WHERE id = $1
`, a.JobID)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, job_id, resume_id, cover_letter, status,
	is_cover_letter_ai_generated, is_cover_letter_ai_report, created_at, updated_at
FROM job_applications WHERE id = $1
`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	row := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM job_applications WHERE user_id = $1 AND job_id = $2)
`, userID, jobID)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]application.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, job_id, resume_id, cover_letter, status,
	is_cover_letter_ai_generated, is_cover_letter_ai_report, created_at, updated_at
FROM job_applications WHERE user_id = $1
ORDER BY created_at DESC LIMIT $2 OFFSET $3
`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

// ListByJob surfaces un-flagged applications first: ascending AI score with
// nulls leading the list.
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]application.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, job_id, resume_id, cover_letter, status,
	is_cover_letter_ai_generated, is_cover_letter_ai_report, created_at, updated_at
FROM job_applications WHERE job_id = $1
ORDER BY is_cover_letter_ai_generated ASC NULLS FIRST, created_at ASC
LIMIT $2 OFFSET $3
`, jobID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

// UpdateStatus locks the row, validates the transition against the persisted
// status and writes the new one, all inside one transaction. Two concurrent
// transitions serialize on the lock; the second re-validates against the
// first's result instead of a stale read.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, to application.Status) (application.Application, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return application.Application{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current string
	row := tx.QueryRow(ctx, `SELECT status FROM job_applications WHERE id = $1 FOR UPDATE`, id)
	if err := row.Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	from := application.Status(current)
	if !from.CanTransitionTo(to) {
		return application.Application{}, &application.TransitionError{From: from, To: to}
	}

	updated := tx.QueryRow(ctx, `
UPDATE job_applications SET status = $2, updated_at = $3 WHERE id = $1
RETURNING id, user_id, job_id, resume_id, cover_letter, status,
	is_cover_letter_ai_generated, is_cover_letter_ai_report, created_at, updated_at
`, id, string(to), time.Now().UTC())
	a, err := scanApplication(updated)
	if err != nil {
		return application.Application{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return application.Application{}, err
	}
	return a, nil
}

// SaveAIVerdict writes score and report together so the record can never end
// up half-written.
func (r *ApplicationRepository) SaveAIVerdict(ctx context.Context, id uuid.UUID, score *float64, report json.RawMessage) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE job_applications
SET is_cover_letter_ai_generated = $2, is_cover_letter_ai_report = $3, updated_at = $4
WHERE id = $1
`, id, score, []byte(report), time.Now().UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

func collectApplications(rows pgx.Rows) ([]application.Application, error) {
	defer rows.Close()
	var res []application.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func scanApplication(row pgx.Row) (application.Application, error) {
	var a application.Application
	var status string
	var report []byte
	var created, updated time.Time
	if err := row.Scan(&a.ID, &a.UserID, &a.JobID, &a.ResumeID, &a.CoverLetter, &status,
		&a.AIScore, &report, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	if len(report) > 0 {
		a.AIReport = json.RawMessage(report)
	}
	a.CreatedAt = created.UTC()
	a.UpdatedAt = updated.UTC()
	return a, nil
}
