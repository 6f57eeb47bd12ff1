package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobboard/pkg/resume"
)

// ResumeRepository stores resume metadata and the asynchronously extracted text.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) (*ResumeRepository, error) {
	r := &ResumeRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ResumeRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS resumes (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	filename TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	size_bytes BIGINT NOT NULL,
	content TEXT,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resumes_user ON resumes(user_id);
`)
	return err
}

func (r *ResumeRepository) Create(ctx context.Context, rec resume.Resume) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO resumes (id, user_id, filename, storage_path, size_bytes, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, rec.ID, rec.UserID, rec.Filename, rec.StoragePath, rec.Size, rec.CreatedAt)
	return err
}

func (r *ResumeRepository) GetMeta(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, filename, storage_path, size_bytes, content, created_at
FROM resumes WHERE id = $1
`, id)
	return scanResume(row)
}

func (r *ResumeRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]resume.Resume, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, filename, storage_path, size_bytes, content, created_at
FROM resumes WHERE user_id = $1
ORDER BY created_at DESC LIMIT $2 OFFSET $3
`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []resume.Resume
	for rows.Next() {
		rec, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

func (r *ResumeRepository) Delete(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	row := r.pool.QueryRow(ctx, `
DELETE FROM resumes WHERE id = $1
RETURNING id, user_id, filename, storage_path, size_bytes, content, created_at
`, id)
	return scanResume(row)
}

func (r *ResumeRepository) SaveContent(ctx context.Context, id uuid.UUID, content string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE resumes SET content = $2 WHERE id = $1`, id, content)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return resume.ErrNotFound
	}
	return nil
}

func scanResume(row pgx.Row) (resume.Resume, error) {
	var rec resume.Resume
	var created time.Time
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Filename, &rec.StoragePath, &rec.Size, &rec.Content, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Resume{}, resume.ErrNotFound
		}
		return resume.Resume{}, err
	}
	rec.CreatedAt = created.UTC()
	return rec, nil
}
