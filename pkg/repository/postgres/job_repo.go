package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobboard/pkg/job"
)

// JobRepository stores jobs with their requirement/responsibility children
// and bookmarks.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	overview TEXT NOT NULL,
	salary_start_from INTEGER NOT NULL CHECK (salary_start_from >= 0),
	salary_end INTEGER NOT NULL CHECK (salary_end > salary_start_from),
	company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
	company_office_id UUID NOT NULL REFERENCES company_offices(id) ON DELETE CASCADE,
	job_type TEXT NOT NULL,
	work_place TEXT NOT NULL,
	number_of_applicants INTEGER NOT NULL DEFAULT 0,
	created_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company_id);
CREATE TABLE IF NOT EXISTS job_requirements (
	id UUID PRIMARY KEY,
	job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	description TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS job_responsibilities (
	id UUID PRIMARY KEY,
	job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	description TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS job_bookmarks (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (user_id, job_id)
);
`)
	return err
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	now := time.Now().UTC()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	if j.UpdatedAt.IsZero() {
		j.UpdatedAt = now
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
INSERT INTO jobs (id, title, overview, salary_start_from, salary_end, company_id,
	company_office_id, job_type, work_place, number_of_applicants, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, $11, $12)
`, j.ID, strings.TrimSpace(j.Title), j.Overview, j.SalaryStartFrom, j.SalaryEnd, j.CompanyID,
		j.OfficeID, string(j.Type), string(j.WorkPlace), j.CreatedBy, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return err
	}
	for _, req := range j.Requirements {
		if _, err := tx.Exec(ctx, `
INSERT INTO job_requirements (id, job_id, description) VALUES ($1, $2, $3)
`, req.ID, j.ID, req.Description); err != nil {
			return err
		}
	}
	for _, resp := range j.Responsibilities {
		if _, err := tx.Exec(ctx, `
INSERT INTO job_responsibilities (id, job_id, description) VALUES ($1, $2, $3)
`, resp.ID, j.ID, resp.Description); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, title, overview, salary_start_from, salary_end, company_id,
	company_office_id, job_type, work_place, number_of_applicants, created_by, created_at, updated_at
FROM jobs WHERE id = $1
`, id)
	j, err := scanJob(row)
	if err != nil {
		return job.Job{}, err
	}
	if err := r.loadChildren(ctx, &j); err != nil {
		return job.Job{}, err
	}
	return j, nil
}

func (r *JobRepository) loadChildren(ctx context.Context, j *job.Job) error {
	rows, err := r.pool.Query(ctx, `SELECT id, description FROM job_requirements WHERE job_id = $1`, j.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var req job.Requirement
		if err := rows.Scan(&req.ID, &req.Description); err != nil {
			return err
		}
		j.Requirements = append(j.Requirements, req)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows2, err := r.pool.Query(ctx, `SELECT id, description FROM job_responsibilities WHERE job_id = $1`, j.ID)
	if err != nil {
		return err
	}
	defer rows2.Close()
	for rows2.Next() {
		var resp job.Responsibility
		if err := rows2.Scan(&resp.ID, &resp.Description); err != nil {
			return err
		}
		j.Responsibilities = append(j.Responsibilities, resp)
	}
	return rows2.Err()
}

func (r *JobRepository) List(ctx context.Context, f job.Filter, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	q := `
SELECT id, title, overview, salary_start_from, salary_end, company_id,
	company_office_id, job_type, work_place, number_of_applicants, created_by, created_at, updated_at
FROM jobs WHERE 1=1`
	args := []any{}
	n := 0
	if f.Type != "" {
		n++
		q += ` AND job_type = $` + itoa(n)
		args = append(args, string(f.Type))
	}
	if f.WorkPlace != "" {
		n++
		q += ` AND work_place = $` + itoa(n)
		args = append(args, string(f.WorkPlace))
	}
	if f.CompanyID != uuid.Nil {
		n++
		q += ` AND company_id = $` + itoa(n)
		args = append(args, f.CompanyID)
	}
	q += ` ORDER BY created_at DESC LIMIT $` + itoa(n+1) + ` OFFSET $` + itoa(n+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, j)
	}
	return res, rows.Err()
}

// Update writes the mutable fields. The applicant counter deliberately is not
// here: it only moves through the atomic increment in the application insert.
func (r *JobRepository) Update(ctx context.Context, j job.Job) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE jobs
SET title = $2, overview = $3, salary_start_from = $4, salary_end = $5,
	company_id = $6, company_office_id = $7, job_type = $8, work_place = $9, updated_at = $10
WHERE id = $1
`, j.ID, strings.TrimSpace(j.Title), j.Overview, j.SalaryStartFrom, j.SalaryEnd,
		j.CompanyID, j.OfficeID, string(j.Type), string(j.WorkPlace), time.Now().UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) CreateBookmark(ctx context.Context, b job.Bookmark) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO job_bookmarks (id, user_id, job_id, created_at)
VALUES ($1, $2, $3, $4)
`, b.ID, b.UserID, b.JobID, b.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return job.ErrDuplicateBookmark
		}
		return err
	}
	return nil
}

func (r *JobRepository) GetBookmark(ctx context.Context, id uuid.UUID) (job.Bookmark, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, job_id, created_at FROM job_bookmarks WHERE id = $1
`, id)
	var b job.Bookmark
	var created time.Time
	if err := row.Scan(&b.ID, &b.UserID, &b.JobID, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Bookmark{}, job.ErrBookmarkNotFound
		}
		return job.Bookmark{}, err
	}
	b.CreatedAt = created.UTC()
	return b, nil
}

func (r *JobRepository) ListBookmarks(ctx context.Context, userID uuid.UUID, limit, offset int) ([]job.Bookmark, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, job_id, created_at FROM job_bookmarks
WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []job.Bookmark
	for rows.Next() {
		var b job.Bookmark
		var created time.Time
		if err := rows.Scan(&b.ID, &b.UserID, &b.JobID, &created); err != nil {
			return nil, err
		}
		b.CreatedAt = created.UTC()
		res = append(res, b)
	}
	return res, rows.Err()
}

func (r *JobRepository) DeleteBookmark(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM job_bookmarks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return job.ErrBookmarkNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	var jobType, workPlace string
	var created, updated time.Time
	if err := row.Scan(&j.ID, &j.Title, &j.Overview, &j.SalaryStartFrom, &j.SalaryEnd, &j.CompanyID,
		&j.OfficeID, &jobType, &workPlace, &j.NumberOfApplicants, &j.CreatedBy, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.Type = job.Type(jobType)
	j.WorkPlace = job.WorkPlace(workPlace)
	j.CreatedAt = created.UTC()
	j.UpdatedAt = updated.UTC()
	return j, nil
}

func itoa(n int) string { return strconv.Itoa(n) }
