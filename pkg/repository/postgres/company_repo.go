package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobboard/pkg/company"
)

// CompanyRepository stores companies, their offices and manager grants.
type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) (*CompanyRepository, error) {
	r := &CompanyRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *CompanyRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS companies (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	about TEXT NOT NULL DEFAULT '',
	number_of_employees SMALLINT NOT NULL DEFAULT 1 CHECK (number_of_employees BETWEEN 1 AND 8),
	website TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS company_offices (
	id UUID PRIMARY KEY,
	company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
	country TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_company_offices_company ON company_offices(company_id);
CREATE TABLE IF NOT EXISTS company_managers (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (user_id, company_id)
);
`)
	return err
}

func (r *CompanyRepository) Create(ctx context.Context, c company.Company) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO companies (id, name, about, number_of_employees, website, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, c.ID, strings.TrimSpace(c.Name), c.About, int(c.NumberOfEmployees), c.Website, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, about, number_of_employees, website, created_at, updated_at
FROM companies WHERE id = $1
`, id)
	return scanCompany(row)
}

func (r *CompanyRepository) List(ctx context.Context, limit, offset int) ([]company.Company, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, name, about, number_of_employees, website, created_at, updated_at
FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []company.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *CompanyRepository) Update(ctx context.Context, c company.Company) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE companies
SET name = $2, about = $3, number_of_employees = $4, website = $5, updated_at = $6
WHERE id = $1
`, c.ID, strings.TrimSpace(c.Name), c.About, int(c.NumberOfEmployees), c.Website, time.Now().UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return company.ErrNotFound
	}
	return nil
}

func (r *CompanyRepository) CreateOffice(ctx context.Context, o company.Office) error {
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = now
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO company_offices (id, company_id, country, city, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, o.ID, o.CompanyID, o.Country, o.City, o.CreatedAt, o.UpdatedAt)
	return err
}

func (r *CompanyRepository) GetOffice(ctx context.Context, id uuid.UUID) (company.Office, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, company_id, country, city, created_at, updated_at
FROM company_offices WHERE id = $1
`, id)
	var o company.Office
	var created, updated time.Time
	if err := row.Scan(&o.ID, &o.CompanyID, &o.Country, &o.City, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Office{}, company.ErrOfficeNotFound
		}
		return company.Office{}, err
	}
	o.CreatedAt = created.UTC()
	o.UpdatedAt = updated.UTC()
	return o, nil
}

func (r *CompanyRepository) ListOffices(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]company.Office, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, company_id, country, city, created_at, updated_at
FROM company_offices WHERE company_id = $1
ORDER BY created_at DESC LIMIT $2 OFFSET $3
`, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []company.Office
	for rows.Next() {
		var o company.Office
		var created, updated time.Time
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.Country, &o.City, &created, &updated); err != nil {
			return nil, err
		}
		o.CreatedAt = created.UTC()
		o.UpdatedAt = updated.UTC()
		res = append(res, o)
	}
	return res, rows.Err()
}

// Grant is idempotent: (user, company) is a set, a second grant is a no-op.
func (r *CompanyRepository) Grant(ctx context.Context, m company.Manager) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO company_managers (id, user_id, company_id, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, company_id) DO NOTHING
`, m.ID, m.UserID, m.CompanyID, m.CreatedAt)
	return err
}

func (r *CompanyRepository) HasManager(ctx context.Context, userID, companyID uuid.UUID) (bool, error) {
	row := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM company_managers WHERE user_id = $1 AND company_id = $2)
`, userID, companyID)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	var bracket int
	var created, updated time.Time
	if err := row.Scan(&c.ID, &c.Name, &c.About, &bracket, &c.Website, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	c.NumberOfEmployees = company.EmployeeBracket(bracket)
	c.CreatedAt = created.UTC()
	c.UpdatedAt = updated.UTC()
	return c, nil
}
