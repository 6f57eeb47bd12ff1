package company

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// EmployeeBracket is an ordinal range of company headcount.
type EmployeeBracket int

const (
	Employees1To10 EmployeeBracket = iota + 1
	Employees11To50
	Employees51To200
	Employees201To500
	Employees501To1000
	Employees1001To5000
	Employees5001To10000
	Employees10001Plus
)

func (b EmployeeBracket) Valid() bool {
	return b >= Employees1To10 && b <= Employees10001Plus
}

func (b EmployeeBracket) String() string {
	switch b {
	case Employees1To10:
		return "1-10"
	case Employees11To50:
		return "11-50"
	case Employees51To200:
		return "51-200"
	case Employees201To500:
		return "201-500"
	case Employees501To1000:
		return "501-1000"
	case Employees1001To5000:
		return "1001-5000"
	case Employees5001To10000:
		return "5001-10000"
	case Employees10001Plus:
		return "10001+"
	default:
		return "unknown"
	}
}

// Company is the owning side of the authorization chain: offices, jobs and
// applications all resolve back to one of these.
type Company struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	About             string          `json:"about"`
	NumberOfEmployees EmployeeBracket `json:"number_of_employees"`
	Website           string          `json:"website,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (c Company) GetCompany() (uuid.UUID, bool) {
	return c.ID, c.ID != uuid.Nil
}

// Office belongs to exactly one company for its lifetime.
type Office struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Country   string    `json:"country,omitempty"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o Office) GetCompany() (uuid.UUID, bool) {
	return o.CompanyID, o.CompanyID != uuid.Nil
}

// Manager grants a user the manager capability over a company. (user, company)
// is treated as a set: granting twice is a no-op.
type Manager struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CompanyID uuid.UUID `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Holder is implemented by anything whose owning company can be resolved:
// Company itself, Office, Job. The second return is false when the chain
// cannot be resolved, which callers must treat as "deny".
type Holder interface {
	GetCompany() (uuid.UUID, bool)
}

var (
	ErrNotFound       = errors.New("company not found")
	ErrOfficeNotFound = errors.New("company office not found")
	// ErrNotManager maps to 403 at the HTTP boundary.
	ErrNotManager = errors.New("not a manager of this company")
)

// Repository is the persistence port for companies, offices and manager grants.
type Repository interface {
	Create(ctx context.Context, c Company) error
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	List(ctx context.Context, limit, offset int) ([]Company, error)
	Update(ctx context.Context, c Company) error

	CreateOffice(ctx context.Context, o Office) error
	GetOffice(ctx context.Context, id uuid.UUID) (Office, error)
	ListOffices(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]Office, error)

	Grant(ctx context.Context, m Manager) error
	HasManager(ctx context.Context, userID, companyID uuid.UUID) (bool, error)
}
