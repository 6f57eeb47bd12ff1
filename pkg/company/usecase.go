package company

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/validation"
)

// UseCase covers company CRUD, offices and manager grants.
type UseCase interface {
	Create(ctx context.Context, actorID uuid.UUID, c Company) (Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	List(ctx context.Context, limit, offset int) ([]Company, error)
	Update(ctx context.Context, actorID uuid.UUID, c Company) (Company, error)

	CreateOffice(ctx context.Context, actorID uuid.UUID, o Office) (Office, error)
	ListOffices(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]Office, error)

	AddManager(ctx context.Context, actorID, userID, companyID uuid.UUID) error
}

type service struct {
	repo   Repository
	access *Access
}

func NewService(repo Repository, access *Access) UseCase {
	return &service{repo: repo, access: access}
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, c Company) (Company, error) {
	c.Name = strings.TrimSpace(c.Name)
	ve := &validation.Error{}
	if c.Name == "" {
		ve.Add("name", "Name is required.")
	}
	if c.NumberOfEmployees == 0 {
		c.NumberOfEmployees = Employees1To10
	}
	if !c.NumberOfEmployees.Valid() {
		ve.Add("number_of_employees", "Unknown employee bracket.")
	}
	if len(ve.Fields) > 0 {
		return Company{}, ve
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Company{}, err
	}
	// The creator manages the company they registered.
	if err := s.repo.Grant(ctx, Manager{ID: uuid.New(), UserID: actorID, CompanyID: c.ID, CreatedAt: time.Now().UTC()}); err != nil {
		return Company{}, err
	}
	return s.repo.GetByID(ctx, c.ID)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Company, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Update(ctx context.Context, actorID uuid.UUID, c Company) (Company, error) {
	existing, err := s.repo.GetByID(ctx, c.ID)
	if err != nil {
		return Company{}, err
	}
	ok, err := s.access.IsManager(ctx, actorID, existing)
	if err != nil {
		return Company{}, err
	}
	if !ok {
		return Company{}, ErrNotManager
	}
	if name := strings.TrimSpace(c.Name); name != "" {
		existing.Name = name
	}
	if c.About != "" {
		existing.About = c.About
	}
	if c.Website != "" {
		existing.Website = c.Website
	}
	if c.NumberOfEmployees != 0 {
		if !c.NumberOfEmployees.Valid() {
			return Company{}, validation.New("number_of_employees", "Unknown employee bracket.")
		}
		existing.NumberOfEmployees = c.NumberOfEmployees
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return Company{}, err
	}
	return s.repo.GetByID(ctx, existing.ID)
}

func (s *service) CreateOffice(ctx context.Context, actorID uuid.UUID, o Office) (Office, error) {
	parent, err := s.repo.GetByID(ctx, o.CompanyID)
	if err != nil {
		return Office{}, validation.New("company", "Company does not exist.")
	}
	ok, err := s.access.IsManager(ctx, actorID, parent)
	if err != nil {
		return Office{}, err
	}
	if !ok {
		return Office{}, ErrNotManager
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if err := s.repo.CreateOffice(ctx, o); err != nil {
		return Office{}, err
	}
	return s.repo.GetOffice(ctx, o.ID)
}

func (s *service) ListOffices(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]Office, error) {
	return s.repo.ListOffices(ctx, companyID, limit, offset)
}

func (s *service) AddManager(ctx context.Context, actorID, userID, companyID uuid.UUID) error {
	parent, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	ok, err := s.access.IsManager(ctx, actorID, parent)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotManager
	}
	return s.repo.Grant(ctx, Manager{ID: uuid.New(), UserID: userID, CompanyID: companyID, CreatedAt: time.Now().UTC()})
}
