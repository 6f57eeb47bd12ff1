package company

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobboard/pkg/validation"
)

type memCompanyRepo struct {
	companies map[uuid.UUID]Company
	offices   map[uuid.UUID]Office
	grants    map[[2]uuid.UUID]bool
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{
		companies: map[uuid.UUID]Company{},
		offices:   map[uuid.UUID]Office{},
		grants:    map[[2]uuid.UUID]bool{},
	}
}

func (m *memCompanyRepo) Create(_ context.Context, c Company) error {
	m.companies[c.ID] = c
	return nil
}

func (m *memCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return Company{}, ErrNotFound
	}
	return c, nil
}

func (m *memCompanyRepo) List(_ context.Context, _, _ int) ([]Company, error) {
	var out []Company
	for _, c := range m.companies {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCompanyRepo) Update(_ context.Context, c Company) error {
	m.companies[c.ID] = c
	return nil
}

func (m *memCompanyRepo) CreateOffice(_ context.Context, o Office) error {
	m.offices[o.ID] = o
	return nil
}

func (m *memCompanyRepo) GetOffice(_ context.Context, id uuid.UUID) (Office, error) {
	o, ok := m.offices[id]
	if !ok {
		return Office{}, ErrOfficeNotFound
	}
	return o, nil
}

func (m *memCompanyRepo) ListOffices(_ context.Context, companyID uuid.UUID, _, _ int) ([]Office, error) {
	var out []Office
	for _, o := range m.offices {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memCompanyRepo) Grant(_ context.Context, g Manager) error {
	m.grants[[2]uuid.UUID{g.UserID, g.CompanyID}] = true
	return nil
}

func (m *memCompanyRepo) HasManager(_ context.Context, userID, companyID uuid.UUID) (bool, error) {
	return m.grants[[2]uuid.UUID{userID, companyID}], nil
}

func newCompanyService() (*memCompanyRepo, UseCase) {
	repo := newMemCompanyRepo()
	return repo, NewService(repo, NewAccess(repo))
}

func TestCreateCompanyGrantsCreator(t *testing.T) {
	repo, uc := newCompanyService()
	creator := uuid.New()

	c, err := uc.Create(context.Background(), creator, Company{Name: "Initech", NumberOfEmployees: Employees51To200})
	require.NoError(t, err)

	ok, err := repo.HasManager(context.Background(), creator, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateCompanyValidation(t *testing.T) {
	_, uc := newCompanyService()

	_, err := uc.Create(context.Background(), uuid.New(), Company{Name: "  "})
	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"Name is required."}, ve.Fields["name"])

	_, err = uc.Create(context.Background(), uuid.New(), Company{Name: "X", NumberOfEmployees: EmployeeBracket(99)})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"Unknown employee bracket."}, ve.Fields["number_of_employees"])
}

func TestUpdateCompanyManagerOnly(t *testing.T) {
	_, uc := newCompanyService()
	creator := uuid.New()
	c, err := uc.Create(context.Background(), creator, Company{Name: "Initech"})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), uuid.New(), Company{ID: c.ID, Name: "Initrode"})
	assert.ErrorIs(t, err, ErrNotManager)

	updated, err := uc.Update(context.Background(), creator, Company{ID: c.ID, Name: "Initrode"})
	require.NoError(t, err)
	assert.Equal(t, "Initrode", updated.Name)
}

func TestCreateOfficeManagerOnly(t *testing.T) {
	_, uc := newCompanyService()
	creator := uuid.New()
	c, err := uc.Create(context.Background(), creator, Company{Name: "Initech"})
	require.NoError(t, err)

	_, err = uc.CreateOffice(context.Background(), uuid.New(), Office{CompanyID: c.ID, City: "Austin"})
	assert.ErrorIs(t, err, ErrNotManager)

	o, err := uc.CreateOffice(context.Background(), creator, Office{CompanyID: c.ID, City: "Austin"})
	require.NoError(t, err)
	assert.Equal(t, c.ID, o.CompanyID)
}

func TestAddManagerByExistingManager(t *testing.T) {
	repo, uc := newCompanyService()
	creator := uuid.New()
	c, err := uc.Create(context.Background(), creator, Company{Name: "Initech"})
	require.NoError(t, err)

	colleague := uuid.New()
	err = uc.AddManager(context.Background(), uuid.New(), colleague, c.ID)
	assert.ErrorIs(t, err, ErrNotManager)

	require.NoError(t, uc.AddManager(context.Background(), creator, colleague, c.ID))
	ok, err := repo.HasManager(context.Background(), colleague, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
