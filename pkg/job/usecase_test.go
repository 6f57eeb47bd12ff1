package job

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobboard/pkg/company"
	"github.com/artem13815/jobboard/pkg/validation"
)

type fakeJobRepo struct {
	jobs        map[uuid.UUID]Job
	bookmarks   map[uuid.UUID]Bookmark
	bookmarkDup bool
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[uuid.UUID]Job{}, bookmarks: map[uuid.UUID]Bookmark{}}
}

func (f *fakeJobRepo) Create(_ context.Context, j Job) error {
	f.jobs[j.ID] = j
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return j, nil
}

func (f *fakeJobRepo) List(_ context.Context, _ Filter, _, _ int) ([]Job, error) {
	var out []Job
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeJobRepo) Update(_ context.Context, j Job) error {
	f.jobs[j.ID] = j
	return nil
}

func (f *fakeJobRepo) CreateBookmark(_ context.Context, b Bookmark) error {
	if f.bookmarkDup {
		return ErrDuplicateBookmark
	}
	f.bookmarks[b.ID] = b
	return nil
}

func (f *fakeJobRepo) GetBookmark(_ context.Context, id uuid.UUID) (Bookmark, error) {
	b, ok := f.bookmarks[id]
	if !ok {
		return Bookmark{}, ErrBookmarkNotFound
	}
	return b, nil
}

func (f *fakeJobRepo) ListBookmarks(_ context.Context, userID uuid.UUID, _, _ int) ([]Bookmark, error) {
	var out []Bookmark
	for _, b := range f.bookmarks {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) DeleteBookmark(_ context.Context, id uuid.UUID) error {
	delete(f.bookmarks, id)
	return nil
}

type fakeOffices struct {
	offices map[uuid.UUID]company.Office
}

func (f *fakeOffices) GetOffice(_ context.Context, id uuid.UUID) (company.Office, error) {
	o, ok := f.offices[id]
	if !ok {
		return company.Office{}, company.ErrOfficeNotFound
	}
	return o, nil
}

type fakeManagerAccess struct {
	managers map[uuid.UUID]bool
}

func (f *fakeManagerAccess) IsManager(_ context.Context, userID uuid.UUID, _ company.Holder) (bool, error) {
	return f.managers[userID], nil
}

type jobFixture struct {
	repo    *fakeJobRepo
	offices *fakeOffices
	access  *fakeManagerAccess
	uc      UseCase

	manager   uuid.UUID
	officeID  uuid.UUID
	companyID uuid.UUID
}

func newJobFixture() *jobFixture {
	f := &jobFixture{
		repo:      newFakeJobRepo(),
		offices:   &fakeOffices{offices: map[uuid.UUID]company.Office{}},
		access:    &fakeManagerAccess{managers: map[uuid.UUID]bool{}},
		manager:   uuid.New(),
		officeID:  uuid.New(),
		companyID: uuid.New(),
	}
	f.offices.offices[f.officeID] = company.Office{ID: f.officeID, CompanyID: f.companyID}
	f.access.managers[f.manager] = true
	f.uc = NewService(f.repo, f.offices, f.access)
	return f
}

func validJob(officeID uuid.UUID) Job {
	return Job{
		Title:           "Backend Engineer",
		Overview:        "Build the billing pipeline.",
		SalaryStartFrom: 100,
		SalaryEnd:       200,
		Type:            TypeFullTime,
		WorkPlace:       WorkPlaceRemote,
		OfficeID:        officeID,
	}
}

func TestCreateJob(t *testing.T) {
	f := newJobFixture()
	another := uuid.New()
	j := validJob(f.officeID)
	j.CompanyID = another // must be overridden by the office's company
	j.NumberOfApplicants = 42

	created, err := f.uc.Create(context.Background(), f.manager, j)
	require.NoError(t, err)
	assert.Equal(t, f.companyID, created.CompanyID)
	assert.Equal(t, 0, created.NumberOfApplicants)
	assert.Equal(t, f.manager, created.CreatedBy)
}

func TestCreateJobSalaryValidation(t *testing.T) {
	f := newJobFixture()

	j := validJob(f.officeID)
	j.SalaryStartFrom = 200
	j.SalaryEnd = 100
	_, err := f.uc.Create(context.Background(), f.manager, j)
	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"Salary start from must be less than salary end."}, ve.Fields["salary_start_from"])

	// Equal bounds are rejected too.
	j.SalaryStartFrom = 150
	j.SalaryEnd = 150
	_, err = f.uc.Create(context.Background(), f.manager, j)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"Salary start from must be less than salary end."}, ve.Fields["salary_start_from"])

	j.SalaryStartFrom = -1
	j.SalaryEnd = 100
	_, err = f.uc.Create(context.Background(), f.manager, j)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"Salary must be positive."}, ve.Fields["salary_start_from"])
}

func TestCreateJobUnknownOffice(t *testing.T) {
	f := newJobFixture()
	j := validJob(uuid.New())
	_, err := f.uc.Create(context.Background(), f.manager, j)
	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"Company office does not exist."}, ve.Fields["company_office"])
}

func TestCreateJobNonManager(t *testing.T) {
	f := newJobFixture()
	_, err := f.uc.Create(context.Background(), uuid.New(), validJob(f.officeID))
	assert.ErrorIs(t, err, company.ErrNotManager)
}

func TestUpdateJobRederivesCompany(t *testing.T) {
	f := newJobFixture()
	created, err := f.uc.Create(context.Background(), f.manager, validJob(f.officeID))
	require.NoError(t, err)

	otherCompany := uuid.New()
	otherOffice := uuid.New()
	f.offices.offices[otherOffice] = company.Office{ID: otherOffice, CompanyID: otherCompany}

	updated, err := f.uc.Update(context.Background(), f.manager, Job{ID: created.ID, OfficeID: otherOffice})
	require.NoError(t, err)
	assert.Equal(t, otherCompany, updated.CompanyID)
	assert.Equal(t, created.Title, updated.Title)
}

func TestUpdateJobNonManager(t *testing.T) {
	f := newJobFixture()
	created, err := f.uc.Create(context.Background(), f.manager, validJob(f.officeID))
	require.NoError(t, err)

	_, err = f.uc.Update(context.Background(), uuid.New(), Job{ID: created.ID, Title: "Renamed"})
	assert.ErrorIs(t, err, company.ErrNotManager)
}

func TestAddBookmark(t *testing.T) {
	f := newJobFixture()
	created, err := f.uc.Create(context.Background(), f.manager, validJob(f.officeID))
	require.NoError(t, err)

	user := uuid.New()
	b, err := f.uc.AddBookmark(context.Background(), user, created.ID)
	require.NoError(t, err)
	assert.Equal(t, user, b.UserID)
	assert.Equal(t, created.ID, b.JobID)
}

func TestAddBookmarkUnknownJob(t *testing.T) {
	f := newJobFixture()
	_, err := f.uc.AddBookmark(context.Background(), uuid.New(), uuid.New())
	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"Job does not exist."}, ve.Fields["job"])
}

func TestAddBookmarkDuplicate(t *testing.T) {
	f := newJobFixture()
	created, err := f.uc.Create(context.Background(), f.manager, validJob(f.officeID))
	require.NoError(t, err)
	f.repo.bookmarkDup = true

	_, err = f.uc.AddBookmark(context.Background(), uuid.New(), created.ID)
	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"You have already bookmarked this job."}, ve.Fields[validation.NonFieldKey])
}

func TestRemoveBookmarkOwnerOnly(t *testing.T) {
	f := newJobFixture()
	created, err := f.uc.Create(context.Background(), f.manager, validJob(f.officeID))
	require.NoError(t, err)

	owner := uuid.New()
	b, err := f.uc.AddBookmark(context.Background(), owner, created.ID)
	require.NoError(t, err)

	err = f.uc.RemoveBookmark(context.Background(), uuid.New(), b.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	err = f.uc.RemoveBookmark(context.Background(), owner, b.ID)
	require.NoError(t, err)

	_, err = f.repo.GetBookmark(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrBookmarkNotFound)
}
