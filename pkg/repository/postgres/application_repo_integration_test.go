//go:build integration
// +build integration

package postgres

// Run with: go test -tags=integration -v ./pkg/repository/postgres -count=1

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/company"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/resume"
	storage "github.com/artem13815/jobboard/pkg/storage/postgres"
)

type repoSet struct {
	jobs *JobRepository
	apps *ApplicationRepository

	userID   uuid.UUID
	jobID    uuid.UUID
	resumeID uuid.UUID
}

// newRepoSet starts a real PostgreSQL, builds every repository (which also
// applies the schema) and seeds one user, company, office, job and resume.
func newRepoSet(t *testing.T) *repoSet {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcpostgres.RunContainer(ctx,
		tc.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	uri, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := storage.Connect(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	users, err := NewUserRepository(pool)
	require.NoError(t, err)
	companies, err := NewCompanyRepository(pool)
	require.NoError(t, err)
	jobs, err := NewJobRepository(pool)
	require.NoError(t, err)
	resumes, err := NewResumeRepository(pool)
	require.NoError(t, err)
	apps, err := NewApplicationRepository(pool)
	require.NoError(t, err)

	s := &repoSet{
		jobs:     jobs,
		apps:     apps,
		userID:   uuid.New(),
		jobID:    uuid.New(),
		resumeID: uuid.New(),
	}
	now := time.Now().UTC()

	require.NoError(t, users.Create(ctx, auth.User{
		ID: s.userID, Email: "applicant@example.com",
		FirstName: "App", LastName: "Licant",
		PasswordHash: "x", CreatedAt: now,
	}))

	companyID := uuid.New()
	require.NoError(t, companies.Create(ctx, company.Company{
		ID: companyID, Name: "Initech", NumberOfEmployees: company.Employees51To200,
	}))
	officeID := uuid.New()
	require.NoError(t, companies.CreateOffice(ctx, company.Office{
		ID: officeID, CompanyID: companyID, City: "Austin",
	}))

	require.NoError(t, jobs.Create(ctx, job.Job{
		ID: s.jobID, Title: "Backend Engineer", Overview: "Billing pipeline.",
		SalaryStartFrom: 100, SalaryEnd: 200,
		CompanyID: companyID, OfficeID: officeID,
		Type: job.TypeFullTime, WorkPlace: job.WorkPlaceRemote,
		CreatedBy: s.userID,
	}))

	require.NoError(t, resumes.Create(ctx, resume.Resume{
		ID: s.resumeID, UserID: s.userID, Filename: "cv.pdf",
		StoragePath: "/tmp/cv.pdf", Size: 1,
	}))
	return s
}

func (s *repoSet) newApplication(t *testing.T, ctx context.Context) application.Application {
	t.Helper()
	a := application.Application{
		ID:          uuid.New(),
		UserID:      s.userID,
		JobID:       s.jobID,
		ResumeID:    s.resumeID,
		CoverLetter: "Hello there.",
		Status:      application.StatusApplied,
	}
	require.NoError(t, s.apps.Create(ctx, a))
	return a
}

func TestApplicationRepository_Integration_CreateBumpsApplicantCounter(t *testing.T) {
	ctx := context.Background()
	s := newRepoSet(t)

	before, err := s.jobs.GetByID(ctx, s.jobID)
	require.NoError(t, err)
	require.Equal(t, 0, before.NumberOfApplicants)

	s.newApplication(t, ctx)

	after, err := s.jobs.GetByID(ctx, s.jobID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.NumberOfApplicants)

	// A duplicate (user, job) insert rolls back whole, counter included.
	err = s.apps.Create(ctx, application.Application{
		ID: uuid.New(), UserID: s.userID, JobID: s.jobID, ResumeID: s.resumeID,
		CoverLetter: "Again.", Status: application.StatusApplied,
	})
	assert.ErrorIs(t, err, application.ErrDuplicate)

	unchanged, err := s.jobs.GetByID(ctx, s.jobID)
	require.NoError(t, err)
	assert.Equal(t, 1, unchanged.NumberOfApplicants)
}

func TestApplicationRepository_Integration_StatusCheckedAgainstPersistedRow(t *testing.T) {
	ctx := context.Background()
	s := newRepoSet(t)
	a := s.newApplication(t, ctx)

	// Legal chain: applied -> invited -> hired.
	got, err := s.apps.UpdateStatus(ctx, a.ID, application.StatusInvited)
	require.NoError(t, err)
	assert.Equal(t, application.StatusInvited, got.Status)

	got, err = s.apps.UpdateStatus(ctx, a.ID, application.StatusHired)
	require.NoError(t, err)
	assert.Equal(t, application.StatusHired, got.Status)

	// The second call is validated against the first's persisted result, not
	// against the state this test started from.
	_, err = s.apps.UpdateStatus(ctx, a.ID, application.StatusInvited)
	var te *application.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, application.StatusHired, te.From)
	assert.Equal(t, application.StatusInvited, te.To)

	row, err := s.apps.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusHired, row.Status)
}

func TestApplicationRepository_Integration_ConcurrentTransitionsSerialize(t *testing.T) {
	ctx := context.Background()
	s := newRepoSet(t)
	a := s.newApplication(t, ctx)

	// Both targets are legal from "applied" but terminal, so the row lock must
	// let exactly one through; the loser re-reads the winner's state.
	targets := []application.Status{application.StatusRejected, application.StatusHired}
	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, to := range targets {
		wg.Add(1)
		go func(i int, to application.Status) {
			defer wg.Done()
			_, errs[i] = s.apps.UpdateStatus(ctx, a.ID, to)
		}(i, to)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		var te *application.TransitionError
		require.ErrorAs(t, err, &te)
		assert.True(t, te.From.Terminal())
		lost++
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)

	row, err := s.apps.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, row.Status.Terminal())
}
