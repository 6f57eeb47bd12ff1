package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/company"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/logging"
	"github.com/artem13815/jobboard/pkg/resume"
	"github.com/artem13815/jobboard/pkg/tasks"
	"github.com/artem13815/jobboard/pkg/validation"
)

// JobGetter resolves the job being applied to. Implemented by the job repository.
type JobGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
}

// ResumeGetter resolves resume ownership. Implemented by the resume repository.
type ResumeGetter interface {
	GetMeta(ctx context.Context, id uuid.UUID) (resume.Resume, error)
}

// ManagerAccess is the authorization predicate over the ownership chain.
type ManagerAccess interface {
	IsManager(ctx context.Context, userID uuid.UUID, h company.Holder) (bool, error)
}

type ApplyInput struct {
	JobID       uuid.UUID
	ResumeID    uuid.UUID
	CoverLetter string
}

// UseCase covers the intake pipeline, the status state machine and listings.
type UseCase interface {
	Apply(ctx context.Context, userID uuid.UUID, in ApplyInput) (Application, error)
	UpdateStatus(ctx context.Context, actorID, id uuid.UUID, to Status) (Application, error)
	GetByID(ctx context.Context, actorID, id uuid.UUID) (Application, error)
	ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Application, error)
	ListByJob(ctx context.Context, actorID, jobID uuid.UUID, limit, offset int) ([]Application, error)
}

type service struct {
	repo    Repository
	jobs    JobGetter
	resumes ResumeGetter
	access  ManagerAccess
	queue   tasks.Enqueuer
	log     *logging.Logger
}

func NewService(repo Repository, jobs JobGetter, resumes ResumeGetter, access ManagerAccess, queue tasks.Enqueuer, log *logging.Logger) UseCase {
	return &service{repo: repo, jobs: jobs, resumes: resumes, access: access, queue: queue, log: log}
}

// Apply validates the payload, persists the application in status "applied"
// (bumping the job's applicant counter in the same transaction) and then
// schedules the cover-letter analysis. Scheduling failures are logged only:
// the creation already succeeded and must be answered as such.
func (s *service) Apply(ctx context.Context, userID uuid.UUID, in ApplyInput) (Application, error) {
	in.CoverLetter = strings.TrimSpace(in.CoverLetter)
	if in.CoverLetter == "" {
		return Application{}, validation.New("cover_letter", "Cover letter is required.")
	}

	if _, err := s.jobs.GetByID(ctx, in.JobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return Application{}, validation.New("job", "Job does not exist.")
		}
		return Application{}, err
	}

	r, err := s.resumes.GetMeta(ctx, in.ResumeID)
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			return Application{}, validation.New("resume", "Resume does not belong to you.")
		}
		return Application{}, err
	}
	if r.UserID != userID {
		return Application{}, validation.New("resume", "Resume does not belong to you.")
	}

	// Fail fast on duplicates; the unique (user, job) index backstops the race.
	exists, err := s.repo.Exists(ctx, userID, in.JobID)
	if err != nil {
		return Application{}, err
	}
	if exists {
		return Application{}, duplicateError()
	}

	a := Application{
		ID:          uuid.New(),
		UserID:      userID,
		JobID:       in.JobID,
		ResumeID:    in.ResumeID,
		CoverLetter: in.CoverLetter,
		Status:      StatusApplied,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return Application{}, duplicateError()
		}
		return Application{}, err
	}

	if err := s.queue.Enqueue(ctx, tasks.TaskAnalyzeCoverLetter, a.ID); err != nil {
		s.log.Warn("failed to enqueue cover letter analysis", "application", a.ID, "err", err)
	}

	return s.repo.GetByID(ctx, a.ID)
}

// UpdateStatus is manager-only. The transition itself is validated by the
// repository against the persisted status under a lock; this method only
// resolves authorization through the job's owning company.
func (s *service) UpdateStatus(ctx context.Context, actorID, id uuid.UUID, to Status) (Application, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return Application{}, err
	}
	ok, err := s.access.IsManager(ctx, actorID, j)
	if err != nil {
		return Application{}, err
	}
	if !ok {
		return Application{}, company.ErrNotManager
	}
	return s.repo.UpdateStatus(ctx, id, to)
}

// GetByID is visible to the applicant and to managers of the job's company.
func (s *service) GetByID(ctx context.Context, actorID, id uuid.UUID) (Application, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if a.UserID == actorID {
		return a, nil
	}
	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return Application{}, err
	}
	ok, err := s.access.IsManager(ctx, actorID, j)
	if err != nil {
		return Application{}, err
	}
	if !ok {
		return Application{}, company.ErrNotManager
	}
	return a, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Application, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *service) ListByJob(ctx context.Context, actorID, jobID uuid.UUID, limit, offset int) ([]Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	ok, err := s.access.IsManager(ctx, actorID, j)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, company.ErrNotManager
	}
	return s.repo.ListByJob(ctx, jobID, limit, offset)
}

func duplicateError() *validation.Error {
	return validation.New(validation.NonFieldKey, "You've already applied to this job.")
}
