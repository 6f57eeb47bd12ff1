package job

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/company"
	"github.com/artem13815/jobboard/pkg/validation"
)

const salaryRangeMessage = "Salary start from must be less than salary end."

// OfficeGetter resolves the office a job is posted under. Implemented by the
// company repository.
type OfficeGetter interface {
	GetOffice(ctx context.Context, id uuid.UUID) (company.Office, error)
}

// ManagerAccess is the authorization predicate over the ownership chain.
type ManagerAccess interface {
	IsManager(ctx context.Context, userID uuid.UUID, h company.Holder) (bool, error)
}

// UseCase covers job postings and bookmarks.
type UseCase interface {
	Create(ctx context.Context, actorID uuid.UUID, j Job) (Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]Job, error)
	Update(ctx context.Context, actorID uuid.UUID, j Job) (Job, error)

	AddBookmark(ctx context.Context, userID, jobID uuid.UUID) (Bookmark, error)
	ListBookmarks(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Bookmark, error)
	RemoveBookmark(ctx context.Context, userID, bookmarkID uuid.UUID) error
}

type service struct {
	repo    Repository
	offices OfficeGetter
	access  ManagerAccess
}

func NewService(repo Repository, offices OfficeGetter, access ManagerAccess) UseCase {
	return &service{repo: repo, offices: offices, access: access}
}

func validateSalary(ve *validation.Error, startFrom, end int) {
	if startFrom < 0 || end < 0 {
		ve.Add("salary_start_from", "Salary must be positive.")
		return
	}
	// Equal bounds are invalid too: the range must be strictly increasing.
	if startFrom >= end {
		ve.Add("salary_start_from", salaryRangeMessage)
	}
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, j Job) (Job, error) {
	j.Title = strings.TrimSpace(j.Title)
	ve := &validation.Error{}
	if j.Title == "" {
		ve.Add("title", "Title is required.")
	}
	if j.Overview == "" {
		ve.Add("overview", "Overview is required.")
	}
	if !j.Type.Valid() {
		ve.Add("job_type", "Job type must be full_time or part_time.")
	}
	if !j.WorkPlace.Valid() {
		ve.Add("work_place", "Work place must be remote, office or hybrid.")
	}
	validateSalary(ve, j.SalaryStartFrom, j.SalaryEnd)
	if len(ve.Fields) > 0 {
		return Job{}, ve
	}

	office, err := s.offices.GetOffice(ctx, j.OfficeID)
	if err != nil {
		if errors.Is(err, company.ErrOfficeNotFound) {
			return Job{}, validation.New("company_office", "Company office does not exist.")
		}
		return Job{}, err
	}
	ok, err := s.access.IsManager(ctx, actorID, office)
	if err != nil {
		return Job{}, err
	}
	if !ok {
		return Job{}, company.ErrNotManager
	}

	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	// Derived, never trusted from input.
	j.CompanyID = office.CompanyID
	j.CreatedBy = actorID
	j.NumberOfApplicants = 0
	for i := range j.Requirements {
		if j.Requirements[i].ID == uuid.Nil {
			j.Requirements[i].ID = uuid.New()
		}
	}
	for i := range j.Responsibilities {
		if j.Responsibilities[i].ID == uuid.Nil {
			j.Responsibilities[i].ID = uuid.New()
		}
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return Job{}, err
	}
	return s.repo.GetByID(ctx, j.ID)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, f Filter, limit, offset int) ([]Job, error) {
	return s.repo.List(ctx, f, limit, offset)
}

func (s *service) Update(ctx context.Context, actorID uuid.UUID, j Job) (Job, error) {
	existing, err := s.repo.GetByID(ctx, j.ID)
	if err != nil {
		return Job{}, err
	}
	ok, err := s.access.IsManager(ctx, actorID, existing)
	if err != nil {
		return Job{}, err
	}
	if !ok {
		return Job{}, company.ErrNotManager
	}

	if title := strings.TrimSpace(j.Title); title != "" {
		existing.Title = title
	}
	if j.Overview != "" {
		existing.Overview = j.Overview
	}
	if j.Type != "" {
		if !j.Type.Valid() {
			return Job{}, validation.New("job_type", "Job type must be full_time or part_time.")
		}
		existing.Type = j.Type
	}
	if j.WorkPlace != "" {
		if !j.WorkPlace.Valid() {
			return Job{}, validation.New("work_place", "Work place must be remote, office or hybrid.")
		}
		existing.WorkPlace = j.WorkPlace
	}
	if j.SalaryStartFrom != 0 {
		existing.SalaryStartFrom = j.SalaryStartFrom
	}
	if j.SalaryEnd != 0 {
		existing.SalaryEnd = j.SalaryEnd
	}
	if j.OfficeID != uuid.Nil {
		existing.OfficeID = j.OfficeID
	}

	ve := &validation.Error{}
	validateSalary(ve, existing.SalaryStartFrom, existing.SalaryEnd)
	if len(ve.Fields) > 0 {
		return Job{}, ve
	}

	// Recompute the derived company on every save, even when the office did
	// not change in this request.
	office, err := s.offices.GetOffice(ctx, existing.OfficeID)
	if err != nil {
		if errors.Is(err, company.ErrOfficeNotFound) {
			return Job{}, validation.New("company_office", "Company office does not exist.")
		}
		return Job{}, err
	}
	existing.CompanyID = office.CompanyID

	if err := s.repo.Update(ctx, existing); err != nil {
		return Job{}, err
	}
	return s.repo.GetByID(ctx, existing.ID)
}

func (s *service) AddBookmark(ctx context.Context, userID, jobID uuid.UUID) (Bookmark, error) {
	if _, err := s.repo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Bookmark{}, validation.New("job", "Job does not exist.")
		}
		return Bookmark{}, err
	}
	b := Bookmark{ID: uuid.New(), UserID: userID, JobID: jobID}
	if err := s.repo.CreateBookmark(ctx, b); err != nil {
		if errors.Is(err, ErrDuplicateBookmark) {
			return Bookmark{}, validation.New(validation.NonFieldKey, "You have already bookmarked this job.")
		}
		return Bookmark{}, err
	}
	return s.repo.GetBookmark(ctx, b.ID)
}

func (s *service) ListBookmarks(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Bookmark, error) {
	return s.repo.ListBookmarks(ctx, userID, limit, offset)
}

func (s *service) RemoveBookmark(ctx context.Context, userID, bookmarkID uuid.UUID) error {
	b, err := s.repo.GetBookmark(ctx, bookmarkID)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.DeleteBookmark(ctx, bookmarkID)
}
