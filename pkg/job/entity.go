package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeFullTime Type = "full_time"
	TypePartTime Type = "part_time"
)

func (t Type) Valid() bool {
	return t == TypeFullTime || t == TypePartTime
}

type WorkPlace string

const (
	WorkPlaceRemote WorkPlace = "remote"
	WorkPlaceOffice WorkPlace = "office"
	WorkPlaceHybrid WorkPlace = "hybrid"
)

func (w WorkPlace) Valid() bool {
	return w == WorkPlaceRemote || w == WorkPlaceOffice || w == WorkPlaceHybrid
}

// Requirement and Responsibility are pure child records of a job; they are
// created with it and cascade-deleted with it.
type Requirement struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
}

type Responsibility struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
}

// Job is a posting under a company office.
//
// Invariants: CompanyID always equals the office's company (recomputed on
// every save, never taken from input), SalaryStartFrom < SalaryEnd strictly,
// and NumberOfApplicants only ever grows and is never client-writable.
type Job struct {
	ID                 uuid.UUID        `json:"id"`
	Title              string           `json:"title"`
	Overview           string           `json:"overview"`
	SalaryStartFrom    int              `json:"salary_start_from"`
	SalaryEnd          int              `json:"salary_end"`
	CompanyID          uuid.UUID        `json:"company_id"`
	OfficeID           uuid.UUID        `json:"company_office_id"`
	Type               Type             `json:"job_type"`
	WorkPlace          WorkPlace        `json:"work_place"`
	NumberOfApplicants int              `json:"number_of_applicants"`
	CreatedBy          uuid.UUID        `json:"created_by"`
	Requirements       []Requirement    `json:"requirements,omitempty"`
	Responsibilities   []Responsibility `json:"responsibilities,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func (j Job) GetCompany() (uuid.UUID, bool) {
	return j.CompanyID, j.CompanyID != uuid.Nil
}

// Bookmark is a save-point marker, unique per (user, job), owned and
// deletable only by its creating user.
type Bookmark struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	JobID     uuid.UUID `json:"job_id"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrNotFound          = errors.New("job not found")
	ErrBookmarkNotFound  = errors.New("bookmark not found")
	ErrDuplicateBookmark = errors.New("bookmark already exists")
	ErrNotOwner          = errors.New("not the owner of this resource")
)

// Filter narrows job listings.
type Filter struct {
	Type      Type
	WorkPlace WorkPlace
	CompanyID uuid.UUID
}

// Repository is the persistence port for jobs and bookmarks.
type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]Job, error)
	Update(ctx context.Context, j Job) error

	CreateBookmark(ctx context.Context, b Bookmark) error
	GetBookmark(ctx context.Context, id uuid.UUID) (Bookmark, error)
	ListBookmarks(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Bookmark, error)
	DeleteBookmark(ctx context.Context, id uuid.UUID) error
}
