package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/job"
)

type JobHandler struct {
	uc job.UseCase
}

func NewJobHandler(uc job.UseCase) *JobHandler { return &JobHandler{uc: uc} }

type jobRequest struct {
	Title            string   `json:"title"`
	Overview         string   `json:"overview"`
	SalaryStartFrom  int      `json:"salary_start_from"`
	SalaryEnd        int      `json:"salary_end"`
	JobType          string   `json:"job_type"`
	WorkPlace        string   `json:"work_place"`
	CompanyOffice    string   `json:"company_office"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
}

func (req jobRequest) toJob() job.Job {
	j := job.Job{
		Title:           req.Title,
		Overview:        req.Overview,
		SalaryStartFrom: req.SalaryStartFrom,
		SalaryEnd:       req.SalaryEnd,
		Type:            job.Type(req.JobType),
		WorkPlace:       job.WorkPlace(req.WorkPlace),
	}
	for _, d := range req.Requirements {
		j.Requirements = append(j.Requirements, job.Requirement{Description: d})
	}
	for _, d := range req.Responsibilities {
		j.Responsibilities = append(j.Responsibilities, job.Responsibility{Description: d})
	}
	return j
}

// @Summary Post a job (managers of the office's company only)
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body jobRequest true "job payload"
// @Security BearerAuth
// @Success 201 {object} job.Job
// @Failure 400 {object} presenter.ValidationResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	var req jobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	officeID, err := uuid.Parse(req.CompanyOffice)
	if err != nil {
		return presenter.FieldError(c, "company_office", "Invalid company office id.")
	}
	j := req.toJob()
	j.OfficeID = officeID
	created, err := h.uc.Create(c.Context(), uid, j)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// @Summary Get a job
// @Tags    jobs
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Success 200 {object} job.Job
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	found, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, found)
}

// @Summary List jobs
// @Description Optional filters: job_type, work_place, company.
// @Tags    jobs
// @Produce json
// @Router  /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	f := job.Filter{
		Type:      job.Type(c.Query("job_type")),
		WorkPlace: job.WorkPlace(c.Query("work_place")),
	}
	if v := c.Query("company"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return presenter.FieldError(c, "company", "Invalid company id.")
		}
		f.CompanyID = id
	}
	list, err := h.uc.List(c.Context(), f, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, list)
}

// @Summary Update a job (managers only)
// @Description The owning company is always recomputed from the office.
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Param   input body jobRequest true "fields to update"
// @Security BearerAuth
// @Success 200 {object} job.Job
// @Failure 400 {object} presenter.ValidationResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [patch]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req jobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	j := req.toJob()
	j.ID = id
	if req.CompanyOffice != "" {
		officeID, err := uuid.Parse(req.CompanyOffice)
		if err != nil {
			return presenter.FieldError(c, "company_office", "Invalid company office id.")
		}
		j.OfficeID = officeID
	}
	updated, err := h.uc.Update(c.Context(), uid, j)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, updated)
}
