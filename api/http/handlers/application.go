package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/application"
)

type ApplicationHandler struct {
	uc application.UseCase
}

func NewApplicationHandler(uc application.UseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type applyRequest struct {
	Job         string `json:"job"`
	Resume      string `json:"resume"`
	CoverLetter string `json:"cover_letter"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// @Summary Apply to a job
// @Tags    applications
// @Accept  json
// @Produce json
// @Param   input body applyRequest true "application payload"
// @Security BearerAuth
// @Success 201 {object} application.Application
// @Failure 400 {object} presenter.ValidationResponse
// @Router  /applications [post]
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	jobID, err := uuid.Parse(req.Job)
	if err != nil {
		return presenter.FieldError(c, "job", "Invalid job id.")
	}
	resumeID, err := uuid.Parse(req.Resume)
	if err != nil {
		return presenter.FieldError(c, "resume", "Invalid resume id.")
	}
	created, err := h.uc.Apply(c.Context(), uid, application.ApplyInput{
		JobID:       jobID,
		ResumeID:    resumeID,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// @Summary Change an application's status (managers only)
// @Description Valid moves: applied to invited, rejected or hired; invited to
// @Description rejected or hired. Rejected and hired are final.
// @Tags    applications
// @Accept  json
// @Produce json
// @Param   id path string true "application id (UUID)"
// @Param   input body statusRequest true "target status"
// @Security BearerAuth
// @Success 200 {object} application.Application
// @Failure 400 {object} presenter.ValidationResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /applications/{id} [patch]
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	to, ok := application.ParseStatus(req.Status)
	if !ok {
		return presenter.FieldError(c, "status", "Invalid status.")
	}
	updated, err := h.uc.UpdateStatus(c.Context(), uid, id, to)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, updated)
}

// @Summary Get an application
// @Description Visible to the applicant and to managers of the job's company.
// @Tags    applications
// @Produce json
// @Param   id path string true "application id (UUID)"
// @Security BearerAuth
// @Success 200 {object} application.Application
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{id} [get]
func (h *ApplicationHandler) GetByID(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	found, err := h.uc.GetByID(c.Context(), uid, id)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, found)
}

// @Summary List my applications
// @Tags    applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} application.Application
// @Router  /applications [get]
func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	limit, offset := parseLimitOffset(c, 50)
	list, err := h.uc.ListMine(c.Context(), uid, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, list)
}

// @Summary List applications for a job (managers only)
// @Description Ordered with unanalyzed cover letters first, then by the AI
// @Description score ascending.
// @Tags    applications
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Security BearerAuth
// @Success 200 {array} application.Application
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/applications [get]
func (h *ApplicationHandler) ListByJob(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	limit, offset := parseLimitOffset(c, 50)
	list, err := h.uc.ListByJob(c.Context(), uid, jobID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, list)
}
