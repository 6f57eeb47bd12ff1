package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/resume"
)

type ResumeHandler struct {
	uc resume.UseCase
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewResumeHandler(uc resume.UseCase) *ResumeHandler {
	return &ResumeHandler{uc: uc, maxBytes: 15 << 20} // 15MB
}

// @Summary Upload a resume (PDF or DOCX)
// @Description Stores the file and schedules plain-text extraction in the
// @Description background worker.
// @Tags    resumes
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "resume file"
// @Security BearerAuth
// @Success 201 {object} resume.Resume
// @Failure 400 {object} presenter.ValidationResponse
// @Router  /resumes [post]
func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return presenter.FieldError(c, "file", "A resume file is required.")
	}
	if fh.Size > h.maxBytes {
		return presenter.FieldError(c, "file", "File is too large.")
	}
	src, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "could not read uploaded file")
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, h.maxBytes))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "could not read uploaded file")
	}

	created, err := h.uc.Upload(c.Context(), uid, fh.Filename, data)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// @Summary List my resumes
// @Tags    resumes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resume.Resume
// @Router  /resumes [get]
func (h *ResumeHandler) List(c *fiber.Ctx) error {
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

// @Summary Delete a resume (owner only)
// @Tags    resumes
// @Param   id path string true "resume id (UUID)"
// @Security BearerAuth
// @Success 204
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [delete]
func (h *ResumeHandler) Delete(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.Delete(c.Context(), uid, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
