package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/job"
)

type BookmarkHandler struct {
	uc job.UseCase
}

func NewBookmarkHandler(uc job.UseCase) *BookmarkHandler { return &BookmarkHandler{uc: uc} }

type bookmarkRequest struct {
	Job string `json:"job"`
}

// @Summary Bookmark a job
// @Tags    bookmarks
// @Accept  json
// @Produce json
// @Param   input body bookmarkRequest true "job to bookmark"
// @Security BearerAuth
// @Success 201 {object} job.Bookmark
// @Failure 400 {object} presenter.ValidationResponse
// @Router  /bookmarks [post]
func (h *BookmarkHandler) Create(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	var req bookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	jobID, err := uuid.Parse(req.Job)
	if err != nil {
		return presenter.FieldError(c, "job", "Invalid job id.")
	}
	created, err := h.uc.AddBookmark(c.Context(), uid, jobID)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// @Summary List my bookmarks
// @Tags    bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} job.Bookmark
// @Router  /bookmarks [get]
func (h *BookmarkHandler) List(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	limit, offset := parseLimitOffset(c, 50)
	list, err := h.uc.ListBookmarks(c.Context(), uid, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, list)
}

// @Summary Remove a bookmark (owner only)
// @Tags    bookmarks
// @Param   id path string true "bookmark id (UUID)"
// @Security BearerAuth
// @Success 204
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /bookmarks/{id} [delete]
func (h *BookmarkHandler) Delete(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.RemoveBookmark(c.Context(), uid, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
