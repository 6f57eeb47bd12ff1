package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/company"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/resume"
	"github.com/artem13815/jobboard/pkg/validation"
)

// currentUserID reads the identity set by the JWT middleware. A route behind
// the middleware always has it; the false case means broken wiring and is
// answered as 401.
func currentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	s, _ := c.Locals("userId").(string)
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps domain errors onto the HTTP taxonomy: validation
// (including illegal transitions) → 400 with field-keyed messages, missing
// grants/ownership → 403, missing path-addressed entities → 404, everything
// else → 500. Unauthenticated requests never reach here: the middleware
// already answered 401.
func respondError(c *fiber.Ctx, err error) error {
	var ve *validation.Error
	if errors.As(err, &ve) {
		return presenter.Validation(c, ve)
	}
	var te *application.TransitionError
	if errors.As(err, &te) {
		return presenter.FieldError(c, "status", te.Error())
	}
	switch {
	case errors.Is(err, company.ErrNotManager),
		errors.Is(err, job.ErrNotOwner),
		errors.Is(err, resume.ErrNotOwner):
		return presenter.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, company.ErrNotFound),
		errors.Is(err, company.ErrOfficeNotFound),
		errors.Is(err, job.ErrNotFound),
		errors.Is(err, job.ErrBookmarkNotFound),
		errors.Is(err, application.ErrNotFound),
		errors.Is(err, resume.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, err.Error())
	default:
		return presenter.Error(c, http.StatusInternalServerError, "internal error")
	}
}
