package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/company"
	"github.com/artem13815/jobboard/pkg/validation"
)

type stubApplicationUC struct {
	applyFn  func(ctx context.Context, userID uuid.UUID, in application.ApplyInput) (application.Application, error)
	updateFn func(ctx context.Context, actorID, id uuid.UUID, to application.Status) (application.Application, error)
}

func (s *stubApplicationUC) Apply(ctx context.Context, userID uuid.UUID, in application.ApplyInput) (application.Application, error) {
	return s.applyFn(ctx, userID, in)
}

func (s *stubApplicationUC) UpdateStatus(ctx context.Context, actorID, id uuid.UUID, to application.Status) (application.Application, error) {
	return s.updateFn(ctx, actorID, id, to)
}

func (s *stubApplicationUC) GetByID(context.Context, uuid.UUID, uuid.UUID) (application.Application, error) {
	return application.Application{}, application.ErrNotFound
}

func (s *stubApplicationUC) ListMine(context.Context, uuid.UUID, int, int) ([]application.Application, error) {
	return nil, nil
}

func (s *stubApplicationUC) ListByJob(context.Context, uuid.UUID, uuid.UUID, int, int) ([]application.Application, error) {
	return nil, nil
}

func newApplicationApp(uc application.UseCase, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	h := NewApplicationHandler(uc)
	withUser := func(c *fiber.Ctx) error {
		if userID != uuid.Nil {
			c.Locals("userId", userID.String())
		}
		return c.Next()
	}
	app.Post("/applications", withUser, h.Apply)
	app.Patch("/applications/:id", withUser, h.UpdateStatus)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestApplyHandler(t *testing.T) {
	userID := uuid.New()
	jobID := uuid.New()
	resumeID := uuid.New()
	uc := &stubApplicationUC{
		applyFn: func(_ context.Context, uid uuid.UUID, in application.ApplyInput) (application.Application, error) {
			assert.Equal(t, userID, uid)
			assert.Equal(t, jobID, in.JobID)
			return application.Application{ID: uuid.New(), UserID: uid, JobID: in.JobID, Status: application.StatusApplied}, nil
		},
	}
	app := newApplicationApp(uc, userID)

	resp, body := doJSON(t, app, http.MethodPost, "/applications", fiber.Map{
		"job":          jobID.String(),
		"resume":       resumeID.String(),
		"cover_letter": "I would love to join.",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "applied", body["status"])
}

func TestApplyHandlerInvalidJobID(t *testing.T) {
	uc := &stubApplicationUC{
		applyFn: func(context.Context, uuid.UUID, application.ApplyInput) (application.Application, error) {
			t.Fatal("use case must not be reached")
			return application.Application{}, nil
		},
	}
	app := newApplicationApp(uc, uuid.New())

	resp, body := doJSON(t, app, http.MethodPost, "/applications", fiber.Map{
		"job":    "not-a-uuid",
		"resume": uuid.New().String(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs := body["errors"].(map[string]any)
	assert.Equal(t, []any{"Invalid job id."}, errs["job"])
}

func TestApplyHandlerValidationError(t *testing.T) {
	uc := &stubApplicationUC{
		applyFn: func(context.Context, uuid.UUID, application.ApplyInput) (application.Application, error) {
			return application.Application{}, validation.New("job", "Job does not exist.")
		},
	}
	app := newApplicationApp(uc, uuid.New())

	resp, body := doJSON(t, app, http.MethodPost, "/applications", fiber.Map{
		"job":          uuid.New().String(),
		"resume":       uuid.New().String(),
		"cover_letter": "hello",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs := body["errors"].(map[string]any)
	assert.Equal(t, []any{"Job does not exist."}, errs["job"])
}

func TestApplyHandlerUnauthenticated(t *testing.T) {
	uc := &stubApplicationUC{
		applyFn: func(context.Context, uuid.UUID, application.ApplyInput) (application.Application, error) {
			t.Fatal("use case must not be reached")
			return application.Application{}, nil
		},
	}
	app := newApplicationApp(uc, uuid.Nil)

	resp, _ := doJSON(t, app, http.MethodPost, "/applications", fiber.Map{})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateStatusHandler(t *testing.T) {
	id := uuid.New()
	uc := &stubApplicationUC{
		updateFn: func(_ context.Context, _, gotID uuid.UUID, to application.Status) (application.Application, error) {
			assert.Equal(t, id, gotID)
			assert.Equal(t, application.StatusInvited, to)
			return application.Application{ID: gotID, Status: to}, nil
		},
	}
	app := newApplicationApp(uc, uuid.New())

	resp, body := doJSON(t, app, http.MethodPatch, "/applications/"+id.String(), fiber.Map{"status": "invited"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "invited", body["status"])
}

func TestUpdateStatusHandlerUnknownStatus(t *testing.T) {
	uc := &stubApplicationUC{
		updateFn: func(context.Context, uuid.UUID, uuid.UUID, application.Status) (application.Application, error) {
			t.Fatal("use case must not be reached")
			return application.Application{}, nil
		},
	}
	app := newApplicationApp(uc, uuid.New())

	resp, body := doJSON(t, app, http.MethodPatch, "/applications/"+uuid.New().String(), fiber.Map{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs := body["errors"].(map[string]any)
	assert.Equal(t, []any{"Invalid status."}, errs["status"])
}

func TestUpdateStatusHandlerIllegalTransition(t *testing.T) {
	uc := &stubApplicationUC{
		updateFn: func(context.Context, uuid.UUID, uuid.UUID, application.Status) (application.Application, error) {
			return application.Application{}, &application.TransitionError{From: application.StatusHired, To: application.StatusInvited}
		},
	}
	app := newApplicationApp(uc, uuid.New())

	resp, body := doJSON(t, app, http.MethodPatch, "/applications/"+uuid.New().String(), fiber.Map{"status": "invited"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs := body["errors"].(map[string]any)
	assert.Equal(t, []any{"cannot change status from hired to invited"}, errs["status"])
}

func TestUpdateStatusHandlerForbidden(t *testing.T) {
	uc := &stubApplicationUC{
		updateFn: func(context.Context, uuid.UUID, uuid.UUID, application.Status) (application.Application, error) {
			return application.Application{}, company.ErrNotManager
		},
	}
	app := newApplicationApp(uc, uuid.New())

	resp, _ := doJSON(t, app, http.MethodPatch, "/applications/"+uuid.New().String(), fiber.Map{"status": "invited"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
