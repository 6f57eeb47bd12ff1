package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/company"
)

type CompanyHandler struct {
	uc company.UseCase
}

func NewCompanyHandler(uc company.UseCase) *CompanyHandler { return &CompanyHandler{uc: uc} }

type createCompanyRequest struct {
	Name              string `json:"name"`
	About             string `json:"about"`
	NumberOfEmployees int    `json:"number_of_employees"`
	Website           string `json:"website"`
}

// @Summary Register a company
// @Description Creates a company; the creator receives a manager grant.
// @Tags    companies
// @Accept  json
// @Produce json
// @Param   input body createCompanyRequest true "company payload"
// @Security BearerAuth
// @Success 201 {object} company.Company
// @Failure 400 {object} presenter.ValidationResponse
// @Router  /companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	var req createCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	created, err := h.uc.Create(c.Context(), uid, company.Company{
		Name:              req.Name,
		About:             req.About,
		NumberOfEmployees: company.EmployeeBracket(req.NumberOfEmployees),
		Website:           req.Website,
	})
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// @Summary Get a company
// @Tags    companies
// @Produce json
// @Param   id path string true "company id (UUID)"
// @Success 200 {object} company.Company
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
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

// @Summary List companies
// @Tags    companies
// @Produce json
// @Router  /companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	list, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, list)
}

// @Summary Update a company (managers only)
// @Tags    companies
// @Accept  json
// @Produce json
// @Param   id path string true "company id (UUID)"
// @Param   input body createCompanyRequest true "fields to update"
// @Security BearerAuth
// @Success 200 {object} company.Company
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /companies/{id} [patch]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req createCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	updated, err := h.uc.Update(c.Context(), uid, company.Company{
		ID:                id,
		Name:              req.Name,
		About:             req.About,
		NumberOfEmployees: company.EmployeeBracket(req.NumberOfEmployees),
		Website:           req.Website,
	})
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, updated)
}

type createOfficeRequest struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

// @Summary Open a company office (managers only)
// @Tags    companies
// @Accept  json
// @Produce json
// @Param   id path string true "company id (UUID)"
// @Param   input body createOfficeRequest true "office payload"
// @Security BearerAuth
// @Success 201 {object} company.Office
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /companies/{id}/offices [post]
func (h *CompanyHandler) CreateOffice(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	companyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req createOfficeRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	office, err := h.uc.CreateOffice(c.Context(), uid, company.Office{
		CompanyID: companyID,
		Country:   req.Country,
		City:      req.City,
	})
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, office)
}

// @Summary List a company's offices
// @Tags    companies
// @Produce json
// @Param   id path string true "company id (UUID)"
// @Router  /companies/{id}/offices [get]
func (h *CompanyHandler) ListOffices(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	limit, offset := parseLimitOffset(c, 50)
	offices, err := h.uc.ListOffices(c.Context(), companyID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, offices)
}

type addManagerRequest struct {
	UserID string `json:"user_id"`
}

// @Summary Grant a user the manager role (managers only)
// @Tags    companies
// @Accept  json
// @Produce json
// @Param   id path string true "company id (UUID)"
// @Param   input body addManagerRequest true "user to grant"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /companies/{id}/managers [post]
func (h *CompanyHandler) AddManager(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	companyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req addManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return presenter.FieldError(c, "user_id", "Invalid user id.")
	}
	if err := h.uc.AddManager(c.Context(), uid, userID, companyID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
