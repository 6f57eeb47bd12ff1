package company

import (
	"context"

	"github.com/google/uuid"
)

// GrantChecker is the narrow slice of Repository the predicate needs.
type GrantChecker interface {
	HasManager(ctx context.Context, userID, companyID uuid.UUID) (bool, error)
}

// Access decides whether a user holds a manager grant over the company that
// owns a resource. It is a pure read-only predicate; callers translate false
// into 403 and a missing identity into 401 at the boundary.
type Access struct {
	grants GrantChecker
}

func NewAccess(grants GrantChecker) *Access {
	return &Access{grants: grants}
}

// IsManager resolves the owning company through the Holder interface and
// checks the grant. Anonymous users and resources with no resolvable company
// are always denied.
func (a *Access) IsManager(ctx context.Context, userID uuid.UUID, h Holder) (bool, error) {
	if userID == uuid.Nil || h == nil {
		return false, nil
	}
	companyID, ok := h.GetCompany()
	if !ok {
		return false, nil
	}
	return a.grants.HasManager(ctx, userID, companyID)
}
