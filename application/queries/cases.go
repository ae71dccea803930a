package queries

import (
	"strings"

	pkgerrors "supportportal/pkg/errors"
)

// ListCasesQuery represents a query for a customer's open cases
type ListCasesQuery struct {
	Email string
}

// Validate validates the ListCasesQuery
func (q ListCasesQuery) Validate() error {
	if strings.TrimSpace(q.Email) == "" {
		return pkgerrors.NewValidationError("Email is required")
	}
	return nil
}
