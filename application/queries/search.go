package queries

import (
	"strings"

	pkgerrors "supportportal/pkg/errors"
)

// SearchArticlesQuery represents a free-text question answered from the knowledge base
type SearchArticlesQuery struct {
	SearchTerm string
}

// Validate validates the SearchArticlesQuery
func (q SearchArticlesQuery) Validate() error {
	if strings.TrimSpace(q.SearchTerm) == "" {
		return pkgerrors.NewValidationError("Search term is required")
	}
	return nil
}
