package queries

import (
	"strings"

	"supportportal/domain/core/entities"
	pkgerrors "supportportal/pkg/errors"
)

// ArticleListLimit caps the articles returned for a category
const ArticleListLimit = 20

// ListCategoriesQuery represents a query for the knowledge category tree
type ListCategoriesQuery struct{}

// Validate validates the ListCategoriesQuery
func (q ListCategoriesQuery) Validate() error {
	return nil
}

// ListArticlesQuery represents a query for the newest articles of a category
type ListArticlesQuery struct {
	CategoryName string
}

// Validate validates the ListArticlesQuery
func (q ListArticlesQuery) Validate() error {
	name := strings.TrimSpace(q.CategoryName)
	if name == "" {
		return pkgerrors.NewValidationError("Category name is required")
	}
	if !entities.IsCategoryName(name) {
		return pkgerrors.NewValidationError("Invalid category name")
	}
	return nil
}

// GetArticleQuery represents a query for a single article
type GetArticleQuery struct {
	URLName string
}

// Validate validates the GetArticleQuery
func (q GetArticleQuery) Validate() error {
	if strings.TrimSpace(q.URLName) == "" {
		return pkgerrors.NewValidationError("Article URL name is required")
	}
	return nil
}
