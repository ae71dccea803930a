package ports

import (
	"context"

	"supportportal/domain/core/entities"
)

// KnowledgeBase defines the interface to the CRM's knowledge articles
// This is a port in hexagonal architecture - the application doesn't know it is Salesforce
type KnowledgeBase interface {
	// CategoryGroups lists the data category groups, in CRM order
	CategoryGroups(ctx context.Context) ([]entities.CategoryGroup, error)

	// CategoryTree retrieves the category hierarchy of a group
	CategoryTree(ctx context.Context, group string) (*entities.CategoryNode, error)

	// ArticlesByCategory lists published articles of a category, newest first
	ArticlesByCategory(ctx context.Context, category string, limit int) ([]entities.ArticleSummary, error)

	// ArticleByURLName retrieves a single published article
	ArticleByURLName(ctx context.Context, urlName string) (*entities.ArticleDetail, error)

	// SearchArticles runs a full-text search over published articles
	SearchArticles(ctx context.Context, term string, limit int) ([]entities.ArticleSummary, error)
}

// CaseDesk defines the interface to the CRM's support cases
type CaseDesk interface {
	// OpenCasesByEmail lists a customer's open cases, newest first
	OpenCasesByEmail(ctx context.Context, email string) ([]entities.Case, error)

	// CreateComment attaches a comment to a case
	CreateComment(ctx context.Context, comment entities.CaseComment) (*entities.CaseComment, error)
}

// LanguageModel produces a single text completion for a prompt
type LanguageModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SessionState reports whether the CRM session is usable
type SessionState interface {
	Ready() bool
}
