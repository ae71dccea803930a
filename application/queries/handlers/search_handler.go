package handlers

import (
	"context"
	"strings"

	"supportportal/application/queries"
	"supportportal/domain/core/entities"
)

// Answerer produces a synthesized answer for a question
type Answerer interface {
	Answer(ctx context.Context, term string) (*entities.SearchResult, error)
}

// SearchArticlesHandler handles knowledge search queries
type SearchArticlesHandler struct {
	answers Answerer
}

// NewSearchArticlesHandler creates a new search handler
func NewSearchArticlesHandler(answers Answerer) *SearchArticlesHandler {
	return &SearchArticlesHandler{answers: answers}
}

// Handle answers the search term from the knowledge base
func (h *SearchArticlesHandler) Handle(ctx context.Context, query queries.SearchArticlesQuery) (*entities.SearchResult, error) {
	return h.answers.Answer(ctx, strings.TrimSpace(query.SearchTerm))
}
