package handlers

import (
	"net/http"

	"supportportal/application/queries"
	querybus "supportportal/application/queries/bus"
	"supportportal/domain/core/entities"
	"supportportal/pkg/api"
	pkgerrors "supportportal/pkg/errors"
)

// KnowledgeHandler handles knowledge base HTTP requests
type KnowledgeHandler struct {
	queryBus *querybus.QueryBus
	errors   *pkgerrors.ErrorHandler
}

// NewKnowledgeHandler creates a new knowledge handler
func NewKnowledgeHandler(queryBus *querybus.QueryBus, errorHandler *pkgerrors.ErrorHandler) *KnowledgeHandler {
	return &KnowledgeHandler{
		queryBus: queryBus,
		errors:   errorHandler,
	}
}

// ListCategories handles GET /knowledge/categories
func (h *KnowledgeHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListCategoriesQuery{})
	if err != nil {
		h.errors.Handle(w, r, err, "Failed to fetch categories")
		return
	}

	tree := result.(*entities.CategoryNode)
	respondJSON(w, http.StatusOK, api.FromCategoryNode(*tree))
}

// ListArticles handles GET /knowledge/articles/{categoryName}
func (h *KnowledgeHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	query := queries.ListArticlesQuery{CategoryName: pathParam(r, "categoryName")}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err, "Failed to fetch articles")
		return
	}

	respondJSON(w, http.StatusOK, api.FromArticleSummaries(result.([]entities.ArticleSummary)))
}

// GetArticle handles GET /knowledge/article/{urlName}
func (h *KnowledgeHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	query := queries.GetArticleQuery{URLName: pathParam(r, "urlName")}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err, "Failed to fetch article")
		return
	}

	article := result.(*entities.ArticleDetail)
	respondJSON(w, http.StatusOK, api.FromArticleDetail(*article))
}
