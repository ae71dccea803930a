package handlers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"supportportal/application/ports"
	"supportportal/application/queries"
	"supportportal/domain/core/entities"
	pkgerrors "supportportal/pkg/errors"

	"go.uber.org/zap"
)

// RootCategoryName names the synthetic root returned when no category group exists
const RootCategoryName = "All"

// ListCategoriesHandler handles category tree queries
type ListCategoriesHandler struct {
	knowledge   ports.KnowledgeBase
	filterGroup string
	logger      *zap.Logger
	mismatch    sync.Once
}

// NewListCategoriesHandler creates a new category tree handler. filterGroup is the
// group article listings filter on; the tree shown should come from the same group.
func NewListCategoriesHandler(knowledge ports.KnowledgeBase, filterGroup string, logger *zap.Logger) *ListCategoriesHandler {
	return &ListCategoriesHandler{
		knowledge:   knowledge,
		filterGroup: filterGroup,
		logger:      logger,
	}
}

// Handle returns the category tree of the first category group
func (h *ListCategoriesHandler) Handle(ctx context.Context, query queries.ListCategoriesQuery) (*entities.CategoryNode, error) {
	groups, err := h.knowledge.CategoryGroups(ctx)
	if err != nil {
		return nil, pkgerrors.NewUpstreamError("crm", fmt.Errorf("failed to list category groups: %w", err))
	}

	if len(groups) == 0 {
		h.logger.Warn("No knowledge category groups found, returning empty tree")
		return &entities.CategoryNode{
			Name:     RootCategoryName,
			Label:    RootCategoryName,
			Children: []entities.CategoryNode{},
		}, nil
	}

	if groups[0].Name != h.filterGroup {
		h.mismatch.Do(func() {
			h.logger.Warn("First category group differs from KB_CATEGORY_GROUP, category article listings will not match the tree",
				zap.String("tree_group", groups[0].Name),
				zap.String("filter_group", h.filterGroup),
			)
		})
	}

	tree, err := h.knowledge.CategoryTree(ctx, groups[0].Name)
	if err != nil {
		return nil, pkgerrors.NewUpstreamError("crm", fmt.Errorf("failed to get category tree for %s: %w", groups[0].Name, err))
	}

	return tree, nil
}

// ListArticlesHandler handles category article queries
type ListArticlesHandler struct {
	knowledge ports.KnowledgeBase
	logger    *zap.Logger
}

// NewListArticlesHandler creates a new category articles handler
func NewListArticlesHandler(knowledge ports.KnowledgeBase, logger *zap.Logger) *ListArticlesHandler {
	return &ListArticlesHandler{
		knowledge: knowledge,
		logger:    logger,
	}
}

// Handle returns the newest published articles of a category
func (h *ListArticlesHandler) Handle(ctx context.Context, query queries.ListArticlesQuery) ([]entities.ArticleSummary, error) {
	category := strings.TrimSpace(query.CategoryName)

	articles, err := h.knowledge.ArticlesByCategory(ctx, category, queries.ArticleListLimit)
	if err != nil {
		return nil, pkgerrors.NewUpstreamError("crm", fmt.Errorf("failed to list articles for %s: %w", category, err))
	}

	h.logger.Debug("Listed category articles",
		zap.String("category", category),
		zap.Int("count", len(articles)),
	)
	return articles, nil
}

// GetArticleHandler handles single article queries
type GetArticleHandler struct {
	knowledge ports.KnowledgeBase
}

// NewGetArticleHandler creates a new article handler
func NewGetArticleHandler(knowledge ports.KnowledgeBase) *GetArticleHandler {
	return &GetArticleHandler{knowledge: knowledge}
}

// Handle returns the article published under the URL name
func (h *GetArticleHandler) Handle(ctx context.Context, query queries.GetArticleQuery) (*entities.ArticleDetail, error) {
	urlName := strings.TrimSpace(query.URLName)

	article, err := h.knowledge.ArticleByURLName(ctx, urlName)
	if err != nil {
		return nil, pkgerrors.NewUpstreamError("crm", fmt.Errorf("failed to get article %s: %w", urlName, err))
	}
	return article, nil
}
