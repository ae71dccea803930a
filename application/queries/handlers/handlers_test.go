package handlers

import (
	"context"
	"errors"
	"testing"

	"supportportal/application/ports/mocks"
	"supportportal/application/queries"
	"supportportal/domain/core/entities"
	pkgerrors "supportportal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestListCategoriesHandler_UsesFirstGroup(t *testing.T) {
	knowledge := &mocks.KnowledgeBase{}
	knowledge.On("CategoryGroups", mock.Anything).Return([]entities.CategoryGroup{
		{Name: "Topics"}, {Name: "Products"},
	}, nil)
	knowledge.On("CategoryTree", mock.Anything, "Topics").Return(&entities.CategoryNode{Name: "All", Label: "All"}, nil)

	tree, err := NewListCategoriesHandler(knowledge, "Topics", zap.NewNop()).Handle(context.Background(), queries.ListCategoriesQuery{})

	require.NoError(t, err)
	assert.Equal(t, "All", tree.Name)
	knowledge.AssertExpectations(t)
	knowledge.AssertNotCalled(t, "CategoryTree", mock.Anything, "Products")
}

func TestListCategoriesHandler_WarnsOnceWhenGroupDiffersFromFilter(t *testing.T) {
	knowledge := &mocks.KnowledgeBase{}
	knowledge.On("CategoryGroups", mock.Anything).Return([]entities.CategoryGroup{
		{Name: "Products"}, {Name: "Topics"},
	}, nil)
	knowledge.On("CategoryTree", mock.Anything, "Products").Return(&entities.CategoryNode{Name: "All", Label: "All"}, nil)

	core, logs := observer.New(zapcore.WarnLevel)
	handler := NewListCategoriesHandler(knowledge, "Topics", zap.New(core))

	for i := 0; i < 2; i++ {
		_, err := handler.Handle(context.Background(), queries.ListCategoriesQuery{})
		require.NoError(t, err)
	}

	warnings := logs.All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "Products", warnings[0].ContextMap()["tree_group"])
	assert.Equal(t, "Topics", warnings[0].ContextMap()["filter_group"])
}

func TestListCategoriesHandler_NoWarningWhenGroupsMatch(t *testing.T) {
	knowledge := &mocks.KnowledgeBase{}
	knowledge.On("CategoryGroups", mock.Anything).Return([]entities.CategoryGroup{{Name: "Topics"}}, nil)
	knowledge.On("CategoryTree", mock.Anything, "Topics").Return(&entities.CategoryNode{Name: "All", Label: "All"}, nil)

	core, logs := observer.New(zapcore.WarnLevel)
	_, err := NewListCategoriesHandler(knowledge, "Topics", zap.New(core)).Handle(context.Background(), queries.ListCategoriesQuery{})

	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}

func TestListCategoriesHandler_NoGroups(t *testing.T) {
	knowledge := &mocks.KnowledgeBase{}
	knowledge.On("CategoryGroups", mock.Anything).Return(nil, nil)

	tree, err := NewListCategoriesHandler(knowledge, "Topics", zap.NewNop()).Handle(context.Background(), queries.ListCategoriesQuery{})

	require.NoError(t, err)
	assert.Equal(t, RootCategoryName, tree.Name)
	assert.NotNil(t, tree.Children)
	assert.Empty(t, tree.Children)
}

func TestListArticlesHandler(t *testing.T) {
	knowledge := &mocks.KnowledgeBase{}
	knowledge.On("ArticlesByCategory", mock.Anything, "Billing", queries.ArticleListLimit).
		Return([]entities.ArticleSummary{{ID: "ka01"}}, nil)

	articles, err := NewListArticlesHandler(knowledge, zap.NewNop()).
		Handle(context.Background(), queries.ListArticlesQuery{CategoryName: " Billing "})

	require.NoError(t, err)
	assert.Len(t, articles, 1)
	knowledge.AssertExpectations(t)
}

func TestGetArticleHandler_WrapsUpstreamError(t *testing.T) {
	knowledge := &mocks.KnowledgeBase{}
	knowledge.On("ArticleByURLName", mock.Anything, "gone").Return(nil, errors.New("NOT_FOUND"))

	_, err := NewGetArticleHandler(knowledge).Handle(context.Background(), queries.GetArticleQuery{URLName: "gone"})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsUpstream(err))
	assert.ErrorContains(t, err, "NOT_FOUND")
}

func TestListCasesHandler_NilIsEmpty(t *testing.T) {
	cases := &mocks.CaseDesk{}
	cases.On("OpenCasesByEmail", mock.Anything, "jane@example.com").Return(nil, nil)

	got, err := NewListCasesHandler(cases).Handle(context.Background(), queries.ListCasesQuery{Email: "jane@example.com"})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

type answererFunc func(ctx context.Context, term string) (*entities.SearchResult, error)

func (f answererFunc) Answer(ctx context.Context, term string) (*entities.SearchResult, error) {
	return f(ctx, term)
}

func TestSearchArticlesHandler_TrimsTerm(t *testing.T) {
	var got string
	handler := NewSearchArticlesHandler(answererFunc(func(ctx context.Context, term string) (*entities.SearchResult, error) {
		got = term
		result := entities.NoMatches()
		return &result, nil
	}))

	_, err := handler.Handle(context.Background(), queries.SearchArticlesQuery{SearchTerm: "  password "})

	require.NoError(t, err)
	assert.Equal(t, "password", got)
}

func TestQueryValidation(t *testing.T) {
	tests := []struct {
		name    string
		query   interface{ Validate() error }
		wantErr string
	}{
		{name: "blank category", query: queries.ListArticlesQuery{CategoryName: " "}, wantErr: "Category name is required"},
		{name: "malformed category", query: queries.ListArticlesQuery{CategoryName: "a b"}, wantErr: "Invalid category name"},
		{name: "blank url name", query: queries.GetArticleQuery{}, wantErr: "Article URL name is required"},
		{name: "blank email", query: queries.ListCasesQuery{Email: "\t"}, wantErr: "Email is required"},
		{name: "blank search", query: queries.SearchArticlesQuery{}, wantErr: "Search term is required"},
		{name: "categories", query: queries.ListCategoriesQuery{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, pkgerrors.IsValidation(err))
			assert.Equal(t, tt.wantErr, pkgerrors.GetAppError(err).Message)
		})
	}
}
