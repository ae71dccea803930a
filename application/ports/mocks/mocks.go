// Package mocks provides testify mocks of the application ports.
package mocks

import (
	"context"
	"sync/atomic"

	"supportportal/domain/core/entities"

	"github.com/stretchr/testify/mock"
)

// KnowledgeBase mocks ports.KnowledgeBase
type KnowledgeBase struct {
	mock.Mock
}

func (m *KnowledgeBase) CategoryGroups(ctx context.Context) ([]entities.CategoryGroup, error) {
	args := m.Called(ctx)
	groups, _ := args.Get(0).([]entities.CategoryGroup)
	return groups, args.Error(1)
}

func (m *KnowledgeBase) CategoryTree(ctx context.Context, group string) (*entities.CategoryNode, error) {
	args := m.Called(ctx, group)
	tree, _ := args.Get(0).(*entities.CategoryNode)
	return tree, args.Error(1)
}

func (m *KnowledgeBase) ArticlesByCategory(ctx context.Context, category string, limit int) ([]entities.ArticleSummary, error) {
	args := m.Called(ctx, category, limit)
	articles, _ := args.Get(0).([]entities.ArticleSummary)
	return articles, args.Error(1)
}

func (m *KnowledgeBase) ArticleByURLName(ctx context.Context, urlName string) (*entities.ArticleDetail, error) {
	args := m.Called(ctx, urlName)
	article, _ := args.Get(0).(*entities.ArticleDetail)
	return article, args.Error(1)
}

func (m *KnowledgeBase) SearchArticles(ctx context.Context, term string, limit int) ([]entities.ArticleSummary, error) {
	args := m.Called(ctx, term, limit)
	articles, _ := args.Get(0).([]entities.ArticleSummary)
	return articles, args.Error(1)
}

// CaseDesk mocks ports.CaseDesk
type CaseDesk struct {
	mock.Mock
}

func (m *CaseDesk) OpenCasesByEmail(ctx context.Context, email string) ([]entities.Case, error) {
	args := m.Called(ctx, email)
	cases, _ := args.Get(0).([]entities.Case)
	return cases, args.Error(1)
}

func (m *CaseDesk) CreateComment(ctx context.Context, comment entities.CaseComment) (*entities.CaseComment, error) {
	args := m.Called(ctx, comment)
	created, _ := args.Get(0).(*entities.CaseComment)
	return created, args.Error(1)
}

// LanguageModel mocks ports.LanguageModel
type LanguageModel struct {
	mock.Mock
}

func (m *LanguageModel) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// Session is a ports.SessionState whose state tests can flip
type Session struct {
	ready atomic.Bool
}

// NewSession creates a session stub in the given state
func NewSession(ready bool) *Session {
	s := &Session{}
	s.ready.Store(ready)
	return s
}

func (s *Session) Ready() bool {
	return s.ready.Load()
}

// SetReady changes the reported state
func (s *Session) SetReady(ready bool) {
	s.ready.Store(ready)
}
