package services

import (
	"context"
	"fmt"
	"strings"

	"supportportal/application/ports"
	"supportportal/domain/core/entities"
	pkgerrors "supportportal/pkg/errors"

	"go.uber.org/zap"
)

// SearchCandidateLimit caps the articles handed to the language model
const SearchCandidateLimit = 10

// AnswerService answers a customer question from knowledge articles.
// The steps run strictly in sequence: search, then at most one completion.
type AnswerService struct {
	knowledge ports.KnowledgeBase
	model     ports.LanguageModel
	logger    *zap.Logger
}

// NewAnswerService creates a new answer service
func NewAnswerService(knowledge ports.KnowledgeBase, model ports.LanguageModel, logger *zap.Logger) *AnswerService {
	return &AnswerService{
		knowledge: knowledge,
		model:     model,
		logger:    logger,
	}
}

// Answer searches the knowledge base and, when anything matches, asks the language
// model to answer from the matches. No matches is a successful result, not an error.
func (s *AnswerService) Answer(ctx context.Context, term string) (*entities.SearchResult, error) {
	articles, err := s.knowledge.SearchArticles(ctx, term, SearchCandidateLimit)
	if err != nil {
		return nil, pkgerrors.NewUpstreamError("crm", fmt.Errorf("search articles: %w", err))
	}

	if len(articles) == 0 {
		s.logger.Debug("No articles matched search", zap.String("term", term))
		result := entities.NoMatches()
		return &result, nil
	}

	answer, err := s.model.Complete(ctx, BuildAnswerPrompt(term, articles))
	if err != nil {
		return nil, pkgerrors.NewUpstreamError("llm", fmt.Errorf("complete answer: %w", err))
	}

	return &entities.SearchResult{
		Answer:  answer,
		Sources: articles,
	}, nil
}

// BuildAnswerPrompt creates the prompt grounding the model in the candidate articles
func BuildAnswerPrompt(question string, articles []entities.ArticleSummary) string {
	var context strings.Builder
	for i, a := range articles {
		if i > 0 {
			context.WriteString("\n\n")
		}
		fmt.Fprintf(&context, "Title: %s\nSummary: %s", a.Title, a.Summary)
	}

	return fmt.Sprintf(`You are a helpful customer support assistant. Answer the user's question using only the knowledge base articles provided below.

Articles:
%s

User question: %s

Rules:
1. Base your answer only on the articles above
2. Cite the titles of the articles you used
3. If the articles do not contain enough information to answer, say so explicitly
`, context.String(), question)
}
