package api

import (
	"time"

	"supportportal/domain/core/entities"
)

// FromCategoryNode maps a category tree
func FromCategoryNode(n entities.CategoryNode) CategoryNode {
	out := CategoryNode{
		Name:     n.Name,
		Label:    n.Label,
		Children: make([]CategoryNode, 0, len(n.Children)),
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, FromCategoryNode(child))
	}
	return out
}

// FromArticleSummaries maps a list of articles, returning an empty slice for nil input
func FromArticleSummaries(articles []entities.ArticleSummary) []ArticleSummary {
	out := make([]ArticleSummary, 0, len(articles))
	for _, a := range articles {
		out = append(out, ArticleSummary{
			ID:      a.ID,
			Title:   a.Title,
			URLName: a.URLName,
			Summary: a.Summary,
		})
	}
	return out
}

// FromArticleDetail maps a full article
func FromArticleDetail(a entities.ArticleDetail) ArticleDetail {
	items := make([]LayoutItem, 0, len(a.LayoutItems))
	for _, item := range a.LayoutItems {
		items = append(items, LayoutItem{
			Label: item.Label,
			Name:  item.Name,
			Type:  item.Type,
			Value: item.Value,
		})
	}
	return ArticleDetail{
		ID:                a.ID,
		ArticleNumber:     a.ArticleNumber,
		Title:             a.Title,
		URLName:           a.URLName,
		Summary:           a.Summary,
		LastPublishedDate: optionalTime(a.LastPublishedDate),
		Body:              a.Body(),
		LayoutItems:       items,
	}
}

// FromCases maps a list of cases, returning an empty slice for nil input
func FromCases(cases []entities.Case) []Case {
	out := make([]Case, 0, len(cases))
	for _, c := range cases {
		out = append(out, Case{
			ID:          c.ID,
			CaseNumber:  c.CaseNumber,
			Subject:     c.Subject,
			Description: c.Description,
			Status:      c.Status,
			CreatedDate: optionalTime(c.CreatedDate),
		})
	}
	return out
}

// FromCaseComment maps a created comment
func FromCaseComment(c entities.CaseComment) CaseComment {
	return CaseComment{
		ID:          c.ID,
		ParentID:    c.ParentID,
		CommentBody: c.CommentBody,
		IsPublished: c.IsPublished,
	}
}

// FromSearchResult maps a search answer
func FromSearchResult(r entities.SearchResult) SearchResult {
	return SearchResult{
		Answer:  r.Answer,
		Sources: FromArticleSummaries(r.Sources),
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
