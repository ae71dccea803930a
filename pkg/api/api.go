// Package api defines the JSON contract between the proxy and the portal frontend.
// It decouples the wire shape from the domain entities. Every list field is encoded
// as an array, never null, and every error body is an ErrorResponse.
package api

import "time"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CategoryNode is the API representation of a knowledge data category.
type CategoryNode struct {
	Name     string         `json:"name"`
	Label    string         `json:"label"`
	Children []CategoryNode `json:"children"`
}

// ArticleSummary is the list view of a knowledge article.
type ArticleSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URLName string `json:"urlName"`
	Summary string `json:"summary"`
}

// LayoutItem is one rendered field of an article.
type LayoutItem struct {
	Label string `json:"label"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ArticleDetail is a full knowledge article including its HTML body.
type ArticleDetail struct {
	ID                string       `json:"id"`
	ArticleNumber     string       `json:"articleNumber"`
	Title             string       `json:"title"`
	URLName           string       `json:"urlName"`
	Summary           string       `json:"summary"`
	LastPublishedDate *time.Time   `json:"lastPublishedDate,omitempty"`
	Body              string       `json:"body"`
	LayoutItems       []LayoutItem `json:"layoutItems"`
}

// Case is a customer's support ticket.
type Case struct {
	ID          string     `json:"id"`
	CaseNumber  string     `json:"caseNumber"`
	Subject     string     `json:"subject"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	CreatedDate *time.Time `json:"createdDate,omitempty"`
}

// ReplyRequest is the body of POST /cases/{caseId}/reply.
type ReplyRequest struct {
	CommentBody string `json:"commentBody" validate:"notblank"`
	IsPublic    *bool  `json:"isPublic,omitempty"`
}

// CaseComment is the comment created by a reply.
type CaseComment struct {
	ID          string `json:"id"`
	ParentID    string `json:"parentId"`
	CommentBody string `json:"commentBody"`
	IsPublished bool   `json:"isPublished"`
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	SearchTerm string `json:"searchTerm" validate:"notblank"`
}

// SearchResult is a synthesized answer and its source articles.
type SearchResult struct {
	Answer  string           `json:"answer"`
	Sources []ArticleSummary `json:"sources"`
}

// HealthStatus is the body of GET /ready.
type HealthStatus struct {
	Status string `json:"status"`
}
