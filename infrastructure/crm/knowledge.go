package crm

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"supportportal/domain/core/entities"
)

const (
	publishStatusOnline = "Online"
	knowledgeSObject    = "KnowledgeArticleVersion"
)

// KnowledgeOptions describes the knowledge setup of the org
type KnowledgeOptions struct {
	ArticleObject string
	CategoryGroup string
	Locale        string
	CategoryDepth int
}

// Knowledge reads categories and published articles
type Knowledge struct {
	client *Client
	opts   KnowledgeOptions
}

// NewKnowledge creates a knowledge base reader
func NewKnowledge(client *Client, opts KnowledgeOptions) *Knowledge {
	return &Knowledge{client: client, opts: opts}
}

type categoryGroupsResponse struct {
	CategoryGroups []struct {
		Name  string `json:"name"`
		Label string `json:"label"`
	} `json:"categoryGroups"`
}

type dataCategory struct {
	Name            string         `json:"name"`
	Label           string         `json:"label"`
	ChildCategories []dataCategory `json:"childCategories"`
}

func (d dataCategory) toEntity() entities.CategoryNode {
	node := entities.CategoryNode{
		Name:     d.Name,
		Label:    d.Label,
		Children: make([]entities.CategoryNode, 0, len(d.ChildCategories)),
	}
	for _, child := range d.ChildCategories {
		node.Children = append(node.Children, child.toEntity())
	}
	return node
}

// CategoryGroups lists the data category groups used by knowledge articles
func (k *Knowledge) CategoryGroups(ctx context.Context) ([]entities.CategoryGroup, error) {
	var resp categoryGroupsResponse
	query := url.Values{
		"sObjectName":       {knowledgeSObject},
		"topCategoriesOnly": {"true"},
	}
	if err := k.client.get(ctx, "/support/dataCategoryGroups", query, nil, &resp); err != nil {
		return nil, err
	}

	groups := make([]entities.CategoryGroup, 0, len(resp.CategoryGroups))
	for _, g := range resp.CategoryGroups {
		groups = append(groups, entities.CategoryGroup{Name: g.Name, Label: g.Label})
	}
	return groups, nil
}

// CategoryTree returns the category hierarchy of a group, cut at the configured depth
func (k *Knowledge) CategoryTree(ctx context.Context, group string) (*entities.CategoryNode, error) {
	var root dataCategory
	path := "/support/dataCategoryGroups/" + url.PathEscape(group) + "/dataCategories/All"
	query := url.Values{"sObjectName": {knowledgeSObject}}
	if err := k.client.get(ctx, path, query, nil, &root); err != nil {
		return nil, err
	}

	tree := root.toEntity().Prune(k.opts.CategoryDepth)
	return &tree, nil
}

type articleRecord struct {
	ID      string `json:"Id"`
	Title   string `json:"Title"`
	URLName string `json:"UrlName"`
	Summary string `json:"Summary"`
}

func (r articleRecord) toEntity() entities.ArticleSummary {
	return entities.ArticleSummary{
		ID:      r.ID,
		Title:   r.Title,
		URLName: r.URLName,
		Summary: r.Summary,
	}
}

func toSummaries(records []articleRecord) []entities.ArticleSummary {
	out := make([]entities.ArticleSummary, 0, len(records))
	for _, r := range records {
		out = append(out, r.toEntity())
	}
	return out
}

// ArticlesByCategory lists published articles tagged with a category, newest first
func (k *Knowledge) ArticlesByCategory(ctx context.Context, category string, limit int) ([]entities.ArticleSummary, error) {
	q := NewQuery(`SELECT Id, Title, UrlName, Summary FROM {object}` +
		` WHERE PublishStatus = :status AND Language = :locale` +
		` WITH DATA CATEGORY {group}__c AT {category}__c` +
		` ORDER BY LastPublishedDate DESC LIMIT :limit`).
		Ident("object", k.opts.ArticleObject).
		Ident("group", k.opts.CategoryGroup).
		Ident("category", category).
		Bind("status", publishStatusOnline).
		Bind("locale", k.opts.Locale).
		BindInt("limit", limit)

	var records []articleRecord
	if err := k.client.Query(ctx, q, &records); err != nil {
		return nil, err
	}
	return toSummaries(records), nil
}

type knowledgeArticleResponse struct {
	ID                string `json:"id"`
	ArticleNumber     string `json:"articleNumber"`
	Title             string `json:"title"`
	URLName           string `json:"urlName"`
	Summary           string `json:"summary"`
	LastPublishedDate Time   `json:"lastPublishedDate"`
	LayoutItems       []struct {
		Label string `json:"label"`
		Name  string `json:"name"`
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"layoutItems"`
}

// ArticleByURLName fetches one published article with its rendered layout
func (k *Knowledge) ArticleByURLName(ctx context.Context, urlName string) (*entities.ArticleDetail, error) {
	var resp knowledgeArticleResponse
	path := "/support/knowledgeArticles/" + url.PathEscape(urlName)
	headers := map[string]string{"Accept-Language": languageTag(k.opts.Locale)}
	if err := k.client.get(ctx, path, nil, headers, &resp); err != nil {
		return nil, err
	}

	article := &entities.ArticleDetail{
		ID:                resp.ID,
		ArticleNumber:     resp.ArticleNumber,
		Title:             resp.Title,
		URLName:           resp.URLName,
		Summary:           resp.Summary,
		LastPublishedDate: resp.LastPublishedDate.Time,
		LayoutItems:       make([]entities.LayoutItem, 0, len(resp.LayoutItems)),
	}
	for _, item := range resp.LayoutItems {
		article.LayoutItems = append(article.LayoutItems, entities.LayoutItem{
			Label: item.Label,
			Name:  item.Name,
			Type:  item.Type,
			Value: item.Value,
		})
	}
	return article, nil
}

type searchSObject struct {
	Name  string `json:"name"`
	Where string `json:"where,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

type parameterizedSearchRequest struct {
	Q            string          `json:"q"`
	Fields       []string        `json:"fields"`
	SObjects     []searchSObject `json:"sobjects"`
	OverallLimit int             `json:"overallLimit"`
}

// SearchArticles runs a full-text search over published articles in the configured locale.
// The term travels as a JSON value, never as part of a SOSL statement.
func (k *Knowledge) SearchArticles(ctx context.Context, term string, limit int) ([]entities.ArticleSummary, error) {
	where, err := NewQuery(`PublishStatus = :status AND Language = :locale`).
		Bind("status", publishStatusOnline).
		Bind("locale", k.opts.Locale).
		Build()
	if err != nil {
		return nil, err
	}
	if !identifierPattern.MatchString(k.opts.ArticleObject) {
		return nil, fmt.Errorf("article object: %w: %q", ErrInvalidIdentifier, k.opts.ArticleObject)
	}

	req := parameterizedSearchRequest{
		Q:      term,
		Fields: []string{"Id", "Title", "UrlName", "Summary"},
		SObjects: []searchSObject{{
			Name:  k.opts.ArticleObject,
			Where: where,
			Limit: limit,
		}},
		OverallLimit: limit,
	}

	var resp struct {
		SearchRecords []articleRecord `json:"searchRecords"`
	}
	if err := k.client.post(ctx, "/parameterizedSearch", req, &resp); err != nil {
		return nil, err
	}
	return toSummaries(resp.SearchRecords), nil
}

// languageTag turns a CRM locale such as en_US into an HTTP language tag
func languageTag(locale string) string {
	return strings.ReplaceAll(locale, "_", "-")
}
