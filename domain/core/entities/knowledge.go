package entities

import (
	"regexp"
	"time"
)

// CategoryGroup is a top-level data category group of the knowledge base
type CategoryGroup struct {
	Name  string
	Label string
}

// CategoryNode is one data category and its sub-categories.
// Children keeps the order the CRM returns.
type CategoryNode struct {
	Name     string
	Label    string
	Children []CategoryNode
}

// Depth returns the number of levels in the tree rooted at n
func (n CategoryNode) Depth() int {
	deepest := 0
	for _, child := range n.Children {
		if d := child.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Prune drops every level below maxDepth. The root counts as level one.
func (n CategoryNode) Prune(maxDepth int) CategoryNode {
	pruned := CategoryNode{Name: n.Name, Label: n.Label, Children: []CategoryNode{}}
	if maxDepth <= 1 {
		return pruned
	}
	for _, child := range n.Children {
		pruned.Children = append(pruned.Children, child.Prune(maxDepth-1))
	}
	return pruned
}

// ArticleSummary is the list projection of a knowledge article
type ArticleSummary struct {
	ID      string
	Title   string
	URLName string
	Summary string
}

// LayoutItem is one field of an article's page layout as rendered by the CRM
type LayoutItem struct {
	Label string
	Name  string
	Type  string
	Value string
}

// ArticleDetail is a full knowledge article
type ArticleDetail struct {
	ID                string
	ArticleNumber     string
	Title             string
	URLName           string
	Summary           string
	LastPublishedDate time.Time
	LayoutItems       []LayoutItem
}

// RichTextType is the layout item type carrying rendered HTML
const RichTextType = "RICH_TEXT_AREA"

// Body returns the HTML of the first rich text layout item, or "" when there is none
func (a ArticleDetail) Body() string {
	for _, item := range a.LayoutItems {
		if item.Type == RichTextType {
			return item.Value
		}
	}
	return ""
}

var categoryNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// IsCategoryName reports whether s has the shape of a data category developer name
func IsCategoryName(s string) bool {
	return categoryNamePattern.MatchString(s)
}
