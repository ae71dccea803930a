package crm

import (
	"context"
	"fmt"
	"strings"

	"supportportal/domain/core/entities"
)

// CaseOptions holds the org-specific parts of the open-cases query
type CaseOptions struct {
	EmailField     string
	ClosedStatuses []string
}

// Cases reads a customer's cases and posts comments on them
type Cases struct {
	client *Client
	opts   CaseOptions
}

// NewCases creates a case desk client
func NewCases(client *Client, opts CaseOptions) *Cases {
	return &Cases{client: client, opts: opts}
}

type caseRecord struct {
	ID          string `json:"Id"`
	CaseNumber  string `json:"CaseNumber"`
	Subject     string `json:"Subject"`
	Description string `json:"Description"`
	Status      string `json:"Status"`
	CreatedDate Time   `json:"CreatedDate"`
}

// openCasesQuery builds the statement for a customer's open cases, newest first
func (c *Cases) openCasesQuery(email string) *Query {
	var b strings.Builder
	b.WriteString(`SELECT Id, CaseNumber, Subject, Description, Status, CreatedDate FROM Case WHERE {emailField} = :email`)
	if len(c.opts.ClosedStatuses) > 0 {
		b.WriteString(` AND Status NOT IN :closed`)
	}
	b.WriteString(` ORDER BY CreatedDate DESC`)

	q := NewQuery(b.String()).
		Ident("emailField", c.opts.EmailField).
		Bind("email", email)
	if len(c.opts.ClosedStatuses) > 0 {
		q.BindList("closed", c.opts.ClosedStatuses)
	}
	return q
}

// OpenCasesByEmail lists the cases of the contact with the given email
func (c *Cases) OpenCasesByEmail(ctx context.Context, email string) ([]entities.Case, error) {
	var records []caseRecord
	if err := c.client.Query(ctx, c.openCasesQuery(email), &records); err != nil {
		return nil, err
	}

	out := make([]entities.Case, 0, len(records))
	for _, r := range records {
		out = append(out, entities.Case{
			ID:          r.ID,
			CaseNumber:  r.CaseNumber,
			Subject:     r.Subject,
			Description: r.Description,
			Status:      r.Status,
			CreatedDate: r.CreatedDate.Time,
		})
	}
	return out, nil
}

type caseCommentRecord struct {
	ParentID    string `json:"ParentId"`
	CommentBody string `json:"CommentBody"`
	IsPublished bool   `json:"IsPublished"`
}

type saveResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Errors  []struct {
		Message    string `json:"message"`
		StatusCode string `json:"statusCode"`
	} `json:"errors"`
}

// CreateComment adds a comment to a case and returns it with its new record id
func (c *Cases) CreateComment(ctx context.Context, comment entities.CaseComment) (*entities.CaseComment, error) {
	record := caseCommentRecord{
		ParentID:    comment.ParentID,
		CommentBody: comment.CommentBody,
		IsPublished: comment.IsPublished,
	}

	var result saveResult
	if err := c.client.post(ctx, "/sobjects/CaseComment", record, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		if len(result.Errors) > 0 {
			return nil, fmt.Errorf("create case comment: %s: %s", result.Errors[0].StatusCode, result.Errors[0].Message)
		}
		return nil, fmt.Errorf("create case comment: not saved")
	}

	created := comment
	created.ID = result.ID
	return &created, nil
}
