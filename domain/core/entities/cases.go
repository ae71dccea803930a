package entities

import "time"

// Case is a support ticket owned by the CRM
type Case struct {
	ID          string
	CaseNumber  string
	Subject     string
	Description string
	Status      string
	CreatedDate time.Time
}

// CaseComment is a reply attached to a case.
// Unpublished comments stay internal to the support team.
type CaseComment struct {
	ID          string
	ParentID    string
	CommentBody string
	IsPublished bool
}

// NewCaseComment builds the comment a customer reply creates.
// A nil isPublic means the caller did not ask for a public comment.
func NewCaseComment(caseID, body string, isPublic *bool) CaseComment {
	comment := CaseComment{
		ParentID:    caseID,
		CommentBody: body,
	}
	if isPublic != nil {
		comment.IsPublished = *isPublic
	}
	return comment
}
