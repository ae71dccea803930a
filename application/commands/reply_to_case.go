package commands

import (
	"strings"

	pkgerrors "supportportal/pkg/errors"
)

// ReplyToCaseCommand represents a customer reply posted as a case comment
type ReplyToCaseCommand struct {
	CaseID      string
	CommentBody string
	IsPublic    *bool
}

// Validate validates the ReplyToCaseCommand
func (c ReplyToCaseCommand) Validate() error {
	if strings.TrimSpace(c.CaseID) == "" {
		return pkgerrors.NewValidationError("Case ID is required")
	}
	if strings.TrimSpace(c.CommentBody) == "" {
		return pkgerrors.NewValidationError("Comment body is required")
	}
	return nil
}
