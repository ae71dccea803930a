package handlers

import (
	"context"
	"fmt"
	"strings"

	"supportportal/application/commands"
	"supportportal/application/ports"
	"supportportal/domain/core/entities"
	pkgerrors "supportportal/pkg/errors"

	"go.uber.org/zap"
)

// ReplyToCaseHandler handles case reply commands
type ReplyToCaseHandler struct {
	cases  ports.CaseDesk
	logger *zap.Logger
}

// NewReplyToCaseHandler creates a new case reply handler
func NewReplyToCaseHandler(cases ports.CaseDesk, logger *zap.Logger) *ReplyToCaseHandler {
	return &ReplyToCaseHandler{
		cases:  cases,
		logger: logger,
	}
}

// Handle creates the case comment. The comment body is stored as given.
func (h *ReplyToCaseHandler) Handle(ctx context.Context, cmd commands.ReplyToCaseCommand) (*entities.CaseComment, error) {
	comment := entities.NewCaseComment(strings.TrimSpace(cmd.CaseID), cmd.CommentBody, cmd.IsPublic)

	created, err := h.cases.CreateComment(ctx, comment)
	if err != nil {
		return nil, pkgerrors.NewUpstreamError("crm", fmt.Errorf("failed to create comment on case %s: %w", comment.ParentID, err))
	}

	h.logger.Info("Case comment created",
		zap.String("case_id", created.ParentID),
		zap.String("comment_id", created.ID),
		zap.Bool("published", created.IsPublished),
	)
	return created, nil
}
