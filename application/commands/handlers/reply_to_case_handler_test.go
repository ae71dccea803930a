package handlers

import (
	"context"
	"errors"
	"testing"

	"supportportal/application/commands"
	"supportportal/application/ports/mocks"
	"supportportal/domain/core/entities"
	pkgerrors "supportportal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReplyToCaseHandler_DefaultsToInternal(t *testing.T) {
	cases := &mocks.CaseDesk{}
	want := entities.CaseComment{ParentID: "5001", CommentBody: "Thanks"}
	cases.On("CreateComment", mock.Anything, want).Return(&entities.CaseComment{ID: "00a01", ParentID: "5001", CommentBody: "Thanks"}, nil)

	created, err := NewReplyToCaseHandler(cases, zap.NewNop()).Handle(context.Background(), commands.ReplyToCaseCommand{
		CaseID:      "5001",
		CommentBody: "Thanks",
	})

	require.NoError(t, err)
	assert.Equal(t, "00a01", created.ID)
	assert.False(t, created.IsPublished)
	cases.AssertExpectations(t)
}

func TestReplyToCaseHandler_Public(t *testing.T) {
	cases := &mocks.CaseDesk{}
	public := true
	want := entities.CaseComment{ParentID: "5001", CommentBody: "Thanks", IsPublished: true}
	cases.On("CreateComment", mock.Anything, want).Return(&entities.CaseComment{ID: "00a02", ParentID: "5001", CommentBody: "Thanks", IsPublished: true}, nil)

	created, err := NewReplyToCaseHandler(cases, zap.NewNop()).Handle(context.Background(), commands.ReplyToCaseCommand{
		CaseID:      "5001",
		CommentBody: "Thanks",
		IsPublic:    &public,
	})

	require.NoError(t, err)
	assert.True(t, created.IsPublished)
}

func TestReplyToCaseHandler_UpstreamError(t *testing.T) {
	cases := &mocks.CaseDesk{}
	cases.On("CreateComment", mock.Anything, mock.Anything).Return(nil, errors.New("ENTITY_IS_DELETED"))

	_, err := NewReplyToCaseHandler(cases, zap.NewNop()).Handle(context.Background(), commands.ReplyToCaseCommand{
		CaseID:      "5001",
		CommentBody: "Thanks",
	})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsUpstream(err))
}

func TestReplyToCaseCommand_Validate(t *testing.T) {
	err := commands.ReplyToCaseCommand{CaseID: " ", CommentBody: "x"}.Validate()
	assert.Equal(t, "Case ID is required", pkgerrors.GetAppError(err).Message)

	err = commands.ReplyToCaseCommand{CaseID: "5001", CommentBody: "\n"}.Validate()
	assert.Equal(t, "Comment body is required", pkgerrors.GetAppError(err).Message)

	assert.NoError(t, commands.ReplyToCaseCommand{CaseID: "5001", CommentBody: "x"}.Validate())
}
