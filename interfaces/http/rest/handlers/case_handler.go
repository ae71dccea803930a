package handlers

import (
	"net/http"

	"supportportal/application/commands"
	"supportportal/application/commands/bus"
	"supportportal/application/queries"
	querybus "supportportal/application/queries/bus"
	"supportportal/domain/core/entities"
	"supportportal/pkg/api"
	pkgerrors "supportportal/pkg/errors"
)

// CaseHandler handles support case HTTP requests
type CaseHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, errorHandler *pkgerrors.ErrorHandler) *CaseHandler {
	return &CaseHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
	}
}

// ListCases handles GET /cases/{email}
func (h *CaseHandler) ListCases(w http.ResponseWriter, r *http.Request) {
	query := queries.ListCasesQuery{Email: pathParam(r, "email")}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err, "Failed to fetch cases")
		return
	}

	respondJSON(w, http.StatusOK, api.FromCases(result.([]entities.Case)))
}

// Reply handles POST /cases/{caseId}/reply
func (h *CaseHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var req api.ReplyRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.errors.Handle(w, r, err, "Failed to post reply")
		return
	}

	cmd := commands.ReplyToCaseCommand{
		CaseID:      pathParam(r, "caseId"),
		CommentBody: req.CommentBody,
		IsPublic:    req.IsPublic,
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err, "Failed to post reply")
		return
	}

	comment := result.(*entities.CaseComment)
	respondJSON(w, http.StatusOK, api.FromCaseComment(*comment))
}
