package handlers

import (
	"context"
	"fmt"
	"strings"

	"supportportal/application/ports"
	"supportportal/application/queries"
	"supportportal/domain/core/entities"
	pkgerrors "supportportal/pkg/errors"
)

// ListCasesHandler handles open case queries
type ListCasesHandler struct {
	cases ports.CaseDesk
}

// NewListCasesHandler creates a new open cases handler
func NewListCasesHandler(cases ports.CaseDesk) *ListCasesHandler {
	return &ListCasesHandler{cases: cases}
}

// Handle returns the open cases of the customer, newest first
func (h *ListCasesHandler) Handle(ctx context.Context, query queries.ListCasesQuery) ([]entities.Case, error) {
	email := strings.TrimSpace(query.Email)

	cases, err := h.cases.OpenCasesByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.NewUpstreamError("crm", fmt.Errorf("failed to list open cases: %w", err))
	}
	if cases == nil {
		cases = []entities.Case{}
	}
	return cases, nil
}
