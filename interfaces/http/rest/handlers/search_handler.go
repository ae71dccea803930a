package handlers

import (
	"net/http"

	"supportportal/application/queries"
	querybus "supportportal/application/queries/bus"
	"supportportal/domain/core/entities"
	"supportportal/pkg/api"
	pkgerrors "supportportal/pkg/errors"
)

// SearchHandler handles knowledge search HTTP requests
type SearchHandler struct {
	queryBus *querybus.QueryBus
	errors   *pkgerrors.ErrorHandler
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(queryBus *querybus.QueryBus, errorHandler *pkgerrors.ErrorHandler) *SearchHandler {
	return &SearchHandler{
		queryBus: queryBus,
		errors:   errorHandler,
	}
}

// Search handles POST /search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req api.SearchRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.errors.Handle(w, r, err, "Search failed")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.SearchArticlesQuery{SearchTerm: req.SearchTerm})
	if err != nil {
		h.errors.Handle(w, r, err, "Search failed")
		return
	}

	answer := result.(*entities.SearchResult)
	respondJSON(w, http.StatusOK, api.FromSearchResult(*answer))
}
