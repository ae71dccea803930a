package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	pkgerrors "supportportal/pkg/errors"
	"supportportal/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 64 << 10

// respondJSON writes data as a JSON document
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeBody decodes and validates a JSON body. An empty body decodes to the zero
// value, so a missing required field is reported instead of a parse error.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return pkgerrors.NewValidationError("Invalid request body").WithCause(err)
	}
	if err := utils.ValidateStruct(dst); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// pathParam returns the decoded value of a route parameter. chi matches on RawPath
// when the request carries non-canonical escapes, and on the decoded Path otherwise,
// so only the former needs unescaping.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}
