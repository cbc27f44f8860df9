// Package http provides the HTTP handlers and router for the weather
// service API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/avolkov/skycast/internal/apperr"
)

// validate checks request structs against their field tags. Validation runs
// as a pre-dispatch gate: a body that fails never reaches component logic.
var validate = validator.New()

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError converts any handler error into a JSON {error: message} body
// with the status mapped by the apperr taxonomy. Unclassified errors render
// as a generic 500 and are logged with their cause.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": apperr.MessageOf(err)})
}

// decodeBody decodes the JSON request body into dst, rejecting unknown
// fields, then validates it. The first failing field is named in the error.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.New(apperr.Validation, "invalid JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			field := strings.ToLower(fieldErrs[0].Field())
			return apperr.New(apperr.Validation, fmt.Sprintf("invalid or missing field %q", field))
		}
		return apperr.New(apperr.Validation, "invalid request body")
	}
	return nil
}
