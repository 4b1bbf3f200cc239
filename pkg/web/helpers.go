// Package web contains the HTTP plumbing shared by the storefront handlers:
// response helpers, router middleware, and request-scoped context keys.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// ValidationProblems maps validator field errors to a field->rule map.
// Returns false when err is not a validation error.
func ValidationProblems(err error) (map[string]string, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}
	problems := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		problems[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
	}
	return problems, true
}

// RespondInvalidBody reports a failed decode or validation of a request body.
func RespondInvalidBody(w http.ResponseWriter, logger *slog.Logger, err error) {
	if problems, ok := ValidationProblems(err); ok {
		RespondJSON(w, logger, http.StatusBadRequest, map[string]any{"validation_errors": problems})
		return
	}
	RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
}
