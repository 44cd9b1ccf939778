package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskflow-project/backend/logging"
	"taskflow-project/backend/models"
)

// statusByKind is the single place failure kinds become HTTP statuses.
// Note the asymmetry: addressing a project or task directly by id
// answers 404, while task creation/listing against a project the
// caller cannot see answers 403.
var statusByKind = map[models.FailureKind]int{
	models.KindNotFound:           http.StatusNotFound,
	models.KindDenied:             http.StatusForbidden,
	models.KindConflict:           http.StatusBadRequest,
	models.KindInvalidCredentials: http.StatusBadRequest,
	models.KindValidation:         http.StatusBadRequest,
	models.KindInternal:           http.StatusInternalServerError,
}

// FieldError is one boundary-validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"status":  status < http.StatusBadRequest,
		"message": message,
	})
}

// writeError translates a service failure through the kind table.
// Anything untagged is an internal error: logged in full, answered
// with a generic message so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		writeMessage(w, statusByKind[apiErr.Kind], apiErr.Message)
		return
	}

	logging.Logger.WithField("error", err.Error()).Error("request failed")
	writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
}

func writeValidationErrors(w http.ResponseWriter, errs []FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"status":  false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
