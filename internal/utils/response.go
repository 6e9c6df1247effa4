package utils

import (
	"encoding/json"
	"net/http"

	"CASHTRACKR_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a JSON error body with a short error and optional detail
func WriteErrorResponse(w http.ResponseWriter, status int, errMsg, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: errMsg, Message: message})
}

// WriteValidationErrors writes a 400 response listing per-field validation messages
func WriteValidationErrors(w http.ResponseWriter, errs []dto.FieldError) {
	WriteJSONResponse(w, http.StatusBadRequest, dto.ValidationErrorResponse{Errors: errs})
}
