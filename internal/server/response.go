package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/archmap/archmap/pkg/errors"
)

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeJSON writes data as a JSON response.
func writeJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the status mapped from its code.
func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	writeJSON(w, errorResponse{
		Error: apperrors.UserMessage(err),
		Code:  string(code),
	}, statusForCode(code))
}

// statusForCode maps error codes to HTTP status codes.
func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidMetadata,
		apperrors.ErrCodeInvalidDiagram,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidConfig,
		apperrors.ErrCodeInvalidPath:
		return http.StatusBadRequest // 400
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeRunNotFound,
		apperrors.ErrCodeFileNotFound,
		apperrors.ErrCodeDiagramNotFound:
		return http.StatusNotFound // 404
	case apperrors.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case apperrors.ErrCodeNetwork, apperrors.ErrCodeRenderFailed:
		return http.StatusBadGateway // 502
	case apperrors.ErrCodeUnsupported:
		return http.StatusNotImplemented // 501
	default:
		return http.StatusInternalServerError // 500
	}
}
