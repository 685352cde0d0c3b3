package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
)

// Logger is the subset of logger.Logger needed here.
type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// Normalize converts any error into a *StandardError.
func Normalize(err error) *StandardError {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se
	}
	return NewInternalError(err)
}

// StatusFor maps an error code to the HTTP status returned to the UI.
func StatusFor(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeSchemaValidationFailed:
		return http.StatusBadRequest
	case ErrCodeModelUnavailable, ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeModelTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeModelOutputInvalid:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteHTTP logs err and writes it as a JSON body.
func WriteHTTP(w http.ResponseWriter, log Logger, err error) {
	se := Normalize(err)
	status := StatusFor(se.Code)

	if log != nil {
		log.Error("request failed", map[string]interface{}{
			"errorCode": string(se.Code),
			"message":   se.Message,
			"details":   se.Details,
			"status":    status,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    se.Code,
		"message": se.Message,
		"details": se.Details,
	})
}
