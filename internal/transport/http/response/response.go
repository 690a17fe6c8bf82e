package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/eventhub/platform/internal/domain"
	"github.com/eventhub/platform/internal/transport/http/dto"
)

// ApiError is the error body:
// {"status":"...","reason":"...","message":"...","timestamp":"..."}
type ApiError struct {
	Status    string       `json:"status"`
	Reason    string       `json:"reason"`
	Message   string       `json:"message"`
	Timestamp dto.DateTime `json:"timestamp"`
}

// JSON writes raw JSON with Content-Type.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Err(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	reason := "Internal server error."
	message := "internal error"

	var ae *domain.AppError
	if errors.As(err, &ae) {
		status = statusFromCode(ae.Code)
		reason = reasonFor(status)
		message = ae.Message
	} else {
		// keep details in logs only
		zlog.Error().Err(err).Msg("unhandled error")
	}

	JSON(w, status, ApiError{
		Status:    http.StatusText(status),
		Reason:    reason,
		Message:   message,
		Timestamp: dto.DateTime(time.Now().UTC()),
	})
}

func statusFromCode(code domain.ErrCode) int {
	switch code {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func reasonFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Incorrectly made request."
	case http.StatusNotFound:
		return "The required object was not found."
	case http.StatusConflict:
		return "For the requested operation the conditions are not met."
	default:
		return "Internal server error."
	}
}
