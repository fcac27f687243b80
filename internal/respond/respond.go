// Package respond writes JSON API responses with an exact Content-Length.
package respond

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/imishinist/logger-dev/internal/apierr"
	"github.com/imishinist/logger-dev/internal/models"
)

const contentTypeJSON = "application/json; charset=utf-8"

// JSON serializes payload and writes it with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(models.ErrorResponse{Error: "failed to encode response: " + err.Error()})
	}
	write(w, status, body)
}

// Error writes err as {"ok":false,"error":...} with the status mapped from its kind.
func Error(w http.ResponseWriter, err error) {
	ErrorStatus(w, apierr.Status(err), err.Error())
}

// ErrorStatus writes message as a JSON error with an explicit status.
func ErrorStatus(w http.ResponseWriter, status int, message string) {
	body, _ := json.Marshal(models.ErrorResponse{OK: false, Error: message})
	write(w, status, body)
}

func write(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
