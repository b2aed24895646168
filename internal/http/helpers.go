package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"budgetmaster/internal/core"
	"budgetmaster/internal/log"
	"budgetmaster/internal/middleware/trace"
)

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps validation sentinels to 422 and anything else to 500.
// A 500 body carries the request id so it can be matched to the log line.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	if isValidationError(err) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed", log.FieldError, err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:     "internal error",
		RequestID: trace.GetRequestID(r.Context()),
	})
}

var validationErrors = []error{
	core.ErrInvalidAmount,
	core.ErrSignMismatch,
	core.ErrInvalidType,
	core.ErrInvalidPeriod,
	core.ErrInvalidFrequency,
	core.ErrInvalidRate,
	core.ErrInvalidDate,
	core.ErrEmptyDescription,
	core.ErrEmptyCategory,
	core.ErrEmptyName,
	core.ErrDescriptionTooLong,
	core.ErrOverpayment,
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// decodeJSON reads one JSON object into dst. Malformed bodies give 400,
// rejected values inside them (amounts, dates) give 422.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
	case isValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, io.EOF):
		writeError(w, http.StatusBadRequest, "request body is empty")
	default:
		writeError(w, http.StatusBadRequest, "invalid request body")
	}
	return false
}

// parseMonth reads year/month query parameters, defaulting to now's month.
func parseMonth(r *http.Request, now time.Time) (time.Time, error) {
	year, month := now.Year(), int(now.Month())
	q := r.URL.Query()
	if v := strings.TrimSpace(q.Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1970 || y > 9999 {
			return time.Time{}, fmt.Errorf("invalid year %q", v)
		}
		year = y
	}
	if v := strings.TrimSpace(q.Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return time.Time{}, fmt.Errorf("invalid month %q", v)
		}
		month = m
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location()), nil
}

const maxTrendMonths = 60

// parseMonths reads the months query parameter; 0 means the configured
// default.
func parseMonths(r *http.Request) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get("months"))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > maxTrendMonths {
		return 0, fmt.Errorf("invalid months %q: must be between 1 and %d", v, maxTrendMonths)
	}
	return n, nil
}

// sanitizeInput drops control characters and trims whitespace.
func sanitizeInput(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return -1
		}
		return r
	}, s))
}
