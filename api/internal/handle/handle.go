package handle

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"

	"stem-solver/api/internal/solver"
)

const quotaHint = "API Quota exceeded. Please wait a few seconds and try again. "

const defaultDeadline = 180 * time.Second

type Handle struct {
	eng solver.Engine
	log *logrus.Logger
}

func New(eng solver.Engine, log *logrus.Logger) *Handle {
	return &Handle{
		eng: eng,
		log: log,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

// writeError maps the failure taxonomy to HTTP statuses and returns a bare
// {"detail": ...} body. Quota-exhaustion messages get retry guidance
// prepended, keeping the original message intact.
func (h *Handle) writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, solver.ErrValidation), errors.Is(err, solver.ErrInvalidImage):
		code = http.StatusBadRequest
	}

	detail := err.Error()
	if strings.Contains(strings.ToLower(detail), "quota") {
		detail = quotaHint + detail
	}

	h.log.Errorf("request failed (%d): %v", code, err)
	writeJSON(w, code, solver.ErrorResponse{Detail: detail})
}

// requestDeadline honors the caller's X-Request-Timeout header or timeoutSec
// query parameter, falling back to the server default.
func requestDeadline(r *http.Request) time.Duration {
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	if ts := r.URL.Query().Get("timeoutSec"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	return defaultDeadline
}
