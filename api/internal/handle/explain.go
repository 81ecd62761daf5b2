package handle

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"

	"stem-solver/api/internal/solver"
)

// Explain simplifies a previously produced solution to middle-school level.
func (h *Handle) Explain(w http.ResponseWriter, r *http.Request) {
	var req solver.ExplainRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: bad json: %v", solver.ErrValidation, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestDeadline(r))
	defer cancel()

	prompt := solver.ExplainPrompt(req.Problem, req.Solution, req.Language)
	text, err := h.eng.Explain(ctx, prompt)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, solver.ExplainResponse{Explanation: text})
}
