package handle

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"

	"stem-solver/api/internal/solver"
)

// Solve accepts a problem as text, an image, or both, and returns the model's
// worked solution.
func (h *Handle) Solve(w http.ResponseWriter, r *http.Request) {
	var req solver.SolveRequest
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

	var img *solver.Image
	if req.ImageData != "" {
		var err error
		img, err = solver.DecodeImage(req.ImageData)
		if err != nil {
			h.writeError(w, err)
			return
		}
	}

	prompt := solver.SolvePrompt(req.Problem, req.Language, img != nil)
	text, err := h.eng.Solve(ctx, prompt, img)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, solver.SolveResponse{Solution: text})
}
