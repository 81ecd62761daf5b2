package solver

import (
	"fmt"
	"strings"
)

// SolveRequest carries a problem statement as text, an image, or both.
type SolveRequest struct {
	Problem   string `json:"problem"`
	Language  string `json:"language"`
	ImageData string `json:"image_data,omitempty"` // base64, possibly data:URI
}

func (r SolveRequest) Validate() error {
	if strings.TrimSpace(r.Problem) == "" && strings.TrimSpace(r.ImageData) == "" {
		return fmt.Errorf("%w: problem or image_data is required", ErrValidation)
	}
	if strings.TrimSpace(r.Language) == "" {
		return fmt.Errorf("%w: language is required", ErrValidation)
	}
	return nil
}

type SolveResponse struct {
	Solution string `json:"solution"`
}

type ExplainRequest struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
	Language string `json:"language"`
}

func (r ExplainRequest) Validate() error {
	if strings.TrimSpace(r.Problem) == "" {
		return fmt.Errorf("%w: problem is required", ErrValidation)
	}
	if strings.TrimSpace(r.Solution) == "" {
		return fmt.Errorf("%w: solution is required", ErrValidation)
	}
	if strings.TrimSpace(r.Language) == "" {
		return fmt.Errorf("%w: language is required", ErrValidation)
	}
	return nil
}

type ExplainResponse struct {
	Explanation string `json:"explanation"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
