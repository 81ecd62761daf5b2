package solver

import "context"

// Image is a decoded multimodal attachment ready for the generation call.
type Image struct {
	MIME string
	Data []byte
}

// Engine is the generation client adapter. Implementations make exactly one
// logical outbound call per invocation and return the model's text output.
type Engine interface {
	// Solve sends the solve prompt, with img attached when non-nil.
	Solve(ctx context.Context, prompt string, img *Image) (string, error)

	// Explain sends the text-only explain prompt.
	Explain(ctx context.Context, prompt string) (string, error)
}
