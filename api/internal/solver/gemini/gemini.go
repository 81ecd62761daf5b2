package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"stem-solver/api/internal/metrics"
	"stem-solver/api/internal/solver"
)

const maxAttempts = 3

// Sampling is the per-task generation config.
type Sampling struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Engine adapts the Gemini API to the solver.Engine contract.
type Engine struct {
	APIKey string
	Model  string

	solve   Sampling
	explain Sampling
}

func New(apiKey, model string, solve, explain Sampling) *Engine {
	return &Engine{
		APIKey:  strings.TrimSpace(apiKey),
		Model:   strings.TrimSpace(model),
		solve:   solve,
		explain: explain,
	}
}

func (e *Engine) Name() string { return "gemini" }

func (e *Engine) Solve(ctx context.Context, prompt string, img *solver.Image) (string, error) {
	parts := []genai.Part{genai.Text(prompt)}
	if img != nil {
		parts = append(parts, &genai.Blob{MIMEType: img.MIME, Data: img.Data})
	}
	return e.generate(ctx, "solve", e.solve, parts)
}

func (e *Engine) Explain(ctx context.Context, prompt string) (string, error) {
	return e.generate(ctx, "explain", e.explain, []genai.Part{genai.Text(prompt)})
}

func (e *Engine) generate(ctx context.Context, task string, s Sampling, parts []genai.Part) (string, error) {
	start := time.Now()
	out, err := e.generateOnce(ctx, s, parts)
	if err != nil {
		metrics.GenerationObserve(task, "error", time.Since(start))
		return "", fmt.Errorf("%w: %v", solver.ErrGeneration, err)
	}
	metrics.GenerationObserve(task, "ok", time.Since(start))
	return out, nil
}

func (e *Engine) generateOnce(ctx context.Context, s Sampling, parts []genai.Part) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:     ptrFloat32(s.Temperature),
		MaxOutputTokens: ptrInt32(s.MaxOutputTokens),
	}

	// Transient 5xx happens; quota errors don't heal on retry, surface those
	// immediately.
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := m.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			if isQuota(err) || ctx.Err() != nil {
				return "", lastErr
			}
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			continue
		}
		txt := firstText(resp)
		if strings.TrimSpace(txt) == "" {
			return "", fmt.Errorf("gemini: empty response")
		}
		return txt, nil
	}
	return "", lastErr
}

func isQuota(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "quota")
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }
