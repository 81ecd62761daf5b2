package handle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"stem-solver/api/internal/solver"
)

type fakeEngine struct {
	solve   func(ctx context.Context, prompt string, img *solver.Image) (string, error)
	explain func(ctx context.Context, prompt string) (string, error)
}

func (f *fakeEngine) Solve(ctx context.Context, prompt string, img *solver.Image) (string, error) {
	return f.solve(ctx, prompt, img)
}

func (f *fakeEngine) Explain(ctx context.Context, prompt string) (string, error) {
	return f.explain(ctx, prompt)
}

func newTestHandle(eng solver.Engine) *Handle {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	return New(eng, log)
}

func postJSON(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/solve", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func rawRequest(body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/solve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req, httptest.NewRecorder()
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestSolveTextOnly(t *testing.T) {
	var gotPrompt string
	var gotImg *solver.Image
	eng := &fakeEngine{
		solve: func(_ context.Context, prompt string, img *solver.Image) (string, error) {
			gotPrompt, gotImg = prompt, img
			return "x = 4", nil
		},
	}
	h := newTestHandle(eng)

	rec := postJSON(t, h.Solve, solver.SolveRequest{Problem: "2*x + 3 = 11", Language: "French"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[solver.SolveResponse](t, rec)
	if resp.Solution != "x = 4" {
		t.Fatalf("solution = %q", resp.Solution)
	}
	if gotImg != nil {
		t.Fatal("text-only solve passed an image to the engine")
	}
	if !strings.Contains(gotPrompt, "2*x + 3 = 11") || !strings.Contains(gotPrompt, "French") {
		t.Fatalf("prompt missing problem or language: %q", gotPrompt)
	}
}

func TestSolveWithImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	var gotImg *solver.Image
	var gotPrompt string
	eng := &fakeEngine{
		solve: func(_ context.Context, prompt string, img *solver.Image) (string, error) {
			gotPrompt, gotImg = prompt, img
			return "42", nil
		},
	}
	h := newTestHandle(eng)

	rec := postJSON(t, h.Solve, solver.SolveRequest{Language: "English", ImageData: payload})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if gotImg == nil {
		t.Fatal("engine did not receive the image")
	}
	if gotImg.MIME != "image/png" {
		t.Fatalf("MIME = %q", gotImg.MIME)
	}
	if !strings.Contains(gotPrompt, "attached image") {
		t.Fatalf("prompt is not the image variant: %q", gotPrompt)
	}
}

func TestSolveBadImage(t *testing.T) {
	eng := &fakeEngine{
		solve: func(context.Context, string, *solver.Image) (string, error) {
			t.Fatal("engine must not be called for a bad image")
			return "", nil
		},
	}
	h := newTestHandle(eng)

	rec := postJSON(t, h.Solve, solver.SolveRequest{Language: "English", ImageData: "not-base64!!"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeBody[solver.ErrorResponse](t, rec)
	if !strings.Contains(resp.Detail, "Invalid image data") {
		t.Fatalf("detail = %q, want mention of Invalid image data", resp.Detail)
	}
}

func TestSolveValidation(t *testing.T) {
	eng := &fakeEngine{
		solve: func(context.Context, string, *solver.Image) (string, error) {
			t.Fatal("engine must not be called for an invalid request")
			return "", nil
		},
	}
	h := newTestHandle(eng)

	for name, req := range map[string]solver.SolveRequest{
		"empty":       {Language: "English"},
		"no language": {Problem: "2+2"},
	} {
		rec := postJSON(t, h.Solve, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}

func TestSolveQuotaAnnotation(t *testing.T) {
	quotaMsg := "googleapi: Error 429: QUOTA exceeded for model"
	eng := &fakeEngine{
		solve: func(context.Context, string, *solver.Image) (string, error) {
			return "", fmt.Errorf("%w: %s", solver.ErrGeneration, quotaMsg)
		},
	}
	h := newTestHandle(eng)

	rec := postJSON(t, h.Solve, solver.SolveRequest{Problem: "2+2", Language: "English"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	resp := decodeBody[solver.ErrorResponse](t, rec)
	if !strings.HasPrefix(resp.Detail, quotaHint) {
		t.Fatalf("detail %q does not start with the retry guidance", resp.Detail)
	}
	if !strings.Contains(resp.Detail, quotaMsg) {
		t.Fatalf("detail %q lost the original message", resp.Detail)
	}
}

func TestSolveGenerationFailure(t *testing.T) {
	eng := &fakeEngine{
		solve: func(context.Context, string, *solver.Image) (string, error) {
			return "", fmt.Errorf("%w: connection reset", solver.ErrGeneration)
		},
	}
	h := newTestHandle(eng)

	rec := postJSON(t, h.Solve, solver.SolveRequest{Problem: "2+2", Language: "English"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	resp := decodeBody[solver.ErrorResponse](t, rec)
	if resp.Detail == "" {
		t.Fatal("detail is empty")
	}
	if strings.HasPrefix(resp.Detail, quotaHint) {
		t.Fatal("non-quota error got the quota hint")
	}
}

func TestSolveConcurrentRequestsDoNotLeak(t *testing.T) {
	// Engine echoes the prompt; each response must carry its own problem.
	eng := &fakeEngine{
		solve: func(_ context.Context, prompt string, _ *solver.Image) (string, error) {
			return prompt, nil
		},
	}
	h := newTestHandle(eng)

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			problem := fmt.Sprintf("problem-%d", i)
			rec := postJSON(t, h.Solve, solver.SolveRequest{Problem: problem, Language: "English"})
			if rec.Code != http.StatusOK {
				errs <- fmt.Errorf("request %d: status %d", i, rec.Code)
				return
			}
			var resp solver.SolveResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				errs <- fmt.Errorf("request %d: %v", i, err)
				return
			}
			if !strings.Contains(resp.Solution, "'"+problem+"'") {
				errs <- fmt.Errorf("request %d got a response for another problem: %q", i, resp.Solution)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
