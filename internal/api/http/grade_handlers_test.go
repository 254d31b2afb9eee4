package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/open-aems/backend/internal/grading"
)

type graderFunc func(ctx context.Context, req grading.Request) (grading.Result, error)

func (f graderFunc) Grade(ctx context.Context, req grading.Request) (grading.Result, error) {
	return f(ctx, req)
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGradeHandler(t *testing.T) {
	g := graderFunc(func(_ context.Context, req grading.Request) (grading.Result, error) {
		if req.StrictnessLevel != 3 {
			t.Errorf("strictness = %d, want 3", req.StrictnessLevel)
		}
		return grading.Result{Score: 7, TotalPoints: 10, Feedback: "ok", GradingStandard: "Strict"}, nil
	})

	rec := postJSON(t, GradeHandler(g, nil),
		`{"answer_text":"the answer","rubric_text":"the rubric","strictness_level":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp gradeResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Score != 7 || resp.TotalPoints != 10 || resp.Feedback != "ok" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.ParseStrategy != "direct" {
		t.Errorf("parse_strategy = %q, want direct", resp.ParseStrategy)
	}
}

func TestGradeHandlerMissingFields(t *testing.T) {
	g := graderFunc(func(_ context.Context, _ grading.Request) (grading.Result, error) {
		t.Fatal("grader must not be called")
		return grading.Result{}, nil
	})
	for _, body := range []string{
		`{"rubric_text":"r"}`,
		`{"answer_text":"a"}`,
		`not json`,
	} {
		rec := postJSON(t, GradeHandler(g, nil), body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestGradeHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not configured", grading.ErrNotConfigured, http.StatusServiceUnavailable},
		{"transport", &grading.TransportError{Err: errors.New("timeout")}, http.StatusBadGateway},
		{"upstream format", &grading.UpstreamFormatError{}, http.StatusBadGateway},
		{"other", errors.New("weird"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := graderFunc(func(_ context.Context, _ grading.Request) (grading.Result, error) {
				return grading.Result{}, tc.err
			})
			rec := postJSON(t, GradeHandler(g, nil), `{"answer_text":"a","rubric_text":"r"}`)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestGradeHandlerCacheHit(t *testing.T) {
	calls := 0
	g := graderFunc(func(_ context.Context, _ grading.Request) (grading.Result, error) {
		calls++
		return grading.Result{Score: 5, TotalPoints: 10, Feedback: "ok"}, nil
	})
	cache := NewResultCache(time.Minute)
	h := GradeHandler(g, cache)

	body := `{"answer_text":"same","rubric_text":"same","strictness_level":2}`
	for i := 0; i < 3; i++ {
		if rec := postJSON(t, h, body); rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	}
	if calls != 1 {
		t.Errorf("grader called %d times, want 1 (cache should absorb repeats)", calls)
	}

	// a different request must not hit the cached entry
	other := `{"answer_text":"different","rubric_text":"same","strictness_level":2}`
	if rec := postJSON(t, h, other); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if calls != 2 {
		t.Errorf("grader called %d times, want 2", calls)
	}
}

func TestKeywordGradeHandler(t *testing.T) {
	rec := postJSON(t, KeywordGradeHandler(),
		`{"text":"photosynthesis needs chlorophyll","criteria":{"keywords":["photosynthesis","glucose"],"total_points":10}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Success  bool    `json:"success"`
		Score    float64 `json:"score"`
		Feedback string  `json:"feedback"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Score != 5 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestKeywordGradeHandlerNoText(t *testing.T) {
	rec := postJSON(t, KeywordGradeHandler(), `{"criteria":{"keywords":["x"]}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
