package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/open-aems/backend/internal/grading"
	"github.com/open-aems/backend/internal/storage"
	"github.com/open-aems/backend/internal/submission"
)

// fakeExtractor returns canned text per file base name.
type fakeExtractor struct{ texts map[string]string }

func (f *fakeExtractor) Extract(_ context.Context, r io.Reader) (string, error) {
	b, _ := io.ReadAll(r)
	return string(b), nil
}

func (f *fakeExtractor) ExtractPath(_ context.Context, path string) (string, error) {
	return f.texts[filepath.Base(path)], nil
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][2]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	for field, nameAndContent := range files {
		fw, err := mw.CreateFormFile(field, nameAndContent[0])
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		_, _ = fw.Write([]byte(nameAndContent[1]))
	}
	_ = mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestUploadGradeHandler(t *testing.T) {
	blobs, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	extractor := &fakeExtractor{texts: map[string]string{
		"rubric.png":      "Criteria (10 points): mention X",
		"test_script.png": "The student mentions X.",
	}}
	store := submission.NewInMemoryStore()
	g := graderFunc(func(_ context.Context, req grading.Request) (grading.Result, error) {
		if req.RubricText != "Criteria (10 points): mention X" {
			t.Errorf("rubric text = %q", req.RubricText)
		}
		return grading.Result{Score: 8, TotalPoints: 10, Feedback: "good", GradingStandard: "Standard"}, nil
	})

	body, ctype := multipartBody(t,
		map[string]string{"strictness_level": "2"},
		map[string][2]string{
			"rubric":      {"rubric.png", "fake image bytes"},
			"test_script": {"test_script.png", "fake image bytes"},
		})
	req := httptest.NewRequest("POST", "/api/ocr/upload", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	UploadGradeHandler(extractor, blobs, g, store, 16<<20).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		SubmissionID string  `json:"submission_id"`
		Score        float64 `json:"score"`
		TotalPoints  int     `json:"total_points"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Score != 8 || resp.TotalPoints != 10 {
		t.Errorf("unexpected response: %+v", resp)
	}

	// the submission and its result must have been stored
	sub, err := store.GetSubmission(context.Background(), resp.SubmissionID)
	if err != nil {
		t.Fatalf("GetSubmission: %v", err)
	}
	if sub.AnswerText != "The student mentions X." {
		t.Errorf("stored answer = %q", sub.AnswerText)
	}
	res, err := store.GetResult(context.Background(), resp.SubmissionID)
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if res.Score != 8 {
		t.Errorf("stored score = %v", res.Score)
	}
}

func TestUploadGradeHandlerRejectsBadType(t *testing.T) {
	blobs, _ := storage.NewFSStore(t.TempDir())
	store := submission.NewInMemoryStore()
	g := graderFunc(func(_ context.Context, _ grading.Request) (grading.Result, error) {
		t.Fatal("grader must not be called")
		return grading.Result{}, nil
	})

	body, ctype := multipartBody(t, nil, map[string][2]string{
		"rubric":      {"rubric.exe", "nope"},
		"test_script": {"test_script.png", "ok"},
	})
	req := httptest.NewRequest("POST", "/api/ocr/upload", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	UploadGradeHandler(&fakeExtractor{}, blobs, g, store, 16<<20).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUploadGradeHandlerMissingFile(t *testing.T) {
	blobs, _ := storage.NewFSStore(t.TempDir())
	store := submission.NewInMemoryStore()
	g := graderFunc(func(_ context.Context, _ grading.Request) (grading.Result, error) {
		return grading.Result{}, nil
	})

	body, ctype := multipartBody(t, nil, map[string][2]string{
		"rubric": {"rubric.png", "only one file"},
	})
	req := httptest.NewRequest("POST", "/api/ocr/upload", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	UploadGradeHandler(&fakeExtractor{}, blobs, g, store, 16<<20).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUploadGradeHandlerEmptyOCRText(t *testing.T) {
	blobs, _ := storage.NewFSStore(t.TempDir())
	store := submission.NewInMemoryStore()
	extractor := &fakeExtractor{texts: map[string]string{
		"rubric.png":      "Criteria",
		"test_script.png": "   ",
	}}
	g := graderFunc(func(_ context.Context, _ grading.Request) (grading.Result, error) {
		t.Fatal("grader must not be called on empty text")
		return grading.Result{}, nil
	})

	body, ctype := multipartBody(t, nil, map[string][2]string{
		"rubric":      {"rubric.png", "x"},
		"test_script": {"test_script.png", "x"},
	})
	req := httptest.NewRequest("POST", "/api/ocr/upload", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	UploadGradeHandler(extractor, blobs, g, store, 16<<20).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}
