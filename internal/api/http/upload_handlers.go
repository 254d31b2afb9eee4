package http

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	authmw "github.com/open-aems/backend/internal/auth/middleware"
	"github.com/open-aems/backend/internal/grading"
	"github.com/open-aems/backend/internal/grading/ocr"
	"github.com/open-aems/backend/internal/storage"
	"github.com/open-aems/backend/internal/submission"
)

var allowedUploadExt = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// POST /api/ocr/upload
//
// Multipart form with "rubric" and "test_script" files plus an optional
// "strictness_level" field. Both files are OCRed, the answer is graded
// against the rubric, and the submission and its result are stored.
func UploadGradeHandler(extractor ocr.Extractor, blobs *storage.FSStore, g Grader, store submission.Store, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
			return
		}

		rubricFile, rubricHdr, err := r.FormFile("rubric")
		if err != nil {
			writeError(w, http.StatusBadRequest, "both rubric and test script are required")
			return
		}
		defer rubricFile.Close()
		scriptFile, scriptHdr, err := r.FormFile("test_script")
		if err != nil {
			writeError(w, http.StatusBadRequest, "both rubric and test script are required")
			return
		}
		defer scriptFile.Close()

		rubricExt := strings.ToLower(filepath.Ext(rubricHdr.Filename))
		scriptExt := strings.ToLower(filepath.Ext(scriptHdr.Filename))
		if !allowedUploadExt[rubricExt] || !allowedUploadExt[scriptExt] {
			writeError(w, http.StatusBadRequest, "invalid file type: only PDF, PNG, and JPG are allowed")
			return
		}

		subID := uuid.NewString()
		rubricText, err := storeAndExtract(r, extractor, blobs, subID+"/rubric"+rubricExt, rubricFile)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "rubric OCR failed: "+err.Error())
			return
		}
		answerText, err := storeAndExtract(r, extractor, blobs, subID+"/test_script"+scriptExt, scriptFile)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "test script OCR failed: "+err.Error())
			return
		}
		if strings.TrimSpace(answerText) == "" || strings.TrimSpace(rubricText) == "" {
			// The grading core treats empty text as insufficient; abort here
			// rather than grading a blank sheet.
			writeError(w, http.StatusUnprocessableEntity, "could not extract enough text from the uploaded files")
			return
		}

		strictness := grading.DefaultStrictness
		if v := r.FormValue("strictness_level"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				strictness = n
			}
		}

		req := grading.Request{
			AnswerText:      answerText,
			RubricText:      rubricText,
			StrictnessLevel: strictness,
		}
		res, err := g.Grade(r.Context(), req)
		if err != nil {
			writeGradeError(w, err)
			return
		}

		now := time.Now().Unix()
		sub := submission.Submission{
			ID:         subID,
			UserID:     authmw.Subject(r.Context()),
			RubricText: rubricText,
			AnswerText: answerText,
			Strictness: strictness,
			CreatedAt:  now,
		}
		if err := store.PutSubmission(r.Context(), sub); err != nil {
			writeError(w, http.StatusInternalServerError, "store submission: "+err.Error())
			return
		}
		rec := submission.ResultRecord{
			ID:              uuid.NewString(),
			SubmissionID:    subID,
			Score:           res.Score,
			TotalPoints:     res.TotalPoints,
			Feedback:        res.Feedback,
			GradingStandard: res.GradingStandard,
			ParseStrategy:   res.Strategy.String(),
			GradedAt:        now,
		}
		if err := store.PutResult(r.Context(), rec); err != nil {
			writeError(w, http.StatusInternalServerError, "store result: "+err.Error())
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"submission_id":    subID,
			"score":            res.Score,
			"total_points":     res.TotalPoints,
			"feedback":         res.Feedback,
			"grading_standard": res.GradingStandard,
		})
	}
}

func storeAndExtract(r *http.Request, extractor ocr.Extractor, blobs *storage.FSStore, key string, f multipart.File) (string, error) {
	if _, err := blobs.Put(key, f); err != nil {
		return "", err
	}
	return extractor.ExtractPath(r.Context(), blobs.Path(key))
}
