package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/open-aems/backend/internal/grading"
)

// Grader is the grading pipeline as the HTTP layer sees it.
type Grader interface {
	Grade(ctx context.Context, req grading.Request) (grading.Result, error)
}

type gradeResp struct {
	Score           float64 `json:"score"`
	TotalPoints     int     `json:"total_points"`
	Feedback        string  `json:"feedback"`
	GradingStandard string  `json:"grading_standard"`
	ParseStrategy   string  `json:"parse_strategy"`
}

func toGradeResp(res grading.Result) gradeResp {
	return gradeResp{
		Score:           res.Score,
		TotalPoints:     res.TotalPoints,
		Feedback:        res.Feedback,
		GradingStandard: res.GradingStandard,
		ParseStrategy:   res.Strategy.String(),
	}
}

// POST /api/grading/grade
func GradeHandler(g Grader, cache *ResultCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req grading.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		if strings.TrimSpace(req.AnswerText) == "" {
			writeError(w, http.StatusBadRequest, "answer_text required")
			return
		}
		if strings.TrimSpace(req.RubricText) == "" {
			writeError(w, http.StatusBadRequest, "rubric_text required")
			return
		}

		if res, ok := cache.Get(req); ok {
			writeJSON(w, http.StatusOK, toGradeResp(res))
			return
		}

		res, err := g.Grade(r.Context(), req)
		if err != nil {
			writeGradeError(w, err)
			return
		}
		cache.Put(req, res)
		writeJSON(w, http.StatusOK, toGradeResp(res))
	}
}

type keywordGradeReq struct {
	Text     string           `json:"text"`
	Criteria grading.Criteria `json:"criteria"`
}

// POST /api/grading/keywords
//
// Offline keyword-coverage grading; no model call involved.
func KeywordGradeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req keywordGradeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "no text provided for grading")
			return
		}
		res := grading.GradeKeywords(req.Text, req.Criteria)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"score":    res.Score,
			"feedback": res.Feedback,
		})
	}
}

// writeGradeError maps the pipeline's error taxonomy onto status codes:
// a missing credential is our misconfiguration, everything else is the
// upstream's fault.
func writeGradeError(w http.ResponseWriter, err error) {
	var te *grading.TransportError
	var fe *grading.UpstreamFormatError
	switch {
	case errors.Is(err, grading.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "grading is not configured")
	case errors.As(err, &te):
		writeError(w, http.StatusBadGateway, "grading upstream failed: "+te.Error())
	case errors.As(err, &fe):
		writeError(w, http.StatusBadGateway, fe.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
