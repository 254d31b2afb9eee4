package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	authmw "github.com/open-aems/backend/internal/auth/middleware"
	"github.com/open-aems/backend/internal/submission"
)

// GET /api/submissions
func ListSubmissionsHandler(store submission.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := submission.ListOpts{
			UserID: authmw.Subject(r.Context()),
			Limit:  intQuery(r, "limit"),
			Offset: intQuery(r, "offset"),
		}
		subs, err := store.ListSubmissions(r.Context(), opts)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "list submissions: "+err.Error())
			return
		}
		if subs == nil {
			subs = []submission.Submission{}
		}
		writeJSON(w, http.StatusOK, subs)
	}
}

// GET /api/submissions/{submissionID}
func GetSubmissionHandler(store submission.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "submissionID")
		sub, err := store.GetSubmission(r.Context(), id)
		if err != nil {
			if errors.Is(err, submission.ErrNotFound) {
				writeError(w, http.StatusNotFound, "submission not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		resp := map[string]interface{}{"submission": sub}
		if rec, err := store.GetResult(r.Context(), id); err == nil {
			resp["result"] = rec
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func intQuery(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}
