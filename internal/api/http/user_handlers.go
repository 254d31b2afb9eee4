package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authmw "github.com/open-aems/backend/internal/auth/middleware"
)

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /auth/register
func RegisterHandler(dbh *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || len(req.Password) < 8 {
			writeError(w, http.StatusBadRequest, "username and a password of at least 8 characters are required")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "hash password")
			return
		}

		id := uuid.NewString()
		_, err = dbh.ExecContext(r.Context(),
			`INSERT INTO users (id,username,pass_hash,created_at) VALUES ($1,$2,$3,$4)`,
			id, req.Username, string(hash), time.Now().Unix())
		if err != nil {
			// unique violation reads better as a conflict than a 500
			writeError(w, http.StatusConflict, "username already exists")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id, "username": req.Username})
	}
}

// POST /auth/login
func LoginHandler(dbh *sql.DB, authSvc *authmw.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}

		var id, hash string
		err := dbh.QueryRowContext(r.Context(),
			`SELECT id, pass_hash FROM users WHERE username=$1`, req.Username).Scan(&id, &hash)
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		tok, err := authSvc.IssueJWT(id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "issue token")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": tok})
	}
}
