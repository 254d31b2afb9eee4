package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/open-aems/backend/internal/api/http"
	auth "github.com/open-aems/backend/internal/auth/middleware"
	"github.com/open-aems/backend/internal/config"
	"github.com/open-aems/backend/internal/db"
	"github.com/open-aems/backend/internal/grading"
	"github.com/open-aems/backend/internal/grading/ocr"
	"github.com/open-aems/backend/internal/storage"
	"github.com/open-aems/backend/internal/submission"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := submission.NewSQLStore(dbh)

	// --- Grading pipeline ---
	var completer grading.Completer
	client, err := grading.NewClient(grading.ClientConfig{
		APIKey:    cfg.LLMAPIKey,
		BaseURL:   cfg.LLMBaseURL,
		Model:     cfg.LLMModel,
		Timeout:   cfg.LLMTimeout,
		MaxTokens: cfg.LLMMaxTokens,
	})
	if err != nil {
		// Keyword grading and the read paths still work; model-backed
		// grading will answer 503 until a key is configured.
		log.Printf("warning: %v; model-backed grading disabled", err)
	} else {
		completer = client
	}
	engine := grading.NewEngine(completer)
	gradeCache := api.NewResultCache(cfg.GradeCacheTTL)

	// --- OCR + uploads ---
	extractor := ocr.NewTesseract()
	extractor.Lang = cfg.OCRLang
	extractor.Timeout = cfg.OCRTimeout

	blobs, err := storage.NewFSStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/register", api.RegisterHandler(dbh))
	r.Post("/auth/login", api.LoginHandler(dbh, authSvc))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.Post("/api/grading/grade", api.GradeHandler(engine, gradeCache))
		pr.Post("/api/grading/keywords", api.KeywordGradeHandler())
		pr.Post("/api/ocr/upload", api.UploadGradeHandler(extractor, blobs, engine, store, cfg.MaxUploadBytes))

		pr.Get("/api/submissions", api.ListSubmissionsHandler(store))
		pr.Get("/api/submissions/{submissionID}", api.GetSubmissionHandler(store))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, model=%s)", cfg.HTTPAddr, cfg.DBDriver, cfg.LLMModel)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
