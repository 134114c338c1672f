package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"seocheck-go-crawler/internal/analyzer"
	"seocheck-go-crawler/internal/checks"
	"seocheck-go-crawler/internal/crawler"
	"seocheck-go-crawler/internal/fetch"
	"seocheck-go-crawler/pkg/logger"
)

type auditReq struct {
	URL string `json:"url"`
}

// crawls run for as long as the site has pages; bound them so a
// pathological site cannot pin a handler forever
const maxAuditDuration = 10 * time.Minute

func main() {
	log := logger.New(os.Getenv("DEBUG") != "")
	defer func() { _ = log.Sync() }()

	client := fetch.NewHTTPClient(fetch.DefaultTimeout, 0, 5*1024*1024)

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// POST /audit  { "url": "https://..." }
	mux.HandleFunc("/audit", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		var req auditReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), maxAuditDuration)
		defer cancel()

		an := analyzer.New(client, checks.DefaultKeywordConfig(), log)
		c := crawler.New(an, log)
		result, err := c.Run(ctx, req.URL)
		if err != nil {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      logRequest(log, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: maxAuditDuration + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infow("server listening", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server error", "error", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Infow("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func logRequest(log *zap.SugaredLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Infow("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}
