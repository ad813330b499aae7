package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"research-agents/internal/app"
	"research-agents/internal/cache"
	"research-agents/internal/httputil"
	"research-agents/internal/pipeline"
	"research-agents/internal/queue"
	"research-agents/internal/store"
)

type researchRequest struct {
	Query string `json:"query" validate:"required,max=500"`
}

type recordPayload struct {
	Query      string    `json:"query"`
	Topic      string    `json:"topic"`
	Mode       string    `json:"mode"`
	Difficulty string    `json:"difficulty"`
	KeyPoints  []string  `json:"key_points"`
	AnsweredAt time.Time `json:"answered_at"`
}

func main() {
	deps, err := app.BuildServer()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := httputil.NewRouter(deps.Log)

	r.Post("/api/research", researchHandler(deps))
	r.Get("/api/history", historyHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("research server listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server error", "err", err)
	}
}

func researchHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req researchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}

		// Validate request
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			httputil.Fail(deps.Log, w, "query must not be blank", nil, http.StatusBadRequest)
			return
		}

		ctx := r.Context()

		// Check cache first
		cacheKey := cache.Key(req.Query)
		if cached, err := deps.Cache.GetAnswer(ctx, cacheKey); err == nil && cached != nil {
			deps.Log.Info("cache hit", "query", req.Query)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write(cached); err != nil {
				deps.Log.Warn("failed to write cached response", "err", err)
			}
			return
		}

		resp := deps.Pipeline.Run(ctx, req.Query)

		if !resp.Error {
			cacheResponse(ctx, deps, cacheKey, resp)
			publishRecord(ctx, deps, resp)
		}

		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}

// cacheResponse stores the serialized response; cache failures only log.
func cacheResponse(ctx context.Context, deps app.Deps, key string, resp pipeline.Response) {
	body, err := json.Marshal(resp)
	if err != nil {
		deps.Log.Warn("failed to marshal response, skipping cache", "err", err)
		return
	}
	ttl := time.Duration(deps.Config.CacheTTL) * time.Second
	if err := deps.Cache.SetAnswer(ctx, key, body, ttl); err != nil {
		deps.Log.Warn("failed to cache response", "err", err)
	}
}

// publishRecord enqueues the answered query for the recorder. Queue failures
// only log; answering the caller does not depend on history.
func publishRecord(ctx context.Context, deps app.Deps, resp pipeline.Response) {
	payload := recordPayload{
		Query:      resp.Query,
		Mode:       string(resp.Task.Mode),
		AnsweredAt: resp.Timestamp,
	}
	if resp.Research != nil {
		payload.Topic = resp.Research.Topic
	}
	if resp.Analysis != nil {
		payload.Difficulty = string(resp.Analysis.Difficulty)
		payload.KeyPoints = resp.Analysis.KeyPoints
	}

	body, err := json.Marshal(payload)
	if err != nil {
		deps.Log.Warn("failed to marshal record payload", "err", err)
		return
	}
	task := queue.Task{Type: queue.TaskTypeRecord, Payload: body}
	if err := queue.EnqueueWithRetry(ctx, deps.Queue, task, 3, 200*time.Millisecond); err != nil {
		deps.Log.Warn("failed to enqueue record task", "err", err)
	}
}

func historyHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := deps.Config.HistoryLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				httputil.Fail(deps.Log, w, "invalid limit", err, http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		records, err := deps.Store.ListRecent(r.Context(), limit)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to load history", err, http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []store.Record{}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"records": records,
		})
	}
}
