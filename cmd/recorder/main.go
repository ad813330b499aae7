package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"research-agents/internal/app"
	"research-agents/internal/httputil"
	"research-agents/internal/queue"
	"research-agents/internal/store"
)

type recordPayload struct {
	Query      string    `json:"query"`
	Topic      string    `json:"topic"`
	Mode       string    `json:"mode"`
	Difficulty string    `json:"difficulty"`
	KeyPoints  []string  `json:"key_points"`
	AnsweredAt time.Time `json:"answered_at"`
}

func main() {
	deps, err := app.BuildRecorder()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	deps.Log.Info("recorder worker starting")

	g, ctx := errgroup.WithContext(context.Background())

	// Run queue worker
	g.Go(func() error {
		return deps.Queue.Worker(ctx, queue.TaskTypeRecord, func(ctx context.Context, task queue.Task) error {
			var payload recordPayload
			if err := json.Unmarshal(task.Payload, &payload); err != nil {
				return err
			}
			return handleRecord(ctx, deps, task.ID, payload)
		})
	})

	// Run health check server
	g.Go(func() error {
		return httputil.ServeHealth(deps, "recorder")
	})

	// Wait for either to fail
	if err := g.Wait(); err != nil {
		deps.Log.Error("recorder service stopped", "err", err)
	}
}

func handleRecord(ctx context.Context, deps app.Deps, taskID uuid.UUID, payload recordPayload) error {
	rec := store.Record{
		ID:         taskID,
		Query:      payload.Query,
		Topic:      payload.Topic,
		Mode:       payload.Mode,
		Difficulty: payload.Difficulty,
		KeyPoints:  payload.KeyPoints,
		AnsweredAt: payload.AnsweredAt,
	}
	if err := deps.Store.SaveRecord(ctx, rec); err != nil {
		return err
	}
	deps.Log.Info("query recorded", "id", rec.ID, "topic", rec.Topic, "mode", rec.Mode)
	return nil
}
