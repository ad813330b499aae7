package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"research-agents/internal/analyzer"
	"research-agents/internal/app"
	"research-agents/internal/cache"
	"research-agents/internal/config"
	"research-agents/internal/pipeline"
	"research-agents/internal/queue"
	"research-agents/internal/store"
	"research-agents/internal/topic"
	"research-agents/internal/wiki"
)

func newTestDeps(f *wiki.MockFetcher, c *cache.MockCache, q *queue.MockQueue, s *store.MockStore) app.Deps {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return app.Deps{
		Config:   config.Config{CacheTTL: 60, HistoryLimit: 20},
		Log:      log,
		Pipeline: pipeline.New(topic.NewExtractor(), f, analyzer.New(analyzer.Options{}), log),
		Cache:    c,
		Queue:    q,
		Store:    s,
	}
}

func adaResult() wiki.Result {
	return wiki.Result{
		Topic:   "Ada Lovelace",
		OK:      true,
		Summary: "Ada Lovelace was an English mathematician and writer known for her work on the Analytical Engine.",
		URL:     "https://en.wikipedia.org/wiki/Ada_Lovelace",
	}
}

func TestResearchHandler(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		setup          func(*wiki.MockFetcher, *cache.MockCache, *queue.MockQueue)
		wantStatusCode int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name:        "successful research",
			requestBody: `{"query": "who is Ada Lovelace"}`,
			setup: func(f *wiki.MockFetcher, c *cache.MockCache, q *queue.MockQueue) {
				c.On("GetAnswer", mock.Anything, mock.Anything).Return(nil, nil).Once()
				f.On("Fetch", mock.Anything, "Ada_Lovelace").Return(adaResult(), nil).Once()
				c.On("SetAnswer", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				q.On("Enqueue", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result pipeline.Response
				if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if result.Error {
					t.Errorf("unexpected error response: %s", result.Message)
				}
				if !strings.Contains(result.FinalAnswer, "## 📚 Ada Lovelace") {
					t.Errorf("final answer missing heading:\n%s", result.FinalAnswer)
				}
				if result.Task.Mode != "overview" {
					t.Errorf("expected overview mode, got %s", result.Task.Mode)
				}
			},
		},
		{
			name:        "cache hit skips the pipeline",
			requestBody: `{"query": "who is Ada Lovelace"}`,
			setup: func(f *wiki.MockFetcher, c *cache.MockCache, q *queue.MockQueue) {
				c.On("GetAnswer", mock.Anything, cache.Key("who is Ada Lovelace")).
					Return([]byte(`{"query":"who is Ada Lovelace","finalAnswer":"cached"}`), nil).Once()
			},
			wantStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result map[string]any
				if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if result["finalAnswer"] != "cached" {
					t.Errorf("expected cached payload, got %v", result)
				}
			},
		},
		{
			name:        "fetch error yields error-shaped response, nothing cached",
			requestBody: `{"query": "who is Ada Lovelace"}`,
			setup: func(f *wiki.MockFetcher, c *cache.MockCache, q *queue.MockQueue) {
				c.On("GetAnswer", mock.Anything, mock.Anything).Return(nil, nil).Once()
				f.On("Fetch", mock.Anything, mock.Anything).
					Return(wiki.Result{}, errors.New("network down")).Once()
			},
			wantStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result pipeline.Response
				if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if !result.Error {
					t.Error("expected error-shaped response")
				}
				if result.Research != nil {
					t.Error("expected null research on fetch failure")
				}
			},
		},
		{
			name:           "invalid JSON payload returns 400",
			requestBody:    `{invalid json}`,
			setup:          func(f *wiki.MockFetcher, c *cache.MockCache, q *queue.MockQueue) {},
			wantStatusCode: http.StatusBadRequest,
			checkResponse:  func(t *testing.T, resp *http.Response) {},
		},
		{
			name:           "missing query fails validation",
			requestBody:    `{}`,
			setup:          func(f *wiki.MockFetcher, c *cache.MockCache, q *queue.MockQueue) {},
			wantStatusCode: http.StatusBadRequest,
			checkResponse:  func(t *testing.T, resp *http.Response) {},
		},
		{
			name:           "blank query is rejected before the pipeline",
			requestBody:    `{"query": "   "}`,
			setup:          func(f *wiki.MockFetcher, c *cache.MockCache, q *queue.MockQueue) {},
			wantStatusCode: http.StatusBadRequest,
			checkResponse:  func(t *testing.T, resp *http.Response) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := new(wiki.MockFetcher)
			mockCache := new(cache.MockCache)
			mockQueue := new(queue.MockQueue)
			mockStore := new(store.MockStore)
			tt.setup(fetcher, mockCache, mockQueue)

			deps := newTestDeps(fetcher, mockCache, mockQueue, mockStore)
			handler := researchHandler(deps)

			req := httptest.NewRequest(http.MethodPost, "/api/research", strings.NewReader(tt.requestBody))
			rec := httptest.NewRecorder()
			handler(rec, req)

			resp := rec.Result()
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatusCode {
				t.Errorf("expected status %d, got %d", tt.wantStatusCode, resp.StatusCode)
			}
			tt.checkResponse(t, resp)

			fetcher.AssertExpectations(t)
			mockCache.AssertExpectations(t)
			mockQueue.AssertExpectations(t)
		})
	}
}

func TestHistoryHandler(t *testing.T) {
	mockStore := new(store.MockStore)
	mockStore.On("ListRecent", mock.Anything, 20).Return([]store.Record{
		{Query: "who is Ada Lovelace", Topic: "Ada Lovelace", Mode: "overview"},
	}, nil).Once()

	deps := newTestDeps(new(wiki.MockFetcher), new(cache.MockCache), new(queue.MockQueue), mockStore)
	handler := historyHandler(deps)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string][]store.Record
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body["records"]) != 1 || body["records"][0].Topic != "Ada Lovelace" {
		t.Errorf("unexpected records: %v", body["records"])
	}
	mockStore.AssertExpectations(t)
}

func TestHistoryHandlerInvalidLimit(t *testing.T) {
	deps := newTestDeps(new(wiki.MockFetcher), new(cache.MockCache), new(queue.MockQueue), new(store.MockStore))
	handler := historyHandler(deps)

	req := httptest.NewRequest(http.MethodGet, "/api/history?limit=zero", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
