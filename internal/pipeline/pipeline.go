package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"research-agents/internal/analyzer"
	"research-agents/internal/intent"
	"research-agents/internal/render"
	"research-agents/internal/topic"
	"research-agents/internal/wiki"
)

// Fetcher is the summary lookup boundary. Implementations fold service
// failures into the Result; a non-nil error means the call itself broke.
type Fetcher interface {
	Fetch(ctx context.Context, key string) (wiki.Result, error)
}

// Analyzer derives key points and difficulty from a fetch result.
type Analyzer interface {
	Analyze(res wiki.Result) analyzer.Result
}

// Task carries the presentation decision for the response.
type Task struct {
	Mode intent.Mode `json:"mode"`
}

// Response is the single aggregate produced per pipeline run. It is never
// mutated after construction. Research and Analysis are nil on early
// failure exits.
type Response struct {
	Query       string           `json:"query"`
	Timestamp   time.Time        `json:"timestamp"`
	Research    *wiki.Result     `json:"research"`
	Analysis    *analyzer.Result `json:"analysis"`
	Task        Task             `json:"task"`
	FinalAnswer string           `json:"finalAnswer"`
	Error       bool             `json:"error,omitempty"`
	Message     string           `json:"message,omitempty"`
}

// Orchestrator sequences extract, fetch, analyze, and classify+render. Each
// run is self-contained: no shared mutable state, one response per call, and
// no failure escapes as a panic or error.
type Orchestrator struct {
	extractor *topic.Extractor
	fetcher   Fetcher
	analyzer  Analyzer
	log       *slog.Logger
}

// New wires an orchestrator from its stage collaborators.
func New(extractor *topic.Extractor, fetcher Fetcher, an Analyzer, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		extractor: extractor,
		fetcher:   fetcher,
		analyzer:  an,
		log:       log,
	}
}

// Run answers a single query. The query must be non-blank; the HTTP boundary
// validates that before calling in.
func (o *Orchestrator) Run(ctx context.Context, query string) Response {
	key := o.extractor.Extract(query)
	o.log.Debug("topic extracted", "query", query, "key", key)

	research, err := o.research(ctx, key)
	if err != nil {
		o.log.Error("research stage failed", "query", query, "key", key, "err", err)
		return Response{
			Query:       query,
			Timestamp:   time.Now().UTC(),
			Task:        Task{Mode: intent.ModeNoContent},
			FinalAnswer: "The research step failed unexpectedly, so no answer could be generated. Please try again.",
			Error:       true,
			Message:     "research stage failed",
		}
	}

	analysis := o.analyze(research)

	mode, answer, err := o.plan(query, research, analysis)
	if err != nil {
		o.log.Error("planning stage failed", "query", query, "err", err)
		return Response{
			Query:       query,
			Timestamp:   time.Now().UTC(),
			Research:    &research,
			Analysis:    &analysis,
			Task:        Task{Mode: intent.ModeNoContent},
			FinalAnswer: "An internal error prevented generating an answer for this query.",
			Error:       true,
			Message:     "planning stage failed",
		}
	}

	return Response{
		Query:       query,
		Timestamp:   time.Now().UTC(),
		Research:    &research,
		Analysis:    &analysis,
		Task:        Task{Mode: mode},
		FinalAnswer: answer,
	}
}

// research invokes the fetch boundary, converting a panic there into an
// error so the run can short-circuit cleanly.
func (o *Orchestrator) research(ctx context.Context, key string) (res wiki.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("research stage panic: %v", r)
		}
	}()
	return o.fetcher.Fetch(ctx, key)
}

// analyze degrades to a safe default instead of aborting the run.
func (o *Orchestrator) analyze(research wiki.Result) (out analyzer.Result) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Warn("analysis stage failed; continuing with defaults", "panic", r)
			out = analyzer.Result{
				HasContent: false,
				Difficulty: analyzer.DifficultyUnknown,
				KeyPoints:  []string{},
				Advisory:   "Analysis failed unexpectedly.",
			}
		}
	}()
	return o.analyzer.Analyze(research)
}

// plan classifies intent and renders the answer.
func (o *Orchestrator) plan(query string, research wiki.Result, analysis analyzer.Result) (mode intent.Mode, answer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("planning stage panic: %v", r)
		}
	}()
	mode = intent.Classify(query, analysis.HasContent)
	answer = render.Render(query, research, analysis, mode)
	return mode, answer, nil
}
