package analyzer

import (
	"strings"
	"testing"

	"research-agents/internal/wiki"
)

func TestAnalyzeNoContent(t *testing.T) {
	a := New(Options{})

	results := []wiki.Result{
		{Topic: "Missing", OK: false, Error: "not found"},
		{Topic: "Empty", OK: true, Summary: ""},
	}

	for _, res := range results {
		got := a.Analyze(res)
		if got.HasContent {
			t.Errorf("expected HasContent=false for %q", res.Topic)
		}
		if got.Difficulty != DifficultyUnknown {
			t.Errorf("expected unknown difficulty, got %s", got.Difficulty)
		}
		if len(got.KeyPoints) != 0 {
			t.Errorf("expected no key points, got %d", len(got.KeyPoints))
		}
		if got.Advisory == "" {
			t.Error("expected advisory on no-content result")
		}
	}
}

func TestAnalyzeKeyPoints(t *testing.T) {
	a := New(Options{})

	summary := "Ada Lovelace was an English mathematician and writer. " +
		"She worked on Charles Babbage's Analytical Engine. " +
		"Her notes contain what many consider the first computer program."
	res := a.Analyze(wiki.Result{Topic: "Ada Lovelace", OK: true, Summary: summary})

	if !res.HasContent {
		t.Fatal("expected content")
	}
	if len(res.KeyPoints) != 3 {
		t.Fatalf("expected 3 key points, got %d: %v", len(res.KeyPoints), res.KeyPoints)
	}
	if !strings.HasPrefix(res.KeyPoints[0], "Ada Lovelace") {
		t.Errorf("sentence order not preserved: %q", res.KeyPoints[0])
	}
	for _, p := range res.KeyPoints {
		if len(strings.TrimSpace(p)) <= minKeyPointChars {
			t.Errorf("key point too short: %q", p)
		}
	}
}

func TestAnalyzeKeyPointsCap(t *testing.T) {
	a := New(Options{})

	sentence := "This sentence is long enough to pass the filter. "
	res := a.Analyze(wiki.Result{OK: true, Summary: strings.Repeat(sentence, 9)})

	if len(res.KeyPoints) != maxKeyPoints {
		t.Errorf("expected cap of %d key points, got %d", maxKeyPoints, len(res.KeyPoints))
	}
}

func TestAnalyzeShortSentencesFallBackToSummary(t *testing.T) {
	a := New(Options{})

	summary := "Short. Tiny. Wee."
	res := a.Analyze(wiki.Result{OK: true, Summary: summary})

	if len(res.KeyPoints) != 1 || res.KeyPoints[0] != summary {
		t.Errorf("expected single full-summary key point, got %v", res.KeyPoints)
	}
}

func TestAnalyzeNoBoundaries(t *testing.T) {
	a := New(Options{})

	summary := "a single run of text without any terminator at all"
	res := a.Analyze(wiki.Result{OK: true, Summary: summary})

	if len(res.KeyPoints) != 1 || res.KeyPoints[0] != summary {
		t.Errorf("expected whole summary as one key point, got %v", res.KeyPoints)
	}
}

func TestDifficulty(t *testing.T) {
	a := New(Options{})

	tests := []struct {
		name     string
		summary  string
		expected Difficulty
	}{
		{
			name:     "beginner vocabulary dominates",
			summary:  "A simple tutorial and introduction for anyone who wants to learn.",
			expected: DifficultyBeginner,
		},
		{
			name:     "two advanced terms",
			summary:  "A distributed architecture with strong replication guarantees.",
			expected: DifficultyIntermediateAdvanced,
		},
		{
			name:     "neutral text",
			summary:  "Ada Lovelace was an English mathematician and writer.",
			expected: DifficultyIntermediate,
		},
		{
			name:     "single advanced term stays intermediate",
			summary:  "The protocol was standardized in 1981.",
			expected: DifficultyIntermediate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := a.Analyze(wiki.Result{OK: true, Summary: tt.summary})
			if res.Difficulty != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, res.Difficulty)
			}
		})
	}
}

func TestDifficultyThresholdsConfigurable(t *testing.T) {
	strict := New(Options{AdvancedMin: 3})

	res := strict.Analyze(wiki.Result{OK: true, Summary: "A distributed architecture of many parts."})
	if res.Difficulty != DifficultyIntermediate {
		t.Errorf("raised threshold should keep this intermediate, got %s", res.Difficulty)
	}
}
