package analyzer

import (
	"strings"

	"research-agents/internal/wiki"
)

// Difficulty is the estimated reading level of a summary.
type Difficulty string

const (
	DifficultyBeginner             Difficulty = "beginner"
	DifficultyIntermediate         Difficulty = "intermediate"
	DifficultyIntermediateAdvanced Difficulty = "intermediate-advanced"
	DifficultyUnknown              Difficulty = "unknown"
)

const (
	maxKeyPoints     = 5
	minKeyPointChars = 20

	noContentAdvisory = "No research content was found to analyze."
	contentAdvisory   = "Summary sourced from a public reference service; verify details independently."
)

// advancedTerms is infrastructure and distributed-systems vocabulary whose
// presence suggests a denser text.
var advancedTerms = []string{
	"distributed", "scalability", "kubernetes", "microservice",
	"orchestration", "concurrency", "asynchronous", "fault tolerance",
	"infrastructure", "architecture", "algorithm", "protocol",
	"throughput", "latency", "replication",
}

// beginnerTerms is introductory vocabulary.
var beginnerTerms = []string{
	"introduction", "basic", "simple", "beginner", "easy",
	"fundamental", "getting started", "tutorial", "learn",
}

// Result is the outcome of analyzing a fetch result. When HasContent is
// false, Difficulty is unknown and KeyPoints is empty.
type Result struct {
	HasContent bool       `json:"hasContent"`
	Difficulty Difficulty `json:"difficulty"`
	KeyPoints  []string   `json:"keyPoints"`
	Advisory   string     `json:"advisory"`
}

// Options tunes difficulty inference. The thresholds are deliberately
// configuration, not constants, so they can be recalibrated without code
// changes.
type Options struct {
	BeginnerMin int
	AdvancedMin int
}

// Analyzer derives key points and a difficulty estimate from fetched
// summaries.
type Analyzer struct {
	opts Options
}

// New builds an analyzer, applying threshold defaults where unset.
func New(opts Options) *Analyzer {
	if opts.BeginnerMin <= 0 {
		opts.BeginnerMin = 1
	}
	if opts.AdvancedMin <= 0 {
		opts.AdvancedMin = 2
	}
	return &Analyzer{opts: opts}
}

// Analyze never fails: inputs without usable content yield the empty
// analysis rather than an error.
func (a *Analyzer) Analyze(res wiki.Result) Result {
	if !res.Success() {
		return Result{
			HasContent: false,
			Difficulty: DifficultyUnknown,
			KeyPoints:  []string{},
			Advisory:   noContentAdvisory,
		}
	}
	return Result{
		HasContent: true,
		Difficulty: a.difficulty(res.Summary),
		KeyPoints:  keyPoints(res.Summary),
		Advisory:   contentAdvisory,
	}
}

// keyPoints splits the summary at sentence boundaries and keeps up to five
// substantive sentences in order.
func keyPoints(summary string) []string {
	var points []string
	for _, sentence := range splitSentences(summary) {
		trimmed := strings.TrimSpace(sentence)
		if len(trimmed) <= minKeyPointChars {
			continue
		}
		points = append(points, trimmed)
		if len(points) == maxKeyPoints {
			break
		}
	}
	if len(points) == 0 {
		// Nothing substantial at sentence granularity; the whole summary is
		// still better than no points at all.
		points = []string{summary}
	}
	return points
}

// splitSentences cuts text at a terminator (. ! ?) followed by whitespace.
// Text with no such boundary comes back as a single candidate.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		atEnd := i == len(runes)-1
		if !atEnd && !isSpace(runes[i+1]) {
			continue
		}
		sentences = append(sentences, string(runes[start:i+1]))
		start = i + 1
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	if len(sentences) == 0 {
		sentences = []string{text}
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// difficulty counts advanced and beginner vocabulary in the summary and
// applies the configured thresholds. Beginner wins ties against advanced.
func (a *Analyzer) difficulty(summary string) Difficulty {
	lower := strings.ToLower(summary)
	advanced := countTerms(lower, advancedTerms)
	beginner := countTerms(lower, beginnerTerms)

	switch {
	case beginner > advanced && beginner >= a.opts.BeginnerMin:
		return DifficultyBeginner
	case advanced >= a.opts.AdvancedMin:
		return DifficultyIntermediateAdvanced
	default:
		return DifficultyIntermediate
	}
}

func countTerms(text string, terms []string) int {
	count := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			count++
		}
	}
	return count
}
