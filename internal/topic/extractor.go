package topic

import (
	"regexp"
	"strings"
	"unicode"
)

// questionForm pairs a question-shape matcher with a subject extractor.
// Forms are tried in order; the first match wins.
type questionForm struct {
	match   *regexp.Regexp
	subject func(groups []string) string
}

var questionForms = []questionForm{
	{
		match:   regexp.MustCompile(`(?i)^(?:who|what|where|when|why|how)\s+(?:is|was|are|were)\s+(.+)$`),
		subject: func(groups []string) string { return groups[1] },
	},
	{
		match:   regexp.MustCompile(`(?i)^tell\s+me\s+about\s+(.+)$`),
		subject: func(groups []string) string { return groups[1] },
	},
	{
		match:   regexp.MustCompile(`(?i)^give\s+me\s+an\s+overview\s+of\s+(.+)$`),
		subject: func(groups []string) string { return groups[1] },
	},
}

// fillerWords are articles, question words, and generic verbs that carry no
// topical information.
var fillerWords = wordSet(
	"a", "an", "the",
	"who", "what", "where", "when", "why", "how", "which",
	"is", "was", "are", "were", "be", "been",
	"do", "does", "did", "can", "could", "will", "would", "should",
	"tell", "give", "get", "me", "about", "overview",
	"of", "for", "to", "in", "on", "at", "and", "or",
	"i", "you", "it", "this", "that", "my", "your", "please",
)

// priceWords are shopping vocabulary that shows up in cost questions but
// never names the topic itself.
var priceWords = wordSet(
	"cost", "costs", "price", "prices", "pricing",
	"buy", "buying", "purchase", "cheap", "expensive", "worth",
	"new", "used",
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Extractor turns a raw query into a normalized lookup key. The vocabularies
// are fixed at construction and never mutated.
type Extractor struct {
	forms  []questionForm
	filler map[string]bool
	price  map[string]bool
}

// NewExtractor builds an extractor with the default question forms and
// vocabularies.
func NewExtractor() *Extractor {
	return &Extractor{
		forms:  questionForms,
		filler: fillerWords,
		price:  priceWords,
	}
}

// Extract derives a lookup key from a free-text query. It is total: every
// input yields a key, though an all-whitespace query yields an empty one
// that callers must treat as unsuitable for lookup.
func (e *Extractor) Extract(query string) string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return normalizeKey(query)
	}

	var phrase string
	for _, form := range e.forms {
		if groups := form.match.FindStringSubmatch(trimmed); groups != nil {
			phrase = e.cleanSubject(form.subject(groups))
			break
		}
	}
	if phrase == "" {
		phrase = e.keywordFallback(trimmed)
	}

	key := normalizeKey(phrase)
	if len(key) < 3 {
		// Too short to be a real topic; the unmodified query is the last resort.
		key = normalizeKey(query)
	}
	return key
}

// cleanSubject filters a captured subject phrase down to its head tokens.
// Returns "" when nothing topical remains so the caller can fall back.
func (e *Extractor) cleanSubject(subject string) string {
	subject = strings.TrimSuffix(strings.TrimSpace(subject), "?")
	var kept []string
	for _, tok := range strings.Fields(strings.ToLower(subject)) {
		if e.filler[tok] || e.price[tok] {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return ""
	}
	// Recency bias: the grammatical head noun tends to sit at the end.
	if len(kept) > 2 {
		kept = kept[len(kept)-2:]
	}
	return strings.Join(kept, " ")
}

// keywordFallback handles queries that match no known question form.
func (e *Extractor) keywordFallback(query string) string {
	var all []string
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		tok = strings.TrimFunc(tok, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if tok != "" {
			all = append(all, tok)
		}
	}

	var kept []string
	for _, tok := range all {
		if e.filler[tok] || e.price[tok] {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		kept = all
	} else if len(kept) > 2 {
		kept = kept[len(kept)-2:]
	}
	return strings.Join(kept, " ")
}

// normalizeKey converts a phrase into the lookup-key form: title-cased
// tokens joined by underscores, with question marks stripped.
func normalizeKey(phrase string) string {
	phrase = strings.ReplaceAll(strings.TrimSpace(phrase), "?", "")
	parts := strings.Fields(phrase)
	for i, part := range parts {
		parts[i] = titleCase(part)
	}
	return strings.Join(parts, "_")
}

func titleCase(token string) string {
	runes := []rune(strings.ToLower(token))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
