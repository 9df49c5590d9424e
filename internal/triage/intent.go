package triage

import (
	"fmt"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Gate decides whether free-text input is in scope for triage and
// derives the symptom tags used for the audit trail. Matching is plain
// case-insensitive substring containment over the keyword corpus: no
// tokenization, no negation handling, no edit distance. That trade-off
// is deliberate: "no pain in my arm" still matches, but emergency
// phrasing is never missed for lack of an exact token boundary.
//
// A Gate is immutable after construction and safe for concurrent use.
type Gate struct {
	phrases  []string // symptom phrases in corpus order
	symptoms *goahocorasick.Machine
	parts    *goahocorasick.Machine
}

// NewGate builds the matching automata from the symptom phrase and
// body-part lists. Phrases are expected lowercase; body parts are
// lowercased here so both operands compare caseless.
func NewGate(symptomPhrases, bodyParts []string) (*Gate, error) {
	symptoms, err := buildMachine(symptomPhrases)
	if err != nil {
		return nil, fmt.Errorf("build symptom matcher: %w", err)
	}
	parts, err := buildMachine(bodyParts)
	if err != nil {
		return nil, fmt.Errorf("build body-part matcher: %w", err)
	}
	return &Gate{
		phrases:  symptomPhrases,
		symptoms: symptoms,
		parts:    parts,
	}, nil
}

// Classify reports whether text is symptom-related: it contains a
// corpus symptom phrase as a substring, or a body-part noun together
// with the substring "pain" anywhere in the text. Empty or blank input
// is always out of scope. Pure function, no side effects.
func (g *Gate) Classify(text string) bool {
	input := strings.ToLower(strings.TrimSpace(text))
	if input == "" {
		return false
	}

	runes := []rune(input)
	if len(g.symptoms.MultiPatternSearch(runes, true)) > 0 {
		return true
	}

	// The body-part rule requires "pain" somewhere in the text, not
	// adjacent to the body part.
	if !strings.Contains(input, "pain") {
		return false
	}
	return len(g.parts.MultiPatternSearch(runes, true)) > 0
}

// Extract returns every corpus symptom phrase contained in text, in
// corpus order, each at most once. Used only for the audit trail; the
// result never feeds the model prompt or the urgency decision.
//
// This is a plain containment scan over the phrase list rather than an
// automaton pass: phrases that overlap as suffixes of longer phrases
// ("bleeding" inside "vaginal bleeding") must each be reported, and
// corpus order must be preserved regardless of match position.
func (g *Gate) Extract(text string) []string {
	input := strings.ToLower(text)

	tags := make([]string, 0, 4)
	for _, p := range g.phrases {
		if strings.Contains(input, p) {
			tags = append(tags, p)
		}
	}
	return tags
}

func buildMachine(words []string) (*goahocorasick.Machine, error) {
	patterns := make([][]rune, len(words))
	for i, w := range words {
		patterns[i] = []rune(strings.ToLower(w))
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return m, nil
}
