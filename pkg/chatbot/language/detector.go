// Package language tells English questions from Tagalog ones with a
// lexical heuristic. Taglish is folded into Tagalog.
package language

import "strings"

// Language is the reply language chosen for a message.
type Language string

const (
	English Language = "english"
	Tagalog Language = "tagalog"
)

// Supported lists every language the template bank carries.
var Supported = []Language{English, Tagalog}

// Vocabulary holds the indicator substrings for each score.
type Vocabulary struct {
	English []string `yaml:"english"`
	Tagalog []string `yaml:"tagalog"`
	Taglish []string `yaml:"taglish"`
}

// Scores are the raw indicator counts for a message.
type Scores struct {
	English int `json:"english"`
	Tagalog int `json:"tagalog"`
	Taglish int `json:"taglish"`
}

// Detector scores messages against a fixed vocabulary.
type Detector struct {
	vocab Vocabulary
}

func NewDetector(vocab Vocabulary) *Detector {
	return &Detector{vocab: vocab}
}

// Scores counts how many indicators of each list occur in the message.
func (d *Detector) Scores(message string) Scores {
	msg := strings.ToLower(strings.TrimSpace(message))
	return Scores{
		English: countContained(msg, d.vocab.English),
		Tagalog: countContained(msg, d.vocab.Tagalog),
		Taglish: countContained(msg, d.vocab.Taglish),
	}
}

// Detect applies the decision order: any Taglish idiom routes to Tagalog,
// then a strictly higher English score wins, then any Tagalog signal, and
// English is the default.
func (d *Detector) Detect(message string) Language {
	s := d.Scores(message)
	switch {
	case s.Taglish > 0:
		return Tagalog
	case s.English > s.Tagalog:
		return English
	case s.Tagalog > 0:
		return Tagalog
	default:
		return English
	}
}

func countContained(msg string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(msg, w) {
			n++
		}
	}
	return n
}
