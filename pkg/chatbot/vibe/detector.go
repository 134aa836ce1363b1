// Package vibe tags the tone of a message. The tag only frames a reply,
// it never changes its content.
package vibe

import (
	"strings"

	"election-assistant-be/pkg/chatbot/language"
)

type Vibe string

const (
	Positive Vibe = "positive"
	Negative Vibe = "negative"
	Neutral  Vibe = "neutral"
)

// Keywords are the substrings signalling each tone.
type Keywords struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// Lexicon maps a language to its keyword lists.
type Lexicon map[language.Language]Keywords

// Detector checks a message against per-language keyword lists.
type Detector struct {
	lexicon Lexicon
}

func NewDetector(lexicon Lexicon) *Detector {
	return &Detector{lexicon: lexicon}
}

// Detect scans negative keywords first so a frustrated "thanks" stays
// negative. Unknown languages use the English lists.
func (d *Detector) Detect(message string, lang language.Language) Vibe {
	kw, ok := d.lexicon[lang]
	if !ok {
		kw = d.lexicon[language.English]
	}

	msg := strings.ToLower(message)
	for _, word := range kw.Negative {
		if strings.Contains(msg, word) {
			return Negative
		}
	}
	for _, word := range kw.Positive {
		if strings.Contains(msg, word) {
			return Positive
		}
	}
	return Neutral
}
