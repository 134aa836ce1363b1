// Package bank loads the static pattern, vocabulary and template banks that
// ship embedded in the binary. A bank that fails to load means the service
// cannot answer anything sensible, so callers abort startup on error.
package bank

import (
	"embed"
	"fmt"

	"election-assistant-be/pkg/chatbot/intent"
	"election-assistant-be/pkg/chatbot/language"
	"election-assistant-be/pkg/chatbot/response"
	"election-assistant-be/pkg/chatbot/vibe"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var files embed.FS

// Bank groups everything read from the embedded data files.
type Bank struct {
	Patterns     *intent.PatternTable
	Vocabulary   language.Vocabulary
	Vibes        vibe.Lexicon
	Responses    response.Bank
	EmptyMessage string
}

type vocabularyFile struct {
	Language language.Vocabulary `yaml:"language"`
	Vibe     vibe.Lexicon        `yaml:"vibe"`
}

type templatesFile struct {
	EmptyMessage string        `yaml:"empty_message"`
	Bank         response.Bank `yaml:",inline"`
}

// Load parses every embedded bank file.
func Load() (*Bank, error) {
	patternData, err := files.ReadFile("data/patterns.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern bank: %w", err)
	}
	patterns, err := intent.ParsePatternTable(patternData)
	if err != nil {
		return nil, err
	}

	var vocab vocabularyFile
	if err := decode("data/vocabulary.yaml", &vocab); err != nil {
		return nil, err
	}
	if len(vocab.Vibe[language.English].Negative) == 0 {
		return nil, fmt.Errorf("vocabulary bank has no english vibe keywords")
	}

	var tmpl templatesFile
	if err := decode("data/templates.yaml", &tmpl); err != nil {
		return nil, err
	}
	if err := tmpl.Bank.Validate(); err != nil {
		return nil, err
	}
	if tmpl.EmptyMessage == "" {
		return nil, fmt.Errorf("template bank has no empty_message")
	}

	return &Bank{
		Patterns:     patterns,
		Vocabulary:   vocab.Language,
		Vibes:        vocab.Vibe,
		Responses:    tmpl.Bank,
		EmptyMessage: tmpl.EmptyMessage,
	}, nil
}

func decode(name string, out interface{}) error {
	data, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}
