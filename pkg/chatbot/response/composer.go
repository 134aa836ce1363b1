// Package response assembles replies: template selection, header clean-up,
// conversational framing and the vibe wrapper.
package response

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"election-assistant-be/pkg/chatbot/intent"
	"election-assistant-be/pkg/chatbot/language"
	"election-assistant-be/pkg/chatbot/vibe"
)

// Picker chooses an index in [0, n). Tests inject a fixed one.
type Picker interface {
	Intn(n int) int
}

type randomPicker struct{}

func (randomPicker) Intn(n int) int {
	return rand.IntN(n)
}

// NewRandomPicker returns a uniform picker safe for concurrent use.
func NewRandomPicker() Picker {
	return randomPicker{}
}

// Composer is a pure function of its inputs, the bank and the picker.
type Composer struct {
	bank    Bank
	picker  Picker
	headers map[intent.Intent][]*regexp.Regexp
}

func NewComposer(bank Bank, picker Picker) (*Composer, error) {
	if err := bank.Validate(); err != nil {
		return nil, err
	}
	if picker == nil {
		picker = NewRandomPicker()
	}

	headers := make(map[intent.Intent][]*regexp.Regexp, len(bank.Headers))
	for in, phrases := range bank.Headers {
		for _, phrase := range phrases {
			quoted := regexp.QuoteMeta(phrase)
			bold, err := regexp.Compile(`(?i)\*\*.*` + quoted + `.*?\*\*\s*`)
			if err != nil {
				return nil, fmt.Errorf("header %q: %w", phrase, err)
			}
			colon, err := regexp.Compile(`(?i).*` + quoted + `.*:\s*`)
			if err != nil {
				return nil, fmt.Errorf("header %q: %w", phrase, err)
			}
			headers[in] = append(headers[in], bold, colon)
		}
	}

	return &Composer{bank: bank, picker: picker, headers: headers}, nil
}

// Compose builds the full reply for a template-backed intent.
func (c *Composer) Compose(in intent.Intent, lang language.Language, v vibe.Vibe) string {
	reply := c.Select(in, lang)
	reply = c.StripHeaders(in, reply)
	reply = c.Frame(reply, in, lang)
	return c.ApplyVibe(reply, v, lang)
}

// Select picks a template for the intent, preferring ones written in the
// requested language. Intents without a bank use the unknown bank.
func (c *Composer) Select(in intent.Intent, lang language.Language) string {
	templates := c.bank.Templates[in]
	if len(templates) == 0 {
		templates = c.bank.Templates[intent.Unknown]
	}

	filtered := make([]string, 0, len(templates))
	for _, t := range templates {
		lower := strings.ToLower(t)
		if lang == language.Tagalog {
			if containsAny(lower, c.bank.Markers.Tagalog) {
				filtered = append(filtered, t)
			}
		} else if !containsAny(lower, c.bank.Markers.English) {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		filtered = templates
	}

	return filtered[c.picker.Intn(len(filtered))]
}

// StripHeaders drops bold or colon-terminated header lines that echo the
// question for intents like "how do I vote".
func (c *Composer) StripHeaders(in intent.Intent, text string) string {
	patterns, ok := c.headers[in]
	if !ok {
		return text
	}
	for _, re := range patterns {
		text = re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
