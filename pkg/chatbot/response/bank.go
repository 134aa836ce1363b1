package response

import (
	"errors"
	"fmt"

	"election-assistant-be/pkg/chatbot/intent"
	"election-assistant-be/pkg/chatbot/language"
)

// ErrMissingFallback is returned when the bank has no templates for the
// unknown intent, which every other intent degrades to.
var ErrMissingFallback = errors.New("template bank has no unknown fallback")

// Bank is the keyed template store plus the framing phrases.
type Bank struct {
	Templates        map[intent.Intent][]string                     `yaml:"templates"`
	Openers          map[language.Language][]string                 `yaml:"openers"`
	FollowUps        map[intent.Intent]map[language.Language]string `yaml:"follow_ups"`
	GreetingClosings []string                                       `yaml:"greeting_closings"`
	Vibe             VibeText                                       `yaml:"vibe"`
	Headers          map[intent.Intent][]string                     `yaml:"headers"`
	Markers          Markers                                        `yaml:"language_markers"`
}

// VibeText holds the boundary phrases added for non-neutral tones.
type VibeText struct {
	PositiveClosing map[language.Language]string `yaml:"positive_closing"`
	NegativeEmpathy map[language.Language]string `yaml:"negative_empathy"`
	NegativeHelp    map[language.Language]string `yaml:"negative_help"`
}

// Markers are the function-word substrings used to tell Tagalog templates
// from English ones.
type Markers struct {
	Tagalog []string `yaml:"tagalog"`
	English []string `yaml:"english"`
}

// Validate checks the invariants the composer relies on.
func (b Bank) Validate() error {
	if len(b.Templates[intent.Unknown]) == 0 {
		return ErrMissingFallback
	}
	if len(b.Openers[language.English]) == 0 {
		return fmt.Errorf("template bank has no english openers")
	}
	if len(b.GreetingClosings) == 0 {
		return fmt.Errorf("template bank has no greeting closings")
	}
	for in, byLang := range b.FollowUps {
		if byLang[language.English] == "" {
			return fmt.Errorf("follow-up for %s has no english text", in)
		}
	}
	return nil
}
