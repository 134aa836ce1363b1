package response

import (
	"election-assistant-be/pkg/chatbot/intent"
	"election-assistant-be/pkg/chatbot/language"
	"election-assistant-be/pkg/chatbot/vibe"
)

const paragraph = "\n\n"

// Frame adds an opener for substantive intents and then either the
// intent's follow-up suggestion or, for greetings, a closing question.
func (c *Composer) Frame(reply string, in intent.Intent, lang language.Language) string {
	if !in.IsSmallTalk() {
		openers := c.bank.Openers[lang]
		if len(openers) == 0 {
			openers = c.bank.Openers[language.English]
		}
		reply = c.pick(openers) + " " + reply
	}

	if byLang, ok := c.bank.FollowUps[in]; ok {
		reply += paragraph + localized(byLang, lang)
	} else if in == intent.Greeting {
		reply += paragraph + c.pick(c.bank.GreetingClosings)
	}

	return reply
}

// ApplyVibe wraps a reply at its boundaries only.
func (c *Composer) ApplyVibe(reply string, v vibe.Vibe, lang language.Language) string {
	switch v {
	case vibe.Positive:
		return reply + paragraph + localized(c.bank.Vibe.PositiveClosing, lang)
	case vibe.Negative:
		return localized(c.bank.Vibe.NegativeEmpathy, lang) + " " + reply +
			paragraph + localized(c.bank.Vibe.NegativeHelp, lang)
	default:
		return reply
	}
}

func (c *Composer) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[c.picker.Intn(len(options))]
}

func localized(byLang map[language.Language]string, lang language.Language) string {
	if text, ok := byLang[lang]; ok {
		return text
	}
	return byLang[language.English]
}
