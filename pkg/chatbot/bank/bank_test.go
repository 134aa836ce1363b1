package bank

import (
	"strings"
	"testing"

	"election-assistant-be/pkg/chatbot/intent"
	"election-assistant-be/pkg/chatbot/language"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 20, b.Patterns.Len())
	assert.NotEmpty(t, b.EmptyMessage)
	assert.NotEmpty(t, b.Responses.Templates[intent.Unknown])
	assert.NotEmpty(t, b.Vocabulary.Taglish)
	assert.NotEmpty(t, b.Vibes[language.Tagalog].Negative)

	for _, in := range b.Patterns.Intents() {
		if in.IsCandidateQuery() {
			continue
		}
		assert.NotEmpty(t, b.Responses.Templates[in], "intent %s has no templates", in)
	}

	for in, byLang := range b.Responses.FollowUps {
		for _, lang := range language.Supported {
			assert.NotEmpty(t, byLang[lang], "follow-up %s missing %s", in, lang)
		}
	}
}

func TestLoad_OpenersAreTrimmed(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	for lang, openers := range b.Responses.Openers {
		for _, o := range openers {
			assert.False(t, strings.HasSuffix(o, " "), "%s opener %q has trailing space", lang, o)
		}
	}
}
