package recommender

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Apply(t *testing.T) {
	var s Session
	_, ok := s.LastAction()
	assert.False(t, ok)

	s = s.Apply(Extraction{TestCode: "x = 1"})
	_, ok = s.LastAction()
	assert.False(t, ok, "extraction without identifier must not set state")

	s = s.Apply(Extraction{Identifier: "login", Found: true})
	action, ok := s.LastAction()
	assert.True(t, ok)
	assert.Equal(t, "login", action)

	s = s.Apply(Extraction{})
	action, _ = s.LastAction()
	assert.Equal(t, "login", action)
}

func TestSession_IsAValue(t *testing.T) {
	base := Session{}.WithLastAction("a")
	next := base.Apply(Extraction{Identifier: "b", Found: true})

	a, _ := base.LastAction()
	b, _ := next.LastAction()
	assert.Equal(t, "a", a)
	assert.Equal(t, "b", b)
}

func TestContextPrompt(t *testing.T) {
	fresh := contextPrompt(testTarget, Session{}, "")
	assert.Contains(t, fresh, "'"+testTarget+"'")
	assert.Contains(t, fresh, "logging in")
	assert.NotContains(t, fresh, "PAGE OUTLINE")

	related := contextPrompt(testTarget, Session{}.WithLastAction("favorite_chat"), "  \n")
	assert.Contains(t, related, "previous action 'favorite_chat'")
	assert.NotContains(t, related, "prioritize logging in")
	assert.NotContains(t, related, "PAGE OUTLINE")

	empty := contextPrompt(testTarget, Session{}.WithLastAction(""), "")
	assert.Equal(t, fresh, empty)
}

func TestDescriptionPrompt(t *testing.T) {
	p := descriptionPrompt(testTarget, "open settings", "TITLE: Aily")

	assert.Contains(t, p, "'open settings'")
	assert.Contains(t, p, "(such as the URL, element visibility, or text)")
	assert.True(t, strings.HasSuffix(p, "\n\nPAGE OUTLINE:\nTITLE: Aily"))
}
