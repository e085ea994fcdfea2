package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nbenliogludev/playwright-test-recommender/internal/recommender"
)

type scriptedCompleter struct {
	responses []string
	prompts   []string
}

func (s *scriptedCompleter) Complete(_ context.Context, instruction string) string {
	s.prompts = append(s.prompts, instruction)
	if len(s.responses) == 0 {
		return ""
	}
	out := s.responses[0]
	s.responses = s.responses[1:]
	return out
}

func useCompleter(t *testing.T, c *scriptedCompleter) {
	t.Helper()
	orig := buildEngine
	buildEngine = func() (*recommender.Engine, func(), error) {
		e := recommender.New(c, recommender.Options{
			TargetURL: "https://aily.feishu.cn/ai/ailyplay/welcome",
			Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
		return e, func() {}, nil
	}
	t.Cleanup(func() {
		buildEngine = orig
		outputFormat = formatText
		suggestLast = ""
		inspectPage = false
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := Execute(context.Background())
	return out.String(), err
}

func TestSuggest_TextOutput(t *testing.T) {
	c := &scriptedCompleter{responses: []string{"def test_login(page):\n    expect(page).to_have_url('/home')"}}
	useCompleter(t, c)

	out, err := execute(t, "suggest")
	require.NoError(t, err)

	assert.Contains(t, out, "Recommended test case:\ndef test_login(page):")
	assert.Contains(t, out, "Recommended assertions:\n[\n  \"expect(page).to_have_url('/home')\"\n]")
	require.Len(t, c.prompts, 1)
	assert.Contains(t, c.prompts[0], "prioritize logging in")
}

func TestSuggest_SeedsLastAction(t *testing.T) {
	c := &scriptedCompleter{responses: []string{"def test_favorites(page):\n    pass"}}
	useCompleter(t, c)

	out, err := execute(t, "suggest", "--last", "favorite_conversation", "--format", "json")
	require.NoError(t, err)

	require.Len(t, c.prompts, 1)
	assert.Contains(t, c.prompts[0], "'favorite_conversation'")

	var results []result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "favorites", results[0].LastAction)
	assert.Equal(t, []string{}, results[0].Assertions)
}

func TestSuggest_APIFailure(t *testing.T) {
	useCompleter(t, &scriptedCompleter{})

	out, err := execute(t, "suggest")
	require.NoError(t, err)

	assert.Contains(t, out, "No test case generated (API failure)")
	assert.Contains(t, out, "Recommended assertions:\n[]")
}

func TestDescribe_YAMLOutput(t *testing.T) {
	c := &scriptedCompleter{responses: []string{"def test_chat(page):\n    expect(page.locator('.msg')).to_have_text('hi')"}}
	useCompleter(t, c)

	out, err := execute(t, "describe", "users", "can", "chat", "--format", "yaml")
	require.NoError(t, err)

	require.Len(t, c.prompts, 1)
	assert.Contains(t, c.prompts[0], "'users can chat'")

	var results []result
	require.NoError(t, yaml.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "chat", results[0].LastAction)
	assert.Equal(t, []string{"expect(page.locator('.msg')).to_have_text('hi')"}, results[0].Assertions)
}

func TestDescribe_RequiresArgument(t *testing.T) {
	useCompleter(t, &scriptedCompleter{})

	_, err := execute(t, "describe")
	assert.Error(t, err)
}

func TestDemo_RunsThreeSteps(t *testing.T) {
	c := &scriptedCompleter{responses: []string{
		"def test_login(page):\n    pass",
		"def test_chat_history(page):\n    pass",
		"def test_send(page):\n    pass",
	}}
	useCompleter(t, c)

	out, err := execute(t, "demo")
	require.NoError(t, err)

	require.Len(t, c.prompts, 3)
	assert.Contains(t, c.prompts[0], "prioritize logging in")
	assert.Contains(t, c.prompts[1], "'chat_input'")
	assert.Contains(t, c.prompts[2], "'"+demoDescription+"'")

	assert.Equal(t, 3, strings.Count(out, "Recommended test case:"))
	assert.Contains(t, out, "No previous action")
	assert.Contains(t, out, "Based on the previous action")
	assert.Contains(t, out, "From natural language")
}

func TestUnknownFormat(t *testing.T) {
	c := &scriptedCompleter{}
	useCompleter(t, c)

	_, err := execute(t, "suggest", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
	assert.Empty(t, c.prompts)
}

func TestBuildEngineError(t *testing.T) {
	useCompleter(t, &scriptedCompleter{})
	buildEngine = func() (*recommender.Engine, func(), error) {
		return nil, nil, errors.New("DOUBAO_API_KEY is not set")
	}

	_, err := execute(t, "suggest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOUBAO_API_KEY")
}
