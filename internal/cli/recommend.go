package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nbenliogludev/playwright-test-recommender/internal/recommender"
)

const demoDescription = "Test that users can type a chat message on the Aily platform"

var suggestLast string

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Recommend a test based on the previous action",
	Long: `Recommend a test case for the target application.

Without --last the model is steered towards a login test. With --last the
recommended scenario is related to the given previous action.

Examples:
  recommender-cli suggest
  recommender-cli suggest --last favorite_conversation
  recommender-cli suggest --format json`,
	Args: cobra.NoArgs,
	RunE: runSuggest,
}

var describeCmd = &cobra.Command{
	Use:   "describe <description>",
	Short: "Recommend a test from a natural-language description",
	Long: `Recommend a test case matching a free-text description of the desired behavior.

Examples:
  recommender-cli describe "users can send a chat message"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDescribe,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a fresh, a seeded and a described recommendation in one session",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestLast, "last", "", "seed the previous action before recommending")

	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(demoCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if err := validFormat(outputFormat); err != nil {
		return err
	}
	engine, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if suggestLast != "" {
		engine.SetLastTest(suggestLast)
	}

	code, assertions := engine.RecommendTest(cmd.Context())
	return render(cmd.OutOrStdout(), outputFormat, []result{newResult("", engine, code, assertions)})
}

func runDescribe(cmd *cobra.Command, args []string) error {
	if err := validFormat(outputFormat); err != nil {
		return err
	}
	engine, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	description := strings.Join(args, " ")
	code, assertions := engine.RecommendFromNaturalLanguage(cmd.Context(), description)
	return render(cmd.OutOrStdout(), outputFormat, []result{newResult("", engine, code, assertions)})
}

func runDemo(cmd *cobra.Command, args []string) error {
	if err := validFormat(outputFormat); err != nil {
		return err
	}
	engine, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	var results []result

	code, assertions := engine.RecommendTest(ctx)
	results = append(results, newResult("No previous action", engine, code, assertions))

	engine.SetLastTest("chat_input")
	code, assertions = engine.RecommendTest(ctx)
	results = append(results, newResult("Based on the previous action", engine, code, assertions))

	code, assertions = engine.RecommendFromNaturalLanguage(ctx, demoDescription)
	results = append(results, newResult("From natural language", engine, code, assertions))

	return render(cmd.OutOrStdout(), outputFormat, results)
}

func newResult(title string, engine *recommender.Engine, code string, assertions []string) result {
	last, _ := engine.LastAction()
	return result{
		Title:      title,
		TestCode:   code,
		Assertions: assertions,
		LastAction: last,
	}
}
