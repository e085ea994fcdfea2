package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nbenliogludev/playwright-test-recommender/internal/browser"
	"github.com/nbenliogludev/playwright-test-recommender/internal/config"
	"github.com/nbenliogludev/playwright-test-recommender/internal/llm"
	"github.com/nbenliogludev/playwright-test-recommender/internal/recommender"
)

var (
	outputFormat string
	inspectPage  bool
)

var rootCmd = &cobra.Command{
	Use:   "recommender-cli",
	Short: "Recommend Playwright Python test cases with an LLM",
	Long: `recommender-cli asks a chat completion model for Playwright Python test
cases against the configured target application and prints the generated
code together with the assertions found in it.

Configuration is read from the environment and an optional .env file
(DOUBAO_API_KEY is required).`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", formatText, "output format: text, json, or yaml")
	rootCmd.PersistentFlags().BoolVar(&inspectPage, "inspect", false, "open the target page and add its outline to prompts")
}

// buildEngine is replaced in tests.
var buildEngine = func() (*recommender.Engine, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	client := llm.NewClient(llm.Options{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     cfg.Timeout,
		Logger:      logger,
	})

	opts := recommender.Options{TargetURL: cfg.TargetURL, Logger: logger}
	cleanup := func() {}
	if cfg.Inspect || inspectPage {
		insp := browser.NewInspector(cfg.Headless, logger)
		opts.Inspector = insp
		cleanup = insp.Close
	}

	return recommender.New(client, opts), cleanup, nil
}
