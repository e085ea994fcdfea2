package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/playwright-community/playwright-go"
)

const defaultTimeoutMs = 30000

// Inspector opens the target page in Chromium and reports an outline of it.
// The browser is started on first use and kept until Close.
type Inspector struct {
	headless bool
	logger   *slog.Logger

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewInspector returns an inspector; Chromium is not started until Outline.
func NewInspector(headless bool, logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inspector{headless: headless, logger: logger}
}

func (i *Inspector) start() error {
	if i.browser != nil {
		return nil
	}

	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return fmt.Errorf("install pw failed: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("start pw failed: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(i.headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("launch chromium failed: %w", err)
	}

	i.pw = pw
	i.browser = browser
	i.logger.Debug("browser started", "headless", i.headless)
	return nil
}

// Outline loads url in a fresh page and describes its title, headings and
// interactive elements.
func (i *Inspector) Outline(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.start(); err != nil {
		return "", err
	}

	page, err := i.browser.NewPage()
	if err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}
	defer func() { _ = page.Close() }()

	page.SetDefaultTimeout(defaultTimeoutMs)

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(defaultTimeoutMs),
	}); err != nil {
		return "", fmt.Errorf("could not navigate to %s: %w", url, err)
	}

	title, _ := page.Title()

	result, err := page.Evaluate(outlineScript)
	if err != nil {
		return "", fmt.Errorf("js evaluation failed: %w", err)
	}

	elements, err := parseElements(result)
	if err != nil {
		return "", err
	}

	i.logger.Debug("page inspected", "url", page.URL(), "elements", len(elements))
	return FormatOutline(page.URL(), title, elements), nil
}

// Close stops the browser if it was started.
func (i *Inspector) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.browser != nil {
		_ = i.browser.Close()
		i.browser = nil
	}
	if i.pw != nil {
		_ = i.pw.Stop()
		i.pw = nil
	}
}
