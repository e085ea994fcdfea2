package recommender

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/nbenliogludev/playwright-test-recommender/internal/llm"
)

const (
	kindContext     = "context"
	kindDescription = "description"
)

// PageInspector describes the target page so prompts can mention real elements.
type PageInspector interface {
	Outline(ctx context.Context, url string) (string, error)
}

// Options configures an Engine.
type Options struct {
	TargetURL string
	// Inspector is optional. Without it prompts carry no page outline.
	Inspector PageInspector
	Logger    *slog.Logger
}

// Engine builds prompts from its session, asks the completer for test code
// and records the name of the generated test for the next call.
type Engine struct {
	llm       llm.Completer
	targetURL string
	inspector PageInspector
	logger    *slog.Logger

	mu      sync.Mutex
	session Session
}

// New returns an engine with no prior action recorded.
func New(c llm.Completer, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		llm:       c,
		targetURL: opts.TargetURL,
		inspector: opts.Inspector,
		logger:    logger,
	}
}

// RecommendTest asks for a test conditioned on the last recorded action.
// It returns ("", []) when nothing could be generated.
func (e *Engine) RecommendTest(ctx context.Context) (string, []string) {
	outline := e.outline(ctx)

	e.mu.Lock()
	prompt := contextPrompt(e.targetURL, e.session, outline)
	e.mu.Unlock()

	return e.recommend(ctx, kindContext, prompt)
}

// RecommendFromNaturalLanguage asks for a test matching description.
func (e *Engine) RecommendFromNaturalLanguage(ctx context.Context, description string) (string, []string) {
	prompt := descriptionPrompt(e.targetURL, description, e.outline(ctx))
	return e.recommend(ctx, kindDescription, prompt)
}

// SetLastTest seeds the session without calling the model.
func (e *Engine) SetLastTest(action string) {
	e.mu.Lock()
	e.session = e.session.WithLastAction(action)
	e.mu.Unlock()
}

// LastAction reports the action the next RecommendTest prompt is built from.
func (e *Engine) LastAction() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.LastAction()
}

func (e *Engine) recommend(ctx context.Context, kind, prompt string) (string, []string) {
	log := e.logger.With("request_id", uuid.NewString(), "kind", kind)
	log.Debug("requesting recommendation", "prompt", prompt)

	raw := e.llm.Complete(ctx, prompt)
	ex := Extract(raw)
	if ex.TestCode == "" {
		log.Warn("no test case generated")
		return "", []string{}
	}

	e.mu.Lock()
	e.session = e.session.Apply(ex)
	action, _ := e.session.LastAction()
	e.mu.Unlock()

	log.Info("recommendation generated",
		"assertions", len(ex.Assertions),
		"identifier_found", ex.Found,
		"last_action", action,
	)
	return ex.TestCode, ex.Assertions
}

func (e *Engine) outline(ctx context.Context) string {
	if e.inspector == nil {
		return ""
	}
	outline, err := e.inspector.Outline(ctx, e.targetURL)
	if err != nil {
		e.logger.Warn("page inspection failed, continuing without outline", "url", e.targetURL, "error", err)
		return ""
	}
	return outline
}
