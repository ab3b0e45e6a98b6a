package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/scguardian/guardian/internal/models"
)

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 20 * time.Second

// Request is what the gateway hands to a structured-generation backend.
type Request struct {
	System string
	Prompt string
	Schema Schema
}

// RawResponse is the unvalidated backend output.
type RawResponse struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Generator produces text constrained to a schema. Implementations must honor
// ctx cancellation.
type Generator interface {
	GenerateStructured(ctx context.Context, req Request) (RawResponse, error)
}

// Describer is implemented by generators that can name their provider and model.
type Describer interface {
	Provider() string
	Model() string
}

// Classifier is the capability the session layer depends on.
type Classifier interface {
	Classify(ctx context.Context, profile models.BusinessProfile, item models.RawNewsItem) models.AnalysisResult
}

// Path identifies which classifier produced a result.
type Path string

const (
	PathModel     Path = "model"
	PathHeuristic Path = "heuristic"
)

// Assessment is a result together with its provenance.
type Assessment struct {
	Result models.AnalysisResult
	Path   Path
	Reason Reason
	Err    error
}

// BackendCall describes one completed backend round trip.
type BackendCall struct {
	Provider string
	Model    string
	NewsID   string
	Latency  time.Duration
	Response RawResponse
	Err      error
}

// Observer receives classification telemetry.
type Observer interface {
	ObserveBackendCall(ctx context.Context, call BackendCall)
	ObserveResult(path Path, reason Reason)
}

// Gateway classifies news items with an external model and falls back to the
// keyword heuristic on any failure.
type Gateway struct {
	generator Generator
	provider  string
	model     string
	timeout   time.Duration
	observers []Observer
	logger    *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithObserver registers telemetry observers.
func WithObserver(observers ...Observer) Option {
	return func(g *Gateway) {
		for _, o := range observers {
			if o != nil {
				g.observers = append(g.observers, o)
			}
		}
	}
}

// NewGateway builds a gateway around generator. A nil generator means no
// credential is configured; every call then goes straight to the fallback.
func NewGateway(generator Generator, logger *slog.Logger, opts ...Option) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Gateway{
		generator: generator,
		provider:  "unknown",
		timeout:   DefaultTimeout,
		logger:    logger,
	}
	if d, ok := generator.(Describer); ok {
		g.provider = d.Provider()
		g.model = d.Model()
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// HasModel reports whether a backend is configured.
func (g *Gateway) HasModel() bool {
	return g.generator != nil
}

// Classify returns the model's assessment, or the heuristic one if the model
// path fails for any reason.
func (g *Gateway) Classify(ctx context.Context, profile models.BusinessProfile, item models.RawNewsItem) models.AnalysisResult {
	return g.Assess(ctx, profile, item).Result
}

// Assess is Classify with provenance attached.
func (g *Gateway) Assess(ctx context.Context, profile models.BusinessProfile, item models.RawNewsItem) Assessment {
	result, err := g.classifyWithModel(ctx, profile, item)
	if err == nil {
		g.observeResult(PathModel, ReasonNone)
		g.logger.Debug("classified with model",
			"news_id", item.ID,
			"relevant", result.Relevant,
			"confidence", result.Confidence)
		return Assessment{Result: result, Path: PathModel, Reason: ReasonNone}
	}

	reason := ReasonFor(err)
	if reason == ReasonCredentialUnavailable {
		g.logger.Debug("no model backend configured, using keyword fallback", "news_id", item.ID)
	} else {
		g.logger.Warn("model classification failed, using keyword fallback",
			"news_id", item.ID,
			"provider", g.provider,
			"reason", reason,
			"error", err)
	}
	g.observeResult(PathHeuristic, reason)

	return Assessment{
		Result: ClassifyHeuristically(profile, item),
		Path:   PathHeuristic,
		Reason: reason,
		Err:    err,
	}
}

func (g *Gateway) classifyWithModel(ctx context.Context, profile models.BusinessProfile, item models.RawNewsItem) (models.AnalysisResult, error) {
	if g.generator == nil {
		return models.AnalysisResult{}, &ClassificationError{Kind: ErrCredentialUnavailable}
	}

	req := Request{
		System: SystemInstruction,
		Prompt: BuildPrompt(profile, item),
		Schema: AnalysisSchema(),
	}

	resp, err := g.generate(ctx, item.ID, req)
	if err != nil {
		return models.AnalysisResult{}, &ClassificationError{Kind: ErrTransport, Err: err}
	}

	result, err := DecodeAnalysis(resp.Text)
	if err != nil {
		return models.AnalysisResult{}, &ClassificationError{Kind: ErrSchemaViolation, Err: err}
	}
	return result, nil
}

// generate runs one bounded backend call. The call runs on its own goroutine
// so a backend that ignores ctx cannot hold Classify past the deadline. A
// panicking backend is reported as an error so Classify keeps its no-failure
// contract.
func (g *Gateway) generate(ctx context.Context, newsID string, req Request) (RawResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	type outcome struct {
		resp RawResponse
		err  error
	}
	done := make(chan outcome, 1)

	start := time.Now()
	go func() {
		var o outcome
		defer func() {
			if r := recover(); r != nil {
				o = outcome{err: fmt.Errorf("backend panic: %v", r)}
			}
			done <- o
		}()
		o.resp, o.err = g.generator.GenerateStructured(callCtx, req)
	}()

	var (
		resp RawResponse
		err  error
	)
	select {
	case o := <-done:
		resp, err = o.resp, o.err
		if err == nil && callCtx.Err() != nil {
			err = callCtx.Err()
		}
	case <-callCtx.Done():
		err = callCtx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("backend timed out after %s: %w", g.timeout, err)
	}

	g.observeCall(ctx, BackendCall{
		Provider: g.provider,
		Model:    g.modelFor(resp),
		NewsID:   newsID,
		Latency:  time.Since(start),
		Response: resp,
		Err:      err,
	})
	return resp, err
}

func (g *Gateway) modelFor(resp RawResponse) string {
	if resp.Model != "" {
		return resp.Model
	}
	return g.model
}

func (g *Gateway) observeCall(ctx context.Context, call BackendCall) {
	for _, o := range g.observers {
		o.ObserveBackendCall(ctx, call)
	}
}

func (g *Gateway) observeResult(path Path, reason Reason) {
	for _, o := range g.observers {
		o.ObserveResult(path, reason)
	}
}
