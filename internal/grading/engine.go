// Package grading implements the exam-scoring pipeline: strictness-calibrated
// prompt assembly, the model call, and robust parsing of the model's reply
// into a clamped score/feedback result.
//
// Each call is an independent, stateless unit of work; the engine holds no
// mutable state, so concurrent use needs no locking. The model call is the
// only blocking operation and honors the transport timeout.
package grading

import "context"

// Engine runs the full pipeline: point extraction and strictness lookup,
// prompt assembly, the model call, response parsing, and normalization.
type Engine struct {
	completer Completer
}

// Option configures an Engine.
type Option func(*Engine)

// WithCompleter overrides the model transport, mainly for tests.
func WithCompleter(c Completer) Option {
	return func(e *Engine) { e.completer = c }
}

// NewEngine builds an engine around the given transport. A nil completer is
// allowed; Grade then fails with ErrNotConfigured.
func NewEngine(c Completer, opts ...Option) *Engine {
	e := &Engine{completer: c}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Grade scores one answer against a rubric. Callers receive either a usable
// Result (possibly carrying the half-credit fallback) or one of
// ErrNotConfigured, *TransportError, *UpstreamFormatError.
func (e *Engine) Grade(ctx context.Context, req Request) (Result, error) {
	if e.completer == nil {
		return Result{}, ErrNotConfigured
	}

	profile := Describe(req.StrictnessLevel)
	// The answer text is checked ahead of the rubric for a point annotation.
	totalPoints := ExtractTotalPoints(req.AnswerText + "\n" + req.RubricText)

	prompt := BuildPrompt(req, profile, totalPoints)
	raw, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		return Result{}, err
	}

	res := Normalize(ParseResponse(raw, totalPoints), totalPoints)
	res.GradingStandard = profile.Name
	return res, nil
}
