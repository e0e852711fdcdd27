// Package gateway mediates between raw request text and the external
// detection/translation functions. Every failure crossing this boundary
// is classified into exactly one ErrorKind; callers never see
// library-specific failure types.
package gateway

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/valpere/opustran/internal/lang"
)

type ErrorKind string

const (
	InvalidInput            ErrorKind = "invalid_input"
	DetectionFailure        ErrorKind = "detection_failure"
	UnsupportedLanguagePair ErrorKind = "unsupported_language_pair"
	TranslationFailure      ErrorKind = "translation_failure"
)

// Error carries the classified kind, a message safe to show callers for
// the client-error kinds, and the wrapped internal cause when one exists.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// SourceDetector identifies the language of request text.
type SourceDetector interface {
	DetectISO(text string) (string, bool)
}

// ModelBank invokes the model bound to an exact language pair.
type ModelBank interface {
	Translate(ctx context.Context, pair lang.Pair, text string) (string, error)
}

type Gateway struct {
	detector SourceDetector
	bank     ModelBank
	logger   *zap.Logger
}

func New(det SourceDetector, bank ModelBank, logger *zap.Logger) *Gateway {
	return &Gateway{
		detector: det,
		bank:     bank,
		logger:   logger,
	}
}

// How much of the input to keep in failure logs.
const inputLogLimit = 80

// Translate validates the request, detects the source language, routes
// to the model bound to the (source, target) pair, and returns the model
// output unmodified. Each call is stateless and independent.
func (g *Gateway) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &Error{Kind: InvalidInput, Message: "Text is required"}
	}
	if targetLang == "" {
		return "", &Error{Kind: InvalidInput, Message: "Target language is required"}
	}
	if !lang.IsSupportedTarget(targetLang) {
		return "", &Error{Kind: InvalidInput, Message: fmt.Sprintf("Target language %q is not supported", targetLang)}
	}

	source, ok := g.detector.DetectISO(text)
	if !ok {
		g.logger.Warn("Source language detection failed",
			zap.String("input", truncate(text, inputLogLimit)),
		)
		return "", &Error{Kind: DetectionFailure, Message: "could not determine source language"}
	}

	pair := lang.Pair{Source: source, Target: targetLang}
	if !lang.IsSupportedPair(pair) {
		return "", &Error{
			Kind:    UnsupportedLanguagePair,
			Message: fmt.Sprintf("Translation from %s to %s is not supported.", pair.Source, pair.Target),
		}
	}

	translated, err := g.bank.Translate(ctx, pair, text)
	if err != nil {
		g.logger.Error("Model invocation failed",
			zap.String("pair", pair.String()),
			zap.String("input", truncate(text, inputLogLimit)),
			zap.Error(err),
		)
		return "", &Error{Kind: TranslationFailure, Message: "model invocation failed", Err: err}
	}
	if translated == "" {
		g.logger.Error("Model returned no output",
			zap.String("pair", pair.String()),
			zap.String("input", truncate(text, inputLogLimit)),
		)
		return "", &Error{Kind: TranslationFailure, Message: "model returned no output"}
	}

	// Returned as produced by the model; no trimming or cleanup here.
	return translated, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
