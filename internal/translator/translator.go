// Package translator assembles the model bank: one callable per
// supported language pair, produced by a backend and validated
// exhaustively before the service starts taking requests.
package translator

import (
	"context"
	"fmt"

	"github.com/valpere/opustran/internal/lang"
)

// TranslateFunc invokes the pretrained model bound to one language pair.
type TranslateFunc func(ctx context.Context, text string) (string, error)

// Binder is a translation backend that can yield a callable for every
// supported pair.
type Binder interface {
	Name() string
	Bindings() (map[lang.Pair]TranslateFunc, error)
	IsAvailable(ctx context.Context) error
}

// Bank is the immutable pair→model table the gateway dispatches
// through. Construction fails unless the table covers the supported set
// exactly, so a missing model is a startup error, not a request error.
type Bank struct {
	name     string
	bindings map[lang.Pair]TranslateFunc
}

func NewBank(name string, bindings map[lang.Pair]TranslateFunc) (*Bank, error) {
	for _, p := range lang.SupportedPairs() {
		fn, ok := bindings[p]
		if !ok {
			return nil, fmt.Errorf("no model bound for pair %s", p)
		}
		if fn == nil {
			return nil, fmt.Errorf("nil model binding for pair %s", p)
		}
	}
	for p := range bindings {
		if !lang.IsSupportedPair(p) {
			return nil, fmt.Errorf("model bound for unsupported pair %s", p)
		}
	}

	copied := make(map[lang.Pair]TranslateFunc, len(bindings))
	for p, fn := range bindings {
		copied[p] = fn
	}

	return &Bank{name: name, bindings: copied}, nil
}

// FromBinder builds a validated bank from a backend.
func FromBinder(b Binder) (*Bank, error) {
	bindings, err := b.Bindings()
	if err != nil {
		return nil, fmt.Errorf("%s bindings: %w", b.Name(), err)
	}
	return NewBank(b.Name(), bindings)
}

func (b *Bank) Name() string {
	return b.name
}

// Pairs returns the bound pairs in deterministic order.
func (b *Bank) Pairs() []lang.Pair {
	pairs := make([]lang.Pair, 0, len(b.bindings))
	for _, p := range lang.SupportedPairs() {
		if _, ok := b.bindings[p]; ok {
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// Translate dispatches text to the model bound to the exact pair.
func (b *Bank) Translate(ctx context.Context, pair lang.Pair, text string) (string, error) {
	fn, ok := b.bindings[pair]
	if !ok {
		return "", fmt.Errorf("no model bound for pair %s", pair)
	}
	return fn(ctx, text)
}
