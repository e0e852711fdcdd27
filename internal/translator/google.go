package translator

import (
	"context"
	"fmt"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"

	"github.com/valpere/opustran/internal/lang"
)

// GoogleBinder serves the supported pairs through the Cloud Translation
// API. The client is constructed once at startup and shared by all
// bindings; the detected source is always passed explicitly so the API
// never re-detects it.
type GoogleBinder struct {
	client *translate.Client
}

func NewGoogleBinder(ctx context.Context, credentials string) (*GoogleBinder, error) {
	opts := []option.ClientOption{}
	if credentials != "" {
		opts = append(opts, option.WithCredentialsFile(credentials))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %v", err)
	}

	return &GoogleBinder{client: client}, nil
}

func (b *GoogleBinder) Name() string {
	return "google"
}

func (b *GoogleBinder) Bindings() (map[lang.Pair]TranslateFunc, error) {
	bindings := make(map[lang.Pair]TranslateFunc, len(lang.SupportedPairs()))
	for _, p := range lang.SupportedPairs() {
		sourceTag, err := language.Parse(p.Source)
		if err != nil {
			return nil, fmt.Errorf("invalid source language %q: %v", p.Source, err)
		}
		targetTag, err := language.Parse(p.Target)
		if err != nil {
			return nil, fmt.Errorf("invalid target language %q: %v", p.Target, err)
		}

		bindings[p] = func(ctx context.Context, text string) (string, error) {
			translations, err := b.client.Translate(ctx, []string{text}, targetTag, &translate.Options{
				Source: sourceTag,
			})
			if err != nil {
				return "", fmt.Errorf("translation failed: %v", err)
			}
			if len(translations) == 0 {
				return "", fmt.Errorf("no translation returned")
			}
			return translations[0].Text, nil
		}
	}
	return bindings, nil
}

func (b *GoogleBinder) IsAvailable(ctx context.Context) error {
	return nil
}

func (b *GoogleBinder) Close() error {
	return b.client.Close()
}
