package lang

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Pair is an ordered source→target language combination. Each supported
// pair is bound to exactly one pretrained model artifact; anything
// outside the table below cannot be served.
type Pair struct {
	Source string
	Target string
}

func (p Pair) String() string {
	return p.Source + "-" + p.Target
}

// models maps each supported pair to its opus-mt artifact name. Adding a
// pair is a data change here, not a logic change elsewhere.
var models = map[Pair]string{
	{Source: "en", Target: "fr"}: "Helsinki-NLP/opus-mt-en-fr",
	{Source: "en", Target: "hi"}: "Helsinki-NLP/opus-mt-en-hi",
	{Source: "en", Target: "es"}: "Helsinki-NLP/opus-mt-en-es",
	{Source: "en", Target: "ru"}: "Helsinki-NLP/opus-mt-en-ru",
	{Source: "en", Target: "de"}: "Helsinki-NLP/opus-mt-en-de",
}

// SupportedPairs returns the full supported set in deterministic order.
func SupportedPairs() []Pair {
	pairs := make([]Pair, 0, len(models))
	for p := range models {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Source != pairs[j].Source {
			return pairs[i].Source < pairs[j].Source
		}
		return pairs[i].Target < pairs[j].Target
	})
	return pairs
}

func IsSupportedPair(p Pair) bool {
	_, ok := models[p]
	return ok
}

// IsSupportedTarget reports whether code appears as the target of any
// supported pair.
func IsSupportedTarget(code string) bool {
	for p := range models {
		if p.Target == code {
			return true
		}
	}
	return false
}

// SupportedTargets returns the distinct target codes, sorted.
func SupportedTargets() []string {
	seen := make(map[string]bool, len(models))
	targets := make([]string, 0, len(models))
	for p := range models {
		if !seen[p.Target] {
			seen[p.Target] = true
			targets = append(targets, p.Target)
		}
	}
	sort.Strings(targets)
	return targets
}

// ModelFor returns the model artifact bound to the pair.
func ModelFor(p Pair) (string, bool) {
	model, ok := models[p]
	return model, ok
}

// DisplayName returns the English name for a language code, falling back
// to the code itself when it cannot be parsed.
func DisplayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	return display.English.Languages().Name(tag)
}
