package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valpere/opustran/internal/lang"
)

const defaultMarianURL = "http://localhost:5000"

// MarianClient talks to the bridge process hosting the opus-mt model
// artifacts. One binding per pair, each pinned to its artifact name.
type MarianClient struct {
	baseURL string
	client  *http.Client
}

func NewMarianClient(baseURL string, timeout time.Duration) *MarianClient {
	if baseURL == "" {
		baseURL = defaultMarianURL
	}
	if timeout <= 0 {
		// Model inference on CPU can be slow; keep this generous.
		timeout = 120 * time.Second
	}
	return &MarianClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *MarianClient) Name() string {
	return "marian"
}

func (c *MarianClient) Bindings() (map[lang.Pair]TranslateFunc, error) {
	bindings := make(map[lang.Pair]TranslateFunc, len(lang.SupportedPairs()))
	for _, p := range lang.SupportedPairs() {
		model, ok := lang.ModelFor(p)
		if !ok {
			return nil, fmt.Errorf("no model artifact for pair %s", p)
		}
		bindings[p] = func(ctx context.Context, text string) (string, error) {
			return c.translate(ctx, model, text)
		}
	}
	return bindings, nil
}

func (c *MarianClient) translate(ctx context.Context, model, text string) (string, error) {
	marianReq := map[string]string{
		"model": model,
		"text":  text,
	}

	jsonData, err := json.Marshal(marianReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/translate", c.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var marianResp struct {
		TranslatedText string `json:"translated_text"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&marianResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}

	if marianResp.TranslatedText == "" {
		return "", fmt.Errorf("no translation returned")
	}

	return marianResp.TranslatedText, nil
}

func (c *MarianClient) IsAvailable(ctx context.Context) error {
	req, _ := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/health", c.baseURL), nil)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("marian bridge not available: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("marian bridge returned status %d", resp.StatusCode)
	}
	return nil
}
