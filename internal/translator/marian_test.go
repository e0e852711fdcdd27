package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/valpere/opustran/internal/lang"
)

func TestMarianClient_Translate_Success(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("expected path '/translate', got %q", r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		gotModel = req["model"]

		resp := map[string]string{"translated_text": "Bonjour"}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := &MarianClient{
		baseURL: server.URL,
		client:  server.Client(),
	}

	bindings, err := svc.Bindings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fn := bindings[lang.Pair{Source: "en", Target: "fr"}]
	if fn == nil {
		t.Fatal("expected binding for en-fr")
	}

	out, err := fn(context.Background(), "Hello")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if out != "Bonjour" {
		t.Errorf("expected 'Bonjour', got %q", out)
	}
	if gotModel != "Helsinki-NLP/opus-mt-en-fr" {
		t.Errorf("expected en-fr artifact in request, got %q", gotModel)
	}
}

func TestMarianClient_Translate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := &MarianClient{
		baseURL: server.URL,
		client:  server.Client(),
	}

	bindings, err := svc.Bindings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = bindings[lang.Pair{Source: "en", Target: "de"}](context.Background(), "Hello")
	if err == nil {
		t.Error("expected error for non-OK status")
	}
}

func TestMarianClient_Translate_EmptyOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]string{"translated_text": ""}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := &MarianClient{
		baseURL: server.URL,
		client:  server.Client(),
	}

	bindings, err := svc.Bindings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = bindings[lang.Pair{Source: "en", Target: "es"}](context.Background(), "Hello")
	if err == nil {
		t.Error("expected error for empty translation")
	}
}

func TestMarianClient_Bindings_CoverSupportedPairs(t *testing.T) {
	svc := NewMarianClient("", 0)

	bindings, err := svc.Bindings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bindings) != len(lang.SupportedPairs()) {
		t.Errorf("expected %d bindings, got %d", len(lang.SupportedPairs()), len(bindings))
	}
	for _, p := range lang.SupportedPairs() {
		if bindings[p] == nil {
			t.Errorf("expected binding for pair %s", p)
		}
	}
}

func TestMarianClient_IsAvailable_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("expected path '/health', got %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := &MarianClient{
		baseURL: server.URL,
		client:  server.Client(),
	}

	err := svc.IsAvailable(context.Background())
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMarianClient_IsAvailable_NotRunning(t *testing.T) {
	svc := &MarianClient{
		baseURL: "http://localhost:19999",
		client:  &http.Client{Timeout: 100 * time.Millisecond},
	}

	err := svc.IsAvailable(context.Background())
	if err == nil {
		t.Error("expected error when bridge not available")
	}
}

func TestMarianClient_Name(t *testing.T) {
	svc := NewMarianClient("", 0)

	if svc.Name() != "marian" {
		t.Errorf("expected 'marian', got %q", svc.Name())
	}
}

func TestNewMarianClient_Defaults(t *testing.T) {
	svc := NewMarianClient("", 0)

	if svc.baseURL != defaultMarianURL {
		t.Errorf("expected default base URL, got %q", svc.baseURL)
	}
	if svc.client.Timeout <= 0 {
		t.Error("expected positive default timeout")
	}
}

func TestNewMarianClient_TrimsTrailingSlash(t *testing.T) {
	svc := NewMarianClient("http://bridge:5000/", 30*time.Second)

	if svc.baseURL != "http://bridge:5000" {
		t.Errorf("expected trailing slash trimmed, got %q", svc.baseURL)
	}
}
