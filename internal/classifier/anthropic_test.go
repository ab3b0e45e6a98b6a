package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/scguardian/guardian/internal/config"
	"github.com/scguardian/guardian/internal/logging"
)

type capturedMessagesRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	System      []struct {
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func newAnthropicTestServer(t *testing.T, status int, text string, captured *capturedMessagesRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("x-api-key = %q", got)
		}
		if captured != nil {
			if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"type": "error", "error": {"type": "overloaded_error", "message": "Overloaded"}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_01",
			"type":        "message",
			"role":        "assistant",
			"model":       "claude-3-5-haiku-20241022",
			"stop_reason": "end_turn",
			"content":     []map[string]any{{"type": "text", "text": text}},
			"usage":       map[string]any{"input_tokens": 410, "output_tokens": 77},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAnthropicGenerator(srvURL string) *AnthropicGenerator {
	return NewAnthropicGenerator(config.ClassifierConfig{
		Provider:    config.ProviderAnthropic,
		APIKey:      "test-key",
		Model:       "claude-3-5-haiku-latest",
		Temperature: 0.5,
		MaxTokens:   800,
	}, option.WithBaseURL(srvURL))
}

func TestAnthropicGenerator_GenerateStructured(t *testing.T) {
	var captured capturedMessagesRequest
	srv := newAnthropicTestServer(t, http.StatusOK, "```json\n"+validModelReply+"\n```", &captured)
	gen := newTestAnthropicGenerator(srv.URL)

	resp, err := gen.GenerateStructured(context.Background(), Request{
		System: SystemInstruction,
		Prompt: "prompt body",
		Schema: AnalysisSchema(),
	})
	if err != nil {
		t.Fatalf("GenerateStructured returned error: %v", err)
	}

	if resp.Text != validModelReply {
		t.Errorf("code fence should be stripped, got %q", resp.Text)
	}
	if resp.Model != "claude-3-5-haiku-20241022" || resp.InputTokens != 410 || resp.OutputTokens != 77 {
		t.Errorf("unexpected response metadata: %+v", resp)
	}

	if captured.Model != "claude-3-5-haiku-latest" || captured.MaxTokens != 800 || captured.Temperature != 0.5 {
		t.Errorf("unexpected request parameters: %+v", captured)
	}
	if len(captured.System) != 1 || !strings.Contains(captured.System[0].Text, `"additionalProperties":false`) {
		t.Errorf("system prompt should embed the schema: %+v", captured.System)
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Role != "user" || captured.Messages[0].Content[0].Text != "prompt body" {
		t.Errorf("messages = %+v", captured.Messages)
	}
}

func TestAnthropicGenerator_ThroughGateway(t *testing.T) {
	srv := newAnthropicTestServer(t, http.StatusOK, validModelReply, nil)
	g := NewGateway(newTestAnthropicGenerator(srv.URL), logging.Discard())

	profile, item := vietnamFixture()
	got := g.Assess(context.Background(), profile, item)
	if got.Path != PathModel {
		t.Fatalf("path = %v, err = %v", got.Path, got.Err)
	}
	if got.Result.Reasoning != "Your Vietnam suppliers sit in the storm path." {
		t.Errorf("reasoning = %q", got.Result.Reasoning)
	}
}

func TestAnthropicGenerator_OverloadedFallsBack(t *testing.T) {
	srv := newAnthropicTestServer(t, http.StatusServiceUnavailable, "", nil)
	g := NewGateway(newTestAnthropicGenerator(srv.URL), logging.Discard())

	profile, item := vietnamFixture()
	got := g.Assess(context.Background(), profile, item)
	if got.Path != PathHeuristic || got.Reason != ReasonTransport {
		t.Fatalf("expected transport fallback, got path=%v reason=%v err=%v", got.Path, got.Reason, got.Err)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := map[string]string{
		`{"a":1}`:                 `{"a":1}`,
		"  {\"a\":1}\n":           `{"a":1}`,
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		"```{\"a\":1}```":         `{"a":1}`,
		"```json\n{\"a\":1}":      `{"a":1}`,
		"":                        "",
	}
	for in, want := range tests {
		if got := stripCodeFence(in); got != want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", in, got, want)
		}
	}
}
