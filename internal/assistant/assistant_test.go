package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acucogn/site/internal/config"
)

func TestCanned_Reply(t *testing.T) {
	c := NewCanned()

	tests := []struct {
		message string
		want    string // substring of the reply
	}{
		{"Tell me about ACUCOGN", "AI consulting company"},
		{"Explore Services", "Chatbot Generation"},
		{"Schedule a Consultation", "consultation"},
		{"Contact Support", "contact form"},
		{"How much does it cost?", "Pricing depends on scope"},
		{"hi!", "How can I assist you today?"},
		{"this is unrelated", "reach us through /contact"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got, err := c.Reply(context.Background(), tt.message)
			require.NoError(t, err)
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestCanned_ShortKeywordsMatchWholeWords(t *testing.T) {
	c := NewCanned()
	got, err := c.Reply(context.Background(), "think about this")
	require.NoError(t, err)
	assert.NotContains(t, got, "Hello!")
}

func TestNew(t *testing.T) {
	tests := []struct {
		provider string
		want     string
		wantErr  bool
	}{
		{"", ProviderCanned, false},
		{config.ChatProviderCanned, ProviderCanned, false},
		{config.ChatProviderOpenAI, ProviderOpenAI, false},
		{config.ChatProviderAnthropic, ProviderAnthropic, false},
		{"llama", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			r, err := New(&config.Config{ChatProvider: tt.provider, OpenAIAPIKey: "k", AnthropicAPIKey: "k"})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Name())
		})
	}
}

func TestOpenAI_Reply(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"  We build chatbots.  "}}]}`))
	}))
	defer srv.Close()

	o := NewOpenAI("test-key", "gpt-4o-mini", srv.URL+"/v1")
	got, err := o.Reply(context.Background(), "What do you do?")
	require.NoError(t, err)
	assert.Equal(t, "We build chatbots.", got)

	assert.Equal(t, "gpt-4o-mini", body["model"])
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
}

func TestOpenAI_ReplyErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"bad request", http.StatusBadRequest, `{"error":{"message":"bad model"}}`},
		{"no choices", http.StatusOK, `{"id":"c1","object":"chat.completion","created":1,"model":"m","choices":[]}`},
		{"empty content", http.StatusOK, `{"id":"c1","object":"chat.completion","created":1,"model":"m","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":""}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOpenAI("k", "m", srv.URL+"/v1").Reply(context.Background(), "hi")
			assert.Error(t, err)
		})
	}
}

func TestAnthropic_Reply(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-haiku-latest",
			"content":[{"type":"text","text":"Happy to help."}],"stop_reason":"end_turn",
			"usage":{"input_tokens":10,"output_tokens":4}}`))
	}))
	defer srv.Close()

	a := NewAnthropic("test-key", "claude-3-5-haiku-latest", anthropicoption.WithBaseURL(srv.URL))
	got, err := a.Reply(context.Background(), "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Happy to help.", got)

	assert.Equal(t, "claude-3-5-haiku-latest", body["model"])
	assert.EqualValues(t, maxReplyTokens, body["max_tokens"])
	assert.NotEmpty(t, body["system"])
}

func TestAnthropic_NoTextBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"m",
			"content":[],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":0}}`))
	}))
	defer srv.Close()

	_, err := NewAnthropic("k", "m", anthropicoption.WithBaseURL(srv.URL)).Reply(context.Background(), "Hello")
	assert.ErrorIs(t, err, ErrEmptyReply)
}
