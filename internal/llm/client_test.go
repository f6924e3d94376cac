package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	cfg.APIKey = "test-key"
	cfg.MaxRetries = 1
	return cfg
}

func chatReply(text string) string {
	body := map[string]any{
		"model": "openai/gpt-4o",
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": text}},
		},
	}
	data, _ := json.Marshal(body)
	return string(data)
}

func TestGenerate_SendsChatCompletionRequest(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(chatReply("hello from model")))
	}))
	defer srv.Close()

	client := NewChatClient(testConfig(srv.URL), nil)
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskBreakdown,
		SystemPrompt: "system here",
		UserPrompt:   "user here",
	})

	require.NoError(t, err)
	assert.Equal(t, "hello from model", resp.Text)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "user here", gotBody.Messages[1].Content)
	assert.Equal(t, 0.7, gotBody.Temperature)
}

func TestGenerate_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "upstream busy", http.StatusBadGateway)
			return
		}
		w.Write([]byte(chatReply("second try")))
	}))
	defer srv.Close()

	client := NewChatClient(testConfig(srv.URL), nil)
	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskSchedule})

	require.NoError(t, err)
	assert.Equal(t, "second try", resp.Text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerate_ExhaustedRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewChatClient(testConfig(srv.URL), nil)
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskSummary})

	assert.ErrorIs(t, err, ErrRetryExhausted)
}

func TestGenerate_TimeoutMapsToErrTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(chatReply("too late")))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks[TaskSummary] = TaskConfig{Temperature: 0.7, MaxTokens: 100, TimeoutMs: 50}

	client := NewChatClient(cfg, nil)
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskSummary})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestGenerate_ObserverSeesOutcome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply("ok")))
	}))
	defer srv.Close()

	var events []CallEvent
	observer := observerFunc(func(e CallEvent) { events = append(events, e) })

	client := NewChatClient(testConfig(srv.URL), observer)
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskAdaptation})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, TaskAdaptation, events[0].Task)
	assert.True(t, events[0].Success)
}

// observerFunc adapts a function to the Observer interface.
type observerFunc func(CallEvent)

func (f observerFunc) OnCallComplete(e CallEvent) { f(e) }
