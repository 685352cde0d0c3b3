package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pediatric-triage/internal/common/config"
	"pediatric-triage/internal/common/logger"
)

func TestLazy_LoadsOnceUnderConcurrency(t *testing.T) {
	var loads int32
	lazy := NewLazy(func(ctx context.Context) (Model, error) {
		atomic.AddInt32(&loads, 1)
		time.Sleep(20 * time.Millisecond)
		return &Fake{Response: "ok"}, nil
	})
	assert.False(t, lazy.Loaded())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := lazy.Generate(context.Background(), "p")
			assert.NoError(t, err)
			assert.Equal(t, "ok", out)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
	assert.True(t, lazy.Loaded())
}

func TestLazy_FailedLoadIsRetried(t *testing.T) {
	var loads int32
	lazy := NewLazy(func(ctx context.Context) (Model, error) {
		if atomic.AddInt32(&loads, 1) == 1 {
			return nil, errors.New("weights not found")
		}
		return &Fake{Response: "ok"}, nil
	})

	_, err := lazy.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.False(t, lazy.Loaded())

	out, err := lazy.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
}

func TestPool_BoundsConcurrency(t *testing.T) {
	var active, peak int32
	model := GenerateFunc(func(ctx context.Context, prompt string) (string, error) {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return prompt, nil
	})
	pool := NewPool(model, 2, "test")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := pool.Generate(context.Background(), "p")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestPool_HonoursCancellationWhileWaiting(t *testing.T) {
	release := make(chan struct{})
	model := GenerateFunc(func(ctx context.Context, prompt string) (string, error) {
		<-release
		return "done", nil
	})
	pool := NewPool(model, 1, "test")

	go func() { _, _ = pool.Generate(context.Background(), "holder") }()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := pool.Generate(ctx, "waiter")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}

func TestGenAIModel_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/generate", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 400.0, body["max_tokens"])
		assert.Equal(t, 0.0, body["temperature"])
		assert.Equal(t, false, body["do_sample"])

		prompt, _ := body["prompt"].(string)
		assert.True(t, strings.HasPrefix(prompt, "<start_of_turn>user\n"))
		assert.True(t, strings.HasSuffix(prompt, "<end_of_turn>\n<start_of_turn>model\n"))
		assert.Contains(t, prompt, "classify this")

		_ = json.NewEncoder(w).Encode(map[string]string{"text": "  {\"triage_level\":\"GREEN\"}  "})
	}))
	defer srv.Close()

	m := NewGenAIModel(srv.URL+"/", "secret", 400, time.Second)
	out, err := m.Generate(context.Background(), "classify this")
	require.NoError(t, err)
	assert.Equal(t, `{"triage_level":"GREEN"}`, out)
}

func TestGenAIModel_EmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "   "})
	}))
	defer srv.Close()

	_, err := NewGenAIModel(srv.URL, "", 400, time.Second).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func newOpenAIServer(t *testing.T, served string, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/models":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"object": "list",
				"data":   []map[string]interface{}{{"id": served, "object": "model"}},
			})
		case "/v1/chat/completions":
			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 400.0, body["max_tokens"])
			temp, ok := body["temperature"].(float64)
			assert.True(t, ok, "temperature must be sent")
			assert.Less(t, temp, 1e-6)

			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id":     "chatcmpl-1",
				"object": "chat.completion",
				"choices": []map[string]interface{}{{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": reply},
					"finish_reason": "stop",
				}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestOpenAIModel_GenerateAndVerify(t *testing.T) {
	srv := newOpenAIServer(t, "google/medgemma-4b-it", "\n{\"triage_level\":\"YELLOW\"}\n")
	defer srv.Close()

	m := NewOpenAIModel(OpenAIOptions{
		APIKey: "k", BaseURL: srv.URL + "/v1", Model: "google/medgemma-4b-it",
		MaxTokens: 400, Timeout: time.Second,
	})
	require.NoError(t, m.Verify(context.Background()))

	out, err := m.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"triage_level":"YELLOW"}`, out)

	other := NewOpenAIModel(OpenAIOptions{BaseURL: srv.URL + "/v1", Model: "other", Timeout: time.Second})
	assert.Error(t, other.Verify(context.Background()))
}

func TestNewFromConfig(t *testing.T) {
	srv := newOpenAIServer(t, "google/medgemma-4b-it", "hello")
	defer srv.Close()

	cfg := config.ModelConfig{
		Provider: config.ProviderOpenAI, Name: "google/medgemma-4b-it",
		BaseURL: srv.URL + "/v1", MaxTokens: 400, Timeout: 1000, MaxConcurrency: 1,
	}
	m, err := NewFromConfig(cfg, logger.NewTestLogger(t))
	require.NoError(t, err)

	out, err := m.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)

	cfg.Name = "missing-model"
	m, err = NewFromConfig(cfg, logger.NewTestLogger(t))
	require.NoError(t, err)
	_, err = m.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrModelUnavailable)

	_, err = NewFromConfig(config.ModelConfig{Provider: "local"}, logger.NewNoOpLogger())
	assert.Error(t, err)
}
