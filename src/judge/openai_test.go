package judge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIJudgeComplete(t *testing.T) {
	var got responsesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/responses", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"output":[{"type":"reasoning","content":[]},{"type":"message","content":[{"type":"output_text","text":"Sure: {\"score\": 55}"}]}]}`))
	}))
	defer srv.Close()

	j := NewOpenAIJudge("sk-test", "", srv.URL+"/v1/", 0, nil)
	text, err := j.Complete(context.Background(), NewRequest("cat", "black", "animal", "AAAA"))
	require.NoError(t, err)
	assert.Equal(t, `Sure: {"score": 55}`, text)

	assert.Equal(t, DefaultOpenAIModel, got.Model)
	assert.Zero(t, got.Temperature)
	require.Len(t, got.Input, 2)
	assert.Equal(t, "system", got.Input[0].Role)
	assert.Equal(t, "input_text", got.Input[0].Content[0].Type)
	assert.Equal(t, "user", got.Input[1].Role)
	require.Len(t, got.Input[1].Content, 2)
	assert.Equal(t, "Target (secret): cat", got.Input[1].Content[0].Text)
	assert.Equal(t, "input_image", got.Input[1].Content[1].Type)
	assert.Equal(t, "data:image/png;base64,AAAA", got.Input[1].Content[1].ImageURL)
}

func TestOpenAIJudgePrefersOutputText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"output_text":"{\"score\": 10}","output":[]}`))
	}))
	defer srv.Close()

	j := NewOpenAIJudge("sk-test", "gpt-test", srv.URL, 0, nil)
	text, err := j.Complete(context.Background(), NewRequest("cat", "black", "animal", "AAAA"))
	require.NoError(t, err)
	assert.Equal(t, `{"score": 10}`, text)
}

func TestOpenAIJudgeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer srv.Close()

	j := NewOpenAIJudge("bad", "", srv.URL, 0, nil)
	_, err := j.Complete(context.Background(), NewRequest("cat", "black", "animal", "AAAA"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestOpenAIJudgeInvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	j := NewOpenAIJudge("sk-test", "", srv.URL, 0, nil)
	_, err := j.Complete(context.Background(), NewRequest("cat", "black", "animal", "AAAA"))
	assert.Error(t, err)
}

func TestOpenAIJudgeCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	j := NewOpenAIJudge("sk-test", "", srv.URL, 0, nil)
	_, err := j.Complete(ctx, NewRequest("cat", "black", "animal", "AAAA"))
	assert.ErrorIs(t, err, context.Canceled)
}
