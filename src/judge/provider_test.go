package judge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"512b.it/drawday/src/config"
)

func TestNewSelectsProvider(t *testing.T) {
	ctx := context.Background()

	j, err := New(ctx, config.JudgeConfig{Provider: config.ProviderOpenAI, APIKey: "sk"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIJudge{}, j)

	j, err = New(ctx, config.JudgeConfig{Provider: config.ProviderGemini, APIKey: "g"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &GeminiJudge{}, j)

	_, err = New(ctx, config.JudgeConfig{Provider: "watson", APIKey: "w"}, nil)
	assert.Error(t, err)
}

func TestGeminiJudgeRequiresKey(t *testing.T) {
	_, err := NewGeminiJudge(context.Background(), "", "", "", nil)
	assert.Error(t, err)
}

func TestDecodeImage(t *testing.T) {
	data, err := decodeImage("iVBORw0KGgo=")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, data)

	_, err = decodeImage("not base64!")
	assert.Error(t, err)
}
