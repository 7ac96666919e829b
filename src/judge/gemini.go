package judge

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured for the Gemini judge
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiJudge calls Google's Gemini API through the genai SDK
type GeminiJudge struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiJudge creates a Gemini-backed judge. An empty baseURL uses the public endpoint.
func NewGeminiJudge(ctx context.Context, apiKey, model, baseURL string, logger *zap.Logger) (*GeminiJudge, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiJudge{client: client, model: model, logger: logger.Named("gemini")}, nil
}

// Complete sends the instruction and image and returns the model's text output
func (j *GeminiJudge) Complete(ctx context.Context, req Request) (string, error) {
	image, err := decodeImage(req.ImageBase64)
	if err != nil {
		return "", err
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(req.Text),
			genai.NewPartFromBytes(image, ImageMIMEType),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.Instruction, genai.RoleUser),
		Temperature:       genai.Ptr(float32(req.Temperature)),
	}

	resp, err := j.client.Models.GenerateContent(ctx, j.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	j.logger.Debug("judge responded", zap.String("model", j.model), zap.Int("candidates", len(resp.Candidates)))
	return resp.Text(), nil
}

func decodeImage(payload string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	return data, nil
}
