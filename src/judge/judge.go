package judge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"

	"512b.it/drawday/src/utils"
)

// ImageMIMEType is the media type submitted drawings are forwarded as
const ImageMIMEType = "image/png"

// Request is a single synchronous call to the judging service
type Request struct {
	Instruction string
	Text        string
	ImageBase64 string
	Temperature float64
}

// DataURI returns the image embedded as a data URI
func (r Request) DataURI() string {
	return "data:" + ImageMIMEType + ";base64," + r.ImageBase64
}

// Judge is an external multimodal completion service returning free text
type Judge interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Judgment is the structured score extracted from the judge's answer
type Judgment struct {
	Score      int
	Guess      string
	Correct    bool
	ColorMatch bool
	ShapeMatch bool
	StyleScore int
	Category   string
}

// BuildInstruction renders the system instruction for a target. The prompt is
// the answer and must never leave the process except towards the judge.
func BuildInstruction(prompt, colour, category string) string {
	return "You are a strict AI judge for a drawing game. " +
		"Compare the drawing to the target concept. Output only JSON with fields: " +
		"score (0-100), guess (string), correct (bool), color_match (bool), " +
		"shape_match (bool), style_score (0-25), and category (string). " +
		fmt.Sprintf("The target is '%s' with expected color '%s' ", prompt, colour) +
		fmt.Sprintf("and category '%s'.", category)
}

// NewRequest assembles the judging call for a target and an already stripped image payload
func NewRequest(prompt, colour, category, imageBase64 string) Request {
	return Request{
		Instruction: BuildInstruction(prompt, colour, category),
		Text:        "Target (secret): " + prompt,
		ImageBase64: imageBase64,
		Temperature: 0,
	}
}

// ExtractJSON decodes the span between the first '{' and the last '}' of text.
// Anything that does not decode to an object yields an empty map.
func ExtractJSON(text string) map[string]any {
	span, ok := utils.BraceSpan(text)
	if !ok {
		return map[string]any{}
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(span), &fields); err != nil || fields == nil {
		return map[string]any{}
	}
	return fields
}

// Normalize converts decoded judge fields into a Judgment, defaulting missing fields
func Normalize(fields map[string]any) (Judgment, error) {
	var (
		j   Judgment
		err error
	)
	if j.Score, err = intField(fields, "score"); err != nil {
		return Judgment{}, err
	}
	if j.StyleScore, err = intField(fields, "style_score"); err != nil {
		return Judgment{}, err
	}
	if j.Guess, err = stringField(fields, "guess"); err != nil {
		return Judgment{}, err
	}
	if j.Category, err = stringField(fields, "category"); err != nil {
		return Judgment{}, err
	}
	j.Correct = truthy(fields["correct"])
	j.ColorMatch = truthy(fields["color_match"])
	j.ShapeMatch = truthy(fields["shape_match"])
	return j, nil
}

// Parse extracts and normalizes a judgment from the judge's free text
func Parse(text string) (Judgment, error) {
	return Normalize(ExtractJSON(text))
}

func intField(fields map[string]any, key string) (int, error) {
	v, ok := fields[key]
	if !ok {
		return 0, nil
	}
	if v == nil {
		return 0, fmt.Errorf("field %s: null is not an integer", key)
	}
	n, err := utils.ToInt(v)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", key, err)
	}
	return n, nil
}

func stringField(fields map[string]any, key string) (string, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("field %s: %w", key, err)
	}
	return s, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
