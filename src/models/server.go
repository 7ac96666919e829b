package models

import "encoding/json"

type TargetRequest struct {
	Date string `form:"date"`
}

type TargetResponse struct {
	TargetID   string `json:"target_id"`
	PublicName string `json:"public_name"`
	Colour     string `json:"colour"`
	Category   string `json:"category"`
}

// SubmitRequest keeps attempt raw so that any JSON value can be coerced later
type SubmitRequest struct {
	ImageBase64 string          `json:"image_base64"`
	Attempt     json.RawMessage `json:"attempt"`
}

type SubmitResponse struct {
	Success          bool   `json:"success"`
	Score            int    `json:"score"`
	Guess            string `json:"guess"`
	Category         string `json:"category"`
	ColorMatch       bool   `json:"color_match"`
	ShapeMatch       bool   `json:"shape_match"`
	StyleScore       int    `json:"style_score"`
	ExpectedCategory string `json:"expected_category"`
	ExpectedColour   string `json:"expected_colour"`
	TargetID         string `json:"target_id"`
}

type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
