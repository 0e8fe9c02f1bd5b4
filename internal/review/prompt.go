package review

import (
	"encoding/base64"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/jonathan/interview-coach/internal/prompts"
)

const promptFile = "review.json"

// buildEvaluationParts assembles the single user-role evaluation message:
// the fixed rubric, the interpolated interview context, and, when drawing
// data is present, one inline PNG part. The provider contract has no system
// role, so the rubric rides in the user turn.
func buildEvaluationParts(question, response, drawingData string) []genai.Part {
	var sb strings.Builder
	sb.WriteString(prompts.MustGet(promptFile, "evaluation"))
	sb.WriteString("\n\n===INTERVIEW QUESTION===\n")
	sb.WriteString(question)
	sb.WriteString("\n\n===CANDIDATE RESPONSE===\n")
	if strings.TrimSpace(response) == "" {
		sb.WriteString("[No text response - see diagram below]")
	} else {
		sb.WriteString(response)
	}
	sb.WriteString("\n\n")
	if drawingData != "" {
		sb.WriteString("===SYSTEM DIAGRAM PROVIDED===\nThe candidate has also provided a system architecture diagram below. Please analyze the diagram carefully and comment on its design, completeness, and alignment with the question.")
	}
	sb.WriteString("\n\n===EVALUATION===\nEvaluate this response")
	if drawingData != "" {
		sb.WriteString(" (including the diagram)")
	}
	sb.WriteString(". FIRST check: Is this even answering the right question? If not, score should be 1-2. Then evaluate based on the rubric above. Score should VARY significantly - not always 7.")

	parts := []genai.Part{genai.Text(sb.String())}
	if image, ok := decodeDrawingData(drawingData); ok {
		parts = append(parts, genai.Blob{MIMEType: "image/png", Data: image})
	}
	return parts
}

// decodeDrawingData extracts raw image bytes from a drawing payload.
// Producers vary: some send a full data URL (data:image/png;base64,...),
// others the bare base64 payload; both shapes are accepted. Undecodable
// data is skipped rather than failing the evaluation.
func decodeDrawingData(drawingData string) ([]byte, bool) {
	if drawingData == "" {
		return nil, false
	}

	payload := drawingData
	if idx := strings.Index(drawingData, ","); idx >= 0 {
		payload = drawingData[idx+1:]
	}
	if payload == "" {
		return nil, false
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
	}
	if err != nil {
		log.Printf("Skipping undecodable drawing data: %v", err)
		return nil, false
	}
	return data, true
}
