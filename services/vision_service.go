package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ErrAnalysisFailed is the single retryable error surfaced for any
// recognition failure — network, quota or unparseable output alike. The
// user-facing message is "could not recognize the food, please retake
// the photo"; the cause only goes to the log.
var ErrAnalysisFailed = errors.New("could not recognize the food, please retake the photo")

// FoodEstimate is one recognized component of the photographed meal.
type FoodEstimate struct {
	Name         string  `json:"name"`
	WeightGrams  float64 `json:"weight"`
	Calories     float64 `json:"calories"`
	ProteinGrams float64 `json:"protein"`
	FatGrams     float64 `json:"fat"`
	CarbsGrams   float64 `json:"carbs"`
}

// FoodAnalyzer is the external recognition collaborator. Implementations
// take a base64 data URI of the meal photo and return the estimated
// components, or fail as a whole.
type FoodAnalyzer interface {
	AnalyzeImage(ctx context.Context, imageDataURI string) ([]FoodEstimate, error)
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GeminiService recognizes food via the Gemini multimodal API.
type GeminiService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		baseURL: "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

const visionPrompt = `You are an expert nutritionist. Analyze this photo of a dish:
1. List the main components (e.g. for beef pho: noodles, beef, broth).
2. Estimate weight in grams and calories/protein/fat/carbs for each.
3. Return only a JSON array, each element {"name": string, "weight": number, "calories": number, "protein": number, "fat": number, "carbs": number}.`

func (s *GeminiService) AnalyzeImage(ctx context.Context, imageDataURI string) ([]FoodEstimate, error) {
	mimeType, data, err := splitDataURI(imageDataURI)
	if err != nil {
		return nil, err
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{MimeType: mimeType, Data: data}},
				{Text: visionPrompt},
			},
		}},
		GenerationConfig: geminiGenConfig{ResponseMimeType: "application/json"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", s.baseURL, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("gemini call failed: %v", err)
		return nil, ErrAnalysisFailed
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("gemini read failed: %v", err)
		return nil, ErrAnalysisFailed
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("gemini status %d: %s", resp.StatusCode, body)
		return nil, ErrAnalysisFailed
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		log.Printf("gemini envelope parse failed: %v", err)
		return nil, ErrAnalysisFailed
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		log.Printf("gemini returned no candidates")
		return nil, ErrAnalysisFailed
	}

	estimates, err := parseEstimates(gr.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		log.Printf("gemini estimate parse failed: %v", err)
		return nil, ErrAnalysisFailed
	}
	return estimates, nil
}

// parseEstimates pulls the JSON array out of the model text. Markdown
// fences slip in even with a JSON response mime type.
func parseEstimates(text string) ([]FoodEstimate, error) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return nil, errors.New("no JSON array in model output")
	}

	var estimates []FoodEstimate
	if err := json.Unmarshal([]byte(text[start:end+1]), &estimates); err != nil {
		return nil, fmt.Errorf("decode estimates: %w", err)
	}
	if len(estimates) == 0 {
		return nil, errors.New("model recognized nothing")
	}
	return estimates, nil
}

// splitDataURI validates a "data:image/…;base64,…" URI and returns the
// mime type and the raw base64 payload.
func splitDataURI(uri string) (mimeType, data string, err error) {
	if !strings.HasPrefix(uri, "data:image") {
		return "", "", errors.New("invalid image data URI")
	}
	parts := strings.SplitN(uri, ",", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", errors.New("invalid image data URI")
	}
	meta := strings.TrimPrefix(parts[0], "data:")
	mimeType = strings.SplitN(meta, ";", 2)[0]
	return mimeType, parts[1], nil
}
