package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

// The model is told to answer with this JSON shape and nothing else. Fields
// it cannot read get null values and a zero confidence.
const extractionPrompt = `Analyze this receipt image and respond with only a JSON object, no markdown, in this exact shape:
{
  "description": string or null,
  "amount": number or null,
  "currency": ISO 4217 code or null,
  "date": "YYYY-MM-DD" or null,
  "category": string or null,
  "confidence": number between 0 and 1,
  "fieldConfidence": {
    "description": number, "amount": number, "currency": number, "date": number, "category": number
  }
}
The description is a short summary of the purchase. The amount is the receipt total. The date is the purchase date.`

// FieldExtractor asks the Gemini vision API to read expense fields off a
// receipt image.
type FieldExtractor struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// Ensure FieldExtractor implements the extractor port
var _ portsrepo.FieldExtractor = (*FieldExtractor)(nil)

func NewFieldExtractor(apiKey string, model string, timeout time.Duration) *FieldExtractor {
	return &FieldExtractor{
		apiKey:   apiKey,
		model:    model,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type extractionPayload struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Currency    *string  `json:"currency"`
	Date        *string  `json:"date"`
	Category    *string  `json:"category"`
	Confidence  float64  `json:"confidence"`
	FieldConf   struct {
		Description float64 `json:"description"`
		Amount      float64 `json:"amount"`
		Currency    float64 `json:"currency"`
		Date        float64 `json:"date"`
		Category    float64 `json:"category"`
	} `json:"fieldConfidence"`
}

func (e *FieldExtractor) Extract(ctx context.Context, image []byte, contentType string) (*domain.ReceiptAnalysisResult, error) {
	reqBody := generateContentRequest{
		Contents: []content{{
			Parts: []part{
				{Text: extractionPrompt},
				{InlineData: &inlineData{
					MimeType: contentType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extraction request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", e.endpoint, e.model, e.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: extraction call failed: %s", apperrors.ErrExtractionUnavailable, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read extraction response", apperrors.ErrExtractionUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: extraction API returned status %d", apperrors.ErrExtractionUnavailable, resp.StatusCode)
	}

	var apiResp generateContentResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: malformed extraction response", apperrors.ErrExtractionUnavailable)
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: extraction returned no candidates", apperrors.ErrExtractionUnavailable)
	}

	return parsePayload(apiResp.Candidates[0].Content.Parts[0].Text)
}

// parsePayload decodes the model's JSON answer. Models sometimes wrap the
// answer in a markdown code fence despite instructions; strip it before
// decoding.
func parsePayload(text string) (*domain.ReceiptAnalysisResult, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var payload extractionPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("%w: extraction answer is not valid JSON", apperrors.ErrExtractionUnavailable)
	}

	result := &domain.ReceiptAnalysisResult{
		Description:       payload.Description,
		SuggestedCategory: payload.Category,
		Confidence:        payload.Confidence,
		FieldConfidence: domain.FieldConfidence{
			Description: payload.FieldConf.Description,
			Amount:      payload.FieldConf.Amount,
			Currency:    payload.FieldConf.Currency,
			Date:        payload.FieldConf.Date,
			Category:    payload.FieldConf.Category,
		},
	}
	if payload.Amount != nil {
		amount := decimal.NewFromFloat(*payload.Amount)
		result.Amount = &amount
	}
	if payload.Currency != nil {
		code := strings.ToUpper(strings.TrimSpace(*payload.Currency))
		result.Currency = &code
	}
	if payload.Date != nil {
		if parsed, err := time.Parse("2006-01-02", *payload.Date); err == nil {
			result.Date = &parsed
		}
	}
	return result, nil
}
