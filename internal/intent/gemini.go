// Package intent extracts ride search filters from free-text queries.
package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"xeghep/internal/domain"
)

const promptTemplate = `Extract search parameters from this Vietnamese ride request: "%s".
Current Date: %s.

RULES FOR TIME CONVERSION (24-Hour Format):
1. Always output time in "HH:mm" (24-hour) format.
2. If specific 12h time is given, convert it:
   - "2h chiều" -> "14:00"
   - "9h sáng" -> "09:00"
   - "8h tối" -> "20:00"
3. If vague time of day terms are used without specific numbers, map them to these defaults:
   - "Sáng" / "Buổi sáng" -> "08:00"
   - "Trưa" / "Buổi trưa" -> "12:00"
   - "Chiều" / "Buổi chiều" -> "14:00"
   - "Tối" / "Buổi tối" -> "19:00"
   - "Đêm" -> "23:00"

If a location is mentioned, try to normalize it to standard Vietnamese city names (e.g. "SG" -> "Sài Gòn", "BP" -> "Bình Phước", "Biên Hòa" -> "Trấn Biên").

Return JSON.`

// GeminiParser calls the Gemini generateContent endpoint with a JSON
// response schema matching domain.SearchFilters.
type GeminiParser struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	logger   logrus.FieldLogger
	clock    func() time.Time
}

// NewGeminiParser creates a parser. An empty apiKey is allowed; Parse then
// logs a warning and returns empty filters.
func NewGeminiParser(apiKey, model, endpoint string, timeout time.Duration, logger logrus.FieldLogger) *GeminiParser {
	return &GeminiParser{
		apiKey:   apiKey,
		model:    model,
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
		clock:    time.Now,
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var responseSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"origin":      map[string]any{"type": "STRING", "description": "Departure city/location"},
		"destination": map[string]any{"type": "STRING", "description": "Arrival city/location"},
		"date":        map[string]any{"type": "STRING", "description": "Date of travel in YYYY-MM-DD format"},
		"time":        map[string]any{"type": "STRING", "description": "Departure time in HH:mm format (24h)"},
		"type": map[string]any{
			"type":        "STRING",
			"enum":        []string{string(domain.RideTypeShared), string(domain.RideTypeConvenient), string(domain.RideTypePrivate)},
			"description": "Type of ride if specified (Xe ghép, Tiện chuyến, Bao xe)",
		},
	},
}

// Parse never fails: any transport, status or decoding problem is logged
// and yields empty filters.
func (p *GeminiParser) Parse(ctx context.Context, query string) domain.SearchFilters {
	if p.apiKey == "" {
		p.logger.Warn("gemini api key not set, returning empty filters")
		return domain.SearchFilters{}
	}

	filters, err := p.parse(ctx, query)
	if err != nil {
		p.logger.WithError(err).WithField("query", query).Error("gemini parsing error")
		return domain.SearchFilters{}
	}
	return filters
}

func (p *GeminiParser) parse(ctx context.Context, query string) (domain.SearchFilters, error) {
	var filters domain.SearchFilters

	body, err := json.Marshal(generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: fmt.Sprintf(promptTemplate, query, p.clock().Format(domain.DateLayout))}},
		}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	})
	if err != nil {
		return filters, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.endpoint, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return filters, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return filters, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return filters, fmt.Errorf("gemini returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return filters, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return filters, nil
	}

	text := out.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return filters, nil
	}
	if err := json.Unmarshal([]byte(text), &filters); err != nil {
		return domain.SearchFilters{}, fmt.Errorf("decode filters: %w", err)
	}
	return filters, nil
}

// NopParser extracts nothing.
type NopParser struct{}

func (NopParser) Parse(context.Context, string) domain.SearchFilters { return domain.SearchFilters{} }
