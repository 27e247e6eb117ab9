package extraction

import (
	"buster-server/src/models"
	"buster-server/src/util"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const ModelName = "gemini-2.5-flash"

// Analyzer turns extracted statement text into a structured spending analysis.
type Analyzer interface {
	AnalyzeStatement(ctx context.Context, text string) (*models.SpendingAnalysis, error)
}

// GeminiAnalyzer is the Gemini-backed Analyzer. Credentials come from the
// genai client's environment (GEMINI_API_KEY or Vertex project settings).
type GeminiAnalyzer struct{}

func NewGeminiAnalyzer() *GeminiAnalyzer {
	return &GeminiAnalyzer{}
}

const analysisPrompt = `Analyze the following bank statement text and extract all spending information. Group transactions by location and provide a summary.

Format the response as a JSON object with this structure:
{
  "locations": [
    {
      "name": string,
      "totalSpent": number,
      "transactions": [
        {
          "date": string (YYYY-MM-DD),
          "time": string (HH:MM, if available),
          "amount": number,
          "description": string (optional)
        }
      ],
      "address": string (optional),
      "city": string (optional),
      "state": string (optional),
      "zip": string (optional)
    }
  ],
  "summary": {
    "totalSpent": number,
    "transactionCount": number,
    "dateRange": {
      "start": string (YYYY-MM-DD),
      "end": string (YYYY-MM-DD)
    }
  }
}

Here's the bank statement text to analyze:

%s

Only respond with the JSON object, no other text. Do NOT wrap the response in code fences.`

func (a *GeminiAnalyzer) AnalyzeStatement(ctx context.Context, text string) (*models.SpendingAnalysis, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: fmt.Sprintf(analysisPrompt, text)},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, ModelName, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	analysis, err := ParseAnalysis([]byte(cleanModelJSON(rawText)))
	if err != nil {
		return nil, fmt.Errorf("parse model response: %w\nraw response: %s", err, rawText)
	}

	return analysis, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk when the model
// ignores the no-fences instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Keep only the outermost JSON object if junk survives.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}

// ParseAnalysis decodes and validates a SpendingAnalysis. Malformed required
// fields are rejected outright rather than coerced into NaN or garbage dates.
func ParseAnalysis(data []byte) (*models.SpendingAnalysis, error) {
	var analysis models.SpendingAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("unmarshal analysis: %w", err)
	}

	if len(analysis.Locations) == 0 {
		return nil, fmt.Errorf("analysis has no locations")
	}

	for i := range analysis.Locations {
		loc := &analysis.Locations[i]
		if strings.TrimSpace(loc.Name) == "" {
			return nil, fmt.Errorf("location %d: missing name", i)
		}
		loc.TotalSpent = util.RoundAmount(loc.TotalSpent)
		for j := range loc.Transactions {
			tx := &loc.Transactions[j]
			date, err := NormalizeDate(tx.Date)
			if err != nil {
				return nil, fmt.Errorf("location %d transaction %d: %w", i, j, err)
			}
			tx.Date = date
			tx.Amount = util.RoundAmount(tx.Amount)
		}
	}

	analysis.Summary.TotalSpent = util.RoundAmount(analysis.Summary.TotalSpent)
	if analysis.Summary.TransactionCount < 0 {
		return nil, fmt.Errorf("summary: negative transaction count")
	}

	start, err := NormalizeDate(analysis.Summary.DateRange.Start)
	if err != nil {
		return nil, fmt.Errorf("summary date range start: %w", err)
	}
	end, err := NormalizeDate(analysis.Summary.DateRange.End)
	if err != nil {
		return nil, fmt.Errorf("summary date range end: %w", err)
	}
	analysis.Summary.DateRange.Start = start
	analysis.Summary.DateRange.End = end

	return &analysis, nil
}

// NormalizeDate truncates an ISO timestamp at 'T' and verifies the remainder
// is a real YYYY-MM-DD date.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "T"); idx != -1 {
		s = s[:idx]
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return s, nil
}
