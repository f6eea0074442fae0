package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/kidusabe1/Budgy-By-K/internal/category"
	"github.com/kidusabe1/Budgy-By-K/internal/logging"
)

// fewShotExamples anchors the model with merchant→category pairs across
// the scripts we actually see in webhook traffic.
var fewShotExamples = []struct {
	merchant string
	label    category.Label
}{
	{"שופרסל אונליין", category.Groceries},
	{"רמי לוי", category.Groceries},
	{"yellow", category.Transportation},
	{"דן אוטובוסים", category.Transportation},
	{"ארומה סנטר", category.DiningOut},
	{"netflix", category.Subscriptions},
	{"paz תחנת דלק", category.Transportation},
}

// Gemini classifies merchants with the Gemini API. Merchant names are
// benign text, so the provider's safety filters are switched off to keep
// them from blocking categorization traffic.
type Gemini struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  logging.Logger
}

// NewGemini creates a Gemini classifier. The API key must be non-empty;
// callers decide beforehand whether the stage is configured at all.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration, logger logging.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	m := client.GenerativeModel(model)
	m.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
	}

	return &Gemini{
		client:  client,
		model:   m,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Classify asks the model for a bare category label for the merchant.
// The response is untrusted free text.
func (g *Gemini) Classify(ctx context.Context, merchant string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(BuildPrompt(merchant)))
	if err != nil {
		return "", false, fmt.Errorf("gemini request: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", false, nil
	}

	g.logger.WithFields(
		logging.Field{Key: "merchant", Value: merchant},
		logging.Field{Key: "guess", Value: text},
	).Debug("Gemini returned a category guess")

	return text, true, nil
}

// BuildPrompt assembles the classification prompt: the closed label set,
// the few-shot examples, and the single merchant to classify.
func BuildPrompt(merchant string) string {
	names := make([]string, 0, len(category.Labels()))
	for _, l := range category.Labels() {
		names = append(names, string(l))
	}

	var b strings.Builder
	b.WriteString("You categorize merchant names into one of these categories: ")
	b.WriteString(strings.Join(names, ", "))
	b.WriteString(". Return ONLY the category text without explanation.\n\nExamples:\n")
	for _, ex := range fewShotExamples {
		b.WriteString(ex.merchant)
		b.WriteString(" -> ")
		b.WriteString(string(ex.label))
		b.WriteString("\n")
	}
	b.WriteString("\nMerchant: ")
	b.WriteString(merchant)
	b.WriteString("\nCategory:")
	return b.String()
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			return strings.TrimSpace(string(text))
		}
	}
	return ""
}
