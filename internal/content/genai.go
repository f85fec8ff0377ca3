package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

const (
	tipPrompt = "Give one short, funny and educational tip about money for a 10 year old. At most 20 words."

	missionPrompt = `Create one "money challenge" a child can do at home. It must be about money, shopping or saving.
Examples: "compare the price of a snack in two stores", "count the coins in your piggy bank".
Do not suggest chores like tidying up. The challenge must be financial.`

	lessonPrompt = `Explain one basic economic concept (interest, inflation, budget, stock, debt) in simple, fun language for a child.
Then give a practical multiple-choice challenge with exactly 3 options.`
)

// modelClient is the part of *genai.Models that GenAI uses.
type modelClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAI generates content with Google Gemini.
type GenAI struct {
	models modelClient
	model  string
}

var _ Generator = (*GenAI)(nil)

// NewGenAI creates a Gemini-backed generator.
func NewGenAI(ctx context.Context, apiKey, model string) (*GenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGenAI(client.Models, model), nil
}

func newGenAI(models modelClient, model string) *GenAI {
	if model == "" {
		model = DefaultModel
	}
	return &GenAI{models: models, model: model}
}

// DailyTip asks the model for a one-line tip.
func (g *GenAI) DailyTip(ctx context.Context) (string, error) {
	text, err := g.generate(ctx, tipPrompt, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.8),
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// MagicMission asks the model for a money-related mission.
func (g *GenAI) MagicMission(ctx context.Context) (MissionDraft, error) {
	text, err := g.generate(ctx, missionPrompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":  {Type: genai.TypeString, Description: "The financial challenge."},
				"reward": {Type: genai.TypeInteger, Description: "Coins awarded, between 50 and 150."},
				"icon":   {Type: genai.TypeString, Description: "A single emoji that fits the challenge."},
			},
			Required: []string{"title", "reward", "icon"},
		},
	})
	if err != nil {
		return MissionDraft{}, err
	}

	var d MissionDraft
	if err := json.Unmarshal([]byte(text), &d); err != nil {
		return MissionDraft{}, fmt.Errorf("decoding mission: %w", err)
	}
	return d.Normalize()
}

// Lesson asks the model for a concept explanation with a quiz.
func (g *GenAI) Lesson(ctx context.Context) (types.Lesson, error) {
	text, err := g.generate(ctx, lessonPrompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"concept":  {Type: genai.TypeString, Description: "The explanation of the concept."},
				"question": {Type: genai.TypeString, Description: "The challenge question."},
				"options": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "Exactly 3 answer options.",
				},
				"correctIndex": {Type: genai.TypeInteger, Description: "Index of the correct answer (0-2)."},
			},
			Required: []string{"concept", "question", "options", "correctIndex"},
		},
	})
	if err != nil {
		return types.Lesson{}, err
	}

	var l types.Lesson
	if err := json.Unmarshal([]byte(text), &l); err != nil {
		return types.Lesson{}, fmt.Errorf("decoding lesson: %w", err)
	}
	if err := l.Validate(); err != nil {
		return types.Lesson{}, err
	}
	return l, nil
}

func (g *GenAI) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
