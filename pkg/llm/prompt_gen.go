package llm

import (
	"Doodly/pkg/log"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type PromptRequest struct {
	AgeGroup string
	TimeSlot string
	Day      string
	Category string
	Theme    string
}

type PromptResult struct {
	PromptText     string
	CommunityTitle string
	Difficulty     string
}

var audienceHints = map[string]string{
	"preschoolers": "ages 3-5, one simple subject, very short sentence, playful",
	"kids":         "ages 6-9, one clear scene, a fun twist, simple words",
	"tweens":       "ages 10-12, room for interpretation, can be a little challenging",
}

// GeneratePromptText asks the model for one drawing challenge around the
// picked theme. Callers fall back to the category's static example on any
// error.
func (c *Client) GeneratePromptText(ctx context.Context, req PromptRequest) (*PromptResult, error) {
	sys := "You write daily drawing challenges for a children's art app. " +
		"Content must be safe, kind and drawable with crayons or pencils. " +
		"Reply with ONLY a JSON object: " +
		`{"prompt_text": string, "community_title": string, "difficulty": "easy"|"medium"|"hard"}`

	user := fmt.Sprintf(
		"Audience: %s (%s).\nTheme: %s (category: %s).\nSlot: %s on %s.\n"+
			"prompt_text is the challenge shown to the child, community_title is a short gallery headline.",
		req.AgeGroup, audienceHints[req.AgeGroup], req.Theme, req.Category, req.TimeSlot, req.Day,
	)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.promptModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(sys),
			openai.UserMessage(user),
		},
	}

	startTime := time.Now()
	completion, err := c.oc.Chat.Completions.New(ctx, params)
	if err != nil {
		log.L.Error("failed to generate prompt", zap.Error(err), zap.String("age_group", req.AgeGroup))
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("empty completion")
	}

	content := completion.Choices[0].Message.Content
	log.L.Info("prompt generated",
		zap.String("age_group", req.AgeGroup),
		zap.String("slot", req.TimeSlot),
		zap.Duration("gen time", time.Since(startTime)))

	return ParsePromptJSON(req.AgeGroup, content)
}

// ParsePromptJSON extracts the prompt fields from a model reply. Tolerates
// code fences and chatter around the JSON object; errors when no usable
// prompt_text is present so callers can fall back.
func ParsePromptJSON(ageGroup, raw string) (*PromptResult, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return nil, errors.New("no JSON object in model reply")
	}
	doc := gjson.Parse(raw[start : end+1])

	text := strings.TrimSpace(doc.Get("prompt_text").String())
	if text == "" {
		return nil, errors.New("model reply missing prompt_text")
	}

	difficulty := doc.Get("difficulty").String()
	switch difficulty {
	case "easy", "medium", "hard":
	default:
		difficulty = defaultDifficulty[ageGroup]
		if difficulty == "" {
			difficulty = "easy"
		}
	}

	return &PromptResult{
		PromptText:     text,
		CommunityTitle: strings.TrimSpace(doc.Get("community_title").String()),
		Difficulty:     difficulty,
	}, nil
}

// FallbackPrompt is the static prompt served when generation fails.
func FallbackPrompt(ageGroup string, cat ThemeCategory) *PromptResult {
	difficulty := defaultDifficulty[ageGroup]
	if difficulty == "" {
		difficulty = "easy"
	}
	return &PromptResult{
		PromptText:     cat.Fallback,
		CommunityTitle: "Today's " + cat.Name + " challenge",
		Difficulty:     difficulty,
	}
}
