// Package curator proposes draft meals per day and slot that meet the
// client's calorie, macro, and dietary constraints. The pipeline treats it as
// an opaque, potentially-failing external stage.
package curator

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"macroplan/internal/intake"
	"macroplan/internal/llm"
	"macroplan/internal/metabolic"
	"macroplan/internal/plan"
)

//go:embed curator_prompt.md
var curatorPrompt string

// Curator generates draft meal plans through a text-generation backend.
type Curator struct {
	textGen llm.TextGenerator
}

// NewCurator creates a new Curator instance.
func NewCurator(textGen llm.TextGenerator) *Curator {
	return &Curator{textGen: textGen}
}

type curatorPromptData struct {
	PlanDays           int
	GoalType           string
	GoalKcal           int
	TrainingDayKcal    int
	DietaryStyle       string
	Allergies          []string
	Exclusions         []string
	CuisinePreferences []string
	Slots              []metabolic.SlotTarget
}

type rawDraftPlan struct {
	Days []plan.DraftDay `json:"days"`
}

// Curate proposes one draft day per plan day, with every meal slot filled.
// Training-day flags are set from the client's training-day selection, not
// trusted from the model output.
func (c *Curator) Curate(ctx context.Context, profile *metabolic.Profile, in *intake.ClientIntake) ([]plan.DraftDay, error) {
	prompt, err := buildCuratorPrompt(curatorPromptData{
		PlanDays:           in.PlanDays,
		GoalType:           string(in.GoalType),
		GoalKcal:           profile.GoalKcal,
		TrainingDayKcal:    profile.TrainingDayKcal,
		DietaryStyle:       string(in.DietaryStyle),
		Allergies:          in.Allergies,
		Exclusions:         in.Exclusions,
		CuisinePreferences: in.CuisinePreferences,
		Slots:              profile.MealSlots,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate draft plan: %w", err)
	}

	raw := &rawDraftPlan{}
	if err := json.Unmarshal([]byte(stripCodeFences(resp)), raw); err != nil {
		return nil, fmt.Errorf("failed to parse draft plan JSON: %w. Response: %s", err, resp)
	}

	if len(raw.Days) == 0 {
		return nil, fmt.Errorf("curator returned no days")
	}

	trainingDays := make(map[string]struct{}, len(in.TrainingDays))
	for _, d := range in.TrainingDays {
		trainingDays[d] = struct{}{}
	}

	for i := range raw.Days {
		day := &raw.Days[i]
		if day.DayNumber == 0 {
			day.DayNumber = i + 1
		}
		if len(day.Meals) == 0 {
			return nil, fmt.Errorf("draft day %d has no meals", day.DayNumber)
		}
		_, isTraining := trainingDays[strings.ToLower(day.DayName)]
		day.IsTrainingDay = isTraining
	}

	return raw.Days, nil
}

func buildCuratorPrompt(data curatorPromptData) (string, error) {
	tmpl, err := template.New("curator").Parse(curatorPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// stripCodeFences removes a surrounding markdown code block if the model
// ignored the raw-JSON instruction.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
