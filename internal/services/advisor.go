package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/platform/openai"
	"github.com/pathwise/pathwise-backend/internal/types"
)

// SkillEvaluation is the advisor's qualitative judgment of a free-text answer.
type SkillEvaluation struct {
	Level      int      `json:"level"`
	Confidence float64  `json:"confidence"`
	Notes      string   `json:"notes"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// GapNarrative decorates an already-sized gap with human-readable text. The
// deterministic analyzer stays authoritative for every numeric field.
type GapNarrative struct {
	Explanation        string   `json:"explanation"`
	RecommendedActions []string `json:"recommended_actions"`
}

type PlannedMilestone struct {
	SkillName   string   `json:"skill_name"`
	WeekNumber  int      `json:"week_number"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Resources   []string `json:"resources"`
}

type RoadmapPlan struct {
	Title      string             `json:"title"`
	TotalWeeks int                `json:"total_weeks"`
	Milestones []PlannedMilestone `json:"milestones"`
}

type VerificationQuestion struct {
	Question       string   `json:"question"`
	ExpectedTopics []string `json:"expected_topics"`
	Difficulty     string   `json:"difficulty"`
}

type VerificationScore struct {
	Passed   bool    `json:"passed"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
	NewLevel int     `json:"new_level"`
}

// AdvisorService supplies the qualitative judgments the core cannot compute
// deterministically. Every capability except answer scoring degrades to a
// deterministic fallback when the model call fails, so a pipeline never
// stalls on the inference service. Scoring errors are surfaced instead:
// inventing a pass or fail would poison the skill ledger.
type AdvisorService interface {
	EvaluateSkill(ctx context.Context, question, answer string, skill GapInput) SkillEvaluation
	ExplainGap(ctx context.Context, gap GapResult, profile types.Profile) GapNarrative
	RecommendResources(ctx context.Context, skillName string, currentLevel, targetLevel int) []types.LearningResource
	PlanRoadmap(ctx context.Context, profile types.Profile, gaps []GapResult) RoadmapPlan
	GenerateVerificationQuestion(ctx context.Context, skillName, milestoneContext string) VerificationQuestion
	ScoreVerificationAnswer(ctx context.Context, question, answer, skillName string) (VerificationScore, error)
}

type advisorService struct {
	log *logger.Logger
	ai  openai.Client
}

func NewAdvisorService(log *logger.Logger, ai openai.Client) AdvisorService {
	return &advisorService{
		log: log.With("service", "AdvisorService"),
		ai:  ai,
	}
}

func (s *advisorService) EvaluateSkill(ctx context.Context, question, answer string, skill GapInput) SkillEvaluation {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"level":      map[string]any{"type": "integer", "minimum": 0, "maximum": 5},
			"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
			"notes":      map[string]any{"type": "string"},
			"strengths":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"weaknesses": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required":             []string{"level", "confidence", "notes", "strengths", "weaknesses"},
		"additionalProperties": false,
	}

	obj, err := s.ai.GenerateJSON(ctx,
		"You assess professional skill proficiency from a candidate's answer to a probing question. Level is 0 (none) to 5 (expert).",
		fmt.Sprintf("Skill: %s (category %s, difficulty %d/5)\n\nQuestion:\n%s\n\nAnswer:\n%s\n\nAssess the demonstrated proficiency.",
			skill.SkillName, skill.Category, skill.Difficulty, question, answer),
		"skill_evaluation", schema)
	if err != nil {
		s.log.Warn("Skill evaluation fell back to conservative default", "skill", skill.SkillName, "error", err)
		return FallbackSkillEvaluation()
	}

	eval := SkillEvaluation{
		Level:      clampLevel(asInt(obj["level"]), 0, 5),
		Confidence: clampFloat(asFloat(obj["confidence"]), 0, 1),
		Notes:      asString(obj["notes"]),
		Strengths:  asStringSlice(obj["strengths"]),
		Weaknesses: asStringSlice(obj["weaknesses"]),
	}
	return eval
}

func (s *advisorService) ExplainGap(ctx context.Context, gap GapResult, profile types.Profile) GapNarrative {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation":         map[string]any{"type": "string"},
			"recommended_actions": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required":             []string{"explanation", "recommended_actions"},
		"additionalProperties": false,
	}

	obj, err := s.ai.GenerateJSON(ctx,
		"You explain one professional skill gap in two or three sentences and suggest 2-4 concrete actions to close it. Do not restate numbers the caller already has.",
		fmt.Sprintf("Target role: %s (currently %s, %s years experience, intent %s, industry %s)\nSkill: %s\nCurrent level %d of target %d (impact %s).",
			profile.TargetRole, profile.CurrentRole, profile.YearsExperience, profile.CareerIntent, profile.Industry,
			gap.SkillName, gap.CurrentLevel, gap.TargetLevel, gap.Impact),
		"gap_narrative", schema)
	if err != nil {
		s.log.Warn("Gap narration fell back to computed values", "skill", gap.SkillName, "error", err)
		return FallbackGapNarrative(gap, profile)
	}

	narrative := GapNarrative{
		Explanation:        asString(obj["explanation"]),
		RecommendedActions: asStringSlice(obj["recommended_actions"]),
	}
	if narrative.Explanation == "" {
		return FallbackGapNarrative(gap, profile)
	}
	return narrative
}

func (s *advisorService) RecommendResources(ctx context.Context, skillName string, currentLevel, targetLevel int) []types.LearningResource {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"resources": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":             map[string]any{"type": "string"},
						"provider":          map[string]any{"type": "string"},
						"url":               map[string]any{"type": "string"},
						"cost":              map[string]any{"type": "string"},
						"type":              map[string]any{"type": "string"},
						"estimated_minutes": map[string]any{"type": "integer"},
					},
					"required":             []string{"title", "provider", "url", "cost", "type", "estimated_minutes"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"resources"},
		"additionalProperties": false,
	}

	obj, err := s.ai.GenerateJSON(ctx,
		"You recommend up to 5 high-quality learning resources (courses, books, docs, practice platforms) for one skill. Prefer well-known providers; include realistic URLs and time estimates.",
		fmt.Sprintf("Skill: %s. Learner is at level %d and needs to reach level %d (scale 0-5).", skillName, currentLevel, targetLevel),
		"resource_recommendations", schema)
	if err != nil {
		s.log.Warn("Resource recommendation fell back to placeholder", "skill", skillName, "error", err)
		return FallbackResources(skillName)
	}

	items, _ := obj["resources"].([]any)
	resources := make([]types.LearningResource, 0, len(items))
	for _, raw := range items {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		res := types.LearningResource{
			Title:            asString(m["title"]),
			Provider:         asString(m["provider"]),
			URL:              asString(m["url"]),
			Cost:             asString(m["cost"]),
			Type:             asString(m["type"]),
			EstimatedMinutes: asInt(m["estimated_minutes"]),
		}
		if res.Title == "" {
			continue
		}
		resources = append(resources, res)
		if len(resources) == 5 {
			break
		}
	}
	if len(resources) == 0 {
		return FallbackResources(skillName)
	}
	return resources
}

func (s *advisorService) PlanRoadmap(ctx context.Context, profile types.Profile, gaps []GapResult) RoadmapPlan {
	names := make([]string, 0, len(gaps))
	var sb strings.Builder
	for _, g := range gaps {
		names = append(names, g.SkillName)
		fmt.Fprintf(&sb, "- %s: level %d -> %d (%s impact, ~%d weeks)\n",
			g.SkillName, g.CurrentLevel, g.TargetLevel, g.Impact, g.EstimatedTimeWeeks)
	}

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       map[string]any{"type": "string"},
			"total_weeks": map[string]any{"type": "integer", "minimum": 1},
			"milestones": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"skill_name":  map[string]any{"type": "string", "enum": names},
						"week_number": map[string]any{"type": "integer", "minimum": 1},
						"title":       map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"resources":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
					"required":             []string{"skill_name", "week_number", "title", "description", "resources"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"title", "total_weeks", "milestones"},
		"additionalProperties": false,
	}

	obj, err := s.ai.GenerateJSON(ctx,
		"You design a week-by-week learning roadmap that closes the listed skill gaps, one milestone per skill per stretch of weeks, ordered so prerequisites come first. skill_name must be one of the listed skills.",
		fmt.Sprintf("Target role: %s (currently %s, %s years experience, intent %s, industry %s)\n\nGaps, highest priority first:\n%s",
			profile.TargetRole, profile.CurrentRole, profile.YearsExperience, profile.CareerIntent, profile.Industry, sb.String()),
		"roadmap_plan", schema)
	if err != nil {
		s.log.Warn("Roadmap planning fell back to deterministic plan", "target_role", profile.TargetRole, "error", err)
		return FallbackRoadmapPlan(profile, gaps)
	}

	plan := RoadmapPlan{
		Title:      asString(obj["title"]),
		TotalWeeks: asInt(obj["total_weeks"]),
	}
	items, _ := obj["milestones"].([]any)
	for _, raw := range items {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		pm := PlannedMilestone{
			SkillName:   asString(m["skill_name"]),
			WeekNumber:  maxInt(1, asInt(m["week_number"])),
			Title:       asString(m["title"]),
			Description: asString(m["description"]),
			Resources:   asStringSlice(m["resources"]),
		}
		if pm.SkillName == "" || pm.Title == "" {
			continue
		}
		plan.Milestones = append(plan.Milestones, pm)
	}
	if plan.Title == "" || len(plan.Milestones) == 0 {
		return FallbackRoadmapPlan(profile, gaps)
	}
	if plan.TotalWeeks < 1 {
		last := plan.Milestones[len(plan.Milestones)-1]
		plan.TotalWeeks = last.WeekNumber
	}
	return plan
}

func (s *advisorService) GenerateVerificationQuestion(ctx context.Context, skillName, milestoneContext string) VerificationQuestion {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question":        map[string]any{"type": "string"},
			"expected_topics": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"difficulty":      map[string]any{"type": "string"},
		},
		"required":             []string{"question", "expected_topics", "difficulty"},
		"additionalProperties": false,
	}

	obj, err := s.ai.GenerateJSON(ctx,
		"You write one open-ended verification question that checks whether a learner genuinely acquired a skill. The question should require applied understanding, not recall.",
		fmt.Sprintf("Skill: %s\nMilestone: %s", skillName, milestoneContext),
		"verification_question", schema)
	if err != nil {
		s.log.Warn("Verification question fell back to generic prompt", "skill", skillName, "error", err)
		return FallbackVerificationQuestion(skillName)
	}

	q := VerificationQuestion{
		Question:       asString(obj["question"]),
		ExpectedTopics: asStringSlice(obj["expected_topics"]),
		Difficulty:     asString(obj["difficulty"]),
	}
	if q.Question == "" {
		return FallbackVerificationQuestion(skillName)
	}
	return q
}

func (s *advisorService) ScoreVerificationAnswer(ctx context.Context, question, answer, skillName string) (VerificationScore, error) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"passed":    map[string]any{"type": "boolean"},
			"score":     map[string]any{"type": "number", "minimum": 0, "maximum": 1},
			"feedback":  map[string]any{"type": "string"},
			"new_level": map[string]any{"type": "integer", "minimum": 0, "maximum": 5},
		},
		"required":             []string{"passed", "score", "feedback", "new_level"},
		"additionalProperties": false,
	}

	obj, err := s.ai.GenerateJSON(ctx,
		"You grade a learner's answer to a skill verification question. Pass only if the answer demonstrates applied understanding. new_level is the proficiency (0-5) the answer demonstrates.",
		fmt.Sprintf("Skill: %s\n\nQuestion:\n%s\n\nAnswer:\n%s", skillName, question, answer),
		"verification_score", schema)
	if err != nil {
		return VerificationScore{}, fmt.Errorf("score verification answer: %w", err)
	}

	passed, _ := obj["passed"].(bool)
	return VerificationScore{
		Passed:   passed,
		Score:    clampFloat(asFloat(obj["score"]), 0, 1),
		Feedback: asString(obj["feedback"]),
		NewLevel: clampLevel(asInt(obj["new_level"]), 0, 5),
	}, nil
}

// ---- deterministic fallbacks ----

func FallbackSkillEvaluation() SkillEvaluation {
	return SkillEvaluation{
		Level:      2,
		Confidence: 0.3,
		Notes:      "Automatic evaluation was unavailable; a conservative level was assigned.",
	}
}

func FallbackGapNarrative(gap GapResult, profile types.Profile) GapNarrative {
	target := strings.TrimSpace(profile.TargetRole)
	if target == "" {
		target = "your target role"
	}
	return GapNarrative{
		Explanation: fmt.Sprintf("%s requires %s at level %d; your current level is %d, a gap of %d with %s impact.",
			target, gap.SkillName, gap.TargetLevel, gap.CurrentLevel, gap.GapSize, strings.ToLower(string(gap.Impact))),
		RecommendedActions: []string{
			fmt.Sprintf("Practice %s through hands-on projects over the next %d weeks", gap.SkillName, gap.EstimatedTimeWeeks),
			fmt.Sprintf("Seek feedback on %s from someone already in the role", gap.SkillName),
		},
	}
}

func FallbackResources(skillName string) []types.LearningResource {
	return []types.LearningResource{
		{
			Title:            fmt.Sprintf("Self-guided study plan for %s", skillName),
			Provider:         "Pathwise",
			URL:              "",
			Cost:             "free",
			Type:             "guide",
			EstimatedMinutes: 120,
		},
	}
}

// FallbackRoadmapPlan schedules one milestone per gap, highest priority
// first, each spanning its estimated weeks.
func FallbackRoadmapPlan(profile types.Profile, gaps []GapResult) RoadmapPlan {
	title := "Learning roadmap"
	if strings.TrimSpace(profile.TargetRole) != "" {
		title = fmt.Sprintf("Roadmap to %s", profile.TargetRole)
	}

	plan := RoadmapPlan{Title: title}
	week := 1
	for _, g := range gaps {
		plan.Milestones = append(plan.Milestones, PlannedMilestone{
			SkillName:   g.SkillName,
			WeekNumber:  week,
			Title:       fmt.Sprintf("Advance %s to level %d", g.SkillName, g.TargetLevel),
			Description: fmt.Sprintf("Close the %d-level gap in %s through deliberate practice and applied work.", g.GapSize, g.SkillName),
		})
		week += maxInt(1, g.EstimatedTimeWeeks)
	}
	plan.TotalWeeks = maxInt(1, week-1)
	return plan
}

func FallbackVerificationQuestion(skillName string) VerificationQuestion {
	return VerificationQuestion{
		Question:       fmt.Sprintf("Describe a recent situation where you applied %s. What did you do, what trade-offs did you weigh, and what was the outcome?", skillName),
		ExpectedTopics: []string{skillName},
		Difficulty:     "medium",
	}
}

// ---- loose JSON coercion ----

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	default:
		return 0
	}
}

func asInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(math.Round(t))
	case int:
		return t
	default:
		return 0
	}
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := asString(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
