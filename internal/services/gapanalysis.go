package services

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/types"
)

// GapInput is one per-skill proficiency observation fed to the analyzer.
// Difficulty is 1-5, CurrentLevel 0-5.
type GapInput struct {
	SkillID      uuid.UUID
	SkillName    string
	Category     types.SkillCategory
	Difficulty   int
	CurrentLevel int
}

// GapResult is the computed sizing for a single skill gap.
type GapResult struct {
	SkillID            uuid.UUID
	SkillName          string
	CurrentLevel       int
	TargetLevel        int
	GapSize            int
	Impact             types.GapImpact
	EstimatedTimeWeeks int
	Priority           int
}

// GapAnalysis is the full deterministic result over one assessment's inputs.
type GapAnalysis struct {
	ReadinessScore int
	Gaps           []GapResult
	Strengths      []string
}

// AnalyzeGaps is pure: no I/O, fully reproducible from its inputs. Gaps hold
// only skills whose target exceeds the current level, sorted by priority
// descending; every other skill's name lands in Strengths.
func AnalyzeGaps(profile types.Profile, skills []GapInput) GapAnalysis {
	leadership := isLeadershipRole(profile)
	expAdj := experienceAdjustment(profile.YearsExperience)

	var out GapAnalysis
	var weightedTarget, weightedCurrent float64

	for _, s := range skills {
		weight := categoryWeight(s.Category, profile.CareerIntent, leadership)

		bonus := 0
		if leadership && (s.Category == types.SkillCategorySoft || s.Category == types.SkillCategoryMeta) {
			bonus = 1
		}

		targetLevel := clampLevel(int(math.Round(float64(s.Difficulty+expAdj+bonus))), 1, 5)
		gapSize := targetLevel - s.CurrentLevel
		if gapSize < 0 {
			gapSize = 0
		}

		// Over-performance cannot push readiness past 100.
		weightedTarget += float64(targetLevel) * weight
		counted := s.CurrentLevel
		if counted > targetLevel {
			counted = targetLevel
		}
		weightedCurrent += float64(counted) * weight

		if gapSize == 0 {
			out.Strengths = append(out.Strengths, s.SkillName)
			continue
		}

		gapRatio := 0.0
		if targetLevel > 0 {
			gapRatio = float64(gapSize) / float64(targetLevel)
		}

		out.Gaps = append(out.Gaps, GapResult{
			SkillID:            s.SkillID,
			SkillName:          s.SkillName,
			CurrentLevel:       s.CurrentLevel,
			TargetLevel:        targetLevel,
			GapSize:            gapSize,
			Impact:             impactFor(gapRatio),
			EstimatedTimeWeeks: maxInt(1, int(math.Ceil(float64(gapSize)*weight))),
			Priority:           int(math.Round(float64(gapSize) * weight * 10)),
		})
	}

	sort.SliceStable(out.Gaps, func(i, j int) bool {
		return out.Gaps[i].Priority > out.Gaps[j].Priority
	})

	if weightedTarget > 0 {
		out.ReadinessScore = int(math.Round(100 * weightedCurrent / weightedTarget))
	}
	return out
}

func experienceAdjustment(yearsExperience string) int {
	switch strings.TrimSpace(yearsExperience) {
	case "0-2":
		return -1
	case "10+":
		return 1
	default:
		return 0
	}
}

func isLeadershipRole(profile types.Profile) bool {
	if profile.CareerIntent == types.CareerIntentLeadership {
		return true
	}
	target := strings.ToLower(profile.TargetRole)
	return strings.Contains(target, "lead") || strings.Contains(target, "manager")
}

func categoryWeight(category types.SkillCategory, intent types.CareerIntent, leadership bool) float64 {
	switch category {
	case types.SkillCategorySoft, types.SkillCategoryMeta:
		if intent == types.CareerIntentLeadership {
			return 1.4
		}
		if leadership {
			return 1.2
		}
		return 1.0
	default:
		if intent == types.CareerIntentSwitch {
			return 1.3
		}
		return 1.0
	}
}

func impactFor(gapRatio float64) types.GapImpact {
	switch {
	case gapRatio >= 0.6:
		return types.GapImpactCritical
	case gapRatio >= 0.35:
		return types.GapImpactHigh
	case gapRatio > 0:
		return types.GapImpactMedium
	default:
		return types.GapImpactNone
	}
}

func clampLevel(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
