package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/types"
)

func TestAnalyzeGaps_HardSkillSeniorNeutralIntent(t *testing.T) {
	profile := types.Profile{
		TargetRole:      "Staff Engineer",
		YearsExperience: "10+",
		CareerIntent:    types.CareerIntentGrowth,
	}
	out := AnalyzeGaps(profile, []GapInput{
		{SkillID: uuid.New(), SkillName: "System Architecture", Category: types.SkillCategoryHard, Difficulty: 5, CurrentLevel: 2},
	})

	if len(out.Gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(out.Gaps))
	}
	g := out.Gaps[0]
	if g.TargetLevel != 5 {
		t.Fatalf("expected target level 5, got %d", g.TargetLevel)
	}
	if g.GapSize != 3 {
		t.Fatalf("expected gap size 3, got %d", g.GapSize)
	}
	if g.Impact != types.GapImpactCritical {
		t.Fatalf("expected CRITICAL impact, got %s", g.Impact)
	}
	if g.EstimatedTimeWeeks != 3 {
		t.Fatalf("expected 3 weeks, got %d", g.EstimatedTimeWeeks)
	}
	if g.Priority != 30 {
		t.Fatalf("expected priority 30, got %d", g.Priority)
	}
}

func TestAnalyzeGaps_SoftSkillLeadershipIntent(t *testing.T) {
	profile := types.Profile{
		TargetRole:   "Engineering Manager",
		CareerIntent: types.CareerIntentLeadership,
	}
	out := AnalyzeGaps(profile, []GapInput{
		{SkillID: uuid.New(), SkillName: "Team Collaboration", Category: types.SkillCategorySoft, Difficulty: 2, CurrentLevel: 1},
	})

	if len(out.Gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(out.Gaps))
	}
	g := out.Gaps[0]
	if g.TargetLevel != 3 {
		t.Fatalf("expected target level 3 (difficulty 2 + leadership bonus), got %d", g.TargetLevel)
	}
	if g.GapSize != 2 {
		t.Fatalf("expected gap size 2, got %d", g.GapSize)
	}
	if g.Impact != types.GapImpactCritical {
		t.Fatalf("expected CRITICAL impact at ratio 2/3, got %s", g.Impact)
	}
	if g.EstimatedTimeWeeks != 3 {
		t.Fatalf("expected ceil(2*1.4)=3 weeks, got %d", g.EstimatedTimeWeeks)
	}
	if g.Priority != 28 {
		t.Fatalf("expected priority round(2*1.4*10)=28, got %d", g.Priority)
	}
}

func TestAnalyzeGaps_ReadinessScenarioAggregate(t *testing.T) {
	// Targets work out to 5 (hard, weight 1.0) and 3 (soft + bonus,
	// weight 1.4): weightedTarget = 5 + 4.2 = 9.2, weightedCurrent =
	// 2 + 1.4 = 3.4, readiness = round(100*3.4/9.2) = 37.
	profile := types.Profile{
		TargetRole:   "Engineering Manager",
		CareerIntent: types.CareerIntentLeadership,
	}
	out := AnalyzeGaps(profile, []GapInput{
		{SkillID: uuid.New(), SkillName: "System Architecture", Category: types.SkillCategoryHard, Difficulty: 5, CurrentLevel: 2},
		{SkillID: uuid.New(), SkillName: "Team Collaboration", Category: types.SkillCategorySoft, Difficulty: 2, CurrentLevel: 1},
	})
	if out.ReadinessScore != 37 {
		t.Fatalf("expected readiness 37, got %d", out.ReadinessScore)
	}
}

func TestAnalyzeGaps_SwitchIntentWeightsHardSkills(t *testing.T) {
	profile := types.Profile{
		TargetRole:   "Data Engineer",
		CareerIntent: types.CareerIntentSwitch,
	}
	out := AnalyzeGaps(profile, []GapInput{
		{SkillID: uuid.New(), SkillName: "SQL", Category: types.SkillCategoryHard, Difficulty: 3, CurrentLevel: 1},
	})
	if len(out.Gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(out.Gaps))
	}
	g := out.Gaps[0]
	// gapSize 2, weight 1.3: weeks ceil(2.6)=3, priority round(26)=26
	if g.EstimatedTimeWeeks != 3 {
		t.Fatalf("expected 3 weeks, got %d", g.EstimatedTimeWeeks)
	}
	if g.Priority != 26 {
		t.Fatalf("expected priority 26, got %d", g.Priority)
	}
}

func TestAnalyzeGaps_LeadershipRoleDetectedFromTargetRole(t *testing.T) {
	profile := types.Profile{
		TargetRole:   "Tech Lead",
		CareerIntent: types.CareerIntentGrowth,
	}
	out := AnalyzeGaps(profile, []GapInput{
		{SkillID: uuid.New(), SkillName: "Communication", Category: types.SkillCategorySoft, Difficulty: 2, CurrentLevel: 0},
	})
	if len(out.Gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(out.Gaps))
	}
	g := out.Gaps[0]
	// Leadership role without LEADERSHIP intent: bonus +1, weight 1.2.
	if g.TargetLevel != 3 {
		t.Fatalf("expected target 3, got %d", g.TargetLevel)
	}
	if g.Priority != 36 {
		t.Fatalf("expected priority round(3*1.2*10)=36, got %d", g.Priority)
	}
}

func TestAnalyzeGaps_JuniorAdjustmentLowersTarget(t *testing.T) {
	profile := types.Profile{
		TargetRole:      "Backend Engineer",
		YearsExperience: "0-2",
		CareerIntent:    types.CareerIntentGrowth,
	}
	out := AnalyzeGaps(profile, []GapInput{
		{SkillID: uuid.New(), SkillName: "Distributed Systems", Category: types.SkillCategoryHard, Difficulty: 5, CurrentLevel: 4},
	})
	// target clamp(5-1)=4, current 4: no gap, counts as strength.
	if len(out.Gaps) != 0 {
		t.Fatalf("expected no gaps, got %d", len(out.Gaps))
	}
	if len(out.Strengths) != 1 || out.Strengths[0] != "Distributed Systems" {
		t.Fatalf("expected Distributed Systems as strength, got %v", out.Strengths)
	}
	if out.ReadinessScore != 100 {
		t.Fatalf("expected readiness 100, got %d", out.ReadinessScore)
	}
}

func TestAnalyzeGaps_TargetNeverBelowOne(t *testing.T) {
	profile := types.Profile{YearsExperience: "0-2", CareerIntent: types.CareerIntentGrowth}
	out := AnalyzeGaps(profile, []GapInput{
		{SkillID: uuid.New(), SkillName: "Version Control", Category: types.SkillCategoryHard, Difficulty: 1, CurrentLevel: 0},
	})
	if len(out.Gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(out.Gaps))
	}
	if out.Gaps[0].TargetLevel != 1 {
		t.Fatalf("expected target clamped to 1, got %d", out.Gaps[0].TargetLevel)
	}
}

func TestAnalyzeGaps_OverPerformanceCappedAtTarget(t *testing.T) {
	profile := types.Profile{CareerIntent: types.CareerIntentGrowth}
	out := AnalyzeGaps(profile, []GapInput{
		{SkillID: uuid.New(), SkillName: "Git", Category: types.SkillCategoryHard, Difficulty: 2, CurrentLevel: 5},
		{SkillID: uuid.New(), SkillName: "SQL", Category: types.SkillCategoryHard, Difficulty: 2, CurrentLevel: 2},
	})
	if len(out.Gaps) != 0 {
		t.Fatalf("expected no gaps, got %d", len(out.Gaps))
	}
	if out.ReadinessScore != 100 {
		t.Fatalf("over-performance must not exceed 100, got %d", out.ReadinessScore)
	}
}

func TestAnalyzeGaps_SortedByPriorityDescending(t *testing.T) {
	profile := types.Profile{CareerIntent: types.CareerIntentGrowth}
	out := AnalyzeGaps(profile, []GapInput{
		{SkillID: uuid.New(), SkillName: "Small", Category: types.SkillCategoryHard, Difficulty: 3, CurrentLevel: 2},
		{SkillID: uuid.New(), SkillName: "Big", Category: types.SkillCategoryHard, Difficulty: 5, CurrentLevel: 1},
		{SkillID: uuid.New(), SkillName: "Mid", Category: types.SkillCategoryHard, Difficulty: 4, CurrentLevel: 2},
	})
	if len(out.Gaps) != 3 {
		t.Fatalf("expected 3 gaps, got %d", len(out.Gaps))
	}
	for i := 1; i < len(out.Gaps); i++ {
		if out.Gaps[i-1].Priority < out.Gaps[i].Priority {
			t.Fatalf("gaps not sorted by priority desc: %d before %d", out.Gaps[i-1].Priority, out.Gaps[i].Priority)
		}
	}
	if out.Gaps[0].SkillName != "Big" {
		t.Fatalf("expected Big first, got %s", out.Gaps[0].SkillName)
	}
}

func TestAnalyzeGaps_EmptyInput(t *testing.T) {
	out := AnalyzeGaps(types.Profile{}, nil)
	if out.ReadinessScore != 0 {
		t.Fatalf("expected readiness 0 with no skills, got %d", out.ReadinessScore)
	}
	if len(out.Gaps) != 0 || len(out.Strengths) != 0 {
		t.Fatalf("expected empty result, got %+v", out)
	}
}

func TestAnalyzeGaps_Deterministic(t *testing.T) {
	profile := types.Profile{
		TargetRole:      "Engineering Manager",
		YearsExperience: "3-5",
		CareerIntent:    types.CareerIntentLeadership,
	}
	inputs := []GapInput{
		{SkillID: uuid.New(), SkillName: "System Architecture", Category: types.SkillCategoryHard, Difficulty: 5, CurrentLevel: 2},
		{SkillID: uuid.New(), SkillName: "Mentoring", Category: types.SkillCategorySoft, Difficulty: 3, CurrentLevel: 1},
		{SkillID: uuid.New(), SkillName: "Learning Agility", Category: types.SkillCategoryMeta, Difficulty: 2, CurrentLevel: 4},
	}
	a := AnalyzeGaps(profile, inputs)
	b := AnalyzeGaps(profile, inputs)
	if a.ReadinessScore != b.ReadinessScore || len(a.Gaps) != len(b.Gaps) {
		t.Fatalf("analysis not reproducible: %+v vs %+v", a, b)
	}
	for i := range a.Gaps {
		if a.Gaps[i] != b.Gaps[i] {
			t.Fatalf("gap %d differs between runs", i)
		}
	}
}

func TestImpactThresholds(t *testing.T) {
	cases := []struct {
		ratio float64
		want  types.GapImpact
	}{
		{0.6, types.GapImpactCritical},
		{0.75, types.GapImpactCritical},
		{0.35, types.GapImpactHigh},
		{0.5, types.GapImpactHigh},
		{0.1, types.GapImpactMedium},
		{0, types.GapImpactNone},
	}
	for _, c := range cases {
		if got := impactFor(c.ratio); got != c.want {
			t.Fatalf("impactFor(%v) = %s, want %s", c.ratio, got, c.want)
		}
	}
}

func TestExperienceAdjustment(t *testing.T) {
	if got := experienceAdjustment("0-2"); got != -1 {
		t.Fatalf("expected -1 for 0-2, got %d", got)
	}
	if got := experienceAdjustment("10+"); got != 1 {
		t.Fatalf("expected +1 for 10+, got %d", got)
	}
	if got := experienceAdjustment("3-5"); got != 0 {
		t.Fatalf("expected 0 for 3-5, got %d", got)
	}
	if got := experienceAdjustment(""); got != 0 {
		t.Fatalf("expected 0 for empty, got %d", got)
	}
}
