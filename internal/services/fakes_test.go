package services

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/pathwise/pathwise-backend/internal/types"
)

// memStore holds shared in-memory state; the mem* adapters below implement
// the repo interfaces over it. Adapters ignore tx handles, so rollback
// semantics are not exercised by these tests.
type memStore struct {
	assessments  map[uuid.UUID]*types.Assessment
	observations []*types.SkillObservation
	snapshots    map[uuid.UUID]*types.GapSnapshot
	cache        map[string]*types.ResourceCacheEntry
	roadmaps     map[uuid.UUID]*types.Roadmap
	milestones   map[uuid.UUID]*types.Milestone
	progress     []*types.MilestoneProgress
	history      []*types.SkillHistoryRecord
	skills       map[uuid.UUID]*types.Skill
}

func newMemStore() *memStore {
	return &memStore{
		assessments: make(map[uuid.UUID]*types.Assessment),
		snapshots:   make(map[uuid.UUID]*types.GapSnapshot),
		cache:       make(map[string]*types.ResourceCacheEntry),
		roadmaps:    make(map[uuid.UUID]*types.Roadmap),
		milestones:  make(map[uuid.UUID]*types.Milestone),
		skills:      make(map[uuid.UUID]*types.Skill),
	}
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func (m *memStore) snapshotByAssessment(assessmentID uuid.UUID) *types.GapSnapshot {
	for _, s := range m.snapshots {
		if s.AssessmentID == assessmentID {
			return s
		}
	}
	return nil
}

// stubAdvisor satisfies AdvisorService with canned outputs, falling back to
// the deterministic defaults when nothing is scripted.
type stubAdvisor struct {
	evaluation     *SkillEvaluation
	plan           *RoadmapPlan
	resources      []types.LearningResource
	question       *VerificationQuestion
	score          VerificationScore
	scoreErr       error
	explainCalls   int
	recommendCalls int
}

func (a *stubAdvisor) EvaluateSkill(_ context.Context, _, _ string, _ GapInput) SkillEvaluation {
	if a.evaluation != nil {
		return *a.evaluation
	}
	return FallbackSkillEvaluation()
}

func (a *stubAdvisor) ExplainGap(_ context.Context, gap GapResult, profile types.Profile) GapNarrative {
	a.explainCalls++
	return FallbackGapNarrative(gap, profile)
}

func (a *stubAdvisor) RecommendResources(_ context.Context, skillName string, _, _ int) []types.LearningResource {
	a.recommendCalls++
	if a.resources != nil {
		return a.resources
	}
	return FallbackResources(skillName)
}

func (a *stubAdvisor) PlanRoadmap(_ context.Context, profile types.Profile, gaps []GapResult) RoadmapPlan {
	if a.plan != nil {
		return *a.plan
	}
	return FallbackRoadmapPlan(profile, gaps)
}

func (a *stubAdvisor) GenerateVerificationQuestion(_ context.Context, skillName, _ string) VerificationQuestion {
	if a.question != nil {
		return *a.question
	}
	return FallbackVerificationQuestion(skillName)
}

func (a *stubAdvisor) ScoreVerificationAnswer(_ context.Context, _, _, _ string) (VerificationScore, error) {
	return a.score, a.scoreErr
}

type memAssessments struct{ s *memStore }

func (m memAssessments) Create(_ context.Context, _ *gorm.DB, row *types.Assessment) (*types.Assessment, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.CreatedAt = time.Now().UTC()
	m.s.assessments[row.ID] = row
	return row, nil
}

func (m memAssessments) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Assessment, error) {
	return m.s.assessments[id], nil
}

func (m memAssessments) MarkCompleted(_ context.Context, _ *gorm.DB, id uuid.UUID, at time.Time) error {
	a, ok := m.s.assessments[id]
	if !ok {
		return fmt.Errorf("assessment %s not found", id)
	}
	a.Status = types.AssessmentStatusCompleted
	a.CompletedAt = &at
	return nil
}

type memObservations struct{ s *memStore }

func (m memObservations) CreateBulk(_ context.Context, _ *gorm.DB, rows []*types.SkillObservation) ([]*types.SkillObservation, error) {
	for _, r := range rows {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		m.s.observations = append(m.s.observations, r)
	}
	return rows, nil
}

func (m memObservations) GetByAssessmentID(_ context.Context, _ *gorm.DB, assessmentID uuid.UUID) ([]*types.SkillObservation, error) {
	var out []*types.SkillObservation
	for _, r := range m.s.observations {
		if r.AssessmentID == assessmentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m memObservations) GetByAssessmentAndSkill(_ context.Context, _ *gorm.DB, assessmentID, skillID uuid.UUID) (*types.SkillObservation, error) {
	for _, r := range m.s.observations {
		if r.AssessmentID == assessmentID && r.SkillID == skillID {
			return r, nil
		}
	}
	return nil, nil
}

func (m memObservations) UpdateLevel(_ context.Context, _ *gorm.DB, id uuid.UUID, level int, confidence float64, source string) error {
	for _, r := range m.s.observations {
		if r.ID == id {
			r.CurrentLevel = level
			r.Confidence = confidence
			r.Source = source
			return nil
		}
	}
	return fmt.Errorf("observation %s not found", id)
}

type memSnapshots struct{ s *memStore }

func (m memSnapshots) Upsert(_ context.Context, _ *gorm.DB, row *types.GapSnapshot) error {
	if existing := m.s.snapshotByAssessment(row.AssessmentID); existing != nil {
		existing.ReadinessScore = row.ReadinessScore
		existing.Strengths = row.Strengths
		existing.OverallRecommendation = row.OverallRecommendation
		row.ID = existing.ID
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	m.s.snapshots[row.ID] = row
	return nil
}

func (m memSnapshots) ReplaceItems(_ context.Context, _ *gorm.DB, snapshotID uuid.UUID, items []*types.GapItem) error {
	snap, ok := m.s.snapshots[snapshotID]
	if !ok {
		return fmt.Errorf("snapshot %s not found", snapshotID)
	}
	for _, it := range items {
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		it.SnapshotID = snapshotID
	}
	snap.Gaps = items
	return nil
}

func (m memSnapshots) GetByAssessmentID(_ context.Context, _ *gorm.DB, assessmentID uuid.UUID) (*types.GapSnapshot, error) {
	return m.s.snapshotByAssessment(assessmentID), nil
}

func (m memSnapshots) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.GapSnapshot, error) {
	return m.s.snapshots[id], nil
}

type memCache struct{ s *memStore }

func cacheKey(snapshotID, skillID uuid.UUID) string {
	return snapshotID.String() + "/" + skillID.String()
}

func (m memCache) Get(_ context.Context, _ *gorm.DB, snapshotID, skillID uuid.UUID) (*types.ResourceCacheEntry, error) {
	return m.s.cache[cacheKey(snapshotID, skillID)], nil
}

func (m memCache) Upsert(_ context.Context, _ *gorm.DB, row *types.ResourceCacheEntry) error {
	key := cacheKey(row.SnapshotID, row.SkillID)
	if existing, ok := m.s.cache[key]; ok {
		existing.Resources = row.Resources
		row.ID = existing.ID
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	m.s.cache[key] = row
	return nil
}

type memRoadmaps struct{ s *memStore }

func (m memRoadmaps) CreateWithMilestones(_ context.Context, _ *gorm.DB, row *types.Roadmap, milestones []*types.Milestone) (*types.Roadmap, error) {
	for _, existing := range m.s.roadmaps {
		if existing.AssessmentID == row.AssessmentID {
			return nil, fmt.Errorf("duplicate roadmap for assessment %s", row.AssessmentID)
		}
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	m.s.roadmaps[row.ID] = row
	for _, ms := range milestones {
		if ms.ID == uuid.Nil {
			ms.ID = uuid.New()
		}
		ms.RoadmapID = row.ID
		m.s.milestones[ms.ID] = ms
	}
	row.Milestones = milestones
	return row, nil
}

func (m memRoadmaps) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Roadmap, error) {
	return m.s.roadmaps[id], nil
}

func (m memRoadmaps) GetByAssessmentID(_ context.Context, _ *gorm.DB, assessmentID uuid.UUID) (*types.Roadmap, error) {
	for _, r := range m.s.roadmaps {
		if r.AssessmentID == assessmentID {
			return r, nil
		}
	}
	return nil, nil
}

func (m memRoadmaps) SetCompletedAt(_ context.Context, _ *gorm.DB, id uuid.UUID, at time.Time) error {
	r, ok := m.s.roadmaps[id]
	if !ok {
		return fmt.Errorf("roadmap %s not found", id)
	}
	if r.CompletedAt == nil {
		r.CompletedAt = &at
	}
	return nil
}

type memMilestones struct{ s *memStore }

func (m memMilestones) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Milestone, error) {
	return m.s.milestones[id], nil
}

func (m memMilestones) GetByRoadmapID(_ context.Context, _ *gorm.DB, roadmapID uuid.UUID) ([]*types.Milestone, error) {
	var out []*types.Milestone
	for _, ms := range m.s.milestones {
		if ms.RoadmapID == roadmapID {
			out = append(out, ms)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekNumber < out[j].WeekNumber })
	return out, nil
}

func (m memMilestones) MarkCompleted(_ context.Context, _ *gorm.DB, id uuid.UUID, at time.Time) error {
	ms, ok := m.s.milestones[id]
	if !ok {
		return fmt.Errorf("milestone %s not found", id)
	}
	if ms.Status != types.MilestoneStatusCompleted {
		ms.Status = types.MilestoneStatusCompleted
		ms.UpdatedAt = at
	}
	return nil
}

type memProgress struct{ s *memStore }

func (m memProgress) Create(_ context.Context, _ *gorm.DB, row *types.MilestoneProgress) (*types.MilestoneProgress, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.CreatedAt = time.Now().UTC()
	m.s.progress = append(m.s.progress, row)
	return row, nil
}

func (m memProgress) GetByMilestoneID(_ context.Context, _ *gorm.DB, milestoneID uuid.UUID) ([]*types.MilestoneProgress, error) {
	var out []*types.MilestoneProgress
	for _, p := range m.s.progress {
		if p.MilestoneID == milestoneID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memHistory struct{ s *memStore }

func (m memHistory) Create(_ context.Context, _ *gorm.DB, row *types.SkillHistoryRecord) (*types.SkillHistoryRecord, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	m.s.history = append(m.s.history, row)
	return row, nil
}

// GetByUserID returns rows newest first, ties broken by insertion order,
// matching the created_at DESC ordering of the real repo.
func (m memHistory) GetByUserID(_ context.Context, _ *gorm.DB, userID uuid.UUID) ([]*types.SkillHistoryRecord, error) {
	var out []*types.SkillHistoryRecord
	for i := len(m.s.history) - 1; i >= 0; i-- {
		if m.s.history[i].UserID == userID {
			out = append(out, m.s.history[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type memSkills struct{ s *memStore }

func (m memSkills) UpsertBySlug(_ context.Context, _ *gorm.DB, row *types.Skill) error {
	for _, sk := range m.s.skills {
		if sk.Slug == row.Slug {
			sk.Name = row.Name
			sk.Category = row.Category
			sk.Difficulty = row.Difficulty
			row.ID = sk.ID
			return nil
		}
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	m.s.skills[row.ID] = row
	return nil
}

func (m memSkills) List(_ context.Context, _ *gorm.DB) ([]*types.Skill, error) {
	out := make([]*types.Skill, 0, len(m.s.skills))
	for _, sk := range m.s.skills {
		out = append(out, sk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m memSkills) GetByIDs(_ context.Context, _ *gorm.DB, ids []uuid.UUID) ([]*types.Skill, error) {
	var out []*types.Skill
	for _, id := range ids {
		if sk, ok := m.s.skills[id]; ok {
			out = append(out, sk)
		}
	}
	return out, nil
}
