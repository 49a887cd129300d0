package seed

import (
	"context"
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/repos"
	"github.com/pathwise/pathwise-backend/internal/types"
)

const catalogPathEnv = "SKILL_CATALOG_YAML"

//go:embed skills.yaml
var catalogFS embed.FS

type CatalogSkill struct {
	Slug       string `yaml:"slug"`
	Name       string `yaml:"name"`
	Category   string `yaml:"category"`
	Difficulty int    `yaml:"difficulty"`
}

type catalogFile struct {
	Skills []CatalogSkill `yaml:"skills"`
}

// LoadCatalog reads the skill catalog from SKILL_CATALOG_YAML when set,
// otherwise from the embedded default. Difficulty is validated against the
// 1-5 scale the analyzer's target-level clamp assumes.
func LoadCatalog() ([]CatalogSkill, error) {
	var raw []byte
	var err error
	if path := strings.TrimSpace(os.Getenv(catalogPathEnv)); path != "" {
		raw, err = os.ReadFile(path)
	} else {
		raw, err = catalogFS.ReadFile("skills.yaml")
	}
	if err != nil {
		return nil, fmt.Errorf("read skill catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse skill catalog: %w", err)
	}
	if len(file.Skills) == 0 {
		return nil, fmt.Errorf("skill catalog is empty")
	}

	seen := make(map[string]bool, len(file.Skills))
	for i, s := range file.Skills {
		if strings.TrimSpace(s.Slug) == "" || strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("catalog entry %d missing slug or name", i)
		}
		if seen[s.Slug] {
			return nil, fmt.Errorf("duplicate catalog slug %q", s.Slug)
		}
		seen[s.Slug] = true
		if !types.SkillCategory(s.Category).Valid() {
			return nil, fmt.Errorf("catalog entry %q has unknown category %q", s.Slug, s.Category)
		}
		if s.Difficulty < 1 || s.Difficulty > 5 {
			return nil, fmt.Errorf("catalog entry %q has difficulty %d outside [1,5]", s.Slug, s.Difficulty)
		}
	}
	return file.Skills, nil
}

// SeedSkills upserts the catalog by slug; reruns refresh names, categories
// and difficulties without duplicating rows.
func SeedSkills(ctx context.Context, skillRepo repos.SkillRepo, log *logger.Logger) error {
	catalog, err := LoadCatalog()
	if err != nil {
		return err
	}
	for _, s := range catalog {
		row := &types.Skill{
			Slug:       s.Slug,
			Name:       s.Name,
			Category:   types.SkillCategory(s.Category),
			Difficulty: s.Difficulty,
		}
		if err := skillRepo.UpsertBySlug(ctx, nil, row); err != nil {
			return fmt.Errorf("seed skill %q: %w", s.Slug, err)
		}
	}
	log.Info("Skill catalog seeded", "skills", len(catalog))
	return nil
}
