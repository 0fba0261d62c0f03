package data

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// AttackSkillID is the always-available basic attack. It is not a catalog
// entry; the combat resolver special-cases it.
const AttackSkillID = "attack"

// SkillMaxLevel is the cap on a skill's own level counter.
const SkillMaxLevel = 10

// SkillDef holds static data for one skill loaded from YAML.
// Damage rate and mana cost scale with the skill's level counter only.
type SkillDef struct {
	SkillID            string  `yaml:"skill_id"`
	Name               string  `yaml:"name"`
	ClassRequired      string  `yaml:"class_required"` // empty = universal
	Description        string  `yaml:"description"`
	EffectDescription  string  `yaml:"effect_description"`
	BaseDamageRate     float64 `yaml:"base_damage_rate"`
	BaseManaCost       int     `yaml:"base_mana_cost"`
	DamageRatePerLevel float64 `yaml:"damage_rate_per_level"`
	ManaCostPerLevel   int     `yaml:"mana_cost_per_level"`
	Hits               int     `yaml:"hits"`
	MaxLevel           int     `yaml:"max_level"`
	UpgradeExpBase     int64   `yaml:"upgrade_exp_base"`
	UpgradeMoneyBase   int64   `yaml:"upgrade_money_base"`
}

// DamageRateAt returns the damage multiplier at a skill level.
func (s *SkillDef) DamageRateAt(level int) float64 {
	if level < 1 {
		level = 1
	}
	return s.BaseDamageRate + float64(level-1)*s.DamageRatePerLevel
}

// ManaCostAt returns the mana cost at a skill level.
func (s *SkillDef) ManaCostAt(level int) int {
	if level < 1 {
		level = 1
	}
	return s.BaseManaCost + (level-1)*s.ManaCostPerLevel
}

// UpgradeCost returns the experience and money cost to advance from the
// given level. Both grow as base × level × (1 + level×0.1), floored.
func (s *SkillDef) UpgradeCost(level int) (exp int64, money int64) {
	factor := float64(level) * (1 + float64(level)*0.1)
	exp = int64(math.Floor(float64(s.UpgradeExpBase) * factor))
	money = int64(math.Floor(float64(s.UpgradeMoneyBase) * factor))
	return exp, money
}

type skillFile struct {
	Skills []SkillDef `yaml:"skills"`
}

// SkillTable holds all skill definitions indexed by skill ID.
type SkillTable struct {
	skills map[string]*SkillDef
}

// LoadSkills loads skill definitions from a YAML file.
func LoadSkills(path string) (*SkillTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read skills: %w", err)
	}
	var f skillFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse skills: %w", err)
	}
	t := &SkillTable{skills: make(map[string]*SkillDef, len(f.Skills))}
	for i := range f.Skills {
		sk := &f.Skills[i]
		if sk.Hits <= 0 {
			sk.Hits = 1
		}
		if sk.MaxLevel <= 0 {
			sk.MaxLevel = SkillMaxLevel
		}
		if sk.UpgradeExpBase <= 0 {
			sk.UpgradeExpBase = 100
		}
		if sk.UpgradeMoneyBase <= 0 {
			sk.UpgradeMoneyBase = 1000
		}
		t.skills[sk.SkillID] = sk
	}
	return t, nil
}

// Get returns a skill definition by ID, or nil if not found.
func (t *SkillTable) Get(skillID string) *SkillDef {
	return t.skills[skillID]
}

// Count returns the number of loaded skill definitions.
func (t *SkillTable) Count() int {
	return len(t.skills)
}

// ForClass returns the skills learnable by a class (class skills plus
// universal skills).
func (t *SkillTable) ForClass(class string) []*SkillDef {
	var out []*SkillDef
	for _, sk := range t.skills {
		if sk.ClassRequired == "" || sk.ClassRequired == class {
			out = append(out, sk)
		}
	}
	return out
}
