package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Equipment slots. One item per slot.
var Slots = []string{"weapon", "accessory", "armor", "helmet", "pants", "shoes"}

// SlotNames maps slot keys to display names.
var SlotNames = map[string]string{
	"weapon":    "武器",
	"accessory": "饰品",
	"armor":     "铠甲",
	"helmet":    "头盔",
	"pants":     "护腿",
	"shoes":     "战靴",
}

// SlotExists reports whether the slot key is a known equipment slot.
func SlotExists(slot string) bool {
	_, ok := SlotNames[slot]
	return ok
}

// Rarity tiers, lowest to highest.
var Rarities = []string{"普通", "精良", "卓越", "史诗", "神器"}

// RarityTop is the highest tier (artifact templates always roll this).
const RarityTop = "神器"

// RarityIndex returns the tier position of a rarity, -1 if unknown.
func RarityIndex(rarity string) int {
	for i, r := range Rarities {
		if r == rarity {
			return i
		}
	}
	return -1
}

// EquipmentTemplate holds static data for one equipment type loaded from YAML.
type EquipmentTemplate struct {
	TemplateID    string             `yaml:"template_id"`
	Name          string             `yaml:"name"`
	Slot          string             `yaml:"slot"`
	Description   string             `yaml:"description"`
	IsBound       bool               `yaml:"is_bound"`
	LevelRequired int                `yaml:"level_required"`
	ClassRequired string             `yaml:"class_required"` // empty = any class
	BasePrice     int64              `yaml:"base_price"`
	IsArtifact    bool               `yaml:"is_artifact"`
	BaseStats     StatBlock          `yaml:"base_stats"`
	MaxExtraStats map[string]float64 `yaml:"max_extra_stats"`
}

type equipmentTemplateFile struct {
	Templates []EquipmentTemplate `yaml:"templates"`
}

// EquipmentTemplateTable holds all equipment templates indexed by template ID.
type EquipmentTemplateTable struct {
	templates map[string]*EquipmentTemplate
}

// LoadEquipmentTemplates loads equipment templates from a YAML file.
func LoadEquipmentTemplates(path string) (*EquipmentTemplateTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read equipment_templates: %w", err)
	}
	var f equipmentTemplateFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse equipment_templates: %w", err)
	}
	t := &EquipmentTemplateTable{templates: make(map[string]*EquipmentTemplate, len(f.Templates))}
	for i := range f.Templates {
		tmpl := &f.Templates[i]
		if tmpl.LevelRequired <= 0 {
			tmpl.LevelRequired = 1
		}
		t.templates[tmpl.TemplateID] = tmpl
	}
	return t, nil
}

// Get returns a template by ID, or nil if not found.
func (t *EquipmentTemplateTable) Get(templateID string) *EquipmentTemplate {
	return t.templates[templateID]
}

// Count returns the number of loaded templates.
func (t *EquipmentTemplateTable) Count() int {
	return len(t.templates)
}
