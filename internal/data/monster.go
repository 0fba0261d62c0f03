package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MonsterStats are a monster's base combat stats. Health/mana are totals,
// not per-level rates.
type MonsterStats struct {
	Health    float64 `yaml:"health"`
	Mana      float64 `yaml:"mana"`
	Attack    float64 `yaml:"attack"`
	Defense   float64 `yaml:"defense"`
	CritRate  float64 `yaml:"crit_rate"`
	DodgeRate float64 `yaml:"dodge_rate"`
}

// ItemDrop is one entry in a monster's ordered item drop table.
// The table is walked in order and the first successful roll wins,
// so entry order is significant.
type ItemDrop struct {
	ItemID string  `yaml:"item_id"`
	Chance float64 `yaml:"chance"`
}

// MoneyRange bounds the money reward for one kill.
type MoneyRange struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

// DropSpec describes everything a monster can yield on defeat.
type DropSpec struct {
	EquipmentTemplates []string   `yaml:"equipment_templates"`
	Items              []ItemDrop `yaml:"items"`
	Money              MoneyRange `yaml:"money"`
	Experience         int64      `yaml:"experience"`
}

// MonsterDef holds static data for one monster type loaded from YAML.
type MonsterDef struct {
	MonsterID   string       `yaml:"monster_id"`
	Name        string       `yaml:"name"`
	Level       int          `yaml:"level"`
	IsElite     bool         `yaml:"is_elite"`
	Killable    bool         `yaml:"killable"`
	Immortal    bool         `yaml:"immortal"`
	Description string       `yaml:"description"`
	BaseStats   MonsterStats `yaml:"base_stats"`
	Skills      []string     `yaml:"skills"`
	Drops       DropSpec     `yaml:"drops"`
}

type monsterFile struct {
	Monsters []MonsterDef `yaml:"monsters"`
}

// MonsterTable holds all monster definitions indexed by monster ID.
type MonsterTable struct {
	monsters map[string]*MonsterDef
}

// LoadMonsters loads monster definitions from a YAML file.
func LoadMonsters(path string) (*MonsterTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read monsters: %w", err)
	}
	var f monsterFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse monsters: %w", err)
	}
	t := &MonsterTable{monsters: make(map[string]*MonsterDef, len(f.Monsters))}
	for i := range f.Monsters {
		m := &f.Monsters[i]
		t.monsters[m.MonsterID] = m
	}
	return t, nil
}

// Get returns a monster definition by ID, or nil if not found.
func (t *MonsterTable) Get(monsterID string) *MonsterDef {
	return t.monsters[monsterID]
}

// Count returns the number of loaded monster definitions.
func (t *MonsterTable) Count() int {
	return len(t.monsters)
}
