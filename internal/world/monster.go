package world

import "github.com/jhgo/server/internal/data"

// Monster is a live combat instance spawned from a definition. Every
// encounter gets its own instance, so concurrent fights never share health.
type Monster struct {
	MonsterID     string
	Name          string
	Level         int
	IsElite       bool
	Killable      bool
	Immortal      bool
	Stats         data.MonsterStats
	CurrentHealth float64
	CurrentMana   float64
	Drops         data.DropSpec
}

// SpawnMonster instantiates a fresh monster from its definition. Elite
// monsters get the 【精】 name prefix.
func SpawnMonster(def *data.MonsterDef) *Monster {
	name := def.Name
	if def.IsElite {
		name = "【精】" + name
	}
	return &Monster{
		MonsterID:     def.MonsterID,
		Name:          name,
		Level:         def.Level,
		IsElite:       def.IsElite,
		Killable:      def.Killable,
		Immortal:      def.Immortal,
		Stats:         def.BaseStats,
		CurrentHealth: def.BaseStats.Health,
		CurrentMana:   def.BaseStats.Mana,
		Drops:         def.Drops,
	}
}

// IsAlive reports whether the monster still has health left.
func (m *Monster) IsAlive() bool { return m.CurrentHealth > 0 }
