package web

import (
	"github.com/jhgo/server/internal/data"
	"github.com/jhgo/server/internal/world"
)

// characterView 是角色狀態的對外快照。
type characterView struct {
	Name             string             `json:"name"`
	Class            string             `json:"player_class"`
	Level            int                `json:"level"`
	Exp              int64              `json:"exp"`
	ExpToNext        int64              `json:"exp_to_next_level"`
	Money            int64              `json:"money"`
	Health           float64            `json:"health"`
	Mana             float64            `json:"mana"`
	Stats            data.StatBlock     `json:"stats"`
	Location         string             `json:"current_location"`
	Skills           map[string]int     `json:"skills"`
	EnhanceBonusRate float64            `json:"enhance_bonus_rate"`
	Equipped         map[string]string  `json:"equipped"`
}

func viewCharacter(c *world.Character) characterView {
	equipped := make(map[string]string, len(c.Equipped))
	for slot, eq := range c.Equipped {
		if eq != nil {
			equipped[slot] = eq.Name
		}
	}
	return characterView{
		Name:             c.Name,
		Class:            c.Class,
		Level:            c.Level,
		Exp:              c.Exp,
		ExpToNext:        c.ExpToNext,
		Money:            c.Money,
		Health:           c.CurrentHealth,
		Mana:             c.CurrentMana,
		Stats:            c.Stats,
		Location:         c.Location,
		Skills:           c.SkillLevels,
		EnhanceBonusRate: c.EnhanceBonusRate,
		Equipped:         equipped,
	}
}

// monsterView 是遭遇中怪物的對外快照。
type monsterView struct {
	MonsterID string  `json:"monster_id"`
	Name      string  `json:"name"`
	Level     int     `json:"level"`
	IsElite   bool    `json:"is_elite"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"max_health"`
}

func viewMonster(m *world.Monster) *monsterView {
	if m == nil {
		return nil
	}
	return &monsterView{
		MonsterID: m.MonsterID,
		Name:      m.Name,
		Level:     m.Level,
		IsElite:   m.IsElite,
		Health:    m.CurrentHealth,
		MaxHealth: m.Stats.Health,
	}
}

// inventoryView 列出背包內容：裝備一件一行，道具一疊一行。
type inventoryEntryView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"` // "equipment" | "item"
	Quantity int    `json:"quantity,omitempty"`
	Slot     string `json:"slot,omitempty"`
	Rarity   string `json:"rarity,omitempty"`
	Enhance  int    `json:"enhance_level,omitempty"`
	IsBound  bool   `json:"is_bound,omitempty"`
}

func viewInventory(inv world.Inventory) []inventoryEntryView {
	out := make([]inventoryEntryView, 0, len(inv))
	for _, eq := range inv.Equipments() {
		out = append(out, inventoryEntryView{
			ID:      eq.ID,
			Name:    eq.Name,
			Kind:    "equipment",
			Slot:    eq.Slot,
			Rarity:  eq.Rarity,
			Enhance: eq.EnhanceLevel,
			IsBound: eq.IsBound,
		})
	}
	for id, entry := range inv {
		if entry.Stack != nil {
			out = append(out, inventoryEntryView{
				ID:       id,
				Name:     entry.Stack.Name,
				Kind:     "item",
				Quantity: entry.Stack.Quantity,
			})
		}
	}
	return out
}
