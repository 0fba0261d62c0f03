package system

import (
	"github.com/jhgo/server/internal/data"
	"github.com/jhgo/server/internal/world"
)

// UpdateStats 重新聚合角色屬性。聚合為純加法分層：
//
//	職業成長（職業基礎 × 等級） + 已裝備裝備（含強化與附加屬性） + 丹藥
//
// 任何會改變屬性來源的操作（升級、穿脫、強化、服用丹藥）之後都必須呼叫。
func UpdateStats(c *world.Character) {
	if cls, ok := data.GetClass(c.Class); ok {
		c.BaseStats = cls.GrowthStats.Scale(float64(c.Level))
	}

	total := c.BaseStats
	for _, eq := range c.Equipped {
		if eq == nil {
			continue
		}
		total.Add(eq.TotalStats())
	}
	// 丹藥層只作用於四項基礎屬性，暴擊/閃避不吃丹。
	total.MaxHealth += c.PillStats.MaxHealth
	total.MaxMana += c.PillStats.MaxMana
	total.Attack += c.PillStats.Attack
	total.Defense += c.PillStats.Defense

	c.Stats = total
	c.ClampVitals()
}
