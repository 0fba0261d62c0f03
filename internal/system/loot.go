package system

import (
	"github.com/jhgo/server/internal/data"
	"github.com/jhgo/server/internal/world"
	"go.uber.org/zap"
)

// eliteRarityWeights 精英怪掉落稀有度權重（由低到高，對應 data.Rarities 前四階）。
var eliteRarityWeights = []float64{0.4, 0.3, 0.2, 0.1}

// Loot 是一次擊殺的獎勵。Equipment 與 Item 至多一者非空（每次擊殺
// 只掉一類獎勵：裝備優先判定，未中才輪詢道具表）。
type Loot struct {
	Equipment *world.Equipment
	ItemID    string
	ItemCount int
	Money     int64
	Experience int64
}

// LootSystem 負責擊殺獎勵的產生。
type LootSystem struct {
	deps *Deps
}

// NewLootSystem 建立掉落系統。
func NewLootSystem(deps *Deps) *LootSystem {
	return &LootSystem{deps: deps}
}

// Generate 產生一次擊殺的全部獎勵。
func (s *LootSystem) Generate(m *world.Monster) *Loot {
	loot := &Loot{
		Experience: m.Drops.Experience,
		Money:      rollMoney(m.Drops.Money),
	}

	if eq := s.rollEquipment(m); eq != nil {
		loot.Equipment = eq
	} else if id := rollItem(m.Drops.Items); id != "" {
		loot.ItemID = id
		loot.ItemCount = 1
	}

	if loot.Equipment != nil {
		s.deps.Log.Debug("裝備掉落",
			zap.String("monster", m.MonsterID),
			zap.String("equipment", loot.Equipment.Name),
		)
	}
	return loot
}

// rollEquipment 以設定的掉落率判定裝備掉落，並從怪物模板池均勻取樣。
func (s *LootSystem) rollEquipment(m *world.Monster) *world.Equipment {
	pool := m.Drops.EquipmentTemplates
	if len(pool) == 0 {
		return nil
	}
	if world.RandFloat() >= s.deps.Config.Rates.DropRate {
		return nil
	}

	tmplID := pool[world.RandInt(len(pool))]
	tmpl := s.deps.Templates.Get(tmplID)
	if tmpl == nil {
		s.deps.Log.Warn("怪物掉落表引用未知裝備模板",
			zap.String("monster", m.MonsterID),
			zap.String("template", tmplID),
		)
		return nil
	}

	rarity := rollRarity(tmpl, m.IsElite)
	stars := world.RandBetween(1, 5)
	return world.NewEquipment(tmpl, rarity, stars)
}

// rollRarity 決定稀有度：神器模板固定最高階；精英怪按權重表，普通怪
// 固定最低階。
func rollRarity(tmpl *data.EquipmentTemplate, elite bool) string {
	if tmpl.IsArtifact {
		return data.RarityTop
	}
	if !elite {
		return data.Rarities[0]
	}
	r := world.RandFloat()
	acc := 0.0
	for i, w := range eliteRarityWeights {
		acc += w
		if r < acc {
			return data.Rarities[i]
		}
	}
	return data.Rarities[len(eliteRarityWeights)-1]
}

// rollItem 依序輪詢道具掉落表，第一個判定成功的道具勝出。表的順序
// 影響實際掉率，調表時需留意。
func rollItem(drops []data.ItemDrop) string {
	for _, d := range drops {
		if world.RandFloat() < d.Chance {
			return d.ItemID
		}
	}
	return ""
}

// rollMoney 在怪物的金錢區間內取均勻整數。
func rollMoney(r data.MoneyRange) int64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return world.RandRange(r.Min, r.Max)
}
