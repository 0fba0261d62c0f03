package world

import (
	"fmt"
	"math"
	"time"

	"github.com/jhgo/server/internal/data"
)

// ExtraStat is one bonus stat on an equipment instance. Value is fixed at
// creation; Stars is the sub-rating that produced it (display only).
type ExtraStat struct {
	Value float64 `json:"value"`
	Stars int     `json:"stars"`
}

// Equipment is a unique equipment instance. BaseStats derive from
// InitialStats and EnhanceLevel; only the enhance system changes the level.
type Equipment struct {
	ID            string               `json:"equipment_id"`
	TemplateID    string               `json:"template_id"`
	TemplateName  string               `json:"template_name"`
	Name          string               `json:"name"`
	Slot          string               `json:"slot"`
	Rarity        string               `json:"rarity"`
	Stars         int                  `json:"stars"`
	EnhanceLevel  int                  `json:"enhance_level"`
	LevelRequired int                  `json:"level_required"`
	ClassRequired string               `json:"class_required,omitempty"`
	Description   string               `json:"description"`
	IsBound       bool                 `json:"is_bound"`
	InitialStats  data.StatBlock       `json:"initial_stats"`
	BaseStats     data.StatBlock       `json:"base_stats"`
	ExtraStats    map[string]ExtraStat `json:"extra_stats"`
}

// 附加屬性條數（依稀有度）。
var rarityExtraCount = map[string]int{
	"普通": 1, "精良": 2, "卓越": 3, "史诗": 4, "神器": 6,
}

// 武器與防具/飾品的附加屬性展開順序（第 n 條解鎖第 n 列）。
var weaponStatsOrder = [][]string{
	{"attack"},
	{"attack", "max_health"},
	{"attack", "max_health", "crit_rate"},
	{"attack", "max_health", "crit_rate", "max_mana"},
	{"attack", "max_health", "crit_rate", "max_mana", "defense"},
	{"attack", "max_health", "crit_rate", "max_mana", "defense", "dodge_rate"},
}

var armorStatsOrder = [][]string{
	{"defense"},
	{"defense", "max_health"},
	{"defense", "max_health", "max_mana"},
	{"defense", "max_health", "crit_rate", "max_mana"},
	{"attack", "max_health", "crit_rate", "max_mana", "defense"},
	{"attack", "max_health", "crit_rate", "max_mana", "defense", "dodge_rate"},
}

// 出售價（稀有度基準 × 星級）。
var raritySellValues = map[string]int64{
	"普通": 100, "精良": 300, "卓越": 600, "史诗": 1000, "神器": 2000,
}

// NextEquipmentID generates an inventory key for a fresh equipment instance.
func NextEquipmentID() string {
	return fmt.Sprintf("equipment_%d_%d", time.Now().Unix(), RandBetween(1000, 9999))
}

// NewEquipment creates an instance from a template with the given rarity and
// star rating. Base stats scale with stars/5 (floored per stat) and freeze as
// InitialStats; extra stats roll once here and never change.
func NewEquipment(tmpl *data.EquipmentTemplate, rarity string, stars int) *Equipment {
	e := &Equipment{
		ID:            NextEquipmentID(),
		TemplateID:    tmpl.TemplateID,
		TemplateName:  tmpl.Name,
		Slot:          tmpl.Slot,
		Rarity:        rarity,
		Stars:         stars,
		LevelRequired: tmpl.LevelRequired,
		ClassRequired: tmpl.ClassRequired,
		Description:   tmpl.Description,
		IsBound:       tmpl.IsBound,
	}

	ratio := float64(stars) / 5
	for _, key := range data.StatKeys {
		e.InitialStats.AddKey(key, math.Floor(tmpl.BaseStats.Get(key)*ratio))
	}
	e.BaseStats = e.InitialStats

	e.ExtraStats = rollExtraStats(tmpl, e.Slot, rarity, stars)
	e.UpdateName()
	return e
}

// RandomRarity rolls a uniform rarity across all five tiers (shop rolls).
func RandomRarity() string {
	return data.Rarities[RandInt(len(data.Rarities))]
}

// rollExtraStats picks the stat rows for the rarity's extra-stat count and
// rolls each sub-rating around the instance's star rating.
func rollExtraStats(tmpl *data.EquipmentTemplate, slot, rarity string, stars int) map[string]ExtraStat {
	count := rarityExtraCount[rarity]
	if count <= 0 {
		return map[string]ExtraStat{}
	}

	order := armorStatsOrder
	if slot == "weapon" {
		order = weaponStatsOrder
	}
	if count > len(order) {
		count = len(order)
	}
	selected := order[count-1]

	out := make(map[string]ExtraStat, len(selected))
	for _, key := range selected {
		subStars := RandBetween(stars-1, stars+1)
		if subStars < 1 {
			subStars = 1
		}
		if subStars > 5 {
			subStars = 5
		}
		maxValue := tmpl.MaxExtraStats[key]
		out[key] = ExtraStat{
			Value: maxValue * float64(subStars) / 5,
			Stars: subStars,
		}
	}
	return out
}

// UpdateName regenerates the display name, appending the enhancement suffix
// when the level is above zero.
func (e *Equipment) UpdateName() {
	name := fmt.Sprintf("【%s】%s(%d星)(%d级)", e.Rarity, e.TemplateName, e.Stars, e.LevelRequired)
	if e.EnhanceLevel > 0 {
		name += fmt.Sprintf("+%d", e.EnhanceLevel)
	}
	e.Name = name
}

// RecalcStats recomputes current base stats from the frozen initial stats:
// current = initial + floor(initial × 0.1 × level), per stat.
func (e *Equipment) RecalcStats() {
	lvl := float64(e.EnhanceLevel)
	var out data.StatBlock
	for _, key := range data.StatKeys {
		init := e.InitialStats.Get(key)
		out.AddKey(key, init+math.Floor(init*0.1*lvl))
	}
	e.BaseStats = out
}

// TotalStats returns current base stats plus all extra stat values.
func (e *Equipment) TotalStats() data.StatBlock {
	total := e.BaseStats
	for key, extra := range e.ExtraStats {
		total.AddKey(key, extra.Value)
	}
	return total
}

// SellPrice returns the shop buy-back price.
func (e *Equipment) SellPrice() int64 {
	return raritySellValues[e.Rarity] * int64(e.Stars)
}
