package world

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhgo/server/internal/data"
)

const recordTimeLayout = "2006-01-02 15:04:05"

// characterRecord is the stored JSON shape of a character. Field names are
// part of the save format and must stay stable across releases.
type characterRecord struct {
	Name             string                `json:"name"`
	PlayerClass      string                `json:"player_class"`
	Level            int                   `json:"level"`
	Exp              int64                 `json:"exp"`
	ExpToNextLevel   int64                 `json:"exp_to_next_level"`
	Money            int64                 `json:"money"`
	PillStats        data.StatBlock        `json:"pill_stats"`
	CurrentHealth    float64               `json:"current_health"`
	CurrentMana      float64               `json:"current_mana"`
	EquippedItems    map[string]*Equipment `json:"equipped_items"`
	Inventory        Inventory             `json:"inventory"`
	Skills           map[string]int        `json:"skills"`
	EnhanceBonusRate float64               `json:"enhance_bonus_rate"`
	CurrentLocation  string                `json:"current_location"`
	CreatedAt        string                `json:"created_at"`
}

// EncodeCharacter serializes a character into its stored JSON form.
// Aggregated stats are not stored; they are derived on decode.
func EncodeCharacter(c *Character) ([]byte, error) {
	rec := characterRecord{
		Name:             c.Name,
		PlayerClass:      c.Class,
		Level:            c.Level,
		Exp:              c.Exp,
		ExpToNextLevel:   c.ExpToNext,
		Money:            c.Money,
		PillStats:        c.PillStats,
		CurrentHealth:    c.CurrentHealth,
		CurrentMana:      c.CurrentMana,
		EquippedItems:    c.Equipped,
		Inventory:        c.Inventory,
		Skills:           c.SkillLevels,
		EnhanceBonusRate: c.EnhanceBonusRate,
		CurrentLocation:  c.Location,
		CreatedAt:        c.CreatedAt.Format(recordTimeLayout),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode character %q: %w", c.Name, err)
	}
	return b, nil
}

// DecodeCharacter restores a character from its stored JSON form, applying
// defaults field by field so old saves with missing keys still load. The
// caller is expected to recompute aggregated stats afterwards.
func DecodeCharacter(b []byte) (*Character, error) {
	var rec characterRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode character: %w", err)
	}
	if rec.Name == "" {
		return nil, fmt.Errorf("decode character: missing name")
	}
	if !data.ClassExists(rec.PlayerClass) {
		return nil, fmt.Errorf("decode character %q: unknown class %q", rec.Name, rec.PlayerClass)
	}

	c := &Character{
		Name:             rec.Name,
		Class:            rec.PlayerClass,
		Level:            rec.Level,
		Exp:              rec.Exp,
		ExpToNext:        rec.ExpToNextLevel,
		Money:            rec.Money,
		PillStats:        rec.PillStats,
		CurrentHealth:    rec.CurrentHealth,
		CurrentMana:      rec.CurrentMana,
		Equipped:         rec.EquippedItems,
		Inventory:        rec.Inventory,
		SkillLevels:      rec.Skills,
		EnhanceBonusRate: rec.EnhanceBonusRate,
		Location:         rec.CurrentLocation,
	}
	if c.Level < 1 {
		c.Level = 1
	}
	if c.ExpToNext <= 0 {
		c.ExpToNext = 50
	}
	if c.Equipped == nil {
		c.Equipped = map[string]*Equipment{}
	}
	if c.Inventory == nil {
		c.Inventory = Inventory{}
	}
	if c.SkillLevels == nil {
		c.SkillLevels = map[string]int{data.AttackSkillID: 1}
	}
	if c.Location == "" {
		c.Location = "新手村.广场"
	}
	for _, eq := range c.Equipped {
		if eq != nil && eq.ExtraStats == nil {
			eq.ExtraStats = map[string]ExtraStat{}
		}
	}

	if rec.CreatedAt != "" {
		if t, err := time.ParseInLocation(recordTimeLayout, rec.CreatedAt, time.Local); err == nil {
			c.CreatedAt = t
		}
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	cls, _ := data.GetClass(c.Class)
	c.BaseStats = cls.GrowthStats.Scale(float64(c.Level))
	c.Stats = c.BaseStats
	return c, nil
}
