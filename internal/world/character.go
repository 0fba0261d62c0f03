package world

import (
	"time"

	"github.com/jhgo/server/internal/data"
)

// Character is one player avatar. Stats is the aggregated view (base + gear
// + pills) and is recomputed by the stats system after any change; only
// CurrentHealth/CurrentMana persist combat wear.
type Character struct {
	Name      string
	Class     string
	Level     int
	Exp       int64
	ExpToNext int64
	Money     int64

	BaseStats     data.StatBlock
	PillStats     data.StatBlock
	Stats         data.StatBlock
	CurrentHealth float64
	CurrentMana   float64

	Equipped    map[string]*Equipment
	Inventory   Inventory
	SkillLevels map[string]int

	EnhanceBonusRate float64
	Location         string
	CreatedAt        time.Time
}

// NewCharacter creates a level 1 character of the given class at the
// starting location.
func NewCharacter(name, class string) *Character {
	cls, ok := data.GetClass(class)
	c := &Character{
		Name:        name,
		Class:       class,
		Level:       1,
		ExpToNext:   50,
		Money:       0,
		Equipped:    map[string]*Equipment{},
		Inventory:   Inventory{},
		SkillLevels: map[string]int{data.AttackSkillID: 1},
		Location:    "新手村.广场",
		CreatedAt:   time.Now(),
	}
	if ok {
		c.BaseStats = cls.GrowthStats
	}
	c.Stats = c.BaseStats
	c.CurrentHealth = c.Stats.MaxHealth
	c.CurrentMana = c.Stats.MaxMana
	return c
}

// IsAlive reports whether current health is above zero.
func (c *Character) IsAlive() bool { return c.CurrentHealth > 0 }

// SkillLevel returns the learned level of a skill, zero when unlearned.
func (c *Character) SkillLevel(id string) int { return c.SkillLevels[id] }

// SpendMoney deducts the amount when affordable.
func (c *Character) SpendMoney(amount int64) bool {
	if amount < 0 || c.Money < amount {
		return false
	}
	c.Money -= amount
	return true
}

// ClampVitals caps current health/mana to the aggregated maximums.
func (c *Character) ClampVitals() {
	if c.CurrentHealth > c.Stats.MaxHealth {
		c.CurrentHealth = c.Stats.MaxHealth
	}
	if c.CurrentHealth < 0 {
		c.CurrentHealth = 0
	}
	if c.CurrentMana > c.Stats.MaxMana {
		c.CurrentMana = c.Stats.MaxMana
	}
	if c.CurrentMana < 0 {
		c.CurrentMana = 0
	}
}
