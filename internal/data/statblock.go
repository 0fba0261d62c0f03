package data

// StatBlock holds the six combat stats shared by characters, equipment
// templates and equipment instances.
type StatBlock struct {
	MaxHealth float64 `yaml:"max_health" json:"max_health"`
	MaxMana   float64 `yaml:"max_mana" json:"max_mana"`
	Attack    float64 `yaml:"attack" json:"attack"`
	Defense   float64 `yaml:"defense" json:"defense"`
	CritRate  float64 `yaml:"crit_rate" json:"crit_rate"`
	DodgeRate float64 `yaml:"dodge_rate" json:"dodge_rate"`
}

// StatKeys lists the stat keys in canonical display order.
var StatKeys = []string{"max_health", "max_mana", "attack", "defense", "crit_rate", "dodge_rate"}

// StatNames maps stat keys to display names.
var StatNames = map[string]string{
	"max_health": "生命上限",
	"max_mana":   "魔法上限",
	"attack":     "攻击力",
	"defense":    "防御力",
	"crit_rate":  "暴击率",
	"dodge_rate": "闪避率",
}

// Add accumulates another block into s.
func (s *StatBlock) Add(o StatBlock) {
	s.MaxHealth += o.MaxHealth
	s.MaxMana += o.MaxMana
	s.Attack += o.Attack
	s.Defense += o.Defense
	s.CritRate += o.CritRate
	s.DodgeRate += o.DodgeRate
}

// Scale returns a copy of s with every stat multiplied by f.
func (s StatBlock) Scale(f float64) StatBlock {
	return StatBlock{
		MaxHealth: s.MaxHealth * f,
		MaxMana:   s.MaxMana * f,
		Attack:    s.Attack * f,
		Defense:   s.Defense * f,
		CritRate:  s.CritRate * f,
		DodgeRate: s.DodgeRate * f,
	}
}

// Get returns the stat value for a key, 0 for unknown keys.
func (s StatBlock) Get(key string) float64 {
	switch key {
	case "max_health":
		return s.MaxHealth
	case "max_mana":
		return s.MaxMana
	case "attack":
		return s.Attack
	case "defense":
		return s.Defense
	case "crit_rate":
		return s.CritRate
	case "dodge_rate":
		return s.DodgeRate
	}
	return 0
}

// AddKey adds v to the stat named by key. Unknown keys are ignored.
func (s *StatBlock) AddKey(key string, v float64) {
	switch key {
	case "max_health":
		s.MaxHealth += v
	case "max_mana":
		s.MaxMana += v
	case "attack":
		s.Attack += v
	case "defense":
		s.Defense += v
	case "crit_rate":
		s.CritRate += v
	case "dodge_rate":
		s.DodgeRate += v
	}
}
