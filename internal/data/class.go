package data

// Class defines a playable class. GrowthStats are per-level rates:
// a character's growth layer is GrowthStats × level, linear.
type Class struct {
	Name        string
	GrowthStats StatBlock
}

// 職業表。固定三職業，不從檔案載入。
var classes = map[string]Class{
	"术士": {
		Name: "术士",
		GrowthStats: StatBlock{
			MaxHealth: 80,
			MaxMana:   100,
			Attack:    20,
			Defense:   3,
			CritRate:  0.03,
			DodgeRate: 0.03,
		},
	},
	"战士": {
		Name: "战士",
		GrowthStats: StatBlock{
			MaxHealth: 120,
			MaxMana:   50,
			Attack:    15,
			Defense:   8,
			CritRate:  0.03,
			DodgeRate: 0.03,
		},
	},
	"刺客": {
		Name: "刺客",
		GrowthStats: StatBlock{
			MaxHealth: 90,
			MaxMana:   60,
			Attack:    18,
			Defense:   4,
			CritRate:  0.08,
			DodgeRate: 0.08,
		},
	},
}

// GetClass returns the class definition for a name.
func GetClass(name string) (Class, bool) {
	c, ok := classes[name]
	return c, ok
}

// ClassExists reports whether name is a valid class.
func ClassExists(name string) bool {
	_, ok := classes[name]
	return ok
}

// ClassNames returns all playable class names.
func ClassNames() []string {
	return []string{"术士", "战士", "刺客"}
}
