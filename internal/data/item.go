package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Item types.
const (
	ItemTypePotion    = "potion"
	ItemTypeEquipment = "equipment"
	ItemTypeMaterial  = "material"
	ItemTypeChest     = "chest"
	ItemTypeQuest     = "quest"
	ItemTypeOther     = "other"
)

// UsageCondition gates item usage.
type UsageCondition struct {
	LevelRequired int            `yaml:"level_required" json:"level_required"`
	RequiredItems map[string]int `yaml:"required_items" json:"required_items"`
}

// RandomReward is one weighted random-reward roll with a guaranteed floor.
type RandomReward struct {
	ItemID          string  `yaml:"item_id" json:"item_id"`
	MaxCount        int     `yaml:"max_count" json:"max_count"`
	Chance          float64 `yaml:"chance" json:"chance"`
	GuaranteedCount int     `yaml:"guaranteed_count" json:"guaranteed_count"`
}

// UsageEffect describes what happens when an item is used.
// StatChanges keys are stat keys, or "health"/"mana" for restores, or
// "pill_"-prefixed keys for permanent pill stats.
type UsageEffect struct {
	StatChanges map[string]float64 `yaml:"stat_changes" json:"stat_changes"`
	ItemChanges map[string]int     `yaml:"item_changes" json:"item_changes"`
	RandomItems []RandomReward     `yaml:"random_items" json:"random_items"`
	TempEffects []string           `yaml:"temp_effects" json:"temp_effects"`
}

// Item holds static data for one item type loaded from YAML.
// Immutable at runtime; inventories carry copies so saved records stay
// self-describing.
type Item struct {
	ItemID          string          `yaml:"item_id" json:"item_id"`
	Name            string          `yaml:"name" json:"name"`
	ItemType        string          `yaml:"item_type" json:"item_type"`
	Description     string          `yaml:"description" json:"description"`
	IsUsable        bool            `yaml:"is_usable" json:"is_usable"`
	CanBulkUse      bool            `yaml:"can_bulk_use" json:"can_bulk_use"`
	Price           int64           `yaml:"price" json:"price"`
	IsPermanentBuff bool            `yaml:"is_permanent_buff" json:"is_permanent_buff"`
	UsageCondition  *UsageCondition `yaml:"usage_condition" json:"usage_condition,omitempty"`
	UsageEffect     *UsageEffect    `yaml:"usage_effect" json:"usage_effect,omitempty"`
}

type itemFile struct {
	Items []Item `yaml:"items"`
}

// ItemTable holds all item definitions indexed by item ID.
type ItemTable struct {
	items map[string]*Item
}

// LoadItems loads item definitions from a YAML file.
func LoadItems(path string) (*ItemTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	var f itemFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	t := &ItemTable{items: make(map[string]*Item, len(f.Items))}
	for i := range f.Items {
		it := &f.Items[i]
		if it.ItemType == "" {
			it.ItemType = ItemTypeOther
		}
		t.items[it.ItemID] = it
	}
	return t, nil
}

// Get returns an item definition by ID, or nil if not found.
func (t *ItemTable) Get(itemID string) *Item {
	return t.items[itemID]
}

// Count returns the number of loaded item definitions.
func (t *ItemTable) Count() int {
	return len(t.items)
}

// ShopItems returns all items with a positive shop price.
func (t *ItemTable) ShopItems() []*Item {
	var out []*Item
	for _, it := range t.items {
		if it.Price > 0 {
			out = append(out, it)
		}
	}
	return out
}
