package system

import (
	"testing"

	"github.com/jhgo/server/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsePotionRestoreClamped(t *testing.T) {
	deps := newTestDeps(t)
	items := NewItemSystem(deps)
	c := newTestCharacter("甲", "战士")
	c.CurrentHealth = c.Stats.MaxHealth - 10
	c.Inventory.AddItem("health_potion", "金疮药", 2)

	// 回復量超出上限要封頂
	msg, err := items.Use(c, "health_potion")
	require.NoError(t, err)
	assert.Contains(t, msg, "恢复了10点生命值")
	assert.Equal(t, c.Stats.MaxHealth, c.CurrentHealth)
	assert.Equal(t, 1, c.Inventory.ItemCount("health_potion"))
}

func TestUsePillPermanentAndAggregated(t *testing.T) {
	deps := newTestDeps(t)
	items := NewItemSystem(deps)
	c := newTestCharacter("甲", "战士")
	c.Level = 5
	UpdateStats(c)
	before := c.Stats.MaxHealth
	c.Inventory.AddItem("vitality_pill", "大还丹", 1)

	msg, err := items.Use(c, "vitality_pill")
	require.NoError(t, err)
	assert.Contains(t, msg, "永久")
	assert.Equal(t, 20.0, c.PillStats.MaxHealth)
	assert.Equal(t, before+20, c.Stats.MaxHealth)

	// 丹藥層在重算後仍然保留
	UpdateStats(c)
	assert.Equal(t, before+20, c.Stats.MaxHealth)
}

func TestUsePillLevelGate(t *testing.T) {
	deps := newTestDeps(t)
	items := NewItemSystem(deps)
	c := newTestCharacter("甲", "战士")
	c.Inventory.AddItem("vitality_pill", "大还丹", 1)

	_, err := items.Use(c, "vitality_pill")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "等级")
	assert.Equal(t, 1, c.Inventory.ItemCount("vitality_pill"))
	assert.Equal(t, 0.0, c.PillStats.MaxHealth)
}

func TestUseChestRequiresKey(t *testing.T) {
	deps := newTestDeps(t)
	items := NewItemSystem(deps)
	c := newTestCharacter("甲", "战士")
	c.Level = 3
	c.Inventory.AddItem("treasure_chest", "藏宝箱", 1)

	_, err := items.Use(c, "treasure_chest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "铜钥匙")
	assert.Equal(t, 1, c.Inventory.ItemCount("treasure_chest"))

	c.Inventory.AddItem("chest_key", "铜钥匙", 1)
	msg, err := items.Use(c, "treasure_chest")
	require.NoError(t, err)
	assert.Contains(t, msg, "获得了")
	// 鑰匙與寶箱都被消耗，保底一顆強化石
	assert.Equal(t, 0, c.Inventory.ItemCount("treasure_chest"))
	assert.Equal(t, 0, c.Inventory.ItemCount("chest_key"))
	assert.GreaterOrEqual(t, c.Inventory.ItemCount("enhance_stone"), 1)
	assert.LessOrEqual(t, c.Inventory.ItemCount("enhance_stone"), 3)
}

func TestUseRejectsUnusableAndMissing(t *testing.T) {
	deps := newTestDeps(t)
	items := NewItemSystem(deps)
	c := newTestCharacter("甲", "战士")

	_, err := items.Use(c, "health_potion")
	assert.Error(t, err)

	c.Inventory.AddItem("iron_ore", "玄铁", 1)
	_, err = items.Use(c, "iron_ore")
	assert.Error(t, err)
	assert.Equal(t, 1, c.Inventory.ItemCount("iron_ore"))
}

func TestBuyItem(t *testing.T) {
	deps := newTestDeps(t)
	items := NewItemSystem(deps)
	c := newTestCharacter("甲", "战士")
	c.Money = 200

	msg, err := items.Buy(c, "health_potion", 3)
	require.NoError(t, err)
	assert.Contains(t, msg, "花费150银两")
	assert.Equal(t, int64(50), c.Money)
	assert.Equal(t, 3, c.Inventory.ItemCount("health_potion"))

	_, err = items.Buy(c, "health_potion", 2)
	assert.Error(t, err)
	assert.Equal(t, int64(50), c.Money)

	_, err = items.Buy(c, "health_potion", 0)
	assert.Error(t, err)
	_, err = items.Buy(c, "iron_ore", 1) // 非賣品
	assert.Error(t, err)
}

func TestSellEquipment(t *testing.T) {
	deps := newTestDeps(t)
	items := NewItemSystem(deps)
	c := newTestCharacter("甲", "战士")

	tmpl := deps.Templates.Get("iron_sword")
	require.NotNil(t, tmpl)
	eq := world.NewEquipment(tmpl, "精良", 3)
	c.Inventory.AddEquipment(eq)

	msg, err := items.SellEquipment(c, eq.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, "900银两")
	assert.Equal(t, int64(900), c.Money)
	_, ok := c.Inventory.Equipment(eq.ID)
	assert.False(t, ok)

	_, err = items.SellEquipment(c, eq.ID)
	assert.Error(t, err)
}

func TestDestroyEntry(t *testing.T) {
	deps := newTestDeps(t)
	items := NewItemSystem(deps)
	c := newTestCharacter("甲", "战士")
	c.Inventory.AddItem("iron_ore", "玄铁", 2)

	require.NoError(t, items.Destroy(c, "iron_ore"))
	assert.Equal(t, 0, c.Inventory.ItemCount("iron_ore"))
	assert.Error(t, items.Destroy(c, "iron_ore"))
}
