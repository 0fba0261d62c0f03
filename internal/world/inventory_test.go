package world

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryStackMerge(t *testing.T) {
	inv := Inventory{}
	inv.AddItem("health_potion", "金疮药", 2)
	inv.AddItem("health_potion", "金疮药", 3)

	assert.Equal(t, 5, inv.ItemCount("health_potion"))
	assert.Len(t, inv, 1)
}

func TestInventoryRemoveItem(t *testing.T) {
	inv := Inventory{}
	inv.AddItem("iron_ore", "玄铁", 3)

	assert.True(t, inv.RemoveItem("iron_ore", 2))
	assert.Equal(t, 1, inv.ItemCount("iron_ore"))

	// 數量不足時整筆拒絕，不得部分扣除。
	assert.False(t, inv.RemoveItem("iron_ore", 5))
	assert.Equal(t, 1, inv.ItemCount("iron_ore"))

	assert.True(t, inv.RemoveItem("iron_ore", 1))
	assert.Equal(t, 0, inv.ItemCount("iron_ore"))
	assert.Len(t, inv, 0)
}

func TestInventoryEquipmentLifecycle(t *testing.T) {
	inv := Inventory{}
	eq := NewEquipment(testTemplate(), "普通", 3)
	inv.AddEquipment(eq)

	got, ok := inv.Equipment(eq.ID)
	require.True(t, ok)
	assert.Same(t, eq, got)

	removed, ok := inv.RemoveEquipment(eq.ID)
	require.True(t, ok)
	assert.Same(t, eq, removed)

	_, ok = inv.Equipment(eq.ID)
	assert.False(t, ok)
}

func TestEntryJSONRoundTrip(t *testing.T) {
	inv := Inventory{}
	inv.AddItem("health_potion", "金疮药", 4)
	eq := NewEquipment(testTemplate(), "精良", 4)
	eq.EnhanceLevel = 2
	eq.RecalcStats()
	eq.UpdateName()
	inv.AddEquipment(eq)

	raw, err := json.Marshal(inv)
	require.NoError(t, err)

	var back Inventory
	require.NoError(t, json.Unmarshal(raw, &back))

	assert.Equal(t, 4, back.ItemCount("health_potion"))
	got, ok := back.Equipment(eq.ID)
	require.True(t, ok)
	assert.Equal(t, eq.Name, got.Name)
	assert.Equal(t, eq.EnhanceLevel, got.EnhanceLevel)
	assert.Equal(t, eq.InitialStats, got.InitialStats)
	assert.Equal(t, eq.BaseStats, got.BaseStats)
	assert.Equal(t, eq.ExtraStats, got.ExtraStats)
}
