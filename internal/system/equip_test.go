package system

import (
	"testing"

	"github.com/jhgo/server/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipBindsAndAggregates(t *testing.T) {
	deps := newTestDeps(t)
	equip := NewEquipSystem(deps)
	c := newTestCharacter("甲", "战士")
	before := c.Stats.Attack

	tmpl := deps.Templates.Get("wooden_sword")
	require.NotNil(t, tmpl)
	eq := world.NewEquipment(tmpl, "普通", 5)
	require.False(t, eq.IsBound)
	c.Inventory.AddEquipment(eq)

	_, err := equip.Equip(c, eq.ID)
	require.NoError(t, err)

	assert.Same(t, eq, c.Equipped["weapon"])
	assert.True(t, eq.IsBound)
	_, inBag := c.Inventory.Equipment(eq.ID)
	assert.False(t, inBag)
	assert.Greater(t, c.Stats.Attack, before)
}

func TestEquipSwapsSameSlot(t *testing.T) {
	deps := newTestDeps(t)
	equip := NewEquipSystem(deps)
	c := newTestCharacter("甲", "战士")
	c.Level = 5

	first := world.NewEquipment(deps.Templates.Get("wooden_sword"), "普通", 5)
	second := world.NewEquipment(deps.Templates.Get("iron_sword"), "普通", 5)
	c.Inventory.AddEquipment(first)
	c.Inventory.AddEquipment(second)

	_, err := equip.Equip(c, first.ID)
	require.NoError(t, err)
	_, err = equip.Equip(c, second.ID)
	require.NoError(t, err)

	assert.Same(t, second, c.Equipped["weapon"])
	_, inBag := c.Inventory.Equipment(first.ID)
	assert.True(t, inBag)
}

func TestEquipLevelAndClassGates(t *testing.T) {
	deps := newTestDeps(t)
	equip := NewEquipSystem(deps)
	c := newTestCharacter("甲", "战士")

	tooHigh := world.NewEquipment(deps.Templates.Get("iron_sword"), "普通", 5)
	c.Inventory.AddEquipment(tooHigh)
	_, err := equip.Equip(c, tooHigh.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "等级不足")

	c.Level = 10
	UpdateStats(c)
	wrongClass := world.NewEquipment(deps.Templates.Get("fire_staff"), "普通", 5)
	c.Inventory.AddEquipment(wrongClass)
	_, err = equip.Equip(c, wrongClass.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "职业不符")

	// 被拒的裝備留在背包，未被綁定。
	_, inBag := c.Inventory.Equipment(wrongClass.ID)
	assert.True(t, inBag)
	assert.False(t, wrongClass.IsBound)
}

func TestUnequipRestoresStats(t *testing.T) {
	deps := newTestDeps(t)
	equip := NewEquipSystem(deps)
	c := newTestCharacter("甲", "战士")
	before := c.Stats

	eq := world.NewEquipment(deps.Templates.Get("wooden_sword"), "普通", 5)
	c.Inventory.AddEquipment(eq)
	_, err := equip.Equip(c, eq.ID)
	require.NoError(t, err)

	_, err = equip.Unequip(c, "weapon")
	require.NoError(t, err)

	assert.Nil(t, c.Equipped["weapon"])
	_, inBag := c.Inventory.Equipment(eq.ID)
	assert.True(t, inBag)
	assert.Equal(t, before, c.Stats)
	// 綁定標記在脫下後保留。
	assert.True(t, eq.IsBound)

	_, err = equip.Unequip(c, "weapon")
	assert.Error(t, err)
}
