package system

import (
	"testing"

	"github.com/jhgo/server/internal/data"
	"github.com/jhgo/server/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lootMonster(elite bool, pool []string) *world.Monster {
	return world.SpawnMonster(&data.MonsterDef{
		MonsterID: "test_mob",
		Name:      "试验怪",
		IsElite:   elite,
		Killable:  true,
		BaseStats: data.MonsterStats{Health: 1},
		Drops: data.DropSpec{
			EquipmentTemplates: pool,
			Items: []data.ItemDrop{
				{ItemID: "health_potion", Chance: 0.3},
				{ItemID: "iron_ore", Chance: 0.5},
			},
			Money:      data.MoneyRange{Min: 10, Max: 30},
			Experience: 20,
		},
	})
}

func TestGenerateAtMostOneRewardCategory(t *testing.T) {
	deps := newTestDeps(t)
	loot := NewLootSystem(deps)
	m := lootMonster(false, []string{"iron_sword"})

	for i := 0; i < 2000; i++ {
		l := loot.Generate(m)
		if l.Equipment != nil {
			assert.Empty(t, l.ItemID)
		}
		assert.GreaterOrEqual(t, l.Money, int64(10))
		assert.LessOrEqual(t, l.Money, int64(30))
		assert.Equal(t, int64(20), l.Experience)
	}
}

func TestGenerateEquipmentRateNearConfig(t *testing.T) {
	deps := newTestDeps(t)
	loot := NewLootSystem(deps)
	m := lootMonster(false, []string{"iron_sword"})

	const n = 100000
	drops := 0
	for i := 0; i < n; i++ {
		if loot.Generate(m).Equipment != nil {
			drops++
		}
	}
	rate := float64(drops) / n
	assert.InDelta(t, deps.Config.Rates.DropRate, rate, 0.01)
}

func TestGenerateNonEliteAlwaysCommonRarity(t *testing.T) {
	deps := newTestDeps(t)
	loot := NewLootSystem(deps)
	m := lootMonster(false, []string{"iron_sword"})

	for i := 0; i < 5000; i++ {
		if eq := loot.Generate(m).Equipment; eq != nil {
			assert.Equal(t, "普通", eq.Rarity)
			assert.GreaterOrEqual(t, eq.Stars, 1)
			assert.LessOrEqual(t, eq.Stars, 5)
		}
	}
}

func TestGenerateEliteRarityWeights(t *testing.T) {
	deps := newTestDeps(t)
	loot := NewLootSystem(deps)
	m := lootMonster(true, []string{"iron_sword"})

	const n = 100000
	counts := map[string]int{}
	total := 0
	for i := 0; i < n; i++ {
		if eq := loot.Generate(m).Equipment; eq != nil {
			counts[eq.Rarity]++
			total++
		}
	}
	require.Greater(t, total, 0)

	want := map[string]float64{"普通": 0.4, "精良": 0.3, "卓越": 0.2, "史诗": 0.1}
	for rarity, w := range want {
		got := float64(counts[rarity]) / float64(total)
		assert.InDelta(t, w, got, 0.02, "rarity %s", rarity)
	}
	// 非神器模板永遠滾不出神器。
	assert.Zero(t, counts["神器"])
}

func TestGenerateArtifactTemplateAlwaysTopRarity(t *testing.T) {
	deps := newTestDeps(t)
	loot := NewLootSystem(deps)
	m := lootMonster(true, []string{"dragon_saber"})

	found := false
	for i := 0; i < 1000; i++ {
		if eq := loot.Generate(m).Equipment; eq != nil {
			found = true
			assert.Equal(t, data.RarityTop, eq.Rarity)
			assert.True(t, eq.IsBound)
		}
	}
	assert.True(t, found)
}

func TestGenerateItemTableOrderedFirstHit(t *testing.T) {
	deps := newTestDeps(t)
	loot := NewLootSystem(deps)
	m := world.SpawnMonster(&data.MonsterDef{
		MonsterID: "test_mob", Name: "试验怪", Killable: true,
		BaseStats: data.MonsterStats{Health: 1},
		Drops: data.DropSpec{
			Items: []data.ItemDrop{
				{ItemID: "health_potion", Chance: 1.0},
				{ItemID: "iron_ore", Chance: 1.0},
			},
			Experience: 20,
		},
	})

	for i := 0; i < 200; i++ {
		l := loot.Generate(m)
		require.Nil(t, l.Equipment)
		// 表序在前且必中的道具永遠勝出。
		assert.Equal(t, "health_potion", l.ItemID)
		assert.Equal(t, 1, l.ItemCount)
	}
}

func TestGenerateEmptyDropSpec(t *testing.T) {
	deps := newTestDeps(t)
	loot := NewLootSystem(deps)
	m := world.SpawnMonster(&data.MonsterDef{
		MonsterID: "test_mob", Name: "试验怪", Killable: true,
		BaseStats: data.MonsterStats{Health: 1},
	})

	l := loot.Generate(m)
	assert.Nil(t, l.Equipment)
	assert.Empty(t, l.ItemID)
	assert.Equal(t, int64(0), l.Money)
	assert.Equal(t, int64(0), l.Experience)
}
