package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogDir = "../../data/yaml"

// 隨庫資料檔的完整性檢查：表與表之間的引用不得懸空。
func TestCatalogCrossReferences(t *testing.T) {
	templates, err := LoadEquipmentTemplates(catalogDir + "/equipment_templates.yaml")
	require.NoError(t, err)
	monsters, err := LoadMonsters(catalogDir + "/monsters.yaml")
	require.NoError(t, err)
	items, err := LoadItems(catalogDir + "/items.yaml")
	require.NoError(t, err)
	skills, err := LoadSkills(catalogDir + "/skills.yaml")
	require.NoError(t, err)
	locations, err := LoadLocations(catalogDir + "/locations.yaml")
	require.NoError(t, err)

	assert.Greater(t, templates.Count(), 0)
	assert.Greater(t, monsters.Count(), 0)
	assert.Greater(t, items.Count(), 0)
	assert.Greater(t, skills.Count(), 0)
	assert.Greater(t, locations.Count(), 0)

	// 出生點必須存在
	require.NotNil(t, locations.Get("新手村.广场"))

	for _, name := range []string{"scarecrow", "wild_boar", "wolf", "bandit", "black_bear", "demon_general"} {
		m := monsters.Get(name)
		require.NotNil(t, m, "monster %s", name)
		for _, tmplID := range m.Drops.EquipmentTemplates {
			assert.NotNil(t, templates.Get(tmplID), "%s 掉落引用未知模板 %s", name, tmplID)
		}
		for _, d := range m.Drops.Items {
			assert.NotNil(t, items.Get(d.ItemID), "%s 掉落引用未知道具 %s", name, d.ItemID)
			assert.Greater(t, d.Chance, 0.0)
			assert.LessOrEqual(t, d.Chance, 1.0)
		}
		assert.LessOrEqual(t, m.Drops.Money.Min, m.Drops.Money.Max)
	}
}

func TestCatalogLocationsGraphClosed(t *testing.T) {
	monsters, err := LoadMonsters(catalogDir + "/monsters.yaml")
	require.NoError(t, err)
	locations, err := LoadLocations(catalogDir + "/locations.yaml")
	require.NoError(t, err)

	for _, id := range []string{"新手村.广场", "新手村.练功场", "新手村.村外小路", "黑风山.山道", "黑风山.山寨", "黑风山.熊洞", "黑风山.山顶"} {
		loc := locations.Get(id)
		require.NotNil(t, loc, "scene %s", id)
		if loc.MonsterType != "" {
			assert.NotNil(t, monsters.Get(loc.MonsterType), "%s 引用未知怪物 %s", id, loc.MonsterType)
		}
		for dir, dest := range loc.Exits {
			assert.NotNil(t, locations.Get(dest), "%s 出口 %s 指向未知場景 %s", id, dir, dest)
		}
	}

	assert.Equal(t, "新手村.练功场", locations.ExitTo("新手村.广场", "north"))
	assert.Empty(t, locations.ExitTo("新手村.广场", "west"))
	assert.Empty(t, locations.ExitTo("不存在.场景", "north"))
}

func TestCatalogSkillsWellFormed(t *testing.T) {
	skills, err := LoadSkills(catalogDir + "/skills.yaml")
	require.NoError(t, err)

	for _, class := range ClassNames() {
		assert.NotEmpty(t, skills.ForClass(class), "class %s", class)
	}

	sk := skills.Get("thunder")
	require.NotNil(t, sk)
	assert.Equal(t, "术士", sk.ClassRequired)
	assert.Greater(t, sk.BaseDamageRate, 1.0)
	assert.Greater(t, sk.BaseManaCost, 0)

	// 等級成長單調
	assert.GreaterOrEqual(t, sk.DamageRateAt(5), sk.DamageRateAt(1))
	assert.GreaterOrEqual(t, sk.ManaCostAt(5), sk.ManaCostAt(1))
	// 非法等級往低夾
	assert.Equal(t, sk.DamageRateAt(1), sk.DamageRateAt(0))

	double := skills.Get("double_hit")
	require.NotNil(t, double)
	assert.Equal(t, 2, double.Hits)
}

func TestCatalogItemsWellFormed(t *testing.T) {
	items, err := LoadItems(catalogDir + "/items.yaml")
	require.NoError(t, err)

	lamp := items.Get("续命灯")
	require.NotNil(t, lamp)
	assert.False(t, lamp.IsUsable)

	stone := items.Get("enhance_stone")
	require.NotNil(t, stone)
	assert.Equal(t, ItemTypeMaterial, stone.ItemType)

	chest := items.Get("treasure_chest")
	require.NotNil(t, chest)
	require.NotNil(t, chest.UsageCondition)
	assert.Equal(t, 1, chest.UsageCondition.RequiredItems["chest_key"])
	require.NotNil(t, chest.UsageEffect)
	for _, rr := range chest.UsageEffect.RandomItems {
		assert.NotNil(t, items.Get(rr.ItemID))
		assert.LessOrEqual(t, rr.GuaranteedCount, rr.MaxCount)
	}

	for _, it := range items.ShopItems() {
		assert.Greater(t, it.Price, int64(0))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadItems(catalogDir + "/no_such_file.yaml")
	assert.Error(t, err)
}
