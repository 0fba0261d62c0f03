package world

import (
	"testing"

	"github.com/jhgo/server/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterRecordRoundTrip(t *testing.T) {
	c := NewCharacter("李寻欢", "刺客")
	c.Level = 7
	c.Exp = 123
	c.ExpToNext = 853
	c.Money = 4567
	c.PillStats = data.StatBlock{MaxHealth: 40, Attack: 10}
	c.SkillLevels["double_hit"] = 3
	c.EnhanceBonusRate = 0.15
	c.Location = "黑风山.山道"
	c.CurrentHealth = 321
	c.CurrentMana = 88

	c.Inventory.AddItem("health_potion", "金疮药", 5)
	bagged := NewEquipment(testTemplate(), "卓越", 4)
	c.Inventory.AddEquipment(bagged)
	worn := NewEquipment(testTemplate(), "精良", 5)
	worn.EnhanceLevel = 6
	worn.RecalcStats()
	worn.UpdateName()
	worn.IsBound = true
	c.Equipped["weapon"] = worn

	raw, err := EncodeCharacter(c)
	require.NoError(t, err)

	back, err := DecodeCharacter(raw)
	require.NoError(t, err)

	assert.Equal(t, c.Name, back.Name)
	assert.Equal(t, c.Class, back.Class)
	assert.Equal(t, c.Level, back.Level)
	assert.Equal(t, c.Exp, back.Exp)
	assert.Equal(t, c.ExpToNext, back.ExpToNext)
	assert.Equal(t, c.Money, back.Money)
	assert.Equal(t, c.PillStats, back.PillStats)
	assert.Equal(t, c.CurrentHealth, back.CurrentHealth)
	assert.Equal(t, c.CurrentMana, back.CurrentMana)
	assert.Equal(t, c.SkillLevels, back.SkillLevels)
	assert.Equal(t, c.EnhanceBonusRate, back.EnhanceBonusRate)
	assert.Equal(t, c.Location, back.Location)
	assert.Equal(t, c.CreatedAt.Unix(), back.CreatedAt.Unix())

	assert.Equal(t, 5, back.Inventory.ItemCount("health_potion"))
	gotBag, ok := back.Inventory.Equipment(bagged.ID)
	require.True(t, ok)
	assert.Equal(t, bagged.TotalStats(), gotBag.TotalStats())

	gotWorn := back.Equipped["weapon"]
	require.NotNil(t, gotWorn)
	assert.True(t, gotWorn.IsBound)
	assert.Equal(t, worn.EnhanceLevel, gotWorn.EnhanceLevel)
	assert.Equal(t, worn.TotalStats(), gotWorn.TotalStats())

	// 成長層由等級推導，不入檔。
	cls, _ := data.GetClass("刺客")
	assert.Equal(t, cls.GrowthStats.Scale(7), back.BaseStats)
}

func TestDecodeCharacterDefaults(t *testing.T) {
	back, err := DecodeCharacter([]byte(`{"name":"楚留香","player_class":"战士"}`))
	require.NoError(t, err)

	assert.Equal(t, 1, back.Level)
	assert.Equal(t, int64(50), back.ExpToNext)
	assert.Equal(t, map[string]int{data.AttackSkillID: 1}, back.SkillLevels)
	assert.Equal(t, "新手村.广场", back.Location)
	assert.NotNil(t, back.Equipped)
	assert.NotNil(t, back.Inventory)
	assert.False(t, back.CreatedAt.IsZero())
}

func TestDecodeCharacterRejectsBadRecords(t *testing.T) {
	_, err := DecodeCharacter([]byte(`{"player_class":"战士"}`))
	assert.Error(t, err)

	_, err = DecodeCharacter([]byte(`{"name":"某人","player_class":"乞丐"}`))
	assert.Error(t, err)

	_, err = DecodeCharacter([]byte(`not json`))
	assert.Error(t, err)
}
