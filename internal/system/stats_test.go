package system

import (
	"testing"

	"github.com/jhgo/server/internal/data"
	"github.com/jhgo/server/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatsGrowthLayer(t *testing.T) {
	c := newTestCharacter("甲", "术士")
	assert.Equal(t, data.StatBlock{
		MaxHealth: 80, MaxMana: 100, Attack: 20, Defense: 3,
		CritRate: 0.03, DodgeRate: 0.03,
	}, c.Stats)

	// 成長層與等級嚴格線性。
	c.Level = 5
	UpdateStats(c)
	assert.Equal(t, 400.0, c.Stats.MaxHealth)
	assert.Equal(t, 100.0, c.Stats.Attack)
	assert.InDelta(t, 0.15, c.Stats.CritRate, 1e-9)
}

func TestUpdateStatsIdempotent(t *testing.T) {
	c := newTestCharacter("甲", "战士")
	c.PillStats = data.StatBlock{MaxHealth: 30, Attack: 5}

	UpdateStats(c)
	first := c.Stats
	UpdateStats(c)
	UpdateStats(c)
	assert.Equal(t, first, c.Stats)
}

func TestUpdateStatsPillLayerOnlyFourStats(t *testing.T) {
	c := newTestCharacter("甲", "刺客")
	base := c.Stats
	c.PillStats = data.StatBlock{
		MaxHealth: 20, MaxMana: 10, Attack: 5, Defense: 3,
		// 暴擊/閃避即使被寫進丹藥層也不得生效。
		CritRate: 0.5, DodgeRate: 0.5,
	}
	UpdateStats(c)

	assert.Equal(t, base.MaxHealth+20, c.Stats.MaxHealth)
	assert.Equal(t, base.MaxMana+10, c.Stats.MaxMana)
	assert.Equal(t, base.Attack+5, c.Stats.Attack)
	assert.Equal(t, base.Defense+3, c.Stats.Defense)
	assert.Equal(t, base.CritRate, c.Stats.CritRate)
	assert.Equal(t, base.DodgeRate, c.Stats.DodgeRate)
}

func TestUpdateStatsEquipmentLayerRemovable(t *testing.T) {
	deps := newTestDeps(t)
	c := newTestCharacter("甲", "战士")
	before := c.Stats

	tmpl := deps.Templates.Get("iron_sword")
	require.NotNil(t, tmpl)
	eq := world.NewEquipment(tmpl, "普通", 5)
	eq.ExtraStats = map[string]world.ExtraStat{"attack": {Value: 4, Stars: 3}}

	c.Equipped["weapon"] = eq
	UpdateStats(c)
	assert.Equal(t, before.Attack+eq.BaseStats.Attack+4, c.Stats.Attack)

	delete(c.Equipped, "weapon")
	UpdateStats(c)
	assert.Equal(t, before, c.Stats)
}

func TestUpdateStatsClampsVitals(t *testing.T) {
	c := newTestCharacter("甲", "术士")
	c.CurrentHealth = 9999
	c.CurrentMana = -5
	UpdateStats(c)
	assert.Equal(t, c.Stats.MaxHealth, c.CurrentHealth)
	assert.Equal(t, 0.0, c.CurrentMana)
}
