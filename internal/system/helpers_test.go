package system

import (
	"testing"

	"github.com/jhgo/server/internal/config"
	"github.com/jhgo/server/internal/data"
	"github.com/jhgo/server/internal/scripting"
	"github.com/jhgo/server/internal/world"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestDeps 以真實資料表與預設設定組一份系統依賴，順帶驗證隨庫
// 資料檔可正常載入。
func newTestDeps(t *testing.T) *Deps {
	t.Helper()

	templates, err := data.LoadEquipmentTemplates("../../data/yaml/equipment_templates.yaml")
	require.NoError(t, err)
	monsters, err := data.LoadMonsters("../../data/yaml/monsters.yaml")
	require.NoError(t, err)
	items, err := data.LoadItems("../../data/yaml/items.yaml")
	require.NoError(t, err)
	skills, err := data.LoadSkills("../../data/yaml/skills.yaml")
	require.NoError(t, err)
	locations, err := data.LoadLocations("../../data/yaml/locations.yaml")
	require.NoError(t, err)

	engine, err := scripting.NewEngine("", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	return &Deps{
		Config:    config.Defaults(),
		Log:       zap.NewNop(),
		Templates: templates,
		Monsters:  monsters,
		Items:     items,
		Skills:    skills,
		Locations: locations,
		Scripting: engine,
		World:     world.NewState(),
	}
}

func newTestCharacter(name, class string) *world.Character {
	c := world.NewCharacter(name, class)
	UpdateStats(c)
	c.CurrentHealth = c.Stats.MaxHealth
	c.CurrentMana = c.Stats.MaxMana
	return c
}
