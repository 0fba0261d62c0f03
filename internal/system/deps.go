package system

import (
	"github.com/jhgo/server/internal/config"
	"github.com/jhgo/server/internal/data"
	"github.com/jhgo/server/internal/scripting"
	"github.com/jhgo/server/internal/world"
	"go.uber.org/zap"
)

// Deps 聚合所有系統共用的依賴（設定、日誌、靜態表、腳本引擎、世界狀態）。
// 系統本身不做 I/O；存檔由外層 web/persist 負責。
type Deps struct {
	Config    *config.Config
	Log       *zap.Logger
	Templates *data.EquipmentTemplateTable
	Monsters  *data.MonsterTable
	Items     *data.ItemTable
	Skills    *data.SkillTable
	Locations *data.LocationTable
	Scripting *scripting.Engine
	World     *world.State
}
