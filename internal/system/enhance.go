package system

import (
	"fmt"

	"github.com/jhgo/server/internal/scripting"
	"github.com/jhgo/server/internal/world"
	"go.uber.org/zap"
)

// EnhanceMaxLevel 強化等級上限，達到後不可再強化。
const EnhanceMaxLevel = 50

// EnhanceResult 是一次強化嘗試的狀態轉移，由呼叫端套用後的快照。
type EnhanceResult struct {
	Success   bool
	Chance    float64 // 本次判定用的成功率（封頂後）
	OldLevel  int
	NewLevel  int
	BonusRate float64 // 嘗試後角色的累積加成
	Message   string
}

// EnhanceSystem 負責裝備強化的狀態機。
type EnhanceSystem struct {
	deps *Deps
}

// NewEnhanceSystem 建立強化系統。
func NewEnhanceSystem(deps *Deps) *EnhanceSystem {
	return &EnhanceSystem{deps: deps}
}

// FindEquipment 在背包與身上找指定裝備（兩處都可強化）。
func (s *EnhanceSystem) FindEquipment(c *world.Character, equipmentID string) *world.Equipment {
	if eq, ok := c.Inventory.Equipment(equipmentID); ok {
		return eq
	}
	for _, eq := range c.Equipped {
		if eq != nil && eq.ID == equipmentID {
			return eq
		}
	}
	return nil
}

// Attempt 執行一次強化。前置不足時不消耗任何資源；通過後銀兩與強化石
// 無條件扣除，再擲骰定成敗。成功 +1 級並清空加成；失敗 −1 級（不低於
// 0）並累積加成。兩種結果都立即重算裝備屬性與名稱。
func (s *EnhanceSystem) Attempt(c *world.Character, eq *world.Equipment) (*EnhanceResult, error) {
	cfg := s.deps.Config.Enhance

	if eq.EnhanceLevel >= EnhanceMaxLevel {
		return nil, fmt.Errorf("已达到最高强化等级+%d", EnhanceMaxLevel)
	}
	if c.Money < cfg.MoneyCost {
		return nil, fmt.Errorf("银两不足，强化需要%d银两", cfg.MoneyCost)
	}
	if c.Inventory.ItemCount(cfg.ReagentItem) < 1 {
		return nil, fmt.Errorf("缺少强化材料")
	}

	c.SpendMoney(cfg.MoneyCost)
	c.Inventory.RemoveItem(cfg.ReagentItem, 1)

	chance := s.deps.Scripting.EnhanceChance(scripting.EnhanceContext{
		Level:     eq.EnhanceLevel,
		BonusRate: c.EnhanceBonusRate,
	})

	res := &EnhanceResult{Chance: chance, OldLevel: eq.EnhanceLevel}
	if world.RandFloat() < chance {
		res.Success = true
		eq.EnhanceLevel++
		c.EnhanceBonusRate = 0
		res.Message = fmt.Sprintf("强化成功！%s 强化等级提升到+%d", eq.TemplateName, eq.EnhanceLevel)
	} else {
		if eq.EnhanceLevel > 0 {
			eq.EnhanceLevel--
		}
		c.EnhanceBonusRate += cfg.FailBonus
		res.Message = fmt.Sprintf("强化失败，%s 强化等级降为+%d，下次成功率提升", eq.TemplateName, eq.EnhanceLevel)
	}
	res.NewLevel = eq.EnhanceLevel
	res.BonusRate = c.EnhanceBonusRate

	eq.RecalcStats()
	eq.UpdateName()
	UpdateStats(c)

	s.deps.Log.Info("強化嘗試",
		zap.String("player", c.Name),
		zap.String("equipment", eq.ID),
		zap.Int("old_level", res.OldLevel),
		zap.Int("new_level", res.NewLevel),
		zap.Float64("chance", chance),
		zap.Bool("success", res.Success),
	)
	return res, nil
}
