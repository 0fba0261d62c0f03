package system

import (
	"fmt"

	"github.com/jhgo/server/internal/data"
	"github.com/jhgo/server/internal/world"
	"go.uber.org/zap"
)

// SkillSystem 負責技能的學習與升級。
type SkillSystem struct {
	deps *Deps
}

// NewSkillSystem 建立技能系統。
func NewSkillSystem(deps *Deps) *SkillSystem {
	return &SkillSystem{deps: deps}
}

// Learn 學習一個職業技能，從 1 級開始。已學過或職業不符都會拒絕。
func (s *SkillSystem) Learn(c *world.Character, skillID string) (string, error) {
	sk := s.deps.Skills.Get(skillID)
	if sk == nil {
		return "", fmt.Errorf("未知技能: %s", skillID)
	}
	if sk.ClassRequired != "" && sk.ClassRequired != c.Class {
		return "", fmt.Errorf("职业不符，无法学习%s", sk.Name)
	}
	if c.SkillLevel(skillID) > 0 {
		return "", fmt.Errorf("已经学会了%s", sk.Name)
	}

	c.SkillLevels[skillID] = 1
	s.deps.Log.Info("技能學習",
		zap.String("player", c.Name),
		zap.String("skill", skillID),
	)
	return fmt.Sprintf("学会了%s！", sk.Name), nil
}

// Upgrade 將已學技能升一級。消耗按技能自身等級計費（與角色等級無
// 關），經驗與銀兩獨立扣除。
func (s *SkillSystem) Upgrade(c *world.Character, skillID string) (string, error) {
	sk := s.deps.Skills.Get(skillID)
	if sk == nil {
		return "", fmt.Errorf("未知技能: %s", skillID)
	}
	level := c.SkillLevel(skillID)
	if level <= 0 {
		return "", fmt.Errorf("尚未学会%s", sk.Name)
	}
	if level >= sk.MaxLevel {
		return "", fmt.Errorf("%s已达到最高等级", sk.Name)
	}

	expCost, moneyCost := sk.UpgradeCost(level)
	if c.Exp < expCost {
		return "", fmt.Errorf("经验不足，升级需要%d点经验", expCost)
	}
	if c.Money < moneyCost {
		return "", fmt.Errorf("银两不足，升级需要%d银两", moneyCost)
	}

	c.Exp -= expCost
	c.Money -= moneyCost
	c.SkillLevels[skillID] = level + 1

	s.deps.Log.Info("技能升級",
		zap.String("player", c.Name),
		zap.String("skill", skillID),
		zap.Int("level", level+1),
	)
	return fmt.Sprintf("%s升级到%d级！", sk.Name, level+1), nil
}

// Learnable 列出該角色職業可學的技能（不含基本攻擊）。
func (s *SkillSystem) Learnable(c *world.Character) []*data.SkillDef {
	return s.deps.Skills.ForClass(c.Class)
}
