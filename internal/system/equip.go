package system

import (
	"fmt"

	"github.com/jhgo/server/internal/data"
	"github.com/jhgo/server/internal/world"
	"go.uber.org/zap"
)

// EquipSystem 負責穿脫裝備與裝備後的屬性重算。
type EquipSystem struct {
	deps *Deps
}

// NewEquipSystem 建立裝備系統。
func NewEquipSystem(deps *Deps) *EquipSystem {
	return &EquipSystem{deps: deps}
}

// Equip 從背包穿上指定裝備。同部位已有裝備時先換回背包。
func (s *EquipSystem) Equip(c *world.Character, equipmentID string) (string, error) {
	eq, ok := c.Inventory.Equipment(equipmentID)
	if !ok {
		return "", fmt.Errorf("背包中没有该装备")
	}

	if eq.LevelRequired > c.Level {
		return "", fmt.Errorf("等级不足，需要%d级", eq.LevelRequired)
	}
	if eq.ClassRequired != "" && eq.ClassRequired != c.Class {
		return "", fmt.Errorf("职业不符，仅限%s使用", eq.ClassRequired)
	}
	if !data.SlotExists(eq.Slot) {
		return "", fmt.Errorf("未知装备部位: %s", eq.Slot)
	}

	c.Inventory.RemoveEquipment(equipmentID)
	if cur := c.Equipped[eq.Slot]; cur != nil {
		c.Inventory.AddEquipment(cur)
	}
	c.Equipped[eq.Slot] = eq
	// 穿上即綁定，之後不可轉讓。
	eq.IsBound = true
	UpdateStats(c)

	s.deps.Log.Debug("裝備穿上",
		zap.String("player", c.Name),
		zap.String("equipment", eq.Name),
		zap.String("slot", eq.Slot),
	)
	return fmt.Sprintf("成功装备 %s", eq.Name), nil
}

// Unequip 脫下指定部位的裝備放回背包。
func (s *EquipSystem) Unequip(c *world.Character, slot string) (string, error) {
	eq := c.Equipped[slot]
	if eq == nil {
		return "", fmt.Errorf("该部位没有装备")
	}

	delete(c.Equipped, slot)
	c.Inventory.AddEquipment(eq)
	UpdateStats(c)

	s.deps.Log.Debug("裝備脫下",
		zap.String("player", c.Name),
		zap.String("equipment", eq.Name),
		zap.String("slot", slot),
	)
	return fmt.Sprintf("已卸下 %s", eq.Name), nil
}
