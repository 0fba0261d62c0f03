package system

import (
	"fmt"
	"strings"

	"github.com/jhgo/server/internal/data"
	"github.com/jhgo/server/internal/world"
	"go.uber.org/zap"
)

// ItemSystem 負責道具的使用、購買、出售與銷毀。
type ItemSystem struct {
	deps *Deps
}

// NewItemSystem 建立道具系統。
func NewItemSystem(deps *Deps) *ItemSystem {
	return &ItemSystem{deps: deps}
}

// Use 使用一個背包道具：先驗前置（等級、伴隨道具），再套用效果
// （屬性變化、道具增減、隨機獎勵），最後扣掉一個。回傳效果描述。
func (s *ItemSystem) Use(c *world.Character, itemID string) (string, error) {
	if c.Inventory.ItemCount(itemID) < 1 {
		return "", fmt.Errorf("背包中没有该物品")
	}
	it := s.deps.Items.Get(itemID)
	if it == nil {
		return "", fmt.Errorf("未知物品: %s", itemID)
	}
	if !it.IsUsable {
		return "", fmt.Errorf("%s不可使用", it.Name)
	}

	if cond := it.UsageCondition; cond != nil {
		if cond.LevelRequired > c.Level {
			return "", fmt.Errorf("需要等级%d", cond.LevelRequired)
		}
		for reqID, reqCount := range cond.RequiredItems {
			if c.Inventory.ItemCount(reqID) < reqCount {
				name := reqID
				if req := s.deps.Items.Get(reqID); req != nil {
					name = req.Name
				}
				return "", fmt.Errorf("需要%d个%s", reqCount, name)
			}
		}
	}

	var effects []string
	if eff := it.UsageEffect; eff != nil {
		effects = append(effects, s.applyStatChanges(c, eff.StatChanges)...)
		effects = append(effects, s.applyItemChanges(c, eff)...)
		if it.IsPermanentBuff {
			UpdateStats(c)
		}
	}

	c.Inventory.RemoveItem(itemID, 1)

	s.deps.Log.Debug("道具使用",
		zap.String("player", c.Name),
		zap.String("item", itemID),
	)
	if len(effects) == 0 {
		return fmt.Sprintf("使用了%s", it.Name), nil
	}
	return strings.Join(effects, "、"), nil
}

// applyStatChanges 套用屬性變化。pill_ 前綴進永久丹藥層；health/mana
// 按上限封頂回復；其餘鍵忽略。
func (s *ItemSystem) applyStatChanges(c *world.Character, changes map[string]float64) []string {
	var out []string
	for key, v := range changes {
		switch {
		case strings.HasPrefix(key, "pill_"):
			stat := strings.TrimPrefix(key, "pill_")
			c.PillStats.AddKey(stat, v)
			out = append(out, fmt.Sprintf("永久%s增加了%.0f", data.StatNames[stat], v))
		case key == "health":
			old := c.CurrentHealth
			c.CurrentHealth += v
			if c.CurrentHealth > c.Stats.MaxHealth {
				c.CurrentHealth = c.Stats.MaxHealth
			}
			if gained := c.CurrentHealth - old; gained > 0 {
				out = append(out, fmt.Sprintf("恢复了%.0f点生命值", gained))
			}
		case key == "mana":
			old := c.CurrentMana
			c.CurrentMana += v
			if c.CurrentMana > c.Stats.MaxMana {
				c.CurrentMana = c.Stats.MaxMana
			}
			if gained := c.CurrentMana - old; gained > 0 {
				out = append(out, fmt.Sprintf("恢复了%.0f点魔法值", gained))
			}
		}
	}
	return out
}

// applyItemChanges 套用道具增減與隨機獎勵。隨機獎勵先給保底數量，剩餘
// 名額逐個獨立判定。
func (s *ItemSystem) applyItemChanges(c *world.Character, eff *data.UsageEffect) []string {
	var gained []string

	for id, delta := range eff.ItemChanges {
		if delta < 0 {
			c.Inventory.RemoveItem(id, -delta)
		} else if delta > 0 {
			if it := s.deps.Items.Get(id); it != nil {
				c.Inventory.AddItem(id, it.Name, delta)
				gained = append(gained, fmt.Sprintf("%sx%d", it.Name, delta))
			}
		}
	}

	for _, rr := range eff.RandomItems {
		total := rr.GuaranteedCount
		for i := rr.GuaranteedCount; i < rr.MaxCount; i++ {
			if world.RandFloat() < rr.Chance {
				total++
			}
		}
		if total <= 0 {
			continue
		}
		if it := s.deps.Items.Get(rr.ItemID); it != nil {
			c.Inventory.AddItem(rr.ItemID, it.Name, total)
			gained = append(gained, fmt.Sprintf("%sx%d", it.Name, total))
		}
	}

	if len(gained) == 0 {
		return nil
	}
	return []string{"获得了: " + strings.Join(gained, ", ")}
}

// Buy 從商店購買指定數量的道具。
func (s *ItemSystem) Buy(c *world.Character, itemID string, quantity int) (string, error) {
	if quantity <= 0 {
		return "", fmt.Errorf("购买数量必须大于0")
	}
	it := s.deps.Items.Get(itemID)
	if it == nil || it.Price <= 0 {
		return "", fmt.Errorf("物品不存在")
	}
	total := it.Price * int64(quantity)
	if !c.SpendMoney(total) {
		return "", fmt.Errorf("余额不足")
	}
	c.Inventory.AddItem(itemID, it.Name, quantity)

	s.deps.Log.Debug("商店購買",
		zap.String("player", c.Name),
		zap.String("item", itemID),
		zap.Int("quantity", quantity),
		zap.Int64("cost", total),
	)
	return fmt.Sprintf("成功购买%d个%s，花费%d银两", quantity, it.Name, total), nil
}

// SellEquipment 出售一件背包裝備，價格按稀有度基準 × 星級。
func (s *ItemSystem) SellEquipment(c *world.Character, equipmentID string) (string, error) {
	eq, ok := c.Inventory.Equipment(equipmentID)
	if !ok {
		return "", fmt.Errorf("背包中没有该装备")
	}
	price := eq.SellPrice()
	c.Inventory.RemoveEquipment(equipmentID)
	c.Money += price
	return fmt.Sprintf("出售%s获得%d银两", eq.Name, price), nil
}

// Destroy 直接銷毀一個背包條目（道具整疊或單件裝備）。
func (s *ItemSystem) Destroy(c *world.Character, entryID string) error {
	if _, ok := c.Inventory[entryID]; !ok {
		return fmt.Errorf("背包中没有该物品")
	}
	delete(c.Inventory, entryID)
	return nil
}
