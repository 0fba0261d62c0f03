package system

import (
	"fmt"

	"github.com/jhgo/server/internal/data"
	"github.com/jhgo/server/internal/world"
	"go.uber.org/zap"
)

// CombatEvent 是一次攻擊動作的完整結算結果。結算只回傳事件，不留任何
// 隱藏狀態；呼叫端（回合流程、測試）據此組訊息。
type CombatEvent struct {
	Actor     string
	Target    string
	SkillID   string
	SkillName string
	Damage    float64
	Hits      int
	Crit      bool
	Dodged    bool
	ManaSpent int
	Failed    bool
	Message   string
}

// ExchangeResult 是一個完整回合（玩家動作 + 怪物反擊）的結果。
type ExchangeResult struct {
	PlayerEvent  CombatEvent
	MonsterEvent *CombatEvent
	Victory      bool
	Defeated     bool
	Loot         *Loot
	ExpGained    int64
	LevelsGained int
	Messages     []string
}

// CombatSystem 負責怪物遭遇的回合結算。
type CombatSystem struct {
	deps *Deps
	loot *LootSystem
}

// NewCombatSystem 建立戰鬥系統。
func NewCombatSystem(deps *Deps, loot *LootSystem) *CombatSystem {
	return &CombatSystem{deps: deps, loot: loot}
}

// EnterEncounter 為此會話產生（或重置）當前場景的怪物。每個會話有自己
// 的怪物實例；不死怪每次進入都回滿血。
func (s *CombatSystem) EnterEncounter(sess *world.Session) (*world.Monster, error) {
	c := sess.Character
	loc := s.deps.Locations.Get(c.Location)
	if loc == nil || loc.MonsterType == "" {
		return nil, fmt.Errorf("此处没有怪物")
	}
	cur := sess.Encounter
	if cur != nil && cur.MonsterID == loc.MonsterType && cur.IsAlive() && !cur.Immortal {
		return cur, nil
	}
	def := s.deps.Monsters.Get(loc.MonsterType)
	if def == nil {
		return nil, fmt.Errorf("未知怪物: %s", loc.MonsterType)
	}
	sess.Encounter = world.SpawnMonster(def)
	return sess.Encounter, nil
}

// LeaveEncounter 放棄當前遭遇。
func (s *CombatSystem) LeaveEncounter(sess *world.Session) {
	sess.Encounter = nil
}

// Fight 執行一個回合：玩家以指定技能（或 attack）出手，怪物若存活則
// 反擊。怪物死亡觸發掉落與經驗結算；玩家死亡觸發經驗懲罰。
func (s *CombatSystem) Fight(sess *world.Session, skillID string) (*ExchangeResult, error) {
	c := sess.Character
	m := sess.Encounter
	if m == nil {
		return nil, fmt.Errorf("当前没有战斗目标")
	}
	if !c.IsAlive() {
		return nil, fmt.Errorf("你已经死亡，无法战斗")
	}
	if !m.Killable {
		return nil, fmt.Errorf("%s不可攻击", m.Name)
	}

	res := &ExchangeResult{}
	res.PlayerEvent = s.playerAct(c, m, skillID)
	res.Messages = append(res.Messages, res.PlayerEvent.Message)

	// 先判定勝負再考慮反擊：已倒下的怪物不得反擊。
	if !m.IsAlive() {
		res.Victory = true
		s.settleVictory(sess, res)
		return res, nil
	}

	ev := monsterRetaliate(m, c)
	res.MonsterEvent = &ev
	res.Messages = append(res.Messages, ev.Message)

	if !c.IsAlive() {
		res.Defeated = true
		res.Messages = append(res.Messages, fmt.Sprintf("你被%s打败了", m.Name))
		s.deps.Log.Info("戰鬥失敗",
			zap.String("player", c.Name),
			zap.String("monster", m.MonsterID),
		)
	}
	return res, nil
}

// playerAct 結算玩家的出手。技能未學、法力不足都算失敗動作，但回合照
// 樣被消耗。
func (s *CombatSystem) playerAct(c *world.Character, m *world.Monster, skillID string) CombatEvent {
	if skillID == "" || skillID == data.AttackSkillID {
		return resolveAttack(c.Name, m.Name, c.Stats.Attack, c.Stats.CritRate,
			m.Stats.DodgeRate, m.Stats.Defense, &m.CurrentHealth)
	}

	sk := s.deps.Skills.Get(skillID)
	level := c.SkillLevel(skillID)
	if sk == nil || level <= 0 {
		return CombatEvent{
			Actor: c.Name, Target: m.Name, SkillID: skillID,
			Failed:  true,
			Message: "技能未学习",
		}
	}

	cost := sk.ManaCostAt(level)
	if c.CurrentMana < float64(cost) {
		return CombatEvent{
			Actor: c.Name, Target: m.Name, SkillID: skillID, SkillName: sk.Name,
			Failed:  true,
			Message: fmt.Sprintf("魔法值不足，需要%d点魔法值", cost),
		}
	}
	c.CurrentMana -= float64(cost)

	ev := resolveSkill(c.Name, m.Name, sk, level, c.Stats.Attack, c.Stats.CritRate,
		m.Stats.DodgeRate, m.Stats.Defense, &m.CurrentHealth)
	ev.ManaSpent = cost
	return ev
}

// monsterRetaliate 結算怪物的普通攻擊反擊。
func monsterRetaliate(m *world.Monster, c *world.Character) CombatEvent {
	return resolveAttack(m.Name, c.Name, m.Stats.Attack, m.Stats.CritRate,
		c.Stats.DodgeRate, c.Stats.Defense, &c.CurrentHealth)
}

// resolveAttack 結算一次普通攻擊：先判閃避（完全免傷且不再判暴擊），
// 再算傷害 max(0, 攻 − 防)，暴擊雙倍。
func resolveAttack(actor, target string, atk, critRate, dodgeRate, def float64, targetHealth *float64) CombatEvent {
	ev := CombatEvent{Actor: actor, Target: target, SkillID: data.AttackSkillID, SkillName: "普通攻击", Hits: 1}

	if world.RandFloat() < dodgeRate {
		ev.Dodged = true
		ev.Message = fmt.Sprintf("%s使用了普通攻击，被%s闪避了", actor, target)
		return ev
	}

	damage := atk - def
	if damage < 0 {
		damage = 0
	}
	if world.RandFloat() <= critRate {
		damage *= 2
		ev.Crit = true
	}
	*targetHealth -= damage
	if *targetHealth < 0 {
		*targetHealth = 0
	}
	ev.Damage = damage
	if ev.Crit {
		ev.Message = fmt.Sprintf("%s使用了普通攻击，对%s造成了%.0f点伤害(暴击!)", actor, target, damage)
	} else {
		ev.Message = fmt.Sprintf("%s使用了普通攻击，对%s造成了%.0f点伤害", actor, target, damage)
	}
	return ev
}

// resolveSkill 結算一次技能攻擊：整個技能只判一次閃避；命中後每段傷害
// 獨立判暴擊，基礎傷害 max(0, 攻×倍率 − 防)。
func resolveSkill(actor, target string, sk *data.SkillDef, level int, atk, critRate, dodgeRate, def float64, targetHealth *float64) CombatEvent {
	ev := CombatEvent{Actor: actor, Target: target, SkillID: sk.SkillID, SkillName: sk.Name, Hits: sk.Hits}

	if world.RandFloat() < dodgeRate {
		ev.Dodged = true
		ev.Message = fmt.Sprintf("%s使用了%s，被%s闪避了", actor, sk.Name, target)
		return ev
	}

	base := atk*sk.DamageRateAt(level) - def
	if base < 0 {
		base = 0
	}
	total := 0.0
	for i := 0; i < sk.Hits; i++ {
		damage := base
		if world.RandFloat() <= critRate {
			damage *= 2
			ev.Crit = true
		}
		total += damage
	}
	*targetHealth -= total
	if *targetHealth < 0 {
		*targetHealth = 0
	}
	ev.Damage = total
	ev.Message = fmt.Sprintf("%s使用了%s，对%s造成了%.0f点伤害", actor, sk.Name, target, total)
	if ev.Crit && sk.Hits == 1 {
		ev.Message += "(暴击!)"
	}
	return ev
}

// settleVictory 怪物死亡後的結算：掉落入包、金錢經驗入帳、升級檢查，
// 並清掉本次遭遇。
func (s *CombatSystem) settleVictory(sess *world.Session, res *ExchangeResult) {
	c := sess.Character
	m := sess.Encounter

	loot := s.loot.Generate(m)
	res.Loot = loot

	lootName := ""
	if loot.Equipment != nil {
		c.Inventory.AddEquipment(loot.Equipment)
		lootName = loot.Equipment.Name
	} else if loot.ItemID != "" {
		if it := s.deps.Items.Get(loot.ItemID); it != nil {
			c.Inventory.AddItem(it.ItemID, it.Name, loot.ItemCount)
			lootName = it.Name
		}
	}

	money := int64(float64(loot.Money) * s.deps.Config.Rates.GoldRate)
	exp := int64(float64(loot.Experience) * s.deps.Config.Rates.ExpRate)
	c.Money += money
	res.ExpGained = exp
	res.LevelsGained = GainExp(c, exp)

	msg := fmt.Sprintf("你击败了%s！", m.Name)
	if lootName != "" {
		msg += fmt.Sprintf("获得了%s，", lootName)
	} else {
		msg += "这次什么也没掉落，"
	}
	msg += fmt.Sprintf("经验增加了%d，获得%d银两。", exp, money)
	res.Messages = append(res.Messages, msg)
	if res.LevelsGained > 0 {
		res.Messages = append(res.Messages, fmt.Sprintf("等级提升到%d级！", c.Level))
	}

	s.deps.Log.Info("戰鬥勝利",
		zap.String("player", c.Name),
		zap.String("monster", m.MonsterID),
		zap.Int64("money", money),
		zap.Int64("exp", exp),
	)
	sess.Encounter = nil
}

// GainExp 累加經驗並處理升級：每級門檻 ×1.5，升級回滿血魔。回傳升了
// 幾級。
func GainExp(c *world.Character, exp int64) int {
	if exp <= 0 {
		return 0
	}
	c.Exp += exp
	levels := 0
	for c.Exp >= c.ExpToNext {
		c.Exp -= c.ExpToNext
		c.ExpToNext = int64(float64(c.ExpToNext) * 1.5)
		c.Level++
		levels++
		UpdateStats(c)
		c.CurrentHealth = c.Stats.MaxHealth
		c.CurrentMana = c.Stats.MaxMana
	}
	return levels
}

// ApplyDeathPenalty 死亡經驗懲罰：扣掉當前經驗的 10%（向下取整，不為
// 負）。回傳損失量。
func ApplyDeathPenalty(c *world.Character) int64 {
	if c.Exp <= 0 {
		return 0
	}
	lost := int64(float64(c.Exp) * 0.1)
	if lost < 0 {
		lost = 0
	}
	c.Exp -= lost
	return lost
}

// ReviveItemID 全量復活所消耗的道具。
const ReviveItemID = "续命灯"

// ReviveWithItem 消耗一盞續命燈回滿血。
func (s *CombatSystem) ReviveWithItem(c *world.Character) error {
	if !c.Inventory.RemoveItem(ReviveItemID, 1) {
		return fmt.Errorf("没有续命灯，无法复活！")
	}
	c.CurrentHealth = c.Stats.MaxHealth
	return nil
}

// WeakRevive 虛弱復活：不消耗任何資源，血量回到 max(10, 上限//10)。
func (s *CombatSystem) WeakRevive(c *world.Character) {
	h := float64(int64(c.Stats.MaxHealth) / 10)
	if h < 10 {
		h = 10
	}
	c.CurrentHealth = h
}
