package system

import (
	"fmt"
	"time"

	"github.com/jhgo/server/internal/data"
	"github.com/jhgo/server/internal/world"
	"go.uber.org/zap"
)

// PKResult 是一次 PK 出手的結算。
type PKResult struct {
	Event          CombatEvent
	Opponent       string
	Victory        bool
	MoneyStolen    int64
	EquipmentTaken string
	Messages       []string
}

// PKSystem 是玩家對戰的協調器：挑戰 → 接受 → 出手（帶冷卻） → 結算。
// 所有跨會話操作都以 world.LockPair 取雙鎖，鎖序固定，不會互等。
type PKSystem struct {
	deps *Deps
}

// NewPKSystem 建立 PK 系統。
func NewPKSystem(deps *Deps) *PKSystem {
	return &PKSystem{deps: deps}
}

// checkReady 驗證雙方都可進入 PK：活著、不在戰鬥或其他 PK 中、同一
// 場景。呼叫端須已持有雙方的鎖。
func checkReady(a, b *world.Session) error {
	for _, s := range []*world.Session{a, b} {
		if !s.Character.IsAlive() {
			return fmt.Errorf("%s已经死亡，无法切磋", s.Character.Name)
		}
		if s.Encounter != nil {
			return fmt.Errorf("%s正在战斗中", s.Character.Name)
		}
		if s.PKStatus == world.PKActive {
			return fmt.Errorf("%s正在切磋中", s.Character.Name)
		}
	}
	if a.Character.Location != b.Character.Location {
		return fmt.Errorf("对方不在同一场景")
	}
	return nil
}

// Challenge 向同場景玩家發起挑戰，發起方進入 Pending。
func (s *PKSystem) Challenge(challenger *world.Session, targetName string) error {
	target, ok := s.deps.World.Get(targetName)
	if !ok {
		return fmt.Errorf("玩家%s不在线", targetName)
	}
	unlock := world.LockPair(challenger, target)
	defer unlock()

	if err := checkReady(challenger, target); err != nil {
		return err
	}
	challenger.PKStatus = world.PKPending
	challenger.PKOpponent = targetName

	s.deps.Log.Info("PK挑戰",
		zap.String("challenger", challenger.Character.Name),
		zap.String("target", targetName),
	)
	return nil
}

// Accept 接受挑戰。前置條件重新驗證後雙方對稱進入 Active。
func (s *PKSystem) Accept(target *world.Session, challengerName string) error {
	challenger, ok := s.deps.World.Get(challengerName)
	if !ok {
		return fmt.Errorf("玩家%s不在线", challengerName)
	}
	unlock := world.LockPair(target, challenger)
	defer unlock()

	if challenger.PKStatus != world.PKPending || challenger.PKOpponent != target.Character.Name {
		return fmt.Errorf("没有来自%s的挑战", challengerName)
	}
	challenger.PKStatus = world.PKIdle
	if err := checkReady(target, challenger); err != nil {
		challenger.PKOpponent = ""
		return err
	}

	// 雙方對稱進入 Active，首次出手不受冷卻限制。
	start := time.Now().Add(-s.deps.Config.PK.ActionCooldown)
	challenger.PKStatus = world.PKActive
	challenger.PKOpponent = target.Character.Name
	challenger.LastPKAction = start
	target.PKStatus = world.PKActive
	target.PKOpponent = challengerName
	target.LastPKAction = start

	s.deps.Log.Info("PK開始",
		zap.String("challenger", challengerName),
		zap.String("target", target.Character.Name),
	)
	return nil
}

// Attack 在 PK 中出手一次。對手不會自動反擊，雙方各自出手，各自受
// 2 秒動作冷卻約束；過快的出手被拒絕並回報剩餘等待時間。
func (s *PKSystem) Attack(attacker *world.Session, skillID string) (*PKResult, error) {
	attacker.Lock()
	status, opponentName := attacker.PKStatus, attacker.PKOpponent
	attacker.Unlock()
	if status != world.PKActive || opponentName == "" {
		return nil, fmt.Errorf("你不在切磋中")
	}
	defender, ok := s.deps.World.Get(opponentName)
	if !ok {
		attacker.Lock()
		s.resetPK(attacker)
		attacker.Unlock()
		return nil, fmt.Errorf("对手已离线")
	}
	unlock := world.LockPair(attacker, defender)
	defer unlock()

	// 取到雙鎖後重驗狀態：對手的並發出手可能已在等鎖期間結算本局。
	if attacker.PKStatus != world.PKActive || attacker.PKOpponent != defender.Character.Name {
		return nil, fmt.Errorf("切磋已经结束")
	}

	now := time.Now()
	if wait := s.deps.Config.PK.ActionCooldown - now.Sub(attacker.LastPKAction); wait > 0 {
		return nil, fmt.Errorf("攻击太快，请等待%.1f秒", wait.Seconds())
	}
	if !attacker.Character.IsAlive() {
		return nil, fmt.Errorf("你已经死亡，无法攻击")
	}
	attacker.LastPKAction = now

	res := &PKResult{
		Event:    s.duelAct(attacker.Character, defender.Character, skillID),
		Opponent: defender.Character.Name,
	}
	res.Messages = append(res.Messages, res.Event.Message)

	if !defender.Character.IsAlive() {
		res.Victory = true
		s.settle(attacker, defender, res)
	}
	return res, nil
}

// duelAct 結算 PK 中的一次出手，規則與打怪一致。
func (s *PKSystem) duelAct(att, def *world.Character, skillID string) CombatEvent {
	if skillID == "" || skillID == data.AttackSkillID {
		return resolveAttack(att.Name, def.Name, att.Stats.Attack, att.Stats.CritRate,
			def.Stats.DodgeRate, def.Stats.Defense, &def.CurrentHealth)
	}
	sk := s.deps.Skills.Get(skillID)
	level := att.SkillLevel(skillID)
	if sk == nil || level <= 0 {
		return CombatEvent{Actor: att.Name, Target: def.Name, SkillID: skillID, Failed: true, Message: "技能未学习"}
	}
	cost := sk.ManaCostAt(level)
	if att.CurrentMana < float64(cost) {
		return CombatEvent{
			Actor: att.Name, Target: def.Name, SkillID: skillID, SkillName: sk.Name,
			Failed:  true,
			Message: fmt.Sprintf("魔法值不足，需要%d点魔法值", cost),
		}
	}
	att.CurrentMana -= float64(cost)
	ev := resolveSkill(att.Name, def.Name, sk, level, att.Stats.Attack, att.Stats.CritRate,
		def.Stats.DodgeRate, def.Stats.Defense, &def.CurrentHealth)
	ev.ManaSpent = cost
	return ev
}

// settle 敗方倒地後的結算：勝方奪走敗方 0.3%~1.3% 的銀兩（整數，敗方
// 精確扣除同額），敗方若持有任何未綁定裝備則隨機一件無條件易主。結算
// 後雙方狀態一律回到 Idle。
func (s *PKSystem) settle(winner, loser *world.Session, res *PKResult) {
	w, l := winner.Character, loser.Character
	cfg := s.deps.Config.PK

	frac := cfg.MoneyStealMin + world.RandFloat()*(cfg.MoneyStealMax-cfg.MoneyStealMin)
	stolen := int64(float64(l.Money) * frac)
	l.Money -= stolen
	w.Money += stolen
	res.MoneyStolen = stolen

	if eq := randomUnboundEquipment(l); eq != nil {
		l.Inventory.RemoveEquipment(eq.ID)
		w.Inventory.AddEquipment(eq)
		res.EquipmentTaken = eq.Name
	}

	res.Messages = append(res.Messages, fmt.Sprintf("你击败了%s！", l.Name))
	if stolen > 0 {
		res.Messages = append(res.Messages, fmt.Sprintf("夺走了%d银两", stolen))
	}
	if res.EquipmentTaken != "" {
		res.Messages = append(res.Messages, fmt.Sprintf("夺走了%s", res.EquipmentTaken))
	}

	winner.PKStatus = world.PKResolved
	loser.PKStatus = world.PKResolved
	s.resetPK(winner)
	s.resetPK(loser)

	s.deps.Log.Info("PK結算",
		zap.String("winner", w.Name),
		zap.String("loser", l.Name),
		zap.Int64("money", stolen),
		zap.String("equipment", res.EquipmentTaken),
	)
}

// resetPK 清空一側的 PK 狀態。
func (s *PKSystem) resetPK(sess *world.Session) {
	sess.PKStatus = world.PKIdle
	sess.PKOpponent = ""
}

// Forfeit 主動認輸或離線時中止 PK，雙方回到 Idle。
func (s *PKSystem) Forfeit(sess *world.Session) {
	sess.Lock()
	opponentName := sess.PKOpponent
	sess.Unlock()

	if opponentName != "" {
		if opp, ok := s.deps.World.Get(opponentName); ok {
			unlock := world.LockPair(sess, opp)
			// 雙鎖下重驗對手仍指向自己，避免清掉對手的下一局。
			if opp.PKOpponent == sess.Character.Name {
				s.resetPK(opp)
			}
			s.resetPK(sess)
			unlock()
			return
		}
	}
	sess.Lock()
	s.resetPK(sess)
	sess.Unlock()
}

// randomUnboundEquipment 在背包中均勻挑一件未綁定裝備。
func randomUnboundEquipment(c *world.Character) *world.Equipment {
	var unbound []*world.Equipment
	for _, eq := range c.Inventory.Equipments() {
		if !eq.IsBound {
			unbound = append(unbound, eq)
		}
	}
	if len(unbound) == 0 {
		return nil
	}
	return unbound[world.RandInt(len(unbound))]
}
