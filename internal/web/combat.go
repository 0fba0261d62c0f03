package web

import (
	"fmt"
	"net/http"

	"github.com/jhgo/server/internal/system"
	"github.com/jhgo/server/internal/world"
)

// handleFight 出手一回合。尚未進入遭遇時先生成怪物。
func (s *Server) handleFight(w http.ResponseWriter, r *http.Request, account string, sess *world.Session) {
	var req struct {
		Skill string `json:"skill"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	if sess.PKStatus == world.PKActive {
		writeErr(w, http.StatusConflict, fmt.Errorf("切磋中无法打怪"))
		return
	}
	if sess.Encounter == nil {
		if _, err := s.combat.EnterEncounter(sess); err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
	}

	res, err := s.combat.Fight(sess, req.Skill)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}

	data := map[string]interface{}{
		"messages":  res.Messages,
		"character": viewCharacter(sess.Character),
		"monster":   viewMonster(sess.Encounter),
		"victory":   res.Victory,
		"defeated":  res.Defeated,
	}
	if res.Defeated {
		lost := system.ApplyDeathPenalty(sess.Character)
		data["lost_experience"] = lost
	}
	s.save(r.Context(), account, sess.Character)
	writeOK(w, "", data)
}

// handleFlee 脫離當前遭遇。
func (s *Server) handleFlee(w http.ResponseWriter, r *http.Request, account string, sess *world.Session) {
	s.combat.LeaveEncounter(sess)
	s.save(r.Context(), account, sess.Character)
	writeOK(w, "你逃离了战斗", nil)
}

// handleRevive 復活：item = 消耗續命燈滿血；weak = 無條件虛弱復活。
func (s *Server) handleRevive(w http.ResponseWriter, r *http.Request, account string, sess *world.Session) {
	var req struct {
		Method string `json:"method"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	c := sess.Character
	switch req.Method {
	case "item":
		if err := s.combat.ReviveWithItem(c); err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
	case "weak":
		s.combat.WeakRevive(c)
	default:
		writeErr(w, http.StatusBadRequest, fmt.Errorf("未知复活方式: %s", req.Method))
		return
	}
	sess.Encounter = nil
	s.save(r.Context(), account, c)
	writeOK(w, "你活过来了", viewCharacter(c))
}

// handleEquip 穿裝備。
func (s *Server) handleEquip(w http.ResponseWriter, r *http.Request, account string, sess *world.Session) {
	var req struct {
		EquipmentID string `json:"equipment_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	msg, err := s.equip.Equip(sess.Character, req.EquipmentID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	s.save(r.Context(), account, sess.Character)
	writeOK(w, msg, viewCharacter(sess.Character))
}

// handleUnequip 脫裝備。
func (s *Server) handleUnequip(w http.ResponseWriter, r *http.Request, account string, sess *world.Session) {
	var req struct {
		Slot string `json:"slot"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	msg, err := s.equip.Unequip(sess.Character, req.Slot)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	s.save(r.Context(), account, sess.Character)
	writeOK(w, msg, viewCharacter(sess.Character))
}

// handleEnhance 強化一件裝備。
func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request, account string, sess *world.Session) {
	var req struct {
		EquipmentID string `json:"equipment_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	eq := s.enhance.FindEquipment(sess.Character, req.EquipmentID)
	if eq == nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("没有找到该装备"))
		return
	}
	res, err := s.enhance.Attempt(sess.Character, eq)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	s.save(r.Context(), account, sess.Character)
	writeOK(w, res.Message, map[string]interface{}{
		"success":       res.Success,
		"old_level":     res.OldLevel,
		"new_level":     res.NewLevel,
		"bonus_rate":    res.BonusRate,
		"equipment":     eq.Name,
		"money":         sess.Character.Money,
	})
}
