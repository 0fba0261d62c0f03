package web

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/jhgo/server/internal/world"
)

// handleScene 回傳當前場景與出口。
func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request, _ string, sess *world.Session) {
	loc := s.deps.Locations.Get(sess.Character.Location)
	if loc == nil {
		writeErr(w, http.StatusInternalServerError, fmt.Errorf("未知场景: %s", sess.Character.Location))
		return
	}
	writeOK(w, "", map[string]interface{}{
		"area":    loc.AreaName,
		"scene":   loc.Name,
		"exits":   loc.Exits,
		"monster": viewMonster(sess.Encounter),
	})
}

// handleMove 往指定方向移動。換場景會丟掉當前遭遇。
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request, account string, sess *world.Session) {
	var req struct {
		Direction string `json:"direction"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	dest := s.deps.Locations.ExitTo(sess.Character.Location, req.Direction)
	if dest == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("这个方向没有路"))
		return
	}
	sess.Character.Location = dest
	sess.Encounter = nil
	s.save(r.Context(), account, sess.Character)

	loc := s.deps.Locations.Get(dest)
	writeOK(w, fmt.Sprintf("来到了%s", loc.Name), map[string]interface{}{
		"area":  loc.AreaName,
		"scene": loc.Name,
		"exits": loc.Exits,
	})
}

// handleInventory 列出背包。
func (s *Server) handleInventory(w http.ResponseWriter, _ *http.Request, _ string, sess *world.Session) {
	writeOK(w, "", map[string]interface{}{
		"money":     sess.Character.Money,
		"inventory": viewInventory(sess.Character.Inventory),
	})
}

// handleShop 列出雜貨鋪在售道具。
func (s *Server) handleShop(w http.ResponseWriter, _ *http.Request, _ string, sess *world.Session) {
	type shopEntry struct {
		ItemID      string `json:"item_id"`
		Name        string `json:"name"`
		Price       int64  `json:"price"`
		Description string `json:"description"`
	}
	goods := s.deps.Items.ShopItems()
	out := make([]shopEntry, 0, len(goods))
	for _, it := range goods {
		out = append(out, shopEntry{ItemID: it.ItemID, Name: it.Name, Price: it.Price, Description: it.Description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	writeOK(w, "", map[string]interface{}{
		"money": sess.Character.Money,
		"goods": out,
	})
}

// handleUseItem 使用背包道具。
func (s *Server) handleUseItem(w http.ResponseWriter, r *http.Request, account string, sess *world.Session) {
	var req struct {
		ItemID string `json:"item_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	msg, err := s.items.Use(sess.Character, req.ItemID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	s.save(r.Context(), account, sess.Character)
	writeOK(w, msg, viewCharacter(sess.Character))
}

// handleBuy 商店購買。
func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request, account string, sess *world.Session) {
	var req struct {
		ItemID   string `json:"item_id"`
		Quantity int    `json:"quantity"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	msg, err := s.items.Buy(sess.Character, req.ItemID, req.Quantity)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	s.save(r.Context(), account, sess.Character)
	writeOK(w, msg, map[string]interface{}{"money": sess.Character.Money})
}

// handleSell 出售背包裝備。
func (s *Server) handleSell(w http.ResponseWriter, r *http.Request, account string, sess *world.Session) {
	var req struct {
		EquipmentID string `json:"equipment_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	msg, err := s.items.SellEquipment(sess.Character, req.EquipmentID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	s.save(r.Context(), account, sess.Character)
	writeOK(w, msg, map[string]interface{}{"money": sess.Character.Money})
}

// handleDestroyItem 銷毀背包條目。
func (s *Server) handleDestroyItem(w http.ResponseWriter, r *http.Request, account string, sess *world.Session) {
	var req struct {
		EntryID string `json:"entry_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	if err := s.items.Destroy(sess.Character, req.EntryID); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	s.save(r.Context(), account, sess.Character)
	writeOK(w, "已销毁", nil)
}

// handleSkills 列出已學與可學技能。
func (s *Server) handleSkills(w http.ResponseWriter, _ *http.Request, _ string, sess *world.Session) {
	type skillView struct {
		SkillID    string  `json:"skill_id"`
		Name       string  `json:"name"`
		Level      int     `json:"level"`
		MaxLevel   int     `json:"max_level"`
		DamageRate float64 `json:"damage_rate"`
		ManaCost   int     `json:"mana_cost"`
		Learned    bool    `json:"learned"`
	}
	var out []skillView
	for _, sk := range s.skills.Learnable(sess.Character) {
		level := sess.Character.SkillLevel(sk.SkillID)
		view := skillView{
			SkillID:  sk.SkillID,
			Name:     sk.Name,
			Level:    level,
			MaxLevel: sk.MaxLevel,
			Learned:  level > 0,
		}
		if level > 0 {
			view.DamageRate = sk.DamageRateAt(level)
			view.ManaCost = sk.ManaCostAt(level)
		} else {
			view.DamageRate = sk.DamageRateAt(1)
			view.ManaCost = sk.ManaCostAt(1)
		}
		out = append(out, view)
	}
	writeOK(w, "", map[string]interface{}{"skills": out})
}

// handleLearnSkill 學習新技能。
func (s *Server) handleLearnSkill(w http.ResponseWriter, r *http.Request, account string, sess *world.Session) {
	var req struct {
		SkillID string `json:"skill_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	msg, err := s.skills.Learn(sess.Character, req.SkillID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	s.save(r.Context(), account, sess.Character)
	writeOK(w, msg, nil)
}

// handleUpgradeSkill 升級已學技能。
func (s *Server) handleUpgradeSkill(w http.ResponseWriter, r *http.Request, account string, sess *world.Session) {
	var req struct {
		SkillID string `json:"skill_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	msg, err := s.skills.Upgrade(sess.Character, req.SkillID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	s.save(r.Context(), account, sess.Character)
	writeOK(w, msg, viewCharacter(sess.Character))
}
