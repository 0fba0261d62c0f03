package web

import (
	"fmt"
	"net/http"

	"github.com/jhgo/server/internal/persist"
	"github.com/jhgo/server/internal/world"
	"go.uber.org/zap"
)

// PK 端點走 authedUnlocked：鎖由 PK 系統以固定鎖序自取。

// handlePKChallenge 向同場景玩家發起切磋。
func (s *Server) handlePKChallenge(w http.ResponseWriter, r *http.Request, _ string, sess *world.Session) {
	var req struct {
		Target string `json:"target"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	if err := s.pk.Challenge(sess, req.Target); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w, fmt.Sprintf("已向%s发起切磋", req.Target), nil)
}

// handlePKAccept 接受切磋。
func (s *Server) handlePKAccept(w http.ResponseWriter, r *http.Request, _ string, sess *world.Session) {
	var req struct {
		Challenger string `json:"challenger"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	if err := s.pk.Accept(sess, req.Challenger); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w, "切磋开始！", nil)
}

// handlePKAttack 在切磋中出手一次。勝負分出時落庫雙方並記流水。
func (s *Server) handlePKAttack(w http.ResponseWriter, r *http.Request, _ string, sess *world.Session) {
	var req struct {
		Skill string `json:"skill"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	res, err := s.pk.Attack(sess, req.Skill)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}

	if res.Victory {
		ctx := r.Context()
		if err := s.characters.UpdateRecord(ctx, sess.Character); err != nil {
			s.log.Error("PK勝方存檔失敗", zap.Error(err))
		}
		if opp, ok := s.deps.World.Get(res.Opponent); ok {
			if err := s.characters.UpdateRecord(ctx, opp.Character); err != nil {
				s.log.Error("PK敗方存檔失敗", zap.Error(err))
			}
		}
		entry := persist.PKLedgerEntry{
			Winner:      sess.Character.Name,
			Loser:       res.Opponent,
			MoneyStolen: res.MoneyStolen,
		}
		if res.EquipmentTaken != "" {
			entry.EquipmentID = res.EquipmentTaken
		}
		if err := s.pkLedger.Append(ctx, entry); err != nil {
			s.log.Error("PK流水寫入失敗", zap.Error(err))
		}
	}

	writeOK(w, "", map[string]interface{}{
		"messages":        res.Messages,
		"victory":         res.Victory,
		"money_stolen":    res.MoneyStolen,
		"equipment_taken": res.EquipmentTaken,
	})
}

// handlePKForfeit 認輸離場。
func (s *Server) handlePKForfeit(w http.ResponseWriter, _ *http.Request, _ string, sess *world.Session) {
	s.pk.Forfeit(sess)
	writeOK(w, "你退出了切磋", nil)
}
