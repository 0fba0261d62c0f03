package web

import (
	"fmt"
	"net/http"

	"github.com/jhgo/server/internal/data"
	"github.com/jhgo/server/internal/system"
	"github.com/jhgo/server/internal/world"
	"go.uber.org/zap"
)

// handleRegister 開帳號並建立角色，成功後直接發 token 上線。
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username      string `json:"username"`
		Password      string `json:"password"`
		CharacterName string `json:"character_name"`
		Class         string `json:"player_class"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}
	if req.Username == "" || req.Password == "" || req.CharacterName == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("用户名、密码和角色名不能为空"))
		return
	}
	if !data.ClassExists(req.Class) {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("未知职业: %s", req.Class))
		return
	}

	ctx := r.Context()
	existing, err := s.accounts.Load(ctx, req.Username)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, fmt.Errorf("服务器内部错误"))
		return
	}
	if existing != nil {
		writeErr(w, http.StatusConflict, fmt.Errorf("用户名已存在"))
		return
	}
	taken, err := s.characters.NameTaken(ctx, req.CharacterName)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, fmt.Errorf("服务器内部错误"))
		return
	}
	if taken {
		writeErr(w, http.StatusConflict, fmt.Errorf("角色名已被使用"))
		return
	}

	if _, err := s.accounts.Create(ctx, req.Username, req.Password); err != nil {
		s.log.Error("帳號建立失敗", zap.String("account", req.Username), zap.Error(err))
		writeErr(w, http.StatusInternalServerError, fmt.Errorf("服务器内部错误"))
		return
	}

	c := world.NewCharacter(req.CharacterName, req.Class)
	system.UpdateStats(c)
	c.CurrentHealth = c.Stats.MaxHealth
	c.CurrentMana = c.Stats.MaxMana
	s.save(ctx, req.Username, c)
	s.bindSession(req.Username, c)

	token := s.tokens.issue(req.Username)
	s.log.Info("新角色誕生",
		zap.String("account", req.Username),
		zap.String("player", c.Name),
		zap.String("class", c.Class),
	)
	writeOK(w, fmt.Sprintf("欢迎来到江湖，%s！", c.Name), map[string]interface{}{
		"token":     token,
		"character": viewCharacter(c),
	})
}

// handleLogin 驗密碼、載入角色並掛上會話。
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("请求格式错误"))
		return
	}

	ctx := r.Context()
	account, err := s.accounts.Load(ctx, req.Username)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, fmt.Errorf("服务器内部错误"))
		return
	}
	if account == nil || !s.accounts.ValidatePassword(account.PasswordHash, req.Password) {
		writeErr(w, http.StatusUnauthorized, fmt.Errorf("用户名或密码错误"))
		return
	}

	c, err := s.characters.Load(ctx, req.Username)
	if err != nil {
		s.log.Error("角色載入失敗", zap.String("account", req.Username), zap.Error(err))
		writeErr(w, http.StatusInternalServerError, fmt.Errorf("服务器内部错误"))
		return
	}
	if c == nil {
		writeErr(w, http.StatusNotFound, fmt.Errorf("该账号尚未创建角色"))
		return
	}
	system.UpdateStats(c)

	s.bindSession(req.Username, c)
	_ = s.accounts.UpdateLastActive(ctx, req.Username)

	token := s.tokens.issue(req.Username)
	s.log.Info("玩家登入",
		zap.String("account", req.Username),
		zap.String("player", c.Name),
	)
	writeOK(w, fmt.Sprintf("欢迎回来，%s！", c.Name), map[string]interface{}{
		"token":     token,
		"character": viewCharacter(c),
	})
}

// handleCharacter 回傳角色當前狀態。
func (s *Server) handleCharacter(w http.ResponseWriter, _ *http.Request, _ string, sess *world.Session) {
	writeOK(w, "", viewCharacter(sess.Character))
}

// handleRanking 等級排行榜。
func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	names, err := s.characters.TopByLevel(r.Context(), 20)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, fmt.Errorf("服务器内部错误"))
		return
	}
	writeOK(w, "", map[string]interface{}{"ranking": names})
}
