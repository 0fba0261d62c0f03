// Package web 是薄 JSON HTTP 介面層：解請求、取會話鎖、呼叫 system、
// 存檔、回 JSON。遊戲規則全部在 system 內，這裡不做任何結算。
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jhgo/server/internal/persist"
	"github.com/jhgo/server/internal/system"
	"github.com/jhgo/server/internal/world"
	"go.uber.org/zap"
)

// Server 聚合 HTTP 層需要的一切。
type Server struct {
	deps    *system.Deps
	combat  *system.CombatSystem
	equip   *system.EquipSystem
	enhance *system.EnhanceSystem
	items   *system.ItemSystem
	skills  *system.SkillSystem
	pk      *system.PKSystem

	accounts   *persist.AccountRepo
	characters *persist.CharacterRepo
	pkLedger   *persist.PKLedgerRepo

	tokens   *tokenStore
	sessions *accountSessions
	log      *zap.Logger
	mux      *http.ServeMux
}

// NewServer 建立 HTTP 伺服器並註冊所有路由。
func NewServer(deps *system.Deps, db *persist.DB) *Server {
	loot := system.NewLootSystem(deps)
	s := &Server{
		deps:       deps,
		combat:     system.NewCombatSystem(deps, loot),
		equip:      system.NewEquipSystem(deps),
		enhance:    system.NewEnhanceSystem(deps),
		items:      system.NewItemSystem(deps),
		skills:     system.NewSkillSystem(deps),
		pk:         system.NewPKSystem(deps),
		accounts:   persist.NewAccountRepo(db),
		characters: persist.NewCharacterRepo(db),
		pkLedger:   persist.NewPKLedgerRepo(db),
		tokens:     newTokenStore(),
		sessions:   newAccountSessions(),
		log:        deps.Log,
		mux:        http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/login", s.handleLogin)

	s.mux.HandleFunc("GET /api/character", s.authed(s.handleCharacter))
	s.mux.HandleFunc("GET /api/scene", s.authed(s.handleScene))
	s.mux.HandleFunc("POST /api/move", s.authed(s.handleMove))

	s.mux.HandleFunc("POST /api/fight", s.authed(s.handleFight))
	s.mux.HandleFunc("POST /api/flee", s.authed(s.handleFlee))
	s.mux.HandleFunc("POST /api/revive", s.authed(s.handleRevive))

	s.mux.HandleFunc("POST /api/equip", s.authed(s.handleEquip))
	s.mux.HandleFunc("POST /api/unequip", s.authed(s.handleUnequip))
	s.mux.HandleFunc("POST /api/enhance", s.authed(s.handleEnhance))

	s.mux.HandleFunc("GET /api/inventory", s.authed(s.handleInventory))
	s.mux.HandleFunc("GET /api/shop", s.authed(s.handleShop))
	s.mux.HandleFunc("POST /api/use-item", s.authed(s.handleUseItem))
	s.mux.HandleFunc("POST /api/buy", s.authed(s.handleBuy))
	s.mux.HandleFunc("POST /api/sell", s.authed(s.handleSell))
	s.mux.HandleFunc("POST /api/destroy-item", s.authed(s.handleDestroyItem))

	s.mux.HandleFunc("GET /api/skills", s.authed(s.handleSkills))
	s.mux.HandleFunc("POST /api/learn-skill", s.authed(s.handleLearnSkill))
	s.mux.HandleFunc("POST /api/upgrade-skill", s.authed(s.handleUpgradeSkill))

	s.mux.HandleFunc("POST /api/pk/challenge", s.authedUnlocked(s.handlePKChallenge))
	s.mux.HandleFunc("POST /api/pk/accept", s.authedUnlocked(s.handlePKAccept))
	s.mux.HandleFunc("POST /api/pk/attack", s.authedUnlocked(s.handlePKAttack))
	s.mux.HandleFunc("POST /api/pk/forfeit", s.authedUnlocked(s.handlePKForfeit))

	s.mux.HandleFunc("GET /api/ranking", s.handleRanking)
}

// Handler 回傳帶請求日誌的根 handler。
func (s *Server) Handler() http.Handler {
	return s.logMiddleware(s.mux)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("http請求",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// apiResponse 是所有端點的統一回應外殼。
type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeOK(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: message, Data: data})
}

func writeErr(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, apiResponse{Success: false, Message: err.Error()})
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// save 將角色寫回資料庫。失敗只記日誌，不打斷玩家操作。
func (s *Server) save(ctx context.Context, account string, c *world.Character) {
	if err := s.characters.Save(ctx, account, c); err != nil {
		s.log.Error("角色存檔失敗",
			zap.String("account", account),
			zap.String("player", c.Name),
			zap.Error(err),
		)
	}
}
