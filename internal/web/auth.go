package web

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"

	"github.com/jhgo/server/internal/world"
)

// tokenStore 維護登入 token → 帳號名的對應。重啟即失效，夠用。
type tokenStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func newTokenStore() *tokenStore {
	return &tokenStore{tokens: make(map[string]string)}
}

func (t *tokenStore) issue(account string) string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	token := hex.EncodeToString(buf)
	t.mu.Lock()
	t.tokens[token] = account
	t.mu.Unlock()
	return token
}

func (t *tokenStore) lookup(token string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	account, ok := t.tokens[token]
	return account, ok
}

func (t *tokenStore) revoke(token string) {
	t.mu.Lock()
	delete(t.tokens, token)
	t.mu.Unlock()
}

// authedHandler 是通過驗證後的處理函式：帳號與已上鎖的會話都備妥。
type authedHandler func(w http.ResponseWriter, r *http.Request, account string, sess *world.Session)

// authed 驗證 Authorization: Bearer token，找到會話並持鎖執行處理函式。
// 每個請求在會話鎖內跑完，同一角色的操作天然序列化。
func (s *Server) authed(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeErr(w, http.StatusUnauthorized, fmt.Errorf("未登录"))
			return
		}
		account, ok := s.tokens.lookup(token)
		if !ok {
			writeErr(w, http.StatusUnauthorized, fmt.Errorf("登录已失效"))
			return
		}
		sess, ok := s.sessionFor(account)
		if !ok {
			writeErr(w, http.StatusUnauthorized, fmt.Errorf("角色未上线"))
			return
		}
		sess.Lock()
		defer sess.Unlock()
		h(w, r, account, sess)
	}
}

// authedUnlocked 與 authed 相同但不取會話鎖，供 PK 端點使用：PK 系統
// 內部以 LockPair 固定鎖序取雙鎖，外層不可先持單鎖。
func (s *Server) authedUnlocked(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeErr(w, http.StatusUnauthorized, fmt.Errorf("未登录"))
			return
		}
		account, ok := s.tokens.lookup(token)
		if !ok {
			writeErr(w, http.StatusUnauthorized, fmt.Errorf("登录已失效"))
			return
		}
		sess, ok := s.sessionFor(account)
		if !ok {
			writeErr(w, http.StatusUnauthorized, fmt.Errorf("角色未上线"))
			return
		}
		h(w, r, account, sess)
	}
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

// accountSessions 記錄帳號 → 角色名，讓 token 驗證後能找回會話。
type accountSessions struct {
	mu    sync.RWMutex
	names map[string]string
}

func newAccountSessions() *accountSessions {
	return &accountSessions{names: make(map[string]string)}
}

func (s *Server) bindSession(account string, c *world.Character) *world.Session {
	s.sessions.mu.Lock()
	s.sessions.names[account] = c.Name
	s.sessions.mu.Unlock()
	return s.deps.World.Attach(c)
}

func (s *Server) sessionFor(account string) (*world.Session, bool) {
	s.sessions.mu.RLock()
	name, ok := s.sessions.names[account]
	s.sessions.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return s.deps.World.Get(name)
}
