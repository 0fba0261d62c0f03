package web

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStoreLifecycle(t *testing.T) {
	store := newTokenStore()

	token := store.issue("account1")
	require.NotEmpty(t, token)

	account, ok := store.lookup(token)
	require.True(t, ok)
	assert.Equal(t, "account1", account)

	// 同帳號重複簽發要拿到不同 token，舊的仍然有效。
	second := store.issue("account1")
	assert.NotEqual(t, token, second)
	_, ok = store.lookup(token)
	assert.True(t, ok)

	store.revoke(token)
	_, ok = store.lookup(token)
	assert.False(t, ok)
	_, ok = store.lookup(second)
	assert.True(t, ok)
}

func TestTokenStoreUnknownToken(t *testing.T) {
	store := newTokenStore()
	_, ok := store.lookup("deadbeef")
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/character", nil)
	assert.Empty(t, bearerToken(r))

	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", bearerToken(r))

	r.Header.Set("Authorization", "Basic abc123")
	assert.Empty(t, bearerToken(r))

	r.Header.Set("Authorization", "Bearer ")
	assert.Empty(t, bearerToken(r))
}
