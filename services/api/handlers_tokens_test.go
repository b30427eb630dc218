package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginIssuesToken(t *testing.T) {
	a, _, _ := newTestAPI(t)
	signupUser(t, a, "ada@example.com")

	issued := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return issued }

	token := login(t, a, "ada@example.com")
	assert.Len(t, token.ID, 20)
	assert.Regexp(t, "^[a-z0-9]{20}$", token.ID)
	assert.Equal(t, "ada@example.com", token.Email)
	assert.True(t, token.Expires.Equal(issued.Add(time.Hour)))

	stored, err := a.tokens.Read(token.ID)
	require.NoError(t, err)
	assert.Equal(t, token.Email, stored.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a, _, _ := newTestAPI(t)
	signupUser(t, a, "ada@example.com")

	rr := do(t, a, http.MethodPost, "/tokens", "", map[string]any{
		"email": "nobody@example.com", "password": "hunter2",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Could not find the specified user", errorBody(t, rr))

	rr = do(t, a, http.MethodPost, "/tokens", "", map[string]any{
		"email": "ada@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Password did not match the specified user's stored password", errorBody(t, rr))

	rr = do(t, a, http.MethodPost, "/tokens", "", nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing the required field(s)", errorBody(t, rr))
}

func TestGetToken(t *testing.T) {
	a, _, _ := newTestAPI(t)
	signupUser(t, a, "ada@example.com")
	token := login(t, a, "ada@example.com")

	rr := do(t, a, http.MethodGet, "/tokens?id="+token.ID, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got Token
	decodeBody(t, rr, &got)
	assert.Equal(t, token.ID, got.ID)
	assert.Equal(t, "ada@example.com", got.Email)
}

func TestGetTokenBadID(t *testing.T) {
	a, _, _ := newTestAPI(t)

	rr := do(t, a, http.MethodGet, "/tokens?id=short", "", nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing required field", errorBody(t, rr))

	rr = do(t, a, http.MethodGet, "/tokens?id=aaaaaaaaaabbbbbbbbbb", "", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, "{}", rr.Body.String())
}

func TestExtendToken(t *testing.T) {
	a, _, _ := newTestAPI(t)
	signupUser(t, a, "ada@example.com")

	issued := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return issued }
	token := login(t, a, "ada@example.com")

	// half an hour later the extend buys a fresh full hour
	later := issued.Add(30 * time.Minute)
	a.now = func() time.Time { return later }

	rr := do(t, a, http.MethodPut, "/tokens", "", map[string]any{
		"id": token.ID, "extend": true,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	stored, err := a.tokens.Read(token.ID)
	require.NoError(t, err)
	assert.True(t, stored.Expires.Equal(later.Add(time.Hour)))
}

func TestExtendTokenExpired(t *testing.T) {
	a, _, _ := newTestAPI(t)
	signupUser(t, a, "ada@example.com")

	issued := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return issued }
	token := login(t, a, "ada@example.com")

	a.now = func() time.Time { return issued.Add(2 * time.Hour) }

	rr := do(t, a, http.MethodPut, "/tokens", "", map[string]any{
		"id": token.ID, "extend": true,
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "The token has already expired, and cannot be extended", errorBody(t, rr))

	// the stored record is untouched
	stored, err := a.tokens.Read(token.ID)
	require.NoError(t, err)
	assert.True(t, stored.Expires.Equal(issued.Add(time.Hour)))
}

func TestExtendTokenValidation(t *testing.T) {
	a, _, _ := newTestAPI(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"missing extend", map[string]any{"id": "aaaaaaaaaabbbbbbbbbb"}},
		{"extend false", map[string]any{"id": "aaaaaaaaaabbbbbbbbbb", "extend": false}},
		{"short id", map[string]any{"id": "short", "extend": true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, a, http.MethodPut, "/tokens", "", tc.payload)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "Missing required field(s) or field(s) are invalid", errorBody(t, rr))
		})
	}

	rr := do(t, a, http.MethodPut, "/tokens", "", map[string]any{
		"id": "aaaaaaaaaabbbbbbbbbb", "extend": true,
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Specified token does not exist", errorBody(t, rr))
}

func TestDeleteToken(t *testing.T) {
	a, _, _ := newTestAPI(t)
	signupUser(t, a, "ada@example.com")
	token := login(t, a, "ada@example.com")

	rr := do(t, a, http.MethodDelete, "/tokens", "", map[string]any{"id": token.ID})
	require.Equal(t, http.StatusOK, rr.Code)

	// logout invalidates the session
	rr = do(t, a, http.MethodGet, "/users?email=ada@example.com", token.ID, nil)
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, a, http.MethodDelete, "/tokens", "", map[string]any{"id": token.ID})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Could not find the specified token", errorBody(t, rr))
}

func TestVerifyToken(t *testing.T) {
	a, _, _ := newTestAPI(t)
	signupUser(t, a, "ada@example.com")

	issued := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return issued }
	token := login(t, a, "ada@example.com")

	assert.True(t, a.verifyToken(token.ID, "ada@example.com"))
	assert.False(t, a.verifyToken(token.ID, "grace@example.com"))
	assert.False(t, a.verifyToken("", "ada@example.com"))
	assert.False(t, a.verifyToken("aaaaaaaaaabbbbbbbbbb", "ada@example.com"))

	a.now = func() time.Time { return issued.Add(61 * time.Minute) }
	assert.False(t, a.verifyToken(token.ID, "ada@example.com"))
}
