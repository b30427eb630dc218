package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMenu(t *testing.T, a *API) Menu {
	t.Helper()
	menu := Menu{Items: []MenuItem{
		{Name: "Margherita", Description: "Tomato, mozzarella, basil", Price: 12.5},
		{Name: "Quattro Formaggi", Price: 15},
	}}
	require.NoError(t, a.menus.Create(menuKey, menu))
	return menu
}

func TestGetMenu(t *testing.T) {
	a, _, _ := newTestAPI(t)
	seedMenu(t, a)
	signupUser(t, a, "ada@example.com")
	token := login(t, a, "ada@example.com")

	rr := do(t, a, http.MethodGet, "/menu?email=ada@example.com", token.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var menu Menu
	decodeBody(t, rr, &menu)
	require.Len(t, menu.Items, 2)
	assert.Equal(t, "Margherita", menu.Items[0].Name)
	assert.Equal(t, 12.5, menu.Items[0].Price)
}

func TestGetMenuRequiresToken(t *testing.T) {
	a, _, _ := newTestAPI(t)
	seedMenu(t, a)
	signupUser(t, a, "ada@example.com")

	rr := do(t, a, http.MethodGet, "/menu?email=ada@example.com", "", nil)
	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "Missing required token in header, or token is invalid", errorBody(t, rr))

	rr = do(t, a, http.MethodGet, "/menu", "", nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing required field", errorBody(t, rr))
}

func TestGetMenuNotSeeded(t *testing.T) {
	a, _, _ := newTestAPI(t)
	signupUser(t, a, "ada@example.com")
	token := login(t, a, "ada@example.com")

	rr := do(t, a, http.MethodGet, "/menu?email=ada@example.com", token.ID, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, "{}", rr.Body.String())
}
