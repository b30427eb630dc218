package api

import "net/http"

// handleGetMenu returns the single menu record. Requires a valid token for
// the queried email; the menu itself is read-only to handlers and seeded out
// of band (pizzactl menu import).
func (a *API) handleGetMenu(w http.ResponseWriter, r *http.Request) {
	email, ok := emailAddress(r.URL.Query().Get("email"))
	if !ok {
		respondError(w, http.StatusBadRequest, "Missing required field")
		return
	}
	if !a.verifyToken(bearerToken(r), email) {
		respondError(w, http.StatusForbidden, invalidTokenMessage)
		return
	}

	menu, err := a.menus.Read(menuKey)
	if err != nil {
		respondJSON(w, http.StatusNotFound, nil)
		return
	}
	respondJSON(w, http.StatusOK, menu)
}
