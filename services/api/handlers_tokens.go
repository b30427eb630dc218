package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// handleCreateToken is login: it verifies the supplied credentials and issues
// a fresh bearer token.
func (a *API) handleCreateToken(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	decodeJSON(r, &payload)

	cmd, err := payload.validate()
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing the required field(s)")
		return
	}

	token, err := a.issueToken(cmd.Email, cmd.Password)
	if err != nil {
		switch {
		case errors.Is(err, errUserNotFound):
			respondError(w, http.StatusBadRequest, "Could not find the specified user")
		case errors.Is(err, errInvalidCredentials):
			respondError(w, http.StatusBadRequest, "Password did not match the specified user's stored password")
		default:
			log.Error().Err(err).Str("email", cmd.Email).Msg("issue token")
			respondError(w, http.StatusInternalServerError, "Could not create the new token")
		}
		return
	}

	a.publishEvent(r.Context(), topicTokenIssued, map[string]any{"email": token.Email})
	respondJSON(w, http.StatusOK, token)
}

// handleGetToken returns the stored token record for a 20-character id.
func (a *API) handleGetToken(w http.ResponseWriter, r *http.Request) {
	id, ok := tokenIDField(r.URL.Query().Get("id"))
	if !ok {
		respondError(w, http.StatusBadRequest, "Missing required field")
		return
	}

	token, err := a.tokens.Read(id)
	if err != nil {
		respondJSON(w, http.StatusNotFound, nil)
		return
	}
	respondJSON(w, http.StatusOK, token)
}

// handleExtendToken pushes an unexpired token's expiry out by one TTL.
// Requires id plus extend == true.
func (a *API) handleExtendToken(w http.ResponseWriter, r *http.Request) {
	var payload extendTokenPayload
	decodeJSON(r, &payload)

	id, err := payload.validate()
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing required field(s) or field(s) are invalid")
		return
	}

	if _, err := a.extendToken(id); err != nil {
		switch {
		case errors.Is(err, errTokenNotFound):
			respondError(w, http.StatusBadRequest, "Specified token does not exist")
		case errors.Is(err, errTokenExpired):
			respondError(w, http.StatusBadRequest, "The token has already expired, and cannot be extended")
		default:
			log.Error().Err(err).Str("id", id).Msg("extend token")
			respondError(w, http.StatusInternalServerError, "Could not update the token's expiration")
		}
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// handleDeleteToken is logout: it removes the token record.
func (a *API) handleDeleteToken(w http.ResponseWriter, r *http.Request) {
	var payload deleteTokenPayload
	decodeJSON(r, &payload)

	id, ok := tokenIDField(payload.ID)
	if !ok {
		respondError(w, http.StatusBadRequest, "Missing required field")
		return
	}

	if _, err := a.tokens.Read(id); err != nil {
		respondError(w, http.StatusBadRequest, "Could not find the specified token")
		return
	}
	if err := a.tokens.Delete(id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("delete token")
		respondError(w, http.StatusInternalServerError, "Could not delete the specified token")
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
