package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"pizzad/pkg/storage"
)

// handleCreateUser signs a user up. Required fields: firstName, lastName,
// email, streetAddress, password, tosAgreement (must be true).
func (a *API) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload createUserPayload
	decodeJSON(r, &payload)

	cmd, err := payload.validate()
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	digest, err := a.hashPassword(cmd.Password)
	if err != nil {
		log.Error().Err(err).Msg("hash password")
		respondError(w, http.StatusInternalServerError, "Could not hash the user's password")
		return
	}

	user := User{
		FirstName:      cmd.FirstName,
		LastName:       cmd.LastName,
		Email:          cmd.Email,
		StreetAddress:  cmd.StreetAddress,
		HashedPassword: digest,
		TOSAgreement:   true,
	}

	if err := a.users.Create(cmd.Email, user); err != nil {
		if errors.Is(err, storage.ErrExists) {
			respondError(w, http.StatusBadRequest, "A user with that email already exists")
			return
		}
		log.Error().Err(err).Str("email", cmd.Email).Msg("create user")
		respondError(w, http.StatusInternalServerError, "Could not create the new user")
		return
	}

	a.publishEvent(r.Context(), topicUserCreated, map[string]any{"email": user.Email})
	respondJSON(w, http.StatusOK, nil)
}

// handleGetUser returns the caller's account record, with the password digest
// stripped. Requires a valid token for the queried email.
func (a *API) handleGetUser(w http.ResponseWriter, r *http.Request) {
	email, ok := emailAddress(r.URL.Query().Get("email"))
	if !ok {
		respondError(w, http.StatusBadRequest, "Missing required field")
		return
	}
	if !a.verifyToken(bearerToken(r), email) {
		respondError(w, http.StatusForbidden, invalidTokenMessage)
		return
	}

	user, err := a.users.Read(email)
	if err != nil {
		respondJSON(w, http.StatusNotFound, nil)
		return
	}
	respondJSON(w, http.StatusOK, user.public())
}

// handleUpdateUser merges the provided optional fields into the account
// record. At least one of firstName, lastName, streetAddress, password must be
// given.
func (a *API) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var payload updateUserPayload
	decodeJSON(r, &payload)

	cmd, err := payload.validate()
	if err != nil {
		if errors.Is(err, errNoFieldsEntered) {
			respondError(w, http.StatusBadRequest, "Missing fields to update")
			return
		}
		respondError(w, http.StatusBadRequest, "Missing required field")
		return
	}
	if !a.verifyToken(bearerToken(r), cmd.Email) {
		respondError(w, http.StatusForbidden, invalidTokenMessage)
		return
	}

	user, err := a.users.Read(cmd.Email)
	if err != nil {
		respondError(w, http.StatusBadRequest, "The specified user does not exist")
		return
	}

	if cmd.FirstName != "" {
		user.FirstName = cmd.FirstName
	}
	if cmd.LastName != "" {
		user.LastName = cmd.LastName
	}
	if cmd.StreetAddress != "" {
		user.StreetAddress = cmd.StreetAddress
	}
	if cmd.Password != "" {
		digest, err := a.hashPassword(cmd.Password)
		if err != nil {
			log.Error().Err(err).Msg("hash password")
			respondError(w, http.StatusInternalServerError, "Could not hash the user's password")
			return
		}
		user.HashedPassword = digest
	}

	if err := a.users.Update(cmd.Email, user); err != nil {
		log.Error().Err(err).Str("email", cmd.Email).Msg("update user")
		respondError(w, http.StatusInternalServerError, "Could not update the user")
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// handleDeleteUser removes the account record. Tokens and carts owned by the
// user are left in place; a dangling token still matches by email but every
// record read behind it 404s.
func (a *API) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	var payload deleteUserPayload
	decodeJSON(r, &payload)

	email, ok := emailAddress(payload.Email)
	if !ok {
		respondError(w, http.StatusBadRequest, "Missing required field")
		return
	}
	if !a.verifyToken(bearerToken(r), email) {
		respondError(w, http.StatusForbidden, invalidTokenMessage)
		return
	}

	if _, err := a.users.Read(email); err != nil {
		respondError(w, http.StatusBadRequest, "Could not find the specified user")
		return
	}
	if err := a.users.Delete(email); err != nil {
		log.Error().Err(err).Str("email", email).Msg("delete user")
		respondError(w, http.StatusInternalServerError, "Could not delete the specified user")
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
