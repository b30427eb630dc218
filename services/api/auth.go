package api

import (
	"errors"
	"net/http"
	"strings"
)

// invalidTokenMessage is the fixed body for every authorization failure.
const invalidTokenMessage = "Missing required token in header, or token is invalid"

// bearerToken extracts the token id from the request's token header.
func bearerToken(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("token"))
}

// verifyToken reports whether id names a stored token owned by email that has
// not expired. Absence, mismatch, and expiry all verify false; it never
// surfaces an error.
func (a *API) verifyToken(id, email string) bool {
	if id == "" {
		return false
	}
	token, err := a.tokens.Read(id)
	if err != nil {
		return false
	}
	return token.Email == email && token.Expires.After(a.now())
}

var (
	errUserNotFound       = errors.New("user not found")
	errInvalidCredentials = errors.New("invalid credentials")
	errTokenNotFound      = errors.New("token not found")
	errTokenExpired       = errors.New("token expired")
)

// issueToken checks the supplied credentials against the stored digest and,
// on match, creates a token expiring one TTL from now.
func (a *API) issueToken(email, password string) (Token, error) {
	user, err := a.users.Read(email)
	if err != nil {
		return Token{}, errUserNotFound
	}

	digest, err := a.hashPassword(password)
	if err != nil || digest != user.HashedPassword {
		return Token{}, errInvalidCredentials
	}

	id, err := randomString(tokenIDLength)
	if err != nil {
		return Token{}, err
	}

	token := Token{
		ID:      id,
		Email:   email,
		Expires: a.now().Add(a.config.TokenTTL),
	}
	if err := a.tokens.Create(id, token); err != nil {
		return Token{}, err
	}
	return token, nil
}

// extendToken resets an unexpired token's expiry to one TTL from now. Expired
// tokens cannot be extended and are left untouched.
func (a *API) extendToken(id string) (Token, error) {
	token, err := a.tokens.Read(id)
	if err != nil {
		return Token{}, errTokenNotFound
	}
	if !token.Expires.After(a.now()) {
		return Token{}, errTokenExpired
	}

	token.Expires = a.now().Add(a.config.TokenTTL)
	if err := a.tokens.Update(id, token); err != nil {
		return Token{}, err
	}
	return token, nil
}
