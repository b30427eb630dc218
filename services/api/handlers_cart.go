package api

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// defaultPaymentSource is the charge source attached to every new cart.
const defaultPaymentSource = "tok_visa"

// handleAddCartItem creates a cart holding the given menu item and appends
// its id to the owning user's cart list. The owner is resolved through the
// bearer token record (token -> email -> user).
func (a *API) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var payload addCartItemPayload
	decodeJSON(r, &payload)

	cmd, err := payload.validate()
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing required field")
		return
	}

	token, err := a.tokens.Read(bearerToken(r))
	if err != nil {
		respondJSON(w, http.StatusForbidden, nil)
		return
	}
	user, err := a.users.Read(token.Email)
	if err != nil {
		respondJSON(w, http.StatusForbidden, nil)
		return
	}

	cartID, err := randomString(cartIDLength)
	if err != nil {
		log.Error().Err(err).Msg("generate cart id")
		respondError(w, http.StatusInternalServerError, "Could not create the new order transaction")
		return
	}

	cart := Cart{
		ID:        cartID,
		UserEmail: token.Email,
		Order: CartOrder{
			Item:  cmd.Item,
			Price: cmd.Price,
		},
		Created:        a.now(),
		PaymentData:    PaymentData{Source: defaultPaymentSource},
		OrderCompleted: false,
	}

	if err := a.carts.Create(cartID, cart); err != nil {
		log.Error().Err(err).Str("cartId", cartID).Msg("create cart")
		respondError(w, http.StatusInternalServerError, "Could not create the new order transaction")
		return
	}

	user.Cart = append(user.Cart, cartID)
	if err := a.users.Update(token.Email, user); err != nil {
		log.Error().Err(err).Str("email", token.Email).Msg("attach cart to user")
		respondError(w, http.StatusInternalServerError, "Could not create the new order transaction")
		return
	}

	a.publishEvent(r.Context(), topicCartCreated, map[string]any{
		"cartId": cartID,
		"email":  token.Email,
	})
	respondJSON(w, http.StatusOK, cart)
}

// handleGetCart returns the user's active cart: the oldest id on the cart
// list. Requires a valid token for the queried email.
func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
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
	if err != nil || len(user.Cart) == 0 {
		respondJSON(w, http.StatusNotFound, nil)
		return
	}

	cart, err := a.carts.Read(user.Cart[0])
	if err != nil {
		respondJSON(w, http.StatusNotFound, nil)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}
