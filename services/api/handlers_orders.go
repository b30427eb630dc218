package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// handlePlaceOrder runs the order chain for the user's active cart:
// read user -> read cart -> charge -> persist order -> send receipt -> mark
// cart complete. Steps run strictly in sequence and stop at the first
// failure; there is no rollback, so a failure after the charge leaves a paid,
// persisted order with the cart still marked incomplete. That state is
// surfaced only as the error response.
func (a *API) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

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
		respondError(w, http.StatusForbidden, "Can not read user's file")
		return
	}
	if len(user.Cart) == 0 {
		respondError(w, http.StatusForbidden, "Could not read the cart for the user")
		return
	}
	cartID := user.Cart[0]
	cart, err := a.carts.Read(cartID)
	if err != nil {
		respondError(w, http.StatusForbidden, "Could not read the cart for the user")
		return
	}

	suffix, err := randomString(orderSuffixLength)
	if err != nil {
		log.Error().Err(err).Msg("generate order number")
		respondError(w, http.StatusBadRequest, "Could not submit the order")
		return
	}
	orderNumber := "order-" + suffix

	charge, err := a.payments.Charge(ctx, cart.Order.Price, cart.PaymentData.Source, orderNumber)
	if err != nil {
		log.Error().Err(err).Str("cartId", cartID).Msg("charge payment")
		respondError(w, http.StatusForbidden, "Can not send payment info")
		return
	}

	orderID := charge.Metadata["orderId"]
	if orderID == "" {
		orderID = orderNumber
	}

	order := Order{
		ID:            orderID,
		ChargeID:      charge.ID,
		CustomerEmail: user.Email,
		Info: OrderInfo{
			OrderedItem: cart.Order.Item,
			OrderPrice:  fmt.Sprintf("%v%s", cart.Order.Price, charge.Currency),
		},
		Date: a.now(),
		Paid: charge.Paid,
	}

	if err := a.orders.Create(order.ID, order); err != nil {
		log.Error().Err(err).Str("orderId", order.ID).Msg("persist order")
		respondError(w, http.StatusBadRequest, "Could not submit the order")
		return
	}

	if err := a.sendReceipt(ctx, order, cart.Order.Price, charge.Currency); err != nil {
		log.Error().Err(err).Str("orderId", order.ID).Msg("send receipt")
		respondError(w, http.StatusNotFound, "Your order can not be completed")
		return
	}

	// re-read before marking complete; the cart may have been rewritten
	cart, err = a.carts.Read(cartID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Can not read carts file or it does not exist")
		return
	}
	cart.OrderCompleted = true
	if err := a.carts.Update(cartID, cart); err != nil {
		log.Error().Err(err).Str("cartId", cartID).Msg("mark cart complete")
		respondError(w, http.StatusInternalServerError, "Could not update the cart")
		return
	}

	a.publishEvent(ctx, topicOrderPlaced, map[string]any{
		"orderId": order.ID,
		"email":   order.CustomerEmail,
		"paid":    order.Paid,
	})
	respondJSON(w, http.StatusOK, map[string]any{"order": order})
}

// sendReceipt renders and emails the order receipt.
func (a *API) sendReceipt(ctx context.Context, order Order, price float64, currency string) error {
	body, err := a.renderer.Render("receipt.tmpl", map[string]any{
		"OrderID":        order.ID,
		"Item":           order.Info.OrderedItem,
		"Price":          price,
		"Currency":       currency,
		"OrderDate":      order.Date.Format("Mon Jan 2 2006"),
		"DeliveryMethod": "Drone drop-off",
		"DeliveryTime":   "30 mins",
		"Paid":           order.Paid,
	})
	if err != nil {
		return fmt.Errorf("render receipt: %w", err)
	}

	subject := "Your order summary for " + order.ID
	if err := a.mailer.Send(ctx, order.CustomerEmail, subject, body); err != nil {
		return fmt.Errorf("send receipt: %w", err)
	}
	return nil
}
