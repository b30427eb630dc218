package api

import "time"

// User is the account record, keyed by email. The stored password digest never
// leaves the service; responses carry the public shape below.
type User struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	StreetAddress  string   `json:"streetAddress"`
	HashedPassword string   `json:"hashedPassword"`
	TOSAgreement   bool     `json:"tosAgreement"`
	Cart           []string `json:"cart,omitempty"`
}

type publicUser struct {
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email"`
	StreetAddress string   `json:"streetAddress"`
	TOSAgreement  bool     `json:"tosAgreement"`
	Cart          []string `json:"cart,omitempty"`
}

func (u User) public() publicUser {
	return publicUser{
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		StreetAddress: u.StreetAddress,
		TOSAgreement:  u.TOSAgreement,
		Cart:          u.Cart,
	}
}

// Token is a bearer session token, keyed by its 20-character id. Expiry is
// logical: expired tokens stay on disk until explicitly deleted.
type Token struct {
	ID      string    `json:"id"`
	Email   string    `json:"email"`
	Expires time.Time `json:"expires"`
}

// CartOrder is the single line item a cart holds.
type CartOrder struct {
	Item  string  `json:"item"`
	Price float64 `json:"price"`
}

// PaymentData carries the source the charge is made against.
type PaymentData struct {
	Source string `json:"source"`
}

// Cart is keyed by its 20-character id and referenced from the owning user's
// cart list.
type Cart struct {
	ID             string      `json:"cartId"`
	UserEmail      string      `json:"userEmail"`
	Order          CartOrder   `json:"order"`
	Created        time.Time   `json:"cartCreated"`
	PaymentData    PaymentData `json:"paymentData"`
	OrderCompleted bool        `json:"orderCompleted"`
}

// OrderInfo summarises what was bought. OrderPrice is the charged amount with
// the settlement currency appended, as reported by the payment capability.
type OrderInfo struct {
	OrderedItem string `json:"orderedItem"`
	OrderPrice  string `json:"orderPrice"`
}

// Order is created exactly once per completed order and never updated.
type Order struct {
	ID            string    `json:"orderId"`
	ChargeID      string    `json:"stripeToken"`
	CustomerEmail string    `json:"customerEmail"`
	Info          OrderInfo `json:"orderInfo"`
	Date          time.Time `json:"orderDate"`
	Paid          bool      `json:"orderStatus"`
}

// MenuItem is a single orderable item.
type MenuItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

// Menu is the single well-known menu record, read-only to handlers.
type Menu struct {
	Items []MenuItem `json:"items"`
}
