package api

import (
	"errors"
	"strings"
)

// Validation is front-loaded: every endpoint decodes its payload best-effort,
// then normalizes it into a typed command before any side effect. A field that
// fails its predicate counts as absent.

var (
	errMissingFields   = errors.New("missing required fields")
	errNoFieldsEntered = errors.New("no fields to update")
)

// trimmed normalizes a required non-empty string field.
func trimmed(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// emailAddress normalizes a required email field: trimmed, non-empty, and
// containing "@".
func emailAddress(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !strings.Contains(s, "@") {
		return "", false
	}
	return s, true
}

// tokenIDField normalizes a token id field: trimmed and exactly 20 characters.
func tokenIDField(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) != tokenIDLength {
		return "", false
	}
	return s, true
}

type createUserPayload struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	StreetAddress string `json:"streetAddress"`
	Password      string `json:"password"`
	TOSAgreement  bool   `json:"tosAgreement"`
}

type createUserCommand struct {
	FirstName     string
	LastName      string
	Email         string
	StreetAddress string
	Password      string
}

func (p createUserPayload) validate() (createUserCommand, error) {
	firstName, ok1 := trimmed(p.FirstName)
	lastName, ok2 := trimmed(p.LastName)
	email, ok3 := emailAddress(p.Email)
	streetAddress, ok4 := trimmed(p.StreetAddress)
	password, ok5 := trimmed(p.Password)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !p.TOSAgreement {
		return createUserCommand{}, errMissingFields
	}
	return createUserCommand{
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		StreetAddress: streetAddress,
		Password:      password,
	}, nil
}

type updateUserPayload struct {
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	StreetAddress string `json:"streetAddress"`
	Password      string `json:"password"`
}

// updateUserCommand carries the validated email plus the optional fields that
// passed their predicates; empty means "not provided".
type updateUserCommand struct {
	Email         string
	FirstName     string
	LastName      string
	StreetAddress string
	Password      string
}

func (p updateUserPayload) validate() (updateUserCommand, error) {
	email, ok := emailAddress(p.Email)
	if !ok {
		return updateUserCommand{}, errMissingFields
	}
	cmd := updateUserCommand{Email: email}
	cmd.FirstName, _ = trimmed(p.FirstName)
	cmd.LastName, _ = trimmed(p.LastName)
	cmd.StreetAddress, _ = trimmed(p.StreetAddress)
	cmd.Password, _ = trimmed(p.Password)
	if cmd.FirstName == "" && cmd.LastName == "" && cmd.StreetAddress == "" && cmd.Password == "" {
		return updateUserCommand{}, errNoFieldsEntered
	}
	return cmd, nil
}

type deleteUserPayload struct {
	Email string `json:"email"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginCommand struct {
	Email    string
	Password string
}

func (p loginPayload) validate() (loginCommand, error) {
	email, ok1 := emailAddress(p.Email)
	password, ok2 := trimmed(p.Password)
	if !ok1 || !ok2 {
		return loginCommand{}, errMissingFields
	}
	return loginCommand{Email: email, Password: password}, nil
}

type extendTokenPayload struct {
	ID     string `json:"id"`
	Extend bool   `json:"extend"`
}

func (p extendTokenPayload) validate() (string, error) {
	id, ok := tokenIDField(p.ID)
	if !ok || !p.Extend {
		return "", errMissingFields
	}
	return id, nil
}

type deleteTokenPayload struct {
	ID string `json:"id"`
}

type addCartItemPayload struct {
	MenuItem  string  `json:"menuItem"`
	ItemPrice float64 `json:"itemPrice"`
}

type addCartItemCommand struct {
	Item  string
	Price float64
}

func (p addCartItemPayload) validate() (addCartItemCommand, error) {
	item, ok := trimmed(p.MenuItem)
	if !ok || p.ItemPrice <= 0 {
		return addCartItemCommand{}, errMissingFields
	}
	return addCartItemCommand{Item: item, Price: p.ItemPrice}, nil
}
