package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"pizzad/pkg/payment"
	"pizzad/pkg/render"
	"pizzad/pkg/storage"
)

type chargeCall struct {
	amount  float64
	source  string
	orderID string
}

type fakePayments struct {
	calls []chargeCall
	err   error
}

func (f *fakePayments) Charge(_ context.Context, amount float64, source, orderID string) (payment.Charge, error) {
	f.calls = append(f.calls, chargeCall{amount: amount, source: source, orderID: orderID})
	if f.err != nil {
		return payment.Charge{}, f.err
	}
	return payment.Charge{
		ID:       "ch_test_1",
		Currency: "usd",
		Paid:     true,
		Metadata: map[string]string{"orderId": orderID},
	}, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func newTestAPI(t *testing.T) (*API, *fakePayments, *fakeMailer) {
	t.Helper()

	store, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	a, payments, mailer := newTestAPIWithStore(t, store)
	return a, payments, mailer
}

func newTestAPIWithStore(t *testing.T, store *storage.Store) (*API, *fakePayments, *fakeMailer) {
	t.Helper()

	renderer, err := render.New()
	require.NoError(t, err)

	payments := &fakePayments{}
	mailer := &fakeMailer{}

	a, err := New(&Deps{
		Store:    store,
		Payments: payments,
		Mailer:   mailer,
		Renderer: renderer,
	}, Config{HashingSecret: "unit-test-secret"})
	require.NoError(t, err)
	return a, payments, mailer
}

// do routes one request through a freshly built router and returns the
// recorded response.
func do(t *testing.T, a *API, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("token", token)
	}
	rr := httptest.NewRecorder()
	a.Routes().ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dest))
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, rr, &body)
	return body["Error"]
}

func signupUser(t *testing.T, a *API, email string) {
	t.Helper()
	rr := do(t, a, http.MethodPost, "/users", "", map[string]any{
		"firstName":     "Ada",
		"lastName":      "Lovelace",
		"email":         email,
		"streetAddress": "12 Analytical Way",
		"password":      "hunter2",
		"tosAgreement":  true,
	})
	require.Equal(t, http.StatusOK, rr.Code)
}

func login(t *testing.T, a *API, email string) Token {
	t.Helper()
	rr := do(t, a, http.MethodPost, "/tokens", "", map[string]any{
		"email":    email,
		"password": "hunter2",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var token Token
	decodeBody(t, rr, &token)
	return token
}

func TestNewValidatesDeps(t *testing.T) {
	store, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	renderer, err := render.New()
	require.NoError(t, err)

	deps := &Deps{Store: store, Payments: &fakePayments{}, Mailer: &fakeMailer{}, Renderer: renderer}

	_, err = New(nil, Config{HashingSecret: "s"})
	require.Error(t, err)

	_, err = New(&Deps{}, Config{HashingSecret: "s"})
	require.Error(t, err)

	_, err = New(deps, Config{})
	require.Error(t, err)

	a, err := New(deps, Config{HashingSecret: "s"})
	require.NoError(t, err)
	require.Equal(t, defaultTokenTTL, a.config.TokenTTL)
}
