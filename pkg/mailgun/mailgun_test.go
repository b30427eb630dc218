package mailgun

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Config{Domain: "mg.example.com"})
	require.Error(t, err)
}

func TestSendSuccess(t *testing.T) {
	var gotPath, gotTo, gotSubject, gotText, gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPath = r.URL.Path
		gotTo = r.PostForm.Get("to")
		gotSubject = r.PostForm.Get("subject")
		gotText = r.PostForm.Get("text")
		gotUser, gotPass, _ = r.BasicAuth()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := New(Config{
		Domain:  "mg.example.com",
		APIKey:  "key-123",
		From:    "Pizza <orders@mg.example.com>",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)

	err = client.Send(context.Background(), "a@b.com", "Your order", "Thanks!")
	require.NoError(t, err)

	assert.Equal(t, "/v3/mg.example.com/messages", gotPath)
	assert.Equal(t, "a@b.com", gotTo)
	assert.Equal(t, "Your order", gotSubject)
	assert.Equal(t, "Thanks!", gotText)
	assert.Equal(t, "api", gotUser)
	assert.Equal(t, "key-123", gotPass)
}

func TestSendValidation(t *testing.T) {
	client, err := New(Config{Domain: "d", APIKey: "k", From: "f@d"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		to      string
		subject string
		body    string
	}{
		{name: "missing at sign", to: "not-an-address", subject: "s", body: "b"},
		{name: "empty subject", to: "a@b.com", subject: " ", body: "b"},
		{name: "empty body", to: "a@b.com", subject: "s", body: ""},
		{name: "oversized body", to: "a@b.com", subject: "s", body: strings.Repeat("x", maxBodyLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, client.Send(context.Background(), tt.to, tt.subject, tt.body))
		})
	}
}

func TestSendNon2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := New(Config{Domain: "d", APIKey: "k", From: "f@d", BaseURL: srv.URL})
	require.NoError(t, err)

	err = client.Send(context.Background(), "a@b.com", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
