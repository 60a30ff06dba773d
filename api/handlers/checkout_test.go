package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reporthub/reporthub-api/api/handlers"
	"github.com/reporthub/reporthub-api/models"
	"github.com/reporthub/reporthub-api/payments"
)

type fakeCheckout struct {
	req payments.Request
	err error
}

func (f *fakeCheckout) CreateSession(_ context.Context, req payments.Request) (string, error) {
	f.req = req
	if f.err != nil {
		return "", f.err
	}
	return "https://checkout.example/cs_1", nil
}

func TestCheckout_CreateCheckoutSessionHandler(t *testing.T) {
	f := &fakeCheckout{}
	c := handlers.Checkout{Payments: f}
	body := `{"charge":19.99,"name":"Boost","image":"https://img.example/a.png","email":"ada@example.com","citizenId":"c1","issueId":"i1"}`

	rr := serve(c.CreateCheckoutSessionHandler, newRequest(http.MethodPost, "/create-checkout-session", body, nil, ""))

	assert.Equal(t, http.StatusOK, rr.Code)
	var got models.CheckoutResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "https://checkout.example/cs_1", got.URL)
	assert.Equal(t, payments.Request{
		AmountCents: 1999,
		Name:        "Boost",
		Image:       "https://img.example/a.png",
		Email:       ada,
		CitizenID:   "c1",
		IssueID:     "i1",
	}, f.req)
}

func TestCheckout_CreateCheckoutSessionHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		payments   payments.Checkouter
		body       string
		wantStatus int
	}{
		{name: "too small", payments: &fakeCheckout{}, body: `{"charge":0.49}`, wantStatus: http.StatusBadRequest},
		{name: "bad body", payments: &fakeCheckout{}, body: `{`, wantStatus: http.StatusBadRequest},
		{name: "processor error", payments: &fakeCheckout{err: errors.New("card_declined")}, body: `{"charge":5}`, wantStatus: http.StatusInternalServerError},
		{name: "not configured", body: `{"charge":5}`, wantStatus: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := handlers.Checkout{Payments: tt.payments}
			rr := serve(c.CreateCheckoutSessionHandler, newRequest(http.MethodPost, "/create-checkout-session", tt.body, nil, ""))
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
