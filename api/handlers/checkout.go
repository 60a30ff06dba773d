package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reporthub/reporthub-api/api"
	"github.com/reporthub/reporthub-api/config"
	"github.com/reporthub/reporthub-api/models"
	"github.com/reporthub/reporthub-api/payments"
)

// Checkout exported for testing purposes
type Checkout struct {
	Payments payments.Checkouter
}

// CreateCheckoutSessionHandler starts a hosted checkout for a boost payment
func (c Checkout) CreateCheckoutSessionHandler(w http.ResponseWriter, r *http.Request) {
	if c.Payments == nil {
		config.ErrorStatus("payments are not configured", http.StatusServiceUnavailable, w, errors.New("no payment processor"))
		return
	}

	var body models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	amount := payments.AmountInCents(body.Charge)
	if amount < payments.MinimumAmount {
		config.ErrorStatus("amount must be at least 50 cents", http.StatusBadRequest, w, payments.ErrAmountTooSmall)
		return
	}

	url, err := c.Payments.CreateSession(r.Context(), payments.Request{
		AmountCents: amount,
		Name:        body.Name,
		Image:       body.Image,
		Email:       body.Email,
		CitizenID:   body.CitizenID,
		IssueID:     body.IssueID,
	})
	if errors.Is(err, payments.ErrAmountTooSmall) {
		config.ErrorStatus("amount must be at least 50 cents", http.StatusBadRequest, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to create checkout session", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, models.CheckoutResponse{URL: url})
}
