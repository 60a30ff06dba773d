// Package payments creates hosted checkout sessions for citizens upgrading
// their plan.
package payments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// MinimumAmount is the smallest charge the processor accepts, in cents
const MinimumAmount = 50

// ErrAmountTooSmall is returned for charges under MinimumAmount
var ErrAmountTooSmall = errors.New("amount must be at least 50 cents")

// Request describes one checkout
type Request struct {
	AmountCents int64
	Name        string
	Image       string
	Email       string
	CitizenID   string
	IssueID     string
}

// Checkouter starts a checkout and returns the URL to redirect the browser to
type Checkouter interface {
	CreateSession(ctx context.Context, req Request) (string, error)
}

type sessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeCheckout creates Stripe Checkout sessions in payment mode
type StripeCheckout struct {
	sessions     sessionCreator
	clientDomain string
	currency     stripe.Currency
}

// NewStripeCheckout returns a checkout using secretKey. Success and cancel
// redirects go back to clientDomain.
func NewStripeCheckout(secretKey, clientDomain string) *StripeCheckout {
	return &StripeCheckout{
		sessions:     &session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
		clientDomain: strings.TrimRight(clientDomain, "/"),
		currency:     stripe.CurrencyUSD,
	}
}

// AmountInCents converts a charge in major currency units to cents
func AmountInCents(charge float64) int64 {
	return int64(math.Round(charge * 100))
}

// CreateSession creates the session and returns its hosted URL
func (c *StripeCheckout) CreateSession(ctx context.Context, req Request) (string, error) {
	if req.AmountCents < MinimumAmount {
		return "", ErrAmountTooSmall
	}

	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(req.Name),
	}
	if req.Image != "" {
		productData.Images = stripe.StringSlice([]string{req.Image})
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(string(c.currency)),
					UnitAmount:  stripe.Int64(req.AmountCents),
					ProductData: productData,
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(c.clientDomain + "/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(c.clientDomain + "/dashboard"),
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.Context = ctx
	params.AddMetadata("citizenId", req.CitizenID)
	params.AddMetadata("email", req.Email)
	if req.IssueID != "" {
		params.AddMetadata("issueId", req.IssueID)
	}

	s, err := c.sessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	zap.S().Infow("checkout session created", "session", s.ID, "citizenId", req.CitizenID, "amount", req.AmountCents)
	return s.URL, nil
}
