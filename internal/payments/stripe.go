package payments

import (
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"

	"github.com/docsmart-health/docsmart-api/internal/config"
)

// StripeGateway wraps Stripe Checkout for appointment fees.
type StripeGateway struct {
	currency    string
	frontendURL string
}

func NewStripeGateway(cfg *config.Config) *StripeGateway {
	stripe.Key = cfg.StripeSecretKey
	return &StripeGateway{
		currency:    cfg.CurrencyCode,
		frontendURL: cfg.FrontendURL,
	}
}

// CreateCheckoutSession builds a one-item checkout session for the appointment
// and returns the hosted payment URL.
func (g *StripeGateway) CreateCheckoutSession(appointmentID uint, amount float64) (string, error) {
	ref := strconv.FormatUint(uint64(appointmentID), 10)

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(ref),
		SuccessURL:        stripe.String(fmt.Sprintf("%s/verify?success=true&appointmentId=%s", g.frontendURL, ref)),
		CancelURL:         stripe.String(fmt.Sprintf("%s/verify?success=false&appointmentId=%s", g.frontendURL, ref)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(g.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Appointment fees"),
					},
					UnitAmount: stripe.Int64(int64(amount * 100)),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe session create: %w", err)
	}
	return s.URL, nil
}
