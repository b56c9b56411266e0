package payments

import (
	"fmt"
	"strconv"

	"github.com/razorpay/razorpay-go"

	"github.com/docsmart-health/docsmart-api/internal/config"
)

// RazorpayGateway creates orders for appointment fees and verifies them by
// fetching the order back and checking its status.
type RazorpayGateway struct {
	client   *razorpay.Client
	currency string
}

func NewRazorpayGateway(cfg *config.Config) *RazorpayGateway {
	return &RazorpayGateway{
		client:   razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		currency: cfg.CurrencyCode,
	}
}

// CreateOrder registers an order for the appointment amount. Razorpay expects
// the amount in the currency's smallest unit.
func (g *RazorpayGateway) CreateOrder(appointmentID uint, amount float64) (map[string]interface{}, error) {
	data := map[string]interface{}{
		"amount":   int64(amount * 100),
		"currency": g.currency,
		"receipt":  strconv.FormatUint(uint64(appointmentID), 10),
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}
	return order, nil
}

// VerifyOrder returns the receipt (appointment id) when the order is paid.
func (g *RazorpayGateway) VerifyOrder(orderID string) (uint, bool, error) {
	order, err := g.client.Order.Fetch(orderID, nil, nil)
	if err != nil {
		return 0, false, fmt.Errorf("razorpay order fetch: %w", err)
	}

	status, _ := order["status"].(string)
	receipt, _ := order["receipt"].(string)

	id, err := strconv.ParseUint(receipt, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("razorpay order %s: bad receipt %q", orderID, receipt)
	}

	return uint(id), status == "paid", nil
}
