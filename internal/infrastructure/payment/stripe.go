package payment

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go"
	"github.com/stripe/stripe-go/client"

	"campustix/internal/domain"
	"campustix/internal/ports/output"
)

var _ output.PaymentGateway = (*Stripe)(nil)

// Stripe charges tickets with a confirmed PaymentIntent.
type Stripe struct {
	api      *client.API
	currency string
}

func NewStripe(secretKey, currency string) *Stripe {
	return &Stripe{
		api:      client.New(secretKey, nil),
		currency: strings.ToLower(currency),
	}
}

func (s *Stripe) Charge(ctx context.Context, req output.PaymentRequest) (output.PaymentReceipt, error) {
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return output.PaymentReceipt{}, domain.ErrPaymentMethodRequired
	}
	amount, err := MinorUnits(req.Amount)
	if err != nil {
		return output.PaymentReceipt{}, err
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amount),
		Currency:      stripe.String(s.currency),
		PaymentMethod: stripe.String(req.PaymentMethod),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(req.Description),
	}
	params.Context = ctx
	params.AddMetadata("event_id", strconv.FormatUint(uint64(req.EventID), 10))
	params.AddMetadata("user_id", strconv.FormatUint(uint64(req.UserID), 10))
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		log.Printf("❌ Paiement refusé (event=%d, user=%d): %v", req.EventID, req.UserID, err)
		return output.PaymentReceipt{}, fmt.Errorf("%w: %v", domain.ErrPaymentDeclined, err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return output.PaymentReceipt{}, fmt.Errorf("%w: payment intent %s is %s", domain.ErrPaymentDeclined, pi.ID, pi.Status)
	}

	log.Printf("✅ Paiement accepté: %s", pi.ID)
	return output.PaymentReceipt{Reference: pi.ID}, nil
}

// MinorUnits converts a price to the integer amount Stripe expects
// (paise, cents). Prices with more than two decimals are refused.
func MinorUnits(amount decimal.Decimal) (int64, error) {
	if amount.IsNegative() {
		return 0, domain.ErrInvalidPrice
	}
	cents := amount.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, fmt.Errorf("payment: amount %s has more than two decimals", amount)
	}
	return cents.IntPart(), nil
}
