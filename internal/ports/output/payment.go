package output

import (
	"context"

	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	EventID        uint
	UserID         uint
	Amount         decimal.Decimal
	PaymentMethod  string
	IdempotencyKey string
	Description    string
}

type PaymentReceipt struct {
	Reference string
}

// PaymentGateway charges for a paid event before its ticket is created.
// Any error means no ticket is issued.
type PaymentGateway interface {
	Charge(ctx context.Context, req PaymentRequest) (PaymentReceipt, error)
}
