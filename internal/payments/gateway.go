package payments

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChargeResult is the gateway's answer for one attempt. A transaction id is
// issued whether or not the charge was approved, so declines stay auditable.
type ChargeResult struct {
	TransactionID string
	Approved      bool
}

// Gateway abstracts the external payment processor. The production binding is
// the simulated gateway below; tests inject deterministic ones.
type Gateway interface {
	Charge(ctx context.Context, amount float64, method string) (*ChargeResult, error)
}

type simulatedGateway struct {
	successRate float64
	lag         time.Duration
}

// NewSimulatedGateway builds a gateway that waits lag, then approves with
// probability successRate.
func NewSimulatedGateway(successRate float64, lag time.Duration) Gateway {
	return &simulatedGateway{
		successRate: successRate,
		lag:         lag,
	}
}

func (g *simulatedGateway) Charge(ctx context.Context, amount float64, method string) (*ChargeResult, error) {
	select {
	case <-time.After(g.lag):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &ChargeResult{
		TransactionID: NewTransactionID(),
		Approved:      rand.Float64() < g.successRate,
	}, nil
}

// NewTransactionID generates ids like "TXN_A1B2C3D4".
func NewTransactionID() string {
	segment := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return "TXN_" + strings.ToUpper(segment)
}
