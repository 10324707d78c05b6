package client

import (
	"context"
	"fmt"

	"chat-billing/internal/config"

	"github.com/braintree-go/braintree-go"
)

// BraintreeClient verifies card payments made through the Braintree
// drop-in on the client side.
type BraintreeClient interface {
	// VerifyTransaction looks up a transaction by id and reports whether
	// it has been captured, along with Braintree's authoritative amount.
	VerifyTransaction(ctx context.Context, transactionID string) (*VerifyOrderResult, error)
}

type braintreeClientImpl struct {
	gateway *braintree.Braintree
}

func NewBraintreeClient(cfg *config.Braintree) BraintreeClient {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &braintreeClientImpl{
		gateway: gateway,
	}
}

func (c *braintreeClientImpl) VerifyTransaction(ctx context.Context, transactionID string) (*VerifyOrderResult, error) {
	tx, err := c.gateway.Transaction().Find(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("braintree find transaction: %w", err)
	}

	result := &VerifyOrderResult{Status: string(tx.Status)}
	switch tx.Status {
	case braintree.TransactionStatusSubmittedForSettlement,
		braintree.TransactionStatusSettling,
		braintree.TransactionStatusSettled:
		result.Verified = true
		result.Amount = tx.Amount.String()
	}

	return result, nil
}
