// internal/client/wallet.go
package client

import (
	"context"
	"net/http"
	"time"
)

// WalletBalance is the member's wallet summary
type WalletBalance struct {
	Balance       float64 `json:"balance"`
	Pending       float64 `json:"pending"`
	TotalCredited float64 `json:"totalCredited"`
	TotalDebited  float64 `json:"totalDebited"`
}

// WalletTransaction is a wallet ledger entry
type WalletTransaction struct {
	ID          string    `json:"_id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WithdrawalRequest asks for wallet funds to be paid out
type WithdrawalRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Note   string  `json:"note,omitempty"`
}

// TransferRequest moves wallet funds to another member
type TransferRequest struct {
	RecipientID string  `json:"recipientId" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
}

// WalletBalance returns the member's wallet summary
func (c *Client) WalletBalance(ctx context.Context, token string) (*WalletBalance, error) {
	var out WalletBalance
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/wallet/balance",
		token:    token,
		fallback: "Failed to fetch wallet balance",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// WalletTransactions returns a page of the wallet ledger
func (c *Client) WalletTransactions(ctx context.Context, token string, page Page) ([]WalletTransaction, error) {
	var out []WalletTransaction
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/wallet/transactions",
		token:    token,
		query:    page.values(),
		fallback: "Failed to fetch wallet transactions",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RequestWithdrawal asks for a payout from the wallet
func (c *Client) RequestWithdrawal(ctx context.Context, token string, req WithdrawalRequest) (*WalletTransaction, error) {
	var out WalletTransaction
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/wallet/withdraw",
		token:    token,
		body:     req,
		fallback: "Withdrawal request failed",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TransferFunds sends wallet funds to another member
func (c *Client) TransferFunds(ctx context.Context, token string, req TransferRequest) (*WalletTransaction, error) {
	var out WalletTransaction
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/wallet/transfer",
		token:    token,
		body:     req,
		fallback: "Transfer failed",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
