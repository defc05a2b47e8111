// internal/client/finance.go
package client

import (
	"context"
	"net/http"
	"time"
)

// FinanceSummary is the member's income and payout overview
type FinanceSummary struct {
	TotalIncome    float64 `json:"totalIncome"`
	TotalWithdrawn float64 `json:"totalWithdrawn"`
	PendingPayouts float64 `json:"pendingPayouts"`
	TDSDeducted    float64 `json:"tdsDeducted"`
	AdminCharges   float64 `json:"adminCharges"`
	NetPayable     float64 `json:"netPayable"`
}

// Payout is a withdrawal processed to the member's bank
type Payout struct {
	ID          string     `json:"_id"`
	Amount      float64    `json:"amount"`
	NetAmount   float64    `json:"netAmount"`
	Status      string     `json:"status"`
	Reference   string     `json:"reference,omitempty"`
	RequestedAt time.Time  `json:"requestedAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
}

// BankDetails is where payouts are sent
type BankDetails struct {
	AccountHolder string `json:"accountHolder" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	IFSC          string `json:"ifsc" binding:"required"`
	BankName      string `json:"bankName" binding:"required"`
	UPIID         string `json:"upiId,omitempty"`
}

// FinanceSummary returns the member's income overview
func (c *Client) FinanceSummary(ctx context.Context, token string) (*FinanceSummary, error) {
	var out FinanceSummary
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/finance/summary",
		token:    token,
		fallback: "Failed to fetch finance summary",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Payouts returns a page of the member's payouts
func (c *Client) Payouts(ctx context.Context, token string, page Page) ([]Payout, error) {
	var out []Payout
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/finance/payouts",
		token:    token,
		query:    page.values(),
		fallback: "Failed to fetch payouts",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateBankDetails saves the payout account
func (c *Client) UpdateBankDetails(ctx context.Context, token string, details BankDetails) (*BankDetails, error) {
	var out BankDetails
	err := c.do(ctx, request{
		method:   http.MethodPut,
		path:     "/finance/bank-details",
		token:    token,
		body:     details,
		fallback: "Failed to update bank details",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
