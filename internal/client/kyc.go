// internal/client/kyc.go
package client

import (
	"context"
	"net/http"
	"time"
)

// KYC review states
const (
	KYCNotSubmitted = "not_submitted"
	KYCPending      = "pending"
	KYCApproved     = "approved"
	KYCRejected     = "rejected"
)

// KYCStatus is the state of the member's identity verification
type KYCStatus struct {
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
}

// KYCSubmission carries identity documents
type KYCSubmission struct {
	PANNumber     string `json:"panNumber" binding:"required"`
	AadhaarNumber string `json:"aadhaarNumber" binding:"required"`
	PANImage      string `json:"panImage,omitempty"`
	AadhaarFront  string `json:"aadhaarFront,omitempty"`
	AadhaarBack   string `json:"aadhaarBack,omitempty"`
	BankProof     string `json:"bankProof,omitempty"`
}

// KYCStatus returns the member's verification state
func (c *Client) KYCStatus(ctx context.Context, token string) (*KYCStatus, error) {
	var out KYCStatus
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/kyc/status",
		token:    token,
		fallback: "Failed to fetch KYC status",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitKYC sends documents for the first time
func (c *Client) SubmitKYC(ctx context.Context, token string, sub KYCSubmission) (*KYCStatus, error) {
	var out KYCStatus
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/kyc/submit",
		token:    token,
		body:     sub,
		fallback: "KYC submission failed",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateKYC resubmits documents after a rejection
func (c *Client) UpdateKYC(ctx context.Context, token string, sub KYCSubmission) (*KYCStatus, error) {
	var out KYCStatus
	err := c.do(ctx, request{
		method:   http.MethodPut,
		path:     "/kyc/update",
		token:    token,
		body:     sub,
		fallback: "KYC update failed",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
