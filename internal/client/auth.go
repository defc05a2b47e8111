// internal/client/auth.go
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Placement sides in the binary team tree
const (
	PositionLeft  = "left"
	PositionRight = "right"
)

// User is a member account as the backend returns it
type User struct {
	ID            string    `json:"_id"`
	MemberID      string    `json:"memberId,omitempty"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	SponsorID     string    `json:"sponsorId,omitempty"`
	Position      string    `json:"position,omitempty"`
	Rank          string    `json:"rank,omitempty"`
	IsActive      bool      `json:"isActive"`
	KYCStatus     string    `json:"kycStatus,omitempty"`
	ReferralCode  string    `json:"referralCode,omitempty"`
	ReferralLink  string    `json:"referralLink,omitempty"`
	Address       *Address  `json:"address,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	WalletBalance float64   `json:"walletBalance,omitempty"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the body of POST /auth/register. SponsorID is the
// referring member; Position is the leg of the sponsor's tree to place the
// new member in.
type RegisterRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	SponsorID string `json:"sponsorId" binding:"required"`
	Position  string `json:"position" binding:"omitempty,oneof=left right"`
}

// Normalize lowercases the placement side and trims identifiers
func (r *RegisterRequest) Normalize() {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.SponsorID = strings.TrimSpace(r.SponsorID)
	r.Position = strings.ToLower(strings.TrimSpace(r.Position))
}

// AuthResponse is returned by login and registration
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ProfileUpdate carries editable profile fields
type ProfileUpdate struct {
	Name    string   `json:"name,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// Dashboard is the member overview
type Dashboard struct {
	User            User    `json:"user"`
	WalletBalance   float64 `json:"walletBalance"`
	TotalEarnings   float64 `json:"totalEarnings"`
	PersonalPV      float64 `json:"personalPV"`
	LeftPV          float64 `json:"leftPV"`
	RightPV         float64 `json:"rightPV"`
	LeftCount       int     `json:"leftCount"`
	RightCount      int     `json:"rightCount"`
	DirectReferrals int     `json:"directReferrals"`
	TotalOrders     int     `json:"totalOrders"`
	Rank            string  `json:"rank"`
}

// TeamMember is one node of the member's downline
type TeamMember struct {
	ID        string       `json:"_id"`
	MemberID  string       `json:"memberId"`
	Name      string       `json:"name"`
	Position  string       `json:"position"`
	SponsorID string       `json:"sponsorId,omitempty"`
	IsActive  bool         `json:"isActive"`
	JoinedAt  time.Time    `json:"joinedAt"`
	Children  []TeamMember `json:"children,omitempty"`
}

// Team is the member's binary downline
type Team struct {
	Left       []TeamMember `json:"left"`
	Right      []TeamMember `json:"right"`
	TotalLeft  int          `json:"totalLeft"`
	TotalRight int          `json:"totalRight"`
}

// Login exchanges credentials for a token
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/login",
		body:     req,
		fallback: "Login failed",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a member placed under req.SponsorID
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Normalize()
	if req.Position != "" && req.Position != PositionLeft && req.Position != PositionRight {
		return nil, &APIError{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf("Invalid position %q", req.Position)}
	}

	var out AuthResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/register",
		body:     req,
		fallback: "Registration failed",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard returns the signed-in member's overview
func (c *Client) Dashboard(ctx context.Context, token string) (*Dashboard, error) {
	var out Dashboard
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/users/dashboard",
		token:    token,
		fallback: "Failed to fetch dashboard",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile returns the signed-in member's profile
func (c *Client) Profile(ctx context.Context, token string) (*User, error) {
	var out User
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/users/profile",
		token:    token,
		fallback: "Failed to fetch profile",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile saves profile changes
func (c *Client) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*User, error) {
	var out User
	err := c.do(ctx, request{
		method:   http.MethodPut,
		path:     "/users/profile",
		token:    token,
		body:     update,
		fallback: "Failed to update profile",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Team returns the member's downline
func (c *Client) Team(ctx context.Context, token string) (*Team, error) {
	var out Team
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/users/team",
		token:    token,
		fallback: "Failed to fetch team",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
