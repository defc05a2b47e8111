// internal/client/bonus.go
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// BonusProgram names one of the compensation-plan bonuses
type BonusProgram string

// Bonus programs shown on the member dashboard
const (
	BonusWelcome        BonusProgram = "welcome"
	BonusMatching       BonusProgram = "matching"
	BonusMentorship     BonusProgram = "mentorship"
	BonusRepurchase     BonusProgram = "repurchase"
	BonusRankRoyalty    BonusProgram = "rank-royalty"
	BonusWeeklyTarget   BonusProgram = "weekly-target"
	BonusMonthlyBonanza BonusProgram = "monthly-bonanza"
)

// BonusPrograms lists every program in display order
var BonusPrograms = []BonusProgram{
	BonusWelcome,
	BonusMatching,
	BonusMentorship,
	BonusRepurchase,
	BonusRankRoyalty,
	BonusWeeklyTarget,
	BonusMonthlyBonanza,
}

// Valid reports whether p is a known program
func (p BonusProgram) Valid() bool {
	for _, known := range BonusPrograms {
		if p == known {
			return true
		}
	}
	return false
}

// BonusEntry is one credited or pending bonus
type BonusEntry struct {
	ID          string    `json:"_id,omitempty"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
}

// BonusReport is what the backend computed for one program. Progress holds
// program-specific figures such as target progress or qualifying rank.
type BonusReport struct {
	Program     BonusProgram           `json:"program"`
	TotalEarned float64                `json:"totalEarned"`
	Pending     float64                `json:"pending"`
	Eligible    bool                   `json:"eligible"`
	Entries     []BonusEntry           `json:"entries"`
	Progress    map[string]interface{} `json:"progress,omitempty"`
}

// Bonus returns the member's report for program
func (c *Client) Bonus(ctx context.Context, token string, program BonusProgram) (*BonusReport, error) {
	if !program.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBonusProgram, program)
	}

	var out BonusReport
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/bonus/" + string(program),
		token:    token,
		fallback: fmt.Sprintf("Failed to fetch %s bonus", program),
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Program == "" {
		out.Program = program
	}
	return &out, nil
}
