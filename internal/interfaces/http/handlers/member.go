package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/client"
)

// MemberHandler serves the signed-in member's account pages: dashboard,
// profile, team, wallet, KYC, finance and bonuses
type MemberHandler struct {
	backend *client.Client
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(backend *client.Client) *MemberHandler {
	return &MemberHandler{backend: backend}
}

// GetDashboard handles GET /users/dashboard
func (h *MemberHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.backend.Dashboard(c.Request.Context(), token(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, dashboard)
}

// GetProfile handles GET /users/profile
func (h *MemberHandler) GetProfile(c *gin.Context) {
	profile, err := h.backend.Profile(c.Request.Context(), token(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, profile)
}

// UpdateProfile handles PUT /users/profile
func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	var req client.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	profile, err := h.backend.UpdateProfile(c.Request.Context(), token(c), req)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, profile)
}

// GetTeam handles GET /users/team
func (h *MemberHandler) GetTeam(c *gin.Context) {
	team, err := h.backend.Team(c.Request.Context(), token(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, team)
}

// GetWalletBalance handles GET /wallet/balance
func (h *MemberHandler) GetWalletBalance(c *gin.Context) {
	balance, err := h.backend.WalletBalance(c.Request.Context(), token(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, balance)
}

// GetWalletTransactions handles GET /wallet/transactions
func (h *MemberHandler) GetWalletTransactions(c *gin.Context) {
	txns, err := h.backend.WalletTransactions(c.Request.Context(), token(c), pageFromQuery(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, txns)
}

// RequestWithdrawal handles POST /wallet/withdraw
func (h *MemberHandler) RequestWithdrawal(c *gin.Context) {
	var req client.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.backend.RequestWithdrawal(c.Request.Context(), token(c), req)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusCreated, txn)
}

// TransferFunds handles POST /wallet/transfer
func (h *MemberHandler) TransferFunds(c *gin.Context) {
	var req client.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.backend.TransferFunds(c.Request.Context(), token(c), req)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusCreated, txn)
}

// GetKYCStatus handles GET /kyc/status
func (h *MemberHandler) GetKYCStatus(c *gin.Context) {
	status, err := h.backend.KYCStatus(c.Request.Context(), token(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, status)
}

// SubmitKYC handles POST /kyc/submit
func (h *MemberHandler) SubmitKYC(c *gin.Context) {
	var req client.KYCSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	status, err := h.backend.SubmitKYC(c.Request.Context(), token(c), req)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusCreated, status)
}

// UpdateKYC handles PUT /kyc/update
func (h *MemberHandler) UpdateKYC(c *gin.Context) {
	var req client.KYCSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	status, err := h.backend.UpdateKYC(c.Request.Context(), token(c), req)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, status)
}

// GetFinanceSummary handles GET /finance/summary
func (h *MemberHandler) GetFinanceSummary(c *gin.Context) {
	summary, err := h.backend.FinanceSummary(c.Request.Context(), token(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, summary)
}

// GetPayouts handles GET /finance/payouts
func (h *MemberHandler) GetPayouts(c *gin.Context) {
	payouts, err := h.backend.Payouts(c.Request.Context(), token(c), pageFromQuery(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, payouts)
}

// UpdateBankDetails handles PUT /finance/bank-details
func (h *MemberHandler) UpdateBankDetails(c *gin.Context) {
	var req client.BankDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	details, err := h.backend.UpdateBankDetails(c.Request.Context(), token(c), req)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, details)
}

// GetBonus handles GET /bonuses/:program
func (h *MemberHandler) GetBonus(c *gin.Context) {
	program := client.BonusProgram(c.Param("program"))
	if !program.Valid() {
		respondError(c, http.StatusNotFound, "Unknown bonus program")
		return
	}

	report, err := h.backend.Bonus(c.Request.Context(), token(c), program)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	respondData(c, http.StatusOK, report)
}

// ListBonusPrograms handles GET /bonuses
func (h *MemberHandler) ListBonusPrograms(c *gin.Context) {
	respondData(c, http.StatusOK, client.BonusPrograms)
}
