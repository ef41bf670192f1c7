package handlers

import (
	"strconv"

	"metta-coop-api/internal/adapters/persistence/models"
	"metta-coop-api/internal/core/domain"
	"metta-coop-api/internal/core/services"
	"metta-coop-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// ApplyRequest represents a loan application body
type ApplyRequest struct {
	Amount   float64 `json:"amount"`
	Purpose  string  `json:"purpose"`
	Duration int     `json:"duration"`
	MemberID uint    `json:"memberId"`
}

// DecideRequest represents a loan decision body
type DecideRequest struct {
	Status string `json:"status"`
}

// List returns loans
// @Summary List loans
// @Description List loans, newest application first. Admins see every
// @Description member, other users only their own.
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param memberId query int false "Filter by member (admin only)"
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	var memberID *uint
	role, _ := c.Locals("role").(string)
	if role == models.RoleAdmin {
		if raw := c.Query("memberId"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return response.BadRequest(c, "Invalid memberId filter")
			}
			v := uint(id)
			memberID = &v
		}
	} else {
		id, ok := c.Locals("memberID").(uint)
		if !ok || id == 0 {
			return response.Forbidden(c, "No member profile linked to this account")
		}
		memberID = &id
	}

	loans, err := h.loanService.List(c.Context(), memberID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", loans)
}

// Get returns one loan
// @Summary Get loan
// @Description Get a loan by ID. Members may only view their own loans.
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.DomainError(c, err, "Failed to get loan")
	}

	role, _ := c.Locals("role").(string)
	if role != models.RoleAdmin {
		memberID, _ := c.Locals("memberID").(uint)
		if loan.MemberID != memberID {
			return response.Forbidden(c, "Access denied")
		}
	}

	return response.Success(c, "Loan retrieved successfully", loan)
}

// Apply creates a loan application
// @Summary Apply for loan
// @Description Submit a loan application. It starts in pending status.
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ApplyRequest true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Apply(c *fiber.Ctx) error {
	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Non-admins always apply for themselves
	memberID := req.MemberID
	role, _ := c.Locals("role").(string)
	if role != models.RoleAdmin {
		id, ok := c.Locals("memberID").(uint)
		if !ok || id == 0 {
			return response.Forbidden(c, "No member profile linked to this account")
		}
		memberID = id
	}

	input := &services.ApplyInput{
		MemberID: memberID,
		Amount:   req.Amount,
		Purpose:  req.Purpose,
		Duration: req.Duration,
	}

	loan, err := h.loanService.Apply(c.Context(), input)
	if err != nil {
		return response.DomainError(c, err, "Failed to submit loan application")
	}

	return response.Created(c, "Loan application submitted successfully", loan)
}

// Decide approves or rejects a pending loan
// @Summary Decide loan
// @Description Approve or reject a pending loan. Approval disburses the
// @Description amount to the member's loan balance through the ledger.
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body DecideRequest true "Decision"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id} [patch]
func (h *LoanHandler) Decide(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req DecideRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var loan *models.Loan
	switch req.Status {
	case models.LoanStatusApproved:
		loan, err = h.loanService.Approve(c.Context(), uint(id))
	case models.LoanStatusRejected:
		loan, err = h.loanService.Reject(c.Context(), uint(id))
	default:
		return response.BadRequest(c, domain.ErrInvalidLoanStatus.Error())
	}

	if err != nil {
		return response.DomainError(c, err, "Failed to update loan")
	}

	return response.Success(c, "Loan updated successfully", loan)
}

// Estimate returns the monthly installment for a hypothetical loan
// @Summary Estimate installment
// @Description Calculate the monthly installment for an amount and duration
// @Description using the current loan interest rate.
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param amount query number true "Loan amount"
// @Param duration query int true "Duration in months"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /loans/estimate [get]
func (h *LoanHandler) Estimate(c *fiber.Ctx) error {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil {
		return response.BadRequest(c, "Invalid amount")
	}
	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil {
		return response.BadRequest(c, "Invalid duration")
	}

	installment, err := h.loanService.Estimate(c.Context(), amount, duration)
	if err != nil {
		return response.DomainError(c, err, "Failed to estimate installment")
	}

	return response.Success(c, "Installment estimated successfully", fiber.Map{
		"amount":             amount,
		"duration":           duration,
		"monthlyInstallment": installment,
	})
}
