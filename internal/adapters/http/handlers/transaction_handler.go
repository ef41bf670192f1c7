package handlers

import (
	"strconv"

	"metta-coop-api/internal/adapters/persistence/models"
	"metta-coop-api/internal/core/services"
	"metta-coop-api/internal/pkg/pagination"
	"metta-coop-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler handles ledger endpoints
type TransactionHandler struct {
	transactionService *services.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List returns ledger entries
// @Summary List transactions
// @Description List ledger entries, newest first. Admins see every member,
// @Description other users only their own. Admins may filter with memberId.
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param memberId query int false "Filter by member (admin only)"
// @Success 200 {object} response.Response
// @Router /transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

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

	out, err := h.transactionService.List(c.Context(), memberID, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list transactions")
	}

	return response.Success(c, "Transactions retrieved successfully", fiber.Map{
		"transactions": out.Transactions,
		"pagination":   out.Meta,
	})
}

// Record creates a ledger entry
// @Summary Record transaction
// @Description Record a ledger entry and apply its balance effect
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RecordInput true "Transaction data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /transactions [post]
func (h *TransactionHandler) Record(c *fiber.Ctx) error {
	var input services.RecordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	entry, err := h.transactionService.Record(c.Context(), &input)
	if err != nil {
		return response.DomainError(c, err, "Failed to record transaction")
	}

	return response.Created(c, "Transaction recorded successfully", entry)
}
