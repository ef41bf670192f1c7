package handlers

import (
	"errors"
	"strconv"

	"metta-coop-api/internal/adapters/persistence/models"
	"metta-coop-api/internal/core/domain"
	"metta-coop-api/internal/core/services"
	"metta-coop-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List returns all members
// @Summary List members
// @Description List all members, newest first
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	members, err := h.memberService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully", members)
}

// Get returns one member
// @Summary Get member
// @Description Get a member by ID. Members may only view their own record.
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	// Non-admins may only read their own record
	role, _ := c.Locals("role").(string)
	if role != models.RoleAdmin {
		memberID, _ := c.Locals("memberID").(uint)
		if memberID != uint(id) {
			return response.Forbidden(c, "Access denied")
		}
	}

	member, err := h.memberService.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.DomainError(c, err, "Failed to get member")
	}

	return response.Success(c, "Member retrieved successfully", member)
}

// Create creates a new member
// @Summary Create member
// @Description Create a member together with its login account
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateMemberInput true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var input services.CreateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingField):
			return response.BadRequest(c, "Name and phone are required")
		case errors.Is(err, services.ErrWeakPassword):
			return response.BadRequest(c, "Password is too short")
		case errors.Is(err, domain.ErrPhoneAlreadyExists):
			return response.Conflict(c, "Phone number already in use")
		default:
			return response.InternalServerError(c, "Failed to create member")
		}
	}

	return response.Created(c, "Member created successfully", member)
}

// Update applies a partial member update
// @Summary Update member
// @Description Update member profile fields. Balances are ledger-only.
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body services.UpdateMemberInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members/{id} [patch]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var input services.UpdateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Update(c.Context(), uint(id), &input)
	if err != nil {
		// A taken phone is a conflict, not a plain validation failure
		if errors.Is(err, domain.ErrPhoneAlreadyExists) {
			return response.Conflict(c, "Phone number already in use")
		}
		return response.DomainError(c, err, "Failed to update member")
	}

	return response.Success(c, "Member updated successfully", member)
}
