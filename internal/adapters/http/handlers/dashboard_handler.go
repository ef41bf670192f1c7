package handlers

import (
	"metta-coop-api/internal/core/services"
	"metta-coop-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Admin returns the admin dashboard
// @Summary Admin dashboard
// @Description Society-wide totals, loan counts and recent activity
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// Member returns the member home screen data
// @Summary Member dashboard
// @Description The member's balances, derived figures, active loans and
// @Description recent activity
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dashboard/me [get]
func (h *DashboardHandler) Member(c *fiber.Ctx) error {
	memberID, ok := c.Locals("memberID").(uint)
	if !ok || memberID == 0 {
		return response.Forbidden(c, "No member profile linked to this account")
	}

	data, err := h.dashboardService.GetMemberDashboard(c.Context(), memberID)
	if err != nil {
		return response.DomainError(c, err, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}
