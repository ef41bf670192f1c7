package handlers

import (
	"metta-coop-api/internal/core/services"
	"metta-coop-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles society settings endpoints
type SettingsHandler struct {
	settingsService *services.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the society settings
// @Summary Get settings
// @Description Get the society rates and limits
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.settingsService.Get(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get settings")
	}

	return response.Success(c, "Settings retrieved successfully", settings)
}

// Update applies a partial settings update
// @Summary Update settings
// @Description Update society rates and limits. Changes affect future
// @Description calculations only.
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateSettingsInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var input services.UpdateSettingsInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	settings, err := h.settingsService.Update(c.Context(), &input)
	if err != nil {
		return response.DomainError(c, err, "Failed to update settings")
	}

	return response.Success(c, "Settings updated successfully", settings)
}
