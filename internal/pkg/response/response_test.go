package response

import (
	"errors"
	"net/http/httptest"
	"testing"

	"metta-coop-api/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation maps to 400", domain.ErrInvalidAmount, fiber.StatusBadRequest},
		{"not found maps to 404", domain.ErrMemberNotFound, fiber.StatusNotFound},
		{"invalid state maps to 409", domain.ErrLoanNotPending, fiber.StatusConflict},
		{"unknown maps to 500", errors.New("connection reset"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return DomainError(c, tt.err, "Something went wrong")
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
