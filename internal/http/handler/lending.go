package handler

import (
	"github.com/gofiber/fiber/v2"

	"libraryapi/internal/service"
)

// lendingRequest is the body for borrow and return calls.
type lendingRequest struct {
	HolderID   string `json:"holder_id"`
	HolderName string `json:"holder_name"`
}

// BorrowTitle lends one copy of a title to the requesting holder.
func BorrowTitle(ledger service.LedgerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req lendingRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		t, err := ledger.Borrow(c.UserContext(), c.Params("id"), service.Holder{
			ID:   req.HolderID,
			Name: req.HolderName,
		})
		if err != nil {
			return writeLedgerError(c, err)
		}
		return c.JSON(t)
	}
}

// ReturnTitle gives a copy back. A valid admin passkey header turns the call
// into an admin override, which may release any one active record when the
// named holder has none.
func ReturnTitle(ledger service.LedgerService, adminPasskey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req lendingRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		t, err := ledger.Return(c.UserContext(), c.Params("id"), service.Holder{
			ID:   req.HolderID,
			Name: req.HolderName,
		}, actingAsAdmin(c, adminPasskey))
		if err != nil {
			return writeLedgerError(c, err)
		}
		return c.JSON(t)
	}
}
