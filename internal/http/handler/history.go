package handler

import (
	"github.com/gofiber/fiber/v2"

	"libraryapi/internal/service"
)

// FullHistory serves the complete audit trail, newest first. Admin only.
func FullHistory(history service.HistoryService, adminPasskey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !actingAsAdmin(c, adminPasskey) {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "admin passkey required")
		}

		entries, err := history.Full(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(entries)
	}
}

// HolderHistory serves one holder's activity view.
func HolderHistory(history service.HistoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := history.ForHolder(c.UserContext(), c.Params("holderId"))
		if err != nil {
			return writeLedgerError(c, err)
		}
		return c.JSON(entries)
	}
}
