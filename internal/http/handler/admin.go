package handler

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// AdminPasskeyHeader carries the shared admin secret on privileged requests.
const AdminPasskeyHeader = "X-Admin-Passkey"

// actingAsAdmin reports whether the request carries the correct admin
// passkey. Admin identity is a request capability, not a user id.
func actingAsAdmin(c *fiber.Ctx, adminPasskey string) bool {
	if adminPasskey == "" {
		return false
	}
	got := c.Get(AdminPasskeyHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(adminPasskey)) == 1
}

// verifyRequest is the body for POST /admin/verify.
type verifyRequest struct {
	Passkey string `json:"passkey"`
}

// VerifyPasskey lets the UI's admin login modal check a passkey without
// holding a session; the response only says whether the secret matched.
func VerifyPasskey(adminPasskey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req verifyRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		valid := subtle.ConstantTimeCompare([]byte(req.Passkey), []byte(adminPasskey)) == 1
		return c.JSON(fiber.Map{"valid": valid})
	}
}
