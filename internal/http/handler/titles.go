package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"libraryapi/internal/model"
	"libraryapi/internal/service"
)

// titleListResponse wraps catalog listings with a total for UI pagination.
type titleListResponse struct {
	Items []model.Title `json:"data"`
	Total int           `json:"total"`
}

// createTitleRequest is the body for POST /titles.
type createTitleRequest struct {
	Title     string `json:"title" validate:"required"`
	Author    string `json:"author" validate:"required"`
	Category  string `json:"category"`
	Cover     string `json:"cover" validate:"omitempty,url"`
	CopyCount int    `json:"copy_count" validate:"omitempty,min=1"`
}

// ListTitles serves the catalog, optionally filtered by ?q= (case-insensitive
// substring over title/author/category) and ?category= (normalized id).
func ListTitles(catalog service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		titles, err := catalog.Search(c.UserContext(), c.Query("q"), c.Query("category"))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(titleListResponse{Items: titles, Total: len(titles)})
	}
}

// ListCategories serves the category navigation list with counts.
func ListCategories(catalog service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cats, err := catalog.Categories(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(cats)
	}
}

// CreateTitle adds a catalog entry. Admin only.
func CreateTitle(ledger service.LedgerService, validate *validator.Validate, adminPasskey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !actingAsAdmin(c, adminPasskey) {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "admin passkey required")
		}

		var req createTitleRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := validate.Struct(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}

		t, err := ledger.AddTitle(c.UserContext(), service.AddTitleInput{
			Title:     req.Title,
			Author:    req.Author,
			Category:  req.Category,
			Cover:     req.Cover,
			CopyCount: req.CopyCount,
		})
		if err != nil {
			return writeLedgerError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(t)
	}
}

// DeleteTitle removes a catalog entry. Admin only. Outstanding loans do not
// block deletion.
func DeleteTitle(ledger service.LedgerService, adminPasskey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !actingAsAdmin(c, adminPasskey) {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "admin passkey required")
		}

		if err := ledger.RemoveTitle(c.UserContext(), c.Params("id")); err != nil {
			return writeLedgerError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
