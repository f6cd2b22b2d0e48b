package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"libraryapi/internal/seed"
	"libraryapi/internal/service"
	"libraryapi/internal/storage"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Ledger       service.LedgerService
	Catalog      service.CatalogService
	History      service.HistoryService
	Snapshotter  storage.Snapshotter
	AdminPasskey string
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers stay thin: parsing, validation, and error translation only — the
// business rules live in the services.
func RegisterRoutes(app *fiber.App, d Deps) {
	validate := validator.New()

	// Serve the OpenAPI spec and a Swagger UI page for it.
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(d.Snapshotter))
	app.Get("/healthz", LivenessProbe())

	app.Get("/titles", ListTitles(d.Catalog))
	app.Post("/titles", CreateTitle(d.Ledger, validate, d.AdminPasskey))
	app.Delete("/titles/:id", DeleteTitle(d.Ledger, d.AdminPasskey))
	app.Post("/titles/:id/borrow", BorrowTitle(d.Ledger))
	app.Post("/titles/:id/return", ReturnTitle(d.Ledger, d.AdminPasskey))

	app.Get("/categories", ListCategories(d.Catalog))

	app.Get("/history", FullHistory(d.History, d.AdminPasskey))
	app.Get("/history/:holderId", HolderHistory(d.History))

	app.Get("/users", func(c *fiber.Ctx) error {
		return c.JSON(seed.Users())
	})

	app.Post("/admin/verify", VerifyPasskey(d.AdminPasskey))
}
