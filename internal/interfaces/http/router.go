package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/rsankarapandian/stores-backoffice/internal/application/auth"
	"github.com/rsankarapandian/stores-backoffice/internal/application/usecase"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	MasterUC  *usecase.MasterUseCase
	ItemUC    *usecase.ItemUseCase
	LedgerUC  *usecase.LedgerUseCase
	GroupUC   *usecase.GroupUseCase
	ReportUC  *usecase.ReportUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// NewApp builds the fiber app with recover, /health and the API routes.
func NewApp(name string, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})
	Router(app, deps)
	return app
}

// Router registers the API routes.
func Router(app fiber.Router, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public login)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Everything below needs a Bearer token
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Masters (brand, category, product, model, size, unit, salesman, scrap)
	masterHandler := NewMasterHandler(deps.MasterUC)
	masters := protected.Group("/masters/:kind")
	masters.Get("/", masterHandler.List)
	masters.Get("/next-code", masterHandler.NextCode)
	masters.Get("/:code", masterHandler.Get)
	masters.Post("/", masterHandler.Create)
	masters.Put("/:code", masterHandler.Update)
	masters.Delete("/:code", masterHandler.Delete)

	// Items
	itemHandler := NewItemHandler(deps.ItemUC)
	items := protected.Group("/items")
	items.Get("/", itemHandler.List)
	items.Get("/next-code", itemHandler.NextCode)
	items.Get("/gst-rates", itemHandler.GSTRates)
	items.Get("/prefix", itemHandler.Prefix)
	items.Get("/:code", itemHandler.Get)
	items.Post("/", itemHandler.Create)
	items.Put("/:code", itemHandler.Update)
	items.Delete("/:code", itemHandler.Delete)

	// Ledgers
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	ledgers := protected.Group("/ledgers")
	ledgers.Get("/", ledgerHandler.List)
	ledgers.Get("/next-code", ledgerHandler.NextCode)
	ledgers.Get("/:code", ledgerHandler.Get)
	ledgers.Post("/", ledgerHandler.Create)
	ledgers.Put("/:code", ledgerHandler.Update)
	ledgers.Delete("/:code", ledgerHandler.Delete)

	// Group tree (mutations admin only)
	groupHandler := NewGroupHandler(deps.GroupUC)
	groups := protected.Group("/groups")
	groups.Get("/tree", groupHandler.Tree)
	groups.Post("/", RequireRole(entity.RoleAdmin), groupHandler.Create)
	groups.Delete("/:code", RequireRole(entity.RoleAdmin), groupHandler.Delete)

	// Report registers
	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports/:register")
	reports.Get("/", reportHandler.Register)
	reports.Get("/pdf", reportHandler.PDF)
}
