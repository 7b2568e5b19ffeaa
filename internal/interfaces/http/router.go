package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prayastok/stok-api/internal/application/auth"
	"github.com/prayastok/stok-api/internal/application/item"
	"github.com/prayastok/stok-api/internal/application/ledger"
	"github.com/prayastok/stok-api/internal/application/report"
	"github.com/prayastok/stok-api/internal/infrastructure/feed"
)

// RouterDeps are the dependencies the router wires into handlers.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	ItemUC    *item.UseCase
	LedgerUC  *ledger.UseCase
	ReportUC  *report.UseCase
	PDF       PDFGenerator
	Hub       *feed.Hub
	JWTSecret string
}

// Router registers the API routes. Everything except login requires a valid
// session token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	protected.Post("/auth/logout", authHandler.Logout)

	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	txHandler := NewTransactionHandler(deps.LedgerUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/template", itemHandler.Template)
	items.Post("/import", itemHandler.Import)
	items.Get("/:id", itemHandler.Get)
	items.Put("/:id", itemHandler.Rename)
	items.Delete("/:id", itemHandler.Delete)
	items.Post("/:id/reconcile", txHandler.Reconcile)

	tx := protected.Group("/transactions")
	tx.Post("/incoming", txHandler.RecordIncoming)
	tx.Post("/sales", txHandler.RecordSale)
	tx.Post("/borrows", txHandler.RecordBorrow)
	tx.Post("/returns", txHandler.RecordReturn)
	tx.Patch("/borrows/:id", txHandler.ResolveBorrow)
	tx.Patch("/returns/:id", txHandler.ResolveReturn)
	tx.Post("/sales/import", txHandler.ImportSales)
	tx.Get("/sales/template", txHandler.SalesTemplate)
	tx.Get("/:kind", txHandler.List)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.PDF)
	reports.Get("/restock", reportHandler.Restock)
	reports.Get("/restock/pdf", reportHandler.RestockPDF)

	if deps.Hub != nil {
		feedHandler := NewFeedHandler(deps.Hub, deps.ItemUC, deps.LedgerUC)
		protected.Get("/feed/:partition", feedHandler.Stream)
	}
}
