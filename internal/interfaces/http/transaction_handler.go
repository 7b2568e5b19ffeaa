package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/prayastok/stok-api/internal/application/dto"
	"github.com/prayastok/stok-api/internal/application/importer"
	"github.com/prayastok/stok-api/internal/application/ledger"
	"github.com/prayastok/stok-api/internal/application/report"
	"github.com/prayastok/stok-api/internal/domain/entity"
)

// kindFromPath maps the plural URL segments to ledger kinds.
var kindFromPath = map[string]string{
	"incoming": entity.KindIncoming,
	"sales":    entity.KindSale,
	"borrows":  entity.KindBorrow,
	"returns":  entity.KindReturn,
}

// TransactionHandler handles the ledger endpoints: recording movements,
// resolving borrows and returns, listing partitions and the sales import.
type TransactionHandler struct {
	uc *ledger.UseCase
}

// NewTransactionHandler builds the transaction handler.
func NewTransactionHandler(uc *ledger.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// RecordIncoming godoc
// @Summary      Record incoming stock
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.RecordIncomingRequest  true  "item_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions/incoming [post]
func (h *TransactionHandler) RecordIncoming(c *fiber.Ctx) error {
	var in dto.RecordIncomingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	mov, err := h.uc.RecordIncoming(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// RecordSale godoc
// @Summary      Record a sale
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.RecordSaleRequest  true  "item_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      409   {object}  dto.ErrorResponse  "insufficient stock"
// @Router       /api/transactions/sales [post]
func (h *TransactionHandler) RecordSale(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	mov, err := h.uc.RecordSale(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// RecordBorrow godoc
// @Summary      Record items loaned out
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.RecordBorrowRequest  true  "item_id, quantity, borrower, purpose"
// @Success      201   {object}  dto.MovementResponse
// @Failure      409   {object}  dto.ErrorResponse  "insufficient stock"
// @Router       /api/transactions/borrows [post]
func (h *TransactionHandler) RecordBorrow(c *fiber.Ctx) error {
	var in dto.RecordBorrowRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	mov, err := h.uc.RecordBorrow(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// RecordReturn godoc
// @Summary      Record a customer return (pending review, stock untouched)
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.RecordReturnRequest  true  "item_id, quantity, source, store_name, notes"
// @Success      201   {object}  dto.MovementResponse
// @Router       /api/transactions/returns [post]
func (h *TransactionHandler) RecordReturn(c *fiber.Ctx) error {
	var in dto.RecordReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	mov, err := h.uc.RecordReturn(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// ResolveBorrow godoc
// @Summary      Settle a borrow as returned or sold
// @Tags         transactions
// @Accept       json
// @Security     Bearer
// @Param        id    path  string  true  "movement ID"
// @Param        body  body  dto.UpdateStatusRequest  true  "status: returned or sold"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "already settled"
// @Router       /api/transactions/borrows/{id} [patch]
func (h *TransactionHandler) ResolveBorrow(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.uc.ResolveBorrow(c.Context(), c.Params("id"), in.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResolveReturn godoc
// @Summary      Settle a pending return as approved or rejected
// @Tags         transactions
// @Accept       json
// @Security     Bearer
// @Param        id    path  string  true  "movement ID"
// @Param        body  body  dto.UpdateStatusRequest  true  "status: approved or rejected"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "already settled"
// @Router       /api/transactions/returns/{id} [patch]
func (h *TransactionHandler) ResolveReturn(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.uc.ResolveReturn(c.Context(), c.Params("id"), in.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      List one ledger partition, newest first
// @Tags         transactions
// @Produce      json
// @Security     Bearer
// @Param        kind    path   string  true   "incoming, sales, borrows or returns"
// @Param        preset  query  string  false  "today or month"
// @Param        start   query  string  false  "YYYY-MM-DD, inclusive"
// @Param        end     query  string  false  "YYYY-MM-DD, inclusive"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions/{kind} [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	kind, ok := kindFromPath[c.Params("kind")]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unknown transaction kind"})
	}
	from, to, err := parseRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid date range"})
	}
	movs, err := h.uc.ListMovements(c.Context(), kind, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponses(movs))
}

// ImportSales godoc
// @Summary      Bulk-record sales from a spreadsheet
// @Tags         transactions
// @Accept       mpfd
// @Produce      json
// @Security     Bearer
// @Param        file  formData  file  true  "xlsx with Kode Barang, Jumlah"
// @Success      200   {object}  dto.ImportSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transactions/sales/import [post]
func (h *TransactionHandler) ImportSales(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "multipart field 'file' required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "cannot open upload"})
	}
	defer f.Close()

	rows, err := importer.ParseSales(f)
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.uc.ImportSales(c.Context(), rows)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// SalesTemplate godoc
// @Summary      Download the sales import template
// @Tags         transactions
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     Bearer
// @Success      200  {file}  binary
// @Router       /api/transactions/sales/template [get]
func (h *TransactionHandler) SalesTemplate(c *fiber.Ctx) error {
	buf, err := importer.SalesTemplate()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="template_penjualan.xlsx"`)
	return c.Send(buf)
}

// Reconcile godoc
// @Summary      Rebuild an item's quantity from its ledger history
// @Tags         transactions
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "item ID"
// @Success      200  {object}  map[string]int64
// @Failure      409  {object}  dto.ErrorResponse  "ledger sums to a negative quantity"
// @Router       /api/items/{id}/reconcile [post]
func (h *TransactionHandler) Reconcile(c *fiber.Ctx) error {
	quantity, err := h.uc.Reconcile(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"quantity": quantity})
}

// parseRange resolves the preset or explicit start/end query params into an
// inclusive timestamp range. No params means no bounds.
func parseRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	switch c.Query("preset") {
	case "today":
		now := time.Now()
		from, to := report.StartOfDay(now), report.EndOfDay(now)
		return &from, &to, nil
	case "month":
		first, now := report.MonthRange(time.Now())
		from, to := report.StartOfDay(first), report.EndOfDay(now)
		return &from, &to, nil
	}

	var from, to *time.Time
	if s := c.Query("start"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return nil, nil, err
		}
		day := report.StartOfDay(t)
		from = &day
	}
	if s := c.Query("end"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return nil, nil, err
		}
		day := report.EndOfDay(t)
		to = &day
	}
	return from, to, nil
}
