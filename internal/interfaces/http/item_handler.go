package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prayastok/stok-api/internal/application/dto"
	"github.com/prayastok/stok-api/internal/application/importer"
	"github.com/prayastok/stok-api/internal/application/item"
	"github.com/prayastok/stok-api/internal/domain/entity"
)

// ItemHandler handles the item catalog endpoints.
type ItemHandler struct {
	uc *item.UseCase
}

// NewItemHandler builds the item handler.
func NewItemHandler(uc *item.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Register an item (quantity starts at zero)
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateItemRequest  true  "code, name, category"
// @Success      201   {object}  dto.ItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	created, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToItemResponse(created))
}

// List godoc
// @Summary      List items
// @Tags         items
// @Produce      json
// @Security     Bearer
// @Param        order  query  string  false  "created (default) or code"
// @Success      200    {array}  dto.ItemResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	order := entity.OrderByCreatedDesc
	if c.Query("order") == "code" {
		order = entity.OrderByCodeAsc
	}
	items, err := h.uc.List(c.Context(), order)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemResponses(items))
}

// Get godoc
// @Summary      Fetch one item
// @Tags         items
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "item ID"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	it, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemResponse(it))
}

// Rename godoc
// @Summary      Edit an item's code and name
// @Tags         items
// @Accept       json
// @Security     Bearer
// @Param        id    path  string  true  "item ID"
// @Param        body  body  dto.RenameItemRequest  true  "code, name"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Rename(c *fiber.Ctx) error {
	var in dto.RenameItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.uc.Rename(c.Context(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Delete an item (ledger history is kept)
// @Tags         items
// @Security     Bearer
// @Param        id  path  string  true  "item ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Bulk-register items from a spreadsheet
// @Tags         items
// @Accept       mpfd
// @Produce      json
// @Security     Bearer
// @Param        file  formData  file  true  "xlsx with Kode Barang, Nama Barang, Kategori"
// @Success      200   {object}  dto.ImportSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/import [post]
func (h *ItemHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "multipart field 'file' required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "cannot open upload"})
	}
	defer f.Close()

	rows, err := importer.ParseItems(f)
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.uc.BulkCreate(c.Context(), rows)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// Template godoc
// @Summary      Download the item import template
// @Tags         items
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     Bearer
// @Success      200  {file}  binary
// @Router       /api/items/template [get]
func (h *ItemHandler) Template(c *fiber.Ctx) error {
	buf, err := importer.ItemTemplate()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="template_barang.xlsx"`)
	return c.Send(buf)
}
