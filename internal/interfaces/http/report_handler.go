package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/prayastok/stok-api/internal/application/dto"
	appreport "github.com/prayastok/stok-api/internal/application/report"
	"github.com/prayastok/stok-api/internal/domain/report"
)

// PDFGenerator renders report rows into a downloadable document.
type PDFGenerator interface {
	Generate(start, end time.Time, rows []report.Row) ([]byte, error)
}

// ReportHandler handles the restock report, as JSON and as PDF.
type ReportHandler struct {
	uc  *appreport.UseCase
	pdf PDFGenerator
}

// NewReportHandler builds the report handler.
func NewReportHandler(uc *appreport.UseCase, pdf PDFGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf}
}

// Restock godoc
// @Summary      Restock report for a date range (defaults to the current month)
// @Tags         reports
// @Produce      json
// @Security     Bearer
// @Param        start    query  string  false  "YYYY-MM-DD, inclusive"
// @Param        end      query  string  false  "YYYY-MM-DD, inclusive"
// @Param        sort_by  query  string  false  "code, name, category, quantity, total_sales or stock_status"
// @Param        desc     query  bool    false  "reverse the sort order"
// @Param        search   query  string  false  "free-text match on code or name"
// @Param        status   query  string  false  "stock_sufficient, buy_soon or prepare_to_buy"
// @Success      200  {array}   dto.ReportRowResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/restock [get]
func (h *ReportHandler) Restock(c *fiber.Ctx) error {
	start, end, opts, err := reportParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid report parameters"})
	}
	rows, err := h.uc.Generate(c.Context(), start, end, opts)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToReportRows(rows))
}

// RestockPDF godoc
// @Summary      Restock report as a printable PDF
// @Tags         reports
// @Produce      application/pdf
// @Security     Bearer
// @Param        start   query  string  false  "YYYY-MM-DD, inclusive"
// @Param        end     query  string  false  "YYYY-MM-DD, inclusive"
// @Param        search  query  string  false  "free-text match on code or name"
// @Param        status  query  string  false  "stock_sufficient, buy_soon or prepare_to_buy"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/restock/pdf [get]
func (h *ReportHandler) RestockPDF(c *fiber.Ctx) error {
	start, end, opts, err := reportParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid report parameters"})
	}
	rows, err := h.uc.Generate(c.Context(), start, end, opts)
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.pdf.Generate(start, end, rows)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="laporan_stock.pdf"`)
	return c.Send(doc)
}

// reportParams reads the shared report query params. Missing dates default to
// the current month preset.
func reportParams(c *fiber.Ctx) (time.Time, time.Time, appreport.Options, error) {
	start, end := appreport.MonthRange(time.Now())
	if s := c.Query("start"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return start, end, appreport.Options{}, err
		}
		start = t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return start, end, appreport.Options{}, err
		}
		end = t
	}
	opts := appreport.Options{
		SortBy: c.Query("sort_by"),
		Desc:   c.QueryBool("desc"),
		Search: c.Query("search"),
		Status: report.StockStatus(c.Query("status")),
	}
	return start, end, opts, nil
}
