// Package importer reads the two supported spreadsheet templates: item import
// (Kode Barang, Nama Barang, Kategori) and sales import (Kode Barang, Jumlah).
// Single sheet, header row required, first sheet only. Parsing is purely
// structural; business validation happens in the use cases.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/prayastok/stok-api/internal/application/dto"
	"github.com/prayastok/stok-api/internal/domain"
)

// Template column headers, matching the original import templates.
const (
	HeaderCode     = "Kode Barang"
	HeaderName     = "Nama Barang"
	HeaderCategory = "Kategori"
	HeaderQuantity = "Jumlah"
)

// ParseItems reads an item import workbook into rows. Returns
// domain.ErrEmptyFile for unreadable, empty or header-less workbooks.
func ParseItems(r io.Reader) ([]dto.ItemImportRow, error) {
	rows, header, err := readFirstSheet(r)
	if err != nil {
		return nil, err
	}
	codeCol, okCode := header[normalize(HeaderCode)]
	nameCol, okName := header[normalize(HeaderName)]
	catCol, okCat := header[normalize(HeaderCategory)]
	if !okCode || !okName || !okCat {
		return nil, domain.ErrEmptyFile
	}

	var out []dto.ItemImportRow
	for i, row := range rows {
		out = append(out, dto.ItemImportRow{
			Row:      i + 2, // 1-based, after the header row
			Code:     cell(row, codeCol),
			Name:     cell(row, nameCol),
			Category: cell(row, catCol),
		})
	}
	return out, nil
}

// ParseSales reads a sales import workbook into rows. A non-numeric quantity
// cell parses to zero and is rejected later as non-positive.
func ParseSales(r io.Reader) ([]dto.SaleImportRow, error) {
	rows, header, err := readFirstSheet(r)
	if err != nil {
		return nil, err
	}
	codeCol, okCode := header[normalize(HeaderCode)]
	qtyCol, okQty := header[normalize(HeaderQuantity)]
	if !okCode || !okQty {
		return nil, domain.ErrEmptyFile
	}

	var out []dto.SaleImportRow
	for i, row := range rows {
		qty, _ := strconv.ParseInt(strings.TrimSpace(cell(row, qtyCol)), 10, 64)
		out = append(out, dto.SaleImportRow{
			Row:      i + 2,
			Code:     cell(row, codeCol),
			Quantity: qty,
		})
	}
	return out, nil
}

// ItemTemplate builds the downloadable item import template with one example row.
func ItemTemplate() ([]byte, error) {
	return template(
		[]string{HeaderCode, HeaderName, HeaderCategory},
		[]any{"BRG001", "Contoh Barang", "Umum"},
	)
}

// SalesTemplate builds the downloadable sales import template with one example row.
func SalesTemplate() ([]byte, error) {
	return template(
		[]string{HeaderCode, HeaderQuantity},
		[]any{"BRG001", 1},
	)
}

func template(headers []string, example []any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Template"
	f.SetSheetName(f.GetSheetName(0), sheet)
	headerRow := make([]any, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("template header: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A2", &example); err != nil {
		return nil, fmt.Errorf("template example: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}

// readFirstSheet opens the workbook, takes the first sheet only and splits the
// header row from the data rows. Header cells are matched case-insensitively.
func readFirstSheet(r io.Reader) ([][]string, map[string]int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, domain.ErrEmptyFile
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, domain.ErrEmptyFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil || len(rows) == 0 {
		return nil, nil, domain.ErrEmptyFile
	}

	header := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		header[normalize(h)] = i
	}
	return rows[1:], header, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
