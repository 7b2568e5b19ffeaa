package dto

// ItemImportRow is one parsed row of the item import template
// (Kode Barang, Nama Barang, Kategori). Row is the 1-based sheet row.
type ItemImportRow struct {
	Row      int
	Code     string
	Name     string
	Category string
}

// SaleImportRow is one parsed row of the sales import template
// (Kode Barang, Jumlah).
type SaleImportRow struct {
	Row      int
	Code     string
	Quantity int64
}
