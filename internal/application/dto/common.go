package dto

// ErrorResponse is the uniform error body for the API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RowError describes one skipped spreadsheet row.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportSummary reports the outcome of a bulk import batch: valid rows commit
// together, invalid rows are skipped and counted.
type ImportSummary struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

// Skip records one skipped row with its reason.
func (s *ImportSummary) Skip(row int, reason string) {
	s.Skipped++
	s.Errors = append(s.Errors, RowError{Row: row, Reason: reason})
}
