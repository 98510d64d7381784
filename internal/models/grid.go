package models

// Page is one document page as decoded by the table source, in document
// order. The scraper never decodes PDFs itself; it consumes these grids.
type Page struct {
	Number int     `json:"page"`
	Tables []Table `json:"tables"`
}

// Table is a raw cell grid from one detected table region. Cells the
// source could not read arrive as empty strings (JSON null decodes to "").
type Table struct {
	Rows [][]string `json:"rows"`
}

// CellCount returns the total number of cells across all rows.
func (t Table) CellCount() int {
	n := 0
	for _, row := range t.Rows {
		n += len(row)
	}
	return n
}
