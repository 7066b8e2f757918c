package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Table is a ready-to-export report: one header row plus data rows
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// CSV renders the table as UTF-8 CSV
func (t *Table) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// XLSX renders the table as a single-sheet workbook
func (t *Table) XLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	f.SetSheetName("Sheet1", sheet)

	for col, name := range t.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
	}
	for i, row := range t.Rows {
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PDF renders the table as a landscape A4 grid
func (t *Table) PDF() ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, t.Title)
	pdf.Ln(12)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right
	colWidth := usable / float64(len(t.Header))

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, name := range t.Header {
		pdf.CellFormat(colWidth, 8, name, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range t.Rows {
		for _, val := range row {
			pdf.CellFormat(colWidth, 7, val, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

// DirectoryTable shapes directory rows for export
func DirectoryTable(rows []DirectoryRow) *Table {
	t := &Table{
		Title:  "PACS Directory Report",
		Header: []string{"Slug", "Name", "District", "State", "Members", "Loan Schemes", "Deposit Schemes", "Services", "PDS Shops", "Staff"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Slug, r.Name, r.District, r.State,
			formatIntPtr(r.MemberCount),
			fmt.Sprintf("%d", r.LoanSchemes),
			fmt.Sprintf("%d", r.DepositSchemes),
			fmt.Sprintf("%d", r.Services),
			fmt.Sprintf("%d", r.PDSShops),
			fmt.Sprintf("%d", r.Staff),
		})
	}
	return t
}

// SchemeTable shapes a society's scheme rows for export
func SchemeTable(societyName string, rows []SchemeRow) *Table {
	t := &Table{
		Title:  societyName + " Scheme Report",
		Header: []string{"Type", "Name", "Interest Rate", "Min Amount", "Max Amount", "Active"},
	}
	for _, r := range rows {
		active := "No"
		if r.IsActive {
			active = "Yes"
		}
		t.Rows = append(t.Rows, []string{
			r.Kind, r.Name,
			fmt.Sprintf("%.2f", r.InterestRate),
			formatFloatPtr(r.MinAmount),
			formatFloatPtr(r.MaxAmount),
			active,
		})
	}
	return t
}
