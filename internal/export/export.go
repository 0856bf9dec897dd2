// Package export выгружает сводку регистраций в xlsx, csv и pdf.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/magabrotheeeer/referral-portal/internal/lib/period"
	"github.com/magabrotheeeer/referral-portal/internal/models"
)

// Format формат выгрузки, совпадает с расширением файла
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

const (
	SheetName = "Summary"
	PDFTitle  = "Staff Registration Summary"
)

var header = []string{"name", "count"}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Filename имя файла вида Admin-Summary-2024-01-31.xlsx
func Filename(prefix string, day time.Time, f Format) string {
	return fmt.Sprintf("%s-Summary-%s.%s", prefix, period.Day(day), f)
}

// Exporter пишет сводку в выбранном формате.
type Exporter struct {
	// FontPath путь к UTF-8 TTF шрифту для pdf. Без него имена вне
	// latin-1 в pdf не отобразятся.
	FontPath string
}

func New(fontPath string) *Exporter {
	return &Exporter{FontPath: fontPath}
}

func (e *Exporter) Write(w io.Writer, f Format, rows []models.StaffCount) error {
	const op = "export.Write"

	var err error
	switch f {
	case FormatXLSX:
		err = writeXLSX(w, rows)
	case FormatCSV:
		err = writeCSV(w, rows)
	case FormatPDF:
		err = writePDF(w, rows, e.FontPath)
	default:
		err = fmt.Errorf("unknown format %q", f)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func writeXLSX(w io.Writer, rows []models.StaffCount) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &[]any{header[0], header[1]}); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &[]any{row.Name, row.Count}); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func writeCSV(w io.Writer, rows []models.StaffCount) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.Name, strconv.Itoa(row.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, rows []models.StaffCount, fontPath string) error {
	pdf := fpdf.New("P", "mm", "A4", "")

	family := "Helvetica"
	text := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath != "" {
		family = "body"
		pdf.AddUTF8Font(family, "", fontPath)
		text = func(s string) string { return s }
	}

	pdf.AddPage()
	pdf.SetFont(family, "", 16)
	pdf.CellFormat(0, 12, PDFTitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(family, "", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(130, 8, header[0], "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, header[1], "1", 1, "R", true, 0, "")
	for _, row := range rows {
		pdf.CellFormat(130, 8, text(row.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, strconv.Itoa(row.Count), "1", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}
