package infra

// pdf.go — cierre de caja summary generated with go-pdf/fpdf: per-method net
// totals, the day's expenses, and the resulting balance. The output file is
// saved to storagePath/cierre_{fecha}.pdf and later attached to the report
// email.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Nikise23/optica-mia/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerarCierrePDF writes the daily close summary PDF and returns its path.
// storagePath is created if needed.
func GenerarCierrePDF(cierre *model.CierreCaja, gastos decimal.Decimal, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fecha := cierre.Fecha.Format("2006-01-02")
	filePath := filepath.Join(storagePath, "cierre_"+fecha+".pdf")

	// A7 ≈ 74mm × 105mm — matches the thermal printer paper used at the shop
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Optica Mia", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Cierre de Caja", "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 4, fecha, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Per-method totals ────────────────────────────────────────────────────
	linea := func(etiqueta string, monto decimal.Decimal) {
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(contentW*0.55, 5, etiqueta, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.45, 5, "$ "+monto.StringFixed(2), "", 1, "R", false, 0, "")
	}
	linea("Efectivo", cierre.TotalEfectivo)
	linea("Tarjeta", cierre.TotalTarjeta)
	linea("Transferencia", cierre.TotalTransferencia)
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.55, 6, "Total ingresos", "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.45, 6, "$ "+cierre.TotalGeneral.StringFixed(2), "T", 1, "R", false, 0, "")

	linea("Gastos del día", gastos.Neg())

	balance := cierre.TotalGeneral.Sub(gastos)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW*0.55, 7, "Balance", "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.45, 7, "$ "+balance.StringFixed(2), "T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
