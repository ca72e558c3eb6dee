package infra

// pdf.go — B2B invoice documents using go-pdf/fpdf.
// A4 layout: network header, invoice number and date, dealer block,
// single vehicle line (marca/modelo/VIN), bold total, payment terms.
// The output file is saved to storagePath/factura_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fermanzolido/autitos/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateFacturaPDF renders the PDF document for a B2B invoice.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateFacturaPDF(factura *model.Factura, vehiculo *model.Vehiculo, concesionario *model.Concesionario, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("factura_%s.pdf", factura.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 40

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, "Red de Concesionarios", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Factura por entrega de vehiculo", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Invoice info ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Factura N° %s", factura.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Fecha: "+factura.Fecha.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Estado: "+factura.Estado, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Dealer block ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Facturar a:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, concesionario.Nombre, "", 1, "L", false, 0, "")
	if concesionario.Direccion != "" {
		pdf.CellFormat(contentW, 5, concesionario.Direccion, "", 1, "L", false, 0, "")
	}
	if concesionario.Territorio != "" {
		pdf.CellFormat(contentW, 5, "Territorio: "+concesionario.Territorio, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// ── Vehicle line ──────────────────────────────────────────────────────────
	col1 := contentW * 0.55 // description
	col2 := contentW * 0.20 // VIN
	col3 := contentW * 0.25 // amount

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Descripcion", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "VIN", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "Importe", "B", 1, "R", false, 0, "")

	descripcion := vehiculo.Marca + " " + vehiculo.Modelo
	if vehiculo.Version != nil && *vehiculo.Version != "" {
		descripcion += " " + *vehiculo.Version
	}
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(col1, 7, descripcion, "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, vehiculo.VIN, "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "$"+factura.Precio.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.Line(20, pdf.GetY(), pageW-20, pdf.GetY())
	pdf.Ln(2)

	// ── Total ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1+col2, 8, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 8, "$"+factura.Precio.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "El pago de esta factura restituye el credito disponible de la cuenta.", "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
