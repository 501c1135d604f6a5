package payroll

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// renderPayslipPDF produces a single-page A4 payslip from a stored
// record. Amounts are rendered from centavos, grouped per the en-PH
// locale.
func renderPayslipPDF(slip PayslipRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+slip.ID.String(), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "PAYSLIP", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Employee: "+slip.EmployeeName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6,
		"Cutoff: "+slip.CutoffStart.Format("Jan 2, 2006")+" - "+slip.CutoffEnd.Format("Jan 2, 2006"),
		"", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Payslip No: "+slip.ID.String(), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, "Earnings", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	amountRow(pdf, "Basic Pay", slip.BasicPay)
	amountRow(pdf, "Allowances", slip.Allowances)
	amountRow(pdf, "Overtime Pay", slip.OvertimePay)
	amountRow(pdf, "Holiday Pay", slip.HolidayPay)
	pdf.SetFont("Arial", "B", 10)
	amountRow(pdf, "Gross Pay", slip.GrossPay)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, "Deductions", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	amountRow(pdf, "SSS", slip.SSSContribution)
	amountRow(pdf, "PhilHealth", slip.PhilHealthContribution)
	amountRow(pdf, "Pag-IBIG", slip.PagibigContribution)
	amountRow(pdf, "Withholding Tax", slip.WithholdingTax)
	amountRow(pdf, "Other Deductions", slip.OtherDeductions)
	pdf.SetFont("Arial", "B", 10)
	amountRow(pdf, "Total Deductions", slip.TotalDeductions)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	amountRow(pdf, "NET PAY", slip.NetPay)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func amountRow(pdf *gofpdf.Fpdf, label string, centavos int64) {
	pdf.CellFormat(120, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, formatPeso(centavos), "", 1, "R", false, 0, "")
}

var pesoPrinter = message.NewPrinter(language.English)

func formatPeso(centavos int64) string {
	sign := ""
	if centavos < 0 {
		sign = "-"
		centavos = -centavos
	}
	return pesoPrinter.Sprintf("%sPHP %d.%02d", sign, centavos/100, centavos%100)
}
