package payroll

import (
	"bytes"
	"fmt"

	"pizzaria-backend/internal/database"
	"pizzaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// GET /api/payroll-periods/:id/export
// Planilha do fechamento: uma linha por funcionário mais a linha de total.
func ExportPeriodHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var period models.PayrollPeriod
		if err := database.DB.Preload("Payments").First(&period, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Período não encontrado")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)

		headers := []string{
			"Funcionário", "Dias", "Almoços", "Jantares",
			"Salário fixo", "Total almoço", "Total jantar",
			"Bruto", "Adiantamentos", "Descontos", "Líquido",
		}
		for i, h := range headers {
			cell, err := excelize.CoordinatesToCellName(i+1, 1)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar a planilha")
			}
			f.SetCellValue(sheet, cell, h)
		}

		for row, pay := range period.Payments {
			values := []interface{}{
				pay.EmployeeName, pay.DaysWorked, pay.LunchShifts, pay.DinnerShifts,
				pay.FixedSalary, pay.LunchTotal, pay.DinnerTotal,
				pay.GrossAmount, pay.Advances, pay.Deductions, pay.NetAmount,
			}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row+2)
				if err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar a planilha")
				}
				f.SetCellValue(sheet, cell, v)
			}
		}

		totalRow := len(period.Payments) + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "TOTAL")
		f.SetCellValue(sheet, fmt.Sprintf("K%d", totalRow), period.TotalAmount)

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar a planilha")
		}

		filename := fmt.Sprintf("folha_%s_%s.xlsx",
			period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}

// GET /api/payroll-periods/:id/payments/:paymentId/receipt
// Recibo de pagamento em PDF para assinatura do funcionário.
func PaymentReceiptHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		periodID := c.Params("id")
		paymentID := c.Params("paymentId")

		var period models.PayrollPeriod
		if err := database.DB.First(&period, "id = ?", periodID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Período não encontrado")
		}

		var payment models.PayrollPayment
		if err := database.DB.
			First(&payment, "id = ? AND period_id = ?", paymentID, period.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pagamento não encontrado")
		}

		pdf := gofpdf.New("P", "mm", "A4", "")
		tr := pdf.UnicodeTranslatorFromDescriptor("") // acentos em cp1252
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 16)
		pdf.Cell(0, 10, tr("Recibo de Pagamento"))
		pdf.Ln(12)

		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, tr(fmt.Sprintf("Funcionário: %s", payment.EmployeeName)))
		pdf.Ln(7)
		pdf.Cell(0, 8, tr(fmt.Sprintf("Período: %s a %s",
			period.StartDate.Format("02/01/2006"), period.EndDate.Format("02/01/2006"))))
		pdf.Ln(7)
		pdf.Cell(0, 8, tr(fmt.Sprintf("Dias trabalhados: %d (almoços: %d, jantares: %d)",
			payment.DaysWorked, payment.LunchShifts, payment.DinnerShifts)))
		pdf.Ln(10)

		if payment.FixedSalary > 0 {
			pdf.Cell(0, 8, tr(fmt.Sprintf("Salário fixo: R$ %.2f", payment.FixedSalary)))
			pdf.Ln(7)
		}
		pdf.Cell(0, 8, tr(fmt.Sprintf("Turnos de almoço: R$ %.2f", payment.LunchTotal)))
		pdf.Ln(7)
		pdf.Cell(0, 8, tr(fmt.Sprintf("Turnos de jantar: R$ %.2f", payment.DinnerTotal)))
		pdf.Ln(7)
		pdf.Cell(0, 8, tr(fmt.Sprintf("Bruto: R$ %.2f", payment.GrossAmount)))
		pdf.Ln(7)
		pdf.Cell(0, 8, tr(fmt.Sprintf("Adiantamentos: R$ %.2f", payment.Advances)))
		pdf.Ln(7)
		pdf.Cell(0, 8, tr(fmt.Sprintf("Descontos: R$ %.2f", payment.Deductions)))
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 9, tr(fmt.Sprintf("Líquido a receber: R$ %.2f", payment.NetAmount)))
		pdf.Ln(25)

		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 8, "_________________________________")
		pdf.Ln(6)
		pdf.Cell(0, 8, tr("Assinatura do funcionário"))

		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o recibo")
		}

		filename := fmt.Sprintf("recibo_%d_%d.pdf", period.ID, payment.ID)
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
