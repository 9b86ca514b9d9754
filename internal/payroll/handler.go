package payroll

import (
	"time"

	"pizzaria-backend/internal/database"
	"pizzaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreatePeriodRequest struct {
	StartDate  string `json:"start_date"` // "2025-06-01"
	EndDate    string `json:"end_date"`
	PeriodType string `json:"period_type"` // WEEKLY | BIWEEKLY | MONTHLY | CUSTOM
}

type PaymentResponse struct {
	ID           uint    `json:"id"`
	EmployeeID   uint    `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	DaysWorked   int     `json:"days_worked"`
	LunchShifts  int     `json:"lunch_shifts"`
	DinnerShifts int     `json:"dinner_shifts"`
	FixedSalary  float64 `json:"fixed_salary"`
	LunchTotal   float64 `json:"lunch_total"`
	DinnerTotal  float64 `json:"dinner_total"`
	GrossAmount  float64 `json:"gross_amount"`
	Advances     float64 `json:"advances"`
	Deductions   float64 `json:"deductions"`
	NetAmount    float64 `json:"net_amount"`
}

type PeriodResponse struct {
	ID          uint              `json:"id"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	PeriodType  string            `json:"period_type"`
	TotalAmount float64           `json:"total_amount"`
	CreatedAt   string            `json:"created_at"`
	Payments    []PaymentResponse `json:"payments"`
}

func toPeriodResponse(p *models.PayrollPeriod) PeriodResponse {
	payments := make([]PaymentResponse, 0, len(p.Payments))
	for _, pay := range p.Payments {
		payments = append(payments, PaymentResponse{
			ID:           pay.ID,
			EmployeeID:   pay.EmployeeID,
			EmployeeName: pay.EmployeeName,
			DaysWorked:   pay.DaysWorked,
			LunchShifts:  pay.LunchShifts,
			DinnerShifts: pay.DinnerShifts,
			FixedSalary:  pay.FixedSalary,
			LunchTotal:   pay.LunchTotal,
			DinnerTotal:  pay.DinnerTotal,
			GrossAmount:  pay.GrossAmount,
			Advances:     pay.Advances,
			Deductions:   pay.Deductions,
			NetAmount:    pay.NetAmount,
		})
	}
	return PeriodResponse{
		ID:          p.ID,
		StartDate:   p.StartDate.Format("2006-01-02"),
		EndDate:     p.EndDate.Format("2006-01-02"),
		PeriodType:  string(p.PeriodType),
		TotalAmount: p.TotalAmount,
		CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04:05"),
		Payments:    payments,
	}
}

// -------------------------
// Fechamento de período
// -------------------------

// POST /api/payroll-periods
// Cria o snapshot do período: agrega o ponto e os adiantamentos pagos no
// intervalo e grava as linhas de pagamento em uma transação. Os
// adiantamentos descontados viram DISCOUNTED na mesma transação para nunca
// serem abatidos duas vezes.
func CreatePeriodHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePeriodRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.StartDate == "" || body.EndDate == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Datas de início e fim são obrigatórias")
		}

		start, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_date deve estar no formato 'YYYY-MM-DD'")
		}
		end, err := time.Parse("2006-01-02", body.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "end_date deve estar no formato 'YYYY-MM-DD'")
		}
		if end.Before(start) {
			return fiber.NewError(fiber.StatusBadRequest, "end_date não pode ser anterior a start_date")
		}

		// Intervalo fechado: início do primeiro dia, fim do último
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)

		periodType := models.PeriodType(body.PeriodType)
		switch periodType {
		case models.PeriodWeekly, models.PeriodBiweekly, models.PeriodMonthly, models.PeriodCustom:
		default:
			periodType = models.PeriodCustom
		}

		var entries []models.TimeEntry
		if err := database.DB.
			Where("date >= ? AND date <= ?", start, end).
			Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível buscar os registros de ponto")
		}

		var employees []models.Employee
		if err := database.DB.Where("active = true").Find(&employees).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível buscar os funcionários")
		}

		// Só adiantamentos PAGOS com data de pagamento dentro do período
		var advances []models.Advance
		if err := database.DB.
			Where("status = ? AND payment_date >= ? AND payment_date <= ?", models.AdvancePaid, start, end).
			Find(&advances).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível buscar os adiantamentos")
		}

		drafts, totalAmount := BuildPayments(employees, entries, advances)

		period := models.PayrollPeriod{
			StartDate:   start,
			EndDate:     end,
			PeriodType:  periodType,
			TotalAmount: totalAmount,
		}
		for _, d := range drafts {
			period.Payments = append(period.Payments, models.PayrollPayment{
				EmployeeID:   d.EmployeeID,
				EmployeeName: d.EmployeeName,
				DaysWorked:   d.DaysWorked,
				LunchShifts:  d.LunchShifts,
				DinnerShifts: d.DinnerShifts,
				FixedSalary:  d.FixedSalary,
				LunchTotal:   d.LunchTotal,
				DinnerTotal:  d.DinnerTotal,
				GrossAmount:  d.GrossAmount,
				Advances:     d.Advances,
				Deductions:   d.Deductions,
				NetAmount:    d.NetAmount,
			})
		}

		advanceIDs := make([]uint, 0, len(advances))
		for _, adv := range advances {
			advanceIDs = append(advanceIDs, adv.ID)
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&period).Error; err != nil {
				return err
			}
			if len(advanceIDs) > 0 {
				if err := tx.Model(&models.Advance{}).
					Where("id IN ?", advanceIDs).
					Update("status", models.AdvanceDiscounted).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o período")
		}

		return c.Status(fiber.StatusCreated).JSON(toPeriodResponse(&period))
	}
}

// GET /api/payroll-periods
func ListPeriodsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var periods []models.PayrollPeriod
		if err := database.DB.Preload("Payments").Order("start_date desc").Find(&periods).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os períodos")
		}

		resp := make([]PeriodResponse, 0, len(periods))
		for i := range periods {
			resp = append(resp, toPeriodResponse(&periods[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/payroll-periods/:id
func GetPeriodHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var period models.PayrollPeriod
		if err := database.DB.Preload("Payments").First(&period, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Período não encontrado")
		}

		return c.JSON(toPeriodResponse(&period))
	}
}

// DELETE /api/payroll-periods/:id (somente admin, via rota)
func DeletePeriodHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var period models.PayrollPeriod
		if err := database.DB.First(&period, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Período não encontrado")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("period_id = ?", period.ID).Delete(&models.PayrollPayment{}).Error; err != nil {
				return err
			}
			return tx.Delete(&period).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir o período")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
