package payroll

import (
	"errors"
	"time"

	"pizzaria-backend/internal/database"
	"pizzaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Folha mensal simples (salário base − adiantamentos do mês), usada para os
// mensalistas fora do fechamento por período. Uma entrada por funcionário
// por mês "YYYY-MM".

type GenerateEntriesRequest struct {
	Month string `json:"month"` // "2025-06"
}

type UpdateEntryRequest struct {
	Bonuses     *float64 `json:"bonuses"`
	Deductions  *float64 `json:"deductions"`
	Paid        *bool    `json:"paid"`
	PaymentDate *string  `json:"payment_date"`
	Notes       *string  `json:"notes"`
}

type EntryResponse struct {
	ID           uint    `json:"id"`
	EmployeeID   uint    `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	EmployeeRole string  `json:"employee_role"`
	Month        string  `json:"month"`
	BaseSalary   float64 `json:"base_salary"`
	Advances     float64 `json:"advances"`
	Bonuses      float64 `json:"bonuses"`
	Deductions   float64 `json:"deductions"`
	NetSalary    float64 `json:"net_salary"`
	Paid         bool    `json:"paid"`
	PaymentDate  string  `json:"payment_date"`
	Notes        string  `json:"notes"`
}

func toEntryResponse(e *models.PayrollEntry) EntryResponse {
	paymentDate := ""
	if e.PaymentDate != nil {
		paymentDate = e.PaymentDate.Format("2006-01-02")
	}
	return EntryResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.Employee.Name,
		EmployeeRole: e.Employee.Role,
		Month:        e.Month,
		BaseSalary:   e.BaseSalary,
		Advances:     e.Advances,
		Bonuses:      e.Bonuses,
		Deductions:   e.Deductions,
		NetSalary:    e.NetSalary,
		Paid:         e.Paid,
		PaymentDate:  paymentDate,
		Notes:        e.Notes,
	}
}

func monthRange(month string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

// GET /api/payroll?month=2025-06
func ListEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.PayrollEntry{}).Preload("Employee")

		if month := c.Query("month"); month != "" {
			if _, _, err := monthRange(month); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "month deve estar no formato 'YYYY-MM'")
			}
			dbq = dbq.Where("month = ?", month)
		}

		var entries []models.PayrollEntry
		if err := dbq.Order("created_at desc").Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível buscar a folha de pagamento")
		}

		resp := make([]EntryResponse, 0, len(entries))
		for i := range entries {
			resp = append(resp, toEntryResponse(&entries[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/payroll
// Gera (ou atualiza) a entrada do mês para cada funcionário ativo:
// salário base menos adiantamentos pagos dentro do mês.
func GenerateEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GenerateEntriesRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Month == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Mês é obrigatório")
		}
		monthStart, monthEnd, err := monthRange(body.Month)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month deve estar no formato 'YYYY-MM'")
		}

		var employees []models.Employee
		if err := database.DB.Where("active = true").Find(&employees).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível buscar os funcionários")
		}

		resp := make([]EntryResponse, 0, len(employees))

		for i := range employees {
			emp := employees[i]

			var advances []models.Advance
			if err := database.DB.
				Where("employee_id = ? AND status = ? AND payment_date >= ? AND payment_date < ?",
					emp.ID, models.AdvancePaid, monthStart, monthEnd).
				Find(&advances).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível buscar os adiantamentos")
			}

			totalAdvances := decimal.Zero
			for _, adv := range advances {
				totalAdvances = totalAdvances.Add(decimal.NewFromFloat(adv.Amount))
			}
			advancesAmount := round2(totalAdvances)
			netSalary := round2(decimal.NewFromFloat(emp.Salary).Sub(totalAdvances))

			var entry models.PayrollEntry
			err := database.DB.
				Where("employee_id = ? AND month = ?", emp.ID, body.Month).
				First(&entry).Error

			switch {
			case err == nil:
				entry.BaseSalary = emp.Salary
				entry.Advances = advancesAmount
				entry.NetSalary = netSalary
				if err := database.DB.Save(&entry).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a folha")
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				entry = models.PayrollEntry{
					EmployeeID: emp.ID,
					Month:      body.Month,
					BaseSalary: emp.Salary,
					Advances:   advancesAmount,
					NetSalary:  netSalary,
				}
				if err := database.DB.Create(&entry).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar a folha")
				}
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível consultar a folha")
			}

			entry.Employee = emp
			resp = append(resp, toEntryResponse(&entry))
		}

		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// PUT /api/payroll/:id
// Ajusta bônus/descontos e marca pagamento; o líquido é recalculado.
func UpdateEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var entry models.PayrollEntry
		if err := database.DB.Preload("Employee").First(&entry, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Entrada não encontrada")
		}

		var body UpdateEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Bonuses != nil {
			entry.Bonuses = *body.Bonuses
		}
		if body.Deductions != nil {
			entry.Deductions = *body.Deductions
		}
		if body.Notes != nil {
			entry.Notes = *body.Notes
		}
		if body.Paid != nil {
			entry.Paid = *body.Paid
		}
		if body.PaymentDate != nil && *body.PaymentDate != "" {
			d, err := time.Parse("2006-01-02", *body.PaymentDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "payment_date deve estar no formato 'YYYY-MM-DD'")
			}
			entry.PaymentDate = &d
		} else if body.Paid != nil && *body.Paid && entry.PaymentDate == nil {
			now := time.Now()
			entry.PaymentDate = &now
		}

		entry.NetSalary = round2(
			decimal.NewFromFloat(entry.BaseSalary).
				Sub(decimal.NewFromFloat(entry.Advances)).
				Add(decimal.NewFromFloat(entry.Bonuses)).
				Sub(decimal.NewFromFloat(entry.Deductions)),
		)

		if err := database.DB.Save(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a folha")
		}

		return c.JSON(toEntryResponse(&entry))
	}
}
