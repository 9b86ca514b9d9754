package expense

import (
	"fmt"
	"log"
	"time"

	"pizzaria-backend/internal/audit"
	"pizzaria-backend/internal/auth"
	"pizzaria-backend/internal/database"
	"pizzaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateExpenseRequest struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"` // "2025-06-10"
	Notes       string  `json:"notes"`
}

type UpdateExpenseRequest struct {
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Date        *string  `json:"date"`
	Notes       *string  `json:"notes"`
}

type ExpenseResponse struct {
	ID          uint    `json:"id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes"`
}

type CategorySummary struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

type MonthlySummaryResponse struct {
	Month      string            `json:"month"`
	Total      float64           `json:"total"`
	Categories []CategorySummary `json:"categories"`
}

func toResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date.Format("2006-01-02"),
		Notes:       e.Notes,
	}
}

func currentUserName(c *fiber.Ctx) string {
	var user models.User
	if err := database.DB.First(&user, auth.CurrentUserID(c)).Error; err != nil {
		return ""
	}
	return user.Name
}

// POST /api/expenses
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Category == "" || body.Description == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Categoria e descrição são obrigatórias")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Valor deve ser maior que zero")
		}

		date := time.Now()
		if body.Date != "" {
			d, err := time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date deve estar no formato 'YYYY-MM-DD'")
			}
			date = d
		}

		exp := models.Expense{
			Category:    body.Category,
			Description: body.Description,
			Amount:      body.Amount,
			Date:        date,
			Notes:       body.Notes,
		}
		if err := database.DB.Create(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar a despesa")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			UserName:    currentUserName(c),
			EntityType:  "expense",
			EntityID:    exp.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Despesa criada: %s, R$ %.2f", exp.Description, exp.Amount),
			After:       toResponse(&exp),
		}); logErr != nil {
			log.Printf("Audit log falhou: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&exp))
	}
}

// GET /api/expenses?start_date=...&end_date=...&category=...
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Expense{})

		if category := c.Query("category"); category != "" {
			dbq = dbq.Where("category = ?", category)
		}

		startStr := c.Query("start_date")
		endStr := c.Query("end_date")
		if startStr != "" && endStr != "" {
			start, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start_date inválido")
			}
			end, err := time.Parse("2006-01-02", endStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end_date inválido")
			}
			end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)
			dbq = dbq.Where("date >= ? AND date <= ?", start, end)
		}

		var expenses []models.Expense
		if err := dbq.Order("date desc").Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as despesas")
		}

		resp := make([]ExpenseResponse, 0, len(expenses))
		for i := range expenses {
			resp = append(resp, toResponse(&expenses[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/expenses/summary?month=2025-06
func ExpenseSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		month := c.Query("month")
		if month == "" {
			month = time.Now().Format("2006-01")
		}
		monthStart, err := time.Parse("2006-01", month)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month deve estar no formato 'YYYY-MM'")
		}
		monthEnd := monthStart.AddDate(0, 1, 0)

		var rows []CategorySummary
		if err := database.DB.Model(&models.Expense{}).
			Select("category, SUM(amount) as total, COUNT(*) as count").
			Where("date >= ? AND date < ?", monthStart, monthEnd).
			Group("category").
			Order("total desc").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível montar o resumo de despesas")
		}

		total := 0.0
		for _, r := range rows {
			total += r.Total
		}

		return c.JSON(MonthlySummaryResponse{Month: month, Total: total, Categories: rows})
	}
}

// PUT /api/expenses/:id
func UpdateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var exp models.Expense
		if err := database.DB.First(&exp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Despesa não encontrada")
		}

		var body UpdateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		before := toResponse(&exp)

		if body.Category != nil {
			exp.Category = *body.Category
		}
		if body.Description != nil {
			exp.Description = *body.Description
		}
		if body.Amount != nil {
			if *body.Amount <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Valor deve ser maior que zero")
			}
			exp.Amount = *body.Amount
		}
		if body.Notes != nil {
			exp.Notes = *body.Notes
		}
		if body.Date != nil && *body.Date != "" {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date deve estar no formato 'YYYY-MM-DD'")
			}
			exp.Date = d
		}

		if err := database.DB.Save(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a despesa")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			UserName:    currentUserName(c),
			EntityType:  "expense",
			EntityID:    exp.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Despesa alterada: %s", exp.Description),
			Before:      before,
			After:       toResponse(&exp),
		}); logErr != nil {
			log.Printf("Audit log falhou: %v", logErr)
		}

		return c.JSON(toResponse(&exp))
	}
}

// DELETE /api/expenses/:id (somente admin, via rota)
func DeleteExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var exp models.Expense
		if err := database.DB.First(&exp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Despesa não encontrada")
		}

		if err := database.DB.Delete(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir a despesa")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			UserName:    currentUserName(c),
			EntityType:  "expense",
			EntityID:    exp.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Despesa excluída: %s, R$ %.2f", exp.Description, exp.Amount),
			Before:      toResponse(&exp),
		}); logErr != nil {
			log.Printf("Audit log falhou: %v", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
