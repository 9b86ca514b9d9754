package revenue

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

type CreateRevenueRequest struct {
	Source      string  `json:"source"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes"`
}

type UpdateRevenueRequest struct {
	Source      *string  `json:"source"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Date        *string  `json:"date"`
	Notes       *string  `json:"notes"`
}

type RevenueResponse struct {
	ID          uint    `json:"id"`
	Source      string  `json:"source"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes"`
}

type SourceSummary struct {
	Source string  `json:"source"`
	Total  float64 `json:"total"`
	Count  int64   `json:"count"`
}

type MonthlySummaryResponse struct {
	Month   string          `json:"month"`
	Total   float64         `json:"total"`
	Sources []SourceSummary `json:"sources"`
}

func toResponse(r *models.Revenue) RevenueResponse {
	return RevenueResponse{
		ID:          r.ID,
		Source:      r.Source,
		Description: r.Description,
		Amount:      r.Amount,
		Date:        r.Date.Format("2006-01-02"),
		Notes:       r.Notes,
	}
}

func currentUserName(c *fiber.Ctx) string {
	var user models.User
	if err := database.DB.First(&user, auth.CurrentUserID(c)).Error; err != nil {
		return ""
	}
	return user.Name
}

// POST /api/revenues
func CreateRevenueHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRevenueRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Source == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Origem é obrigatória")
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

		rev := models.Revenue{
			Source:      body.Source,
			Description: body.Description,
			Amount:      body.Amount,
			Date:        date,
			Notes:       body.Notes,
		}
		if err := database.DB.Create(&rev).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar a receita")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			UserName:    currentUserName(c),
			EntityType:  "revenue",
			EntityID:    rev.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Receita criada: %s, R$ %.2f", rev.Source, rev.Amount),
			After:       toResponse(&rev),
		}); logErr != nil {
			log.Printf("Audit log falhou: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&rev))
	}
}

// GET /api/revenues?start_date=...&end_date=...&source=...
func ListRevenuesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Revenue{})

		if source := c.Query("source"); source != "" {
			dbq = dbq.Where("source = ?", source)
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

		var revenues []models.Revenue
		if err := dbq.Order("date desc").Find(&revenues).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as receitas")
		}

		resp := make([]RevenueResponse, 0, len(revenues))
		for i := range revenues {
			resp = append(resp, toResponse(&revenues[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/revenues/summary?month=2025-06
func RevenueSummaryHandler() fiber.Handler {
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

		var rows []SourceSummary
		if err := database.DB.Model(&models.Revenue{}).
			Select("source, SUM(amount) as total, COUNT(*) as count").
			Where("date >= ? AND date < ?", monthStart, monthEnd).
			Group("source").
			Order("total desc").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível montar o resumo de receitas")
		}

		total := 0.0
		for _, r := range rows {
			total += r.Total
		}

		return c.JSON(MonthlySummaryResponse{Month: month, Total: total, Sources: rows})
	}
}

// PUT /api/revenues/:id
func UpdateRevenueHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var rev models.Revenue
		if err := database.DB.First(&rev, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Receita não encontrada")
		}

		var body UpdateRevenueRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		before := toResponse(&rev)

		if body.Source != nil {
			rev.Source = *body.Source
		}
		if body.Description != nil {
			rev.Description = *body.Description
		}
		if body.Amount != nil {
			if *body.Amount <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Valor deve ser maior que zero")
			}
			rev.Amount = *body.Amount
		}
		if body.Notes != nil {
			rev.Notes = *body.Notes
		}
		if body.Date != nil && *body.Date != "" {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date deve estar no formato 'YYYY-MM-DD'")
			}
			rev.Date = d
		}

		if err := database.DB.Save(&rev).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a receita")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			UserName:    currentUserName(c),
			EntityType:  "revenue",
			EntityID:    rev.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Receita alterada: %s", rev.Source),
			Before:      before,
			After:       toResponse(&rev),
		}); logErr != nil {
			log.Printf("Audit log falhou: %v", logErr)
		}

		return c.JSON(toResponse(&rev))
	}
}

// DELETE /api/revenues/:id (somente admin, via rota)
func DeleteRevenueHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var rev models.Revenue
		if err := database.DB.First(&rev, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Receita não encontrada")
		}

		if err := database.DB.Delete(&rev).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir a receita")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			UserName:    currentUserName(c),
			EntityType:  "revenue",
			EntityID:    rev.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Receita excluída: %s, R$ %.2f", rev.Source, rev.Amount),
			Before:      toResponse(&rev),
		}); logErr != nil {
			log.Printf("Audit log falhou: %v", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
