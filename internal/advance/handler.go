package advance

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

type CreateAdvanceRequest struct {
	EmployeeID  uint    `json:"employee_id"`
	Amount      float64 `json:"amount"`
	RequestDate string  `json:"request_date"` // "2025-06-10"; vazio = hoje
	Notes       string  `json:"notes"`
}

type UpdateAdvanceRequest struct {
	Amount      *float64 `json:"amount"`
	Status      *string  `json:"status"`
	PaymentDate *string  `json:"payment_date"`
	Notes       *string  `json:"notes"`
}

type AdvanceResponse struct {
	ID           uint    `json:"id"`
	EmployeeID   uint    `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	RequestDate  string  `json:"request_date"`
	PaymentDate  string  `json:"payment_date"`
	Notes        string  `json:"notes"`
}

func toResponse(a *models.Advance) AdvanceResponse {
	paymentDate := ""
	if a.PaymentDate != nil {
		paymentDate = a.PaymentDate.Format("2006-01-02")
	}
	return AdvanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.Employee.Name,
		Amount:       a.Amount,
		Status:       string(a.Status),
		RequestDate:  a.RequestDate.Format("2006-01-02"),
		PaymentDate:  paymentDate,
		Notes:        a.Notes,
	}
}

func validStatus(s string) bool {
	switch models.AdvanceStatus(s) {
	case models.AdvancePending, models.AdvanceApproved, models.AdvancePaid,
		models.AdvanceRejected, models.AdvanceDiscounted:
		return true
	}
	return false
}

func currentUserName(c *fiber.Ctx) string {
	var user models.User
	if err := database.DB.First(&user, auth.CurrentUserID(c)).Error; err != nil {
		return ""
	}
	return user.Name
}

// POST /api/advances
func CreateAdvanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateAdvanceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.EmployeeID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Funcionário é obrigatório")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Valor deve ser maior que zero")
		}

		var employee models.Employee
		if err := database.DB.First(&employee, body.EmployeeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Funcionário não encontrado")
		}

		requestDate := time.Now()
		if body.RequestDate != "" {
			d, err := time.Parse("2006-01-02", body.RequestDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "request_date deve estar no formato 'YYYY-MM-DD'")
			}
			requestDate = d
		}

		adv := models.Advance{
			EmployeeID:  body.EmployeeID,
			Amount:      body.Amount,
			Status:      models.AdvancePending,
			RequestDate: requestDate,
			Notes:       body.Notes,
		}
		if err := database.DB.Create(&adv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o adiantamento")
		}

		adv.Employee = employee

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			UserName:    currentUserName(c),
			EntityType:  "advance",
			EntityID:    adv.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Adiantamento criado: %s, R$ %.2f", employee.Name, adv.Amount),
			After:       toResponse(&adv),
		}); logErr != nil {
			log.Printf("Audit log falhou: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&adv))
	}
}

// GET /api/advances?status=PAID&employee_id=3
func ListAdvancesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Advance{}).Preload("Employee")

		if status := c.Query("status"); status != "" {
			if !validStatus(status) {
				return fiber.NewError(fiber.StatusBadRequest, "Status inválido")
			}
			dbq = dbq.Where("status = ?", status)
		}
		if empStr := c.Query("employee_id"); empStr != "" {
			var eid uint
			if _, err := fmt.Sscan(empStr, &eid); err != nil || eid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "employee_id inválido")
			}
			dbq = dbq.Where("employee_id = ?", eid)
		}

		var advances []models.Advance
		if err := dbq.Order("request_date desc").Find(&advances).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os adiantamentos")
		}

		resp := make([]AdvanceResponse, 0, len(advances))
		for i := range advances {
			resp = append(resp, toResponse(&advances[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/advances/:id
// Marcar como PAID sem data de pagamento carimba a data atual; é essa data
// que decide em qual folha o adiantamento será descontado.
func UpdateAdvanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var adv models.Advance
		if err := database.DB.Preload("Employee").First(&adv, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Adiantamento não encontrado")
		}

		if adv.Status == models.AdvanceDiscounted {
			return fiber.NewError(fiber.StatusConflict, "Adiantamento já descontado em folha não pode ser alterado")
		}

		var body UpdateAdvanceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		before := toResponse(&adv)

		if body.Amount != nil {
			if *body.Amount <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Valor deve ser maior que zero")
			}
			adv.Amount = *body.Amount
		}
		if body.Notes != nil {
			adv.Notes = *body.Notes
		}
		if body.PaymentDate != nil && *body.PaymentDate != "" {
			d, err := time.Parse("2006-01-02", *body.PaymentDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "payment_date deve estar no formato 'YYYY-MM-DD'")
			}
			adv.PaymentDate = &d
		}
		if body.Status != nil {
			if !validStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "Status inválido")
			}
			adv.Status = models.AdvanceStatus(*body.Status)
			if adv.Status == models.AdvancePaid && adv.PaymentDate == nil {
				now := time.Now()
				adv.PaymentDate = &now
			}
		}

		if err := database.DB.Save(&adv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o adiantamento")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			UserName:    currentUserName(c),
			EntityType:  "advance",
			EntityID:    adv.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Adiantamento alterado: %s, status %s", adv.Employee.Name, adv.Status),
			Before:      before,
			After:       toResponse(&adv),
		}); logErr != nil {
			log.Printf("Audit log falhou: %v", logErr)
		}

		return c.JSON(toResponse(&adv))
	}
}

// DELETE /api/advances/:id (somente admin, via rota)
func DeleteAdvanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var adv models.Advance
		if err := database.DB.Preload("Employee").First(&adv, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Adiantamento não encontrado")
		}

		if adv.Status == models.AdvanceDiscounted {
			return fiber.NewError(fiber.StatusConflict, "Adiantamento já descontado em folha não pode ser excluído")
		}

		if err := database.DB.Delete(&adv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir o adiantamento")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			UserName:    currentUserName(c),
			EntityType:  "advance",
			EntityID:    adv.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Adiantamento excluído: %s, R$ %.2f", adv.Employee.Name, adv.Amount),
			Before:      toResponse(&adv),
		}); logErr != nil {
			log.Printf("Audit log falhou: %v", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
