package employee

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

type ShiftConfigRequest struct {
	Works        *bool    `json:"works"`
	PaymentType  *string  `json:"payment_type"`
	Value        *float64 `json:"value"`
	WeekdayValue *float64 `json:"weekday_value"`
	WeekendValue *float64 `json:"weekend_value"`
	StartTime    *string  `json:"start_time"` // "HH:MM", só para HOUR
	EndTime      *string  `json:"end_time"`
}

type CreateEmployeeRequest struct {
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Phone       string  `json:"phone"`
	Document    string  `json:"document"`
	HireDate    string  `json:"hire_date"` // "2025-01-15"
	Salary      float64 `json:"salary"`
	FixedSalary bool    `json:"fixed_salary"`

	Lunch  *ShiftConfigRequest `json:"lunch"`
	Dinner *ShiftConfigRequest `json:"dinner"`
}

type UpdateEmployeeRequest struct {
	Name        *string  `json:"name"`
	Role        *string  `json:"role"`
	Phone       *string  `json:"phone"`
	Document    *string  `json:"document"`
	HireDate    *string  `json:"hire_date"`
	Active      *bool    `json:"active"`
	Salary      *float64 `json:"salary"`
	FixedSalary *bool    `json:"fixed_salary"`

	Lunch  *ShiftConfigRequest `json:"lunch"`
	Dinner *ShiftConfigRequest `json:"dinner"`
}

type EmployeeResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Phone       string  `json:"phone"`
	Document    string  `json:"document"`
	HireDate    string  `json:"hire_date"`
	Active      bool    `json:"active"`
	Salary      float64 `json:"salary"`
	FixedSalary bool    `json:"fixed_salary"`

	WorksLunch       bool    `json:"works_lunch"`
	LunchPaymentType string  `json:"lunch_payment_type"`
	LunchValue       float64 `json:"lunch_value"`
	LunchStartTime   string  `json:"lunch_start_time"`
	LunchEndTime     string  `json:"lunch_end_time"`

	WorksDinner        bool    `json:"works_dinner"`
	DinnerPaymentType  string  `json:"dinner_payment_type"`
	DinnerWeekdayValue float64 `json:"dinner_weekday_value"`
	DinnerWeekendValue float64 `json:"dinner_weekend_value"`
	DinnerStartTime    string  `json:"dinner_start_time"`
	DinnerEndTime      string  `json:"dinner_end_time"`
}

func toResponse(e *models.Employee) EmployeeResponse {
	hireDate := ""
	if !e.HireDate.IsZero() {
		hireDate = e.HireDate.Format("2006-01-02")
	}
	return EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Role:        e.Role,
		Phone:       e.Phone,
		Document:    e.Document,
		HireDate:    hireDate,
		Active:      e.Active,
		Salary:      e.Salary,
		FixedSalary: e.FixedSalary,

		WorksLunch:       e.WorksLunch,
		LunchPaymentType: string(e.LunchPaymentType),
		LunchValue:       e.LunchValue,
		LunchStartTime:   e.LunchStartTime,
		LunchEndTime:     e.LunchEndTime,

		WorksDinner:        e.WorksDinner,
		DinnerPaymentType:  string(e.DinnerPaymentType),
		DinnerWeekdayValue: e.DinnerWeekdayValue,
		DinnerWeekendValue: e.DinnerWeekendValue,
		DinnerStartTime:    e.DinnerStartTime,
		DinnerEndTime:      e.DinnerEndTime,
	}
}

func validPaymentType(s string) bool {
	switch models.PaymentType(s) {
	case models.PaymentHour, models.PaymentShift, models.PaymentDay, models.PaymentWeek, models.PaymentMonth:
		return true
	}
	return false
}

func applyLunchConfig(e *models.Employee, cfg *ShiftConfigRequest) error {
	if cfg == nil {
		return nil
	}
	if cfg.Works != nil {
		e.WorksLunch = *cfg.Works
	}
	if cfg.PaymentType != nil {
		if !validPaymentType(*cfg.PaymentType) {
			return fiber.NewError(fiber.StatusBadRequest, "Tipo de pagamento do almoço inválido")
		}
		e.LunchPaymentType = models.PaymentType(*cfg.PaymentType)
	}
	if cfg.Value != nil {
		e.LunchValue = *cfg.Value
	}
	if cfg.StartTime != nil {
		e.LunchStartTime = *cfg.StartTime
	}
	if cfg.EndTime != nil {
		e.LunchEndTime = *cfg.EndTime
	}
	return nil
}

func applyDinnerConfig(e *models.Employee, cfg *ShiftConfigRequest) error {
	if cfg == nil {
		return nil
	}
	if cfg.Works != nil {
		e.WorksDinner = *cfg.Works
	}
	if cfg.PaymentType != nil {
		if !validPaymentType(*cfg.PaymentType) {
			return fiber.NewError(fiber.StatusBadRequest, "Tipo de pagamento do jantar inválido")
		}
		e.DinnerPaymentType = models.PaymentType(*cfg.PaymentType)
	}
	if cfg.WeekdayValue != nil {
		e.DinnerWeekdayValue = *cfg.WeekdayValue
	}
	if cfg.WeekendValue != nil {
		e.DinnerWeekendValue = *cfg.WeekendValue
	}
	if cfg.StartTime != nil {
		e.DinnerStartTime = *cfg.StartTime
	}
	if cfg.EndTime != nil {
		e.DinnerEndTime = *cfg.EndTime
	}
	return nil
}

func currentUserName(c *fiber.Ctx) string {
	var user models.User
	if err := database.DB.First(&user, auth.CurrentUserID(c)).Error; err != nil {
		return ""
	}
	return user.Name
}

// POST /api/employees (somente admin, via rota)
func CreateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Name == "" || body.Role == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome e função são obrigatórios")
		}

		emp := models.Employee{
			Name:        body.Name,
			Role:        body.Role,
			Phone:       body.Phone,
			Document:    body.Document,
			Active:      true,
			Salary:      body.Salary,
			FixedSalary: body.FixedSalary,

			LunchPaymentType:  models.PaymentShift,
			DinnerPaymentType: models.PaymentShift,
			WorksDinner:       true,
		}

		if body.HireDate != "" {
			d, err := time.Parse("2006-01-02", body.HireDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "hire_date deve estar no formato 'YYYY-MM-DD'")
			}
			emp.HireDate = d
		}

		if err := applyLunchConfig(&emp, body.Lunch); err != nil {
			return err
		}
		if err := applyDinnerConfig(&emp, body.Dinner); err != nil {
			return err
		}

		if err := database.DB.Create(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o funcionário")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			UserName:    currentUserName(c),
			EntityType:  "employee",
			EntityID:    emp.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Funcionário criado: %s (%s)", emp.Name, emp.Role),
			After:       toResponse(&emp),
		}); logErr != nil {
			log.Printf("Audit log falhou: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&emp))
	}
}

// GET /api/employees?active=true
func ListEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Employee{})

		switch c.Query("active") {
		case "true":
			dbq = dbq.Where("active = true")
		case "false":
			dbq = dbq.Where("active = false")
		}

		var employees []models.Employee
		if err := dbq.Order("name asc").Find(&employees).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os funcionários")
		}

		resp := make([]EmployeeResponse, 0, len(employees))
		for i := range employees {
			resp = append(resp, toResponse(&employees[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/employees/:id
func GetEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Funcionário não encontrado")
		}

		return c.JSON(toResponse(&emp))
	}
}

// PUT /api/employees/:id (somente admin, via rota)
// Alterar a configuração de pagamento NÃO recalcula registros de ponto já
// gravados; os valores antigos são o histórico.
func UpdateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Funcionário não encontrado")
		}

		var body UpdateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		before := toResponse(&emp)

		if body.Name != nil {
			emp.Name = *body.Name
		}
		if body.Role != nil {
			emp.Role = *body.Role
		}
		if body.Phone != nil {
			emp.Phone = *body.Phone
		}
		if body.Document != nil {
			emp.Document = *body.Document
		}
		if body.Active != nil {
			emp.Active = *body.Active
		}
		if body.Salary != nil {
			emp.Salary = *body.Salary
		}
		if body.FixedSalary != nil {
			emp.FixedSalary = *body.FixedSalary
		}
		if body.HireDate != nil && *body.HireDate != "" {
			d, err := time.Parse("2006-01-02", *body.HireDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "hire_date deve estar no formato 'YYYY-MM-DD'")
			}
			emp.HireDate = d
		}

		if err := applyLunchConfig(&emp, body.Lunch); err != nil {
			return err
		}
		if err := applyDinnerConfig(&emp, body.Dinner); err != nil {
			return err
		}

		if err := database.DB.Save(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o funcionário")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			UserName:    currentUserName(c),
			EntityType:  "employee",
			EntityID:    emp.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Funcionário alterado: %s", emp.Name),
			Before:      before,
			After:       toResponse(&emp),
		}); logErr != nil {
			log.Printf("Audit log falhou: %v", logErr)
		}

		return c.JSON(toResponse(&emp))
	}
}

// DELETE /api/employees/:id (somente admin, via rota)
// Desativação lógica: o histórico de ponto e pagamentos permanece.
func DeactivateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Funcionário não encontrado")
		}

		if err := database.DB.Model(&emp).Update("active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível desativar o funcionário")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			UserName:    currentUserName(c),
			EntityType:  "employee",
			EntityID:    emp.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Funcionário desativado: %s", emp.Name),
		}); logErr != nil {
			log.Printf("Audit log falhou: %v", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
