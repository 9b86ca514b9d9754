package timeclock

import (
	"errors"
	"fmt"
	"log"
	"time"

	"pizzaria-backend/internal/audit"
	"pizzaria-backend/internal/auth"
	"pizzaria-backend/internal/database"
	"pizzaria-backend/internal/models"
	"pizzaria-backend/internal/permissions"
	"pizzaria-backend/internal/shiftpay"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateTimeEntryRequest struct {
	EmployeeID     uint   `json:"employee_id"`
	Date           string `json:"date"` // "2025-06-14"
	WorkedLunch    bool   `json:"worked_lunch"`
	WorkedDinner   bool   `json:"worked_dinner"`
	ClockInLunch   string `json:"clock_in_lunch"`
	ClockOutLunch  string `json:"clock_out_lunch"`
	ClockInDinner  string `json:"clock_in_dinner"`
	ClockOutDinner string `json:"clock_out_dinner"`
	Status         string `json:"status"`
	Notes          string `json:"notes"`
}

type UpdateTimeEntryRequest struct {
	WorkedLunch    *bool   `json:"worked_lunch"`
	WorkedDinner   *bool   `json:"worked_dinner"`
	ClockInLunch   *string `json:"clock_in_lunch"`
	ClockOutLunch  *string `json:"clock_out_lunch"`
	ClockInDinner  *string `json:"clock_in_dinner"`
	ClockOutDinner *string `json:"clock_out_dinner"`
	Status         *string `json:"status"`
	Notes          *string `json:"notes"`
}

type ClockInRequest struct {
	EmployeeID uint   `json:"employee_id"`
	Shift      string `json:"shift"` // "lunch" ou "dinner"
}

type TimeEntryResponse struct {
	ID             uint    `json:"id"`
	EmployeeID     uint    `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	EmployeeRole   string  `json:"employee_role"`
	Date           string  `json:"date"`
	WorkedLunch    bool    `json:"worked_lunch"`
	WorkedDinner   bool    `json:"worked_dinner"`
	ClockInLunch   string  `json:"clock_in_lunch"`
	ClockOutLunch  string  `json:"clock_out_lunch"`
	ClockInDinner  string  `json:"clock_in_dinner"`
	ClockOutDinner string  `json:"clock_out_dinner"`
	Status         string  `json:"status"`
	Notes          string  `json:"notes"`
	LunchValue     float64 `json:"lunch_value"`
	DinnerValue    float64 `json:"dinner_value"`
	TotalValue     float64 `json:"total_value"`
}

func toResponse(e *models.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:             e.ID,
		EmployeeID:     e.EmployeeID,
		EmployeeName:   e.Employee.Name,
		EmployeeRole:   e.Employee.Role,
		Date:           e.Date.Format("2006-01-02"),
		WorkedLunch:    e.WorkedLunch,
		WorkedDinner:   e.WorkedDinner,
		ClockInLunch:   e.ClockInLunch,
		ClockOutLunch:  e.ClockOutLunch,
		ClockInDinner:  e.ClockInDinner,
		ClockOutDinner: e.ClockOutDinner,
		Status:         string(e.Status),
		Notes:          e.Notes,
		LunchValue:     e.LunchValue,
		DinnerValue:    e.DinnerValue,
		TotalValue:     e.TotalValue,
	}
}

// normalizeDate fixa a data ao meio-dia UTC: evita que fuso horário jogue o
// registro para o dia anterior/seguinte e mantém o índice único estável.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return normalizeDate(d), nil
}

func currentUserName(c *fiber.Ctx) string {
	var user models.User
	if err := database.DB.First(&user, auth.CurrentUserID(c)).Error; err != nil {
		return ""
	}
	return user.Name
}

func applyValues(e *models.TimeEntry, emp *models.Employee) {
	v := shiftpay.CalculateShiftValues(e.Date, e.WorkedLunch, e.WorkedDinner, emp)
	e.LunchValue = v.LunchValue
	e.DinnerValue = v.DinnerValue
	e.TotalValue = v.TotalValue
}

// -------------------------
// CRUD de registros de ponto
// -------------------------

// POST /api/time-entries
func CreateTimeEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTimeEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.EmployeeID == 0 || body.Date == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Funcionário e data são obrigatórios")
		}

		entryDate, err := parseDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data deve estar no formato 'YYYY-MM-DD'")
		}

		// Política de registro retroativo (mesma função usada no update)
		if d := permissions.CanCreateRetroactiveEntry(auth.CurrentRole(c), entryDate, time.Now()); !d.Allowed {
			return fiber.NewError(fiber.StatusForbidden, d.Reason)
		}

		var employee models.Employee
		if err := database.DB.First(&employee, body.EmployeeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Funcionário não encontrado")
		}

		// Pre-check para a mensagem amigável; a garantia real contra corrida
		// é o índice único (employee_id, date)
		var count int64
		if err := database.DB.Model(&models.TimeEntry{}).
			Where("employee_id = ? AND date = ?", body.EmployeeID, entryDate).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível verificar registros existentes")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Já existe um registro de ponto para este funcionário nesta data")
		}

		status := models.EntryStatus(body.Status)
		if status != models.EntryAbsent {
			status = models.EntryPresent
		}

		userID := auth.CurrentUserID(c)
		entry := models.TimeEntry{
			EmployeeID:     body.EmployeeID,
			Date:           entryDate,
			WorkedLunch:    body.WorkedLunch,
			WorkedDinner:   body.WorkedDinner,
			ClockInLunch:   body.ClockInLunch,
			ClockOutLunch:  body.ClockOutLunch,
			ClockInDinner:  body.ClockInDinner,
			ClockOutDinner: body.ClockOutDinner,
			Status:         status,
			Notes:          body.Notes,
			CreatedByID:    &userID,
		}
		applyValues(&entry, &employee)

		if err := database.DB.Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Já existe um registro de ponto para este funcionário nesta data")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o registro de ponto")
		}

		entry.Employee = employee

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    currentUserName(c),
			EntityType:  "time_entry",
			EntityID:    entry.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Ponto registrado: %s em %s", employee.Name, entry.Date.Format("02/01/2006")),
			After:       toResponse(&entry),
		}); logErr != nil {
			log.Printf("Audit log falhou: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&entry))
	}
}

// POST /api/time-entries/clock-in
// Ação rápida: marca presença de hoje no turno informado, batendo o
// horário de entrada com a hora atual.
func ClockInHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ClockInRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.EmployeeID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Funcionário é obrigatório")
		}
		if body.Shift != "lunch" && body.Shift != "dinner" {
			return fiber.NewError(fiber.StatusBadRequest, "Turno deve ser 'lunch' ou 'dinner'")
		}

		var employee models.Employee
		if err := database.DB.First(&employee, body.EmployeeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Funcionário não encontrado")
		}

		now := time.Now()
		today := normalizeDate(now)
		clock := now.Format("15:04")

		var entry models.TimeEntry
		err := database.DB.Where("employee_id = ? AND date = ?", body.EmployeeID, today).First(&entry).Error

		switch {
		case err == nil:
			// Já existe registro hoje: só liga o turno
			if body.Shift == "lunch" {
				entry.WorkedLunch = true
				if entry.ClockInLunch == "" {
					entry.ClockInLunch = clock
				}
			} else {
				entry.WorkedDinner = true
				if entry.ClockInDinner == "" {
					entry.ClockInDinner = clock
				}
			}
			entry.Status = models.EntryPresent
			applyValues(&entry, &employee)
			if err := database.DB.Save(&entry).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o registro de hoje")
			}

		case errors.Is(err, gorm.ErrRecordNotFound):
			userID := auth.CurrentUserID(c)
			entry = models.TimeEntry{
				EmployeeID:  body.EmployeeID,
				Date:        today,
				Status:      models.EntryPresent,
				CreatedByID: &userID,
			}
			if body.Shift == "lunch" {
				entry.WorkedLunch = true
				entry.ClockInLunch = clock
			} else {
				entry.WorkedDinner = true
				entry.ClockInDinner = clock
			}
			applyValues(&entry, &employee)
			if err := database.DB.Create(&entry).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fiber.NewError(fiber.StatusConflict, "Já existe um registro de ponto para este funcionário nesta data")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível registrar o ponto")
			}

		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível consultar o ponto de hoje")
		}

		entry.Employee = employee
		return c.Status(fiber.StatusCreated).JSON(toResponse(&entry))
	}
}

// GET /api/time-entries?date=...&employee_id=...&start_date=...&end_date=...
func ListTimeEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.TimeEntry{}).Preload("Employee")

		if dateStr := c.Query("date"); dateStr != "" {
			d, err := parseDate(dateStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date inválido")
			}
			dbq = dbq.Where("date = ?", d)
		}

		startStr := c.Query("start_date")
		endStr := c.Query("end_date")
		if startStr != "" && endStr != "" {
			start, err := parseDate(startStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start_date inválido")
			}
			end, err := parseDate(endStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end_date inválido")
			}
			dbq = dbq.Where("date >= ? AND date <= ?", start, end)
		}

		if empStr := c.Query("employee_id"); empStr != "" {
			var eid uint
			if _, err := fmt.Sscan(empStr, &eid); err != nil || eid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "employee_id inválido")
			}
			dbq = dbq.Where("employee_id = ?", eid)
		}

		var entries []models.TimeEntry
		if err := dbq.Order("date desc, employee_id asc").Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os registros de ponto")
		}

		resp := make([]TimeEntryResponse, 0, len(entries))
		for i := range entries {
			resp = append(resp, toResponse(&entries[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/time-entries/:id
func GetTimeEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var entry models.TimeEntry
		if err := database.DB.Preload("Employee").First(&entry, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Registro não encontrado")
		}

		return c.JSON(toResponse(&entry))
	}
}

// PUT /api/time-entries/:id
// Recalcula os valores com a configuração ATUAL do funcionário e os turnos
// resultantes do patch.
func UpdateTimeEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var entry models.TimeEntry
		if err := database.DB.Preload("Employee").First(&entry, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Registro não encontrado")
		}

		// Janela de edição avaliada sobre a data DO REGISTRO
		if d := permissions.CanEditTimeEntry(auth.CurrentRole(c), entry.Date, time.Now()); !d.Allowed {
			return fiber.NewError(fiber.StatusForbidden, d.Reason)
		}

		var body UpdateTimeEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		before := toResponse(&entry)

		if body.WorkedLunch != nil {
			entry.WorkedLunch = *body.WorkedLunch
		}
		if body.WorkedDinner != nil {
			entry.WorkedDinner = *body.WorkedDinner
		}
		if body.ClockInLunch != nil {
			entry.ClockInLunch = *body.ClockInLunch
		}
		if body.ClockOutLunch != nil {
			entry.ClockOutLunch = *body.ClockOutLunch
		}
		if body.ClockInDinner != nil {
			entry.ClockInDinner = *body.ClockInDinner
		}
		if body.ClockOutDinner != nil {
			entry.ClockOutDinner = *body.ClockOutDinner
		}
		if body.Status != nil {
			if s := models.EntryStatus(*body.Status); s == models.EntryPresent || s == models.EntryAbsent {
				entry.Status = s
			}
		}
		if body.Notes != nil {
			entry.Notes = *body.Notes
		}

		applyValues(&entry, &entry.Employee)

		userID := auth.CurrentUserID(c)
		entry.UpdatedByID = &userID

		if err := database.DB.Save(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o registro de ponto")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    currentUserName(c),
			EntityType:  "time_entry",
			EntityID:    entry.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Ponto alterado: %s em %s", entry.Employee.Name, entry.Date.Format("02/01/2006")),
			Before:      before,
			After:       toResponse(&entry),
		}); logErr != nil {
			log.Printf("Audit log falhou: %v", logErr)
		}

		return c.JSON(toResponse(&entry))
	}
}

// DELETE /api/time-entries/:id
func DeleteTimeEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !permissions.CanDeleteTimeEntry(auth.CurrentRole(c)) {
			return fiber.NewError(fiber.StatusForbidden, "Somente administradores podem excluir registros de ponto")
		}

		id := c.Params("id")

		var entry models.TimeEntry
		if err := database.DB.Preload("Employee").First(&entry, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Registro não encontrado")
		}

		if err := database.DB.Delete(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir o registro de ponto")
		}

		userID := auth.CurrentUserID(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    currentUserName(c),
			EntityType:  "time_entry",
			EntityID:    entry.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Ponto excluído: %s em %s", entry.Employee.Name, entry.Date.Format("02/01/2006")),
			Before:      toResponse(&entry),
		}); logErr != nil {
			log.Printf("Audit log falhou: %v", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
