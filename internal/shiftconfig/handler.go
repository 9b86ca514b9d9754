package shiftconfig

import (
	"pizzaria-backend/internal/database"
	"pizzaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateConfigRequest struct {
	DefaultValue *float64 `json:"default_value"`
	Label        *string  `json:"label"`
}

type ConfigResponse struct {
	ID           uint    `json:"id"`
	Key          string  `json:"key"`
	Label        string  `json:"label"`
	DefaultValue float64 `json:"default_value"`
}

func toResponse(s *models.ShiftConfig) ConfigResponse {
	return ConfigResponse{
		ID:           s.ID,
		Key:          s.Key,
		Label:        s.Label,
		DefaultValue: s.DefaultValue,
	}
}

// GET /api/shift-configs
func ListConfigsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var configs []models.ShiftConfig
		if err := database.DB.Order("key asc").Find(&configs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as configurações")
		}

		resp := make([]ConfigResponse, 0, len(configs))
		for i := range configs {
			resp = append(resp, toResponse(&configs[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/shift-configs/:key (somente admin, via rota)
// Só altera os defaults exibidos no cadastro; registros de ponto existentes
// e o cálculo por funcionário não são afetados.
func UpdateConfigHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")

		var cfg models.ShiftConfig
		if err := database.DB.Where("key = ?", key).First(&cfg).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Configuração não encontrada")
		}

		var body UpdateConfigRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.DefaultValue != nil {
			if *body.DefaultValue < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Valor padrão não pode ser negativo")
			}
			cfg.DefaultValue = *body.DefaultValue
		}
		if body.Label != nil && *body.Label != "" {
			cfg.Label = *body.Label
		}

		if err := database.DB.Save(&cfg).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a configuração")
		}

		return c.JSON(toResponse(&cfg))
	}
}
