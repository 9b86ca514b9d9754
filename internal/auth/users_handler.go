package auth

import (
	"errors"
	"strings"

	"pizzaria-backend/internal/database"
	"pizzaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // ADMIN | MANAGER
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

type UserResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   string(u.Role),
		Active: u.Active,
	}
}

// GET /api/users (somente admin, via rota)
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("name asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os usuários")
		}

		resp := make([]UserResponse, 0, len(users))
		for i := range users {
			resp = append(resp, toUserResponse(&users[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/users (somente admin, via rota)
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome, email e senha são obrigatórios")
		}
		if len(body.Password) < 8 {
			return fiber.NewError(fiber.StatusBadRequest, "Senha deve ter pelo menos 8 caracteres")
		}

		role := models.UserRole(body.Role)
		if role != models.RoleAdmin && role != models.RoleManager {
			role = models.RoleManager
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o hash da senha")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         role,
			Active:       true,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Já existe um usuário com este email")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o usuário")
		}

		return c.Status(fiber.StatusCreated).JSON(toUserResponse(&user))
	}
}

// PUT /api/users/:id (somente admin, via rota)
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Name != nil && *body.Name != "" {
			user.Name = *body.Name
		}
		if body.Email != nil && *body.Email != "" {
			user.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.Role != nil {
			role := models.UserRole(*body.Role)
			if role != models.RoleAdmin && role != models.RoleManager {
				return fiber.NewError(fiber.StatusBadRequest, "Papel inválido")
			}
			// Não deixa o último admin rebaixar a si mesmo
			if user.Role == models.RoleAdmin && role != models.RoleAdmin {
				var admins int64
				database.DB.Model(&models.User{}).
					Where("role = ? AND active = true AND id <> ?", models.RoleAdmin, user.ID).
					Count(&admins)
				if admins == 0 {
					return fiber.NewError(fiber.StatusConflict, "Não é possível remover o último administrador")
				}
			}
			user.Role = role
		}
		if body.Active != nil {
			if !*body.Active && user.Role == models.RoleAdmin {
				var admins int64
				database.DB.Model(&models.User{}).
					Where("role = ? AND active = true AND id <> ?", models.RoleAdmin, user.ID).
					Count(&admins)
				if admins == 0 {
					return fiber.NewError(fiber.StatusConflict, "Não é possível desativar o último administrador")
				}
			}
			user.Active = *body.Active
		}
		if body.Password != nil && *body.Password != "" {
			if len(*body.Password) < 8 {
				return fiber.NewError(fiber.StatusBadRequest, "Senha deve ter pelo menos 8 caracteres")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o hash da senha")
			}
			user.PasswordHash = string(hash)
		}

		if err := database.DB.Save(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Já existe um usuário com este email")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o usuário")
		}

		return c.JSON(toUserResponse(&user))
	}
}

// DELETE /api/users/:id (somente admin, via rota)
// Desativação lógica; o login filtra usuários inativos.
func DeactivateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}

		if user.Role == models.RoleAdmin {
			var admins int64
			database.DB.Model(&models.User{}).
				Where("role = ? AND active = true AND id <> ?", models.RoleAdmin, user.ID).
				Count(&admins)
			if admins == 0 {
				return fiber.NewError(fiber.StatusConflict, "Não é possível desativar o último administrador")
			}
		}

		if err := database.DB.Model(&user).Update("active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível desativar o usuário")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
