package menu

import (
	"errors"

	"pizzaria-backend/internal/database"
	"pizzaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
	Active      *bool   `json:"active"`
}

type ItemRequest struct {
	MenuCategoryID *uint    `json:"menu_category_id"`
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Price          *float64 `json:"price"`
	ImageURL       *string  `json:"image_url"`
	Available      *bool    `json:"available"`
	SortOrder      *int     `json:"sort_order"`
}

type ItemResponse struct {
	ID             uint    `json:"id"`
	MenuCategoryID uint    `json:"menu_category_id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	ImageURL       string  `json:"image_url"`
	Available      bool    `json:"available"`
	SortOrder      int     `json:"sort_order"`
}

type CategoryResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	SortOrder   int            `json:"sort_order"`
	Active      bool           `json:"active"`
	Items       []ItemResponse `json:"items"`
}

func toItemResponse(i *models.MenuItem) ItemResponse {
	return ItemResponse{
		ID:             i.ID,
		MenuCategoryID: i.MenuCategoryID,
		Name:           i.Name,
		Description:    i.Description,
		Price:          i.Price,
		ImageURL:       i.ImageURL,
		Available:      i.Available,
		SortOrder:      i.SortOrder,
	}
}

func toCategoryResponse(cat *models.MenuCategory) CategoryResponse {
	items := make([]ItemResponse, 0, len(cat.Items))
	for i := range cat.Items {
		items = append(items, toItemResponse(&cat.Items[i]))
	}
	return CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		SortOrder:   cat.SortOrder,
		Active:      cat.Active,
		Items:       items,
	}
}

// -------------------------
// Categorias
// -------------------------

// GET /api/menu/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.MenuCategory
		if err := database.DB.
			Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc, name asc") }).
			Order("sort_order asc, name asc").
			Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as categorias")
		}

		resp := make([]CategoryResponse, 0, len(categories))
		for i := range categories {
			resp = append(resp, toCategoryResponse(&categories[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/menu/categories (somente admin, via rota)
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Name == nil || *body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome é obrigatório")
		}

		cat := models.MenuCategory{Name: *body.Name, Active: true}
		if body.Description != nil {
			cat.Description = *body.Description
		}
		if body.SortOrder != nil {
			cat.SortOrder = *body.SortOrder
		}
		if body.Active != nil {
			cat.Active = *body.Active
		}

		if err := database.DB.Create(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Já existe uma categoria com este nome")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar a categoria")
		}

		return c.Status(fiber.StatusCreated).JSON(toCategoryResponse(&cat))
	}
}

// PUT /api/menu/categories/:id (somente admin, via rota)
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cat models.MenuCategory
		if err := database.DB.First(&cat, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Categoria não encontrada")
		}

		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Name != nil && *body.Name != "" {
			cat.Name = *body.Name
		}
		if body.Description != nil {
			cat.Description = *body.Description
		}
		if body.SortOrder != nil {
			cat.SortOrder = *body.SortOrder
		}
		if body.Active != nil {
			cat.Active = *body.Active
		}

		if err := database.DB.Save(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Já existe uma categoria com este nome")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a categoria")
		}

		return c.JSON(toCategoryResponse(&cat))
	}
}

// DELETE /api/menu/categories/:id (somente admin, via rota)
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cat models.MenuCategory
		if err := database.DB.First(&cat, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Categoria não encontrada")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("menu_category_id = ?", cat.ID).Delete(&models.MenuItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&cat).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir a categoria")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// -------------------------
// Itens
// -------------------------

// POST /api/menu/items (somente admin, via rota)
func CreateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Name == nil || *body.Name == "" || body.MenuCategoryID == nil || *body.MenuCategoryID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nome e categoria são obrigatórios")
		}
		if body.Price == nil || *body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Preço inválido")
		}

		var cat models.MenuCategory
		if err := database.DB.First(&cat, *body.MenuCategoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Categoria não encontrada")
		}

		item := models.MenuItem{
			MenuCategoryID: cat.ID,
			Name:           *body.Name,
			Price:          *body.Price,
			Available:      true,
		}
		if body.Description != nil {
			item.Description = *body.Description
		}
		if body.ImageURL != nil {
			item.ImageURL = *body.ImageURL
		}
		if body.Available != nil {
			item.Available = *body.Available
		}
		if body.SortOrder != nil {
			item.SortOrder = *body.SortOrder
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o item")
		}

		return c.Status(fiber.StatusCreated).JSON(toItemResponse(&item))
	}
}

// PUT /api/menu/items/:id (somente admin, via rota)
func UpdateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.MenuItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item não encontrado")
		}

		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.MenuCategoryID != nil && *body.MenuCategoryID != 0 {
			var cat models.MenuCategory
			if err := database.DB.First(&cat, *body.MenuCategoryID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Categoria não encontrada")
			}
			item.MenuCategoryID = cat.ID
		}
		if body.Name != nil && *body.Name != "" {
			item.Name = *body.Name
		}
		if body.Description != nil {
			item.Description = *body.Description
		}
		if body.Price != nil {
			if *body.Price < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Preço inválido")
			}
			item.Price = *body.Price
		}
		if body.ImageURL != nil {
			item.ImageURL = *body.ImageURL
		}
		if body.Available != nil {
			item.Available = *body.Available
		}
		if body.SortOrder != nil {
			item.SortOrder = *body.SortOrder
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o item")
		}

		return c.JSON(toItemResponse(&item))
	}
}

// DELETE /api/menu/items/:id (somente admin, via rota)
func DeleteItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.MenuItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item não encontrado")
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir o item")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// -------------------------
// Cardápio público
// -------------------------

// GET /api/menu/public (sem autenticação)
// Só categorias ativas com itens disponíveis, na ordem de exibição.
func PublicMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.MenuCategory
		if err := database.DB.
			Where("active = true").
			Preload("Items", func(db *gorm.DB) *gorm.DB {
				return db.Where("available = true").Order("sort_order asc, name asc")
			}).
			Order("sort_order asc, name asc").
			Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar o cardápio")
		}

		resp := make([]CategoryResponse, 0, len(categories))
		for i := range categories {
			resp = append(resp, toCategoryResponse(&categories[i]))
		}
		return c.JSON(resp)
	}
}
