package sales

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"pizzaria-backend/internal/cache"
	"pizzaria-backend/internal/database"
	"pizzaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

const statsCacheTTL = 5 * time.Minute

type ImportOrderRequest struct {
	ExternalID    string  `json:"external_id"`
	Origin        string  `json:"origin"`
	OrderType     string  `json:"order_type"`
	ItemsCount    int     `json:"items_count"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	OpenedAt      string  `json:"opened_at"` // RFC3339
	ClosedAt      string  `json:"closed_at"`
	Duration      any     `json:"duration"` // segundos ou "6h 4m 24s"
	Unit          string  `json:"unit"`
	PaymentMethod string  `json:"payment_method"`
}

type OrderResponse struct {
	ID            uint    `json:"id"`
	ExternalID    string  `json:"external_id"`
	Origin        string  `json:"origin"`
	OrderType     string  `json:"order_type"`
	ItemsCount    int     `json:"items_count"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	OpenedAt      string  `json:"opened_at"`
	ClosedAt      string  `json:"closed_at"`
	Duration      *int    `json:"duration"`
	Unit          string  `json:"unit"`
	TableNumber   *int    `json:"table_number"`
	IsCounter     bool    `json:"is_counter"`
	IsDelivery    bool    `json:"is_delivery"`
	PaymentMethod string  `json:"payment_method"`
}

func toOrderResponse(o *models.SalesOrder) OrderResponse {
	closedAt := ""
	if o.ClosedAt != nil {
		closedAt = o.ClosedAt.Format(time.RFC3339)
	}
	return OrderResponse{
		ID:            o.ID,
		ExternalID:    o.ExternalID,
		Origin:        o.Origin,
		OrderType:     o.OrderType,
		ItemsCount:    o.ItemsCount,
		Amount:        o.Amount,
		Status:        o.Status,
		PaymentStatus: string(o.PaymentStatus),
		OpenedAt:      o.OpenedAt.Format(time.RFC3339),
		ClosedAt:      closedAt,
		Duration:      o.Duration,
		Unit:          o.Unit,
		TableNumber:   o.TableNumber,
		IsCounter:     o.IsCounter,
		IsDelivery:    o.IsDelivery,
		PaymentMethod: o.PaymentMethod,
	}
}

func buildOrder(req *ImportOrderRequest) (models.SalesOrder, error) {
	if req.ExternalID == "" {
		return models.SalesOrder{}, fmt.Errorf("external_id é obrigatório")
	}

	openedAt, err := time.Parse(time.RFC3339, req.OpenedAt)
	if err != nil {
		return models.SalesOrder{}, fmt.Errorf("opened_at inválido para %s", req.ExternalID)
	}

	var closedAt *time.Time
	if req.ClosedAt != "" {
		t, err := time.Parse(time.RFC3339, req.ClosedAt)
		if err != nil {
			return models.SalesOrder{}, fmt.Errorf("closed_at inválido para %s", req.ExternalID)
		}
		closedAt = &t
	}

	origin := req.Origin
	if origin == "" {
		origin = "Desconhecido"
	}
	orderType := req.OrderType
	if orderType == "" {
		orderType = "Outros"
	}
	status := req.Status
	if status == "" {
		status = "Desconhecido"
	}
	unit := req.Unit
	if unit == "" {
		unit = "PIZZARIA"
	}

	isCounter, isDelivery, tableNumber := ParseOrderType(req.OrderType)

	return models.SalesOrder{
		ExternalID:    req.ExternalID,
		Origin:        origin,
		OrderType:     orderType,
		ItemsCount:    req.ItemsCount,
		Amount:        req.Amount,
		Status:        status,
		PaymentStatus: ParsePaymentStatus(req.Status),
		OpenedAt:      openedAt,
		ClosedAt:      closedAt,
		Duration:      ParseDuration(req.Duration),
		Unit:          unit,
		TableNumber:   tableNumber,
		IsCounter:     isCounter,
		IsDelivery:    isDelivery,
		PaymentMethod: req.PaymentMethod,
		SyncedAt:      time.Now(),
	}, nil
}

// POST /api/sales
// Sincronização do export do PDV: aceita um pedido ou um lote. Upsert por
// external_id, então reenviar o mesmo export é idempotente.
func ImportOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bytes.TrimSpace(c.Body())

		var reqs []ImportOrderRequest
		if len(raw) > 0 && raw[0] == '[' {
			if err := json.Unmarshal(raw, &reqs); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
			}
		} else {
			var single ImportOrderRequest
			if err := json.Unmarshal(raw, &single); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
			}
			reqs = []ImportOrderRequest{single}
		}

		if len(reqs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nenhum pedido para sincronizar")
		}

		orders := make([]models.SalesOrder, 0, len(reqs))
		for i := range reqs {
			order, err := buildOrder(&reqs[i])
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			orders = append(orders, order)
		}

		if err := database.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"origin", "order_type", "items_count", "amount", "status",
				"payment_status", "opened_at", "closed_at", "duration", "unit",
				"table_number", "is_counter", "is_delivery", "payment_method",
				"synced_at", "updated_at",
			}),
		}).Create(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível sincronizar as vendas")
		}

		cache.Invalidate(c.Context(), "sales:stats:*")

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": fmt.Sprintf("%d registro(s) sincronizado(s)", len(orders)),
			"count":   len(orders),
		})
	}
}

// GET /api/sales?month=...&start_date=...&end_date=...&payment_status=...&order_type=...&limit=...
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.SalesOrder{})

		if month := c.Query("month"); month != "" {
			start, err := time.Parse("2006-01", month)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "month deve estar no formato 'YYYY-MM'")
			}
			dbq = dbq.Where("opened_at >= ? AND opened_at < ?", start, start.AddDate(0, 1, 0))
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
			dbq = dbq.Where("opened_at >= ? AND opened_at <= ?", start, end)
		}

		if status := c.Query("payment_status"); status != "" && status != "all" {
			dbq = dbq.Where("payment_status = ?", status)
		}

		switch c.Query("order_type") {
		case "COUNTER":
			dbq = dbq.Where("is_counter = true")
		case "TABLE":
			dbq = dbq.Where("is_counter = false AND is_delivery = false")
		case "DELIVERY":
			dbq = dbq.Where("is_delivery = true")
		}

		limit := c.QueryInt("limit", 0)
		if limit > 0 {
			dbq = dbq.Limit(limit)
		}

		var orders []models.SalesOrder
		if err := dbq.Order("opened_at desc").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as vendas")
		}

		resp := make([]OrderResponse, 0, len(orders))
		for i := range orders {
			resp = append(resp, toOrderResponse(&orders[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/sales/stats?month=2025-06&compare=true
// Resultado cacheado por 5 minutos; a importação invalida o cache.
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		month := c.Query("month")
		if month == "" {
			month = time.Now().Format("2006-01")
		}
		compare := c.Query("compare") == "true"

		cacheKey := fmt.Sprintf("sales:stats:%s:%t", month, compare)
		if cached := cache.Get(c.Context(), cacheKey); cached != "" {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(cached)
		}

		monthStart, err := time.Parse("2006-01", month)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month deve estar no formato 'YYYY-MM'")
		}
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

		var orders []models.SalesOrder
		if err := database.DB.
			Where("opened_at >= ? AND opened_at <= ?", monthStart, monthEnd).
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível calcular as estatísticas")
		}

		stats := BuildStats(orders, monthStart, monthEnd, time.Now())

		if compare {
			prevStart := monthStart.AddDate(0, -1, 0)
			prevEnd := monthStart.Add(-time.Second)

			var prevOrders []models.SalesOrder
			if err := database.DB.
				Where("opened_at >= ? AND opened_at <= ?", prevStart, prevEnd).
				Find(&prevOrders).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível calcular a comparação")
			}
			stats.Comparison = BuildComparison(stats.Summary, prevOrders)
		}

		if payload, err := json.Marshal(stats); err == nil {
			cache.Set(c.Context(), cacheKey, string(payload), statsCacheTTL)
		}

		return c.JSON(stats)
	}
}
