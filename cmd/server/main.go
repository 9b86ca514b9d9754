package main

import (
	"log"
	"strings"

	"pizzaria-backend/internal/advance"
	"pizzaria-backend/internal/audit"
	"pizzaria-backend/internal/auth"
	"pizzaria-backend/internal/cache"
	"pizzaria-backend/internal/config"
	"pizzaria-backend/internal/database"
	"pizzaria-backend/internal/employee"
	"pizzaria-backend/internal/expense"
	"pizzaria-backend/internal/menu"
	"pizzaria-backend/internal/models"
	"pizzaria-backend/internal/payroll"
	"pizzaria-backend/internal/reports"
	"pizzaria-backend/internal/revenue"
	"pizzaria-backend/internal/sales"
	"pizzaria-backend/internal/shiftconfig"
	"pizzaria-backend/internal/timeclock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)
	cache.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erro inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro inesperado no servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Público
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Get("/menu/public", menu.PublicMenuHandler())

	// Autenticado
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Rotas restritas a administradores (RequireRole por rota, o prefixo
	// /api é compartilhado com as rotas de gerente)
	adminOnly := auth.RequireRole(models.RoleAdmin)

	// Usuários do sistema
	protected.Get("/users", adminOnly, auth.ListUsersHandler())
	protected.Post("/users", adminOnly, auth.CreateUserHandler())
	protected.Put("/users/:id", adminOnly, auth.UpdateUserHandler())
	protected.Delete("/users/:id", adminOnly, auth.DeactivateUserHandler())

	// Funcionários (mutações)
	protected.Post("/employees", adminOnly, employee.CreateEmployeeHandler())
	protected.Put("/employees/:id", adminOnly, employee.UpdateEmployeeHandler())
	protected.Delete("/employees/:id", adminOnly, employee.DeactivateEmployeeHandler())

	// Fechamento de folha
	protected.Post("/payroll-periods", adminOnly, payroll.CreatePeriodHandler())
	protected.Delete("/payroll-periods/:id", adminOnly, payroll.DeletePeriodHandler())

	// Cardápio (mutações)
	protected.Post("/menu/categories", adminOnly, menu.CreateCategoryHandler())
	protected.Put("/menu/categories/:id", adminOnly, menu.UpdateCategoryHandler())
	protected.Delete("/menu/categories/:id", adminOnly, menu.DeleteCategoryHandler())
	protected.Post("/menu/items", adminOnly, menu.CreateItemHandler())
	protected.Put("/menu/items/:id", adminOnly, menu.UpdateItemHandler())
	protected.Delete("/menu/items/:id", adminOnly, menu.DeleteItemHandler())

	// Exclusões financeiras
	protected.Delete("/expenses/:id", adminOnly, expense.DeleteExpenseHandler())
	protected.Delete("/revenues/:id", adminOnly, revenue.DeleteRevenueHandler())
	protected.Delete("/advances/:id", adminOnly, advance.DeleteAdvanceHandler())

	// Configurações de turno
	protected.Put("/shift-configs/:key", adminOnly, shiftconfig.UpdateConfigHandler())

	// Funcionários (leitura)
	protected.Get("/employees", employee.ListEmployeesHandler())
	protected.Get("/employees/:id", employee.GetEmployeeHandler())

	// Ponto (a janela de edição é checada dentro dos handlers)
	protected.Post("/time-entries", timeclock.CreateTimeEntryHandler())
	protected.Post("/time-entries/clock-in", timeclock.ClockInHandler())
	protected.Get("/time-entries", timeclock.ListTimeEntriesHandler())
	protected.Get("/time-entries/:id", timeclock.GetTimeEntryHandler())
	protected.Put("/time-entries/:id", timeclock.UpdateTimeEntryHandler())
	protected.Delete("/time-entries/:id", timeclock.DeleteTimeEntryHandler())

	// Adiantamentos
	protected.Post("/advances", advance.CreateAdvanceHandler())
	protected.Get("/advances", advance.ListAdvancesHandler())
	protected.Put("/advances/:id", advance.UpdateAdvanceHandler())

	// Fechamentos (leitura e exportação)
	protected.Get("/payroll-periods", payroll.ListPeriodsHandler())
	protected.Get("/payroll-periods/:id", payroll.GetPeriodHandler())
	protected.Get("/payroll-periods/:id/export", payroll.ExportPeriodHandler())
	protected.Get("/payroll-periods/:id/payments/:paymentId/receipt", payroll.PaymentReceiptHandler())

	// Folha mensal
	protected.Get("/payroll", payroll.ListEntriesHandler())
	protected.Post("/payroll", payroll.GenerateEntriesHandler())
	protected.Put("/payroll/:id", payroll.UpdateEntryHandler())

	// Despesas e receitas
	protected.Post("/expenses", expense.CreateExpenseHandler())
	protected.Get("/expenses", expense.ListExpensesHandler())
	protected.Get("/expenses/summary", expense.ExpenseSummaryHandler())
	protected.Put("/expenses/:id", expense.UpdateExpenseHandler())
	protected.Post("/revenues", revenue.CreateRevenueHandler())
	protected.Get("/revenues", revenue.ListRevenuesHandler())
	protected.Get("/revenues/summary", revenue.RevenueSummaryHandler())
	protected.Put("/revenues/:id", revenue.UpdateRevenueHandler())

	// Cardápio (leitura autenticada)
	protected.Get("/menu/categories", menu.ListCategoriesHandler())

	// Vendas do PDV
	protected.Post("/sales", sales.ImportOrdersHandler())
	protected.Get("/sales", sales.ListOrdersHandler())
	protected.Get("/sales/stats", sales.StatsHandler())

	// Relatórios
	protected.Get("/reports/monthly", reports.MonthlyReportHandler())

	// Configurações de turno (leitura)
	protected.Get("/shift-configs", shiftconfig.ListConfigsHandler())

	// Auditoria
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Servidor rodando na porta:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
